// Package cli implements the sqlaudit commands on top of the API client,
// the view state and the export and clipboard services. Flag parsing and
// process wiring live in cmd/sqlaudit; everything here writes to an
// io.Writer so it can be driven from tests.
package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/benjaminpeng/sql-audit/pkg/apiclient"
	"github.com/benjaminpeng/sql-audit/pkg/clipboard"
	"github.com/benjaminpeng/sql-audit/pkg/export"
	"github.com/benjaminpeng/sql-audit/pkg/grouping"
	"github.com/benjaminpeng/sql-audit/pkg/metrics"
	"github.com/benjaminpeng/sql-audit/pkg/model"
	"github.com/benjaminpeng/sql-audit/pkg/viewstate"
)

// Command names a subcommand.
type Command string

const (
	CommandScan        Command = "scan"
	CommandScanSQL     Command = "scan-sql"
	CommandRules       Command = "rules"
	CommandRulesUpload Command = "rules-upload"
	CommandRulesClear  Command = "rules-clear"
	CommandView        Command = "view"
	CommandDiff        Command = "diff"
	CommandExport      Command = "export"
	CommandCopy        Command = "copy"
	CommandVersion     Command = "version"
	CommandHelp        Command = "help"
)

// CommandInfo is one line of the command overview.
type CommandInfo struct {
	Name    Command
	Summary string
}

var commands = []CommandInfo{
	{CommandScan, "Scan a repository on the audit server"},
	{CommandScanSQL, "Upload and scan a single .sql script"},
	{CommandRules, "List rules grouped by category"},
	{CommandRulesUpload, "Upload a .docx rule document"},
	{CommandRulesClear, "Remove all custom rules"},
	{CommandView, "Show a saved report, optionally interactive"},
	{CommandDiff, "Compare a fragment with its example rewrite"},
	{CommandExport, "Export a report as markdown, json or template"},
	{CommandCopy, "Copy a violation's example, SQL or message"},
	{CommandVersion, "Print version information"},
	{CommandHelp, "Show help"},
}

// Commands returns the command overview in display order.
func Commands() []CommandInfo {
	out := make([]CommandInfo, len(commands))
	copy(out, commands)
	return out
}

// Lookup resolves a command name.
func Lookup(name string) (Command, bool) {
	for _, c := range commands {
		if string(c.Name) == name {
			return c.Name, true
		}
	}
	return "", false
}

// Runner executes commands. The zero value is not usable: API is required
// for server commands, Exporter for export and Clipboard for copy.
type Runner struct {
	API       *apiclient.Client
	Exporter  *export.Exporter
	Clipboard *clipboard.Service
	Metrics   *metrics.Recorder
	Logger    *slog.Logger

	// Out receives rendered reports. Nil means os.Stdout.
	Out io.Writer

	// PageSize and Filter seed every view.
	PageSize int
	Filter   grouping.Filter

	// DiffWidth is the column width of each diff side; 0 sizes to the
	// terminal.
	DiffWidth int
}

// Run executes cmd with opts, which must be the options pointer the command
// expects.
func (r *Runner) Run(ctx context.Context, cmd Command, opts any) error {
	switch cmd {
	case CommandScan, CommandScanSQL:
		o, err := optionsFor[ScanOptions](cmd, opts)
		if err != nil {
			return err
		}
		_, err = r.RunScan(ctx, o)
		return err
	case CommandRules:
		o, err := optionsFor[RulesOptions](cmd, opts)
		if err != nil {
			return err
		}
		return r.RunRules(ctx, o)
	case CommandRulesUpload:
		o, err := optionsFor[UploadOptions](cmd, opts)
		if err != nil {
			return err
		}
		return r.RunRulesUpload(ctx, o)
	case CommandRulesClear:
		return r.RunRulesClear(ctx)
	case CommandView:
		o, err := optionsFor[ViewOptions](cmd, opts)
		if err != nil {
			return err
		}
		return r.RunView(o)
	case CommandDiff:
		o, err := optionsFor[DiffOptions](cmd, opts)
		if err != nil {
			return err
		}
		return r.RunDiff(o)
	case CommandExport:
		o, err := optionsFor[ExportOptions](cmd, opts)
		if err != nil {
			return err
		}
		return r.RunExport(ctx, o)
	case CommandCopy:
		o, err := optionsFor[CopyOptions](cmd, opts)
		if err != nil {
			return err
		}
		return r.RunCopy(ctx, o)
	default:
		return fmt.Errorf("%w: %s", ErrUnknownCommand, cmd)
	}
}

func optionsFor[T any](cmd Command, opts any) (*T, error) {
	o, ok := opts.(*T)
	if !ok || o == nil {
		return nil, fmt.Errorf("%w: %s got %T", ErrBadOptions, cmd, opts)
	}
	return o, nil
}

func (r *Runner) out() io.Writer {
	if r.Out != nil {
		return r.Out
	}
	return os.Stdout
}

func (r *Runner) logger() *slog.Logger {
	if r.Logger != nil {
		return r.Logger
	}
	return slog.Default()
}

// newState returns an empty view state seeded with the runner's page size.
func (r *Runner) newState() viewstate.State {
	return viewstate.New(r.PageSize)
}

// present loads report into a fresh state with the requested filter and
// number of pages revealed.
func (r *Runner) present(report *model.ScanReport, filter string, pages int) (viewstate.State, error) {
	st := r.newState().NewReport(report)
	f, err := r.filter(filter)
	if err != nil {
		return st, err
	}
	st = st.ChangeFilter(f)
	for i := 1; i < pages; i++ {
		st = st.Advance()
	}
	return st, nil
}

// filter resolves a filter name; empty falls back to the runner default.
func (r *Runner) filter(name string) (grouping.Filter, error) {
	if name == "" {
		if r.Filter == "" {
			return grouping.All, nil
		}
		return r.Filter, nil
	}
	f, ok := grouping.ParseFilter(name)
	if !ok {
		return grouping.All, fmt.Errorf("%w: %q (want all, error, warning or info)", ErrInvalidFilter, name)
	}
	return f, nil
}

func (r *Runner) now() time.Time {
	if r.Exporter != nil && r.Exporter.Now != nil {
		return r.Exporter.Now()
	}
	return time.Now()
}
