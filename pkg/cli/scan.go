package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/benjaminpeng/sql-audit/pkg/apiclient"
	"github.com/benjaminpeng/sql-audit/pkg/defaults"
	"github.com/benjaminpeng/sql-audit/pkg/export"
	"github.com/benjaminpeng/sql-audit/pkg/model"
	"github.com/benjaminpeng/sql-audit/pkg/ui"
	"github.com/benjaminpeng/sql-audit/pkg/viewstate"
)

// ScanOptions configures scan and scan-sql. Exactly one of RepoPath and
// SQLFile is used; SQLFile wins when both are set.
type ScanOptions struct {
	RepoPath string
	SQLFile  string

	Filter string
	Pages  int

	// Save writes the report as JSON to this path.
	Save string

	// Export delivers the report in this format after the scan.
	Export string
}

// RunScan scans, renders the first page and handles -save and -export.
func (r *Runner) RunScan(ctx context.Context, opts *ScanOptions) (*model.ScanReport, error) {
	var exportFormat export.Format
	if opts.Export != "" {
		f, err := export.ParseFormat(opts.Export)
		if err != nil {
			return nil, err
		}
		exportFormat = f
	}

	st, gen := r.newState().BeginScan()
	report, err := r.scan(ctx, opts)
	if err != nil {
		st, _ = st.FailScan(gen)
		return nil, err
	}
	st = r.completeScan(st, gen, report)
	r.Metrics.ObserveReport(report)

	if opts.Save != "" {
		if err := saveReport(opts.Save, report); err != nil {
			return report, err
		}
		ui.PrintSuccess(fmt.Sprintf("Report saved to %s", opts.Save))
	}

	st, err = r.present(st.Report, opts.Filter, opts.Pages)
	if err != nil {
		return report, err
	}
	ui.RenderSummary(r.out(), report)
	ui.RenderPage(r.out(), st.View())

	if exportFormat != "" {
		if err := r.deliver(ctx, r.Exporter, exportFormat, report); err != nil {
			return report, err
		}
	}
	return report, nil
}

func (r *Runner) scan(ctx context.Context, opts *ScanOptions) (*model.ScanReport, error) {
	if opts.SQLFile != "" {
		script, err := apiclient.LoadUpload(opts.SQLFile, defaults.SQLScriptExt)
		if err != nil {
			return nil, err
		}
		return r.API.ScanSQL(ctx, script)
	}
	return r.API.Scan(ctx, opts.RepoPath)
}

// completeScan installs report if gen is still current. A stale result is
// dropped and logged.
func (r *Runner) completeScan(st viewstate.State, gen uint64, report *model.ScanReport) viewstate.State {
	next, ok := st.CompleteScan(gen, report)
	if !ok {
		r.logger().Debug("discarded stale scan result",
			slog.Uint64("generation", gen),
			slog.Uint64("current", st.Generation),
		)
	}
	return next
}

func saveReport(path string, report *model.ScanReport) error {
	s, err := export.ToJSON(report)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, []byte(s), 0o644); err != nil {
		return fmt.Errorf("save report: %w", err)
	}
	return nil
}
