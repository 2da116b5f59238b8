package main

import (
	"context"
	"flag"

	"github.com/benjaminpeng/sql-audit/pkg/cli"
	"github.com/benjaminpeng/sql-audit/pkg/duration"
	"github.com/benjaminpeng/sql-audit/pkg/ui"
)

// reportFlag is the -report flag shared by report commands.
func reportFlag(fs *flag.FlagSet) *string {
	return fs.String("report", "", "Saved report JSON (from scan -save or export -format json)")
}

// selectorFlags bind -id, -index and -filter.
func selectorFlags(fs *flag.FlagSet, sel *cli.Selector) {
	fs.StringVar(&sel.ID, "id", "", "Example anchor id shown next to a violation")
	fs.IntVar(&sel.Index, "index", 0, "1-based violation number in the (filtered) view")
	fs.StringVar(&sel.Filter, "filter", "", "Severity filter the -index refers to")
}

func requireReport(path, usage string) {
	if path == "" {
		exitWithUsage("report file is required", usage)
	}
}

func runView(args []string) {
	fs := flag.NewFlagSet("view", flag.ExitOnError)
	var cf CommonFlags
	var vf ViewFlags
	cf.Register(fs)
	vf.Register(fs)
	report := reportFlag(fs)
	interactive := fs.Bool("interactive", false, "Read m/a/e/w/i/q keys from stdin")
	fs.Parse(args)

	requireReport(*report, "sqlaudit view -report <file.json> [-filter f] [-pages n] [-interactive]")
	if *interactive && !ui.StdinIsTerminal() {
		ui.PrintWarning("stdin is not a terminal, reading keys from it anyway")
	}

	ctx, cancel := cli.SignalContext(context.Background(), duration.SignalGrace)
	defer cancel()
	a := mustApp(ctx, &cf)
	a.finish(ctx, a.runner.RunView(&cli.ViewOptions{
		ReportPath:  *report,
		Filter:      vf.Filter,
		Pages:       vf.Pages,
		Interactive: *interactive,
	}))
}

func runDiff(args []string) {
	fs := flag.NewFlagSet("diff", flag.ExitOnError)
	var cf CommonFlags
	var opts cli.DiffOptions
	cf.Register(fs)
	report := reportFlag(fs)
	selectorFlags(fs, &opts.Selector)
	fs.BoolVar(&opts.Unified, "unified", false, "Print a unified diff instead of side-by-side")
	fs.IntVar(&opts.Context, "context", 3, "Context lines for -unified")
	fs.Parse(args)

	requireReport(*report, "sqlaudit diff -report <file.json> (-id anchor | -index n) [-unified]")
	opts.ReportPath = *report

	ctx, cancel := cli.SignalContext(context.Background(), duration.SignalGrace)
	defer cancel()
	a := mustApp(ctx, &cf)
	a.finish(ctx, a.runner.RunDiff(&opts))
}

func runExport(args []string) {
	fs := flag.NewFlagSet("export", flag.ExitOnError)
	var cf CommonFlags
	var opts cli.ExportOptions
	cf.Register(fs)
	report := reportFlag(fs)
	fs.StringVar(&opts.Format, "format", "", "markdown, json or template (default from config)")
	fs.StringVar(&opts.Template, "template", "", "text/template file for -format template")
	fs.BoolVar(&opts.Latest, "latest", false, "Download the server's latest report instead of -report")
	dir := fs.String("dir", "", "Download directory (default from config)")
	fs.Parse(args)

	if !opts.Latest {
		requireReport(*report, "sqlaudit export -report <file.json> -format markdown|json|template [-dir d] [-template t]")
	}
	opts.ReportPath = *report

	ctx, cancel := cli.SignalContext(context.Background(), duration.SignalGrace)
	defer cancel()
	a := mustApp(ctx, &cf)
	if opts.Format == "" {
		opts.Format = a.cfg.Export.Format
	}
	if *dir != "" {
		a.setExportDir(*dir)
	}
	a.finish(ctx, a.runner.RunExport(ctx, &opts))
}

func runCopy(args []string) {
	fs := flag.NewFlagSet("copy", flag.ExitOnError)
	var cf CommonFlags
	var opts cli.CopyOptions
	cf.Register(fs)
	report := reportFlag(fs)
	selectorFlags(fs, &opts.Selector)
	fs.StringVar(&opts.Field, "field", cli.FieldExample, "What to copy: example, sql, message or suggestion")
	fs.Parse(args)

	requireReport(*report, "sqlaudit copy -report <file.json> (-id anchor | -index n) [-field f]")
	opts.ReportPath = *report

	ctx, cancel := cli.SignalContext(context.Background(), duration.SignalGrace)
	defer cancel()
	a := mustApp(ctx, &cf)
	a.finish(ctx, a.runner.RunCopy(ctx, &opts))
}
