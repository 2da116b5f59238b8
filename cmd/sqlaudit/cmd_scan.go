package main

import (
	"context"
	"flag"
	"os"

	"github.com/benjaminpeng/sql-audit/pkg/cli"
	"github.com/benjaminpeng/sql-audit/pkg/defaults"
	"github.com/benjaminpeng/sql-audit/pkg/duration"
	"github.com/benjaminpeng/sql-audit/pkg/ui"
)

// scanFlags are shared by scan and scan-sql.
type scanFlags struct {
	CommonFlags
	ViewFlags
	Save        string
	Export      string
	FailOnError bool
}

func (sf *scanFlags) register(fs *flag.FlagSet) {
	sf.CommonFlags.Register(fs)
	sf.ViewFlags.Register(fs)
	fs.StringVar(&sf.Save, "save", "", "Write the report JSON to this file")
	fs.StringVar(&sf.Export, "export", "", "Export after scanning: markdown, json or template")
	fs.BoolVar(&sf.FailOnError, "fail-on-error", false, "Exit 1 when the report has ERROR violations")
}

func runScan(args []string) {
	fs := flag.NewFlagSet("scan", flag.ExitOnError)
	var sf scanFlags
	sf.register(fs)
	repo := fs.String("repo", "", "Repository path on the audit server")
	fs.Parse(args)

	if *repo == "" && fs.NArg() > 0 {
		*repo = fs.Arg(0)
	}
	if *repo == "" {
		exitWithUsage("repository path is required", "sqlaudit scan -repo <path> [flags]")
	}
	doScan(&sf, &cli.ScanOptions{RepoPath: *repo}, "Repository", *repo)
}

func runScanSQL(args []string) {
	fs := flag.NewFlagSet("scan-sql", flag.ExitOnError)
	var sf scanFlags
	sf.register(fs)
	file := fs.String("file", "", "SQL script to upload (.sql, at most 10MB)")
	fs.Parse(args)

	if *file == "" && fs.NArg() > 0 {
		*file = fs.Arg(0)
	}
	if *file == "" {
		exitWithUsage("SQL file is required", "sqlaudit scan-sql -file <script.sql> [flags]")
	}
	doScan(&sf, &cli.ScanOptions{SQLFile: *file}, "Script", *file)
}

func doScan(sf *scanFlags, opts *cli.ScanOptions, label, target string) {
	ctx, cancel := cli.SignalContext(context.Background(), duration.SignalGrace)
	defer cancel()

	a := mustApp(ctx, &sf.CommonFlags)
	ui.PrintBanner()
	ui.PrintConfigLine(label, target)
	a.printTarget()
	ui.PrintInfo("Scanning, the server analyses every statement before answering")

	opts.Filter = sf.Filter
	opts.Pages = sf.Pages
	opts.Save = sf.Save
	opts.Export = sf.Export
	report, err := a.runner.RunScan(ctx, opts)
	a.finish(ctx, err)
	if sf.FailOnError && report != nil && report.ErrorCount > 0 {
		os.Exit(defaults.ExitViolations)
	}
}
