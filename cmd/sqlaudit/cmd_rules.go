package main

import (
	"context"
	"flag"

	"github.com/benjaminpeng/sql-audit/pkg/cli"
	"github.com/benjaminpeng/sql-audit/pkg/duration"
)

func runRules(args []string) {
	fs := flag.NewFlagSet("rules", flag.ExitOnError)
	var cf CommonFlags
	cf.Register(fs)
	set := fs.String("set", cli.RuleSetAll, "Rule set: all, default or custom")
	fs.Parse(args)

	ctx, cancel := cli.SignalContext(context.Background(), duration.SignalGrace)
	defer cancel()
	a := mustApp(ctx, &cf)
	a.finish(ctx, a.runner.RunRules(ctx, &cli.RulesOptions{Set: *set}))
}

func runRulesUpload(args []string) {
	fs := flag.NewFlagSet("rules-upload", flag.ExitOnError)
	var cf CommonFlags
	cf.Register(fs)
	file := fs.String("file", "", "Rule document to upload (.docx, at most 10MB)")
	fs.Parse(args)

	if *file == "" && fs.NArg() > 0 {
		*file = fs.Arg(0)
	}
	if *file == "" {
		exitWithUsage("rule document is required", "sqlaudit rules-upload -file <rules.docx>")
	}

	ctx, cancel := cli.SignalContext(context.Background(), duration.SignalGrace)
	defer cancel()
	a := mustApp(ctx, &cf)
	a.printTarget()
	a.finish(ctx, a.runner.RunRulesUpload(ctx, &cli.UploadOptions{Path: *file}))
}

func runRulesClear(args []string) {
	fs := flag.NewFlagSet("rules-clear", flag.ExitOnError)
	var cf CommonFlags
	cf.Register(fs)
	yes := fs.Bool("yes", false, "Confirm removal of all custom rules")
	fs.Parse(args)

	if !*yes {
		exitWithUsage("refusing to clear custom rules without -yes", "sqlaudit rules-clear -yes")
	}

	ctx, cancel := cli.SignalContext(context.Background(), duration.SignalGrace)
	defer cancel()
	a := mustApp(ctx, &cf)
	a.finish(ctx, a.runner.RunRulesClear(ctx))
}
