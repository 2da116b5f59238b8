// Command sqlaudit is the terminal client for the SQL compliance audit
// service: it starts scans, manages rules and views, diffs, exports and
// copies from scan reports.
package main

import (
	"fmt"
	"os"

	"github.com/benjaminpeng/sql-audit/pkg/cli"
	"github.com/benjaminpeng/sql-audit/pkg/defaults"
	"github.com/benjaminpeng/sql-audit/pkg/ui"
)

var handlers = map[cli.Command]func(args []string){
	cli.CommandScan:        runScan,
	cli.CommandScanSQL:     runScanSQL,
	cli.CommandRules:       runRules,
	cli.CommandRulesUpload: runRulesUpload,
	cli.CommandRulesClear:  runRulesClear,
	cli.CommandView:        runView,
	cli.CommandDiff:        runDiff,
	cli.CommandExport:      runExport,
	cli.CommandCopy:        runCopy,
}

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(defaults.ExitUserError)
	}

	switch os.Args[1] {
	case "-h", "--help", string(cli.CommandHelp):
		printUsage()
		os.Exit(defaults.ExitSuccess)
	case "-v", "--version", string(cli.CommandVersion):
		printVersion()
		os.Exit(defaults.ExitSuccess)
	}

	cmd, ok := cli.Lookup(os.Args[1])
	if !ok {
		printUsage()
		exitWithError("unknown command %q", os.Args[1])
	}
	handlers[cmd](os.Args[2:])
}

func printUsage() {
	ui.PrintBanner()

	fmt.Println(ui.SectionStyle.Render("COMMANDS"))
	fmt.Println()
	for _, c := range cli.Commands() {
		fmt.Printf("  %s  %s\n", ui.StatValueStyle.Render(fmt.Sprintf("%-12s", c.Name)), c.Summary)
	}
	fmt.Println()

	fmt.Println(ui.SectionStyle.Render("EXAMPLES"))
	fmt.Println()
	for _, ex := range []string{
		"sqlaudit scan -repo /srv/app -save report.json",
		"sqlaudit scan-sql -file migrate.sql -export markdown",
		"sqlaudit view -report report.json -filter error -interactive",
		"sqlaudit diff -report report.json -index 3",
		"sqlaudit copy -report report.json -id example-sql-1f2e3d4c5b6a7988",
		"sqlaudit export -report report.json -format json -dir out",
	} {
		fmt.Printf("    %s\n", ui.ConfigValueStyle.Render(ex))
	}
	fmt.Println()
	fmt.Println(ui.HelpStyle.Render("  Every command accepts -config, -server, -no-color, -silent, -metrics-file and -verbose."))
	fmt.Println(ui.HelpStyle.Render("  Run 'sqlaudit <command> -h' for command flags."))
}

func printVersion() {
	fmt.Printf("sqlaudit %s (commit %s, built %s)\n", ui.Version, ui.Commit, ui.BuildDate)
}
