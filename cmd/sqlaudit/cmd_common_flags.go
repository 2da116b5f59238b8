package main

import (
	"flag"

	"github.com/benjaminpeng/sql-audit/pkg/config"
)

// CommonFlags holds flags every subcommand accepts. They override the
// config file and environment.
type CommonFlags struct {
	ConfigFile  string
	Server      string
	NoColor     bool
	Silent      bool
	MetricsFile string
	Verbose     bool
}

// Register binds common flags to the given FlagSet.
func (cf *CommonFlags) Register(fs *flag.FlagSet) {
	fs.StringVar(&cf.ConfigFile, "config", "", "YAML config file (default $"+config.EnvConfig+")")
	fs.StringVar(&cf.Server, "server", "", "Audit server base URL (overrides config)")
	fs.BoolVar(&cf.NoColor, "no-color", false, "Disable colored output")
	fs.BoolVar(&cf.Silent, "silent", false, "Hide the banner and progress notes")
	fs.StringVar(&cf.MetricsFile, "metrics-file", "", "Write Prometheus metrics to this file on exit")
	fs.BoolVar(&cf.Verbose, "verbose", false, "Debug logging")
	fs.BoolVar(&cf.Verbose, "v", false, "Debug logging (alias)")
}

// Apply copies flag overrides into cfg and revalidates it.
func (cf *CommonFlags) Apply(cfg *config.Config) error {
	if cf.Server != "" {
		cfg.Server.BaseURL = cf.Server
	}
	if cf.MetricsFile != "" {
		cfg.Telemetry.MetricsFile = cf.MetricsFile
	}
	if cf.Verbose {
		cfg.Log.Level = "debug"
	}
	return cfg.Validate()
}

// ViewFlags select what part of a report a command shows.
type ViewFlags struct {
	Filter string
	Pages  int
}

// Register binds view flags to the given FlagSet.
func (vf *ViewFlags) Register(fs *flag.FlagSet) {
	fs.StringVar(&vf.Filter, "filter", "", "Severity filter: all, error, warning, info (default from config)")
	fs.IntVar(&vf.Pages, "pages", 1, "Number of pages to show")
}
