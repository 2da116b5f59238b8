package main

import (
	"flag"
	"testing"

	"github.com/benjaminpeng/sql-audit/pkg/config"
)

func TestCommonFlagsRegister(t *testing.T) {
	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	var cf CommonFlags
	cf.Register(fs)

	err := fs.Parse([]string{
		"-config", "audit.yaml",
		"-server", "http://audit.internal:9000",
		"-no-color",
		"-silent",
		"-metrics-file", "metrics.prom",
		"-v",
	})
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	if cf.ConfigFile != "audit.yaml" {
		t.Errorf("ConfigFile = %q, want audit.yaml", cf.ConfigFile)
	}
	if cf.Server != "http://audit.internal:9000" {
		t.Errorf("Server = %q", cf.Server)
	}
	if !cf.NoColor {
		t.Error("NoColor = false, want true")
	}
	if !cf.Silent {
		t.Error("Silent = false, want true")
	}
	if cf.MetricsFile != "metrics.prom" {
		t.Errorf("MetricsFile = %q, want metrics.prom", cf.MetricsFile)
	}
	if !cf.Verbose {
		t.Error("Verbose = false, want true")
	}
}

func TestCommonFlagsRegisterDefaults(t *testing.T) {
	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	var cf CommonFlags
	cf.Register(fs)
	_ = fs.Parse([]string{})

	if cf.ConfigFile != "" || cf.Server != "" || cf.MetricsFile != "" {
		t.Errorf("string defaults should be empty: %+v", cf)
	}
	if cf.NoColor || cf.Silent || cf.Verbose {
		t.Errorf("bool defaults should be false: %+v", cf)
	}
}

func TestCommonFlagsApply(t *testing.T) {
	cfg := config.Default()
	cf := CommonFlags{
		Server:      "https://audit.example.com",
		MetricsFile: "out.prom",
		Verbose:     true,
	}
	if err := cf.Apply(cfg); err != nil {
		t.Fatalf("Apply failed: %v", err)
	}

	if cfg.Server.BaseURL != "https://audit.example.com" {
		t.Errorf("BaseURL = %q", cfg.Server.BaseURL)
	}
	if cfg.Telemetry.MetricsFile != "out.prom" {
		t.Errorf("MetricsFile = %q", cfg.Telemetry.MetricsFile)
	}
	if cfg.Log.Level != "debug" {
		t.Errorf("Log.Level = %q, want debug", cfg.Log.Level)
	}
}

func TestCommonFlagsApplyKeepsConfig(t *testing.T) {
	cfg := config.Default()
	want := cfg.Server.BaseURL
	var cf CommonFlags
	if err := cf.Apply(cfg); err != nil {
		t.Fatalf("Apply failed: %v", err)
	}
	if cfg.Server.BaseURL != want {
		t.Errorf("BaseURL = %q, want %q", cfg.Server.BaseURL, want)
	}
	if cfg.Log.Level != "warn" {
		t.Errorf("Log.Level = %q, want warn", cfg.Log.Level)
	}
}

func TestCommonFlagsApplyRejectsBadServer(t *testing.T) {
	cfg := config.Default()
	cf := CommonFlags{Server: "ftp://audit"}
	if err := cf.Apply(cfg); err == nil {
		t.Error("Apply should reject a non-http server URL")
	}
}

func TestViewFlagsRegister(t *testing.T) {
	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	var vf ViewFlags
	vf.Register(fs)

	if err := fs.Parse([]string{"-filter", "error", "-pages", "3"}); err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if vf.Filter != "error" {
		t.Errorf("Filter = %q, want error", vf.Filter)
	}
	if vf.Pages != 3 {
		t.Errorf("Pages = %d, want 3", vf.Pages)
	}
}

func TestViewFlagsDefaults(t *testing.T) {
	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	var vf ViewFlags
	vf.Register(fs)
	_ = fs.Parse(nil)

	if vf.Filter != "" {
		t.Errorf("Filter default = %q, want empty", vf.Filter)
	}
	if vf.Pages != 1 {
		t.Errorf("Pages default = %d, want 1", vf.Pages)
	}
}
