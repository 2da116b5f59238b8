package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/benjaminpeng/sql-audit/pkg/apiclient"
	"github.com/benjaminpeng/sql-audit/pkg/cli"
	"github.com/benjaminpeng/sql-audit/pkg/clipboard"
	"github.com/benjaminpeng/sql-audit/pkg/config"
	"github.com/benjaminpeng/sql-audit/pkg/defaults"
	"github.com/benjaminpeng/sql-audit/pkg/export"
	"github.com/benjaminpeng/sql-audit/pkg/grouping"
	"github.com/benjaminpeng/sql-audit/pkg/httpclient"
	"github.com/benjaminpeng/sql-audit/pkg/metrics"
	"github.com/benjaminpeng/sql-audit/pkg/retry"
	"github.com/benjaminpeng/sql-audit/pkg/telemetry"
	"github.com/benjaminpeng/sql-audit/pkg/ui"
)

// app is one command invocation's wiring.
type app struct {
	cfg       *config.Config
	runner    *cli.Runner
	metrics   *metrics.Recorder
	telemetry *telemetry.Provider
	logger    *slog.Logger
}

// loadConfig resolves file, environment and flag settings.
func loadConfig(cf *CommonFlags) (*config.Config, error) {
	cfg, err := config.Load(cf.ConfigFile)
	if err != nil {
		return nil, err
	}
	if err := cf.Apply(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// newApp builds every service a command may need.
func newApp(ctx context.Context, cf *CommonFlags) (*app, error) {
	cfg, err := loadConfig(cf)
	if err != nil {
		return nil, err
	}
	// NO_COLOR is honoured per https://no-color.org
	if cf.NoColor || os.Getenv("NO_COLOR") != "" {
		ui.SetNoColor(true)
	}
	if cf.Silent {
		ui.SetSilent(true)
	}

	logger := newLogger(cfg.Log, cfg.SlogLevel(), os.Stderr)
	slog.SetDefault(logger)

	rec, err := metrics.New()
	if err != nil {
		return nil, fmt.Errorf("metrics: %w", err)
	}

	tel, err := telemetry.Setup(ctx, telemetry.Options{
		Endpoint:    cfg.Telemetry.OTLPEndpoint,
		ServiceName: cfg.Telemetry.ServiceName,
		Insecure:    cfg.Telemetry.Insecure,
	})
	if err != nil {
		// Tracing is optional; carry on without it.
		logger.Warn("telemetry disabled", slog.Any("error", err))
		tel = &telemetry.Provider{}
	}

	api, err := newAPIClient(cfg, logger, rec)
	if err != nil {
		return nil, err
	}

	tmpl, err := export.LoadTemplateRenderer(cfg.Export.Template)
	if err != nil {
		return nil, err
	}
	filter, _ := grouping.ParseFilter(cfg.View.Filter)

	return &app{
		cfg:       cfg,
		metrics:   rec,
		telemetry: tel,
		logger:    logger,
		runner: &cli.Runner{
			API: api,
			Exporter: &export.Exporter{
				Remote:     api,
				Downloader: export.DirDownloader{Dir: cfg.Export.Dir},
				Template:   tmpl,
				Logger:     logger,
				Metrics:    rec,
			},
			Clipboard: clipboard.New(logger, rec),
			Metrics:   rec,
			Logger:    logger,
			PageSize:  cfg.View.PageSize,
			Filter:    filter,
		},
	}, nil
}

func newAPIClient(cfg *config.Config, logger *slog.Logger, rec *metrics.Recorder) (*apiclient.Client, error) {
	httpCfg := httpclient.DefaultConfig()
	httpCfg.Timeout = cfg.Server.ScanTimeout
	httpCfg.Proxy = cfg.Server.Proxy
	httpCfg.InsecureSkipVerify = cfg.Server.InsecureSkipVerify
	httpCfg.UserAgent = cfg.Server.UserAgent

	rc := retry.DefaultConfig()
	rc.MaxAttempts = 1 + cfg.Server.Retries

	return apiclient.New(apiclient.Options{
		BaseURL:     cfg.Server.BaseURL,
		HTTP:        httpCfg,
		Timeout:     cfg.Server.Timeout,
		ScanTimeout: cfg.Server.ScanTimeout,
		RateLimit:   cfg.Server.RateLimit,
		Retry:       &rc,
		Logger:      logger,
		Metrics:     rec,
	})
}

// newLogger builds the process logger. Format "json" selects the JSON
// handler; anything else is text.
func newLogger(lc config.LogConfig, level slog.Level, w io.Writer) *slog.Logger {
	opts := &slog.HandlerOptions{Level: level}
	if strings.EqualFold(lc.Format, "json") {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

// close flushes spans and writes the metrics file, if one is configured.
func (a *app) close(ctx context.Context) {
	if err := a.telemetry.Shutdown(ctx); err != nil {
		a.logger.Warn("telemetry shutdown", slog.Any("error", err))
	}
	if path := a.cfg.Telemetry.MetricsFile; path != "" {
		if err := a.metrics.WriteFile(path); err != nil {
			a.logger.Warn("write metrics file", slog.String("path", path), slog.Any("error", err))
		}
	}
}

// finish closes the app and exits non-zero when err is set.
func (a *app) finish(ctx context.Context, err error) {
	a.close(ctx)
	if err != nil {
		exitWithCode(err)
	}
}

// mustApp is newApp for command entry points.
func mustApp(ctx context.Context, cf *CommonFlags) *app {
	a, err := newApp(ctx, cf)
	if err != nil {
		exitWithCode(err)
	}
	return a
}

// printTarget shows where a server command is going.
func (a *app) printTarget() {
	ui.PrintConfigLine("Server", a.cfg.Server.BaseURL)
	if a.cfg.Server.Proxy != "" {
		ui.PrintConfigLine("Proxy", a.cfg.Server.Proxy)
	}
	if a.telemetry.Enabled() {
		ui.PrintConfigLine("Tracing", a.cfg.Telemetry.OTLPEndpoint)
	}
	ui.PrintConfigLine("User agent", userAgent(a.cfg))
	fmt.Fprintln(os.Stderr)
}

func userAgent(cfg *config.Config) string {
	if cfg.Server.UserAgent != "" {
		return cfg.Server.UserAgent
	}
	return defaults.UserAgent("")
}

// setExportDir redirects downloads for this invocation.
func (a *app) setExportDir(dir string) {
	a.cfg.Export.Dir = dir
	a.runner.Exporter.Downloader = export.DirDownloader{Dir: dir}
}
