// Package config loads sqlaudit settings from a YAML file, then applies
// environment overrides. Command-line flags are applied last by the CLI.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/url"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/benjaminpeng/sql-audit/pkg/defaults"
	"github.com/benjaminpeng/sql-audit/pkg/duration"
	"github.com/benjaminpeng/sql-audit/pkg/export"
	"github.com/benjaminpeng/sql-audit/pkg/grouping"
)

// Environment variables read by ApplyEnv.
const (
	EnvConfig       = "SQLAUDIT_CONFIG"
	EnvServer       = "SQLAUDIT_SERVER"
	EnvExportDir    = "SQLAUDIT_EXPORT_DIR"
	EnvOTLPEndpoint = "SQLAUDIT_OTLP_ENDPOINT"
	EnvLogLevel     = "SQLAUDIT_LOG_LEVEL"
)

// Config holds every setting the CLI consumes.
type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Export    ExportConfig    `yaml:"export"`
	View      ViewConfig      `yaml:"view"`
	Telemetry TelemetryConfig `yaml:"telemetry"`
	Log       LogConfig       `yaml:"log"`
}

// ServerConfig describes how to reach the audit service.
type ServerConfig struct {
	// BaseURL is the service root, e.g. http://localhost:8080
	BaseURL string `yaml:"base_url"`

	// Timeout bounds rule listing and other short calls
	Timeout time.Duration `yaml:"timeout"`

	// ScanTimeout bounds scans and uploads
	ScanTimeout time.Duration `yaml:"scan_timeout"`

	// RateLimit is requests per second; negative disables limiting
	RateLimit float64 `yaml:"rate_limit"`

	// Retries is how often idempotent reads are retried
	Retries int `yaml:"retries"`

	Proxy              string `yaml:"proxy"`
	InsecureSkipVerify bool   `yaml:"insecure_skip_verify"`
	UserAgent          string `yaml:"user_agent"`
}

// ExportConfig sets export defaults.
type ExportConfig struct {
	Dir      string `yaml:"dir"`
	Format   string `yaml:"format"`
	Template string `yaml:"template"`
}

// ViewConfig sets report view defaults.
type ViewConfig struct {
	PageSize int    `yaml:"page_size"`
	Filter   string `yaml:"filter"`
}

// TelemetryConfig enables tracing and metric dumps.
type TelemetryConfig struct {
	OTLPEndpoint string `yaml:"otlp_endpoint"`
	Insecure     bool   `yaml:"insecure"`
	ServiceName  string `yaml:"service_name"`
	MetricsFile  string `yaml:"metrics_file"`
}

// LogConfig controls the default slog handler.
type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// Default returns a working configuration for a local service.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			BaseURL:     defaults.ServerURL,
			Timeout:     duration.HTTPAPI,
			ScanTimeout: duration.HTTPScan,
			RateLimit:   defaults.RequestsPerSecond,
			Retries:     defaults.RetryLow,
		},
		Export: ExportConfig{
			Dir:    defaults.ExportDir,
			Format: string(export.Markdown),
		},
		View: ViewConfig{
			PageSize: defaults.PageSize,
			Filter:   string(grouping.All),
		},
		Telemetry: TelemetryConfig{
			ServiceName: defaults.ToolName,
		},
		Log: LogConfig{
			Level:  "warn",
			Format: "text",
		},
	}
}

// Load builds the effective configuration: defaults, then the YAML file at
// path (or $SQLAUDIT_CONFIG when path is empty), then the environment. The
// result is validated.
func Load(path string) (*Config, error) {
	if path == "" {
		path = os.Getenv(EnvConfig)
	}

	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
		if err := cfg.decode(data); err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
	}

	cfg.ApplyEnv(os.Getenv)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Parse decodes YAML over the defaults and validates the result. It does
// not read the environment.
func Parse(data []byte) (*Config, error) {
	cfg := Default()
	if err := cfg.decode(data); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// decode overlays data on c. Unknown keys are rejected.
func (c *Config) decode(data []byte) error {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(c); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	return nil
}

// ApplyEnv overrides fields from the SQLAUDIT_* variables that are set.
func (c *Config) ApplyEnv(getenv func(string) string) {
	if v := strings.TrimSpace(getenv(EnvServer)); v != "" {
		c.Server.BaseURL = v
	}
	if v := strings.TrimSpace(getenv(EnvExportDir)); v != "" {
		c.Export.Dir = v
	}
	if v := strings.TrimSpace(getenv(EnvOTLPEndpoint)); v != "" {
		c.Telemetry.OTLPEndpoint = v
	}
	if v := strings.TrimSpace(getenv(EnvLogLevel)); v != "" {
		c.Log.Level = v
	}
}

// Validate reports the first invalid field.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Server.BaseURL) == "" {
		return fmt.Errorf("%w: server.base_url", ErrMissingRequired)
	}
	u, err := url.Parse(c.Server.BaseURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("%w: server.base_url %q must be an http(s) URL", ErrInvalidConfig, c.Server.BaseURL)
	}
	if c.Server.Timeout <= 0 {
		return fmt.Errorf("%w: server.timeout must be positive", ErrInvalidConfig)
	}
	if c.Server.ScanTimeout <= 0 {
		return fmt.Errorf("%w: server.scan_timeout must be positive", ErrInvalidConfig)
	}
	if c.Server.Retries < 0 {
		return fmt.Errorf("%w: server.retries must not be negative", ErrInvalidConfig)
	}
	if c.View.PageSize <= 0 {
		return fmt.Errorf("%w: view.page_size must be positive", ErrInvalidConfig)
	}
	if _, ok := grouping.ParseFilter(c.View.Filter); !ok {
		return fmt.Errorf("%w: view.filter %q", ErrInvalidConfig, c.View.Filter)
	}
	if _, err := export.ParseFormat(c.Export.Format); err != nil {
		return fmt.Errorf("%w: export.format %q", ErrInvalidConfig, c.Export.Format)
	}
	if _, err := parseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("%w: log.level %q", ErrInvalidConfig, c.Log.Level)
	}
	switch strings.ToLower(c.Log.Format) {
	case "", "text", "json":
	default:
		return fmt.Errorf("%w: log.format %q", ErrInvalidConfig, c.Log.Format)
	}
	return nil
}

// SlogLevel returns the configured level; invalid values fall back to warn.
func (c *Config) SlogLevel() slog.Level {
	lvl, err := parseLevel(c.Log.Level)
	if err != nil {
		return slog.LevelWarn
	}
	return lvl
}

func parseLevel(s string) (slog.Level, error) {
	var lvl slog.Level
	if strings.TrimSpace(s) == "" {
		return slog.LevelWarn, nil
	}
	err := lvl.UnmarshalText([]byte(s))
	return lvl, err
}
