// Package httpclient builds the HTTP client used to reach the audit service.
// Every request gets the tool's User-Agent and an X-Request-ID so service
// logs can be correlated with client logs.
package httpclient

import (
	"crypto/tls"
	"net"
	"net/http"
	"net/url"
	"time"

	"github.com/benjaminpeng/sql-audit/pkg/duration"
)

// Config holds HTTP client configuration options.
type Config struct {
	// Timeout is the total request timeout (default: duration.HTTPAPI).
	// Scans of large repositories need duration.HTTPScan.
	Timeout time.Duration

	// DialTimeout bounds connection setup (default: duration.HTTPDial).
	DialTimeout time.Duration

	// IdleConnTimeout is how long idle connections stay pooled
	// (default: duration.HTTPIdleConn).
	IdleConnTimeout time.Duration

	// MaxIdleConns caps pooled connections (default: 10).
	MaxIdleConns int

	// Proxy is an optional HTTP/HTTPS proxy URL. Empty uses the environment.
	Proxy string

	// InsecureSkipVerify disables certificate checks for self-signed
	// internal deployments.
	InsecureSkipVerify bool

	// UserAgent overrides defaults.UserAgent("").
	UserAgent string

	// Headers are added to every request.
	Headers http.Header
}

// DefaultConfig returns the settings used for ordinary API calls.
func DefaultConfig() Config {
	return Config{
		Timeout:         duration.HTTPAPI,
		DialTimeout:     duration.HTTPDial,
		IdleConnTimeout: duration.HTTPIdleConn,
		MaxIdleConns:    10,
	}
}

// WithTimeout returns DefaultConfig with a different request timeout.
func WithTimeout(timeout time.Duration) Config {
	cfg := DefaultConfig()
	cfg.Timeout = timeout
	return cfg
}

// New creates a client from cfg. Zero values take the DefaultConfig value.
func New(cfg Config) *http.Client {
	def := DefaultConfig()
	if cfg.Timeout == 0 {
		cfg.Timeout = def.Timeout
	}
	if cfg.DialTimeout == 0 {
		cfg.DialTimeout = def.DialTimeout
	}
	if cfg.IdleConnTimeout == 0 {
		cfg.IdleConnTimeout = def.IdleConnTimeout
	}
	if cfg.MaxIdleConns == 0 {
		cfg.MaxIdleConns = def.MaxIdleConns
	}

	dialer := &net.Dialer{
		Timeout:   cfg.DialTimeout,
		KeepAlive: duration.HTTPAPI,
	}

	transport := &http.Transport{
		Proxy:               http.ProxyFromEnvironment,
		DialContext:         dialer.DialContext,
		MaxIdleConns:        cfg.MaxIdleConns,
		MaxIdleConnsPerHost: cfg.MaxIdleConns,
		IdleConnTimeout:     cfg.IdleConnTimeout,
		TLSHandshakeTimeout: cfg.DialTimeout,
		ForceAttemptHTTP2:   true,
		TLSClientConfig: &tls.Config{
			InsecureSkipVerify: cfg.InsecureSkipVerify,
		},
	}

	// Malformed proxy URLs are ignored; the environment proxy stays in place.
	if cfg.Proxy != "" {
		if proxyURL, err := url.Parse(cfg.Proxy); err == nil && proxyURL.Host != "" {
			transport.Proxy = http.ProxyURL(proxyURL)
		}
	}

	return &http.Client{
		Transport: Wrap(transport, cfg.UserAgent, cfg.Headers),
		Timeout:   cfg.Timeout,
	}
}
