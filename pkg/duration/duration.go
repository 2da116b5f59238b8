// Package duration provides canonical time constants for the entire codebase.
// This is the SINGLE SOURCE OF TRUTH for all time-based configuration.
//
// Usage:
//
//	ctx, cancel := context.WithTimeout(ctx, duration.ContextShort)
//	cfg.Timeout = duration.HTTPAPI
//
// DO NOT use hardcoded time.Duration values like `30 * time.Second` anywhere.
// Instead, reference the appropriate constant from this package.
package duration

import "time"

// ============================================================================
// HTTP CLIENT TIMEOUTS
// ============================================================================

const (
	// HTTPAPI is for rule listing and other quick API calls (30s)
	HTTPAPI = 30 * time.Second

	// HTTPScan is for repository and SQL script scans, which run the full
	// analysis server side before answering (5min)
	HTTPScan = 5 * time.Minute

	// HTTPExport is for server-side report rendering (60s)
	HTTPExport = 60 * time.Second

	// HTTPDial is the connection establishment timeout (10s)
	HTTPDial = 10 * time.Second

	// HTTPIdleConn is how long pooled connections stay open (90s)
	HTTPIdleConn = 90 * time.Second
)

// ============================================================================
// CONTEXT/OPERATION TIMEOUTS
// ============================================================================

const (
	// ContextShort bounds clipboard tools, which can hang without a display (5s)
	ContextShort = 5 * time.Second
)

// ============================================================================
// RETRY / SHUTDOWN
// ============================================================================

const (
	// RetryFast is the initial backoff for idempotent reads (500ms)
	RetryFast = 500 * time.Millisecond

	// RetryMax caps any single backoff delay (5s)
	RetryMax = 5 * time.Second

	// TelemetryShutdown bounds flushing of pending spans on exit (5s)
	TelemetryShutdown = 5 * time.Second

	// SignalGrace is how long a second interrupt is awaited before a hard exit (3s)
	SignalGrace = 3 * time.Second
)
