// Package defaults provides canonical default values for the entire codebase.
// This is the SINGLE SOURCE OF TRUTH for runtime configuration defaults.
//
// Usage:
//
//	ctrl := pagination.New(defaults.PageSize)
//	req.Header.Set("Content-Type", defaults.ContentTypeJSON)
//
// DO NOT use hardcoded values like `pageSize: 50` anywhere.
// Instead, reference the appropriate constant from this package.
package defaults

import "fmt"

// Version is the current sqlaudit version
const Version = "1.2.0"

// ToolName is the canonical tool name used in user agents, metrics and traces.
const ToolName = "sqlaudit"

// ============================================================================
// REPORT VIEW SETTINGS
// ============================================================================

const (
	// PageSize is how many violations one "show more" step reveals (50)
	PageSize = 50

	// ViolationLimit is the cap the analysis service applies before it sets
	// limitReached on a report (1000)
	ViolationLimit = 1000

	// UnknownPath groups violations whose fragment carries no relative path
	UnknownPath = "unknown"

	// UncategorizedRule is the category label for rules without one
	UncategorizedRule = "other"

	// TerminalWidth is assumed when stdout is not a terminal (120)
	TerminalWidth = 120
)

// ============================================================================
// UPLOAD LIMITS
// ============================================================================

const (
	// MaxUploadSize is the largest rule document or SQL script accepted (10MB)
	MaxUploadSize int64 = 10 * 1024 * 1024

	// RuleDocumentExt is the required extension for rule documents
	RuleDocumentExt = ".docx"

	// SQLScriptExt is the required extension for SQL script scans
	SQLScriptExt = ".sql"
)

// ============================================================================
// EXPORT SETTINGS
// ============================================================================

const (
	// ExportFilePrefix prefixes every generated export file name
	ExportFilePrefix = "sql-audit-report"

	// ExportTimestampLayout formats the timestamp part of generated names
	ExportTimestampLayout = "20060102-150405"

	// ExportDir is the default download directory
	ExportDir = "."
)

// ============================================================================
// RETRY SETTINGS
// ============================================================================
//
// Only idempotent reads are retried. Scans, uploads and exports never are.
// ============================================================================

const (
	// RetryNone disables retries (0)
	RetryNone = 0

	// RetryLow is for listing calls (2)
	RetryLow = 2
)

// ============================================================================
// HTTP CONTENT TYPES
// ============================================================================

const (
	// ContentTypeJSON is application/json
	ContentTypeJSON = "application/json"

	// ContentTypeMarkdown is the media type of markdown exports
	ContentTypeMarkdown = "text/markdown; charset=utf-8"

	// ContentTypeOctetStream is application/octet-stream
	ContentTypeOctetStream = "application/octet-stream"
)

// ============================================================================
// SERVICE
// ============================================================================

const (
	// ServerURL is the default analysis service base URL
	ServerURL = "http://localhost:8080"

	// RequestsPerSecond bounds outbound API calls (0 disables the limiter)
	RequestsPerSecond = 10
)

// UserAgent returns the sqlaudit user agent with context
func UserAgent(context string) string {
	if context == "" {
		return fmt.Sprintf("%s/%s", ToolName, Version)
	}
	return fmt.Sprintf("%s/%s (%s)", ToolName, Version, context)
}
