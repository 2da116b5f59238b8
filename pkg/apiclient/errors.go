package apiclient

import (
	"errors"
	"fmt"
)

// Sentinel errors for audit service calls.
// Callers should use errors.Is() to check for these.
var (
	// ErrValidation is matched by every ValidationError.
	ErrValidation = errors.New("apiclient: invalid input")

	// ErrTransport is matched by every TransportError.
	ErrTransport = errors.New("apiclient: request failed")

	// ErrMalformedResponse indicates a 2xx response whose body could not be
	// decoded.
	ErrMalformedResponse = errors.New("apiclient: malformed response")

	// ErrInvalidBaseURL indicates the configured service URL is unusable.
	ErrInvalidBaseURL = errors.New("apiclient: invalid base URL")
)

// ValidationError is raised before any network call when input is rejected
// locally.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

func (e *ValidationError) Unwrap() error { return ErrValidation }

// TransportError describes a failed request: no response, a non-2xx status,
// or an unreadable body. Message is the service's own error text when it sent
// one.
type TransportError struct {
	Op        string
	Status    int
	Message   string
	RequestID string
	Err       error
}

func (e *TransportError) Error() string {
	msg := e.Message
	if msg == "" {
		msg = genericMessage(e.Op)
	}
	switch {
	case e.Status != 0 && e.Err != nil:
		return fmt.Sprintf("%s (HTTP %d): %v", msg, e.Status, e.Err)
	case e.Status != 0:
		return fmt.Sprintf("%s (HTTP %d)", msg, e.Status)
	case e.Err != nil:
		return fmt.Sprintf("%s: %v", msg, e.Err)
	}
	return msg
}

// Unwrap exposes ErrTransport and the underlying cause.
func (e *TransportError) Unwrap() []error {
	if e.Err == nil {
		return []error{ErrTransport}
	}
	return []error{ErrTransport, e.Err}
}

// Operation names, used for messages, metrics and spans.
const (
	OpScan         = "scan"
	OpScanSQL      = "scan_sql"
	OpRules        = "rules"
	OpDefaultRules = "rules_default"
	OpCustomRules  = "rules_custom"
	OpUploadRules  = "rules_upload"
	OpClearRules   = "rules_clear"
	OpExport       = "export"
	OpExportLatest = "export_latest"
)

func genericMessage(op string) string {
	switch op {
	case OpScan:
		return "scan failed"
	case OpScanSQL:
		return "SQL script scan failed"
	case OpRules, OpDefaultRules, OpCustomRules:
		return "loading rules failed"
	case OpUploadRules:
		return "upload failed"
	case OpClearRules:
		return "clearing custom rules failed"
	case OpExport, OpExportLatest:
		return "export failed"
	}
	return "request failed"
}
