package export

import (
	"errors"
	"fmt"
)

// Sentinel errors for export operations.
// Callers should use errors.Is() to check for these.
var (
	// ErrExport is matched by every ExportError.
	ErrExport = errors.New("export: failed")

	// ErrUnknownFormat indicates a format name outside markdown/json/template.
	ErrUnknownFormat = errors.New("export: unknown format")

	// ErrNilReport indicates Export was called without a report.
	ErrNilReport = errors.New("export: no report to export")

	// ErrEmptyDocument indicates the remote renderer returned no content.
	ErrEmptyDocument = errors.New("export: empty document")

	// ErrMalformedDocument indicates the remote renderer returned content that
	// does not parse as the requested format.
	ErrMalformedDocument = errors.New("export: malformed document")

	// ErrNoTemplate indicates a template export without a template.
	ErrNoTemplate = errors.New("export: no template configured")
)

// ExportError is returned only when both the remote and the local path failed.
type ExportError struct {
	Format Format
	Remote error
	Local  error
}

func (e *ExportError) Error() string {
	if e.Remote == nil {
		return fmt.Sprintf("export %s: %v", e.Format, e.Local)
	}
	return fmt.Sprintf("export %s: remote: %v; local: %v", e.Format, e.Remote, e.Local)
}

// Unwrap exposes both causes and ErrExport to errors.Is / errors.As.
func (e *ExportError) Unwrap() []error {
	errs := []error{ErrExport}
	if e.Remote != nil {
		errs = append(errs, e.Remote)
	}
	if e.Local != nil {
		errs = append(errs, e.Local)
	}
	return errs
}
