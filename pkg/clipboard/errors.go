package clipboard

import (
	"errors"
	"fmt"
)

// Sentinel errors for clipboard operations.
var (
	// ErrClipboard is matched by every ClipboardError.
	ErrClipboard = errors.New("clipboard: copy failed")

	// ErrNoNativeTool indicates none of the platform clipboard tools exist.
	ErrNoNativeTool = errors.New("clipboard: no native clipboard tool found")

	// ErrNotTerminal indicates the OSC 52 fallback has no terminal to write to.
	ErrNotTerminal = errors.New("clipboard: output is not a terminal")
)

// ClipboardError is returned when both the native and the fallback method
// failed.
type ClipboardError struct {
	Native   error
	Fallback error
}

func (e *ClipboardError) Error() string {
	return fmt.Sprintf("clipboard: native: %v; fallback: %v", e.Native, e.Fallback)
}

// Unwrap exposes both causes and ErrClipboard.
func (e *ClipboardError) Unwrap() []error {
	errs := []error{ErrClipboard}
	if e.Native != nil {
		errs = append(errs, e.Native)
	}
	if e.Fallback != nil {
		errs = append(errs, e.Fallback)
	}
	return errs
}
