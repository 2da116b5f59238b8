package model

import "errors"

// Sentinel errors for report loading.
// Callers should use errors.Is() to check for these.
var (
	// ErrNotScanReport indicates a JSON document decoded cleanly but carries
	// none of the fields a scan report always has.
	ErrNotScanReport = errors.New("model: document is not a scan report")

	// ErrEmptyDocument indicates there was nothing to decode.
	ErrEmptyDocument = errors.New("model: empty document")
)
