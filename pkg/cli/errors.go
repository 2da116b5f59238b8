package cli

import "errors"

// Sentinel errors for command failures.
// Callers should use errors.Is() to check for these.
var (
	// ErrUnknownCommand indicates the command name is not registered.
	ErrUnknownCommand = errors.New("cli: unknown command")

	// ErrBadOptions indicates a command received options of the wrong type.
	ErrBadOptions = errors.New("cli: wrong options for command")

	// ErrInvalidFilter indicates a severity filter name is not recognized.
	ErrInvalidFilter = errors.New("cli: invalid filter")

	// ErrNoSelection indicates no violation matched the -id or -index given.
	ErrNoSelection = errors.New("cli: no matching violation")

	// ErrNoExample indicates the selected violation has no example rewrite.
	ErrNoExample = errors.New("cli: violation has no example rewrite")

	// ErrNoExporter indicates an export was requested from a Runner
	// without an Exporter.
	ErrNoExporter = errors.New("cli: no exporter configured")

	// ErrEmptyField indicates the field chosen for copying is empty.
	ErrEmptyField = errors.New("cli: field is empty")
)
