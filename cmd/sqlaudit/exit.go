package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/benjaminpeng/sql-audit/pkg/apiclient"
	"github.com/benjaminpeng/sql-audit/pkg/cli"
	"github.com/benjaminpeng/sql-audit/pkg/config"
	"github.com/benjaminpeng/sql-audit/pkg/defaults"
	"github.com/benjaminpeng/sql-audit/pkg/export"
	"github.com/benjaminpeng/sql-audit/pkg/model"
	"github.com/benjaminpeng/sql-audit/pkg/ui"
)

// exitWithError prints a formatted error message and exits with the user
// error code. Use this instead of ui.PrintError + os.Exit for consistent CLI
// error handling.
func exitWithError(format string, args ...any) {
	ui.PrintError(fmt.Sprintf(format, args...))
	os.Exit(defaults.ExitUserError)
}

// exitWithUsage prints an error message followed by a usage hint, then exits.
func exitWithUsage(msg, usage string) {
	ui.PrintError(msg)
	fmt.Fprintln(os.Stderr)
	fmt.Fprintln(os.Stderr, "Usage:", usage)
	os.Exit(defaults.ExitUserError)
}

// exitCode maps a command error to the process exit code.
func exitCode(err error) int {
	switch {
	case err == nil:
		return defaults.ExitSuccess
	case errors.Is(err, apiclient.ErrTransport),
		errors.Is(err, apiclient.ErrMalformedResponse):
		return defaults.ExitNetworkError
	case errors.Is(err, apiclient.ErrValidation),
		errors.Is(err, config.ErrInvalidConfig),
		errors.Is(err, config.ErrMissingRequired),
		errors.Is(err, model.ErrNotScanReport),
		errors.Is(err, model.ErrEmptyDocument),
		errors.Is(err, export.ErrUnknownFormat),
		errors.Is(err, export.ErrNoTemplate),
		errors.Is(err, cli.ErrInvalidFilter),
		errors.Is(err, cli.ErrNoSelection),
		errors.Is(err, cli.ErrNoExample),
		errors.Is(err, cli.ErrEmptyField),
		errors.Is(err, fs.ErrNotExist):
		return defaults.ExitUserError
	}
	return defaults.ExitInternalError
}

// exitWithCode prints err and exits with the code exitCode assigns it.
func exitWithCode(err error) {
	ui.PrintError(err.Error())
	os.Exit(exitCode(err))
}
