package ui

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// Build information, set with -ldflags:
// go build -ldflags "-X github.com/benjaminpeng/sql-audit/pkg/ui.Commit=abc123"
var (
	Version   = "1.2.0"
	BuildDate = "2026-10-19"
	Commit    = "dev"
)

// Status messages go to stderr so stdout carries only reports.
var (
	mu     sync.RWMutex
	msgOut io.Writer = os.Stderr
	silent bool
)

// SetOutput redirects status messages and returns a func restoring the
// previous writer.
func SetOutput(w io.Writer) (restore func()) {
	mu.Lock()
	prev := msgOut
	msgOut = w
	mu.Unlock()
	return func() {
		mu.Lock()
		msgOut = prev
		mu.Unlock()
	}
}

// SetSilent suppresses the banner, config lines and info messages. Errors,
// warnings and successes are still printed.
func SetSilent(v bool) {
	mu.Lock()
	defer mu.Unlock()
	silent = v
}

// IsSilent reports whether SetSilent(true) is in effect.
func IsSilent() bool {
	mu.RLock()
	defer mu.RUnlock()
	return silent
}

// SetNoColor switches lipgloss to the plain ASCII profile. There is no way
// back; lipgloss only detects the profile once.
func SetNoColor(v bool) {
	if v {
		lipgloss.SetColorProfile(termenv.Ascii)
	}
}

const bannerArt = `
           _                  _ _ _
 ___  __ _| | __ _ _   _  __| (_) |_
/ __|/ _` + "`" + ` | |/ _` + "`" + ` | | | |/ _` + "`" + ` | | __|
\__ \ (_| | | (_| | |_| | (_| | | |_
|___/\__, |_|\__,_|\__,_|\__,_|_|\__|
        |_|
`

// emit writes one status line unless quiet applies in silent mode.
func emit(quiet bool, format string, args ...any) {
	mu.RLock()
	w, skip := msgOut, quiet && silent
	mu.RUnlock()
	if skip {
		return
	}
	fmt.Fprintf(w, format, args...)
}

// PrintBanner prints the logo and version.
func PrintBanner() {
	for _, line := range strings.Split(strings.Trim(bannerArt, "\n"), "\n") {
		emit(true, "%s\n", BannerStyle.Render(line))
	}
	emit(true, "%29s\n\n", VersionStyle.Render("v"+Version))
}

// PrintConfigLine prints a " :: key : value" line.
func PrintConfigLine(key, value string) {
	emit(true, " :: %-14s : %s\n", ConfigLabelStyle.Render(key), ConfigValueStyle.Render(SanitizeString(value)))
}

// PrintInfo prints a progress note.
func PrintInfo(message string) {
	emit(true, "  %s %s\n", VersionStyle.Render("*"), SanitizeString(message))
}

// PrintSuccess prints a completed action.
func PrintSuccess(message string) {
	emit(false, "%s\n", PassStyle.Render("  [+] "+SanitizeString(message)))
}

// PrintWarning prints a recoverable problem.
func PrintWarning(message string) {
	emit(false, "%s\n", WarnStyle.Render("  [!] "+SanitizeString(message)))
}

// PrintError prints a failure.
func PrintError(message string) {
	emit(false, "%s\n", FailStyle.Render("  [X] "+SanitizeString(message)))
}
