package ui

import (
	"fmt"
	"io"
	"os"
	"runtime"
	"strings"
	"sync"
	"unicode"

	"golang.org/x/term"
)

var (
	glyphsOnce sync.Once
	glyphsOK   bool
)

// UnicodeTerminal reports whether stderr can show emoji and other pictographs.
// It is false when stderr is not a terminal, when TERM is "dumb", and on
// Windows outside Windows Terminal (WT_SESSION unset), where console fonts
// lack the glyphs.
func UnicodeTerminal() bool {
	glyphsOnce.Do(func() {
		glyphsOK = detectGlyphs(os.Getenv, StderrIsTerminal(), runtime.GOOS)
	})
	return glyphsOK
}

func detectGlyphs(getenv func(string) string, tty bool, goos string) bool {
	if !tty || getenv("TERM") == "dumb" {
		return false
	}
	if goos == "windows" {
		return getenv("WT_SESSION") != ""
	}
	return true
}

// StderrIsTerminal reports whether stderr is attached to a terminal.
func StderrIsTerminal() bool {
	return term.IsTerminal(int(os.Stderr.Fd()))
}

// StdinIsTerminal reports whether stdin is attached to a terminal.
// Interactive viewing expects it.
func StdinIsTerminal() bool {
	return term.IsTerminal(int(os.Stdin.Fd()))
}

// Width returns the width of the stdout terminal, or fallback when stdout
// is not a terminal.
func Width(fallback int) int {
	w, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || w <= 0 {
		return fallback
	}
	return w
}

// Icon picks the pictograph or its ASCII stand-in: ui.Icon("✅", "[+]").
func Icon(glyph, ascii string) string {
	if UnicodeTerminal() {
		return glyph
	}
	return ascii
}

// SanitizeString removes pictographs from s when the terminal cannot show
// them. Letters, digits and punctuation of every script survive, so rule
// names and SQL in any language are printed intact.
func SanitizeString(s string) string {
	if UnicodeTerminal() {
		return s
	}
	return stripPictographs(s)
}

func stripPictographs(s string) string {
	return strings.Map(func(r rune) rune {
		if keepRune(r) {
			return r
		}
		return -1
	}, s)
}

// keepRune drops symbols (emoji, dingbats, box drawing, braille), variation
// selectors and zero-width joiners. Latin-1 is always kept.
func keepRune(r rune) bool {
	switch {
	case r <= 0xFF:
		return true
	case r == 0x200D, r >= 0xFE00 && r <= 0xFE0F:
		return false
	case unicode.IsLetter(r), unicode.IsNumber(r), unicode.IsPunct(r), unicode.IsSpace(r), unicode.IsMark(r):
		return true
	}
	return false
}

// Fprintf writes to w, stripping pictographs the terminal cannot show.
func Fprintf(w io.Writer, format string, args ...any) {
	fmt.Fprint(w, SanitizeString(fmt.Sprintf(format, args...)))
}
