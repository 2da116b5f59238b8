package clipboard

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/aymanbagabas/go-osc52/v2"
	"golang.org/x/term"
)

// OSC52 writes the clipboard escape sequence to a terminal.
type OSC52 struct {
	Out io.Writer

	// IsTerminal reports whether Out is a terminal. Nil checks Out's file
	// descriptor.
	IsTerminal func() bool

	// Getenv detects tmux and screen. Nil means os.Getenv.
	Getenv func(string) string
}

// NewOSC52 returns an OSC52 backend on out, or stdout when out is nil.
func NewOSC52(out io.Writer) *OSC52 {
	if out == nil {
		out = os.Stdout
	}
	return &OSC52{Out: out}
}

// Copy implements Backend.
func (o *OSC52) Copy(ctx context.Context, text string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if !o.terminal() {
		return ErrNotTerminal
	}

	getenv := o.Getenv
	if getenv == nil {
		getenv = os.Getenv
	}

	seq := osc52.New(text)
	switch {
	case getenv("TMUX") != "":
		seq = seq.Tmux()
	case strings.HasPrefix(getenv("TERM"), "screen"):
		seq = seq.Screen()
	}
	if _, err := seq.WriteTo(o.Out); err != nil {
		return fmt.Errorf("write osc52 sequence: %w", err)
	}
	return nil
}

func (o *OSC52) terminal() bool {
	if o.IsTerminal != nil {
		return o.IsTerminal()
	}
	f, ok := o.Out.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
