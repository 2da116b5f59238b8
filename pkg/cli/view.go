package cli

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/benjaminpeng/sql-audit/pkg/grouping"
	"github.com/benjaminpeng/sql-audit/pkg/model"
	"github.com/benjaminpeng/sql-audit/pkg/ui"
	"github.com/benjaminpeng/sql-audit/pkg/viewstate"
)

// ViewOptions configures the view command.
type ViewOptions struct {
	ReportPath string
	Filter     string
	Pages      int

	// Interactive reads single-key commands from In after the first page.
	Interactive bool

	// In is the command source. Nil means os.Stdin.
	In io.Reader
}

// Interactive keys.
const (
	KeyMore    = "m"
	KeyAll     = "a"
	KeyError   = "e"
	KeyWarning = "w"
	KeyInfo    = "i"
	KeyQuit    = "q"
)

var keyFilters = map[string]grouping.Filter{
	KeyAll:     grouping.All,
	KeyError:   grouping.OnlyError,
	KeyWarning: grouping.OnlyWarning,
	KeyInfo:    grouping.OnlyInfo,
}

// RunView renders a saved report and, when interactive, keeps serving
// filter and "show more" keys until q or end of input.
func (r *Runner) RunView(opts *ViewOptions) error {
	report, err := model.Load(opts.ReportPath)
	if err != nil {
		return err
	}
	st, err := r.present(report, opts.Filter, opts.Pages)
	if err != nil {
		return err
	}

	out := r.out()
	ui.RenderSummary(out, report)
	ui.RenderPage(out, st.View())
	if !opts.Interactive {
		return nil
	}

	in := opts.In
	if in == nil {
		in = os.Stdin
	}
	return r.interact(st, in)
}

func (r *Runner) interact(st viewstate.State, in io.Reader) error {
	out := r.out()
	sc := bufio.NewScanner(in)
	prompt(out, st)
	for sc.Scan() {
		key := strings.ToLower(strings.TrimSpace(sc.Text()))
		next, quit, ok := Step(st, key)
		if quit {
			return nil
		}
		if !ok {
			ui.PrintWarning(fmt.Sprintf("Unknown key %q", key))
		} else if next != st {
			st = next
			ui.RenderPage(out, st.View())
		}
		prompt(out, st)
	}
	return sc.Err()
}

// Step applies one interactive key. ok is false for unknown keys; an empty
// key and "m" on the last page leave the state unchanged.
func Step(st viewstate.State, key string) (next viewstate.State, quit, ok bool) {
	switch key {
	case "":
		return st, false, true
	case KeyQuit:
		return st, true, true
	case KeyMore:
		if !st.View().Window.HasMore {
			return st, false, true
		}
		return st.Advance(), false, true
	}
	if f, found := keyFilters[key]; found {
		return st.ChangeFilter(f), false, true
	}
	return st, false, false
}

func prompt(w io.Writer, st viewstate.State) {
	more := ""
	if st.View().Window.HasMore {
		more = "[m] more  "
	}
	ui.Fprintf(w, "%s\n", ui.HelpStyle.Render(fmt.Sprintf(
		"%sfilter %s: [a]ll [e]rror [w]arning [i]nfo  [q]uit", more, st.Filter)))
}
