package clipboard

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"runtime"
	"strings"

	"github.com/benjaminpeng/sql-audit/pkg/duration"
)

// Command is a clipboard tool invocation that reads the text on stdin.
type Command struct {
	Name string
	Args []string
}

// Native pipes text into the first clipboard tool found on PATH.
type Native struct {
	// Commands are tried in order.
	Commands []Command

	// LookPath and Run are replaceable for tests.
	LookPath func(file string) (string, error)
	Run      func(ctx context.Context, path string, args []string, stdin string) error
}

// NewNative returns a Native configured for the current platform.
func NewNative() *Native {
	return &Native{
		Commands: PlatformCommands(runtime.GOOS, os.Getenv),
		LookPath: exec.LookPath,
		Run:      runCommand,
	}
}

// PlatformCommands lists the clipboard tools for goos in preference order.
// Under Wayland wl-copy is tried before the X11 tools.
func PlatformCommands(goos string, getenv func(string) string) []Command {
	switch goos {
	case "darwin":
		return []Command{{Name: "pbcopy"}}
	case "windows":
		return []Command{{Name: "clip.exe"}}
	}

	x11 := []Command{
		{Name: "xclip", Args: []string{"-selection", "clipboard"}},
		{Name: "xsel", Args: []string{"--clipboard", "--input"}},
	}
	wayland := Command{Name: "wl-copy"}
	// WSL exposes the Windows clipboard.
	wsl := Command{Name: "clip.exe"}

	if getenv("WAYLAND_DISPLAY") != "" {
		return append([]Command{wayland}, append(x11, wsl)...)
	}
	return append(x11, wayland, wsl)
}

// Copy implements Backend.
func (n *Native) Copy(ctx context.Context, text string) error {
	lookPath := n.LookPath
	if lookPath == nil {
		lookPath = exec.LookPath
	}
	run := n.Run
	if run == nil {
		run = runCommand
	}

	for _, c := range n.Commands {
		path, err := lookPath(c.Name)
		if err != nil {
			continue
		}
		if err := run(ctx, path, c.Args, text); err != nil {
			return fmt.Errorf("%s: %w", c.Name, err)
		}
		return nil
	}
	return ErrNoNativeTool
}

// runCommand pipes stdin to the tool. xclip and friends can block without a
// display, so the run is bounded by duration.ContextShort.
func runCommand(ctx context.Context, path string, args []string, stdin string) error {
	ctx, cancel := context.WithTimeout(ctx, duration.ContextShort)
	defer cancel()

	cmd := exec.CommandContext(ctx, path, args...)
	cmd.Stdin = strings.NewReader(stdin)
	if out, err := cmd.CombinedOutput(); err != nil {
		if msg := strings.TrimSpace(string(out)); msg != "" {
			return fmt.Errorf("%w: %s", err, msg)
		}
		return err
	}
	return nil
}
