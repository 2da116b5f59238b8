// Package clipboard copies text to the system clipboard.
//
// The platform clipboard tool is preferred. Without one, the text is sent to
// the terminal as an OSC 52 escape sequence, which most modern terminals
// (and tmux/screen with passthrough) turn into a clipboard write.
package clipboard

import (
	"context"
	"log/slog"

	"github.com/benjaminpeng/sql-audit/pkg/metrics"
)

// Method names how a copy was delivered.
type Method string

const (
	MethodNone   Method = "none"
	MethodNative Method = "native"
	MethodOSC52  Method = "osc52"
)

// Backend is one way of writing to the clipboard.
type Backend interface {
	Copy(ctx context.Context, text string) error
}

// Service tries Native, then Fallback.
type Service struct {
	Native   Backend
	Fallback Backend
	Logger   *slog.Logger
	Metrics  *metrics.Recorder
}

// New returns a Service with the platform tool and the OSC 52 fallback on
// stdout.
func New(logger *slog.Logger, m *metrics.Recorder) *Service {
	return &Service{
		Native:   NewNative(),
		Fallback: NewOSC52(nil),
		Logger:   logger,
		Metrics:  m,
	}
}

// Copy writes text to the clipboard. Empty text is a no-op that returns
// MethodNone and no error.
func (s *Service) Copy(ctx context.Context, text string) (Method, error) {
	if text == "" {
		return MethodNone, nil
	}
	log := s.logger()

	nativeErr := ErrNoNativeTool
	if s.Native != nil {
		nativeErr = s.Native.Copy(ctx, text)
		if nativeErr == nil {
			s.Metrics.ObserveCopy(string(MethodNative))
			return MethodNative, nil
		}
	}
	log.Debug("native clipboard unavailable", slog.Any("error", nativeErr))

	fallbackErr := ErrNotTerminal
	if s.Fallback != nil {
		fallbackErr = s.Fallback.Copy(ctx, text)
		if fallbackErr == nil {
			s.Metrics.ObserveCopy(string(MethodOSC52))
			return MethodOSC52, nil
		}
	}
	return MethodNone, &ClipboardError{Native: nativeErr, Fallback: fallbackErr}
}

func (s *Service) logger() *slog.Logger {
	if s.Logger != nil {
		return s.Logger
	}
	return slog.Default()
}
