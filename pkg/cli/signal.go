package cli

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/benjaminpeng/sql-audit/pkg/ui"
)

// SignalContext returns a context cancelled on SIGINT/SIGTERM. In-flight
// requests observe the cancellation and abort. If a second signal arrives
// during gracePeriod, the process exits with status 1.
//
//	ctx, cancel := cli.SignalContext(context.Background(), duration.SignalGrace)
//	defer cancel()
func SignalContext(parent context.Context, gracePeriod time.Duration) (context.Context, context.CancelFunc) {
	return signalContext(parent, gracePeriod, nil, nil)
}

// signalContext is SignalContext with the signal source and exit function
// injectable. A nil sigChan subscribes to the real signals.
func signalContext(
	parent context.Context,
	gracePeriod time.Duration,
	sigChan chan os.Signal,
	exitFn func(int),
) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(parent)

	ownChannel := sigChan == nil
	if ownChannel {
		sigChan = make(chan os.Signal, 1)
		signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	}
	if exitFn == nil {
		exitFn = os.Exit
	}

	go func() {
		defer func() {
			if ownChannel {
				signal.Stop(sigChan)
			}
		}()
		select {
		case <-sigChan:
			ui.PrintWarning("Interrupt received, cancelling request...")
			cancel()

			timer := time.NewTimer(gracePeriod)
			defer timer.Stop()
			select {
			case <-sigChan:
				exitFn(1)
			case <-timer.C:
			}
		case <-ctx.Done():
		}
	}()

	return ctx, cancel
}
