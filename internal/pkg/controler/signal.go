package controler

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/dum-monitor/dum/internal/pkg/log"
)

// SignalChan receives the OS signals that interrupt a run.
var SignalChan = make(chan os.Signal, 1)

// WatchSignals cancels the run context when SIGINT or SIGTERM is received.
// Deletions already committed stay committed; the pipeline notices the
// cancellation between stages and reports the run as interrupted.
func WatchSignals(ctx context.Context, cancel context.CancelFunc, logger *log.Logger) {
	signal.Notify(SignalChan, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(SignalChan)

	select {
	case <-ctx.Done():
		return
	case sig := <-SignalChan:
		logger.WithComponent("controler.signalWatcher").Warnf("received %s, interrupting the run", sig)
		cancel()
	}
}
