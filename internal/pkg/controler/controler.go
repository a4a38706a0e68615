// Package controler runs the monitoring pipeline: probe free space, decide
// whether eviction is needed, inventory the watched roots, plan, delete and
// notify. One call to Run is one complete pass; nothing is persisted between
// runs.
package controler

import (
	"context"
	"errors"
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/sirupsen/logrus"
	"github.com/spf13/afero"

	"github.com/dum-monitor/dum/internal/pkg/config"
	"github.com/dum-monitor/dum/internal/pkg/deleter"
	"github.com/dum-monitor/dum/internal/pkg/inventory"
	"github.com/dum-monitor/dum/internal/pkg/log"
	"github.com/dum-monitor/dum/internal/pkg/notifier"
	"github.com/dum-monitor/dum/internal/pkg/planner"
	"github.com/dum-monitor/dum/internal/pkg/stats"
	"github.com/dum-monitor/dum/internal/pkg/watchers"
)

// ErrInterrupted reports that a run was cancelled by an OS signal.
var ErrInterrupted = errors.New("run interrupted by signal")

// freeSpace is a hook for tests; it defaults to the real probe.
var freeSpace = watchers.FreeSpace

// Run executes one monitoring and eviction pass. It returns nil when nothing
// needed to be done or the eviction completed (including batches with
// per-item deletion failures), ErrInterrupted on signal cancellation, and a
// descriptive error on configuration, traversal or top-level failures.
func Run(ctx context.Context, cfg *config.Config, logger *log.Logger, fs afero.Fs) error {
	l := logger.WithComponent("controler").WithField("run_id", cfg.RunID)

	runner := stats.NewRunner()
	runner.SetThresholdBytes(cfg.ThresholdBytes())
	if cfg.LiveStats {
		go runner.Printer()
		defer runner.Stop()
	}

	labels := planner.BuildLabels(cfg.Directories)
	threshold := cfg.ThresholdBytes()

	// All watched roots are validated to live on one device, so the first
	// root identifies the volume to probe.
	runner.SetState("probing free space")
	free, err := freeSpace(cfg.Directories[0])
	if err != nil {
		return err
	}
	runner.SetFreeSpaceBefore(free)

	if free >= threshold {
		runner.SetFreeSpaceAfter(free)
		runner.SetState("done")
		l.WithFields(logrus.Fields{
			"free_space": humanize.IBytes(uint64(free)),
			"threshold":  humanize.IBytes(uint64(threshold)),
		}).Info("disk usage is below threshold, no files will be deleted")
		writeMetrics(cfg, runner, l)
		return nil
	}

	if interrupted(ctx) {
		return ErrInterrupted
	}

	runner.SetState("scanning")
	var entries []inventory.Entry
	for _, root := range cfg.Directories {
		rootEntries, err := inventory.Collect(fs, root)
		if err != nil {
			return fmt.Errorf("inventory of %s failed: %w", root, err)
		}

		var rootBytes int64
		for _, entry := range rootEntries {
			rootBytes += entry.Size
		}
		runner.AddInventoried(int64(len(rootEntries)), rootBytes)
		runner.AddRootScanned()

		entries = append(entries, rootEntries...)

		if interrupted(ctx) {
			return ErrInterrupted
		}
	}

	runner.SetState("planning")
	descriptors := planner.Plan(entries, free, threshold, labels)
	runner.SetItemsPlanned(int64(len(descriptors)))

	if len(descriptors) == 0 {
		runner.SetFreeSpaceAfter(free)
		runner.SetState("done")
		l.WithFields(logrus.Fields{
			"free_space": humanize.IBytes(uint64(free)),
			"threshold":  humanize.IBytes(uint64(threshold)),
		}).Warn("free space is below threshold but the watched directories are empty, nothing to delete")
		writeMetrics(cfg, runner, l)
		return nil
	}

	if cfg.DryRun {
		runner.SetFreeSpaceAfter(free)
		runner.SetState("done")
		l.Infof("dry run is enabled, no changes made to the filesystem; the following %d items would be deleted:", len(descriptors))
		for _, descriptor := range descriptors {
			l.Info(descriptor)
		}
		l.Info("dry run complete")
		writeMetrics(cfg, runner, l)
		return nil
	}

	if interrupted(ctx) {
		return ErrInterrupted
	}

	runner.SetState("deleting")
	l.Infof("processing %d items", len(descriptors))
	result, err := deleter.Delete(ctx, fs, descriptors, labels, logger.WithComponent("deleter").WithField("run_id", cfg.RunID))
	runner.AddItemsDeleted(int64(result.Removed))
	runner.AddDeleteErrors(int64(result.Failed))
	if err != nil {
		l.Warnf("deletion batch stopped after %d of %d items, removals already made stay committed", result.Attempted, len(descriptors))
		return ErrInterrupted
	}

	if after, err := freeSpace(cfg.Directories[0]); err == nil {
		runner.SetFreeSpaceAfter(after)
		if after < threshold {
			l.WithFields(logrus.Fields{
				"free_space": humanize.IBytes(uint64(after)),
				"threshold":  humanize.IBytes(uint64(threshold)),
			}).Warn("free space is still below threshold, the inventory was insufficient to cover the deficit")
		}
	}

	runner.SetState("notifying")
	if cfg.NotifyEnabled {
		notify(cfg, descriptors, l)
	} else {
		l.Info("gotify not configured, no notification sent")
	}

	runner.SetState("done")
	l.Info(runner.Summary())
	writeMetrics(cfg, runner, l)

	return nil
}

// notify delivers the executed plan to the configured Gotify endpoint.
// Failures are logged and never affect the outcome of the run: the deletions
// already happened.
func notify(cfg *config.Config, descriptors []string, l *logrus.Entry) {
	n, err := notifier.New(cfg.GotifyURL, cfg.GotifyToken)
	if err != nil {
		l.WithError(err).Error("notification skipped")
		return
	}

	if err := n.Send(descriptors); err != nil {
		l.WithError(err).Error("failed to send notification")
	}
}

func writeMetrics(cfg *config.Config, runner *stats.Runner, l *logrus.Entry) {
	if cfg.PrometheusTextfile == "" {
		return
	}

	if err := runner.WriteTextfile(cfg.PrometheusTextfile, cfg.RunID); err != nil {
		l.WithError(err).Error("failed to write metrics textfile")
	}
}

func interrupted(ctx context.Context) bool {
	select {
	case <-ctx.Done():
		return true
	default:
		return false
	}
}
