// Package deleter executes an eviction plan: it maps each descriptor back to
// a physical path and removes it. Deletions are permanent.
package deleter

import (
	"context"
	"path/filepath"

	"github.com/sirupsen/logrus"
	"github.com/spf13/afero"

	"github.com/dum-monitor/dum/internal/pkg/planner"
)

// Result summarizes a deletion batch.
type Result struct {
	Attempted int
	Removed   int
	Failed    int
}

// Delete removes every item named by the descriptors: files with a single
// removal, directories recursively. Per-item failures (path vanished between
// planning and deletion, permission denied, unparseable descriptor) are
// logged and skipped so the rest of the batch still runs; a batch of N
// planned deletions may therefore complete with fewer than N removed and the
// run still counts as successful.
//
// Cancellation is observed between items: when ctx is done the batch stops,
// removals already committed stay committed, and the partial Result is
// returned together with ctx's error.
func Delete(ctx context.Context, fs afero.Fs, descriptors []string, labels []planner.RootLabel, logger *logrus.Entry) (Result, error) {
	var result Result

	for _, descriptor := range descriptors {
		select {
		case <-ctx.Done():
			return result, ctx.Err()
		default:
		}

		result.Attempted++

		label, name, err := planner.ParseDescriptor(descriptor)
		if err != nil {
			logger.WithError(err).Error("skipping malformed descriptor")
			result.Failed++
			continue
		}

		root, ok := planner.RootFor(labels, label)
		if !ok {
			logger.WithField("label", label).Errorf("no watched root carries the label of %q", descriptor)
			result.Failed++
			continue
		}

		path := filepath.Join(root, name)
		info, err := fs.Stat(path)
		if err != nil {
			logger.WithError(err).Errorf("unrecognized path: %s", path)
			result.Failed++
			continue
		}

		if info.IsDir() {
			err = fs.RemoveAll(path)
		} else {
			err = fs.Remove(path)
		}
		if err != nil {
			logger.WithError(err).Errorf("failed to delete %s", path)
			result.Failed++
			continue
		}

		result.Removed++
		logger.Infof("deleted: %s", descriptor)
	}

	return result, nil
}
