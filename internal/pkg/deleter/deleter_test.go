package deleter

import (
	"context"
	"io"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dum-monitor/dum/internal/pkg/planner"
)

var t0 = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

func discardLogger() *logrus.Entry {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger.WithField("component", "deleter")
}

func TestDeleteFilesAndDirectories(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, fs.MkdirAll("/data/media/show/season1", 0755))
	require.NoError(t, afero.WriteFile(fs, "/data/media/old.mkv", []byte("x"), 0644))
	require.NoError(t, afero.WriteFile(fs, "/data/media/show/season1/ep.mkv", []byte("x"), 0644))

	labels := planner.BuildLabels([]string{"/data/media"})
	descriptors := []string{
		planner.FormatDescriptor("Media", "old.mkv", 1, t0),
		planner.FormatDescriptor("Media", "show", 1, t0),
	}

	result, err := Delete(context.Background(), fs, descriptors, labels, discardLogger())
	require.NoError(t, err)
	assert.Equal(t, 2, result.Attempted)
	assert.Equal(t, 2, result.Removed)
	assert.Equal(t, 0, result.Failed)

	exists, _ := afero.Exists(fs, "/data/media/old.mkv")
	assert.False(t, exists)
	exists, _ = afero.DirExists(fs, "/data/media/show")
	assert.False(t, exists, "directories are removed recursively")
}

func TestDeleteVanishedPathContinuesBatch(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, fs.MkdirAll("/data/media", 0755))
	require.NoError(t, afero.WriteFile(fs, "/data/media/keepable.mkv", []byte("x"), 0644))

	labels := planner.BuildLabels([]string{"/data/media"})
	descriptors := []string{
		// Planned but gone by deletion time.
		planner.FormatDescriptor("Media", "vanished.mkv", 1, t0),
		planner.FormatDescriptor("Media", "keepable.mkv", 1, t0),
	}

	result, err := Delete(context.Background(), fs, descriptors, labels, discardLogger())
	require.NoError(t, err)
	assert.Equal(t, 2, result.Attempted)
	assert.Equal(t, 1, result.Removed)
	assert.Equal(t, 1, result.Failed)

	exists, _ := afero.Exists(fs, "/data/media/keepable.mkv")
	assert.False(t, exists, "batch continues past the vanished item")
}

func TestDeleteUnknownLabelIsSkipped(t *testing.T) {
	fs := afero.NewMemMapFs()
	labels := planner.BuildLabels([]string{"/data/media"})

	result, err := Delete(context.Background(), fs, []string{planner.FormatDescriptor("Nosuch", "x", 1, t0)}, labels, discardLogger())
	require.NoError(t, err)
	assert.Equal(t, 1, result.Failed)
	assert.Equal(t, 0, result.Removed)
}

func TestDeleteMalformedDescriptorIsSkipped(t *testing.T) {
	fs := afero.NewMemMapFs()
	labels := planner.BuildLabels([]string{"/data/media"})

	result, err := Delete(context.Background(), fs, []string{"garbage"}, labels, discardLogger())
	require.NoError(t, err)
	assert.Equal(t, 1, result.Failed)
}

func TestDeleteStopsOnCancelledContext(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, fs.MkdirAll("/data/media", 0755))
	require.NoError(t, afero.WriteFile(fs, "/data/media/survivor.mkv", []byte("x"), 0644))

	labels := planner.BuildLabels([]string{"/data/media"})
	descriptors := []string{planner.FormatDescriptor("Media", "survivor.mkv", 1, t0)}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	result, err := Delete(ctx, fs, descriptors, labels, discardLogger())
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 0, result.Attempted)

	exists, _ := afero.Exists(fs, "/data/media/survivor.mkv")
	assert.True(t, exists, "nothing is removed once the context is done")
}
