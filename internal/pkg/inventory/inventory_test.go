package inventory

import (
	"testing"
	"time"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var t0 = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

func TestCollectFiles(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, fs.MkdirAll("/watched", 0755))
	require.NoError(t, afero.WriteFile(fs, "/watched/a.log", []byte("0123456789"), 0644))
	require.NoError(t, fs.Chtimes("/watched/a.log", t0, t0))

	entries, err := Collect(fs, "/watched")
	require.NoError(t, err)
	require.Len(t, entries, 1)

	assert.Equal(t, "/watched/a.log", entries[0].Path)
	assert.Equal(t, int64(10), entries[0].Size)
	assert.True(t, entries[0].ModTime.Equal(t0))
}

func TestCollectDirectorySizeIsRecursiveFileSum(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, fs.MkdirAll("/watched/show/season1/extras", 0755))
	require.NoError(t, afero.WriteFile(fs, "/watched/show/ep1.mkv", make([]byte, 100), 0644))
	require.NoError(t, afero.WriteFile(fs, "/watched/show/season1/ep2.mkv", make([]byte, 200), 0644))
	require.NoError(t, afero.WriteFile(fs, "/watched/show/season1/extras/cut.mkv", make([]byte, 300), 0644))
	require.NoError(t, fs.Chtimes("/watched/show", t0, t0))

	entries, err := Collect(fs, "/watched")
	require.NoError(t, err)
	require.Len(t, entries, 1)

	// Nesting depth does not matter, only the sum of regular file sizes.
	assert.Equal(t, int64(600), entries[0].Size)
	// The directory entry is keyed on the directory's own mtime, not on
	// any descendant's.
	assert.True(t, entries[0].ModTime.Equal(t0))
}

func TestCollectEmptyDirectoryContributesZero(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, fs.MkdirAll("/watched/empty", 0755))

	entries, err := Collect(fs, "/watched")
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, int64(0), entries[0].Size)
}

func TestCollectOneEntryPerImmediateChild(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, fs.MkdirAll("/watched/dir/nested", 0755))
	require.NoError(t, afero.WriteFile(fs, "/watched/file", []byte("x"), 0644))
	require.NoError(t, afero.WriteFile(fs, "/watched/dir/nested/deep", []byte("x"), 0644))

	entries, err := Collect(fs, "/watched")
	require.NoError(t, err)

	// Recursion never produces entries below the immediate-child level.
	require.Len(t, entries, 2)
	paths := []string{entries[0].Path, entries[1].Path}
	assert.ElementsMatch(t, []string{"/watched/file", "/watched/dir"}, paths)
}

func TestCollectMissingRootFails(t *testing.T) {
	fs := afero.NewMemMapFs()

	_, err := Collect(fs, "/nope")
	assert.Error(t, err)
}
