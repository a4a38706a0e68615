// Package inventory walks the watched directories and builds the flat list
// of eviction candidates: one entry per immediate child of every watched
// root, files and subdirectories alike.
package inventory

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/afero"
)

// Entry represents one top-level child of a watched root. For a file, Size
// and ModTime come straight from its metadata. For a directory, Size is the
// recursive sum of the sizes of every regular file underneath it, while
// ModTime is the directory node's own modification time.
type Entry struct {
	Path    string
	Size    int64
	ModTime time.Time
}

// Collect inventories the immediate children of root. Symlinks and special
// files are skipped. Any traversal error aborts the whole collection, since
// a partial inventory undercounts the reclaimable space.
func Collect(fs afero.Fs, root string) ([]Entry, error) {
	infos, err := afero.ReadDir(fs, root)
	if err != nil {
		return nil, fmt.Errorf("cannot read directory %s: %w", root, err)
	}

	entries := make([]Entry, 0, len(infos))
	for _, info := range infos {
		path := filepath.Join(root, info.Name())

		switch {
		case info.Mode().IsRegular():
			entries = append(entries, Entry{Path: path, Size: info.Size(), ModTime: info.ModTime()})
		case info.IsDir():
			size, err := dirSize(fs, path)
			if err != nil {
				return nil, err
			}

			entries = append(entries, Entry{Path: path, Size: size, ModTime: info.ModTime()})
		}
	}

	return entries, nil
}

// dirSize sums the sizes of all regular files under dir, at any depth.
// Subdirectory structure does not otherwise affect the total; an empty
// subdirectory contributes zero.
func dirSize(fs afero.Fs, dir string) (int64, error) {
	var total int64

	err := afero.Walk(fs, dir, func(_ string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}

		if info.Mode().IsRegular() {
			total += info.Size()
		}

		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("cannot compute size of %s: %w", dir, err)
	}

	return total, nil
}
