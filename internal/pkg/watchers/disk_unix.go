//go:build unix

// Package watchers probes the state of the storage volume backing the
// watched directories.
package watchers

import (
	"fmt"
	"syscall"
)

// FreeSpace returns the number of bytes available to unprivileged processes
// on the filesystem backing path.
func FreeSpace(path string) (int64, error) {
	var stat syscall.Statfs_t
	if err := syscall.Statfs(path, &stat); err != nil {
		return 0, fmt.Errorf("error retrieving disk stats for %s: %w", path, err)
	}

	return int64(stat.Bavail) * int64(stat.Bsize), nil
}

// SameDevice verifies that every path resides on the same physical device by
// comparing device IDs against the first path.
func SameDevice(paths []string) error {
	if len(paths) < 2 {
		return nil
	}

	var first syscall.Stat_t
	if err := syscall.Stat(paths[0], &first); err != nil {
		return err
	}

	for _, path := range paths[1:] {
		var stat syscall.Stat_t
		if err := syscall.Stat(path, &stat); err != nil {
			return err
		}

		if stat.Dev != first.Dev {
			return fmt.Errorf("%s is on a different device than %s", path, paths[0])
		}
	}

	return nil
}
