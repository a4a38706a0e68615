// Package planner decides what to evict: given the inventory, the current
// free space and the threshold, it selects the oldest-modified entries whose
// cumulative size covers the free space deficit.
package planner

import (
	"path/filepath"
	"sort"

	"github.com/dum-monitor/dum/internal/pkg/inventory"
)

// Plan returns the descriptors of the entries to delete, oldest first.
//
// When freeSpace already satisfies the threshold it returns nothing. Entries
// are ordered by modification time ascending with a stable sort, so equal
// timestamps keep their collection order (roots in config order, children in
// directory read order). Selection stops as soon as the accumulated size
// reaches the deficit; the boundary-crossing entry is included. If the whole
// inventory is too small to cover the deficit, every entry is returned and
// it is the caller's job to notice that free space remains below the
// threshold afterwards.
//
// Plan is a pure function: it deletes nothing.
func Plan(entries []inventory.Entry, freeSpace, threshold int64, labels []RootLabel) []string {
	if freeSpace >= threshold {
		return nil
	}

	sorted := make([]inventory.Entry, len(entries))
	copy(sorted, entries)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].ModTime.Before(sorted[j].ModTime)
	})

	deficit := threshold - freeSpace

	var totalSize int64
	descriptors := make([]string, 0, len(sorted))
	for _, entry := range sorted {
		totalSize += entry.Size

		label := Resolve(labels, entry.Path)
		descriptors = append(descriptors, FormatDescriptor(label, filepath.Base(entry.Path), entry.Size, entry.ModTime))

		if totalSize >= deficit {
			break
		}
	}

	return descriptors
}
