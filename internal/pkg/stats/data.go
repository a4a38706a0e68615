package stats

import (
	"sync/atomic"
	"time"
)

// data holds the counters of one run. Always go through the Runner getters
// and setters; the live printer reads these from its own goroutine.
type data struct {
	state            atomic.Value
	rootsScanned     atomic.Int64
	itemsInventoried atomic.Int64
	bytesInventoried atomic.Int64
	itemsPlanned     atomic.Int64
	itemsDeleted     atomic.Int64
	deleteErrors     atomic.Int64
	freeSpaceBefore  atomic.Int64
	freeSpaceAfter   atomic.Int64
	thresholdBytes   atomic.Int64
	startTime        time.Time
}

// SetState sets the pipeline state shown in the live table.
func (r *Runner) SetState(state string) {
	r.data.state.Store(state)
}

// GetState returns the pipeline state.
func (r *Runner) GetState() string {
	if state, ok := r.data.state.Load().(string); ok {
		return state
	}
	return "starting"
}

// AddRootScanned records one fully inventoried watched root.
func (r *Runner) AddRootScanned() {
	r.data.rootsScanned.Add(1)
}

// GetRootsScanned returns the number of inventoried roots.
func (r *Runner) GetRootsScanned() int64 {
	return r.data.rootsScanned.Load()
}

// AddInventoried records items and bytes found while scanning.
func (r *Runner) AddInventoried(items int64, bytes int64) {
	r.data.itemsInventoried.Add(items)
	r.data.bytesInventoried.Add(bytes)
}

// GetItemsInventoried returns the number of inventory entries found.
func (r *Runner) GetItemsInventoried() int64 {
	return r.data.itemsInventoried.Load()
}

// GetBytesInventoried returns the total size of the inventory.
func (r *Runner) GetBytesInventoried() int64 {
	return r.data.bytesInventoried.Load()
}

// SetItemsPlanned records how many entries the planner selected.
func (r *Runner) SetItemsPlanned(items int64) {
	r.data.itemsPlanned.Store(items)
}

// GetItemsPlanned returns the number of planned deletions.
func (r *Runner) GetItemsPlanned() int64 {
	return r.data.itemsPlanned.Load()
}

// AddItemsDeleted records successfully removed items.
func (r *Runner) AddItemsDeleted(items int64) {
	r.data.itemsDeleted.Add(items)
}

// GetItemsDeleted returns the number of removed items.
func (r *Runner) GetItemsDeleted() int64 {
	return r.data.itemsDeleted.Load()
}

// AddDeleteErrors records per-item deletion failures.
func (r *Runner) AddDeleteErrors(errors int64) {
	r.data.deleteErrors.Add(errors)
}

// GetDeleteErrors returns the number of per-item deletion failures.
func (r *Runner) GetDeleteErrors() int64 {
	return r.data.deleteErrors.Load()
}

// SetFreeSpaceBefore records the free space measured before eviction.
func (r *Runner) SetFreeSpaceBefore(bytes int64) {
	r.data.freeSpaceBefore.Store(bytes)
}

// GetFreeSpaceBefore returns the free space measured before eviction.
func (r *Runner) GetFreeSpaceBefore() int64 {
	return r.data.freeSpaceBefore.Load()
}

// SetFreeSpaceAfter records the free space measured after eviction.
func (r *Runner) SetFreeSpaceAfter(bytes int64) {
	r.data.freeSpaceAfter.Store(bytes)
}

// GetFreeSpaceAfter returns the free space measured after eviction.
func (r *Runner) GetFreeSpaceAfter() int64 {
	return r.data.freeSpaceAfter.Load()
}

// SetThresholdBytes records the configured threshold.
func (r *Runner) SetThresholdBytes(bytes int64) {
	r.data.thresholdBytes.Store(bytes)
}

// GetThresholdBytes returns the configured threshold.
func (r *Runner) GetThresholdBytes() int64 {
	return r.data.thresholdBytes.Load()
}
