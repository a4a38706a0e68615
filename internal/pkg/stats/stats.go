// Package stats tracks the progress and outcome of a run: a live-updating
// table while the run progresses, a summary for the logs, and an optional
// Prometheus textfile export for scraping scheduled runs.
package stats

import (
	"fmt"
	"runtime"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/gosuri/uilive"
	"github.com/gosuri/uitable"
)

// Runner holds the counters of one run and controls the lifecycle of the
// live stats printer.
type Runner struct {
	StopChan chan struct{}
	DoneChan chan struct{}
	data     *data
}

// NewRunner initializes the stats for a run.
func NewRunner() *Runner {
	return &Runner{
		StopChan: make(chan struct{}),
		DoneChan: make(chan struct{}),
		data:     &data{startTime: time.Now()},
	}
}

// Printer renders the live stats table until StopChan is closed.
// Preferably run this in a goroutine and stop it with Stop.
func (r *Runner) Printer() {
	var m runtime.MemStats

	writer := uilive.New()
	writer.Start()

	for {
		select {
		case <-r.StopChan:
			writer.Stop()
			r.DoneChan <- struct{}{}
			return
		default:
			runtime.ReadMemStats(&m)

			table := uitable.New()
			table.MaxColWidth = 80

			table.AddRow("", "")
			table.AddRow("  - State:", r.GetState())
			table.AddRow("  - Free space:", humanize.IBytes(uint64(r.GetFreeSpaceBefore())))
			table.AddRow("  - Threshold:", humanize.IBytes(uint64(r.GetThresholdBytes())))
			table.AddRow("  - Roots scanned:", r.GetRootsScanned())
			table.AddRow("  - Items inventoried:", r.GetItemsInventoried())
			table.AddRow("  - Inventory size:", humanize.IBytes(uint64(r.GetBytesInventoried())))
			table.AddRow("  - Items planned:", r.GetItemsPlanned())
			table.AddRow("  - Items deleted:", r.GetItemsDeleted())
			table.AddRow("  - Delete errors:", r.GetDeleteErrors())
			table.AddRow("", "")
			table.AddRow("  - Elapsed time:", time.Since(r.data.startTime).String())
			table.AddRow("  - Allocated (heap):", humanize.IBytes(m.Alloc))
			table.AddRow("", "")

			fmt.Fprintln(writer, table.String())
			writer.Flush()
			time.Sleep(time.Millisecond * 250)
		}
	}
}

// Stop terminates the live printer and waits for its final flush.
func (r *Runner) Stop() {
	close(r.StopChan)
	<-r.DoneChan
}

// Summary returns a one-line description of the run outcome for the logs.
func (r *Runner) Summary() string {
	reclaimed := r.GetFreeSpaceAfter() - r.GetFreeSpaceBefore()
	if reclaimed < 0 {
		reclaimed = 0
	}

	return fmt.Sprintf("inventoried=%d planned=%d deleted=%d errors=%d reclaimed=%s elapsed=%s",
		r.GetItemsInventoried(), r.GetItemsPlanned(), r.GetItemsDeleted(), r.GetDeleteErrors(),
		humanize.IBytes(uint64(reclaimed)), time.Since(r.data.startTime))
}
