package stats

import (
	"os"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// WriteTextfile writes the run's metrics to path in the Prometheus textfile
// exposition format, for collection by node_exporter's textfile collector.
// Scheduled runs thereby leave a scrapeable trace even though the process
// itself is short-lived.
func (r *Runner) WriteTextfile(path, runID string) error {
	hostname, err := os.Hostname()
	if err != nil {
		hostname = "unknown"
	}

	constLabels := prometheus.Labels{"hostname": hostname, "run_id": runID}

	gauges := map[string]struct {
		help  string
		value float64
	}{
		"dum_free_space_before_bytes":    {"Free space on the watched volume before eviction.", float64(r.GetFreeSpaceBefore())},
		"dum_free_space_after_bytes":     {"Free space on the watched volume after eviction.", float64(r.GetFreeSpaceAfter())},
		"dum_threshold_bytes":            {"Configured minimum acceptable free space.", float64(r.GetThresholdBytes())},
		"dum_inventory_items":            {"Number of inventory entries found.", float64(r.GetItemsInventoried())},
		"dum_inventory_bytes":            {"Total size of the inventory.", float64(r.GetBytesInventoried())},
		"dum_planned_items":              {"Number of entries selected for eviction.", float64(r.GetItemsPlanned())},
		"dum_deleted_items":              {"Number of entries actually removed.", float64(r.GetItemsDeleted())},
		"dum_delete_errors":              {"Number of per-item deletion failures.", float64(r.GetDeleteErrors())},
		"dum_last_run_timestamp_seconds": {"Unix timestamp of the run.", float64(time.Now().Unix())},
	}

	registry := prometheus.NewRegistry()
	for name, g := range gauges {
		gauge := prometheus.NewGauge(prometheus.GaugeOpts{
			Name:        name,
			Help:        g.help,
			ConstLabels: constLabels,
		})
		if err := registry.Register(gauge); err != nil {
			return err
		}
		gauge.Set(g.value)
	}

	return prometheus.WriteToTextfile(path, registry)
}
