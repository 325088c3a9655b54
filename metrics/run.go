package metrics

import (
	"time"

	fs "github.com/dreitier/treelist/storage/fs"
	"github.com/prometheus/client_golang/prometheus"
)

// RunMetrics holds the gauges of a single listing run. Every run has its own registry so that nothing of an
// earlier run leaks into the written file.
type RunMetrics struct {
	registry        *prometheus.Registry
	entriesTotal    *prometheus.GaugeVec
	sizeBytesTotal  prometheus.Gauge
	groupSizeBytes  *prometheus.GaugeVec
	listingDuration prometheus.Gauge
}

func NewRunMetrics(remote string) *RunMetrics {
	presetLabels := map[string]string{LabelNameRemote: remote}

	run := &RunMetrics{
		registry: prometheus.NewRegistry(),
		entriesTotal: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace:   namespace,
			Name:        "entries_total",
			Help:        "Number of listed entries by kind.",
			ConstLabels: presetLabels,
		}, []string{
			LabelNameKind,
		}),
		sizeBytesTotal: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace:   namespace,
			Name:        "size_bytes_total",
			Help:        "Summed size of all listed files in bytes.",
			ConstLabels: presetLabels,
		}),
		groupSizeBytes: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace:   namespace,
			Name:        "group_size_bytes",
			Help:        "Summed size of the files below a depth-truncated path in bytes.",
			ConstLabels: presetLabels,
		}, []string{
			LabelNameGroup,
		}),
		listingDuration: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace:   namespace,
			Name:        "listing_duration_seconds",
			Help:        "Time it took to retrieve the listing.",
			ConstLabels: presetLabels,
		}),
	}

	run.registry.MustRegister(
		run.entriesTotal,
		run.sizeBytesTotal,
		run.groupSizeBytes,
		run.listingDuration,
	)

	return run
}

func (m *RunMetrics) ObserveListing(entries []fs.Entry, duration time.Duration) {
	files, dirs, size := fs.Totals(entries)

	m.entriesTotal.WithLabelValues(KindFile).Set(float64(files))
	m.entriesTotal.WithLabelValues(KindDir).Set(float64(dirs))
	m.sizeBytesTotal.Set(float64(size))
	m.listingDuration.Set(duration.Seconds())
}

// ObserveGroups records the byte sizes of an aggregation
func (m *RunMetrics) ObserveGroups(sizes map[string]int64) {
	for group, size := range sizes {
		m.groupSizeBytes.WithLabelValues(group).Set(float64(size))
	}
}

func (m *RunMetrics) Gatherer() prometheus.Gatherer {
	return m.registry
}

func (m *RunMetrics) WriteToTextfile(path string) error {
	return WriteToTextfile(path, m.registry)
}
