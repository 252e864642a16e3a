package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// ImportMetrics records row outcomes and per-sheet timings for catalog imports.
type ImportMetrics struct {
	rowsImported *prometheus.CounterVec
	rowsSkipped  *prometheus.CounterVec
	duration     *prometheus.HistogramVec
}

// NewImportMetrics registers the import metrics on the provided registerer.
func NewImportMetrics(reg prometheus.Registerer) *ImportMetrics {
	if reg == nil {
		return &ImportMetrics{}
	}
	rowsImported := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "import_rows_total",
		Help: "Spreadsheet rows imported into the catalog.",
	}, []string{"sheet"})
	rowsSkipped := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "import_rows_skipped_total",
		Help: "Spreadsheet rows skipped during import.",
	}, []string{"sheet", "reason"})
	duration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "import_sheet_duration_seconds",
		Help:    "Duration of single-sheet import passes in seconds.",
		Buckets: prometheus.DefBuckets,
	}, []string{"sheet"})
	reg.MustRegister(rowsImported, rowsSkipped, duration)
	return &ImportMetrics{
		rowsImported: rowsImported,
		rowsSkipped:  rowsSkipped,
		duration:     duration,
	}
}

// IncImported counts a successfully imported row.
func (m *ImportMetrics) IncImported(sheet string) {
	if m == nil || m.rowsImported == nil {
		return
	}
	m.rowsImported.WithLabelValues(sheet).Inc()
}

// IncSkipped counts a skipped row with its reason.
func (m *ImportMetrics) IncSkipped(sheet, reason string) {
	if m == nil || m.rowsSkipped == nil {
		return
	}
	m.rowsSkipped.WithLabelValues(sheet, reason).Inc()
}

// ObserveSheetDuration records how long one sheet took.
func (m *ImportMetrics) ObserveSheetDuration(sheet string, d time.Duration) {
	if m == nil || m.duration == nil {
		return
	}
	m.duration.WithLabelValues(sheet).Observe(d.Seconds())
}
