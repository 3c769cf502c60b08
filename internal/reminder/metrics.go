package reminder

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds Prometheus metrics for the reminder engine. A nil *Metrics
// is valid and records nothing, so tests can skip registration.
type Metrics struct {
	QueuedTotal    *prometheus.CounterVec
	DeliveredTotal *prometheus.CounterVec
	QueueSize      prometheus.Gauge
	ScanDuration   prometheus.Histogram
	FamilyFailures prometheus.Counter
	LedgerPurged   prometheus.Counter
}

// NewMetrics creates and registers engine metrics under the namespace.
func NewMetrics(namespace string) *Metrics {
	return &Metrics{
		QueuedTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "reminders_queued_total",
				Help:      "Reminder requests enqueued, by notification kind.",
			},
			[]string{"kind"},
		),
		DeliveredTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "reminders_delivered_total",
				Help:      "Delivery attempts, by outcome.",
			},
			[]string{"status"},
		),
		QueueSize: promauto.NewGauge(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "reminder_queue_size",
				Help:      "Requests currently waiting in the delivery queue.",
			},
		),
		ScanDuration: promauto.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "reminder_scan_duration_seconds",
				Help:      "Time to evaluate all families in one tick.",
				Buckets:   []float64{.05, .1, .5, 1, 5, 15, 60},
			},
		),
		FamilyFailures: promauto.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "reminder_family_failures_total",
				Help:      "Families whose evaluation failed and was skipped.",
			},
		),
		LedgerPurged: promauto.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "reminder_ledger_purged_total",
				Help:      "Expired notification ledger entries removed.",
			},
		),
	}
}

func (m *Metrics) IncQueued(kind string) {
	if m != nil {
		m.QueuedTotal.WithLabelValues(kind).Inc()
	}
}

func (m *Metrics) IncDelivered(status string) {
	if m != nil {
		m.DeliveredTotal.WithLabelValues(status).Inc()
	}
}

func (m *Metrics) SetQueueSize(n int) {
	if m != nil {
		m.QueueSize.Set(float64(n))
	}
}

func (m *Metrics) ObserveScanDuration(seconds float64) {
	if m != nil {
		m.ScanDuration.Observe(seconds)
	}
}

func (m *Metrics) IncFamilyFailures() {
	if m != nil {
		m.FamilyFailures.Inc()
	}
}

func (m *Metrics) AddLedgerPurged(n int64) {
	if m != nil {
		m.LedgerPurged.Add(float64(n))
	}
}
