package server

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"tableflip.dev/reflectly/pkg/store"
)

const namespace = "reflectly"

// Metrics holds the Prometheus collectors for the API and the slot it writes
// to. Each Metrics has its own registry so tests can build many.
type Metrics struct {
	registry *prometheus.Registry

	HTTPRequests *prometheus.CounterVec
	HTTPDuration *prometheus.HistogramVec

	Mutations *prometheus.CounterVec
	Entries   prometheus.Gauge

	SlotOperations *prometheus.CounterVec
	SlotDuration   *prometheus.HistogramVec
}

// NewMetrics creates and registers the collectors.
func NewMetrics() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		HTTPRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests",
		}, []string{"method", "route", "status"}),
		HTTPDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),
		Mutations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "entry_mutations_total",
			Help:      "Entries created, updated or deleted through the API",
		}, []string{"op"}),
		Entries: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "entries",
			Help:      "Number of entries in the journal",
		}),
		SlotOperations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "slot_operations_total",
			Help:      "Reads and writes against the persistent slot",
		}, []string{"op", "result"}),
		SlotDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "slot_operation_duration_seconds",
			Help:      "Latency of slot reads and writes",
			Buckets:   []float64{.0005, .001, .005, .01, .05, .1, .5, 1},
		}, []string{"op"}),
	}
	m.registry.MustRegister(
		m.HTTPRequests,
		m.HTTPDuration,
		m.Mutations,
		m.Entries,
		m.SlotOperations,
		m.SlotDuration,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

// Registry returns the registry served on /metrics.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

func (m *Metrics) observeSlot(op string, start time.Time, err error) {
	result := "ok"
	if err != nil {
		result = "error"
	}
	m.SlotOperations.WithLabelValues(op, result).Inc()
	m.SlotDuration.WithLabelValues(op).Observe(time.Since(start).Seconds())
}

// InstrumentSlot wraps slot so every Get and Set is counted and timed.
func InstrumentSlot(slot store.Slot, m *Metrics) store.Slot {
	if m == nil {
		return slot
	}
	return &instrumentedSlot{slot: slot, metrics: m}
}

type instrumentedSlot struct {
	slot    store.Slot
	metrics *Metrics
}

func (s *instrumentedSlot) Get(key string) (string, bool, error) {
	start := time.Now()
	v, ok, err := s.slot.Get(key)
	s.metrics.observeSlot("get", start, err)
	return v, ok, err
}

func (s *instrumentedSlot) Set(key, value string) error {
	start := time.Now()
	err := s.slot.Set(key, value)
	s.metrics.observeSlot("set", start, err)
	return err
}
