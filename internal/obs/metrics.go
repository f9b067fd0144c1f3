package obs

import (
	"errors"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Projection outcomes recorded by ListingMetrics.
const (
	ResultOK          = "ok"
	ResultCached      = "cached"
	ResultNoVariants  = "no_variants"
	ResultInvalid     = "invalid"
	ResultFetchFailed = "fetch_failed"
)

// ListingMetrics groups Prometheus collectors for listing projection.
type ListingMetrics struct {
	Projections *prometheus.CounterVec
	Anomalies   *prometheus.CounterVec
	Duration    prometheus.Histogram
}

// NewListingMetrics registers and returns listing collectors. A nil
// registerer uses prometheus.DefaultRegisterer.
func NewListingMetrics(namespace string, reg prometheus.Registerer) *ListingMetrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	m := &ListingMetrics{
		Projections: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "listing_projections_total",
			Help:      "Count of product listing projections by outcome.",
		}, []string{"result"}),
		Anomalies: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "listing_promotion_anomalies_total",
			Help:      "Count of selected promotions whose value had to be clamped.",
		}, []string{"kind"}),
		Duration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "listing_projection_duration_ms",
			Help:      "Time spent pricing and projecting one product, in milliseconds.",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 25},
		}),
	}
	m.Projections = mustRegister(reg, m.Projections)
	m.Anomalies = mustRegister(reg, m.Anomalies)
	m.Duration = mustRegister(reg, m.Duration)
	return m
}

// ObserveProjection records one projection outcome and its duration.
func (m *ListingMetrics) ObserveProjection(result string, d time.Duration) {
	if m == nil {
		return
	}
	m.Projections.WithLabelValues(result).Inc()
	if result == ResultOK {
		m.Duration.Observe(DurationMillis(d))
	}
}

// ObserveAnomaly counts one clamped promotion of the given kind.
func (m *ListingMetrics) ObserveAnomaly(kind string) {
	if m == nil {
		return
	}
	m.Anomalies.WithLabelValues(kind).Inc()
}

// DurationMillis converts a duration to milliseconds for metric observation.
func DurationMillis(d time.Duration) float64 {
	return float64(d) / float64(time.Millisecond)
}

// mustRegister registers c, reusing an already registered identical collector.
func mustRegister[T prometheus.Collector](reg prometheus.Registerer, c T) T {
	if err := reg.Register(c); err != nil {
		var are prometheus.AlreadyRegisteredError
		if errors.As(err, &are) {
			if existing, ok := are.ExistingCollector.(T); ok {
				return existing
			}
		}
		panic(err)
	}
	return c
}
