package metrics

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type Metrics struct {
	EventsTotal       *prometheus.CounterVec
	ComputationsTotal prometheus.Counter
	CacheHitsTotal    prometheus.Counter
	ComputeDuration   prometheus.Histogram
	ActiveSessions    prometheus.Gauge
	PointsLoaded      prometheus.Gauge
	GenerationsTotal  *prometheus.CounterVec
}

var (
	metricsOnce     sync.Once
	metricsInstance *Metrics
)

func NewMetrics() *Metrics {
	metricsOnce.Do(func() {
		metricsInstance = &Metrics{
			EventsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
				Name: "raglens_dashboard_events_total",
				Help: "Total number of dashboard interaction events dispatched, by type",
			}, []string{"type"}),
			ComputationsTotal: promauto.NewCounter(prometheus.CounterOpts{
				Name: "raglens_fingerprint_computations_total",
				Help: "Total number of fingerprint aggregations computed from scratch",
			}),
			CacheHitsTotal: promauto.NewCounter(prometheus.CounterOpts{
				Name: "raglens_fingerprint_cache_hits_total",
				Help: "Total number of fingerprint aggregations served from the memo cache",
			}),
			ComputeDuration: promauto.NewHistogram(prometheus.HistogramOpts{
				Name:    "raglens_fingerprint_compute_seconds",
				Help:    "Time spent aggregating fingerprints",
				Buckets: prometheus.ExponentialBuckets(0.0005, 2, 12),
			}),
			ActiveSessions: promauto.NewGauge(prometheus.GaugeOpts{
				Name: "raglens_dashboard_sessions_active",
				Help: "Current number of open dashboard sessions",
			}),
			PointsLoaded: promauto.NewGauge(prometheus.GaugeOpts{
				Name: "raglens_points_loaded",
				Help: "Number of metric points returned by the last data load",
			}),
			GenerationsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
				Name: "raglens_generations_total",
				Help: "Total number of live generation requests, by outcome",
			}, []string{"outcome"}),
		}
	})
	return metricsInstance
}

func (m *Metrics) RecordEvent(eventType string) {
	if m == nil || m.EventsTotal == nil {
		return
	}
	m.EventsTotal.WithLabelValues(eventType).Inc()
}

func (m *Metrics) RecordComputation(d time.Duration) {
	if m == nil || m.ComputationsTotal == nil {
		return
	}
	m.ComputationsTotal.Inc()
	m.ComputeDuration.Observe(d.Seconds())
}

func (m *Metrics) RecordCacheHit() {
	if m == nil || m.CacheHitsTotal == nil {
		return
	}
	m.CacheHitsTotal.Inc()
}

func (m *Metrics) SessionOpened() {
	if m == nil || m.ActiveSessions == nil {
		return
	}
	m.ActiveSessions.Inc()
}

func (m *Metrics) SessionClosed() {
	if m == nil || m.ActiveSessions == nil {
		return
	}
	m.ActiveSessions.Dec()
}

func (m *Metrics) RecordPointsLoaded(n int) {
	if m == nil || m.PointsLoaded == nil {
		return
	}
	m.PointsLoaded.Set(float64(n))
}

func (m *Metrics) RecordGeneration(outcome string) {
	if m == nil || m.GenerationsTotal == nil {
		return
	}
	m.GenerationsTotal.WithLabelValues(outcome).Inc()
}
