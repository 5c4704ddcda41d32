package recaptcha

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// NoopMetricsCollector is a no-op implementation of MetricsCollector
type NoopMetricsCollector struct{}

func (n *NoopMetricsCollector) RecordAssessment(string, time.Duration) {}
func (n *NoopMetricsCollector) RecordScore(float64)                    {}

// PrometheusMetrics exports assessment outcomes, latency and scores.
type PrometheusMetrics struct {
	assessments *prometheus.CounterVec
	duration    *prometheus.HistogramVec
	scores      prometheus.Histogram
}

// NewPrometheusMetrics creates the collectors and registers them with reg.
func NewPrometheusMetrics(reg prometheus.Registerer) *PrometheusMetrics {
	m := &PrometheusMetrics{
		assessments: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "formguard",
				Name:      "assessments_total",
				Help:      "Total token assessments by outcome.",
			},
			[]string{"outcome"},
		),
		duration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: "formguard",
				Name:      "assessment_duration_seconds",
				Help:      "Token assessment duration in seconds, including the API call.",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"outcome"},
		),
		scores: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "formguard",
			Name:      "risk_score",
			Help:      "Risk scores returned for valid tokens.",
			Buckets:   prometheus.LinearBuckets(0, 0.1, 11),
		}),
	}
	reg.MustRegister(m.assessments, m.duration, m.scores)
	return m
}

func (m *PrometheusMetrics) RecordAssessment(outcome string, duration time.Duration) {
	m.assessments.WithLabelValues(outcome).Inc()
	m.duration.WithLabelValues(outcome).Observe(duration.Seconds())
}

func (m *PrometheusMetrics) RecordScore(score float64) {
	m.scores.Observe(score)
}
