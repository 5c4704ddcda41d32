package recaptcha

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestPrometheusMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewPrometheusMetrics(reg)

	m.RecordAssessment("pass", 20*time.Millisecond)
	m.RecordAssessment("pass", 30*time.Millisecond)
	m.RecordAssessment("invalid_token", 10*time.Millisecond)
	m.RecordScore(0.9)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.assessments.WithLabelValues("pass")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.assessments.WithLabelValues("invalid_token")))
	assert.Equal(t, 2, testutil.CollectAndCount(m.duration))
	assert.Equal(t, 1, testutil.CollectAndCount(m.scores))
}
