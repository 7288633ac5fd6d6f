package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestObserve(t *testing.T) {
	m := New(prometheus.NewRegistry())

	m.Observe("GET /api/health", "GET", 200, 10*time.Millisecond)
	m.Observe("GET /api/health", "GET", 200, 20*time.Millisecond)
	m.Observe("POST /api/sync", "POST", 400, time.Millisecond)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.RequestsTotal.WithLabelValues("GET /api/health", "GET", "200")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.RequestsTotal.WithLabelValues("POST /api/sync", "POST", "400")))
	assert.Equal(t, 2, testutil.CollectAndCount(m.RequestDuration))
}
