package metrics

import (
	"bytes"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObserveRequest(t *testing.T) {
	p := NewProvider(nil)

	p.ObserveRequest("api.themoviedb.org", "GET", "json", 200, 120*time.Millisecond)
	p.ObserveRequest("api.themoviedb.org", "GET", "json", 200, 80*time.Millisecond)
	p.ObserveRequest("webservice.fanart.tv", "GET", "transport_error", 0, time.Second)
	p.ObserveRequest("", "GET", "invalid_request", 0, 0)

	assert.Equal(t, float64(2), testutil.ToFloat64(p.requests.WithLabelValues("api.themoviedb.org", "GET", "json")))
	assert.Equal(t, float64(1), testutil.ToFloat64(p.requests.WithLabelValues("webservice.fanart.tv", "GET", "transport_error")))
	assert.Equal(t, float64(1), testutil.ToFloat64(p.requests.WithLabelValues("unknown", "GET", "invalid_request")))
	assert.Equal(t, float64(2), testutil.ToFloat64(p.statuses.WithLabelValues("api.themoviedb.org", "200")))
	assert.Equal(t, 2, testutil.CollectAndCount(p.statuses))
}

func TestNewProviderRegisters(t *testing.T) {
	reg := prometheus.NewRegistry()
	p := NewProvider(reg)
	p.ObserveRequest("itunesartwork.bendodson.com", "POST", "json", 200, time.Millisecond)

	families, err := reg.Gather()
	require.NoError(t, err)

	names := make([]string, 0, len(families))
	for _, family := range families {
		names = append(names, family.GetName())
	}
	assert.ElementsMatch(t, []string{
		"reelmeta_provider_requests_total",
		"reelmeta_provider_responses_total",
		"reelmeta_provider_request_duration_seconds",
	}, names)
}

func TestWriteText(t *testing.T) {
	reg := prometheus.NewRegistry()
	p := NewProvider(reg)
	p.ObserveRequest("api.themoviedb.org", "GET", "json", 404, time.Millisecond)

	var buf bytes.Buffer
	require.NoError(t, WriteText(&buf, reg))

	out := buf.String()
	assert.Contains(t, out, "# TYPE reelmeta_provider_requests_total counter")
	assert.Contains(t, out, `reelmeta_provider_responses_total{host="api.themoviedb.org",status="404"} 1`)
}
