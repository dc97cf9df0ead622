// Package metrics records Prometheus instrumentation for outbound provider
// calls.
//
// Metrics:
//
//	reelmeta_provider_requests_total            counter by host, method, outcome
//	reelmeta_provider_responses_total           counter by host, status
//	reelmeta_provider_request_duration_seconds  histogram by host
package metrics

import (
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"
)

// Provider implements request.Observer on a set of Prometheus collectors.
type Provider struct {
	requests *prometheus.CounterVec
	statuses *prometheus.CounterVec
	duration *prometheus.HistogramVec
}

// NewProvider creates the collectors and registers them with reg. A nil reg
// leaves them unregistered, which is useful in tests.
func NewProvider(reg prometheus.Registerer) *Provider {
	p := &Provider{
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "reelmeta_provider_requests_total",
			Help: "Outbound provider requests by outcome.",
		}, []string{"host", "method", "outcome"}),
		statuses: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "reelmeta_provider_responses_total",
			Help: "Provider responses by HTTP status code.",
		}, []string{"host", "status"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "reelmeta_provider_request_duration_seconds",
			Help:    "Outbound provider request latency in seconds.",
			Buckets: prometheus.DefBuckets,
		}, []string{"host"}),
	}

	if reg != nil {
		reg.MustRegister(p.requests, p.statuses, p.duration)
	}
	return p
}

// ObserveRequest records one request outcome.
func (p *Provider) ObserveRequest(host, method, outcome string, status int, elapsed time.Duration) {
	if host == "" {
		host = "unknown"
	}
	p.requests.WithLabelValues(host, method, outcome).Inc()
	if status > 0 {
		p.statuses.WithLabelValues(host, strconv.Itoa(status)).Inc()
	}
	p.duration.WithLabelValues(host).Observe(elapsed.Seconds())
}

// WriteText writes everything g gathers in the Prometheus text format.
func WriteText(w io.Writer, g prometheus.Gatherer) error {
	families, err := g.Gather()
	if err != nil {
		return fmt.Errorf("failed to gather metrics: %w", err)
	}
	enc := expfmt.NewEncoder(w, expfmt.NewFormat(expfmt.TypeTextPlain))
	for _, mf := range families {
		if err := enc.Encode(mf); err != nil {
			return fmt.Errorf("failed to encode %s: %w", mf.GetName(), err)
		}
	}
	return nil
}
