// Package monitor exposes Prometheus metrics for the BFF and its roster API client.
package monitor

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Metrics struct {
	registry *prometheus.Registry

	GatewayRequests *prometheus.CounterVec
	GatewayLatency  *prometheus.HistogramVec
	GatewayInFlight prometheus.Gauge

	HTTPRequests *prometheus.CounterVec
	HTTPLatency  *prometheus.HistogramVec

	OpenScreens     prometheus.Gauge
	FormSubmissions *prometheus.CounterVec
}

func NewMetrics(namespace string) *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		GatewayRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "gateway",
			Name:      "requests_total",
			Help:      "Requests sent to the roster API",
		}, []string{"code", "method"}),
		GatewayLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "gateway",
			Name:      "request_duration_seconds",
			Help:      "Roster API round trip latency",
			Buckets:   prometheus.ExponentialBuckets(0.01, 2, 10),
		}, []string{"method"}),
		GatewayInFlight: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "gateway",
			Name:      "in_flight_requests",
			Help:      "Roster API requests currently in flight",
		}),
		HTTPRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Requests served to the app",
		}, []string{"code", "method"}),
		HTTPLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "Latency of requests served to the app",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method"}),
		OpenScreens: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "open_screens",
			Help:      "Screen sessions currently open",
		}),
		FormSubmissions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "form_submissions_total",
			Help:      "Form submissions by form and outcome",
		}, []string{"form", "outcome"}),
	}

	m.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.GatewayRequests,
		m.GatewayLatency,
		m.GatewayInFlight,
		m.HTTPRequests,
		m.HTTPLatency,
		m.OpenScreens,
		m.FormSubmissions,
	)

	return m
}

func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// InstrumentClient returns a copy of c whose transport records gateway metrics.
func (m *Metrics) InstrumentClient(c *http.Client) *http.Client {
	instrumented := *c
	next := c.Transport
	if next == nil {
		next = http.DefaultTransport
	}
	instrumented.Transport = promhttp.InstrumentRoundTripperInFlight(m.GatewayInFlight,
		promhttp.InstrumentRoundTripperCounter(m.GatewayRequests,
			promhttp.InstrumentRoundTripperDuration(m.GatewayLatency, next),
		),
	)
	return &instrumented
}

func (m *Metrics) Middleware(next http.Handler) http.Handler {
	return promhttp.InstrumentHandlerCounter(m.HTTPRequests,
		promhttp.InstrumentHandlerDuration(m.HTTPLatency, next),
	)
}

func (m *Metrics) SetOpenScreens(count int) {
	m.OpenScreens.Set(float64(count))
}

func (m *Metrics) ObserveForm(form, outcome string) {
	m.FormSubmissions.WithLabelValues(form, outcome).Inc()
}
