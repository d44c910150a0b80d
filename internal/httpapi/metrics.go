package httpapi

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the server counters. One instance per registry.
type Metrics struct {
	HTTPRequests   *prometheus.CounterVec
	AppErrors      *prometheus.CounterVec
	NodesEmitted   *prometheus.CounterVec
	NodesDropped   *prometheus.CounterVec
	RenderDuration *prometheus.HistogramVec
}

// NewMetrics creates the server metrics and registers them with registry.
func NewMetrics(registry prometheus.Registerer) *Metrics {
	m := &Metrics{
		HTTPRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "subhub_http_requests_total",
			Help: "HTTP requests by ServeMux pattern and status.",
		}, []string{"pattern", "status"}),
		AppErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "subhub_app_errors_total",
			Help: "Application errors returned to clients.",
		}, []string{"stage", "code"}),
		NodesEmitted: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "subhub_nodes_emitted_total",
			Help: "Nodes written to subscription responses.",
		}, []string{"target"}),
		NodesDropped: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "subhub_nodes_dropped_total",
			Help: "Stored nodes left out of subscription responses (unparseable or unsupported by the target).",
		}, []string{"target"}),
		RenderDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "subhub_render_duration_seconds",
			Help:    "Time spent converting a subscription.",
			Buckets: []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 5},
		}, []string{"target"}),
	}
	registry.MustRegister(m.HTTPRequests, m.AppErrors, m.NodesEmitted, m.NodesDropped, m.RenderDuration)
	return m
}

func (m *Metrics) incRequest(pattern string, status int) {
	if status == 0 {
		status = http.StatusOK
	}
	if pattern == "" {
		pattern = "(unknown)"
	}
	m.HTTPRequests.WithLabelValues(pattern, strconv.Itoa(status)).Inc()
}

func (m *Metrics) incAppError(stage, code string) {
	stage = strings.TrimSpace(stage)
	code = strings.TrimSpace(code)
	if stage == "" {
		stage = "(unknown)"
	}
	if code == "" {
		code = "(unknown)"
	}
	m.AppErrors.WithLabelValues(stage, code).Inc()
}

func newRegistry() *prometheus.Registry {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return reg
}

func metricsHandler(g prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(g, promhttp.HandlerOpts{})
}
