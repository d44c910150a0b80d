package httpapi

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
)

type server struct {
	opt      Options
	metrics  *Metrics
	gatherer prometheus.Gatherer
}

func newServer(opt Options) *server {
	opt = opt.withDefaults()
	reg := opt.Registry
	if reg == nil {
		reg = newRegistry()
	}
	return &server{opt: opt, metrics: NewMetrics(reg), gatherer: reg}
}

// NewMux returns the routes without the observability middleware.
func NewMux(opt Options) *http.ServeMux {
	return newServer(opt).mux()
}

func (s *server) mux() *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /healthz", handleHealthz)
	mux.Handle("GET /metrics", metricsHandler(s.gatherer))
	mux.HandleFunc("GET /{path}", s.handleSubscription)
	mux.HandleFunc("GET /{path}/{target}", s.handleSubscription)
	mux.HandleFunc("/", handleNotFound)
	return mux
}
