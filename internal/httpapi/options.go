package httpapi

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Options controls HTTP API runtime behavior.
type Options struct {
	// Source resolves a subscription path to its descriptor lines. Required.
	Source Source

	// ConvertTimeout bounds a single conversion request.
	ConvertTimeout time.Duration

	// Parallelism is handed to the line parser. <= 0 means GOMAXPROCS.
	Parallelism int

	// Registry receives the server metrics and backs /metrics. Nil means a
	// fresh registry with the Go and process collectors.
	Registry *prometheus.Registry

	// Now stamps generated documents. Nil means time.Now.
	Now func() time.Time
}

// Source is the read side of the subscription store.
type Source interface {
	Lines(path string) ([]string, error)
}

func (o Options) withDefaults() Options {
	if o.ConvertTimeout <= 0 {
		o.ConvertTimeout = 30 * time.Second
	}
	if o.Now == nil {
		o.Now = time.Now
	}
	return o
}
