package httpapi

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/cespare/xxhash/v2"

	"github.com/John-Robertt/subhub-go/internal/render"
	"github.com/John-Robertt/subhub-go/internal/store"
)

func handleHealthz(w http.ResponseWriter, r *http.Request) {
	WriteText(w, http.StatusOK, "ok\n")
}

func handleNotFound(w http.ResponseWriter, r *http.Request) {
	WriteText(w, http.StatusNotFound, "Not Found\n")
}

// routeTargets are the dialects reachable as /{path}/{target}. The bare
// /{path} route serves render.TargetRaw.
var routeTargets = map[string]render.Target{
	"surge": render.TargetSurge,
	"clash": render.TargetClash,
	"v2ray": render.TargetV2ray,
}

func (s *server) handleSubscription(w http.ResponseWriter, r *http.Request) {
	// Subscription URLs never carry a query string.
	if r.URL.RawQuery != "" {
		handleNotFound(w, r)
		return
	}

	target := render.TargetRaw
	if name := r.PathValue("target"); name != "" {
		t, ok := routeTargets[name]
		if !ok {
			handleNotFound(w, r)
			return
		}
		target = t
	}

	path := r.PathValue("path")
	if !store.ValidatePath(path) {
		handleNotFound(w, r)
		return
	}

	if s.opt.Source == nil {
		s.writeErrorFromErr(w, errNoSource)
		return
	}
	lines, err := s.opt.Source.Lines(path)
	if err != nil {
		var se *store.Error
		if errors.As(err, &se) && se.AppError.Code == store.CodeNotFound {
			handleNotFound(w, r)
			return
		}
		s.writeErrorFromErr(w, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), s.opt.ConvertTimeout)
	defer cancel()

	start := time.Now()
	res, err := render.Render(ctx, target, lines, render.Options{
		Now:         s.opt.Now,
		Parallelism: s.opt.Parallelism,
	})
	if err != nil {
		s.writeErrorFromErr(w, err)
		return
	}
	s.metrics.RenderDuration.WithLabelValues(string(target)).Observe(time.Since(start).Seconds())
	s.metrics.NodesEmitted.WithLabelValues(string(target)).Add(float64(res.Emitted))
	s.metrics.NodesDropped.WithLabelValues(string(target)).Add(float64(res.Dropped))

	writeSubscription(w, r, res)
}

func writeSubscription(w http.ResponseWriter, r *http.Request, res *render.Result) {
	etag := fmt.Sprintf(`"%016x"`, xxhash.Sum64String(res.Text))
	w.Header().Set("ETag", etag)
	w.Header().Set("Cache-Control", "no-cache")
	if etagMatches(r.Header.Get("If-None-Match"), etag) {
		w.WriteHeader(http.StatusNotModified)
		return
	}
	w.Header().Set("Content-Type", res.ContentType)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(res.Text))
}

// etagMatches implements the weak comparison used by If-None-Match.
func etagMatches(header, etag string) bool {
	for _, candidate := range strings.Split(header, ",") {
		candidate = strings.TrimSpace(candidate)
		if candidate == "*" || strings.TrimPrefix(candidate, "W/") == etag {
			return true
		}
	}
	return false
}
