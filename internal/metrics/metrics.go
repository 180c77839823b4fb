// Package metrics exposes Prometheus counters for search activity.
package metrics

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Recorder owns a private registry. A nil *Recorder is a valid no-op.
type Recorder struct {
	registry *prometheus.Registry

	searches *prometheus.CounterVec
	duration prometheus.Histogram
	results  prometheus.Histogram
	stale    prometheus.Counter
	rejected prometheus.Counter
}

// New builds a Recorder with all collectors registered.
func New() *Recorder {
	reg := prometheus.NewRegistry()
	r := &Recorder{
		registry: reg,
		searches: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "booksearch_searches_total",
			Help: "Completed search requests by outcome",
		}, []string{"outcome"}),
		duration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "booksearch_search_duration_seconds",
			Help:    "Wall time of search requests in seconds",
			Buckets: prometheus.DefBuckets,
		}),
		results: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "booksearch_search_results",
			Help:    "Results kept per successful search after truncation",
			Buckets: []float64{0, 1, 5, 10, 15, 20},
		}),
		stale: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "booksearch_stale_responses_total",
			Help: "Responses dropped because a newer search was issued",
		}),
		rejected: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "booksearch_empty_submits_total",
			Help: "Submissions ignored because the query was blank",
		}),
	}
	reg.MustRegister(r.searches, r.duration, r.results, r.stale, r.rejected)
	return r
}

// ObserveSearch records one finished request.
func (r *Recorder) ObserveSearch(outcome string, elapsed time.Duration, results int) {
	if r == nil {
		return
	}
	r.searches.WithLabelValues(outcome).Inc()
	r.duration.Observe(elapsed.Seconds())
	if outcome == "ok" {
		r.results.Observe(float64(results))
	}
}

// StaleDiscarded counts a response that arrived after a newer search started.
func (r *Recorder) StaleDiscarded() {
	if r == nil {
		return
	}
	r.stale.Inc()
}

// EmptyRejected counts a blank submission.
func (r *Recorder) EmptyRejected() {
	if r == nil {
		return
	}
	r.rejected.Inc()
}

// Handler serves the registry in the Prometheus exposition format.
func (r *Recorder) Handler() http.Handler {
	if r == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{})
}

// Serve exposes /metrics on addr until ctx is cancelled.
func (r *Recorder) Serve(ctx context.Context, addr string, logger *slog.Logger) error {
	if logger == nil {
		logger = slog.Default()
	}
	mux := http.NewServeMux()
	mux.Handle("/metrics", r.Handler())

	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("listen %s: %w", addr, err)
	}
	srv := &http.Server{Handler: mux, ReadHeaderTimeout: 5 * time.Second}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()
	go func() {
		logger.Info("metrics listener started", "addr", ln.Addr().String())
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("metrics listener stopped", "error", err)
		}
	}()
	return nil
}
