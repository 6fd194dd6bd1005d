// Package metrics exposes Prometheus instrumentation for the HTTP surface and
// the upstream chat-completion calls.
//
// Metrics:
//   - licitaciones_http_requests_total: request count by method and status
//     ("aborted" when the connection was dropped without a response)
//   - licitaciones_http_request_duration_seconds: request latency by method
//   - licitaciones_upstream_requests_total: OpenRouter calls by outcome
//   - licitaciones_upstream_request_duration_seconds: OpenRouter latency by outcome
package metrics

import (
	"net/http"
	"strconv"
	"time"

	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "licitaciones"

// StatusAborted is the status label of requests dropped without a response.
const StatusAborted = "aborted"

type Collector struct {
	registry *prometheus.Registry

	httpRequests     *prometheus.CounterVec
	httpDuration     *prometheus.HistogramVec
	upstreamRequests *prometheus.CounterVec
	upstreamDuration *prometheus.HistogramVec
}

// NewCollector creates a collector backed by its own registry, so several
// collectors can coexist in tests.
func NewCollector() *Collector {
	c := &Collector{
		registry: prometheus.NewRegistry(),

		httpRequests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "http_requests_total",
				Help:      "Total number of HTTP requests served",
			},
			[]string{"method", "status"},
		),

		httpDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "http_request_duration_seconds",
				Help:      "Duration of HTTP requests in seconds",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"method"},
		),

		upstreamRequests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "upstream_requests_total",
				Help:      "Total number of chat-completion calls sent to OpenRouter",
			},
			[]string{"outcome"},
		),

		upstreamDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "upstream_request_duration_seconds",
				Help:      "Duration of OpenRouter chat-completion calls in seconds",
				Buckets:   []float64{0.5, 1, 2.5, 5, 10, 20, 40, 80, 160},
			},
			[]string{"outcome"},
		),
	}

	c.registry.MustRegister(
		c.httpRequests,
		c.httpDuration,
		c.upstreamRequests,
		c.upstreamDuration,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	return c
}

// ObserveUpstream records one OpenRouter call.
func (c *Collector) ObserveUpstream(outcome string, elapsed time.Duration) {
	c.upstreamRequests.WithLabelValues(outcome).Inc()
	c.upstreamDuration.WithLabelValues(outcome).Observe(elapsed.Seconds())
}

// Middleware counts every request and measures its latency.
func (c *Collector) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := chimiddleware.NewWrapResponseWriter(w, r.ProtoMajor)

		defer func() {
			rvr := recover()

			status := strconv.Itoa(ww.Status())
			switch {
			case rvr == http.ErrAbortHandler:
				status = StatusAborted
			case ww.Status() == 0:
				status = strconv.Itoa(http.StatusOK)
			}
			c.httpRequests.WithLabelValues(r.Method, status).Inc()
			c.httpDuration.WithLabelValues(r.Method).Observe(time.Since(start).Seconds())

			if rvr != nil {
				panic(rvr)
			}
		}()

		next.ServeHTTP(ww, r)
	})
}

// Handler serves the registry in the Prometheus exposition format.
func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{
		EnableOpenMetrics: true,
		ErrorHandling:     promhttp.ContinueOnError,
	})
}
