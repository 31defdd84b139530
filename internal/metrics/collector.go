// Package metrics exposes Prometheus counters for file processing and HTTP traffic.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/baditaflorin/go_word_frequency/internal/core/domain"
)

// Collector owns a private registry so several collectors can coexist in tests.
type Collector struct {
	registry *prometheus.Registry

	filesTotal      *prometheus.CounterVec
	tokensTotal     prometheus.Counter
	bytesTotal      prometheus.Counter
	requestsTotal   *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
}

// NewCollector creates a collector whose metric names start with namespace.
func NewCollector(namespace string) *Collector {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	factory := promauto.With(reg)

	return &Collector{
		registry: reg,
		filesTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "files_processed_total",
				Help:      "Total number of input files processed, by outcome",
			},
			[]string{"status"},
		),
		tokensTotal: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "tokens_read_total",
			Help:      "Total number of raw tokens read from input",
		}),
		bytesTotal: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "bytes_read_total",
			Help:      "Total number of input bytes read",
		}),
		requestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "http_requests_total",
				Help:      "Total number of HTTP requests",
			},
			[]string{"method", "path", "status"},
		),
		requestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "http_request_duration_seconds",
				Help:      "HTTP request duration in seconds",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"method", "path"},
		),
	}
}

// ObserveFiles records the outcome of processed files.
func (c *Collector) ObserveFiles(results ...domain.FileResult) {
	for _, r := range results {
		status := "ok"
		if !r.OK() {
			status = "error"
		}
		c.filesTotal.WithLabelValues(status).Inc()
		c.tokensTotal.Add(float64(r.Tokens))
		c.bytesTotal.Add(float64(r.Bytes))
	}
}

// ObserveTokens records tokens read from a source other than a file.
func (c *Collector) ObserveTokens(tokens int, bytes int64) {
	c.tokensTotal.Add(float64(tokens))
	c.bytesTotal.Add(float64(bytes))
}

// ObserveRequest records one HTTP request.
func (c *Collector) ObserveRequest(method, path string, status int, duration time.Duration) {
	c.requestsTotal.WithLabelValues(method, path, strconv.Itoa(status)).Inc()
	c.requestDuration.WithLabelValues(method, path).Observe(duration.Seconds())
}

// Registry returns the underlying registry.
func (c *Collector) Registry() *prometheus.Registry {
	return c.registry
}

// Handler serves the registry in the Prometheus exposition format.
func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{})
}
