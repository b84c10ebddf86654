// Package metrics exposes Prometheus metrics of the language server.
package metrics

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

// Collector owns a private registry so several collectors can coexist in
// one process. A nil *Collector ignores all calls.
type Collector struct {
	registry *prometheus.Registry

	requestsTotal    *prometheus.CounterVec
	requestDuration  *prometheus.HistogramVec
	analysisDuration prometheus.Histogram
	diagnostics      prometheus.Counter
	openDocuments    prometheus.Gauge

	logger *zap.Logger
}

// NewCollector creates a collector with metrics under namespace.
func NewCollector(namespace string, logger *zap.Logger) *Collector {
	if logger == nil {
		logger = zap.NewNop()
	}
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)
	c := &Collector{
		registry: reg,
		logger:   logger.With(zap.String("component", "metrics")),
	}

	c.requestsTotal = factory.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "lsp_requests_total",
			Help:      "Total number of LSP messages handled",
		},
		[]string{"method", "status"},
	)
	c.requestDuration = factory.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "lsp_request_duration_seconds",
			Help:      "LSP message handling duration in seconds",
			Buckets:   []float64{0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1},
		},
		[]string{"method"},
	)
	c.analysisDuration = factory.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "analysis_duration_seconds",
			Help:      "Duration of one document diagnostics run",
			Buckets:   prometheus.ExponentialBuckets(0.0001, 4, 8),
		},
	)
	c.diagnostics = factory.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "diagnostics_reported_total",
			Help:      "Total number of diagnostics produced",
		},
	)
	c.openDocuments = factory.NewGauge(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "open_documents",
			Help:      "Number of documents currently open in the editor",
		},
	)
	return c
}

// RecordRequest records one handled LSP message.
func (c *Collector) RecordRequest(method string, err error, duration time.Duration) {
	if c == nil {
		return
	}
	status := "ok"
	if err != nil {
		status = "error"
	}
	c.requestsTotal.WithLabelValues(method, status).Inc()
	c.requestDuration.WithLabelValues(method).Observe(duration.Seconds())
}

// RecordAnalysis records one diagnostics run and the number of findings.
func (c *Collector) RecordAnalysis(duration time.Duration, diagnostics int) {
	if c == nil {
		return
	}
	c.analysisDuration.Observe(duration.Seconds())
	c.diagnostics.Add(float64(diagnostics))
}

// SetOpenDocuments sets the open document gauge.
func (c *Collector) SetOpenDocuments(n int) {
	if c == nil {
		return
	}
	c.openDocuments.Set(float64(n))
}

// Handler serves the collector's metrics in the Prometheus text format.
func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{})
}

// Serve exposes /metrics on addr until ctx is done.
func (c *Collector) Serve(ctx context.Context, addr string) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", c.Handler())
	srv := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}

	errCh := make(chan error, 1)
	go func() {
		c.logger.Info("metrics server listening", zap.String("addr", addr))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}
