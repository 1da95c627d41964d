// Package middleware provides HTTP middleware for the invoicing API.
package middleware

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
)

// HTTPMetrics holds the Prometheus instruments for HTTP traffic.
type HTTPMetrics struct {
	requestTotal    *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
	requestSize     *prometheus.HistogramVec
	responseSize    *prometheus.HistogramVec
	activeRequests  prometheus.Gauge
}

// NewHTTPMetrics creates and registers the HTTP metric instruments.
func NewHTTPMetrics(reg prometheus.Registerer) *HTTPMetrics {
	m := &HTTPMetrics{
		requestTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "http_server_request_total",
			Help: "Total number of HTTP requests",
		}, []string{"method", "route", "status_code"}),
		requestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "http_server_request_duration_seconds",
			Help:    "HTTP request latency distribution in seconds",
			Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		}, []string{"method", "route"}),
		requestSize: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "http_server_request_size_bytes",
			Help:    "HTTP request body size distribution in bytes",
			Buckets: []float64{100, 500, 1000, 5000, 10000, 50000, 100000, 500000, 1000000},
		}, []string{"method", "route"}),
		responseSize: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "http_server_response_size_bytes",
			Help:    "HTTP response body size distribution in bytes",
			Buckets: []float64{100, 500, 1000, 5000, 10000, 50000, 100000, 500000, 1000000, 5000000},
		}, []string{"method", "route"}),
		activeRequests: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "http_server_active_requests",
			Help: "Number of currently active HTTP requests",
		}),
	}

	reg.MustRegister(
		m.requestTotal,
		m.requestDuration,
		m.requestSize,
		m.responseSize,
		m.activeRequests,
	)
	return m
}

// Middleware returns a gin middleware that records request metrics.
// Labels use the matched route pattern, not the raw path, to keep
// cardinality bounded.
func (m *HTTPMetrics) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		requestSize := c.Request.ContentLength

		m.activeRequests.Inc()
		c.Next()
		m.activeRequests.Dec()

		duration := time.Since(start)
		route := getRoutePattern(c)
		method := c.Request.Method
		status := strconv.Itoa(c.Writer.Status())

		m.requestTotal.WithLabelValues(method, route, status).Inc()
		m.requestDuration.WithLabelValues(method, route).Observe(duration.Seconds())

		if requestSize > 0 {
			m.requestSize.WithLabelValues(method, route).Observe(float64(requestSize))
		}
		if size := c.Writer.Size(); size > 0 {
			m.responseSize.WithLabelValues(method, route).Observe(float64(size))
		}
	}
}

// getRoutePattern returns the matched route pattern (e.g. "/api/v1/invoices/:id").
func getRoutePattern(c *gin.Context) string {
	route := c.FullPath()
	if route == "" {
		return "unknown"
	}
	return route
}
