package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	httpRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests.",
		},
		[]string{"method", "endpoint", "status"},
	)
	httpRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Histogram of HTTP request durations.",
			Buckets: []float64{0.1, 0.5, 1, 2, 5, 10},
		},
		[]string{"method", "endpoint", "status"},
	)
	feedPagesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "feed_pages_total",
			Help: "Assembled feed pages, labelled by whether the pool ran short.",
		},
		[]string{"exhausted"},
	)
	feedPageSize = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "feed_page_size",
			Help:    "Number of products in assembled pages after dedup.",
			Buckets: []float64{0, 5, 10, 20, 30, 50},
		},
	)
)

func init() {
	prometheus.MustRegister(httpRequestsTotal)
	prometheus.MustRegister(httpRequestDuration)
	prometheus.MustRegister(feedPagesTotal)
	prometheus.MustRegister(feedPageSize)
}

// RecordRequest records metrics for a finished HTTP request.
func RecordRequest(method, endpoint string, statusCode int, duration time.Duration) {
	status := classifyStatus(statusCode)
	httpRequestsTotal.WithLabelValues(method, endpoint, status).Inc()
	httpRequestDuration.WithLabelValues(method, endpoint, status).Observe(duration.Seconds())
}

// RecordFeedPage records the outcome of one assemble call.
func RecordFeedPage(size int, exhausted bool) {
	feedPagesTotal.WithLabelValues(strconv.FormatBool(exhausted)).Inc()
	feedPageSize.Observe(float64(size))
}

func classifyStatus(statusCode int) string {
	if statusCode >= 200 && statusCode < 300 {
		return "2xx"
	} else if statusCode >= 300 && statusCode < 400 {
		return "3xx"
	} else if statusCode >= 400 && statusCode < 500 {
		return "4xx"
	} else if statusCode >= 500 && statusCode < 600 {
		return "5xx"
	}
	return "unknown"
}

// MetricsHandler returns the HTTP handler exporting Prometheus metrics.
func MetricsHandler() http.Handler {
	return promhttp.Handler()
}
