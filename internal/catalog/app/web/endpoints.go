package web

import (
	"net/http"
	"time"

	"swipemarket_api/internal/catalog/app/web/handlers"
	"swipemarket_api/metrics"
	"swipemarket_api/pkg/logger"
)

// SetupRoutes wires the catalog API onto a fresh mux. Every endpoint goes
// through the request-metrics wrapper.
func SetupRoutes(log logger.Logger, feedHandler *handlers.FeedHandler, swipeHandler *handlers.SwipeHandler) *http.ServeMux {
	mux := http.NewServeMux()

	mux.HandleFunc("/api/feed", withRequestMetrics(log, "/api/feed", feedHandler.GetFeedHandler))
	mux.HandleFunc("/api/swipes", withRequestMetrics(log, "/api/swipes", swipeHandler.SwipesHandler))
	mux.HandleFunc("/api/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})
	mux.Handle("/metrics", metrics.MetricsHandler())

	return mux
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (rec *statusRecorder) WriteHeader(status int) {
	rec.status = status
	rec.ResponseWriter.WriteHeader(status)
}

func withRequestMetrics(log logger.Logger, endpoint string, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next(rec, r)
		duration := time.Since(start)
		metrics.RecordRequest(r.Method, endpoint, rec.status, duration)
		log.Log("%s %s -> %d (%s)", r.Method, endpoint, rec.status, duration)
	}
}
