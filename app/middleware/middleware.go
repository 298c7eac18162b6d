package middleware

import (
	"net/http"
	"runtime/debug"
	"strconv"
	"time"

	"blogposts/app/metrics"

	"github.com/prometheus/client_golang/prometheus"
	log "github.com/sirupsen/logrus"
)

// Logger logs information about each request
func Logger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		resp := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
		next.ServeHTTP(resp, r)
		log.WithFields(log.Fields{
			"method":   r.Method,
			"path":     r.URL.Path,
			"status":   resp.statusCode,
			"duration": time.Since(start).String(),
		}).Debug("request handled")
	})
}

// Recoverer recovers from panics and logs the error
func Recoverer(metricsManager *metrics.Manager) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if err := recover(); err != nil {
					log.Errorf("http: panic serving %s: %v\n%s", r.URL.Path, err, debug.Stack())
					if metricsManager != nil {
						metricsManager.CounterHandleRequestPanic.Inc()
					}
					http.Error(w, "Internal Server Error", http.StatusInternalServerError)
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}

// ContentTypeJSON sets the Content-Type header to application/json
func ContentTypeJSON(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		next.ServeHTTP(w, r)
	})
}

// RequestMetrics counts requests by method and status and observes their duration.
// A nil manager disables it.
func RequestMetrics(metricsManager *metrics.Manager) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if metricsManager == nil {
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func(begin time.Time) {
				metricsManager.HistRequestDuration.
					With(prometheus.Labels{"method": r.Method}).
					Observe(time.Since(begin).Seconds())
			}(time.Now())

			resp := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
			next.ServeHTTP(resp, r)

			metricsManager.CounterRequests.With(
				prometheus.Labels{
					"method": r.Method,
					"status": strconv.Itoa(resp.statusCode),
				},
			).Inc()
		})
	}
}

type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (r *responseWriter) WriteHeader(statusCode int) {
	r.ResponseWriter.WriteHeader(statusCode)
	r.statusCode = statusCode
}
