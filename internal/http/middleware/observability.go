package middleware

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"

	"eats-backend/internal/logx"
)

var (
	httpRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)
	httpRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Duration of HTTP requests",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)
)

func init() {
	prometheus.MustRegister(httpRequestsTotal, httpRequestDuration)
}

// Observability counts and times every request and logs its outcome.
// The path label is the chi route pattern, never the raw URL, so order
// and account ids do not explode label cardinality.
func Observability(logger logx.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)

			next.ServeHTTP(ww, r)

			record(logger, r, ww.Status(), time.Since(start))
		})
	}
}

func record(logger logx.Logger, r *http.Request, status int, elapsed time.Duration) {
	path := routePattern(r)
	code := strconv.Itoa(status)

	httpRequestsTotal.WithLabelValues(r.Method, path, code).Inc()
	httpRequestDuration.WithLabelValues(r.Method, path, code).Observe(elapsed.Seconds())

	logger.Info("http request",
		logx.String("method", r.Method),
		logx.String("path", path),
		logx.Int("status", status),
		logx.Duration("duration", elapsed),
	)
}

func routePattern(r *http.Request) string {
	if rc := chi.RouteContext(r.Context()); rc != nil {
		if p := rc.RoutePattern(); p != "" {
			return p
		}
	}
	return r.URL.Path
}
