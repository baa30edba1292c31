package middleware

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	httpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "habitual_http_requests_total",
			Help: "Total number of HTTP requests by endpoint, method, and status",
		},
		[]string{"endpoint", "method", "status_code"},
	)

	httpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "habitual_http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"endpoint", "method", "status_code"},
	)

	completionEventsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "habitual_completion_events_total",
			Help: "Ledger mutations by kind (toggle, set, increment, decrement, micro)",
		},
		[]string{"kind"},
	)
)

// MetricsMiddleware records per-route request counts and latencies.
// The route template is used as the endpoint label so /habits/:id stays
// a single series regardless of id.
func MetricsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		endpoint := c.FullPath()
		if endpoint == "" {
			endpoint = "unmatched"
		}

		statusCode := strconv.Itoa(c.Writer.Status())
		httpRequestsTotal.WithLabelValues(endpoint, c.Request.Method, statusCode).Inc()
		httpRequestDuration.WithLabelValues(endpoint, c.Request.Method, statusCode).Observe(time.Since(start).Seconds())
	}
}

func RecordCompletionEvent(kind string) {
	completionEventsTotal.WithLabelValues(kind).Inc()
}
