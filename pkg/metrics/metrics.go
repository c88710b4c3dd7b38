package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// BusRequests counts handled bus operations by outcome (ok or fault).
	BusRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bus_requests_total",
			Help: "Total number of message bus operations handled",
		},
		[]string{"operation", "outcome"},
	)

	// BusDuration tracks bus operation handling latency.
	BusDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "bus_request_duration_ms",
			Help:    "Duration of message bus operations in ms",
			Buckets: []float64{5, 10, 25, 50, 100, 200, 400, 800, 1600},
		},
		[]string{"operation"},
	)

	// HTTPRequests counts HTTP requests on the ops surface.
	HTTPRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	// HTTPDuration tracks HTTP request latency.
	HTTPDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_ms",
			Help:    "Duration of HTTP requests in ms",
			Buckets: []float64{5, 10, 25, 50, 100, 200, 400, 800, 1600},
		},
		[]string{"method", "path"},
	)
)

// Handler returns the Prometheus scrape handler
func Handler() http.Handler {
	return promhttp.Handler()
}
