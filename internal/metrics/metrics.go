package metrics

import (
	"strconv"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	// RequestDuration tracks HTTP request duration in seconds by method, route, status.
	RequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)

	// RequestTotal counts HTTP requests by method, route, status.
	RequestTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	// BlogOperations counts blog mutations by operation (create, update, delete)
	// and result (ok, not_found, forbidden, invalid, error).
	BlogOperations = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "blog_operations_total",
			Help: "Total number of blog create/update/delete operations by result",
		},
		[]string{"operation", "result"},
	)

	// UsersRegistered counts successful registrations.
	UsersRegistered = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "blog_users_registered_total",
			Help: "Total number of registered users",
		},
	)
)

var initOnce sync.Once

func init() {
	initOnce.Do(func() {
		prometheus.MustRegister(RequestDuration, RequestTotal, BlogOperations, UsersRegistered)
	})
}

// RecordRequest records duration and count for an HTTP request. path should be the route pattern.
func RecordRequest(method, path string, statusCode int, durationSeconds float64) {
	status := strconv.Itoa(statusCode)
	RequestDuration.WithLabelValues(method, path, status).Observe(durationSeconds)
	RequestTotal.WithLabelValues(method, path, status).Inc()
}

// RecordBlogOperation increments the blog operation counter.
func RecordBlogOperation(operation, result string) {
	BlogOperations.WithLabelValues(operation, result).Inc()
}

func IncUsersRegistered() {
	UsersRegistered.Inc()
}
