// Package monitoring registers the service's prometheus collectors.
package monitoring

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	httpRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total HTTP requests by method, route and status",
		},
		[]string{"method", "route", "status"},
	)

	httpDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)

	sessionsSaved = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "sessions_saved_total",
			Help: "Sessions created or updated successfully",
		},
	)

	sessionsRejected = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "sessions_rejected_total",
			Help: "Session saves rejected, by reason",
		},
		[]string{"reason"},
	)

	bookingsCreated = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "bookings_created_total",
			Help: "Bookings created successfully",
		},
	)

	bookingsRejected = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bookings_rejected_total",
			Help: "Bookings rejected, by reason",
		},
		[]string{"reason"},
	)
)

// ObserveRequest records one served HTTP request.
func ObserveRequest(method, route string, status int, duration time.Duration) {
	httpRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	httpDuration.WithLabelValues(method, route).Observe(duration.Seconds())
}

func SessionSaved() {
	sessionsSaved.Inc()
}

func SessionRejected(reason string) {
	sessionsRejected.WithLabelValues(reason).Inc()
}

func BookingCreated() {
	bookingsCreated.Inc()
}

func BookingRejected(reason string) {
	bookingsRejected.WithLabelValues(reason).Inc()
}
