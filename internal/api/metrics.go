package api

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the API collectors.
type Metrics struct {
	requests      *prometheus.CounterVec
	latency       *prometheus.HistogramVec
	eventsCreated *prometheus.CounterVec
	eventsDeleted prometheus.Counter
}

// NewMetrics registers the API collectors on reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "pet_tracker_http_requests_total",
			Help: "HTTP requests by method, route and status.",
		}, []string{"method", "route", "status"}),
		latency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "pet_tracker_http_request_duration_seconds",
			Help:    "HTTP request latency by method and route.",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "route"}),
		eventsCreated: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "pet_tracker_events_created_total",
			Help: "Events persisted through the API, by type.",
		}, []string{"type"}),
		eventsDeleted: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "pet_tracker_events_deleted_total",
			Help: "Events deleted through the API.",
		}),
	}
	reg.MustRegister(m.requests, m.latency, m.eventsCreated, m.eventsDeleted)
	return m
}

// Middleware records one observation per request.
func (m *Metrics) Middleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()

		status := responseStatus(c, err)
		route := c.Route().Path
		m.requests.WithLabelValues(c.Method(), route, strconv.Itoa(status)).Inc()
		m.latency.WithLabelValues(c.Method(), route).Observe(time.Since(start).Seconds())
		return err
	}
}
