// Package metrics exposes Prometheus counters for HTTP traffic and for the
// order and menu events the data service publishes.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"burger-house-api/events"
	"burger-house-api/models"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Metrics struct {
	registry *prometheus.Registry

	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec
	AuthAttempts        *prometheus.CounterVec
	OrdersCreated       *prometheus.CounterVec
	OrderTransitions    *prometheus.CounterVec
	MenuChanges         prometheus.Counter
}

// New registers every collector under prefix on a private registry
func New(prefix string) *Metrics {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	return &Metrics{
		registry: reg,
		HTTPRequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: prefix + "_http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "path", "status"},
		),
		HTTPRequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    prefix + "_http_request_duration_seconds",
				Help:    "Duration of HTTP requests in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "path", "status"},
		),
		AuthAttempts: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: prefix + "_auth_attempts_total",
				Help: "Login attempts by result",
			},
			[]string{"result"},
		),
		OrdersCreated: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: prefix + "_orders_created_total",
				Help: "Orders created, by source",
			},
			[]string{"source"},
		),
		OrderTransitions: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: prefix + "_order_transitions_total",
				Help: "Order status changes, by target status",
			},
			[]string{"to"},
		),
		MenuChanges: factory.NewCounter(
			prometheus.CounterOpts{
				Name: prefix + "_menu_changes_total",
				Help: "Menu product mutations",
			},
		),
	}
}

// Handler serves the registry in the Prometheus text format
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Middleware records count and latency of every request by route pattern
func (m *Metrics) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		status := strconv.Itoa(c.Writer.Status())
		m.HTTPRequestsTotal.WithLabelValues(c.Request.Method, path, status).Inc()
		m.HTTPRequestDuration.WithLabelValues(c.Request.Method, path, status).Observe(time.Since(start).Seconds())
	}
}

// RecordLogin counts a login attempt
func (m *Metrics) RecordLogin(ok bool) {
	result := "failure"
	if ok {
		result = "success"
	}
	m.AuthAttempts.WithLabelValues(result).Inc()
}

// Watch counts domain events from hub until the returned func is called
func (m *Metrics) Watch(hub *events.Hub) func() {
	return hub.SubscribeAll(m.observe)
}

func (m *Metrics) observe(topic string, payload interface{}) {
	switch topic {
	case events.TopicNewOrder:
		if o, ok := payload.(models.Order); ok {
			m.OrdersCreated.WithLabelValues(string(o.Source)).Inc()
		}
	case events.TopicOrderStatusChanged:
		if sc, ok := payload.(events.StatusChange); ok {
			m.OrderTransitions.WithLabelValues(string(sc.To)).Inc()
		}
	case events.TopicProductsChanged:
		m.MenuChanges.Inc()
	}
}
