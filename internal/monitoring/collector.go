// Package monitoring exposes widget activity as Prometheus metrics and as an
// in-memory snapshot.
package monitoring

import (
	"errors"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/WIIN2602/Farm2Hand/internal/checkout"
	"github.com/WIIN2602/Farm2Hand/internal/navigator"
)

const namespace = "farm2hand"

// Collector observes widget sessions. One collector is shared by all sessions.
type Collector struct {
	registry       *prometheus.Registry
	viewChanges    *prometheus.CounterVec
	cartOps        *prometheus.CounterVec
	confirmations  *prometheus.CounterVec
	rejections     *prometheus.CounterVec
	orderValue     prometheus.Histogram
	forwarded      prometheus.Counter
	activeSessions prometheus.Gauge
	monitor        *Monitor
}

// NewCollector registers the widget metrics on a fresh registry together with
// the Go and process collectors. monitor may be nil.
func NewCollector(monitor *Monitor) *Collector {
	if monitor == nil {
		monitor = NewMonitor()
	}
	c := &Collector{
		registry: prometheus.NewRegistry(),
		viewChanges: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "view_changes_total",
			Help:      "Widget view transitions by destination view",
		}, []string{"view"}),
		cartOps: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cart_operations_total",
			Help:      "Cart mutations by operation",
		}, []string{"op"}),
		confirmations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "orders_confirmed_total",
			Help:      "Confirmed orders by payment method",
		}, []string{"payment_method"}),
		rejections: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "order_confirmations_rejected_total",
			Help:      "Rejected confirmations by reason",
		}, []string{"reason"}),
		orderValue: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "order_value_baht",
			Help:      "Total of confirmed orders including shipping",
			Buckets:   prometheus.LinearBuckets(0, 250, 12),
		}),
		forwarded: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "messages_forwarded_total",
			Help:      "Intents handed off to the assistant",
		}),
		activeSessions: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "active_sessions",
			Help:      "Open widget sessions",
		}),
		monitor: monitor,
	}
	c.registry.MustRegister(
		c.viewChanges,
		c.cartOps,
		c.confirmations,
		c.rejections,
		c.orderValue,
		c.forwarded,
		c.activeSessions,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return c
}

// Registry returns the registry holding the widget metrics.
func (c *Collector) Registry() *prometheus.Registry { return c.registry }

// Monitor returns the in-memory snapshot fed by the collector.
func (c *Collector) Monitor() *Monitor { return c.monitor }

// Handler serves the registry in the Prometheus exposition format.
func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{Registry: c.registry})
}

// SessionOpened records a new session.
func (c *Collector) SessionOpened() {
	c.activeSessions.Inc()
	c.monitor.Add("sessions_opened", 1)
	c.monitor.Add("active_sessions", 1)
}

// SessionClosed records a session leaving the store.
func (c *Collector) SessionClosed() {
	c.activeSessions.Dec()
	c.monitor.Add("active_sessions", -1)
}

func (c *Collector) ViewChanged(from, to navigator.View) {
	c.viewChanges.WithLabelValues(to.Kind().String()).Inc()
	c.monitor.Add("view_changes", 1)
}

func (c *Collector) CartChanged(op string) {
	c.cartOps.WithLabelValues(op).Inc()
	c.monitor.Add("cart_"+op, 1)
}

func (c *Collector) OrderConfirmed(conf checkout.Confirmation) {
	c.confirmations.WithLabelValues(string(conf.Method.ID)).Inc()
	total, _ := conf.Total.Float64()
	c.orderValue.Observe(total)
	c.monitor.Add("orders_confirmed", 1)
	c.monitor.Add("confirmed_value", total)
}

func (c *Collector) ConfirmRejected(err error) {
	reason := "other"
	var verr *checkout.ValidationError
	if errors.As(err, &verr) {
		reason = verr.Message
	}
	c.rejections.WithLabelValues(reason).Inc()
	c.monitor.Add("confirmations_rejected", 1)
}

func (c *Collector) MessageForwarded(text string) {
	c.forwarded.Inc()
	c.monitor.Add("messages_forwarded", 1)
}
