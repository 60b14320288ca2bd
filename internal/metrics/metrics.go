package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Checkout counts order workflow outcomes.
type Checkout struct {
	OrdersCreated   prometheus.Counter
	OrdersCancelled prometheus.Counter
	Failures        *prometheus.CounterVec
}

func NewCheckout() *Checkout {
	created := prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "shop",
		Name:      "orders_created_total",
		Help:      "Total number of orders created.",
	})
	cancelled := prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "shop",
		Name:      "orders_cancelled_total",
		Help:      "Total number of orders cancelled.",
	})
	failures := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "shop",
		Name:      "checkout_failures_total",
		Help:      "Total number of failed checkout attempts by reason.",
	}, []string{"reason"})

	prometheus.MustRegister(created, cancelled, failures)
	return &Checkout{OrdersCreated: created, OrdersCancelled: cancelled, Failures: failures}
}

// Handler serves the default prometheus registry.
func Handler() http.Handler {
	return promhttp.Handler()
}
