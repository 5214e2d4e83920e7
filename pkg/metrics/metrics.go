// Package metrics provides Prometheus metrics for the storefront.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// CartItemsAdded counts units added to the cart.
	CartItemsAdded = promauto.NewCounter(prometheus.CounterOpts{
		Name: "storefront_cart_items_added_total",
		Help: "Total number of units added to the cart",
	})

	// CheckoutsTotal counts checkout attempts by result kind.
	CheckoutsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "storefront_checkouts_total",
		Help: "Total number of checkout attempts by result",
	}, []string{"result"})

	// OrderAmount observes committed order totals.
	OrderAmount = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "storefront_order_amount",
		Help:    "Committed order totals",
		Buckets: []float64{500, 1000, 2500, 5000, 10000, 25000, 50000, 100000, 250000},
	})

	// LedgerOrders tracks how many orders the ledger holds.
	LedgerOrders = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "storefront_ledger_orders",
		Help: "Number of committed orders held in memory",
	})

	// HTTPRequestTotal tracks HTTP requests by method, route and status code.
	HTTPRequestTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "storefront_http_requests_total",
		Help: "Total number of HTTP requests",
	}, []string{"method", "route", "status_code"})

	// HTTPRequestDuration tracks HTTP request duration by method and route.
	HTTPRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "storefront_http_request_duration_seconds",
		Help:    "HTTP request duration in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "route"})
)

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

// Middleware records request counts and latencies, labelled by the matched
// mux route template.
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)

		route := "unmatched"
		if cur := mux.CurrentRoute(r); cur != nil {
			if tpl, err := cur.GetPathTemplate(); err == nil {
				route = tpl
			}
		}
		HTTPRequestTotal.WithLabelValues(r.Method, route, strconv.Itoa(rec.status)).Inc()
		HTTPRequestDuration.WithLabelValues(r.Method, route).Observe(time.Since(start).Seconds())
	})
}
