// Package monitoring exposes Prometheus metrics for the point of
// sale: order throughput plus the pending backlog and revenue the
// admin dashboard reports.
package monitoring

import "github.com/prometheus/client_golang/prometheus"

var (
	// OrdersSubmitted counts orders accepted by Submit.
	OrdersSubmitted = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "gourmet_orders_submitted_total",
		Help: "Number of orders submitted by customers.",
	})

	// OrdersCompleted counts pending-to-completed transitions.
	OrdersCompleted = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "gourmet_orders_completed_total",
		Help: "Number of orders marked completed by an admin.",
	})

	pendingOrders = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "gourmet_orders_pending",
		Help: "Orders currently waiting for the kitchen.",
	})

	revenueTotal = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "gourmet_revenue_vnd",
		Help: "Revenue across all recorded orders, in VND.",
	})

	// RecommendationFallbacks counts recommendation requests that were
	// answered with the fixed fallback string.
	RecommendationFallbacks = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "gourmet_recommendation_fallbacks_total",
		Help: "Recommendation calls that failed and returned the fallback.",
	})
)

func init() {
	prometheus.MustRegister(
		OrdersSubmitted,
		OrdersCompleted,
		pendingOrders,
		revenueTotal,
		RecommendationFallbacks,
	)
}

// ObserveOrders records the current backlog and revenue. Gauges, not
// counters: an external slot change can lower both.
func ObserveOrders(pending int, revenue int64) {
	pendingOrders.Set(float64(pending))
	revenueTotal.Set(float64(revenue))
}
