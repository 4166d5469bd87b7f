package metrics

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/balasre/pharmacare-backend/pkg/enums"
)

// OrderMetrics records order placement outcomes.
type OrderMetrics struct {
	placed         *prometheus.CounterVec
	stockConflicts prometheus.Counter
	orderValue     prometheus.Histogram
}

// NewOrderMetrics registers the order metrics on the provided registerer.
func NewOrderMetrics(reg prometheus.Registerer) *OrderMetrics {
	if reg == nil {
		return &OrderMetrics{}
	}
	placed := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "orders_placed_total",
		Help: "Orders successfully placed.",
	}, []string{"delivery_type"})
	stockConflicts := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "orders_stock_conflicts_total",
		Help: "Order attempts rejected for insufficient stock.",
	})
	orderValue := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "order_value",
		Help:    "Distribution of order totals including delivery fee.",
		Buckets: prometheus.ExponentialBuckets(50, 2, 10),
	})
	reg.MustRegister(placed, stockConflicts, orderValue)
	return &OrderMetrics{
		placed:         placed,
		stockConflicts: stockConflicts,
		orderValue:     orderValue,
	}
}

// IncPlaced increments the placed counter for the given delivery type.
func (o *OrderMetrics) IncPlaced(deliveryType enums.DeliveryType) {
	if o == nil || o.placed == nil {
		return
	}
	o.placed.WithLabelValues(normalizeLabel(string(deliveryType))).Inc()
}

// IncStockConflict increments the insufficient-stock counter.
func (o *OrderMetrics) IncStockConflict() {
	if o == nil || o.stockConflicts == nil {
		return
	}
	o.stockConflicts.Inc()
}

// ObserveOrderValue records the total charged for a placed order.
func (o *OrderMetrics) ObserveOrderValue(total int) {
	if o == nil || o.orderValue == nil {
		return
	}
	o.orderValue.Observe(float64(total))
}

func normalizeLabel(value string) string {
	if value == "" {
		return "unknown"
	}
	return value
}
