package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// StorefrontMetrics records cart and checkout activity.
type StorefrontMetrics struct {
	cartMutations   *prometheus.CounterVec
	checkoutResults *prometheus.CounterVec
	gatewayLatency  *prometheus.HistogramVec
}

// NewStorefrontMetrics registers the storefront metrics on the provided registerer.
func NewStorefrontMetrics(reg prometheus.Registerer) *StorefrontMetrics {
	if reg == nil {
		return &StorefrontMetrics{}
	}
	cartMutations := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "cart_mutations_total",
		Help: "Cart mutations by operation.",
	}, []string{"op"})
	checkoutResults := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "checkout_results_total",
		Help: "Checkout attempts by terminal result.",
	}, []string{"result"})
	gatewayLatency := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "payment_gateway_seconds",
		Help:    "Latency of payment gateway calls in seconds.",
		Buckets: prometheus.DefBuckets,
	}, []string{"call"})
	reg.MustRegister(cartMutations, checkoutResults, gatewayLatency)
	return &StorefrontMetrics{
		cartMutations:   cartMutations,
		checkoutResults: checkoutResults,
		gatewayLatency:  gatewayLatency,
	}
}

// IncCartMutation increments the mutation counter for the named operation.
func (m *StorefrontMetrics) IncCartMutation(op string) {
	if m == nil || m.cartMutations == nil {
		return
	}
	m.cartMutations.WithLabelValues(normalizeLabel(op)).Inc()
}

// IncCheckoutResult increments the result counter for the named outcome.
func (m *StorefrontMetrics) IncCheckoutResult(result string) {
	if m == nil || m.checkoutResults == nil {
		return
	}
	m.checkoutResults.WithLabelValues(normalizeLabel(result)).Inc()
}

// ObserveGatewayLatency records the duration of the named gateway call.
func (m *StorefrontMetrics) ObserveGatewayLatency(call string, duration time.Duration) {
	if m == nil || m.gatewayLatency == nil {
		return
	}
	m.gatewayLatency.WithLabelValues(normalizeLabel(call)).Observe(duration.Seconds())
}

func normalizeLabel(value string) string {
	if value == "" {
		return "unknown"
	}
	return value
}
