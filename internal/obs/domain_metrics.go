package obs

import (
	"fmt"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	domainOnce sync.Once

	// CheckoutTotal counts finalized and failed checkouts by payment method.
	CheckoutTotal *prometheus.CounterVec
	// PromoCreditTotal accumulates promotional credit granted per promotion id.
	PromoCreditTotal *prometheus.CounterVec
	// AdjustmentAppliedTotal counts cart-level adjustments applied by kind.
	AdjustmentAppliedTotal *prometheus.CounterVec
)

// MustRegisterDomainMetrics initialises and registers the register-domain
// Prometheus collectors.
func MustRegisterDomainMetrics(namespace string, reg prometheus.Registerer) {
	domainOnce.Do(func() {
		if reg == nil {
			reg = prometheus.DefaultRegisterer
		}
		CheckoutTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "checkout_total",
			Help:      "Count of checkout outcomes by payment method.",
		}, []string{"method", "result"})
		PromoCreditTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "promo_credit_total",
			Help:      "Promotional credit granted, summed per promotion id.",
		}, []string{"promotion"})
		AdjustmentAppliedTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "adjustment_applied_total",
			Help:      "Count of cart-level adjustments applied by kind.",
		}, []string{"kind"})

		registerCounterVec(reg, &CheckoutTotal)
		registerCounterVec(reg, &PromoCreditTotal)
		registerCounterVec(reg, &AdjustmentAppliedTotal)
	})
}

func registerCounterVec(reg prometheus.Registerer, vec **prometheus.CounterVec) {
	if err := reg.Register(*vec); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if existing, ok := are.ExistingCollector.(*prometheus.CounterVec); ok {
				*vec = existing
			}
			return
		}
		panic(fmt.Errorf("register domain metric: %w", err))
	}
}
