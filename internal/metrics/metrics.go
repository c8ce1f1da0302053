package metrics

import "github.com/prometheus/client_golang/prometheus"

// NewOrdersCreatedTotal returns a Prometheus counter for successfully created orders
func NewOrdersCreatedTotal() prometheus.Counter {
	return prometheus.NewCounter(prometheus.CounterOpts{
		Name: "orders_created_total",
		Help: "Total number of orders created and paid",
	})
}

// NewPaymentCapturesTotal returns a Prometheus counter vector for capture outcomes,
// labeled by outcome (captured, declined, error)
func NewPaymentCapturesTotal() *prometheus.CounterVec {
	return prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "payment_captures_total",
		Help: "Total number of payment capture attempts by outcome",
	}, []string{"outcome"})
}

// NewPaymentRetriesTotal returns a Prometheus counter for the number of retry attempts
// performed by the payment gateway
func NewPaymentRetriesTotal() prometheus.Counter {
	return prometheus.NewCounter(prometheus.CounterOpts{
		Name: "payment_retries_total",
		Help: "Total number of retry attempts performed by the payment gateway",
	})
}

// NewRateLimitExceededTotal returns a Prometheus counter for the number of rejected HTTP requests due to rate limiting
func NewRateLimitExceededTotal() prometheus.Counter {
	return prometheus.NewCounter(prometheus.CounterOpts{
		Name: "rate_limit_exceeded_total",
		Help: "Total number of rejected HTTP requests due to rate limiting",
	})
}
