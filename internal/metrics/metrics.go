package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Collector records weatherstack call outcomes. Collectors are registered on
// the registry handed to New, never on the global default registry.
type Collector struct {
	// CallsTotal counts client operations per endpoint and outcome kind
	CallsTotal *prometheus.CounterVec
	// AttemptsTotal counts HTTP attempts, retries included
	AttemptsTotal *prometheus.CounterVec
	// CallLatency tracks end-to-end latency of a client operation
	CallLatency *prometheus.HistogramVec
	// ScenariosTotal counts conformance scenario results per status
	ScenariosTotal *prometheus.CounterVec
}

func New(reg prometheus.Registerer) *Collector {
	c := &Collector{
		CallsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "weatherstack_calls_total",
				Help: "Total number of weatherstack client operations",
			},
			[]string{"endpoint", "outcome"},
		),
		AttemptsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "weatherstack_http_attempts_total",
				Help: "Total number of HTTP attempts sent to weatherstack",
			},
			[]string{"endpoint"},
		),
		CallLatency: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "weatherstack_call_latency_seconds",
				Help:    "Weatherstack client operation latency in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"endpoint"},
		),
		ScenariosTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "weatherstack_scenarios_total",
				Help: "Total number of conformance scenarios by status",
			},
			[]string{"status"},
		),
	}

	reg.MustRegister(c.CallsTotal, c.AttemptsTotal, c.CallLatency, c.ScenariosTotal)

	return c
}

// ObserveCall records one finished client operation. A nil collector is a no-op.
func (c *Collector) ObserveCall(endpoint, outcome string, attempts int, latency time.Duration) {
	if c == nil {
		return
	}
	c.CallsTotal.WithLabelValues(endpoint, outcome).Inc()
	c.AttemptsTotal.WithLabelValues(endpoint).Add(float64(attempts))
	c.CallLatency.WithLabelValues(endpoint).Observe(latency.Seconds())
}

func (c *Collector) ObserveScenario(status string) {
	if c == nil {
		return
	}
	c.ScenariosTotal.WithLabelValues(status).Inc()
}

// WriteTextfile dumps every metric of g in the text exposition format, for
// the node exporter textfile collector.
func WriteTextfile(path string, g prometheus.Gatherer) error {
	return prometheus.WriteToTextfile(path, g)
}
