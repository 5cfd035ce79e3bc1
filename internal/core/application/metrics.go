package application

import (
	"errors"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/tdex-network/tdex-faucet/internal/core/domain"
)

const metricsNamespace = "faucet"

type metrics struct {
	dispenses *prometheus.CounterVec
	latency   *prometheus.HistogramVec
}

func newMetrics(reg prometheus.Registerer) (*metrics, error) {
	if reg == nil {
		reg = prometheus.NewRegistry()
	}

	dispenses := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: metricsNamespace,
		Name:      "dispenses_total",
		Help:      "Number of dispense requests by network and final state.",
	}, []string{"network", "state", "result"})
	latency := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: metricsNamespace,
		Name:      "dispense_duration_seconds",
		Help:      "Duration of dispense requests by network.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"network"})

	var err error
	if dispenses, err = registerCounter(reg, dispenses); err != nil {
		return nil, err
	}
	if latency, err = registerHistogram(reg, latency); err != nil {
		return nil, err
	}
	return &metrics{dispenses, latency}, nil
}

func (m *metrics) observe(
	network domain.NetworkKind, state DispenseState, err error,
	elapsed time.Duration,
) {
	result := "success"
	if err != nil {
		result = "failure"
	}
	m.dispenses.WithLabelValues(
		network.String(), state.String(), result,
	).Inc()
	m.latency.WithLabelValues(network.String()).Observe(elapsed.Seconds())
}

func registerCounter(
	reg prometheus.Registerer, c *prometheus.CounterVec,
) (*prometheus.CounterVec, error) {
	if err := reg.Register(c); err != nil {
		var are prometheus.AlreadyRegisteredError
		if errors.As(err, &are) {
			if existing, ok := are.ExistingCollector.(*prometheus.CounterVec); ok {
				return existing, nil
			}
		}
		return nil, err
	}
	return c, nil
}

func registerHistogram(
	reg prometheus.Registerer, h *prometheus.HistogramVec,
) (*prometheus.HistogramVec, error) {
	if err := reg.Register(h); err != nil {
		var are prometheus.AlreadyRegisteredError
		if errors.As(err, &are) {
			if existing, ok := are.ExistingCollector.(*prometheus.HistogramVec); ok {
				return existing, nil
			}
		}
		return nil, err
	}
	return h, nil
}
