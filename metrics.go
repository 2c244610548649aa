package fsmkit

import (
	"errors"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Transition outcomes reported in the "outcome" label.
const (
	outcomeApplied  = "applied"
	outcomeRefused  = "refused"
	outcomeInvalid  = "invalid"
	outcomeNotFound = "not_found"
	outcomeFailed   = "failed"
)

type metrics struct {
	transitions *prometheus.CounterVec
	duration    *prometheus.HistogramVec
}

func newMetrics(reg prometheus.Registerer) (*metrics, error) {
	labels := []string{"resource", "field", "transition"}

	transitions := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "fsmkit",
		Name:      "transitions_total",
		Help:      "Transition requests by outcome.",
	}, append(labels, "outcome"))

	duration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "fsmkit",
		Name:      "transition_duration_seconds",
		Help:      "Time spent handling transition requests.",
		Buckets:   prometheus.DefBuckets,
	}, labels)

	var err error
	if transitions, err = register(reg, transitions); err != nil {
		return nil, err
	}
	if duration, err = register(reg, duration); err != nil {
		return nil, err
	}
	return &metrics{transitions: transitions, duration: duration}, nil
}

// register returns the collector already registered under the same
// descriptor, so several registries can share one Registerer.
func register[C prometheus.Collector](reg prometheus.Registerer, c C) (C, error) {
	if err := reg.Register(c); err != nil {
		var are prometheus.AlreadyRegisteredError
		if errors.As(err, &are) {
			if existing, ok := are.ExistingCollector.(C); ok {
				return existing, nil
			}
		}
		return c, err
	}
	return c, nil
}

func (m *metrics) observe(resource, field, transition, outcome string, d time.Duration) {
	if m == nil {
		return
	}
	m.transitions.WithLabelValues(resource, field, transition, outcome).Inc()
	m.duration.WithLabelValues(resource, field, transition).Observe(d.Seconds())
}
