// Package metrics holds the Prometheus collectors the bot exports on /metrics.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "cleaning_feedback"

// Finalize outcomes
const (
	OutcomeRecorded = "recorded"
	OutcomeRejected = "cooldown_rejected"
	OutcomeFailed   = "failed"
)

type Metrics struct {
	registry *prometheus.Registry

	StepsHandled      *prometheus.CounterVec
	StepsReprompted   *prometheus.CounterVec
	Finalizations     *prometheus.CounterVec
	TokensRejected    prometheus.Counter
	RetractionSkipped prometheus.Counter
	UpdatesHandled    *prometheus.CounterVec
}

func New(registry *prometheus.Registry) *Metrics {
	m := &Metrics{
		registry: registry,
		StepsHandled: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "steps_handled_total",
			Help:      "Conversation steps answered, by step.",
		}, []string{"step"}),
		StepsReprompted: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "steps_reprompted_total",
			Help:      "Choice-only steps that received free text and were asked again, by step.",
		}, []string{"step"}),
		Finalizations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "finalizations_total",
			Help:      "Finalize attempts, by outcome.",
		}, []string{"outcome"}),
		TokensRejected: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "tokens_rejected_total",
			Help:      "Inbound events whose conversation token could not be opened.",
		}),
		RetractionSkipped: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "retraction_skipped_total",
			Help:      "Messages that were already gone when cleanup tried to delete them.",
		}),
		UpdatesHandled: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "updates_handled_total",
			Help:      "Transport updates dispatched, by kind.",
		}, []string{"kind"}),
	}

	registry.MustRegister(
		m.StepsHandled,
		m.StepsReprompted,
		m.Finalizations,
		m.TokensRejected,
		m.RetractionSkipped,
		m.UpdatesHandled,
	)
	return m
}

// NewNop builds collectors on a private registry; handy in tests.
func NewNop() *Metrics {
	return New(prometheus.NewRegistry())
}

func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}
