// Package metrics defines the Prometheus collectors exported by the server.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Calculation outcomes.
const (
	OutcomeOK        = "ok"
	OutcomeInvalid   = "invalid"
	OutcomeNotFound  = "not_found"
	OutcomeForbidden = "forbidden"
	OutcomeError     = "error"
)

var (
	// SkinsCalculations counts skins calculations by outcome.
	SkinsCalculations = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "skins_calculations_total",
		Help: "Skins calculations by outcome.",
	}, []string{"outcome"})

	// SkinsCalculationDuration tracks how long a calculation takes, reads included.
	SkinsCalculationDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "skins_calculation_duration_seconds",
		Help:    "Time spent loading a round snapshot and computing skins.",
		Buckets: prometheus.ExponentialBuckets(0.001, 2, 12),
	})

	// HolesResolved counts resolved holes by result (won or tied).
	HolesResolved = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "skins_holes_resolved_total",
		Help: "Resolved holes by result.",
	}, []string{"result"})

	// RPCRequests counts Connect calls by procedure and code.
	RPCRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "rpc_requests_total",
		Help: "Connect RPC calls by procedure and result code.",
	}, []string{"procedure", "code"})
)

// ObserveCalculation records one finished calculation.
func ObserveCalculation(outcome string, started time.Time) {
	SkinsCalculations.WithLabelValues(outcome).Inc()
	SkinsCalculationDuration.Observe(time.Since(started).Seconds())
}
