// Package metrics defines the custom Prometheus metrics of the dashboard
// gateway. Metrics register with the default registry on package load.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "dashboard"

// ── Gate metrics ──────────────────────────────────────────────────────────────

// GateDecisionsTotal counts gate evaluations.
// Labels:
//   - outcome: "render", "redirect", "forbidden", "latched" or "placeholder"
//   - reason: "unauthenticated", "denied", "loop" or "" for render
var GateDecisionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "gate_decisions_total",
		Help:      "Total number of access gate decisions, by outcome and reason.",
	},
	[]string{"outcome", "reason"},
)

// IdentityResolutionDuration measures how long resolving a session's identity takes.
// Label:
//   - result: "ok" or "error"
var IdentityResolutionDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "identity_resolution_duration_seconds",
		Help:      "Duration of identity resolution, cache included.",
		Buckets:   prometheus.DefBuckets,
	},
	[]string{"result"},
)

// ── Session metrics ───────────────────────────────────────────────────────────

// LoginsTotal counts login attempts.
// Label:
//   - result: "ok", "invalid_credentials" or "error"
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, by result.",
	},
	[]string{"result"},
)
