package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// InvitationEvents counts invitation lifecycle transitions (created|accepted|revoked).
	InvitationEvents = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "roster_invitation_events_total",
			Help: "Total number of invitation lifecycle events",
		},
		[]string{"event"},
	)

	// MemberRemovals counts hard deletes of team members.
	MemberRemovals = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "roster_member_removals_total",
			Help: "Total number of members removed from teams",
		},
	)

	// AuthorizationDenials counts mutating requests rejected by the authorization gate.
	AuthorizationDenials = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "roster_authorization_denials_total",
			Help: "Total number of operations denied by capability checks",
		},
		[]string{"operation"},
	)

	// APILatency measures HTTP request latencies.
	APILatency = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "roster_api_latency_seconds",
			Help:    "API endpoint latency",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)
)
