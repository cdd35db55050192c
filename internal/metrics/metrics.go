// Package metrics defines the Prometheus instrumentation for the gateway.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// WhitelistRequests counts processed whitelist commands by platform and outcome
	WhitelistRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "whitelist_requests_total",
			Help: "Total number of whitelist command invocations",
		},
		[]string{"platform", "outcome"},
	)

	// ConsoleCommandDuration tracks remote console exchange time
	ConsoleCommandDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "console_command_duration_seconds",
			Help:    "Remote console command round-trip duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
	)

	// ConsoleFailures counts failed remote console exchanges
	ConsoleFailures = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "console_command_failures_total",
			Help: "Total number of failed remote console commands",
		},
	)

	// InteractionRejections counts requests rejected before command processing
	InteractionRejections = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "interaction_rejections_total",
			Help: "Total number of interactions rejected at the transport boundary",
		},
		[]string{"reason"},
	)
)
