// Package metrics defines and registers all custom Prometheus metrics for
// the banking API. It is the single source of truth for metric names,
// labels, and help strings.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "banking"

// ── Balance operation metrics ────────────────────────────────────────────────

// BalanceOperationsTotal counts balance operations by outcome.
// Labels:
//   - operation: "get", "deposit", "withdraw", "transfer"
//   - outcome: "success" or the rejection kind (e.g. "forbidden",
//     "insufficient_funds", "currency_mismatch", "not_found")
var BalanceOperationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "balance_operations_total",
		Help:      "Total number of balance operations, by operation and outcome.",
	},
	[]string{"operation", "outcome"},
)

// BalanceOperationDuration measures how long one balance operation takes,
// including the storage transaction.
// Label:
//   - operation: "get", "deposit", "withdraw", "transfer"
var BalanceOperationDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "balance_operation_duration_seconds",
		Help:      "Duration of balance operations from handler entry to response.",
		Buckets:   prometheus.DefBuckets, // .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10
	},
	[]string{"operation"},
)

// TransfersReplayedTotal counts transfers answered from the idempotency
// store without moving funds.
var TransfersReplayedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "transfers_replayed_total",
		Help:      "Total number of idempotent transfer replays.",
	},
)

// ── Directory metrics ────────────────────────────────────────────────────────

// UsersCreatedTotal counts successfully registered users.
var UsersCreatedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "users_created_total",
		Help:      "Total number of users registered through the directory.",
	},
)

// LoginsTotal counts login attempts.
// Label:
//   - outcome: "success" or "failure"
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, by outcome.",
	},
	[]string{"outcome"},
)
