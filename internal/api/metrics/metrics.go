// Package metrics defines and registers all custom Prometheus metrics for the
// Taskify API. It is the single source of truth for metric names, labels, and
// help strings. Metrics register with the default registry on import.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "taskify"

// ── Auth metrics ──────────────────────────────────────────────────────────────

// LoginsTotal counts login attempts.
// Label:
//   - result: "success" or "failure"
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, by result.",
	},
	[]string{"result"},
)

// RegistrationsTotal counts successfully created accounts.
// Label:
//   - role: the role the account was created with ("user" or "manager")
var RegistrationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "registrations_total",
		Help:      "Total number of accounts created, by role.",
	},
	[]string{"role"},
)

// TokenVerificationsTotal counts bearer-token verifications at the auth gate.
// Label:
//   - result: "success", "expired", "invalid", "missing", or "unknown_user"
var TokenVerificationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "token_verifications_total",
		Help:      "Total number of bearer token verifications, by result.",
	},
	[]string{"result"},
)

// ── Task metrics ──────────────────────────────────────────────────────────────

// TasksCreatedTotal counts created tasks.
// Label:
//   - replay: "true" when an Idempotency-Key replay returned an existing task
var TasksCreatedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "tasks_created_total",
		Help:      "Total number of task create requests that succeeded, by replay.",
	},
	[]string{"replay"},
)

// TasksDeletedTotal counts deleted tasks.
// Label:
//   - actor: "owner" or "manager"
var TasksDeletedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "tasks_deleted_total",
		Help:      "Total number of tasks deleted, by acting role.",
	},
	[]string{"actor"},
)
