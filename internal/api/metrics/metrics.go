// Package metrics defines and registers all custom Prometheus metrics for the
// community API. It is the single source of truth for metric names, labels,
// and help strings.
//
// Metrics register with the default Prometheus registry at import time via
// promauto; the /metrics endpoint exposes them.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "community"

// ── Lifecycle metrics ─────────────────────────────────────────────────────────

// TransitionsTotal counts status transitions that were applied successfully.
// Labels:
//   - entity: "visitor", "payment", or "issue"
//   - from / to: the statuses involved (e.g. "pending" → "approved")
var TransitionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "transitions_total",
		Help:      "Total number of entity status transitions applied.",
	},
	[]string{"entity", "from", "to"},
)

// TransitionDenialsTotal counts transition attempts rejected by the engine.
// Labels:
//   - entity: "visitor", "payment", or "issue"
//   - reason: "invalid_transition" or "forbidden"
var TransitionDenialsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "transition_denials_total",
		Help:      "Total number of entity status transitions rejected.",
	},
	[]string{"entity", "reason"},
)

// ── Creation metrics ──────────────────────────────────────────────────────────

// PaymentsCreatedTotal counts maintenance dues raised by admins.
// Label:
//   - mode: "single" or "batch"
var PaymentsCreatedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "payments_created_total",
		Help:      "Total number of payment dues created, by creation mode.",
	},
	[]string{"mode"},
)

// IssuesCreatedTotal counts filed issues.
// Labels:
//   - category: "maintenance", "security", or "housekeeping"
//   - sos: "true" or "false"
var IssuesCreatedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "issues_created_total",
		Help:      "Total number of issues reported, by category and SOS flag.",
	},
	[]string{"category", "sos"},
)

// VisitorsLoggedTotal counts visitor entries registered at the gate.
var VisitorsLoggedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "visitors_logged_total",
		Help:      "Total number of visitor entries registered.",
	},
)

// PostsCreatedTotal counts community feed posts.
// Label:
//   - post_type: "announcement", "discussion", "poll", or "alert"
var PostsCreatedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "posts_created_total",
		Help:      "Total number of posts created, by post type.",
	},
	[]string{"post_type"},
)

// ── Dashboard metrics ─────────────────────────────────────────────────────────

// DashboardCacheTotal counts dashboard stat lookups against the cache.
// Label:
//   - result: "hit" or "miss"
var DashboardCacheTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "dashboard_cache_total",
		Help:      "Total number of dashboard cache lookups, by result.",
	},
	[]string{"result"},
)

// DashboardQueryErrorsTotal counts individual count queries that failed and
// degraded to zero.
// Label:
//   - metric: "pending_visitors", "unpaid_dues", "recent_posts", "open_issues"
var DashboardQueryErrorsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "dashboard_query_errors_total",
		Help:      "Total number of dashboard count queries that failed and fell back to zero.",
	},
	[]string{"metric"},
)
