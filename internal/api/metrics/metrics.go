// Package metrics defines all custom Prometheus metrics for the Signalist
// API. It is the single source of truth for metric names, labels, and help
// strings; metrics register themselves with the default registry via
// promauto at package init.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "signalist"

// ── Identity metrics ──────────────────────────────────────────────────────────

// IdentityResolutionsTotal counts per-request identity resolutions.
// Label:
//   - kind: "anonymous", "guest", or "authenticated"
var IdentityResolutionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "identity_resolutions_total",
		Help:      "Total number of per-request identity resolutions, by resolved kind.",
	},
	[]string{"kind"},
)

// RouteGuardRedirectsTotal counts page requests turned away by the route guard.
// Label:
//   - reason: "anonymous" (sent to sign-in) or "not_admin" (sent home)
var RouteGuardRedirectsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "route_guard_redirects_total",
		Help:      "Total number of page requests redirected by the route guard.",
	},
	[]string{"reason"},
)

// ── Watchlist metrics ─────────────────────────────────────────────────────────

// WatchlistMutationsTotal counts watchlist mutations by operation and outcome.
// Labels:
//   - operation: "add" or "remove"
//   - result: "ok", "conflict", or "error"
var WatchlistMutationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "watchlist_mutations_total",
		Help:      "Total number of watchlist mutations, by operation and result.",
	},
	[]string{"operation", "result"},
)

// QuoteLookupsTotal counts external quote lookups.
// Label:
//   - result: "hit" (cache), "ok", or "error" (degraded to null price)
var QuoteLookupsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "quote_lookups_total",
		Help:      "Total number of quote lookups against the market-data collaborator, by result.",
	},
	[]string{"result"},
)

// ── Admin metrics ─────────────────────────────────────────────────────────────

// AdminActionsTotal counts administrative transitions by kind and outcome.
// Labels:
//   - action: "role_change", "user_delete", or "user_restore"
//   - result: "ok" or "rejected"
var AdminActionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "admin_actions_total",
		Help:      "Total number of admin account transitions, by action and result.",
	},
	[]string{"action", "result"},
)
