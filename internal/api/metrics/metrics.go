// Package metrics defines the custom Prometheus metrics of the restaurant API.
// HTTP request metrics come from echoprometheus; everything here is about the
// authentication core and its auxiliary services.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "restaurant"

// ── Authentication ────────────────────────────────────────────────────────────

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

// TokensIssuedTotal counts tokens handed out by successful logins.
// Label:
//   - outcome: "issued" (freshly minted) or "reused" (existing unexpired token)
var TokensIssuedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "tokens_issued_total",
		Help:      "Total number of tokens returned by login, by outcome.",
	},
	[]string{"outcome"},
)

// AuthFailuresTotal counts requests rejected by the route gate.
// Label:
//   - reason: "missing_credential", "invalid_token" or "error"
var AuthFailuresTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "auth_failures_total",
		Help:      "Total number of protected requests rejected during authentication.",
	},
	[]string{"reason"},
)

// ── Menu ──────────────────────────────────────────────────────────────────────

// ItemWritesTotal counts successful item mutations.
// Label:
//   - op: "create", "update", "delete" or "delete_all"
var ItemWritesTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "item_writes_total",
		Help:      "Total number of menu item writes, by operation.",
	},
	[]string{"op"},
)

// ── Geolocation ───────────────────────────────────────────────────────────────

// LocationLookupsTotal counts geolocation requests.
// Label:
//   - result: "ok" or "unavailable"
var LocationLookupsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "location_lookups_total",
		Help:      "Total number of geolocation lookups, by result.",
	},
	[]string{"result"},
)
