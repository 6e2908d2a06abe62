// Package metrics defines and registers all custom Prometheus metrics for
// the marketplace API. It is the single source of truth for metric names,
// labels, and help strings.
//
// Metrics register with the default Prometheus registry at import time via
// promauto; the router exposes them on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "marketplace"

// ── Auth metrics ──────────────────────────────────────────────────────────────

// SignInsTotal counts successful sign-ins.
// Label:
//   - method: "password", "oauth", or "register"
var SignInsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "sign_ins_total",
		Help:      "Total number of successful sign-ins, by method.",
	},
	[]string{"method"},
)

// ── Project metrics ───────────────────────────────────────────────────────────

// ProjectsCreatedTotal counts newly created project listings.
// Label:
//   - category: the listing category supplied by the user
var ProjectsCreatedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "projects_created_total",
		Help:      "Total number of projects created, by category.",
	},
	[]string{"category"},
)

// UploadsTotal counts attachment upload outcomes.
// Label:
//   - result: "ok" or "failed"
var UploadsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "uploads_total",
		Help:      "Total number of attachment uploads, by result.",
	},
	[]string{"result"},
)

// ── Billing metrics ───────────────────────────────────────────────────────────

// InvoicesPaidTotal counts invoices marked paid.
var InvoicesPaidTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "invoices_paid_total",
		Help:      "Total number of invoices marked paid.",
	},
)

// WebhookEventsTotal counts webhook deliveries by type and outcome.
// Labels:
//   - type: the processor's event type (e.g. "customer.subscription.deleted")
//   - result: "ok", "invalid_signature", or "error"
var WebhookEventsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "webhook_events_total",
		Help:      "Total number of payment webhook deliveries, by type and result.",
	},
	[]string{"type", "result"},
)

// CheckoutSessionsTotal counts hosted checkout sessions created.
var CheckoutSessionsTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "checkout_sessions_total",
		Help:      "Total number of checkout sessions created.",
	},
)
