// Package metrics defines and registers all custom Prometheus metrics for the
// SmileCare clinic API. It is the single source of truth for metric names,
// labels, and help strings.
//
// Metrics register with the default Prometheus registry at import time via
// promauto; the /metrics route exposes them.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "clinic"

// ── Auth metrics ─────────────────────────────────────────────────────────────

// RegistrationsTotal counts successfully created client accounts.
var RegistrationsTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "registrations_total",
		Help:      "Total number of client accounts registered.",
	},
)

// LoginsTotal counts login attempts by outcome.
// Label:
//   - result: "success", "failure", or "throttled"
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, labelled by result.",
	},
	[]string{"result"},
)

// ── Booking metrics ──────────────────────────────────────────────────────────

// AppointmentsBookedTotal counts appointments created.
var AppointmentsBookedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "appointments_booked_total",
		Help:      "Total number of appointments booked.",
	},
)

// ConfirmationsSentTotal counts booking confirmations delivered by the
// notification dispatcher.
var ConfirmationsSentTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "confirmations_sent_total",
		Help:      "Total number of booking confirmations delivered.",
	},
)

// ConfirmationQueueDepth tracks the number of confirmations waiting in each
// dispatcher worker channel.
// Label:
//   - worker_id: numeric worker index (e.g. "0", "1", …)
var ConfirmationQueueDepth = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "confirmation_queue_depth",
		Help:      "Current number of confirmations pending in each dispatcher worker channel.",
	},
	[]string{"worker_id"},
)
