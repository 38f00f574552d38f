// Package metrics defines and registers all custom Prometheus metrics for the
// grievance API. It is the single source of truth for metric names, labels,
// and help strings.
//
// Metrics register themselves with the default Prometheus registry on import.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "grievance"

// ── Submission metrics ────────────────────────────────────────────────────────

// SubmissionsTotal counts accepted grievance submissions.
// Label:
//   - priority: the priority assigned at intake ("low", "medium", "high", "urgent")
var SubmissionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "submissions_total",
		Help:      "Total number of grievances submitted, by assigned priority.",
	},
	[]string{"priority"},
)

// ClassifierResultsTotal counts classifier outcomes.
// Label:
//   - result: "classified", "fallback_timeout", "fallback_error", "fallback_invalid"
var ClassifierResultsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "classifier_results_total",
		Help:      "Total number of priority classification attempts, by outcome.",
	},
	[]string{"result"},
)

// ClassificationDuration measures how long a classification call takes,
// including timed-out attempts.
var ClassificationDuration = promauto.NewHistogram(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "classification_duration_seconds",
		Help:      "Duration of priority classification calls.",
		Buckets:   prometheus.DefBuckets, // .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10
	},
)

// ── Notification metrics ──────────────────────────────────────────────────────

// NotificationsCreatedTotal counts notifications persisted, by the event that
// produced them.
// Label:
//   - event: "submission_confirmed", "submission_broadcast", "status_update"
var NotificationsCreatedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "notifications_created_total",
		Help:      "Total number of notifications created, by originating event.",
	},
	[]string{"event"},
)

// FanoutRecipients tracks how many recipients each broadcast resolved to.
var FanoutRecipients = promauto.NewHistogram(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "fanout_recipients",
		Help:      "Number of recipients resolved per submission broadcast.",
		Buckets:   []float64{0, 1, 2, 5, 10, 25, 50, 100},
	},
)

// FanoutQueueDepth tracks the current number of events waiting in each
// dispatcher worker channel.
// Label:
//   - worker_id: numeric worker index (e.g. "0", "1", …)
var FanoutQueueDepth = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "fanout_queue_depth",
		Help:      "Current number of notification events pending in each dispatcher worker channel.",
	},
	[]string{"worker_id"},
)

// ── Lifecycle metrics ─────────────────────────────────────────────────────────

// StatusTransitionsTotal counts applied status transitions.
// Labels:
//   - from: the previous status
//   - to: the new status
var StatusTransitionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "status_transitions_total",
		Help:      "Total number of grievance status transitions applied.",
	},
	[]string{"from", "to"},
)
