// Package metrics defines and registers the custom Prometheus metrics of the
// fitness API. It is the single source of truth for metric names, labels and
// help strings. Metrics register on the default registry at import time.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "fitness"

// ── Members ───────────────────────────────────────────────────────────────────

// UsersRegisteredTotal counts successful registrations.
var UsersRegisteredTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "users_registered_total",
		Help:      "Total number of registered users.",
	},
)

// ── Activity ──────────────────────────────────────────────────────────────────

// ActivityStatWritesTotal counts activity stat upserts.
// Label:
//   - result: "created" or "updated"
var ActivityStatWritesTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "activity_stat_writes_total",
		Help:      "Total number of activity stat writes, by result.",
	},
	[]string{"result"},
)

// WorkoutSessionsCompletedTotal counts sessions folded into daily stats.
var WorkoutSessionsCompletedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "workout_sessions_completed_total",
		Help:      "Total number of completed workout sessions.",
	},
)

// ActivityLogErrorsTotal counts activity log writes that failed.
var ActivityLogErrorsTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "activity_log_errors_total",
		Help:      "Total number of activity log writes that failed.",
	},
)

// ── Challenges ────────────────────────────────────────────────────────────────

// ChallengeProgressUpdatesTotal counts progress overwrites.
var ChallengeProgressUpdatesTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "challenge_progress_updates_total",
		Help:      "Total number of challenge progress updates.",
	},
)

// ── Recommendations ───────────────────────────────────────────────────────────

// RecommendationsGeneratedTotal counts generated recommendations.
// Label:
//   - type: "workout", "nutrition" or "sleep"
var RecommendationsGeneratedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "recommendations_generated_total",
		Help:      "Total number of generated recommendations, by type.",
	},
	[]string{"type"},
)

// RecommendationQueueDepth tracks pending jobs per dispatcher worker.
// Label:
//   - worker_id: numeric worker index
var RecommendationQueueDepth = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "recommendation_queue_depth",
		Help:      "Current number of generation jobs pending in each dispatcher worker channel.",
	},
	[]string{"worker_id"},
)

// RecommendationsDroppedTotal counts generation jobs rejected because the
// worker's buffer was full.
var RecommendationsDroppedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "recommendations_dropped_total",
		Help:      "Total number of recommendation generation jobs dropped on a full queue.",
	},
)

// RecommendationJobDuration measures one generation job end to end.
// Label:
//   - result: "ok" or "error"
var RecommendationJobDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "recommendation_job_duration_seconds",
		Help:      "Duration of recommendation generation jobs.",
		Buckets:   prometheus.DefBuckets,
	},
	[]string{"result"},
)

// ── Cache ─────────────────────────────────────────────────────────────────────

// CacheLookupsTotal counts catalog cache lookups.
// Label:
//   - result: "hit", "miss" or "error"
var CacheLookupsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "cache_lookups_total",
		Help:      "Total number of cache lookups, by result.",
	},
	[]string{"result"},
)

// ── Realtime ──────────────────────────────────────────────────────────────────

// RealtimeConnections tracks open WebSocket connections.
var RealtimeConnections = promauto.NewGauge(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "realtime_connections",
		Help:      "Current number of open realtime connections.",
	},
)

// RealtimeEventsTotal counts outbound realtime events.
// Labels:
//   - type: message type, e.g. "challengeUpdate"
//   - result: "delivered", "no_connection" or "dropped" (send buffer full)
var RealtimeEventsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "realtime_events_total",
		Help:      "Total number of outbound realtime events, by type and result.",
	},
	[]string{"type", "result"},
)

// RealtimeMessagesInvalidTotal counts inbound messages that were dropped.
var RealtimeMessagesInvalidTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "realtime_messages_invalid_total",
		Help:      "Total number of inbound realtime messages dropped as malformed.",
	},
)
