// Package metrics exposes Prometheus instrumentation for filtering, suggestions,
// sessions and the persisted vote and newsletter features.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	FilterEvaluations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "facet_filter_evaluations_total",
			Help: "Total number of filter evaluations per collection",
		},
		[]string{"collection", "source"}, // source: "query" or "session"
	)

	FilterDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "facet_filter_duration_seconds",
			Help:    "Duration of filter evaluations in seconds",
			Buckets: []float64{.0001, .0005, .001, .005, .01, .05, .1, .5},
		},
		[]string{"collection"},
	)

	FilterMatchedRecords = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "facet_filter_matched_records",
			Help:    "Number of records matched per filter evaluation",
			Buckets: prometheus.ExponentialBuckets(1, 4, 8),
		},
		[]string{"collection"},
	)

	SuggestionRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "facet_suggestion_requests_total",
			Help: "Total number of suggestion generations",
		},
		[]string{"collection"},
	)

	ActiveSessions = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "facet_active_sessions",
			Help: "Current number of browsing sessions",
		},
		[]string{"collection"},
	)

	CriteriaRejections = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "facet_criteria_rejections_total",
			Help: "Criteria edits rejected by validation",
		},
		[]string{"collection", "reason"}, // reason: "invalid_range", "unknown_facet", ...
	)

	VotesRecorded = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "facet_votes_total",
			Help: "Helpful votes recorded",
		},
		[]string{"collection", "helpful"},
	)

	NewsletterSubscriptions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "newsletter_subscriptions_total",
			Help: "Newsletter subscription attempts by outcome",
		},
		[]string{"outcome"}, // "subscribed", "duplicate", "invalid"
	)

	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "api_requests_total",
			Help: "Total number of API requests",
		},
		[]string{"method", "endpoint", "status"},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "api_request_duration_seconds",
			Help:    "Duration of API requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "endpoint"},
	)
)

// RecordFilter records one filter evaluation.
func RecordFilter(collection, source string, matched int, duration time.Duration) {
	FilterEvaluations.WithLabelValues(collection, source).Inc()
	FilterDuration.WithLabelValues(collection).Observe(duration.Seconds())
	FilterMatchedRecords.WithLabelValues(collection).Observe(float64(matched))
}

// RecordVote records one helpful or not-helpful vote.
func RecordVote(collection string, helpful bool) {
	label := "false"
	if helpful {
		label = "true"
	}
	VotesRecorded.WithLabelValues(collection, label).Inc()
}

// RecordAPIRequest records request count and latency.
func RecordAPIRequest(method, endpoint, status string, duration time.Duration) {
	APIRequestsTotal.WithLabelValues(method, endpoint, status).Inc()
	APIRequestDuration.WithLabelValues(method, endpoint).Observe(duration.Seconds())
}
