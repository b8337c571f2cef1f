package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Agent runtime call latency in milliseconds.
	AgentCallLatency = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "outreach_agent_call_latency_ms",
			Help:    "Agent runtime call latency in milliseconds",
			Buckets: prometheus.ExponentialBuckets(100, 2, 10), // 100ms to ~50s
		},
		[]string{"runtime", "status"},
	)

	// Which extraction strategy produced the email text.
	ExtractStrategyCount = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "outreach_extract_strategy_total",
			Help: "Total number of results extracted, by strategy",
		},
		[]string{"strategy"},
	)

	// Advisory issues found on final drafts.
	DraftIssueCount = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "outreach_draft_issues_total",
			Help: "Total number of advisory issues found on final drafts",
		},
		[]string{"checker"},
	)

	// HTTP request latency in seconds.
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "outreach_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.ExponentialBuckets(0.001, 2, 16), // 1ms to ~32s
		},
		[]string{"method", "path", "status"},
	)
)

// RecordAgentCall records one runtime call.
func RecordAgentCall(runtime, status string, duration time.Duration) {
	AgentCallLatency.WithLabelValues(runtime, status).Observe(float64(duration.Milliseconds()))
}

// IncrementExtractStrategy counts one extraction.
func IncrementExtractStrategy(strategy string) {
	ExtractStrategyCount.WithLabelValues(strategy).Inc()
}

// AddDraftIssues counts issues reported by a checker.
func AddDraftIssues(checker string, n int) {
	if n <= 0 {
		return
	}
	DraftIssueCount.WithLabelValues(checker).Add(float64(n))
}

// RecordHTTPRequestDuration records one HTTP request.
func RecordHTTPRequestDuration(method, path, status string, duration time.Duration) {
	HTTPRequestDuration.WithLabelValues(method, path, status).Observe(duration.Seconds())
}
