package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Assistant-API Metrics
var (
	// Request counters
	RequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "chatdesk",
			Subsystem: "assistant_api",
			Name:      "requests_total",
			Help:      "Total number of HTTP requests",
		},
		[]string{"method", "endpoint", "status"},
	)

	// Request duration histogram
	RequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "chatdesk",
			Subsystem: "assistant_api",
			Name:      "request_duration_seconds",
			Help:      "HTTP request duration in seconds",
			Buckets:   []float64{0.1, 0.5, 1, 2, 5, 10, 30, 60},
		},
		[]string{"method", "endpoint"},
	)

	// Chat turn outcomes
	ChatTurnsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "chatdesk",
			Subsystem: "assistant_api",
			Name:      "chat_turns_total",
			Help:      "Completed chat turns by outcome",
		},
		[]string{"outcome"},
	)

	// Chat turn duration, dominated by run polling
	ChatTurnDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "chatdesk",
			Subsystem: "assistant_api",
			Name:      "chat_turn_duration_seconds",
			Help:      "Wall-clock duration of a chat turn in seconds",
			Buckets:   []float64{0.5, 1, 2, 5, 10, 15, 30, 45},
		},
	)

	// Run status polls
	RunPollsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "chatdesk",
			Subsystem: "assistant_api",
			Name:      "run_polls_total",
			Help:      "Run status polls by observed status",
		},
		[]string{"status"},
	)

	// Tool call acknowledgements
	ToolAcksTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: "chatdesk",
			Subsystem: "assistant_api",
			Name:      "tool_acks_total",
			Help:      "Tool calls acknowledged with empty output",
		},
	)

	// Record store calls
	RecordStoreCallsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "chatdesk",
			Subsystem: "assistant_api",
			Name:      "record_store_calls_total",
			Help:      "Record store operations by table, operation and result",
		},
		[]string{"table", "operation", "result"},
	)
)
