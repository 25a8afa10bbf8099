// Package metrics provides internal Prometheus metrics collection.
// This package is internal and should not be imported by external projects.
package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"go.uber.org/zap"
)

// Collector registers and records the service's Prometheus metrics: the
// HTTP request families plus the conversation-domain families (turns,
// handoffs, tool calls, guardrail checks).
type Collector struct {
	httpRequestsTotal   *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec
	httpRequestSize     *prometheus.HistogramVec
	httpResponseSize    *prometheus.HistogramVec

	turnsTotal           *prometheus.CounterVec
	turnDuration         *prometheus.HistogramVec
	handoffsTotal        *prometheus.CounterVec
	toolCallsTotal       *prometheus.CounterVec
	guardrailChecksTotal *prometheus.CounterVec
	conversationsActive  prometheus.Gauge

	logger *zap.Logger
}

// NewCollector creates a collector with all metric families registered under
// the given namespace.
func NewCollector(namespace string, logger *zap.Logger) *Collector {
	c := &Collector{
		logger: logger.With(zap.String("component", "metrics")),
	}

	c.httpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	c.httpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request duration in seconds",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	c.httpRequestSize = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_size_bytes",
			Help:      "HTTP request size in bytes",
			Buckets:   prometheus.ExponentialBuckets(100, 10, 8),
		},
		[]string{"method", "path"},
	)

	c.httpResponseSize = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_response_size_bytes",
			Help:      "HTTP response size in bytes",
			Buckets:   prometheus.ExponentialBuckets(100, 10, 8),
		},
		[]string{"method", "path"},
	)

	c.turnsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "turns_total",
			Help:      "Total number of conversation turns processed",
		},
		[]string{"agent", "status"}, // status: ok, guardrail_rejected, error
	)

	c.turnDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "turn_duration_seconds",
			Help:      "Turn processing duration in seconds",
			Buckets:   []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1},
		},
		[]string{"agent"},
	)

	c.handoffsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "handoffs_total",
			Help:      "Total number of agent handoffs",
		},
		[]string{"from", "to"},
	)

	c.toolCallsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "tool_calls_total",
			Help:      "Total number of simulated tool invocations",
		},
		[]string{"tool"},
	)

	c.guardrailChecksTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "guardrail_checks_total",
			Help:      "Total number of guardrail evaluations",
		},
		[]string{"guardrail", "outcome"}, // outcome: passed, failed
	)

	c.conversationsActive = promauto.NewGauge(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "conversations_active",
			Help:      "Number of conversations held in the in-memory store",
		},
	)

	return c
}

// RecordHTTPRequest records one served HTTP request.
func (c *Collector) RecordHTTPRequest(method, path string, status int, duration time.Duration, requestSize, responseSize int64) {
	statusLabel := strconv.Itoa(status)
	c.httpRequestsTotal.WithLabelValues(method, path, statusLabel).Inc()
	c.httpRequestDuration.WithLabelValues(method, path).Observe(duration.Seconds())
	c.httpRequestSize.WithLabelValues(method, path).Observe(float64(requestSize))
	c.httpResponseSize.WithLabelValues(method, path).Observe(float64(responseSize))
}

// RecordTurn records a processed turn for an agent with its outcome status.
func (c *Collector) RecordTurn(agent, status string, duration time.Duration) {
	c.turnsTotal.WithLabelValues(agent, status).Inc()
	c.turnDuration.WithLabelValues(agent).Observe(duration.Seconds())
}

// RecordHandoff records a handoff between two agents.
func (c *Collector) RecordHandoff(from, to string) {
	c.handoffsTotal.WithLabelValues(from, to).Inc()
}

// RecordToolCall records one simulated tool invocation.
func (c *Collector) RecordToolCall(tool string) {
	c.toolCallsTotal.WithLabelValues(tool).Inc()
}

// RecordGuardrailCheck records one guardrail evaluation outcome.
func (c *Collector) RecordGuardrailCheck(guardrail string, passed bool) {
	outcome := "passed"
	if !passed {
		outcome = "failed"
	}
	c.guardrailChecksTotal.WithLabelValues(guardrail, outcome).Inc()
}

// SetActiveConversations updates the live-conversation gauge.
func (c *Collector) SetActiveConversations(n int) {
	c.conversationsActive.Set(float64(n))
}
