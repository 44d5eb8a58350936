package observability

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Session metrics
	activeSessions = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "translation_gateway_active_sessions",
		Help: "Number of active translation sessions",
	})

	totalSessions = promauto.NewCounter(prometheus.CounterOpts{
		Name: "translation_gateway_sessions_total",
		Help: "Total number of translation sessions created",
	})

	sessionDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "translation_gateway_session_duration_seconds",
		Help:    "Duration of translation sessions in seconds",
		Buckets: []float64{10, 30, 60, 120, 300, 600, 1800, 3600},
	})

	exchangesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "translation_gateway_exchanges_total",
		Help: "Total number of translation exchanges processed",
	}, []string{"speaker", "urgency"})

	// Pipeline stage metrics
	stageLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "translation_gateway_stage_latency_seconds",
		Help:    "Latency of pipeline stages in seconds",
		Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1.0, 2.0, 5.0, 10.0},
	}, []string{"stage"}) // stage: recognize, translate, synthesize

	// Error metrics
	errorsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "translation_gateway_errors_total",
		Help: "Total number of errors",
	}, []string{"type", "component"})

	// Circuit breaker metrics
	circuitBreakerState = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Name: "translation_gateway_circuit_breaker_state",
		Help: "Circuit breaker state (0=closed, 1=open, 2=half-open)",
	}, []string{"service"})

	// Realtime connection metrics
	activeConnections = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "translation_gateway_active_connections",
		Help: "Number of live realtime connections",
	})

	messagesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "translation_gateway_messages_total",
		Help: "Total inbound realtime messages by type",
	}, []string{"type"})
)

// RecordSessionStart records a newly created session
func RecordSessionStart() {
	activeSessions.Inc()
	totalSessions.Inc()
}

// RecordSessionEnd records the end of a session
func RecordSessionEnd(duration time.Duration) {
	activeSessions.Dec()
	sessionDuration.Observe(duration.Seconds())
}

// RecordExchange records one completed exchange
func RecordExchange(speaker, urgency string) {
	exchangesTotal.WithLabelValues(speaker, urgency).Inc()
}

// RecordStageLatency records the latency of one pipeline stage
func RecordStageLatency(stage string, elapsed time.Duration) {
	stageLatency.WithLabelValues(stage).Observe(elapsed.Seconds())
}

// RecordError records an error by type and component
func RecordError(errorType, component string) {
	errorsTotal.WithLabelValues(errorType, component).Inc()
}

// UpdateCircuitBreakerState updates the circuit breaker state gauge
func UpdateCircuitBreakerState(service string, state int) {
	circuitBreakerState.WithLabelValues(service).Set(float64(state))
}

// RecordConnectionOpen records a new realtime connection
func RecordConnectionOpen() {
	activeConnections.Inc()
}

// RecordConnectionClose records a closed realtime connection
func RecordConnectionClose() {
	activeConnections.Dec()
}

// RecordMessage records one inbound realtime message
func RecordMessage(msgType string) {
	messagesTotal.WithLabelValues(msgType).Inc()
}
