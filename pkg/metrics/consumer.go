package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// ConsumerMetrics records metadata for event consumers.
type ConsumerMetrics struct {
	duration  *prometheus.HistogramVec
	processed *prometheus.CounterVec
	failure   *prometheus.CounterVec
}

// NewConsumerMetrics registers the consumer metrics on the provided registerer.
func NewConsumerMetrics(reg prometheus.Registerer) *ConsumerMetrics {
	if reg == nil {
		return &ConsumerMetrics{}
	}
	duration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "event_processing_duration_seconds",
		Help:    "Duration of event handling in seconds.",
		Buckets: prometheus.DefBuckets,
	}, []string{"event_type"})
	processed := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "events_processed_total",
		Help: "Successfully processed events.",
	}, []string{"event_type"})
	failure := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "events_failed_total",
		Help: "Events whose handling failed.",
	}, []string{"event_type"})
	reg.MustRegister(duration, processed, failure)
	return &ConsumerMetrics{
		duration:  duration,
		processed: processed,
		failure:   failure,
	}
}

// ObserveDuration records the handling duration for the event type.
func (c *ConsumerMetrics) ObserveDuration(eventType string, duration time.Duration) {
	if c == nil || c.duration == nil {
		return
	}
	c.duration.WithLabelValues(normalizeLabel(eventType)).Observe(duration.Seconds())
}

// IncProcessed increments the processed counter for the event type.
func (c *ConsumerMetrics) IncProcessed(eventType string) {
	if c == nil || c.processed == nil {
		return
	}
	c.processed.WithLabelValues(normalizeLabel(eventType)).Inc()
}

// IncFailure increments the failure counter for the event type.
func (c *ConsumerMetrics) IncFailure(eventType string) {
	if c == nil || c.failure == nil {
		return
	}
	c.failure.WithLabelValues(normalizeLabel(eventType)).Inc()
}

func normalizeLabel(eventType string) string {
	if eventType == "" {
		return "unknown"
	}
	return eventType
}
