package events

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/metric/noop"
)

const (
	outcomeOK      = "ok"
	outcomeFailed  = "failed"
	outcomeDropped = "dropped"
)

type metrics struct {
	published metric.Int64Counter
	consumed  metric.Int64Counter
}

// newMetrics registers the bus counters on the global meter provider. The
// provider installed by telemetry.Setup exports them on /metrics.
func newMetrics() *metrics {
	meter := otel.Meter("github.com/ghuser/contracthub/pkg/events")

	published, err := meter.Int64Counter("events.published",
		metric.WithDescription("Events written to the outbox or broker"),
	)
	if err != nil {
		published = noop.Int64Counter{}
	}
	consumed, err := meter.Int64Counter("events.consumed",
		metric.WithDescription("Messages settled by consumers"),
	)
	if err != nil {
		consumed = noop.Int64Counter{}
	}
	return &metrics{published: published, consumed: consumed}
}

func (m *metrics) recordPublished(ctx context.Context, topic, outcome string) {
	m.published.Add(ctx, 1, metric.WithAttributes(
		attribute.String("topic", topic),
		attribute.String("outcome", outcome),
	))
}

func (m *metrics) recordConsumed(ctx context.Context, topic, outcome string) {
	m.consumed.Add(ctx, 1, metric.WithAttributes(
		attribute.String("topic", topic),
		attribute.String("outcome", outcome),
	))
}
