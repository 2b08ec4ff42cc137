package telemetry

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

const meterName = "github.com/ghuser/newsletter"

// Metrics holds the subscription counters. A nil *Metrics records nothing.
type Metrics struct {
	created   metric.Int64Counter
	confirmed metric.Int64Counter
	expired   metric.Int64Counter
	rejected  metric.Int64Counter
}

// NewMetrics registers the counters on the global meter provider.
func NewMetrics() (*Metrics, error) {
	return NewMetricsWithMeter(otel.Meter(meterName))
}

// NewMetricsWithMeter registers the counters on meter.
func NewMetricsWithMeter(meter metric.Meter) (*Metrics, error) {
	var (
		m   Metrics
		err error
	)
	if m.created, err = meter.Int64Counter("subscriptions.created",
		metric.WithDescription("Subscribers stored with pending confirmation")); err != nil {
		return nil, fmt.Errorf("metric subscriptions.created: %w", err)
	}
	if m.confirmed, err = meter.Int64Counter("subscriptions.confirmed",
		metric.WithDescription("Subscriptions confirmed through a token")); err != nil {
		return nil, fmt.Errorf("metric subscriptions.confirmed: %w", err)
	}
	if m.expired, err = meter.Int64Counter("subscriptions.expired",
		metric.WithDescription("Pending subscribers removed after the confirmation window")); err != nil {
		return nil, fmt.Errorf("metric subscriptions.expired: %w", err)
	}
	if m.rejected, err = meter.Int64Counter("subscriber_name.rejected",
		metric.WithDescription("Subscriber names that failed validation")); err != nil {
		return nil, fmt.Errorf("metric subscriber_name.rejected: %w", err)
	}
	return &m, nil
}

// SubscriptionCreated counts a stored pending subscriber.
func (m *Metrics) SubscriptionCreated(ctx context.Context) {
	if m == nil {
		return
	}
	m.created.Add(ctx, 1)
}

// SubscriptionConfirmed counts a confirmed subscription.
func (m *Metrics) SubscriptionConfirmed(ctx context.Context) {
	if m == nil {
		return
	}
	m.confirmed.Add(ctx, 1)
}

// SubscriptionExpired counts a pending subscriber removed by the expiry workflow.
func (m *Metrics) SubscriptionExpired(ctx context.Context) {
	if m == nil {
		return
	}
	m.expired.Add(ctx, 1)
}

// NameRejected counts a rejected subscriber name, labelled with the failed checks.
func (m *Metrics) NameRejected(ctx context.Context, reasons string) {
	if m == nil {
		return
	}
	m.rejected.Add(ctx, 1, metric.WithAttributes(attribute.String("reasons", reasons)))
}
