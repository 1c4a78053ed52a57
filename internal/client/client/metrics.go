package client

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

const meterName = "github.com/dmitrijs2005/hrconsole/client"

type gatewayMetrics struct {
	requests     metric.Int64Counter
	refreshes    metric.Int64Counter
	deauthorized metric.Int64Counter
}

func newGatewayMetrics(mp metric.MeterProvider) *gatewayMetrics {
	if mp == nil {
		mp = otel.GetMeterProvider()
	}
	meter := mp.Meter(meterName)

	// instrument creation only fails on invalid names; a no-op counter is
	// returned alongside the error, so it is safe to keep going.
	requests, _ := meter.Int64Counter("gateway.requests",
		metric.WithDescription("Requests sent through the gateway, retries included"))
	refreshes, _ := meter.Int64Counter("gateway.refresh.attempts",
		metric.WithDescription("Refresh calls triggered by a 401"))
	deauthorized, _ := meter.Int64Counter("gateway.deauthorized",
		metric.WithDescription("Sessions cleared after a failed refresh"))

	return &gatewayMetrics{requests: requests, refreshes: refreshes, deauthorized: deauthorized}
}

func (m *gatewayMetrics) recordRequest(ctx context.Context, method string, status int, retry bool) {
	m.requests.Add(ctx, 1, metric.WithAttributes(
		attribute.String("method", method),
		attribute.Int("status", status),
		attribute.Bool("retry", retry),
	))
}

func (m *gatewayMetrics) recordRefresh(ctx context.Context, status string) {
	m.refreshes.Add(ctx, 1, metric.WithAttributes(attribute.String("status", status)))
}

func (m *gatewayMetrics) recordDeauthorized(ctx context.Context, reason string) {
	m.deauthorized.Add(ctx, 1, metric.WithAttributes(attribute.String("reason", reason)))
}
