package httpserver

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

const meterName = "github.com/dmitrijs2005/hrconsole/server"

type serverMetrics struct {
	authAttempts     metric.Int64Counter
	tokenValidations metric.Int64Counter
}

func newServerMetrics(mp metric.MeterProvider) *serverMetrics {
	if mp == nil {
		mp = otel.GetMeterProvider()
	}
	meter := mp.Meter(meterName)

	authAttempts, _ := meter.Int64Counter("auth.attempts",
		metric.WithDescription("Login, register, refresh and logout calls by outcome"))
	tokenValidations, _ := meter.Int64Counter("auth.access_token.validations",
		metric.WithDescription("Bearer token checks on protected routes"))

	return &serverMetrics{authAttempts: authAttempts, tokenValidations: tokenValidations}
}

func (m *serverMetrics) recordAuth(ctx context.Context, op string, err error) {
	outcome := "success"
	if err != nil {
		outcome = "failure"
	}
	m.authAttempts.Add(ctx, 1, metric.WithAttributes(
		attribute.String("op", op),
		attribute.String("outcome", outcome),
	))
}

func (m *serverMetrics) recordTokenValidation(ctx context.Context, result string) {
	m.tokenValidations.Add(ctx, 1, metric.WithAttributes(attribute.String("result", result)))
}
