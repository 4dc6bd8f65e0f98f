package observability

import (
	"context"
	"log"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/prometheus"
	otelmetric "go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/sdk/metric"
)

// Observability owns the OpenTelemetry meter provider. Instruments are
// exported through the process-wide Prometheus registry, so they show up on
// the same /metrics endpoint as the native counters.
type Observability struct {
	meterProvider *metric.MeterProvider
	meter         otelmetric.Meter
	planCounter   otelmetric.Int64Counter
	planDuration  otelmetric.Float64Histogram
}

func New(serviceName string) *Observability {
	exporter, err := prometheus.New()
	if err != nil {
		log.Printf("Failed to create Prometheus exporter: %v", err)
		return &Observability{}
	}

	provider := metric.NewMeterProvider(metric.WithReader(exporter))
	otel.SetMeterProvider(provider)

	meter := provider.Meter(serviceName)

	planCounter, _ := meter.Int64Counter(
		"plans.generated",
		otelmetric.WithDescription("Number of project plans generated"),
	)

	planDuration, _ := meter.Float64Histogram(
		"plans.duration",
		otelmetric.WithDescription("Plan generation duration"),
		otelmetric.WithUnit("ms"),
	)

	return &Observability{
		meterProvider: provider,
		meter:         meter,
		planCounter:   planCounter,
		planDuration:  planDuration,
	}
}

// RecordPlanGenerated counts one finished generation. Source is "model" or
// "synthetic".
func (o *Observability) RecordPlanGenerated(ctx context.Context, source string) {
	if o.planCounter != nil {
		o.planCounter.Add(ctx, 1, otelmetric.WithAttributes(
			attribute.String("source", source),
		))
	}
}

func (o *Observability) RecordPlanDuration(ctx context.Context, duration time.Duration, source string) {
	if o.planDuration != nil {
		o.planDuration.Record(ctx, float64(duration.Milliseconds()), otelmetric.WithAttributes(
			attribute.String("source", source),
		))
	}
}

func (o *Observability) Shutdown() {
	if o.meterProvider != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		o.meterProvider.Shutdown(ctx)
	}
}
