package opentelemetry

import (
	"context"
	"errors"

	"go.opentelemetry.io/contrib/instrumentation/runtime"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
	noopmetric "go.opentelemetry.io/otel/metric/noop"
	"go.opentelemetry.io/otel/exporters/stdout/stdoutmetric"
	metricsdk "go.opentelemetry.io/otel/sdk/metric"
)

// StopMeterProvider shuts down both the meter provider and its exporter.
type StopMeterProvider func(context.Context) error

// NewMeterProvider builds a meter provider from opts. With no exporter set
// it returns a no-op provider, so a worker can always construct one
// unconditionally and only pay for export when it is configured to.
func NewMeterProvider(opts ...MeterProviderOption) (metric.MeterProvider, StopMeterProvider, error) {
	cfg := newMeterProviderConfig(opts)

	stop := func(ctx context.Context) error { return nil }

	if cfg.exporter == nil {
		return noopmetric.NewMeterProvider(), stop, nil
	}

	reader := metricsdk.NewPeriodicReader(cfg.exporter)
	mp := metricsdk.NewMeterProvider(
		metricsdk.WithResource(cfg.resource),
		metricsdk.WithReader(reader),
	)

	if cfg.runtimeInstrumentation {
		if err := runtime.Start(append(cfg.runtimeInstrumentationOpts, runtime.WithMeterProvider(mp))...); err != nil {
			return nil, stop, err
		}
	}

	stop = func(ctx context.Context) error {
		return errors.Join(mp.Shutdown(ctx), cfg.exporter.Shutdown(ctx))
	}
	return mp, stop, nil
}

// NewStdoutExporter builds the stdout metric exporter used when a worker is
// started with telemetry enabled but no collector endpoint configured.
func NewStdoutExporter() (metricsdk.Exporter, error) {
	return stdoutmetric.New()
}

func SetGlobalMeterProvider(mp metric.MeterProvider) {
	otel.SetMeterProvider(mp)
}
