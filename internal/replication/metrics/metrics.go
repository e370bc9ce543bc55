// Package metrics wraps the OpenTelemetry instruments the worker records
// against: per-phase duration, intra-/cross-colo totals, bytes fixed, and
// error counts, built on internal/stats/opentelemetry's cached-attribute
// histograms.
package metrics

import (
	"context"

	"go.opentelemetry.io/otel/metric"

	otelstats "github.com/blobstore/replicationworker/internal/stats/opentelemetry"
	"github.com/blobstore/replicationworker/pkg/verrors"
)

// colo is the cache key for the intra-/cross-colo histogram sets.
type colo bool

const (
	intraColo colo = false
	crossColo colo = true
)

func coloOf(remoteColo bool) colo {
	if remoteColo {
		return crossColo
	}
	return intraColo
}

// WorkerMetrics is the set of instruments one Worker (or WorkerGroup)
// records against.
type WorkerMetrics struct {
	phaseDuration *otelstats.Int64HistogramSet[verrors.Phase]
	iterationTime *otelstats.Int64HistogramSet[colo]
	bytesFixed    metric.Int64Counter
	blobsFixed    metric.Int64Counter
	errors        metric.Int64Counter
}

// New builds a WorkerMetrics recording through meter.
func New(meter metric.Meter) (*WorkerMetrics, error) {
	phaseDuration, err := otelstats.NewInt64HistogramSet[verrors.Phase](meter, "replication.phase.duration_ms",
		metric.WithUnit("ms"), metric.WithDescription("duration of one per-peer phase"))
	if err != nil {
		return nil, err
	}

	iterationTime, err := otelstats.NewInt64HistogramSet[colo](meter, "replication.iteration.duration_ms",
		metric.WithUnit("ms"), metric.WithDescription("total duration of one peer iteration, by colo locality"))
	if err != nil {
		return nil, err
	}

	bytesFixed, err := meter.Int64Counter("replication.bytes_fixed",
		metric.WithDescription("bytes written to the local store via replication"))
	if err != nil {
		return nil, err
	}

	blobsFixed, err := meter.Int64Counter("replication.blobs_fixed",
		metric.WithDescription("blobs written to the local store via replication"))
	if err != nil {
		return nil, err
	}

	errorsCounter, err := meter.Int64Counter("replication.errors",
		metric.WithDescription("errors observed during replication, by phase"))
	if err != nil {
		return nil, err
	}

	return &WorkerMetrics{
		phaseDuration: phaseDuration,
		iterationTime: iterationTime,
		bytesFixed:    bytesFixed,
		blobsFixed:    blobsFixed,
		errors:        errorsCounter,
	}, nil
}

// RecordPhaseDuration records how long one phase of one peer iteration took.
func (m *WorkerMetrics) RecordPhaseDuration(ctx context.Context, phase verrors.Phase, millis int64) {
	m.phaseDuration.Record(ctx, phase, millis, func() []metric.RecordOption {
		return []metric.RecordOption{metric.WithAttributes(phaseAttr(phase))}
	})
}

// RecordIterationDuration records the total time spent on one peer's
// iteration, bucketed by whether the peer is in the local datacenter.
func (m *WorkerMetrics) RecordIterationDuration(ctx context.Context, remoteColo bool, millis int64) {
	key := coloOf(remoteColo)
	m.iterationTime.Record(ctx, key, millis, func() []metric.RecordOption {
		return []metric.RecordOption{metric.WithAttributes(coloAttr(remoteColo))}
	})
}

// RecordBytesFixed adds n bytes to the running total of content written by
// replication.
func (m *WorkerMetrics) RecordBytesFixed(ctx context.Context, n int64) {
	m.bytesFixed.Add(ctx, n)
}

// RecordBlobsFixed adds n to the running total of blobs written by
// replication.
func (m *WorkerMetrics) RecordBlobsFixed(ctx context.Context, n int64) {
	m.blobsFixed.Add(ctx, n)
}

// RecordError increments the error counter for the given phase.
func (m *WorkerMetrics) RecordError(ctx context.Context, phase verrors.Phase) {
	m.errors.Add(ctx, 1, metric.WithAttributes(phaseAttr(phase)))
}
