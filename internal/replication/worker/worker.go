// Package worker owns one set of (local, remote) replica pairs and drives
// the anti-entropy pull loop against them: shuffle peers, then for each run
// CheckOut → Exchange → Fetch → Write → Release, timing every phase
// independently (spec.md §4.1, §4.8).
package worker

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"go.uber.org/zap"

	"github.com/blobstore/replicationworker/internal/replication/clustermap"
	"github.com/blobstore/replicationworker/internal/replication/config"
	"github.com/blobstore/replicationworker/internal/replication/exchanger"
	"github.com/blobstore/replicationworker/internal/replication/fetcher"
	"github.com/blobstore/replicationworker/internal/replication/metrics"
	"github.com/blobstore/replicationworker/internal/replication/model"
	"github.com/blobstore/replicationworker/internal/replication/transport"
	"github.com/blobstore/replicationworker/internal/replication/writer"
	"github.com/blobstore/replicationworker/pkg/util/runner"
	"github.com/blobstore/replicationworker/pkg/util/runner/stopwaiter"
	"github.com/blobstore/replicationworker/pkg/verrors"
)

// Worker is the long-lived loop for one disjoint slice of the fleet's
// (local, remote) replica pairs, assigned to it by an external manager
// (spec.md §1, out of scope).
type Worker struct {
	cfg       config.Config
	localNode model.PeerNode
	replicas  []*model.RemoteReplicaState

	resolver  clustermap.PeerResolver
	pool      transport.ConnectionPool
	exchanger *exchanger.Exchanger
	fetcher   *fetcher.Fetcher
	writer    *writer.Writer
	metrics   *metrics.WorkerMetrics
	logger    *zap.Logger

	rng *rand.Rand

	// r supervises the pull loop: Shutdown cancels the managed context
	// WithManagedCancel hands Run, and State reports whether the loop is
	// still executing.
	r    *runner.Runner
	done *stopwaiter.StopWaiter
}

// New builds a Worker over replicas, all assumed assigned to this worker by
// the caller. localNode identifies this process for SSL/colo classification.
func New(
	cfg config.Config,
	localNode model.PeerNode,
	replicas []*model.RemoteReplicaState,
	resolver clustermap.PeerResolver,
	pool transport.ConnectionPool,
	exch *exchanger.Exchanger,
	fetch *fetcher.Fetcher,
	wr *writer.Writer,
	m *metrics.WorkerMetrics,
) *Worker {
	return &Worker{
		cfg:         cfg,
		localNode:   localNode,
		replicas:    replicas,
		resolver:    resolver,
		pool:        pool,
		exchanger:   exch,
		fetcher:     fetch,
		writer:      wr,
		metrics:     m,
		logger:      cfg.Logger(),
		rng:         rand.New(rand.NewSource(time.Now().UnixNano())),
		r:           runner.New(fmt.Sprintf("worker-%s", localNode.ID), cfg.Logger()),
		done:        stopwaiter.New(),
	}
}

// Run loops until Shutdown is observed; each pass shuffles the peer list
// and processes every peer once. It returns once Shutdown is called or ctx
// is canceled.
func (w *Worker) Run(ctx context.Context) {
	defer w.done.Stop()

	managedCtx, cancel := w.r.WithManagedCancel(ctx)
	defer cancel()

	for w.r.State() == runner.Running {
		w.runPass(managedCtx)

		select {
		case <-managedCtx.Done():
			return
		case <-time.After(w.cfg.IterationInterval()):
		}
	}
}

// Shutdown requests termination and blocks until Run returns.
func (w *Worker) Shutdown() {
	w.r.Stop()
	w.done.Wait()
}

// IsRunning reports whether the worker's runner is still in the Running
// state: true from New until Shutdown is called, whether or not Run has
// started, and still true after Run returns because ctx was canceled.
func (w *Worker) IsRunning() bool {
	return w.r.State() == runner.Running
}

func (w *Worker) runPass(ctx context.Context) {
	batches, err := groupByPeer(ctx, w.replicas, w.resolver)
	if err != nil {
		w.logger.Warn("worker: grouping peers failed", zap.Error(err))
		return
	}
	shuffleBatches(batches, w.rng)

	for _, batch := range batches {
		select {
		case <-ctx.Done():
			return
		default:
		}
		w.runPeerIteration(ctx, batch)
	}
}

// runPeerIteration runs one peer's CheckOut → Exchange → Fetch → Write →
// Release state machine, recording per-phase duration and destroying the
// connection on any failure (spec.md §4.8).
func (w *Worker) runPeerIteration(ctx context.Context, batch model.PeerBatch) {
	remoteColo := w.localNode.Datacenter != batch.Remote.Datacenter
	iterationStart := time.Now()
	defer func() {
		if w.metrics != nil {
			w.metrics.RecordIterationDuration(ctx, remoteColo, time.Since(iterationStart).Milliseconds())
		}
	}()

	kind := transport.Plaintext
	if w.cfg.IsSSLEnabledColo(batch.Remote.Datacenter) {
		kind = transport.SSL
	}

	ch, ok := w.checkOut(ctx, batch, kind)
	if !ok {
		return
	}

	succeeded := false
	defer func() {
		if succeeded {
			w.pool.CheckIn(ch)
		} else {
			w.pool.Destroy(ch)
		}
	}()

	results, ok := w.exchange(ctx, ch, batch, remoteColo)
	if !ok {
		return
	}

	resp, ok := w.fetch(ctx, ch, batch, results)
	if !ok {
		return
	}

	if !w.write(ctx, batch, results, resp) {
		return
	}

	succeeded = true
}

func (w *Worker) checkOut(ctx context.Context, batch model.PeerBatch, kind transport.ConnectionKind) (transport.Channel, bool) {
	start := time.Now()
	ch, err := w.pool.CheckOut(ctx, batch.Remote.Host, batch.Remote.Port, kind, w.cfg.ConnectionCheckoutTimeout())
	w.recordPhase(ctx, verrors.PhaseCheckOut, start)
	if err != nil {
		w.recordError(ctx, verrors.PhaseCheckOut)
		w.logger.Warn("worker: checkout failed", zap.String("peer", batch.Remote.String()), zap.Error(err))
		return nil, false
	}
	return ch, true
}

func (w *Worker) exchange(ctx context.Context, ch transport.Channel, batch model.PeerBatch, remoteColo bool) ([]model.ExchangeMetadataResult, bool) {
	start := time.Now()
	results, err := w.exchanger.Exchange(ctx, ch, batch, remoteColo)
	w.recordPhase(ctx, verrors.PhaseExchange, start)
	if err != nil {
		w.recordError(ctx, verrors.PhaseExchange)
		w.logger.Warn("worker: metadata exchange failed", zap.String("peer", batch.Remote.String()), zap.Error(err))
		return nil, false
	}
	return results, true
}

func (w *Worker) fetch(ctx context.Context, ch transport.Channel, batch model.PeerBatch, results []model.ExchangeMetadataResult) (*transport.GetResponse, bool) {
	start := time.Now()
	resp, err := w.fetcher.Fetch(ctx, ch, batch, results)
	w.recordPhase(ctx, verrors.PhaseFetch, start)
	if err != nil {
		w.recordError(ctx, verrors.PhaseFetch)
		w.logger.Warn("worker: fetch failed", zap.String("peer", batch.Remote.String()), zap.Error(err))
		return nil, false
	}
	return resp, true
}

func (w *Worker) write(ctx context.Context, batch model.PeerBatch, results []model.ExchangeMetadataResult, resp *transport.GetResponse) bool {
	start := time.Now()
	stats, err := w.writer.Write(ctx, batch, results, resp)
	w.recordPhase(ctx, verrors.PhaseWrite, start)
	if err != nil {
		w.recordError(ctx, verrors.PhaseWrite)
		w.logger.Warn("worker: write failed", zap.String("peer", batch.Remote.String()), zap.Error(err))
		return false
	}
	if w.metrics != nil {
		w.metrics.RecordBytesFixed(ctx, stats.BytesFixed)
		w.metrics.RecordBlobsFixed(ctx, stats.BlobsFixed)
	}
	return true
}

func (w *Worker) recordPhase(ctx context.Context, phase verrors.Phase, start time.Time) {
	if w.metrics != nil {
		w.metrics.RecordPhaseDuration(ctx, phase, time.Since(start).Milliseconds())
	}
}

func (w *Worker) recordError(ctx context.Context, phase verrors.Phase) {
	if w.metrics != nil {
		w.metrics.RecordError(ctx, phase)
	}
}
