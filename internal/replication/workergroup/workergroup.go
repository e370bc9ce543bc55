// Package workergroup fans a fleet's remote replicas out into one Worker
// per remote datacenter, so the intra-/cross-colo policy split spec.md
// §4.1 makes inside one worker also holds between workers: a worker
// assigned to a caught-up, cross-colo peer group never blocks a
// same-colo worker that is still catching up (SPEC_FULL.md §2,
// "SUPPLEMENTED FEATURES" — the original's replica-thread-group analogue).
package workergroup

import (
	"context"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/blobstore/replicationworker/internal/replication/clustermap"
	"github.com/blobstore/replicationworker/internal/replication/config"
	"github.com/blobstore/replicationworker/internal/replication/exchanger"
	"github.com/blobstore/replicationworker/internal/replication/fetcher"
	"github.com/blobstore/replicationworker/internal/replication/idgen"
	"github.com/blobstore/replicationworker/internal/replication/metrics"
	"github.com/blobstore/replicationworker/internal/replication/model"
	"github.com/blobstore/replicationworker/internal/replication/notify"
	"github.com/blobstore/replicationworker/internal/replication/pacer"
	"github.com/blobstore/replicationworker/internal/replication/reconciler"
	"github.com/blobstore/replicationworker/internal/replication/transport"
	"github.com/blobstore/replicationworker/internal/replication/worker"
	"github.com/blobstore/replicationworker/internal/replication/writer"
	"github.com/blobstore/replicationworker/pkg/types"
)

// WorkerGroup owns one Worker per remote datacenter represented among a
// fleet's assigned replicas.
type WorkerGroup struct {
	workers []*worker.Worker
	logger  *zap.Logger
}

// New resolves each replica's remote datacenter and builds one Worker per
// distinct datacenter, sharing one connection pool, resolver, and metrics
// sink across all of them. Each worker gets its own Pacer, Reconciler, and
// correlation-id counter, so colo-level isolation costs nothing beyond one
// goroutine per datacenter.
func New(
	ctx context.Context,
	cfg config.Config,
	localNode model.PeerNode,
	replicas []*model.RemoteReplicaState,
	resolver clustermap.PeerResolver,
	pool transport.ConnectionPool,
	tokenFactory model.TokenFactory,
	sink notify.Sink,
	m *metrics.WorkerMetrics,
) (*WorkerGroup, error) {
	if sink == nil {
		sink = notify.NoOp{}
	}

	byDatacenter := make(map[types.DatacenterID][]*model.RemoteReplicaState)
	order := make([]types.DatacenterID, 0)
	for _, r := range replicas {
		peer, err := resolver.Resolve(ctx, r.RemoteReplicaID.Node)
		if err != nil {
			return nil, fmt.Errorf("workergroup: resolving node %s: %w", r.RemoteReplicaID.Node, err)
		}
		if _, ok := byDatacenter[peer.Datacenter]; !ok {
			order = append(order, peer.Datacenter)
		}
		byDatacenter[peer.Datacenter] = append(byDatacenter[peer.Datacenter], r)
	}

	workers := make([]*worker.Worker, 0, len(order))
	for _, dc := range order {
		ids := &idgen.Generator{}
		p := pacer.New(cfg)
		rec := reconciler.New(sink)
		exch := exchanger.New(cfg, ids, p, rec, tokenFactory, localNode.Host)
		fet := fetcher.New(ids, cfg)
		wr := writer.New(cfg, sink)
		w := worker.New(cfg, localNode, byDatacenter[dc], resolver, pool, exch, fet, wr, m)
		workers = append(workers, w)
	}

	return &WorkerGroup{workers: workers, logger: cfg.Logger()}, nil
}

// Run starts every worker's loop and blocks until every one of them has
// returned (normally because ctx was canceled or Shutdown was called).
func (g *WorkerGroup) Run(ctx context.Context) {
	var wg sync.WaitGroup
	for _, w := range g.workers {
		wg.Add(1)
		go func(w *worker.Worker) {
			defer wg.Done()
			w.Run(ctx)
		}(w)
	}
	wg.Wait()
}

// Shutdown stops every worker, blocking until all of them have returned
// from Run.
func (g *WorkerGroup) Shutdown() {
	var wg sync.WaitGroup
	for _, w := range g.workers {
		wg.Add(1)
		go func(w *worker.Worker) {
			defer wg.Done()
			w.Shutdown()
		}(w)
	}
	wg.Wait()
}

// Workers exposes the per-datacenter workers, chiefly for isRunning-style
// admin introspection.
func (g *WorkerGroup) Workers() []*worker.Worker {
	return g.workers
}
