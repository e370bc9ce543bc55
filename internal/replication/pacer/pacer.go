// Package pacer smooths tight convergence loops against an intra-colo peer
// that has almost caught up, by sleeping once per metadata-exchange call
// (spec.md §4.7).
package pacer

import (
	"context"
	"time"

	"github.com/blobstore/replicationworker/internal/replication/config"
)

// Pacer tracks the per-exchange-call "has this exchange already paced"
// flag. It is not safe for concurrent use; one Worker uses one Pacer for
// one peer's metadata exchange at a time.
type Pacer struct {
	waitTime     time.Duration
	maxLagBytes  int64
	sleep        func(context.Context, time.Duration)
	needToWait   bool
}

// New builds a Pacer from the worker configuration. sleep defaults to a
// context-aware time.Sleep; tests may override it to avoid real delays.
func New(cfg config.Config) *Pacer {
	return &Pacer{
		waitTime:    cfg.WaitTimeBetweenReplicas(),
		maxLagBytes: cfg.MaxLagForWaitTimeInBytes(),
		sleep:       sleepCtx,
		needToWait:  true,
	}
}

func sleepCtx(ctx context.Context, d time.Duration) {
	if d <= 0 {
		return
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-timer.C:
	case <-ctx.Done():
	}
}

// BeginExchange resets the per-call pacing flag. MetadataExchanger calls
// this once at the start of every exchange() invocation, before iterating
// the peer batch's per-replica responses.
func (p *Pacer) BeginExchange() {
	p.needToWait = true
}

// MaybeSleep sleeps once, at most, per BeginExchange call: only for an
// intra-colo peer, only while needToWait is still set, and only when the
// peer's reported lag is below the configured threshold. Preserved
// deliberately: under fan-out to many replicas sharing one peer, only the
// first qualifying slot in a batch actually sleeps.
func (p *Pacer) MaybeSleep(ctx context.Context, remoteColo bool, lagInBytes int64) {
	if remoteColo {
		return
	}
	if !p.needToWait {
		return
	}
	if lagInBytes >= p.maxLagBytes {
		return
	}
	p.sleep(ctx, p.waitTime)
	p.needToWait = false
}
