// Package fetcher issues the batched blob-fetch request for whatever keys
// a peer's metadata exchange left in the missing set (spec.md §4.4).
package fetcher

import (
	"context"
	"fmt"

	"golang.org/x/time/rate"

	"github.com/blobstore/replicationworker/internal/replication/config"
	"github.com/blobstore/replicationworker/internal/replication/idgen"
	"github.com/blobstore/replicationworker/internal/replication/model"
	"github.com/blobstore/replicationworker/internal/replication/transport"
	"github.com/blobstore/replicationworker/pkg/types"
)

// ClientID is the identifier this worker reports itself as in every get
// request.
const ClientID = "replicationworker"

// Fetcher issues one batched get request for a peer batch's still-missing
// keys, throttled by a byte-budget limiter independent of the Pacer (which
// governs per-exchange sleep, not fetch throughput).
type Fetcher struct {
	ids     *idgen.Generator
	limiter *rate.Limiter
}

// New builds a Fetcher drawing correlation ids from ids and limiting fetch
// throughput to roughly cfg.FetchSizeInBytes() per second, with a burst of
// one full batch.
func New(ids *idgen.Generator, cfg config.Config) *Fetcher {
	budget := cfg.FetchSizeInBytes()
	return &Fetcher{
		ids:     ids,
		limiter: rate.NewLimiter(rate.Limit(budget), int(budget)),
	}
}

// Fetch consolidates, per partition, the keys of every result carrying
// No_Error and a non-empty missing set, and issues one get request for
// them. It returns nil, nil if there is nothing to fetch.
func (f *Fetcher) Fetch(ctx context.Context, ch transport.Channel, batch model.PeerBatch, results []model.ExchangeMetadataResult) (*transport.GetResponse, error) {
	if len(results) != len(batch.Replicas) {
		return nil, fmt.Errorf("fetcher: results count %d does not match batch size %d", len(results), len(batch.Replicas))
	}

	req := &transport.GetRequest{
		CorrelationID:  f.ids.Next(),
		ClientID:       ClientID,
		FullMessage:    true,
		IncludeDeletes: true,
		IncludeExpired: false, // mirrors the original's GetOptions.None; Reconciler already drops expired-and-missing keys before a key ever reaches here
	}
	for i, r := range batch.Replicas {
		result := results[i]
		if !result.OK() || len(result.MissingKeys()) == 0 {
			continue
		}
		req.Partitions = append(req.Partitions, transport.PartitionGetRequest{
			PartitionID: r.LocalReplicaID.Partition,
			Keys:        result.MissingKeys(),
		})
	}

	if len(req.Partitions) == 0 {
		return nil, nil
	}

	if err := f.limiter.WaitN(ctx, int(f.limiter.Burst())); err != nil {
		return nil, fmt.Errorf("fetcher: fetch budget limiter: %w", err)
	}

	resp, err := ch.Get(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("fetcher: get request failed: %w", err)
	}
	if resp.Error != types.NoError {
		return nil, fmt.Errorf("fetcher: get request returned error %s", resp.Error)
	}
	return resp, nil
}
