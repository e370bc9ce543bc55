// Package exchanger issues the batched metadata request for one peer batch
// and turns the response into a list of per-replica ExchangeMetadataResult,
// running the Pacer and Reconciler along the way (spec.md §4.2).
package exchanger

import (
	"context"
	"fmt"

	"github.com/blobstore/replicationworker/internal/replication/config"
	"github.com/blobstore/replicationworker/internal/replication/idgen"
	"github.com/blobstore/replicationworker/internal/replication/model"
	"github.com/blobstore/replicationworker/internal/replication/pacer"
	"github.com/blobstore/replicationworker/internal/replication/reconciler"
	"github.com/blobstore/replicationworker/internal/replication/transport"
	"github.com/blobstore/replicationworker/pkg/types"
	"github.com/blobstore/replicationworker/pkg/verrors"
)

// ClientID is the identifier this worker reports itself as in every
// metadata request.
const ClientID = "replicationworker"

// Exchanger runs one peer batch's metadata round.
type Exchanger struct {
	cfg         config.Config
	ids         *idgen.Generator
	pacer       *pacer.Pacer
	reconciler  *reconciler.Reconciler
	tokenFactory model.TokenFactory
	localHost   string
}

// New builds an Exchanger. localHost is reported to the peer as the
// requester's address for logging/debugging on the remote side.
func New(cfg config.Config, ids *idgen.Generator, p *pacer.Pacer, r *reconciler.Reconciler, tf model.TokenFactory, localHost string) *Exchanger {
	return &Exchanger{cfg: cfg, ids: ids, pacer: p, reconciler: r, tokenFactory: tf, localHost: localHost}
}

// Exchange sends one batched metadata request for batch and returns one
// ExchangeMetadataResult per entry in batch.Replicas, positionally aligned.
// remoteColo disables the Pacer for this peer.
func (e *Exchanger) Exchange(ctx context.Context, ch transport.Channel, batch model.PeerBatch, remoteColo bool) ([]model.ExchangeMetadataResult, error) {
	if err := batch.Validate(); err != nil {
		return nil, err
	}

	req := &transport.MetadataRequest{
		CorrelationID:    e.ids.Next(),
		ClientID:         ClientID,
		FetchSizeInBytes: e.cfg.FetchSizeInBytes(),
		Replicas:         make([]transport.PartitionMetadataRequest, len(batch.Replicas)),
	}
	for i, r := range batch.Replicas {
		var tokenBytes []byte
		if r.Token != nil {
			tokenBytes = r.Token.Bytes()
		}
		req.Replicas[i] = transport.PartitionMetadataRequest{
			PartitionID:          r.LocalReplicaID.Partition,
			Token:                tokenBytes,
			RequesterHost:        e.localHost,
			RequesterReplicaPath: r.LocalReplicaID.String(),
		}
	}

	resp, err := ch.ExchangeMetadata(ctx, req)
	if err != nil {
		return nil, verrors.WrapTransient(err)
	}
	if resp.Error != types.NoError {
		return nil, fmt.Errorf("exchanger: metadata request failed: %s", resp.Error)
	}
	if len(resp.Replicas) != len(batch.Replicas) {
		return nil, fmt.Errorf("exchanger: response count %d does not match request count %d",
			len(resp.Replicas), len(batch.Replicas))
	}

	e.pacer.BeginExchange()

	results := make([]model.ExchangeMetadataResult, len(batch.Replicas))
	for i, r := range batch.Replicas {
		results[i] = e.processSlot(ctx, r, resp.Replicas[i], remoteColo)
	}
	return results, nil
}

// processSlot never panics: any error surfaced while handling one slot is
// converted to an error result so the rest of the batch keeps going.
func (e *Exchanger) processSlot(ctx context.Context, state *model.RemoteReplicaState, slot transport.PartitionMetadataResponse, remoteColo bool) (result model.ExchangeMetadataResult) {
	defer func() {
		if p := recover(); p != nil {
			result = model.ErrExchangeResult(types.ErrorCodeUnknown)
		}
	}()

	if slot.Error != types.NoError {
		return model.ErrExchangeResult(slot.Error)
	}

	e.pacer.MaybeSleep(ctx, remoteColo, slot.RemoteReplicaLagInBytes)

	newToken, err := e.tokenFactory.Decode(slot.NewToken)
	if err != nil {
		return model.ErrExchangeResult(types.ErrorCodeUnknown)
	}

	missingKeys, err := e.reconciler.Reconcile(ctx, state, slot.Messages)
	if err != nil {
		return model.ErrExchangeResult(types.ErrorCodeUnknown)
	}

	return model.OkExchangeResult(missingKeys, newToken)
}
