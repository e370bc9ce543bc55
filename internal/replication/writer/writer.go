// Package writer validates a fetched blob stream and writes it into the
// local store, advancing each replica's token only once every missing key
// it reported has been durably written or determined unnecessary
// (spec.md §4.5).
package writer

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/blobstore/replicationworker/internal/replication/config"
	"github.com/blobstore/replicationworker/internal/replication/model"
	"github.com/blobstore/replicationworker/internal/replication/notify"
	"github.com/blobstore/replicationworker/internal/replication/transport"
	"github.com/blobstore/replicationworker/pkg/types"
	"github.com/blobstore/replicationworker/pkg/verrors"
)

// Stats aggregates what one Write call actually persisted.
type Stats struct {
	BytesFixed int64
	BlobsFixed int64
}

// Writer applies a GetResponse against a peer batch's results.
type Writer struct {
	validateStream bool
	sink           notify.Sink
	logger         *zap.Logger
}

// New builds a Writer from the worker configuration.
func New(cfg config.Config, sink notify.Sink) *Writer {
	if sink == nil {
		sink = notify.NoOp{}
	}
	return &Writer{validateStream: cfg.ValidateMessageStream(), sink: sink, logger: cfg.Logger()}
}

// Write walks results positionally against batch.Replicas, consuming resp's
// partition payloads in order for every result that needed a fetch. resp
// may be nil when Fetcher had nothing to ask for.
func (w *Writer) Write(ctx context.Context, batch model.PeerBatch, results []model.ExchangeMetadataResult, resp *transport.GetResponse) (Stats, error) {
	var stats Stats
	cursor := 0

	for i, state := range batch.Replicas {
		result := results[i]
		if !result.OK() {
			continue
		}
		if len(result.MissingKeys()) == 0 {
			state.AdvanceToken(result.NewToken())
			continue
		}

		if resp == nil || cursor >= len(resp.Partitions) {
			w.logger.Warn("writer: missing partition payload for replica",
				zap.String("replica", state.LocalReplicaID.String()))
			continue
		}
		payload := resp.Partitions[cursor]
		cursor++

		if payload.PartitionID != state.LocalReplicaID.Partition {
			w.logger.Error("writer: partition mismatch in get response",
				zap.String("expected", state.LocalReplicaID.Partition.String()),
				zap.String("got", payload.PartitionID.String()))
			continue
		}

		w.writeSlot(ctx, state, result, payload, &stats)
	}

	return stats, nil
}

func (w *Writer) writeSlot(ctx context.Context, state *model.RemoteReplicaState, result model.ExchangeMetadataResult, payload transport.PartitionPayload, stats *Stats) {
	if payload.Error != types.NoError {
		w.logger.Warn("writer: get error for partition",
			zap.String("partition", payload.PartitionID.String()), zap.Stringer("error", payload.Error))
		return
	}

	messages, blobs := payload.Messages, payload.Blobs
	if len(messages) != len(blobs) {
		w.logger.Error("writer: message/blob count mismatch", zap.String("partition", payload.PartitionID.String()))
		return
	}

	invalidCount := 0
	if w.validateStream {
		messages, blobs, invalidCount = filterValidMessages(messages, blobs)
		if invalidCount > 0 {
			w.logger.Warn("writer: dropped invalid messages from stream",
				zap.Int("invalidCount", invalidCount), zap.String("partition", payload.PartitionID.String()))
		}
	}

	if len(messages) == 0 {
		// Nothing left to write, whether because the fetch genuinely
		// returned nothing or validation discarded everything: either way
		// this slot's missing keys are considered handled.
		state.AdvanceToken(result.NewToken())
		return
	}

	ws := model.WriteSet{Partition: state.LocalReplicaID.Partition, Messages: messages, Payloads: blobs}
	err := state.LocalStore.Put(ctx, ws)
	if err != nil && !errors.Is(err, verrors.ErrExist) {
		w.logger.Warn("writer: store put failed", zap.Error(err), zap.String("partition", payload.PartitionID.String()))
		return
	}

	for _, m := range messages {
		stats.BytesFixed += m.Size
		stats.BlobsFixed++
		w.sink.OnBlobReplicaCreated("", 0, m.Key, notify.Repaired)
	}
	state.AdvanceToken(result.NewToken())
}

// filterValidMessages keeps only the messages whose blob payload length
// matches the size the remote reported, the sieve spec.md §4.5 calls for
// when validateMessageStream is on.
func filterValidMessages(messages []model.MessageInfo, blobs [][]byte) (validMessages []model.MessageInfo, validBlobs [][]byte, invalidCount int) {
	for i, m := range messages {
		if int64(len(blobs[i])) != m.Size {
			invalidCount++
			continue
		}
		validMessages = append(validMessages, m)
		validBlobs = append(validBlobs, blobs[i])
	}
	return validMessages, validBlobs, invalidCount
}
