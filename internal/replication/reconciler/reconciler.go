// Package reconciler applies one peer replica's reported metadata to the
// local store: propagating remote tombstones and narrowing the missing-key
// set to what Fetcher actually needs to pull (spec.md §4.3).
package reconciler

import (
	"context"
	"fmt"

	"github.com/blobstore/replicationworker/internal/replication/model"
	"github.com/blobstore/replicationworker/internal/replication/notify"
)

// Reconciler updates the local store from remote metadata.
type Reconciler struct {
	sink notify.Sink
}

// New builds a Reconciler. sink receives fire-and-forget notifications for
// every tombstone it applies; pass notify.NoOp{} when nothing listens.
func New(sink notify.Sink) *Reconciler {
	if sink == nil {
		sink = notify.NoOp{}
	}
	return &Reconciler{sink: sink}
}

// Reconcile applies messages (one peer replica's metadata response) against
// state's local store and returns the keys Fetcher must still pull. A
// partition mismatch between a message and state is a fatal invariant
// breach scoped to this one slot.
func (r *Reconciler) Reconcile(ctx context.Context, state *model.RemoteReplicaState, messages []model.MessageInfo) ([]model.BlobKey, error) {
	keysToCheck := model.KeysOf(messages)

	missingKeys, err := state.LocalStore.FindMissingKeys(ctx, keysToCheck)
	if err != nil {
		return nil, fmt.Errorf("reconciler: findMissingKeys: %w", err)
	}
	missing := make(map[model.BlobKey]struct{}, len(missingKeys))
	for _, k := range missingKeys {
		missing[k] = struct{}{}
	}

	for _, m := range messages {
		if m.Key.Partition != state.LocalReplicaID.Partition {
			return nil, fmt.Errorf("reconciler: message key %s does not belong to partition %s",
				m.Key, state.LocalReplicaID.Partition)
		}

		_, isMissing := missing[m.Key]
		switch {
		case !isMissing:
			if err := r.reconcilePresent(ctx, state, m); err != nil {
				return nil, err
			}
		case m.IsDeleted:
			delete(missing, m.Key)
			r.sink.OnBlobReplicaDeleted("", 0, m.Key, notify.Repaired)
		case m.IsExpired:
			delete(missing, m.Key)
		}
	}

	result := make([]model.BlobKey, 0, len(missing))
	for _, m := range messages {
		if _, ok := missing[m.Key]; ok {
			result = append(result, m.Key)
		}
	}
	return result, nil
}

// reconcilePresent handles a key the local store already has: if the remote
// has tombstoned it and the local copy is not yet a tombstone, propagate
// the delete.
func (r *Reconciler) reconcilePresent(ctx context.Context, state *model.RemoteReplicaState, m model.MessageInfo) error {
	if !m.IsDeleted {
		return nil
	}

	alreadyDeleted, err := state.LocalStore.IsKeyDeleted(ctx, m.Key)
	if err != nil {
		return fmt.Errorf("reconciler: isKeyDeleted: %w", err)
	}
	if alreadyDeleted {
		return nil
	}

	ws := model.WriteSet{
		Partition: state.LocalReplicaID.Partition,
		Messages:  []model.MessageInfo{m},
	}
	if err := state.LocalStore.Delete(ctx, ws); err != nil {
		return fmt.Errorf("reconciler: delete: %w", err)
	}
	r.sink.OnBlobReplicaDeleted("", 0, m.Key, notify.Repaired)
	return nil
}
