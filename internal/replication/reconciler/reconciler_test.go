package reconciler

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/blobstore/replicationworker/internal/replication/model"
	"github.com/blobstore/replicationworker/internal/replication/notify"
	"github.com/blobstore/replicationworker/pkg/types"
)

type fakeStore struct {
	present map[model.BlobKey]bool // present[key] = isDeleted
	deletes []model.BlobKey
}

func newFakeStore() *fakeStore {
	return &fakeStore{present: make(map[model.BlobKey]bool)}
}

func (s *fakeStore) FindMissingKeys(ctx context.Context, keys []model.BlobKey) ([]model.BlobKey, error) {
	var missing []model.BlobKey
	for _, k := range keys {
		if _, ok := s.present[k]; !ok {
			missing = append(missing, k)
		}
	}
	return missing, nil
}

func (s *fakeStore) Put(ctx context.Context, ws model.WriteSet) error {
	for _, m := range ws.Messages {
		s.present[m.Key] = false
	}
	return nil
}

func (s *fakeStore) Delete(ctx context.Context, ws model.WriteSet) error {
	for _, m := range ws.Messages {
		s.present[m.Key] = true
		s.deletes = append(s.deletes, m.Key)
	}
	return nil
}

func (s *fakeStore) IsKeyDeleted(ctx context.Context, key model.BlobKey) (bool, error) {
	return s.present[key], nil
}

type recordingSink struct {
	deleted []model.BlobKey
}

func (s *recordingSink) OnBlobReplicaCreated(host string, port int, key model.BlobKey, source notify.Source) {
}

func (s *recordingSink) OnBlobReplicaDeleted(host string, port int, key model.BlobKey, source notify.Source) {
	s.deleted = append(s.deleted, key)
}

func testState(store model.LocalStore) *model.RemoteReplicaState {
	partition := types.PartitionID(1)
	return &model.RemoteReplicaState{
		RemoteReplicaID: types.ReplicaID{Node: types.NodeID(1), Partition: partition},
		LocalReplicaID:  types.ReplicaID{Node: types.NodeID(2), Partition: partition},
		LocalStore:      store,
	}
}

func key(b byte) model.BlobKey {
	return model.NewBlobKey(types.PartitionID(1), [16]byte{b})
}

func TestReconcileAbsentAliveStaysMissing(t *testing.T) {
	store := newFakeStore()
	sink := &recordingSink{}
	r := New(sink)

	missing, err := r.Reconcile(context.Background(), testState(store), []model.MessageInfo{
		{Key: key(1), Size: 100},
	})
	require.NoError(t, err)
	require.Equal(t, []model.BlobKey{key(1)}, missing)
	require.Empty(t, sink.deleted)
}

func TestReconcileAbsentDeletedRemovedFromMissing(t *testing.T) {
	store := newFakeStore()
	sink := &recordingSink{}
	r := New(sink)

	missing, err := r.Reconcile(context.Background(), testState(store), []model.MessageInfo{
		{Key: key(1), IsDeleted: true},
	})
	require.NoError(t, err)
	require.Empty(t, missing)
	require.Equal(t, []model.BlobKey{key(1)}, sink.deleted)
}

func TestReconcileAbsentExpiredRemovedFromMissing(t *testing.T) {
	store := newFakeStore()
	sink := &recordingSink{}
	r := New(sink)

	missing, err := r.Reconcile(context.Background(), testState(store), []model.MessageInfo{
		{Key: key(1), IsExpired: true},
	})
	require.NoError(t, err)
	require.Empty(t, missing)
	require.Empty(t, sink.deleted)
}

func TestReconcilePresentAndDeletedPropagatesDelete(t *testing.T) {
	store := newFakeStore()
	store.present[key(1)] = false // present, not yet deleted
	sink := &recordingSink{}
	r := New(sink)

	missing, err := r.Reconcile(context.Background(), testState(store), []model.MessageInfo{
		{Key: key(1), IsDeleted: true},
	})
	require.NoError(t, err)
	require.Empty(t, missing)
	require.Equal(t, []model.BlobKey{key(1)}, sink.deleted)
	require.True(t, store.present[key(1)])
}

func TestReconcilePresentAlreadyDeletedIsNoOp(t *testing.T) {
	store := newFakeStore()
	store.present[key(1)] = true // already a tombstone
	sink := &recordingSink{}
	r := New(sink)

	missing, err := r.Reconcile(context.Background(), testState(store), []model.MessageInfo{
		{Key: key(1), IsDeleted: true},
	})
	require.NoError(t, err)
	require.Empty(t, missing)
	require.Empty(t, sink.deleted)
}

func TestReconcilePartitionMismatchIsFatal(t *testing.T) {
	store := newFakeStore()
	r := New(notify.NoOp{})

	wrongPartitionKey := model.NewBlobKey(types.PartitionID(2), [16]byte{9})
	_, err := r.Reconcile(context.Background(), testState(store), []model.MessageInfo{
		{Key: wrongPartitionKey},
	})
	require.Error(t, err)
}
