package worker

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/blobstore/replicationworker/internal/replication/config"
	"github.com/blobstore/replicationworker/internal/replication/exchanger"
	"github.com/blobstore/replicationworker/internal/replication/fetcher"
	"github.com/blobstore/replicationworker/internal/replication/idgen"
	"github.com/blobstore/replicationworker/internal/replication/model"
	"github.com/blobstore/replicationworker/internal/replication/notify"
	"github.com/blobstore/replicationworker/internal/replication/pacer"
	"github.com/blobstore/replicationworker/internal/replication/reconciler"
	"github.com/blobstore/replicationworker/internal/replication/transport"
	"github.com/blobstore/replicationworker/internal/replication/writer"
	"github.com/blobstore/replicationworker/pkg/types"
)

type fakeResolver struct {
	peer model.PeerNode
}

func (r *fakeResolver) Resolve(ctx context.Context, node types.NodeID) (model.PeerNode, error) {
	return r.peer, nil
}

type fakePool struct {
	ch          transport.Channel
	checkedIn   int
	destroyed   int
}

func (p *fakePool) CheckOut(ctx context.Context, host string, port int, kind transport.ConnectionKind, timeout time.Duration) (transport.Channel, error) {
	return p.ch, nil
}
func (p *fakePool) CheckIn(ch transport.Channel) { p.checkedIn++ }
func (p *fakePool) Destroy(ch transport.Channel) { p.destroyed++ }

type fakeChannel struct {
	metaResp *transport.MetadataResponse
	getResp  *transport.GetResponse
}

func (c *fakeChannel) ExchangeMetadata(ctx context.Context, req *transport.MetadataRequest) (*transport.MetadataResponse, error) {
	return c.metaResp, nil
}

func (c *fakeChannel) Get(ctx context.Context, req *transport.GetRequest) (*transport.GetResponse, error) {
	return c.getResp, nil
}

type fakeStore struct {
	missing []model.BlobKey
}

func (s *fakeStore) FindMissingKeys(ctx context.Context, keys []model.BlobKey) ([]model.BlobKey, error) {
	return s.missing, nil
}
func (s *fakeStore) Put(ctx context.Context, ws model.WriteSet) error    { return nil }
func (s *fakeStore) Delete(ctx context.Context, ws model.WriteSet) error { return nil }
func (s *fakeStore) IsKeyDeleted(ctx context.Context, key model.BlobKey) (bool, error) {
	return false, nil
}

func key(b byte) model.BlobKey {
	return model.NewBlobKey(types.PartitionID(1), [16]byte{b})
}

func TestRunPeerIterationSuccessAdvancesTokenAndChecksIn(t *testing.T) {
	partition := types.PartitionID(1)
	store := &fakeStore{missing: []model.BlobKey{key(1)}}
	state := &model.RemoteReplicaState{
		RemoteReplicaID: types.ReplicaID{Node: types.NodeID(7), Partition: partition},
		LocalReplicaID:  types.ReplicaID{Node: types.NodeID(1), Partition: partition},
		LocalStore:      store,
	}

	newTok := model.SegmentOffsetToken{SegmentIndex: 1}
	ch := &fakeChannel{
		metaResp: &transport.MetadataResponse{
			Error: types.NoError,
			Replicas: []transport.PartitionMetadataResponse{
				{PartitionID: partition, Error: types.NoError,
					Messages: []model.MessageInfo{{Key: key(1), Size: 5}},
					NewToken: newTok.Bytes()},
			},
		},
		getResp: &transport.GetResponse{
			Error: types.NoError,
			Partitions: []transport.PartitionPayload{
				{PartitionID: partition, Error: types.NoError,
					Messages: []model.MessageInfo{{Key: key(1), Size: 5}},
					Blobs:    [][]byte{make([]byte, 5)}},
			},
		},
	}
	pool := &fakePool{ch: ch}
	resolver := &fakeResolver{peer: model.PeerNode{ID: types.NodeID(7), Host: "peer", Port: 1, Datacenter: "dc1"}}

	cfg, err := config.New()
	require.NoError(t, err)

	ids := &idgen.Generator{}
	exch := exchanger.New(cfg, ids, pacer.New(cfg), reconciler.New(notify.NoOp{}), model.SegmentOffsetTokenFactory{}, "local")
	fet := fetcher.New(ids, cfg)
	wr := writer.New(cfg, notify.NoOp{})

	w := New(cfg, model.PeerNode{Datacenter: "dc1"}, []*model.RemoteReplicaState{state}, resolver, pool, exch, fet, wr, nil)

	w.runPeerIteration(context.Background(), model.PeerBatch{Remote: resolver.peer, Replicas: []*model.RemoteReplicaState{state}})

	require.True(t, newTok.Equal(state.Token))
	require.Equal(t, 1, pool.checkedIn)
	require.Equal(t, 0, pool.destroyed)
}

func TestRunPeerIterationExchangeErrorDestroysConnection(t *testing.T) {
	partition := types.PartitionID(1)
	store := &fakeStore{}
	state := &model.RemoteReplicaState{
		RemoteReplicaID: types.ReplicaID{Node: types.NodeID(7), Partition: partition},
		LocalReplicaID:  types.ReplicaID{Node: types.NodeID(1), Partition: partition},
		LocalStore:      store,
	}

	ch := &fakeChannel{metaResp: &transport.MetadataResponse{Error: types.ErrorCodeIOError}}
	pool := &fakePool{ch: ch}
	resolver := &fakeResolver{peer: model.PeerNode{ID: types.NodeID(7), Host: "peer", Port: 1, Datacenter: "dc1"}}

	cfg, err := config.New()
	require.NoError(t, err)

	ids := &idgen.Generator{}
	exch := exchanger.New(cfg, ids, pacer.New(cfg), reconciler.New(notify.NoOp{}), model.SegmentOffsetTokenFactory{}, "local")
	fet := fetcher.New(ids, cfg)
	wr := writer.New(cfg, notify.NoOp{})

	w := New(cfg, model.PeerNode{Datacenter: "dc1"}, []*model.RemoteReplicaState{state}, resolver, pool, exch, fet, wr, nil)
	w.runPeerIteration(context.Background(), model.PeerBatch{Remote: resolver.peer, Replicas: []*model.RemoteReplicaState{state}})

	require.Equal(t, 0, pool.checkedIn)
	require.Equal(t, 1, pool.destroyed)
}

func TestShutdownStopsRun(t *testing.T) {
	cfg, err := config.New(config.WithIterationInterval(time.Millisecond))
	require.NoError(t, err)

	resolver := &fakeResolver{}
	pool := &fakePool{ch: &fakeChannel{}}
	ids := &idgen.Generator{}
	exch := exchanger.New(cfg, ids, pacer.New(cfg), reconciler.New(notify.NoOp{}), model.SegmentOffsetTokenFactory{}, "local")
	fet := fetcher.New(ids, cfg)
	wr := writer.New(cfg, notify.NoOp{})

	w := New(cfg, model.PeerNode{}, nil, resolver, pool, exch, fet, wr, nil)

	done := make(chan struct{})
	go func() {
		w.Run(context.Background())
		close(done)
	}()

	require.Eventually(t, w.IsRunning, time.Second, time.Millisecond)
	w.Shutdown()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Run did not return after Shutdown")
	}
	require.False(t, w.IsRunning())
}

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}
