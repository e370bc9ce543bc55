package fetcher

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/blobstore/replicationworker/internal/replication/config"
	"github.com/blobstore/replicationworker/internal/replication/idgen"
	"github.com/blobstore/replicationworker/internal/replication/mocks"
	"github.com/blobstore/replicationworker/internal/replication/model"
	"github.com/blobstore/replicationworker/internal/replication/transport"
	"github.com/blobstore/replicationworker/pkg/types"
)

type fakeChannel struct {
	getReq  *transport.GetRequest
	getResp *transport.GetResponse
	getErr  error
}

func (c *fakeChannel) ExchangeMetadata(ctx context.Context, req *transport.MetadataRequest) (*transport.MetadataResponse, error) {
	return nil, nil
}

func (c *fakeChannel) Get(ctx context.Context, req *transport.GetRequest) (*transport.GetResponse, error) {
	c.getReq = req
	return c.getResp, c.getErr
}

func key(b byte) model.BlobKey {
	return model.NewBlobKey(types.PartitionID(1), [16]byte{b})
}

func testBatch() model.PeerBatch {
	p1 := types.PartitionID(1)
	p2 := types.PartitionID(2)
	return model.PeerBatch{
		Remote: model.PeerNode{ID: types.NodeID(7)},
		Replicas: []*model.RemoteReplicaState{
			{RemoteReplicaID: types.ReplicaID{Node: types.NodeID(7), Partition: p1}, LocalReplicaID: types.ReplicaID{Node: types.NodeID(1), Partition: p1}},
			{RemoteReplicaID: types.ReplicaID{Node: types.NodeID(7), Partition: p2}, LocalReplicaID: types.ReplicaID{Node: types.NodeID(1), Partition: p2}},
		},
	}
}

func TestFetchConsolidatesMissingKeysByPartition(t *testing.T) {
	cfg, err := config.New()
	require.NoError(t, err)
	f := New(&idgen.Generator{}, cfg)
	batch := testBatch()
	results := []model.ExchangeMetadataResult{
		model.OkExchangeResult([]model.BlobKey{key(1)}, nil),
		model.OkExchangeResult([]model.BlobKey{key(2)}, nil),
	}

	ch := &fakeChannel{getResp: &transport.GetResponse{Error: types.NoError}}
	resp, err := f.Fetch(context.Background(), ch, batch, results)
	require.NoError(t, err)
	require.NotNil(t, resp)
	require.Len(t, ch.getReq.Partitions, 2)
}

func TestFetchSkipsErrorAndEmptySlots(t *testing.T) {
	cfg, err := config.New()
	require.NoError(t, err)
	f := New(&idgen.Generator{}, cfg)
	batch := testBatch()
	results := []model.ExchangeMetadataResult{
		model.ErrExchangeResult(types.ErrorCodeIOError),
		model.OkExchangeResult(nil, nil),
	}

	ch := &fakeChannel{getResp: &transport.GetResponse{Error: types.NoError}}
	resp, err := f.Fetch(context.Background(), ch, batch, results)
	require.NoError(t, err)
	require.Nil(t, resp)
}

func TestFetchTopLevelErrorFails(t *testing.T) {
	cfg, err := config.New()
	require.NoError(t, err)
	f := New(&idgen.Generator{}, cfg)
	batch := testBatch()
	results := []model.ExchangeMetadataResult{
		model.OkExchangeResult([]model.BlobKey{key(1)}, nil),
		model.OkExchangeResult(nil, nil),
	}

	ch := &fakeChannel{getResp: &transport.GetResponse{Error: types.ErrorCodeIOError}}
	_, err = f.Fetch(context.Background(), ch, batch, results)
	require.Error(t, err)
}

func TestFetchUsesMockChannel(t *testing.T) {
	ctrl := gomock.NewController(t)
	ch := mocks.NewMockChannel(ctrl)

	cfg, err := config.New()
	require.NoError(t, err)
	f := New(&idgen.Generator{}, cfg)
	batch := testBatch()
	results := []model.ExchangeMetadataResult{
		model.OkExchangeResult([]model.BlobKey{key(1)}, nil),
		model.OkExchangeResult(nil, nil),
	}

	ch.EXPECT().
		Get(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, req *transport.GetRequest) (*transport.GetResponse, error) {
			require.Len(t, req.Partitions, 1)
			return &transport.GetResponse{Error: types.NoError}, nil
		})

	resp, err := f.Fetch(context.Background(), ch, batch, results)
	require.NoError(t, err)
	require.NotNil(t, resp)
}
