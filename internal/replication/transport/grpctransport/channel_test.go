package grpctransport

import (
	"context"
	"net"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/test/bufconn"

	"github.com/blobstore/replicationworker/internal/replication/transport"
	"github.com/blobstore/replicationworker/pkg/types"
)

func dialBufconn(t *testing.T, lis *bufconn.Listener) *grpc.ClientConn {
	t.Helper()
	cc, err := grpc.DialContext(context.Background(), "bufconn",
		grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) { return lis.DialContext(ctx) }),
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	require.NoError(t, err)
	return cc
}

// There is no generated .proto service for these wire messages, so the test
// server registers its handler as grpc's generic fallback and decodes with
// the same gobCodec the real Channel uses, rather than a typed service.
func TestChannelExchangeMetadataRoundTrip(t *testing.T) {
	lis := bufconn.Listen(1 << 20)
	server := grpc.NewServer(
		grpc.ForceServerCodec(gobCodec{}),
		grpc.UnknownServiceHandler(func(srv interface{}, stream grpc.ServerStream) error {
			method, ok := grpc.MethodFromServerStream(stream)
			require.True(t, ok)
			assert.Equal(t, methodExchangeMetadata, method)

			req := new(transport.MetadataRequest)
			require.NoError(t, stream.RecvMsg(req))
			assert.Equal(t, int64(42), req.CorrelationID)

			resp := &transport.MetadataResponse{
				Error: types.NoError,
				Replicas: []transport.PartitionMetadataResponse{
					{PartitionID: 1, Error: types.NoError, NewToken: []byte{1, 2, 3}},
				},
			}
			return stream.SendMsg(resp)
		}),
	)
	go func() { _ = server.Serve(lis) }()
	defer server.Stop()

	cc := dialBufconn(t, lis)
	defer func() { _ = cc.Close() }()

	ch := newChannel(cc, "bufconn")
	resp, err := ch.ExchangeMetadata(context.Background(), &transport.MetadataRequest{CorrelationID: 42})
	require.NoError(t, err)
	assert.Equal(t, types.NoError, resp.Error)
	require.Len(t, resp.Replicas, 1)
	assert.Equal(t, []byte{1, 2, 3}, resp.Replicas[0].NewToken)
}
