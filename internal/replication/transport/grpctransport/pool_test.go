package grpctransport

import (
	"context"
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"

	"github.com/blobstore/replicationworker/internal/replication/transport"
)

func newTestGRPCServer(t *testing.T) (host string, port int, stop func()) {
	t.Helper()
	lis, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	server := grpc.NewServer(
		grpc.ForceServerCodec(gobCodec{}),
		grpc.UnknownServiceHandler(func(srv interface{}, stream grpc.ServerStream) error {
			req := new(transport.MetadataRequest)
			if err := stream.RecvMsg(req); err != nil {
				return err
			}
			return stream.SendMsg(&transport.MetadataResponse{})
		}),
	)
	go func() { _ = server.Serve(lis) }()

	tcpAddr := lis.Addr().(*net.TCPAddr)
	return "127.0.0.1", tcpAddr.Port, server.Stop
}

func TestPoolCheckOutCheckIn(t *testing.T) {
	host, port, stop := newTestGRPCServer(t)
	defer stop()

	pool := NewPool(4)
	ch, err := pool.CheckOut(context.Background(), host, port, transport.Plaintext, time.Second)
	require.NoError(t, err)
	require.NotNil(t, ch)

	_, err = ch.ExchangeMetadata(context.Background(), &transport.MetadataRequest{})
	require.NoError(t, err)

	pool.CheckIn(ch)

	// a second checkout for the same address reuses the cached connection
	ch2, err := pool.CheckOut(context.Background(), host, port, transport.Plaintext, time.Second)
	require.NoError(t, err)
	assert.Equal(t, ch.(*Channel).addr, ch2.(*Channel).addr)
	pool.CheckIn(ch2)
}

func TestPoolCheckOutTimeoutWhenExhausted(t *testing.T) {
	host, port, stop := newTestGRPCServer(t)
	defer stop()

	pool := NewPool(1)
	ch, err := pool.CheckOut(context.Background(), host, port, transport.Plaintext, time.Second)
	require.NoError(t, err)

	_, err = pool.CheckOut(context.Background(), host, port, transport.Plaintext, 20*time.Millisecond)
	assert.Error(t, err)

	pool.CheckIn(ch)
}

func TestPoolDestroyForcesRedial(t *testing.T) {
	host, port, stop := newTestGRPCServer(t)
	defer stop()

	pool := NewPool(4)
	ch, err := pool.CheckOut(context.Background(), host, port, transport.Plaintext, time.Second)
	require.NoError(t, err)
	pool.Destroy(ch)

	assert.NotContains(t, pool.conns, connKey(host, port, transport.Plaintext))
}

func TestConnKeyStable(t *testing.T) {
	assert.Equal(t, connKey("h", 1, transport.Plaintext), connKey("h", 1, transport.Plaintext))
	assert.NotEqual(t, connKey("h", 1, transport.Plaintext), connKey("h", 1, transport.SSL))
}
