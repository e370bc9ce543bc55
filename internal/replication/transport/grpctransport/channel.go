package grpctransport

import (
	"context"

	"google.golang.org/grpc"

	"github.com/blobstore/replicationworker/internal/replication/transport"
)

const (
	methodExchangeMetadata = "/replication.workerpb.Worker/ExchangeMetadata"
	methodGet              = "/replication.workerpb.Worker/Get"
)

// Channel is a transport.Channel backed by one grpc.ClientConn. Requests
// and responses are plain Go structs, marshaled with gobCodec instead of a
// generated protobuf codec.
type Channel struct {
	cc   *grpc.ClientConn
	addr string
}

var _ transport.Channel = (*Channel)(nil)

func newChannel(cc *grpc.ClientConn, addr string) *Channel {
	return &Channel{cc: cc, addr: addr}
}

func (c *Channel) ExchangeMetadata(ctx context.Context, req *transport.MetadataRequest) (*transport.MetadataResponse, error) {
	resp := new(transport.MetadataResponse)
	if err := c.cc.Invoke(ctx, methodExchangeMetadata, req, resp, grpc.ForceCodec(gobCodec{})); err != nil {
		return nil, err
	}
	return resp, nil
}

func (c *Channel) Get(ctx context.Context, req *transport.GetRequest) (*transport.GetResponse, error) {
	resp := new(transport.GetResponse)
	if err := c.cc.Invoke(ctx, methodGet, req, resp, grpc.ForceCodec(gobCodec{})); err != nil {
		return nil, err
	}
	return resp, nil
}
