package rpc

import "google.golang.org/grpc"

// NewServer calls grpc.NewServer, centralizing server construction so
// shared ServerOptions (interceptors, codecs) stay in one place.
func NewServer(opts ...grpc.ServerOption) *grpc.Server {
	return grpc.NewServer(opts...)
}
