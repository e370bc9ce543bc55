package transport

import "context"

//go:generate mockgen -package mocks -destination ../mocks/channel_mock.go . Channel

// Channel is one checked-out connection to a peer. A failure observed on
// send, receive, or decode means the channel must be destroyed, never
// checked back in; a clean call sequence means it can be reused.
type Channel interface {
	ExchangeMetadata(ctx context.Context, req *MetadataRequest) (*MetadataResponse, error)
	Get(ctx context.Context, req *GetRequest) (*GetResponse, error)
}
