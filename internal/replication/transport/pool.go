package transport

import (
	"context"
	"time"
)

// ConnectionKind selects whether a checkout dials over TLS or plaintext.
type ConnectionKind int

const (
	Plaintext ConnectionKind = iota
	SSL
)

func (k ConnectionKind) String() string {
	if k == SSL {
		return "ssl"
	}
	return "plaintext"
}

//go:generate mockgen -package mocks -destination ../mocks/pool_mock.go . ConnectionPool

// ConnectionPool hands out Channels to a peer's (host, port), enforcing a
// checkout timeout and whatever pooling/limiting policy the concrete
// implementation chooses. Exactly one of CheckIn or Destroy must be called
// per successful CheckOut.
type ConnectionPool interface {
	CheckOut(ctx context.Context, host string, port int, kind ConnectionKind, timeout time.Duration) (Channel, error)
	CheckIn(ch Channel)
	Destroy(ch Channel)
}
