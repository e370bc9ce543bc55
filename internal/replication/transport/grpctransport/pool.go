// Package grpctransport is the concrete transport.ConnectionPool/Channel
// backed by google.golang.org/grpc: it owns dialing, credentials, and
// connection lifecycle, while payloads are marshaled with gobCodec.
package grpctransport

import (
	"context"
	"crypto/tls"
	"fmt"
	"sync"
	"time"

	"golang.org/x/sync/semaphore"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials"
	"google.golang.org/grpc/credentials/insecure"

	"github.com/blobstore/replicationworker/internal/replication/transport"
)

// Pool is a transport.ConnectionPool that dials one grpc.ClientConn per
// (addr, kind) and reuses it across checkouts, while bounding the number of
// outstanding checkouts fleet-wide with a weighted semaphore.
type Pool struct {
	sem *semaphore.Weighted

	mu    sync.Mutex
	conns map[string]*grpc.ClientConn
}

var _ transport.ConnectionPool = (*Pool)(nil)

// NewPool builds a Pool that allows at most maxConnections outstanding
// checkouts at once.
func NewPool(maxConnections int64) *Pool {
	return &Pool{
		sem:   semaphore.NewWeighted(maxConnections),
		conns: make(map[string]*grpc.ClientConn),
	}
}

func connKey(host string, port int, kind transport.ConnectionKind) string {
	return fmt.Sprintf("%s:%d/%s", host, port, kind)
}

func (p *Pool) CheckOut(ctx context.Context, host string, port int, kind transport.ConnectionKind, timeout time.Duration) (transport.Channel, error) {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	if err := p.sem.Acquire(ctx, 1); err != nil {
		return nil, fmt.Errorf("grpctransport: checkout %s:%d: %w", host, port, err)
	}

	cc, err := p.getOrDial(ctx, host, port, kind)
	if err != nil {
		p.sem.Release(1)
		return nil, err
	}
	return newChannel(cc, connKey(host, port, kind)), nil
}

func (p *Pool) getOrDial(ctx context.Context, host string, port int, kind transport.ConnectionKind) (*grpc.ClientConn, error) {
	key := connKey(host, port, kind)

	p.mu.Lock()
	if cc, ok := p.conns[key]; ok {
		p.mu.Unlock()
		return cc, nil
	}
	p.mu.Unlock()

	creds := transportCredentials(kind)
	addr := fmt.Sprintf("%s:%d", host, port)
	cc, err := grpc.DialContext(ctx, addr, grpc.WithTransportCredentials(creds))
	if err != nil {
		return nil, fmt.Errorf("grpctransport: dial %s: %w", addr, err)
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	if existing, ok := p.conns[key]; ok {
		_ = cc.Close()
		return existing, nil
	}
	p.conns[key] = cc
	return cc, nil
}

func transportCredentials(kind transport.ConnectionKind) credentials.TransportCredentials {
	if kind == transport.SSL {
		return credentials.NewTLS(&tls.Config{MinVersion: tls.VersionTLS12})
	}
	return insecure.NewCredentials()
}

// CheckIn releases the checkout slot, keeping the underlying connection
// cached for reuse.
func (p *Pool) CheckIn(ch transport.Channel) {
	p.sem.Release(1)
}

// Destroy releases the checkout slot and closes the underlying connection,
// forcing the next checkout for this (host, port, kind) to redial.
func (p *Pool) Destroy(ch transport.Channel) {
	defer p.sem.Release(1)

	c, ok := ch.(*Channel)
	if !ok {
		return
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	if cc, ok := p.conns[c.addr]; ok {
		delete(p.conns, c.addr)
		_ = cc.Close()
	}
}
