package config

import (
	"time"

	"go.uber.org/zap"

	"github.com/blobstore/replicationworker/pkg/types"
)

// Option mutates a Config under construction. Implementations are built
// with the With* functions below, never directly.
type Option interface {
	apply(*Config)
}

type funcOption struct {
	f func(*Config)
}

func newFuncOption(f func(*Config)) *funcOption {
	return &funcOption{f: f}
}

func (fo *funcOption) apply(cfg *Config) {
	fo.f(cfg)
}

// WithFetchSizeInBytes sets the per-peer metadata exchange byte budget
// (replicationFetchSizeInBytes).
func WithFetchSizeInBytes(n int64) Option {
	return newFuncOption(func(cfg *Config) {
		cfg.fetchSizeInBytes = n
	})
}

// WithConnectionCheckoutTimeout sets how long a peer iteration waits for a
// pooled connection before giving up (replicationConnectionPoolCheckoutTimeoutMs).
func WithConnectionCheckoutTimeout(d time.Duration) Option {
	return newFuncOption(func(cfg *Config) {
		cfg.connectionCheckoutTimeout = d
	})
}

// WithMaxLagForWaitTimeInBytes sets the pacing threshold
// (replicationMaxLagForWaitTimeInBytes): the Pacer only sleeps when the
// peer's reported lag is below this value.
func WithMaxLagForWaitTimeInBytes(n int64) Option {
	return newFuncOption(func(cfg *Config) {
		cfg.maxLagForWaitTimeInBytes = n
	})
}

// WithWaitTimeBetweenReplicas sets the pacing duration
// (replicaWaitTimeBetweenReplicasMs).
func WithWaitTimeBetweenReplicas(d time.Duration) Option {
	return newFuncOption(func(cfg *Config) {
		cfg.waitTimeBetweenReplicas = d
	})
}

// WithSSLEnabledColos sets the set of datacenter names dialed over TLS
// (sslEnabledColos).
func WithSSLEnabledColos(colos ...types.DatacenterID) Option {
	return newFuncOption(func(cfg *Config) {
		set := make(map[types.DatacenterID]struct{}, len(colos))
		for _, c := range colos {
			set[c] = struct{}{}
		}
		cfg.sslEnabledColos = set
	})
}

// WithValidateMessageStream turns on the sieve that filters malformed
// messages out of a get response before it is written (validateMessageStream).
func WithValidateMessageStream(validate bool) Option {
	return newFuncOption(func(cfg *Config) {
		cfg.validateMessageStream = validate
	})
}

// WithIterationInterval sets the delay between one full pass over the peer
// list and the next.
func WithIterationInterval(d time.Duration) Option {
	return newFuncOption(func(cfg *Config) {
		cfg.iterationInterval = d
	})
}

// WithMaxConnections bounds the number of connection checkouts allowed
// outstanding at once, fleet-wide.
func WithMaxConnections(n int64) Option {
	return newFuncOption(func(cfg *Config) {
		cfg.maxConnections = n
	})
}

// WithLogger overrides the no-op default logger.
func WithLogger(logger *zap.Logger) Option {
	return newFuncOption(func(cfg *Config) {
		cfg.logger = logger
	})
}
