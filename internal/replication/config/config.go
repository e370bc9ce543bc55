// Package config holds the replication worker's tunables: pacing, fetch
// budgets, connection limits, and the colo/validation switches that change
// per-peer behavior. Values are immutable once New returns.
package config

import (
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/blobstore/replicationworker/pkg/types"
)

const (
	DefaultFetchSizeInBytes            = 4 << 20  // 4MiB
	DefaultConnectionCheckoutTimeout   = 5 * time.Second
	DefaultMaxLagForWaitTimeInBytes    = 50 << 20 // 50MiB
	DefaultWaitTimeBetweenReplicas     = 0
	DefaultIterationInterval           = time.Second
	DefaultMaxConnections        int64 = 64
)

// Config is the immutable, validated configuration for one worker or
// worker group. Build it with New and a list of Options.
type Config struct {
	fetchSizeInBytes          int64
	connectionCheckoutTimeout time.Duration
	maxLagForWaitTimeInBytes  int64
	waitTimeBetweenReplicas   time.Duration
	sslEnabledColos           map[types.DatacenterID]struct{}
	validateMessageStream     bool
	iterationInterval         time.Duration
	maxConnections            int64
	logger                    *zap.Logger
}

// New builds a Config from the given options, applying defaults first and
// validating the result.
func New(opts ...Option) (Config, error) {
	cfg := Config{
		fetchSizeInBytes:          DefaultFetchSizeInBytes,
		connectionCheckoutTimeout: DefaultConnectionCheckoutTimeout,
		maxLagForWaitTimeInBytes:  DefaultMaxLagForWaitTimeInBytes,
		waitTimeBetweenReplicas:   DefaultWaitTimeBetweenReplicas,
		sslEnabledColos:           make(map[types.DatacenterID]struct{}),
		iterationInterval:         DefaultIterationInterval,
		maxConnections:            DefaultMaxConnections,
		logger:                    zap.NewNop(),
	}
	for _, opt := range opts {
		opt.apply(&cfg)
	}
	return cfg, cfg.validate()
}

func (cfg Config) validate() error {
	if cfg.fetchSizeInBytes <= 0 {
		return errors.New("config: fetchSizeInBytes must be positive")
	}
	if cfg.connectionCheckoutTimeout <= 0 {
		return errors.New("config: connectionCheckoutTimeout must be positive")
	}
	if cfg.maxLagForWaitTimeInBytes < 0 {
		return errors.New("config: maxLagForWaitTimeInBytes must not be negative")
	}
	if cfg.waitTimeBetweenReplicas < 0 {
		return errors.New("config: waitTimeBetweenReplicas must not be negative")
	}
	if cfg.iterationInterval <= 0 {
		return errors.New("config: iterationInterval must be positive")
	}
	if cfg.maxConnections <= 0 {
		return errors.New("config: maxConnections must be positive")
	}
	if cfg.logger == nil {
		return errors.New("config: logger must not be nil")
	}
	return nil
}

func (cfg Config) FetchSizeInBytes() int64 { return cfg.fetchSizeInBytes }

func (cfg Config) ConnectionCheckoutTimeout() time.Duration { return cfg.connectionCheckoutTimeout }

func (cfg Config) MaxLagForWaitTimeInBytes() int64 { return cfg.maxLagForWaitTimeInBytes }

func (cfg Config) WaitTimeBetweenReplicas() time.Duration { return cfg.waitTimeBetweenReplicas }

func (cfg Config) ValidateMessageStream() bool { return cfg.validateMessageStream }

func (cfg Config) IterationInterval() time.Duration { return cfg.iterationInterval }

func (cfg Config) MaxConnections() int64 { return cfg.maxConnections }

func (cfg Config) Logger() *zap.Logger { return cfg.logger }

// IsSSLEnabledColo reports whether peers in dc should be dialed over TLS.
func (cfg Config) IsSSLEnabledColo(dc types.DatacenterID) bool {
	_, ok := cfg.sslEnabledColos[dc]
	return ok
}

func (cfg Config) String() string {
	return fmt.Sprintf(
		"fetchSizeInBytes=%d checkoutTimeout=%s maxLagForWaitTimeInBytes=%d waitTimeBetweenReplicas=%s "+
			"validateMessageStream=%t iterationInterval=%s maxConnections=%d sslEnabledColos=%d",
		cfg.fetchSizeInBytes, cfg.connectionCheckoutTimeout, cfg.maxLagForWaitTimeInBytes,
		cfg.waitTimeBetweenReplicas, cfg.validateMessageStream, cfg.iterationInterval,
		cfg.maxConnections, len(cfg.sslEnabledColos),
	)
}
