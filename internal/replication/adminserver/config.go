// Package adminserver exposes a worker process's operational surface: a
// plain HTTP endpoint for liveness/shutdown and pprof, multiplexed over the
// same listener as the admin gRPC health service, the way the teacher's
// storagenode.StorageNode pairs its pprof.Server with cmux (internal/storagenode/storagenode.go).
package adminserver

import "time"

const (
	DefaultReadHeaderTimeout = 5 * time.Second
	DefaultWriteTimeout      = 11 * time.Second
	DefaultIdleTimeout       = 120 * time.Second
)

type config struct {
	readHeaderTimeout time.Duration
	writeTimeout      time.Duration
	idleTimeout       time.Duration
}

func newConfig(opts []Option) config {
	cfg := config{
		readHeaderTimeout: DefaultReadHeaderTimeout,
		writeTimeout:      DefaultWriteTimeout,
		idleTimeout:       DefaultIdleTimeout,
	}
	for _, opt := range opts {
		opt.apply(&cfg)
	}
	return cfg
}

type Option interface {
	apply(*config)
}

type funcOption struct {
	f func(*config)
}

func newFuncOption(f func(*config)) *funcOption {
	return &funcOption{f: f}
}

func (fo *funcOption) apply(cfg *config) {
	fo.f(cfg)
}

func WithReadHeaderTimeout(d time.Duration) Option {
	return newFuncOption(func(cfg *config) { cfg.readHeaderTimeout = d })
}

func WithWriteTimeout(d time.Duration) Option {
	return newFuncOption(func(cfg *config) { cfg.writeTimeout = d })
}

func WithIdleTimeout(d time.Duration) Option {
	return newFuncOption(func(cfg *config) { cfg.idleTimeout = d })
}
