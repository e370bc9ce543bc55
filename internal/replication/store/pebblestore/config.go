package pebblestore

import "go.uber.org/zap"

const defaultMaxOpenFiles = 1000

type config struct {
	maxOpenFiles int
	syncWAL      bool
	logger       *zap.Logger
}

func newConfig(opts []Option) config {
	cfg := config{
		maxOpenFiles: defaultMaxOpenFiles,
		logger:       zap.NewNop(),
	}
	for _, opt := range opts {
		opt.apply(&cfg)
	}
	return cfg
}

// Option configures Open.
type Option interface {
	apply(*config)
}

type funcOption struct {
	f func(*config)
}

func (fo *funcOption) apply(cfg *config) {
	fo.f(cfg)
}

func newFuncOption(f func(*config)) *funcOption {
	return &funcOption{f: f}
}

// WithMaxOpenFiles bounds the number of file descriptors pebble may hold
// open at once.
func WithMaxOpenFiles(n int) Option {
	return newFuncOption(func(cfg *config) {
		cfg.maxOpenFiles = n
	})
}

// WithSyncWAL forces every write batch to fsync its WAL entry before
// Commit returns.
func WithSyncWAL(sync bool) Option {
	return newFuncOption(func(cfg *config) {
		cfg.syncWAL = sync
	})
}

// WithLogger overrides the no-op default logger.
func WithLogger(logger *zap.Logger) Option {
	return newFuncOption(func(cfg *config) {
		cfg.logger = logger
	})
}
