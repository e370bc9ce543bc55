package etcdmap

// Option configures a Resolver.
type Option interface {
	apply(*Resolver)
}

type funcOption struct {
	f func(*Resolver)
}

func (fo *funcOption) apply(r *Resolver) {
	fo.f(r)
}

func newFuncOption(f func(*Resolver)) *funcOption {
	return &funcOption{f: f}
}

// WithKeyPrefix overrides the default etcd key prefix nodes are published
// under.
func WithKeyPrefix(prefix string) Option {
	return newFuncOption(func(r *Resolver) {
		r.keyPrefix = prefix
	})
}
