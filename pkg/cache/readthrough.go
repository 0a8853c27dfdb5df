package cache

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/dmitrymomot/pkgindex/pkg/async"
	"github.com/dmitrymomot/pkgindex/pkg/logger"
)

const (
	DefaultTTL          = 60 * time.Second
	DefaultStoreTimeout = 2 * time.Second
)

// ReadThrough serves JSON encoded values of type T from a Store and falls
// back to a compute function on a miss. Cache failures never reach the
// caller: a backend error or an undecodable entry is handled as a miss.
// Writes happen in the background after the computed value is returned.
type ReadThrough[T any] struct {
	store  Store
	ttl    time.Duration
	logger *slog.Logger
	writes *async.Runner
}

// Option configures a ReadThrough.
type Option func(*options)

type options struct {
	ttl          time.Duration
	storeTimeout time.Duration
	logger       *slog.Logger
	runner       *async.Runner
}

// WithTTL sets the entry lifetime. Non-positive values are ignored.
func WithTTL(ttl time.Duration) Option {
	return func(o *options) {
		if ttl > 0 {
			o.ttl = ttl
		}
	}
}

// WithStoreTimeout bounds each background write.
func WithStoreTimeout(d time.Duration) Option {
	return func(o *options) {
		if d > 0 {
			o.storeTimeout = d
		}
	}
}

func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

// WithRunner shares a background runner between accessors so that a single
// Wait drains all pending writes.
func WithRunner(r *async.Runner) Option {
	return func(o *options) {
		if r != nil {
			o.runner = r
		}
	}
}

func NewReadThrough[T any](store Store, opts ...Option) *ReadThrough[T] {
	o := options{
		ttl:          DefaultTTL,
		storeTimeout: DefaultStoreTimeout,
		logger:       slog.Default(),
	}
	for _, opt := range opts {
		opt(&o)
	}
	if o.runner == nil {
		o.runner = async.NewRunner("cache",
			async.WithTimeout(o.storeTimeout),
			async.WithLogger(o.logger),
		)
	}

	return &ReadThrough[T]{
		store:  store,
		ttl:    o.ttl,
		logger: o.logger,
		writes: o.runner,
	}
}

// TTL returns the entry lifetime.
func (c *ReadThrough[T]) TTL() time.Duration {
	return c.ttl
}

// GetOrCompute returns the cached value for key, or calls compute and
// schedules storing its result. The boolean reports a cache hit. A compute
// error is returned as is and nothing is stored.
func (c *ReadThrough[T]) GetOrCompute(ctx context.Context, key string, compute func(context.Context) (T, error)) (T, bool, error) {
	if v, ok := c.lookup(ctx, key); ok {
		return v, true, nil
	}

	v, err := compute(ctx)
	if err != nil {
		var zero T
		return zero, false, err
	}

	c.storeAsync(ctx, key, v)
	return v, false, nil
}

// Invalidate removes key from the store. Failures are logged.
func (c *ReadThrough[T]) Invalidate(ctx context.Context, key string) {
	if err := c.store.Delete(ctx, key); err != nil {
		c.logger.WarnContext(ctx, "cache delete failed", logger.Component("cache"), logger.CacheKey(key), logger.Error(err))
	}
}

// Wait blocks until every scheduled write has finished.
func (c *ReadThrough[T]) Wait() {
	c.writes.Wait()
}

func (c *ReadThrough[T]) lookup(ctx context.Context, key string) (T, bool) {
	var zero T

	raw, err := c.store.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, ErrMiss) {
			c.logger.WarnContext(ctx, "cache read failed", logger.Component("cache"), logger.CacheKey(key), logger.Error(err))
		}
		return zero, false
	}

	var v T
	if err := json.Unmarshal(raw, &v); err != nil {
		c.logger.WarnContext(ctx, "cache entry corrupt", logger.Component("cache"), logger.CacheKey(key), logger.Error(err))
		return zero, false
	}
	return v, true
}

func (c *ReadThrough[T]) storeAsync(ctx context.Context, key string, v T) {
	raw, err := json.Marshal(v)
	if err != nil {
		c.logger.WarnContext(ctx, "cache encode failed", logger.Component("cache"), logger.CacheKey(key), logger.Error(err))
		return
	}

	c.writes.Go(ctx, "store "+key, func(ctx context.Context) error {
		return c.store.Set(ctx, key, raw, c.ttl)
	})
}
