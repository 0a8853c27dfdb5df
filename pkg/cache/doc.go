// Package cache fronts slow page queries with a short-lived shared cache.
//
// ReadThrough[T] looks a key up in a Store, decodes the JSON value on a hit
// and otherwise runs the compute function, returning its result at once and
// writing it back in the background with a TTL (60s by default). The cache
// is best effort: backend failures and corrupt entries are logged and
// treated as misses.
//
// Keys are built with Key so that reads and writes agree:
//
//	details := cache.NewReadThrough[packages.Details](store, cfg.Options()...)
//	d, hit, err := details.GetOrCompute(ctx, cache.Key(cache.KindPackage, name), func(ctx context.Context) (packages.Details, error) {
//		return svc.Details(ctx, name)
//	})
//
// Two stores are provided: RedisStore for shared deployments and
// MemoryStore, an LRU with per-entry expiry, for single-process runs and tests.
package cache
