// Package redis connects to the Redis server backing the page cache and
// exposes a health check for the readiness endpoint.
//
//	client, err := redis.Connect(ctx, cfg)
//	store := cache.NewRedisStore(client)
package redis
