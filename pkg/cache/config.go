package cache

import (
	"fmt"
	"time"
)

// Drivers accepted by CACHE_DRIVER.
const (
	DriverRedis  = "redis"
	DriverMemory = "memory"
)

type Config struct {
	Driver         string        `env:"CACHE_DRIVER" envDefault:"redis"`
	TTL            time.Duration `env:"CACHE_TTL" envDefault:"60s"`
	StoreTimeout   time.Duration `env:"CACHE_STORE_TIMEOUT" envDefault:"2s"`
	MemoryCapacity int           `env:"CACHE_MEMORY_CAPACITY" envDefault:"10000"`
}

// NewStoreFromConfig returns the Store selected by cfg.Driver. The redis
// client is required only for the redis driver.
func NewStoreFromConfig(cfg Config, client RedisClient) (Store, error) {
	switch cfg.Driver {
	case DriverRedis, "":
		if client == nil {
			return nil, fmt.Errorf("%w: redis driver needs a client", ErrUnknownDriver)
		}
		return NewRedisStore(client), nil
	case DriverMemory:
		return NewMemoryStore(WithCapacity(cfg.MemoryCapacity)), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownDriver, cfg.Driver)
	}
}

// Options converts cfg into ReadThrough options.
func (cfg Config) Options() []Option {
	return []Option{WithTTL(cfg.TTL), WithStoreTimeout(cfg.StoreTimeout)}
}
