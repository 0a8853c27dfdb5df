// Package config loads typed configuration structs from the environment
// using caarlos0/env tags, with optional .env files read through godotenv.
// Each subsystem owns its Config struct (pg.Config, cache.Config, ...) and
// the server loads them one by one at startup.
package config
