package domain

import (
	"time"
)

// Config represents the main application configuration.
type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	Cache     CacheConfig     `mapstructure:"cache"`
	RateLimit RateLimitConfig `mapstructure:"rate_limit"`
	Logging   LoggingConfig   `mapstructure:"logging"`
}

// ServerConfig represents HTTP server configuration.
type ServerConfig struct {
	Host         string        `mapstructure:"host"`
	Port         int           `mapstructure:"port"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	IdleTimeout  time.Duration `mapstructure:"idle_timeout"`
}

// CacheConfig represents assessment cache configuration. The memory tier is
// always on; the Redis tier is optional and disabled unless RedisURL is set.
type CacheConfig struct {
	MemorySize int           `mapstructure:"memory_size"`
	RedisURL   string        `mapstructure:"redis_url"`
	RedisTTL   time.Duration `mapstructure:"redis_ttl"`
}

// RateLimitConfig represents per-client API rate limiting configuration.
type RateLimitConfig struct {
	Enabled           bool `mapstructure:"enabled"`
	RequestsPerSecond int  `mapstructure:"requests_per_second"`
	Burst             int  `mapstructure:"burst"`
}

// LoggingConfig represents logging configuration.
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}
