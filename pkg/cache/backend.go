package cache

import (
	"context"
	"fmt"
	"time"
)

// Backend stores probe results between runs.
type Backend interface {
	// Get returns (value, found, error).
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Close() error
}

// Settings selects and tunes the cache backend.
type Settings struct {
	// Backend is "memory", "redis" or "none".
	Backend  string
	RedisURL string
	Prefix   string
	TTL      time.Duration
}

func DefaultSettings() Settings {
	return Settings{
		Backend: "memory",
		Prefix:  "webvitals:",
		TTL:     15 * time.Minute,
	}
}

// New builds the backend named in settings. A nil Backend with nil error
// means caching is disabled.
func New(settings Settings) (Backend, error) {
	switch settings.Backend {
	case "", "none":
		return nil, nil
	case "memory":
		return NewMemoryCache(time.Minute), nil
	case "redis":
		if settings.RedisURL == "" {
			return nil, fmt.Errorf("redis cache requires a redis url")
		}
		return NewRedisCache(settings.RedisURL, settings.Prefix)
	default:
		return nil, fmt.Errorf("unsupported cache backend %q", settings.Backend)
	}
}
