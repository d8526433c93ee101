package mock

import (
	"context"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// Redis is an in-memory stand-in for the go-redis commands used by the
// search cache. Expirations are recorded, not enforced. Safe for concurrent use.
type Redis struct {
	mu   sync.Mutex
	data map[string]string
	ttls map[string]time.Duration
	err  error
	sets int
}

// NewRedis creates an empty Redis.
func NewRedis() *Redis {
	return &Redis{data: map[string]string{}, ttls: map[string]time.Duration{}}
}

// WithError makes every command fail with err.
func (r *Redis) WithError(err error) *Redis {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.err = err
	return r
}

// Get implements the GET command.
func (r *Redis) Get(ctx context.Context, key string) *redis.StringCmd {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.err != nil {
		return redis.NewStringResult("", r.err)
	}
	v, ok := r.data[key]
	if !ok {
		return redis.NewStringResult("", redis.Nil)
	}
	return redis.NewStringResult(v, nil)
}

// Set implements the SET command with an expiration.
func (r *Redis) Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sets++

	if r.err != nil {
		return redis.NewStatusResult("", r.err)
	}
	switch v := value.(type) {
	case []byte:
		r.data[key] = string(v)
	case string:
		r.data[key] = v
	}
	r.ttls[key] = expiration
	return redis.NewStatusResult("OK", nil)
}

// Ping implements the PING command.
func (r *Redis) Ping(ctx context.Context) *redis.StatusCmd {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.err != nil {
		return redis.NewStatusResult("", r.err)
	}
	return redis.NewStatusResult("PONG", nil)
}

// Keys returns the stored keys with their expirations.
func (r *Redis) Keys() map[string]time.Duration {
	r.mu.Lock()
	defer r.mu.Unlock()

	keys := make(map[string]time.Duration, len(r.ttls))
	for k, v := range r.ttls {
		keys[k] = v
	}
	return keys
}

// Sets returns how many SET commands were received.
func (r *Redis) Sets() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.sets
}
