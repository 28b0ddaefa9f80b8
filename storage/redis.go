package storage

import (
	"context"
	"errors"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// Redis is a storage surface backed by a Redis namespace. It is the
// shared-origin analog when the session cache runs outside a single
// process: every client sharing the prefix sees the same values, the way
// sibling tabs share one localStorage.
//
// Backend failures degrade per the [Storage] contract — empty reads and
// dropped writes — and are reported through the logger, never to callers.
// Cross-context tampering on a Redis surface is caught by the periodic
// integrity monitor rather than a change watcher.
type Redis struct {
	client redis.UniversalClient
	prefix string
	log    *zap.Logger
}

// NewRedis returns a Redis-backed surface under the given key prefix.
// A nil logger falls back to zap.NewNop.
func NewRedis(client redis.UniversalClient, prefix string, log *zap.Logger) *Redis {
	if log == nil {
		log = zap.NewNop()
	}
	if prefix == "" {
		prefix = "ak"
	}
	return &Redis{client: client, prefix: prefix, log: log}
}

func (r *Redis) key(k string) string {
	return r.prefix + ":" + k
}

// Get describes the get operation and its observable behavior.
func (r *Redis) Get(key string) (string, bool) {
	v, err := r.client.Get(context.Background(), r.key(key)).Result()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			r.log.Warn("storage read failed", zap.String("key", key), zap.Error(err))
		}
		return "", false
	}
	return v, true
}

// Set describes the set operation and its observable behavior.
func (r *Redis) Set(key, value string) {
	if err := r.client.Set(context.Background(), r.key(key), value, 0).Err(); err != nil {
		r.log.Warn("storage write failed", zap.String("key", key), zap.Error(err))
	}
}

// Remove describes the remove operation and its observable behavior.
func (r *Redis) Remove(key string) {
	if err := r.client.Del(context.Background(), r.key(key)).Err(); err != nil {
		r.log.Warn("storage delete failed", zap.String("key", key), zap.Error(err))
	}
}

// Clear removes every key under the prefix.
func (r *Redis) Clear() {
	ctx := context.Background()
	var cursor uint64
	for {
		keys, next, err := r.client.Scan(ctx, cursor, r.prefix+":*", 1000).Result()
		if err != nil {
			r.log.Warn("storage clear scan failed", zap.Error(err))
			return
		}
		if len(keys) > 0 {
			if err := r.client.Del(ctx, keys...).Err(); err != nil {
				r.log.Warn("storage clear delete failed", zap.Error(err))
				return
			}
		}
		cursor = next
		if cursor == 0 {
			return
		}
	}
}

// Keys lists every key under the prefix, with the prefix stripped.
func (r *Redis) Keys() []string {
	ctx := context.Background()
	var (
		cursor uint64
		out    []string
	)
	for {
		keys, next, err := r.client.Scan(ctx, cursor, r.prefix+":*", 1000).Result()
		if err != nil {
			r.log.Warn("storage keys scan failed", zap.Error(err))
			return out
		}
		for _, k := range keys {
			out = append(out, k[len(r.prefix)+1:])
		}
		cursor = next
		if cursor == 0 {
			return out
		}
	}
}
