package memory

import (
	"context"
	"time"

	"github.com/patrickmn/go-cache"
	"github.com/redis/go-redis/v9"
)

// TokenCache holds recently resolved access-token -> login pairs so that each
// request does not round-trip to the identity provider. Entries expire; token
// revocation is therefore observed within the TTL window.
type TokenCache interface {
	Get(ctx context.Context, token string) (string, bool)
	Save(ctx context.Context, token, login string)
	Delete(ctx context.Context, token string)
}

const tokenCacheTTL = 10 * time.Minute

// InMemoryTokenCache is the default single-process backend.
type InMemoryTokenCache struct {
	cache *cache.Cache
}

func NewInMemoryTokenCache() *InMemoryTokenCache {
	c := cache.New(tokenCacheTTL, 10*time.Minute)
	return &InMemoryTokenCache{
		cache: c,
	}
}

func (r *InMemoryTokenCache) Get(ctx context.Context, token string) (string, bool) {
	if x, found := r.cache.Get(token); found {
		return x.(string), true
	}
	return "", false
}

func (r *InMemoryTokenCache) Save(ctx context.Context, token, login string) {
	r.cache.Set(token, login, cache.DefaultExpiration)
}

func (r *InMemoryTokenCache) Delete(ctx context.Context, token string) {
	r.cache.Delete(token)
}

// RedisTokenCache shares resolved tokens across instances.
type RedisTokenCache struct {
	rdb    *redis.Client
	prefix string
}

func NewRedisTokenCache(rdb *redis.Client) *RedisTokenCache {
	return &RedisTokenCache{
		rdb:    rdb,
		prefix: "token_login:",
	}
}

func (r *RedisTokenCache) Get(ctx context.Context, token string) (string, bool) {
	val, err := r.rdb.Get(ctx, r.prefix+token).Result()
	if err != nil {
		return "", false
	}
	return val, true
}

func (r *RedisTokenCache) Save(ctx context.Context, token, login string) {
	r.rdb.Set(ctx, r.prefix+token, login, tokenCacheTTL)
}

func (r *RedisTokenCache) Delete(ctx context.Context, token string) {
	r.rdb.Del(ctx, r.prefix+token)
}
