// Package cache implementa el puerto StatsCache sobre Redis, con una variante
// Noop para entornos sin Redis configurado. Los errores de caché se registran
// y se tragan: una caché caída nunca debe tumbar una petición.
package cache

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"

	"github.com/forkast/branch-ops/internal/application/ports"
)

var _ ports.StatsCache = (*RedisCache)(nil)
var _ ports.StatsCache = (*NoopCache)(nil)

// RedisCache caché de estadísticas sobre Redis.
type RedisCache struct {
	client *redis.Client
}

// NewRedisCache construye la caché y verifica la conexión.
func NewRedisCache(ctx context.Context, addr, password string, db int) (*RedisCache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, err
	}
	return &RedisCache{client: client}, nil
}

func (c *RedisCache) Get(ctx context.Context, key string) ([]byte, bool) {
	val, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		if err != redis.Nil {
			log.Warn().Str("key", key).Err(err).Msg("lectura de caché falló")
		}
		return nil, false
	}
	return val, true
}

func (c *RedisCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) {
	if err := c.client.Set(ctx, key, value, ttl).Err(); err != nil {
		log.Warn().Str("key", key).Err(err).Msg("escritura de caché falló")
	}
}

func (c *RedisCache) Invalidate(ctx context.Context, key string) {
	if err := c.client.Del(ctx, key).Err(); err != nil {
		log.Warn().Str("key", key).Err(err).Msg("invalidación de caché falló")
	}
}

// Close cierra la conexión a Redis.
func (c *RedisCache) Close() error {
	return c.client.Close()
}

// NoopCache caché nula: todo miss, nada persiste. Para entornos sin Redis.
type NoopCache struct{}

// NewNoopCache construye la caché nula.
func NewNoopCache() *NoopCache { return &NoopCache{} }

func (NoopCache) Get(ctx context.Context, key string) ([]byte, bool)                 { return nil, false }
func (NoopCache) Set(ctx context.Context, key string, value []byte, t time.Duration) {}
func (NoopCache) Invalidate(ctx context.Context, key string)                         {}
