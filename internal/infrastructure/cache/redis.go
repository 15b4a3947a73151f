package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
	"github.com/tu-usuario/inventory-core/internal/application/inventory"
)

var _ inventory.SnapshotCache = (*RedisCache)(nil)

// RedisCache cache de snapshots sobre Redis, para despliegues con varios
// lectores del mismo cache. Valores JSON, sin TTL: cada mutación sobrescribe
// la clave, así que no hace falta expiración para la corrección.
type RedisCache struct {
	client *redis.Client
}

// NewRedisCache construye el adaptador sobre un cliente ya configurado.
func NewRedisCache(client *redis.Client) *RedisCache {
	return &RedisCache{client: client}
}

func redisKey(productID, locationID string) string {
	return fmt.Sprintf("inventory:snapshot:%s:%s", productID, locationID)
}

func (c *RedisCache) Get(ctx context.Context, productID, locationID string) (*inventory.Snapshot, bool, error) {
	raw, err := c.client.Get(ctx, redisKey(productID, locationID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("get snapshot: %w", err)
	}
	var snap inventory.Snapshot
	if err := json.Unmarshal(raw, &snap); err != nil {
		return nil, false, fmt.Errorf("decode snapshot: %w", err)
	}
	return &snap, true, nil
}

func (c *RedisCache) Set(ctx context.Context, snapshot *inventory.Snapshot) error {
	raw, err := json.Marshal(snapshot)
	if err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}
	if err := c.client.Set(ctx, redisKey(snapshot.ProductID, snapshot.LocationID), raw, 0).Err(); err != nil {
		return fmt.Errorf("set snapshot: %w", err)
	}
	return nil
}
