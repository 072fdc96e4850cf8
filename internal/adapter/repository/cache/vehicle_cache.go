// Package cache holds the Redis-backed adapters: the vehicle read-through
// cache, the favorites key-value store and the session token blacklist.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/SainteOfficial/autohaus-service/internal/inventory/domain"
)

const (
	vehicleKeyPrefix = "vehicle:"
	catalogKey       = "vehicles:all"
	defaultTTL       = time.Hour
)

// VehicleCache caches single vehicles and the full catalog snapshot. All
// methods treat redis.Nil as a miss, never an error.
type VehicleCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewVehicleCache(client *redis.Client) *VehicleCache {
	return &VehicleCache{client: client, ttl: defaultTTL}
}

func (c *VehicleCache) GetVehicle(ctx context.Context, id string) (*domain.Vehicle, error) {
	data, err := c.client.Get(ctx, vehicleKeyPrefix+id).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("cache get vehicle: %w", err)
	}

	var vehicle domain.Vehicle
	if err := json.Unmarshal(data, &vehicle); err != nil {
		// A corrupt entry reads as a miss; the next write repairs it.
		return nil, nil
	}
	return &vehicle, nil
}

func (c *VehicleCache) SetVehicle(ctx context.Context, vehicle *domain.Vehicle) error {
	data, err := json.Marshal(vehicle)
	if err != nil {
		return fmt.Errorf("cache marshal vehicle: %w", err)
	}
	return c.client.Set(ctx, vehicleKeyPrefix+vehicle.ID, data, c.ttl).Err()
}

func (c *VehicleCache) GetAll(ctx context.Context) ([]*domain.Vehicle, error) {
	data, err := c.client.Get(ctx, catalogKey).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("cache get catalog: %w", err)
	}

	var vehicles []*domain.Vehicle
	if err := json.Unmarshal(data, &vehicles); err != nil {
		return nil, nil
	}
	return vehicles, nil
}

func (c *VehicleCache) SetAll(ctx context.Context, vehicles []*domain.Vehicle) error {
	data, err := json.Marshal(vehicles)
	if err != nil {
		return fmt.Errorf("cache marshal catalog: %w", err)
	}
	return c.client.Set(ctx, catalogKey, data, c.ttl).Err()
}

// Invalidate drops both the single entry and the catalog snapshot, since
// any vehicle write changes the snapshot too.
func (c *VehicleCache) Invalidate(ctx context.Context, id string) error {
	keys := []string{catalogKey}
	if id != "" {
		keys = append(keys, vehicleKeyPrefix+id)
	}
	return c.client.Del(ctx, keys...).Err()
}
