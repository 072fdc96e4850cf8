package cache

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// FavoritesKV adapts Redis to the favorites key-value contract. Entries
// carry no TTL; a visitor's shortlist survives until they clear it.
type FavoritesKV struct {
	client *redis.Client
}

func NewFavoritesKV(client *redis.Client) *FavoritesKV {
	return &FavoritesKV{client: client}
}

func (kv *FavoritesKV) Get(ctx context.Context, key string) (string, bool, error) {
	value, err := kv.client.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("favorites get: %w", err)
	}
	return value, true, nil
}

func (kv *FavoritesKV) Set(ctx context.Context, key, value string) error {
	if err := kv.client.Set(ctx, key, value, 0).Err(); err != nil {
		return fmt.Errorf("favorites set: %w", err)
	}
	return nil
}
