package db

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// SeedWork adds stream names to the pending set. SADD is idempotent, so
// a stream already waiting (or re-discovered next cycle) is never
// duplicated; the returned count is the number of newly pended streams.
func SeedWork(ctx context.Context, client *redis.Client, key string, names ...string) (int64, error) {
	if len(names) == 0 {
		return 0, nil
	}
	members := make([]interface{}, len(names))
	for i, name := range names {
		members[i] = name
	}
	added, err := client.SAdd(ctx, key, members...).Result()
	if err != nil {
		return 0, fmt.Errorf("seed work queue: %w", err)
	}
	return added, nil
}
