// Package db holds the worker's Work Queue and Rank Store clients. Both
// sit on a shared Redis: the pending set of stream names and the sorted
// set that is the leaderboard.
package db

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// ErrEmptyQueue is returned by Claim when no stream is pending. It is an
// expected outcome, not a failure.
var ErrEmptyQueue = errors.New("work queue is empty")

// Claim atomically removes and returns one pending stream name. SPOP
// guarantees that under concurrent callers each member is handed to
// exactly one of them; claim order is whatever the set gives us.
func Claim(ctx context.Context, client *redis.Client, key string) (string, error) {
	stream, err := client.SPop(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return "", ErrEmptyQueue
	}
	if err != nil {
		return "", fmt.Errorf("claim: %w", err)
	}
	return stream, nil
}

// Queue is a claim handle bound to one pending-set key.
type Queue struct {
	client *redis.Client
	key    string
}

func NewQueue(client *redis.Client, key string) Queue {
	return Queue{client: client, key: key}
}

func (q Queue) Claim(ctx context.Context) (string, error) {
	return Claim(ctx, q.client, q.key)
}

// Ranks is an upsert handle bound to one leaderboard key.
type Ranks struct {
	client *redis.Client
	key    string
}

func NewRanks(client *redis.Client, key string) Ranks {
	return Ranks{client: client, key: key}
}

func (r Ranks) Publish(ctx context.Context, stream string, alive int) error {
	return Publish(ctx, r.client, r.key, stream, alive)
}

// Publish upserts the stream's alive count into the leaderboard. ZADD is
// last-write-wins per member and keeps the set ordered ascending by
// score, so the lowest remaining-player counts always rank first.
func Publish(ctx context.Context, client *redis.Client, key, stream string, alive int) error {
	cmd := client.ZAdd(ctx, key, redis.Z{Score: float64(alive), Member: stream})
	if err := cmd.Err(); err != nil {
		return fmt.Errorf("publish: %w", err)
	}
	return nil
}
