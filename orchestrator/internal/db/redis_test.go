package db

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func TestSeedWork(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	ctx := context.Background()

	added, err := SeedWork(ctx, client, "work", "a", "b", "c")
	if err != nil {
		t.Fatalf("seed: %v", err)
	}
	if added != 3 {
		t.Fatalf("added = %d, want 3", added)
	}

	// Re-seeding pending streams is a no-op.
	added, err = SeedWork(ctx, client, "work", "a", "b", "d")
	if err != nil {
		t.Fatalf("seed: %v", err)
	}
	if added != 1 {
		t.Fatalf("added = %d, want 1", added)
	}

	members, err := mr.Members("work")
	if err != nil {
		t.Fatal(err)
	}
	if len(members) != 4 {
		t.Fatalf("pending set has %d members, want 4", len(members))
	}
}

func TestSeedWork_NoNames(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})

	added, err := SeedWork(context.Background(), client, "work")
	if err != nil || added != 0 {
		t.Fatalf("empty seed: added=%d err=%v", added, err)
	}
}
