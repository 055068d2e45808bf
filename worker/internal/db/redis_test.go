package db

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func newTestRedis(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()
	mr := miniredis.RunT(t)
	return mr, redis.NewClient(&redis.Options{Addr: mr.Addr()})
}

func TestClaim_Empty(t *testing.T) {
	_, client := newTestRedis(t)

	_, err := Claim(context.Background(), client, "work")
	if !errors.Is(err, ErrEmptyQueue) {
		t.Fatalf("expected ErrEmptyQueue, got %v", err)
	}
}

func TestClaim_RemovesFromPendingSet(t *testing.T) {
	mr, client := newTestRedis(t)
	mr.SetAdd("work", "streamA")

	stream, err := Claim(context.Background(), client, "work")
	if err != nil {
		t.Fatalf("claim: %v", err)
	}
	if stream != "streamA" {
		t.Fatalf("claimed %q, want streamA", stream)
	}
	if _, err := Claim(context.Background(), client, "work"); !errors.Is(err, ErrEmptyQueue) {
		t.Fatal("claimed stream should have been removed from the pending set")
	}
}

// Seed K unique streams, claim from N goroutines: every stream must be
// claimed exactly once and the total number of successful claims is K.
func TestClaim_ConcurrentClaimsAreExclusive(t *testing.T) {
	mr, client := newTestRedis(t)

	const workers = 8
	streams := []string{"a", "b", "c", "d", "e", "f", "g", "h", "i", "j", "k", "l"}
	mr.SetAdd("work", streams...)

	var mu sync.Mutex
	claimed := make(map[string]int)

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for {
				stream, err := Claim(context.Background(), client, "work")
				if errors.Is(err, ErrEmptyQueue) {
					return
				}
				if err != nil {
					t.Errorf("claim: %v", err)
					return
				}
				mu.Lock()
				claimed[stream]++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	if len(claimed) != len(streams) {
		t.Fatalf("claimed %d unique streams, want %d", len(claimed), len(streams))
	}
	for stream, n := range claimed {
		if n != 1 {
			t.Errorf("stream %q claimed %d times", stream, n)
		}
	}
}

func TestPublish_Upsert(t *testing.T) {
	mr, client := newTestRedis(t)
	ctx := context.Background()

	if err := Publish(ctx, client, "stream-by-alive", "streamA", 42); err != nil {
		t.Fatalf("publish: %v", err)
	}
	if err := Publish(ctx, client, "stream-by-alive", "streamA", 42); err != nil {
		t.Fatalf("publish: %v", err)
	}

	members, err := mr.ZMembers("stream-by-alive")
	if err != nil {
		t.Fatalf("zmembers: %v", err)
	}
	if len(members) != 1 {
		t.Fatalf("duplicate publish should keep one entry, got %d", len(members))
	}

	// Last write wins.
	if err := Publish(ctx, client, "stream-by-alive", "streamA", 7); err != nil {
		t.Fatalf("publish: %v", err)
	}
	score, err := mr.ZScore("stream-by-alive", "streamA")
	if err != nil {
		t.Fatalf("zscore: %v", err)
	}
	if score != 7 {
		t.Fatalf("score = %v, want 7", score)
	}
}

func TestPublish_OrderedAscending(t *testing.T) {
	mr, client := newTestRedis(t)
	ctx := context.Background()

	for stream, alive := range map[string]int{"x": 100, "y": 3, "z": 57} {
		if err := Publish(ctx, client, "stream-by-alive", stream, alive); err != nil {
			t.Fatalf("publish: %v", err)
		}
	}

	members, err := mr.ZMembers("stream-by-alive")
	if err != nil {
		t.Fatalf("zmembers: %v", err)
	}
	want := []string{"y", "z", "x"}
	for i, m := range members {
		if m != want[i] {
			t.Fatalf("order = %v, want %v", members, want)
		}
	}
}
