package orchestrator

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

type fakeLister struct {
	names []string
	err   error
}

func (f fakeLister) LiveStreams(context.Context, string, int) ([]string, error) {
	return f.names, f.err
}

type fakeRegistry struct {
	sightings []string
}

func (f *fakeRegistry) RecordSighting(_ context.Context, name string, _ time.Time) error {
	f.sightings = append(f.sightings, name)
	return nil
}

func TestRunCycle_SeedsQueueAndRegistry(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	registry := &fakeRegistry{}

	svc := New(fakeLister{names: []string{"streamA", "streamB"}}, registry, client,
		"work", "PUBG", 100, time.Minute, zap.NewNop())

	found, err := svc.RunCycle(context.Background())
	if err != nil {
		t.Fatalf("cycle: %v", err)
	}
	if found != 2 {
		t.Fatalf("found = %d, want 2", found)
	}

	members, err := mr.Members("work")
	if err != nil || len(members) != 2 {
		t.Fatalf("pending set = %v (%v)", members, err)
	}
	if len(registry.sightings) != 2 {
		t.Fatalf("sightings = %v", registry.sightings)
	}
}

func TestRunCycle_ListerFailure(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})

	svc := New(fakeLister{err: errors.New("api down")}, &fakeRegistry{}, client,
		"work", "PUBG", 100, time.Minute, zap.NewNop())

	if _, err := svc.RunCycle(context.Background()); err == nil {
		t.Fatal("expected error when the provider API fails")
	}
	if members, _ := mr.Members("work"); len(members) != 0 {
		t.Fatalf("no streams should be pended on failure, got %v", members)
	}
}
