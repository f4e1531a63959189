package redis

import (
	"context"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
)

func TestIdempotencyStore_KeyFormat(t *testing.T) {
	s := NewIdempotencyStore(nil, time.Minute)
	if got := s.key("task", "req-1"); got != "idempotency:task:req-1" {
		t.Fatalf("unexpected key %q", got)
	}
}

func TestIdempotencyStore_DefaultTTL(t *testing.T) {
	if s := NewIdempotencyStore(nil, 0); s.ttl != defaultIdempotencyTTL {
		t.Fatalf("expected default ttl, got %v", s.ttl)
	}
}

func TestIdempotencyStore_LookupSurfacesConnectionErrors(t *testing.T) {
	client := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 50 * time.Millisecond,
		MaxRetries:  -1,
	})
	defer client.Close()

	s := NewIdempotencyStore(client, time.Minute)
	if _, found, err := s.Lookup(context.Background(), "user", "k"); err == nil || found {
		t.Fatalf("expected connection error, got found=%v err=%v", found, err)
	}
}
