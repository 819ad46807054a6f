//go:build integration

package store

import (
	"context"
	"os"
	"testing"
	"time"
)

func TestRedisStore_Integration(t *testing.T) {
	url := os.Getenv("FORCECHART_TEST_REDIS_URL")
	if url == "" {
		t.Skip("FORCECHART_TEST_REDIS_URL not set")
	}
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	s, err := NewRedisStore(ctx, url)
	if err != nil {
		t.Fatalf("NewRedisStore() error: %v", err)
	}
	defer s.Close()
	exerciseStore(t, NewScoped(s, "forcechart-test"))
}

func TestMongoStore_Integration(t *testing.T) {
	uri := os.Getenv("FORCECHART_TEST_MONGO_URI")
	if uri == "" {
		t.Skip("FORCECHART_TEST_MONGO_URI not set")
	}
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	s, err := NewMongoStore(ctx, uri, "forcechart_test", "documents")
	if err != nil {
		t.Fatalf("NewMongoStore() error: %v", err)
	}
	defer s.Close()
	exerciseStore(t, s)
}
