// Package store persists flowchart documents.
//
// A [Store] is a small key-value interface. The editor keeps one document
// under graph.StorageKey and writes it after every change; a store never
// interprets the bytes it holds.
//
// # Backends
//
//   - [FileStore]: one file per key under the user's data directory (default)
//   - [MemoryStore]: in-process map for tests and --no-store sessions
//   - [NullStore]: discards writes; used when viewing a remote board
//   - [RedisStore]: shared boards on a Redis server
//   - [MongoStore]: shared boards in a MongoDB collection
//
// [Open] selects a backend from a [Config], wraps it with key validation and
// observability hooks, and applies the optional namespace.
//
// # Concurrency
//
// All backends are safe for concurrent use.
package store

import (
	"context"
	"fmt"
	"strings"

	"github.com/matzehuels/forcechart/pkg/errors"
)

// Store is a key-value store for serialized documents.
type Store interface {
	// Get returns the value for key. A missing key is (nil, false, nil).
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores data under key, replacing any previous value.
	Set(ctx context.Context, key string, data []byte) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}

// Backend names accepted by [Open].
const (
	BackendFile   = "file"
	BackendMemory = "memory"
	BackendNull   = "null"
	BackendRedis  = "redis"
	BackendMongo  = "mongo"
)

// Backends lists every backend name, in the order shown to users.
var Backends = []string{BackendFile, BackendMemory, BackendNull, BackendRedis, BackendMongo}

// Config selects and configures a backend.
type Config struct {
	Backend string

	// Dir is the FileStore directory. Empty means [DefaultDir].
	Dir string

	// RedisURL is a redis:// or rediss:// URL.
	RedisURL string

	// MongoURI, MongoDatabase and MongoCollection locate the MongoStore
	// collection.
	MongoURI        string
	MongoDatabase   string
	MongoCollection string

	// Namespace, if set, prefixes every key so several boards can share one
	// backend.
	Namespace string
}

// Open creates the backend named by cfg.Backend.
func Open(ctx context.Context, cfg Config) (Store, error) {
	var (
		s   Store
		err error
	)
	switch strings.ToLower(cfg.Backend) {
	case "", BackendFile:
		s, err = NewFileStore(cfg.Dir)
	case BackendMemory:
		s = NewMemoryStore()
	case BackendNull:
		s = NewNullStore()
	case BackendRedis:
		s, err = NewRedisStore(ctx, cfg.RedisURL)
	case BackendMongo:
		s, err = NewMongoStore(ctx, cfg.MongoURI, cfg.MongoDatabase, cfg.MongoCollection)
	default:
		return nil, errors.New(errors.ErrCodeUnsupported, "unknown storage backend %q (want one of %s)", cfg.Backend, strings.Join(Backends, ", "))
	}
	if err != nil {
		return nil, fmt.Errorf("open %s store: %w", backendName(cfg.Backend), err)
	}
	if cfg.Namespace != "" {
		s = NewScoped(s, cfg.Namespace)
	}
	return Instrument(s, backendName(cfg.Backend)), nil
}

func backendName(b string) string {
	if b == "" {
		return BackendFile
	}
	return strings.ToLower(b)
}
