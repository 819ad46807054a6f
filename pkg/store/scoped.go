package store

import "context"

// Scoped prefixes every key of an inner store. Several boards can then
// share one Redis database or Mongo collection.
type Scoped struct {
	inner  Store
	prefix string
}

// NewScoped wraps inner so that key k is stored as namespace+":"+k.
func NewScoped(inner Store, namespace string) *Scoped {
	return &Scoped{inner: inner, prefix: namespace + ":"}
}

// Get implements Store.
func (s *Scoped) Get(ctx context.Context, key string) ([]byte, bool, error) {
	return s.inner.Get(ctx, s.prefix+key)
}

// Set implements Store.
func (s *Scoped) Set(ctx context.Context, key string, data []byte) error {
	return s.inner.Set(ctx, s.prefix+key, data)
}

// Delete implements Store.
func (s *Scoped) Delete(ctx context.Context, key string) error {
	return s.inner.Delete(ctx, s.prefix+key)
}

// Close closes the inner store.
func (s *Scoped) Close() error { return s.inner.Close() }

var _ Store = (*Scoped)(nil)
