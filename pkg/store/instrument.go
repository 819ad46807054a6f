package store

import (
	"context"

	"github.com/matzehuels/forcechart/pkg/errors"
	"github.com/matzehuels/forcechart/pkg/observability"
)

type instrumented struct {
	inner   Store
	backend string
}

// Instrument wraps s so that keys are validated and every operation reports
// to the registered observability.StoreHooks under the given backend name.
func Instrument(s Store, backend string) Store {
	return &instrumented{inner: s, backend: backend}
}

func (s *instrumented) Get(ctx context.Context, key string) ([]byte, bool, error) {
	if err := errors.ValidateStoreKey(key); err != nil {
		return nil, false, err
	}
	data, ok, err := s.inner.Get(ctx, key)
	switch {
	case err != nil:
		observability.Store().OnStoreError(ctx, s.backend, "get", err)
	case ok:
		observability.Store().OnStoreHit(ctx, s.backend)
	default:
		observability.Store().OnStoreMiss(ctx, s.backend)
	}
	return data, ok, err
}

func (s *instrumented) Set(ctx context.Context, key string, data []byte) error {
	if err := errors.ValidateStoreKey(key); err != nil {
		return err
	}
	if err := s.inner.Set(ctx, key, data); err != nil {
		observability.Store().OnStoreError(ctx, s.backend, "set", err)
		return err
	}
	observability.Store().OnStoreSet(ctx, s.backend, len(data))
	return nil
}

func (s *instrumented) Delete(ctx context.Context, key string) error {
	if err := errors.ValidateStoreKey(key); err != nil {
		return err
	}
	if err := s.inner.Delete(ctx, key); err != nil {
		observability.Store().OnStoreError(ctx, s.backend, "delete", err)
		return err
	}
	return nil
}

func (s *instrumented) Close() error { return s.inner.Close() }
