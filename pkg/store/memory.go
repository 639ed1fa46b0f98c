package store

import (
	"context"
	"slices"
	"sync"

	errs "github.com/matzehuels/wirechain/pkg/errors"
)

// MemoryStore keeps assets in a map.
type MemoryStore struct {
	mu     sync.RWMutex
	assets map[string]Asset
}

// NewMemoryStore returns an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{assets: make(map[string]Asset)}
}

// Save stores a copy of a, replacing any asset with the same hash.
func (s *MemoryStore) Save(ctx context.Context, a Asset) error {
	if err := errs.ValidateAssetKey(a.Hash); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.assets[a.Hash] = cloneAsset(a)
	return nil
}

// Load returns the asset stored under hash.
func (s *MemoryStore) Load(ctx context.Context, hash string) (Asset, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	a, ok := s.assets[hash]
	if !ok {
		return Asset{}, errs.New(errs.ErrCodeNotFound, "decomposition %s not found", hash)
	}
	return cloneAsset(a), nil
}

// Delete removes the asset stored under hash.
func (s *MemoryStore) Delete(ctx context.Context, hash string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.assets, hash)
	return nil
}

// Len returns the number of stored assets.
func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.assets)
}

// Close does nothing.
func (s *MemoryStore) Close(ctx context.Context) error { return nil }

func cloneAsset(a Asset) Asset {
	a.Indices = slices.Clone(a.Indices)
	a.Offsets = slices.Clone(a.Offsets)
	a.Closed = slices.Clone(a.Closed)
	return a
}

var _ Store = (*MemoryStore)(nil)
