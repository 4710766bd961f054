package prefs

import (
	"context"
	"sync"

	"github.com/matchday-lens/core/pkg/services"
)

// MemoryStore is a Store backed by process memory. It is used in tests and
// when no DATABASE_URL is configured.
type MemoryStore struct {
	mu        sync.RWMutex
	favorites map[FavoriteKind][]string
	logos     map[string]string
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		favorites: make(map[FavoriteKind][]string),
		logos:     make(map[string]string),
	}
}

func (m *MemoryStore) Favorites(ctx context.Context, kind FavoriteKind) ([]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	keys := make([]string, len(m.favorites[kind]))
	copy(keys, m.favorites[kind])
	return keys, nil
}

func (m *MemoryStore) AddFavorite(ctx context.Context, kind FavoriteKind, identityKey string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, key := range m.favorites[kind] {
		if key == identityKey {
			return nil
		}
	}
	m.favorites[kind] = append(m.favorites[kind], identityKey)
	return nil
}

func (m *MemoryStore) RemoveFavorite(ctx context.Context, kind FavoriteKind, identityKey string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	keys := m.favorites[kind]
	for i, key := range keys {
		if key == identityKey {
			m.favorites[kind] = append(keys[:i], keys[i+1:]...)
			return nil
		}
	}
	return nil
}

func (m *MemoryStore) IsFavorite(ctx context.Context, kind FavoriteKind, identityKey string) (bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, key := range m.favorites[kind] {
		if key == identityKey {
			return true, nil
		}
	}
	return false, nil
}

func (m *MemoryStore) LogoCache(ctx context.Context) (map[string]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make(map[string]string, len(m.logos))
	for k, v := range m.logos {
		out[k] = v
	}
	return out, nil
}

func (m *MemoryStore) MergeLogos(ctx context.Context, updates map[string]any, overrideExisting bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.logos = services.MergeLogoCache(m.logos, updates, overrideExisting)
	return nil
}

func (m *MemoryStore) Close() {}
