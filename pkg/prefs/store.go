// Package prefs persists user preferences and the shared logo cache.
// Favorites are stored as identity keys so they survive provider id churn.
package prefs

import "context"

// FavoriteKind distinguishes what an identity key refers to.
type FavoriteKind string

const (
	FavoriteTeam   FavoriteKind = "team"
	FavoriteLeague FavoriteKind = "league"
)

// Store is the persistence interface the services and jobs depend on.
type Store interface {
	// Favorites returns the identity keys of one kind, insertion-ordered.
	Favorites(ctx context.Context, kind FavoriteKind) ([]string, error)
	// AddFavorite records an identity key; adding an existing key is a no-op.
	AddFavorite(ctx context.Context, kind FavoriteKind, identityKey string) error
	// RemoveFavorite deletes an identity key; removing an absent key is a no-op.
	RemoveFavorite(ctx context.Context, kind FavoriteKind, identityKey string) error
	// IsFavorite reports whether the identity key is stored.
	IsFavorite(ctx context.Context, kind FavoriteKind, identityKey string) (bool, error)

	// LogoCache returns the full slug-to-URL cache.
	LogoCache(ctx context.Context) (map[string]string, error)
	// MergeLogos applies sanitized updates to the cache. Existing entries are
	// only replaced when overrideExisting is set.
	MergeLogos(ctx context.Context, updates map[string]any, overrideExisting bool) error

	Close()
}
