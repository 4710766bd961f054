package prefs

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/matchday-lens/core/pkg/logger"
	"github.com/matchday-lens/core/pkg/services"
)

// PostgresStore is a Store backed by two key-value tables.
type PostgresStore struct {
	pool   *pgxpool.Pool
	logger *logger.Logger
}

func NewPostgresStore(pool *pgxpool.Pool, log *logger.Logger) *PostgresStore {
	return &PostgresStore{pool: pool, logger: log}
}

// EnsureSchema creates the backing tables when they do not exist yet.
func (s *PostgresStore) EnsureSchema(ctx context.Context) error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS favorites (
			kind TEXT NOT NULL,
			identity_key TEXT NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
			PRIMARY KEY (kind, identity_key)
		)`,
		`CREATE TABLE IF NOT EXISTS logo_cache (
			slug TEXT PRIMARY KEY,
			url TEXT NOT NULL,
			updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)`,
	}
	for _, stmt := range statements {
		if _, err := s.pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("failed to ensure schema: %w", err)
		}
	}
	return nil
}

func (s *PostgresStore) Favorites(ctx context.Context, kind FavoriteKind) ([]string, error) {
	start := time.Now()
	rows, err := s.pool.Query(ctx,
		`SELECT identity_key FROM favorites WHERE kind = $1 ORDER BY created_at`, string(kind))
	s.logOp("select", "favorites", 0, start, err)
	if err != nil {
		return nil, fmt.Errorf("failed to list favorites: %w", err)
	}
	defer rows.Close()

	var keys []string
	for rows.Next() {
		var key string
		if err := rows.Scan(&key); err != nil {
			return nil, fmt.Errorf("failed to scan favorite: %w", err)
		}
		keys = append(keys, key)
	}
	return keys, rows.Err()
}

func (s *PostgresStore) AddFavorite(ctx context.Context, kind FavoriteKind, identityKey string) error {
	start := time.Now()
	tag, err := s.pool.Exec(ctx,
		`INSERT INTO favorites (kind, identity_key) VALUES ($1, $2)
		 ON CONFLICT (kind, identity_key) DO NOTHING`, string(kind), identityKey)
	s.logOp("insert", "favorites", int(tag.RowsAffected()), start, err)
	if err != nil {
		return fmt.Errorf("failed to add favorite: %w", err)
	}
	return nil
}

func (s *PostgresStore) RemoveFavorite(ctx context.Context, kind FavoriteKind, identityKey string) error {
	start := time.Now()
	tag, err := s.pool.Exec(ctx,
		`DELETE FROM favorites WHERE kind = $1 AND identity_key = $2`, string(kind), identityKey)
	s.logOp("delete", "favorites", int(tag.RowsAffected()), start, err)
	if err != nil {
		return fmt.Errorf("failed to remove favorite: %w", err)
	}
	return nil
}

func (s *PostgresStore) IsFavorite(ctx context.Context, kind FavoriteKind, identityKey string) (bool, error) {
	var exists bool
	err := s.pool.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM favorites WHERE kind = $1 AND identity_key = $2)`,
		string(kind), identityKey).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check favorite: %w", err)
	}
	return exists, nil
}

func (s *PostgresStore) LogoCache(ctx context.Context) (map[string]string, error) {
	start := time.Now()
	rows, err := s.pool.Query(ctx, `SELECT slug, url FROM logo_cache`)
	s.logOp("select", "logo_cache", 0, start, err)
	if err != nil {
		return nil, fmt.Errorf("failed to load logo cache: %w", err)
	}
	defer rows.Close()

	cache := make(map[string]string)
	for rows.Next() {
		var slug, url string
		if err := rows.Scan(&slug, &url); err != nil {
			return nil, fmt.Errorf("failed to scan logo row: %w", err)
		}
		cache[slug] = url
	}
	return cache, rows.Err()
}

// MergeLogos runs the merge in memory against the current cache, then writes
// back only the rows the merge actually changed.
func (s *PostgresStore) MergeLogos(ctx context.Context, updates map[string]any, overrideExisting bool) error {
	prev, err := s.LogoCache(ctx)
	if err != nil {
		return err
	}

	merged := services.MergeLogoCache(prev, updates, overrideExisting)
	if len(merged) == len(prev) {
		changed := false
		for k, v := range merged {
			if prev[k] != v {
				changed = true
				break
			}
		}
		if !changed {
			return nil
		}
	}

	batch := &pgx.Batch{}
	for slug, url := range merged {
		if prev[slug] == url {
			continue
		}
		batch.Queue(
			`INSERT INTO logo_cache (slug, url, updated_at) VALUES ($1, $2, now())
			 ON CONFLICT (slug) DO UPDATE SET url = EXCLUDED.url, updated_at = now()`,
			slug, url)
	}

	start := time.Now()
	results := s.pool.SendBatch(ctx, batch)
	defer func() { _ = results.Close() }()
	for i := 0; i < batch.Len(); i++ {
		if _, err := results.Exec(); err != nil {
			s.logOp("upsert", "logo_cache", i, start, err)
			return fmt.Errorf("failed to upsert logo: %w", err)
		}
	}
	s.logOp("upsert", "logo_cache", batch.Len(), start, nil)
	return nil
}

func (s *PostgresStore) Close() {
	s.pool.Close()
}

func (s *PostgresStore) logOp(operation, table string, affected int, start time.Time, err error) {
	if s.logger != nil {
		s.logger.LogDatabaseOperation(operation, table, affected, time.Since(start), err)
	}
}
