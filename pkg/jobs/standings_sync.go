package jobs

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/matchday-lens/core/pkg/logger"
	"github.com/matchday-lens/core/pkg/models"
	"github.com/matchday-lens/core/pkg/prefs"
	"github.com/matchday-lens/core/pkg/provider"
	"github.com/matchday-lens/core/pkg/services"
)

// StandingsSyncJob refreshes the league table for every favorite league and
// keeps the latest snapshot in memory for the handlers.
type StandingsSyncJob struct {
	client *provider.Client
	store  prefs.Store
	logger *logger.Logger

	mu        sync.RWMutex
	snapshots map[string][]models.CanonicalStandingRow
}

func NewStandingsSyncJob(client *provider.Client, store prefs.Store, log *logger.Logger) *StandingsSyncJob {
	return &StandingsSyncJob{
		client:    client,
		store:     store,
		logger:    log,
		snapshots: make(map[string][]models.CanonicalStandingRow),
	}
}

func (j *StandingsSyncJob) Name() string {
	return "standings_sync"
}

func (j *StandingsSyncJob) Schedule() string {
	// Tables move slowly outside matchdays
	return "0 */6 * * *"
}

func (j *StandingsSyncJob) Execute(ctx context.Context) error {
	keys, err := j.store.Favorites(ctx, prefs.FavoriteLeague)
	if err != nil {
		return fmt.Errorf("failed to load favorite leagues: %w", err)
	}

	var failures int
	for _, key := range keys {
		leagueID := leagueIDFromIdentityKey(key)
		if leagueID == "" {
			continue
		}

		payload, err := j.client.LeagueTable(ctx, leagueID, "")
		if err != nil {
			failures++
			j.logger.Warn().
				Err(err).
				Str("league", key).
				Msg("Standings fetch failed")
			continue
		}

		rows := services.MapStandingRows(payload)
		if len(rows) == 0 {
			j.logger.LogMergeSkipped("standings", key, "empty table in response")
			continue
		}

		j.mu.Lock()
		j.snapshots[key] = rows
		j.mu.Unlock()
	}

	if failures == len(keys) && len(keys) > 0 {
		return fmt.Errorf("all %d standings fetches failed", failures)
	}
	return nil
}

// Snapshot returns the last synced table for a league identity key.
func (j *StandingsSyncJob) Snapshot(identityKey string) []models.CanonicalStandingRow {
	j.mu.RLock()
	defer j.mu.RUnlock()
	rows := j.snapshots[identityKey]
	out := make([]models.CanonicalStandingRow, len(rows))
	copy(out, rows)
	return out
}

// leagueIDFromIdentityKey pulls the provider id segment out of an
// "id|name|country" identity key.
func leagueIDFromIdentityKey(key string) string {
	parts := strings.SplitN(key, "|", 2)
	if len(parts) == 0 {
		return ""
	}
	return strings.TrimSpace(parts[0])
}
