package jobs

import (
	"context"
	"fmt"
	"strings"

	"github.com/matchday-lens/core/pkg/jsonx"
	"github.com/matchday-lens/core/pkg/logger"
	"github.com/matchday-lens/core/pkg/prefs"
	"github.com/matchday-lens/core/pkg/provider"
	"github.com/matchday-lens/core/pkg/utils"
)

var teamLogoKeys = []string{"team_logo", "logo", "badge", "image_path", "crest"}

// LogoEnrichmentJob fills cache gaps for favorite teams: it fetches team
// details for every favorite whose slug has no cached logo and merges the
// sanitized results into the shared cache.
type LogoEnrichmentJob struct {
	client *provider.Client
	store  prefs.Store
	logger *logger.Logger
}

func NewLogoEnrichmentJob(client *provider.Client, store prefs.Store, log *logger.Logger) Job {
	return &LogoEnrichmentJob{client: client, store: store, logger: log}
}

func (j *LogoEnrichmentJob) Name() string {
	return "logo_enrichment"
}

func (j *LogoEnrichmentJob) Schedule() string {
	// Nightly, off-peak
	return "0 3 * * *"
}

func (j *LogoEnrichmentJob) Execute(ctx context.Context) error {
	favorites, err := j.store.Favorites(ctx, prefs.FavoriteTeam)
	if err != nil {
		return fmt.Errorf("failed to load favorite teams: %w", err)
	}
	cache, err := j.store.LogoCache(ctx)
	if err != nil {
		return fmt.Errorf("failed to load logo cache: %w", err)
	}

	updates := make(map[string]any)
	for _, key := range favorites {
		teamID, slug := splitTeamIdentity(key)
		if teamID == "" || slug == "" {
			continue
		}
		if _, ok := cache[slug]; ok {
			continue
		}

		payload, err := j.client.GetTeam(ctx, teamID)
		if err != nil {
			j.logger.Warn().
				Err(err).
				Str("team", key).
				Msg("Team fetch failed during logo enrichment")
			continue
		}

		obj := firstTeamObject(payload)
		if obj == nil {
			continue
		}
		if logo, ok := jsonx.PickString(obj, teamLogoKeys...); ok {
			updates[slug] = logo
		}
	}

	if len(updates) == 0 {
		return nil
	}
	if err := j.store.MergeLogos(ctx, updates, false); err != nil {
		return fmt.Errorf("failed to merge logos: %w", err)
	}
	j.logger.Info().
		Str("action", "logo_enrichment").
		Int("updates", len(updates)).
		Msg("Logo cache enriched")
	return nil
}

// firstTeamObject accepts both a bare team object and a one-element list.
func firstTeamObject(payload any) map[string]any {
	if rows := jsonx.ObjectRows(jsonx.AsArray(payload)); len(rows) > 0 {
		return rows[0]
	}
	return jsonx.AsObject(payload)
}

// splitTeamIdentity pulls the provider id and the name slug out of an
// "id|name|country" identity key.
func splitTeamIdentity(key string) (id, slug string) {
	parts := strings.Split(key, "|")
	if len(parts) < 2 {
		return "", ""
	}
	return strings.TrimSpace(parts[0]), utils.NormalizeSlug(parts[1])
}
