package jobs

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/matchday-lens/core/pkg/jsonx"
	"github.com/matchday-lens/core/pkg/logger"
	"github.com/matchday-lens/core/pkg/models"
	"github.com/matchday-lens/core/pkg/provider"
	"github.com/matchday-lens/core/pkg/services"
)

// LiveScoresSyncJob polls the current day's fixtures and logs every score
// transition since the previous cycle.
type LiveScoresSyncJob struct {
	client *provider.Client
	logger *logger.Logger

	mu         sync.Mutex
	cycle      int
	lastScores map[string]string
}

func NewLiveScoresSyncJob(client *provider.Client, log *logger.Logger) Job {
	return &LiveScoresSyncJob{
		client:     client,
		logger:     log,
		lastScores: make(map[string]string),
	}
}

func (j *LiveScoresSyncJob) Name() string {
	return "live_scores_sync"
}

func (j *LiveScoresSyncJob) Schedule() string {
	// Tight interval so score changes surface quickly
	return "@every 1m"
}

func (j *LiveScoresSyncJob) Execute(ctx context.Context) error {
	start := time.Now()
	today := time.Now().UTC().Format("2006-01-02")

	payload, err := j.client.ListEvents(ctx, "", today, today)
	if err != nil {
		return fmt.Errorf("failed to fetch live events: %w", err)
	}

	rows := jsonx.ObjectRows(jsonx.AsArray(payload))
	fixtures := make([]models.CanonicalFixture, 0, len(rows))
	for _, row := range rows {
		fixtures = append(fixtures, services.MapFixture(row))
	}
	fixtures = services.SortFixtures(services.DedupFixtures(fixtures))

	changed := 0
	j.mu.Lock()
	// Rebuild the snapshot each cycle so fixtures that left the live
	// window are dropped rather than accumulating forever.
	current := make(map[string]string, len(fixtures))
	for _, f := range fixtures {
		score := f.HomeScore + "-" + f.AwayScore
		key := f.Key()
		if prev, ok := j.lastScores[key]; ok && prev != score {
			j.logger.LogScoreChange(f.ID, f.HomeTeam, f.AwayTeam, prev, score)
			changed++
		}
		current[key] = score
	}
	j.lastScores = current
	j.cycle++
	cycle := j.cycle
	j.mu.Unlock()

	j.logger.LogPollCycle(cycle, len(fixtures), changed, time.Since(start))
	return nil
}
