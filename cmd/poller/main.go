package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/matchday-lens/core/internal/config"
	"github.com/matchday-lens/core/pkg/database/pool"
	"github.com/matchday-lens/core/pkg/jobs"
	"github.com/matchday-lens/core/pkg/logger"
	"github.com/matchday-lens/core/pkg/prefs"
	"github.com/matchday-lens/core/pkg/provider"
)

func main() {
	var (
		jobName = flag.String("job", "", "Run specific job once (live_scores, standings, logos)")
		once    = flag.Bool("once", false, "Run job once and exit")
	)
	flag.Parse()

	logger.SetupLogger()
	log := logger.New("poller-service")

	cfg := config.Load()

	store, err := newStore(cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize preference store")
	}
	defer store.Close()

	client := provider.NewClient(cfg, log)

	liveScoresJob := jobs.NewLiveScoresSyncJob(client, log)
	standingsJob := jobs.NewStandingsSyncJob(client, store, log)
	logosJob := jobs.NewLogoEnrichmentJob(client, store, log)

	jobManager := jobs.NewJobManager(log)
	for _, job := range []jobs.Job{liveScoresJob, standingsJob, logosJob} {
		if err := jobManager.RegisterJob(job); err != nil {
			log.Fatal().Err(err).Str("job_name", job.Name()).Msg("Failed to register job")
		}
	}

	if *once && *jobName != "" {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
		defer cancel()

		var job jobs.Job
		switch *jobName {
		case "live_scores":
			job = liveScoresJob
		case "standings":
			job = standingsJob
		case "logos":
			job = logosJob
		default:
			log.Fatalf("Unknown job: %s. Available jobs: live_scores, standings, logos", *jobName)
		}

		log.Info().Str("job_name", job.Name()).Msg("Running job once")
		if err := job.Execute(ctx); err != nil {
			log.Fatal().Err(err).Str("job_name", job.Name()).Msg("Job failed")
		}
		log.Info().Str("job_name", job.Name()).Msg("Job completed")
		return
	}

	jobManager.Start()
	log.Info().Int("job_count", len(jobManager.GetJobs())).Msg("Poller service started")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down poller service")
	jobManager.Stop()
	log.Info().Msg("Poller service stopped")
}

func newStore(cfg *config.Config, log *logger.Logger) (prefs.Store, error) {
	if os.Getenv("DATABASE_URL") == "" && os.Getenv("DB_HOST") == "" {
		log.Info().Msg("No database configured, using in-memory preference store")
		return prefs.NewMemoryStore(), nil
	}

	ctx := context.Background()
	dbPool, err := pool.New(ctx, cfg.DatabaseURL(), nil)
	if err != nil {
		return nil, err
	}

	store := prefs.NewPostgresStore(dbPool, log)
	if err := store.EnsureSchema(ctx); err != nil {
		store.Close()
		return nil, err
	}
	return store, nil
}
