package jobs

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/robfig/cron/v3"
	"golang.org/x/sync/singleflight"

	"github.com/matchday-lens/core/pkg/logger"
)

const defaultJobTimeout = 10 * time.Minute

type cronJobManager struct {
	cron     *cron.Cron
	jobs     []Job
	logger   *logger.Logger
	inFlight singleflight.Group
	timeout  time.Duration
}

// NewJobManager creates a job manager. Schedules run in UTC. A job whose
// previous run is still in flight is not started again; the tick coalesces
// into the running execution instead.
func NewJobManager(log *logger.Logger) JobManager {
	return &cronJobManager{
		cron:    cron.New(cron.WithLocation(time.UTC)),
		jobs:    make([]Job, 0),
		logger:  log,
		timeout: defaultJobTimeout,
	}
}

func (m *cronJobManager) RegisterJob(job Job) error {
	if job == nil {
		return fmt.Errorf("job cannot be nil")
	}

	m.logger.Info().
		Str("action", "register_job").
		Str("job_name", job.Name()).
		Str("schedule", job.Schedule()).
		Msg("Registering job")

	_, err := m.cron.AddFunc(job.Schedule(), func() {
		m.run(job)
	})
	if err != nil {
		return fmt.Errorf("failed to schedule job %s: %w", job.Name(), err)
	}

	m.jobs = append(m.jobs, job)
	return nil
}

func (m *cronJobManager) run(job Job) {
	_, _, shared := m.inFlight.Do(job.Name(), func() (any, error) {
		requestID := uuid.New().String()
		jobLogger := m.logger.WithRequestID(requestID).WithJob(job.Name())

		ctx, cancel := context.WithTimeout(context.Background(), m.timeout)
		defer cancel()
		ctx = jobLogger.ToContext(ctx)

		jobLogger.LogJobStart(job.Name(), job.Schedule())
		start := time.Now()

		if err := job.Execute(ctx); err != nil {
			jobLogger.Error().
				Err(err).
				Str("action", "job_failed").
				Dur("duration", time.Since(start)).
				Msg("Job execution failed")
			return nil, err
		}

		jobLogger.LogJobComplete(job.Name(), time.Since(start), 0, 0)
		return nil, nil
	})
	if shared {
		m.logger.Warn().
			Str("action", "job_overlap").
			Str("job_name", job.Name()).
			Msg("Previous run still in flight, tick coalesced")
	}
}

func (m *cronJobManager) Start() {
	m.logger.Info().
		Str("action", "manager_start").
		Int("job_count", len(m.jobs)).
		Msg("Starting job manager")
	m.cron.Start()
}

func (m *cronJobManager) Stop() {
	m.logger.Info().Str("action", "manager_stop").Msg("Stopping job manager")
	ctx := m.cron.Stop()
	<-ctx.Done()
	m.logger.Info().Str("action", "manager_stopped").Msg("Job manager stopped")
}

func (m *cronJobManager) GetJobs() []Job {
	return append([]Job(nil), m.jobs...)
}
