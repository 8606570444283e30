package jobs

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"

	"github.com/yigit/invigilate/internal/app/services"
	"github.com/yigit/invigilate/internal/pkg/logger"
)

// jobTimeout bounds a single run of any job.
const jobTimeout = 2 * time.Minute

// Manager runs the scheduled background jobs.
type Manager struct {
	cron   *cron.Cron
	exams  services.ExamService
	spec   string
	now    func() time.Time
	logger zerolog.Logger
}

// NewManager creates a job manager. spec is a six-field cron expression
// (seconds first) for the exam completion sweep; an empty spec disables it.
func NewManager(exams services.ExamService, spec string, loc *time.Location, lgr zerolog.Logger) *Manager {
	if loc == nil {
		loc = time.Local
	}
	return &Manager{
		cron:   cron.New(cron.WithSeconds(), cron.WithLocation(loc)),
		exams:  exams,
		spec:   spec,
		now:    time.Now,
		logger: logger.Component(lgr, "jobs"),
	}
}

// Start registers the jobs and starts the scheduler
func (m *Manager) Start() error {
	if m.spec == "" {
		m.logger.Info().Msg("Exam completion sweep disabled")
		return nil
	}

	if _, err := m.cron.AddFunc(m.spec, func() { m.run("complete_exams", m.CompleteExams) }); err != nil {
		return fmt.Errorf("failed to register exam completion job: %w", err)
	}

	m.cron.Start()
	m.logger.Info().Str("schedule", m.spec).Msg("Background jobs started")
	return nil
}

// Stop stops the scheduler and waits for running jobs to finish
func (m *Manager) Stop() {
	ctx := m.cron.Stop()
	<-ctx.Done()
	m.logger.Info().Msg("Background jobs stopped")
}

func (m *Manager) run(name string, job func(ctx context.Context) error) {
	ctx, cancel := context.WithTimeout(context.Background(), jobTimeout)
	defer cancel()

	started := time.Now()
	if err := job(ctx); err != nil {
		m.logger.Error().Err(err).Str("job", name).Dur("took", time.Since(started)).Msg("Job failed")
		return
	}
	m.logger.Debug().Str("job", name).Dur("took", time.Since(started)).Msg("Job finished")
}

// CompleteExams marks every ready exam that has already ended as completed.
func (m *Manager) CompleteExams(ctx context.Context) error {
	n, err := m.exams.CompleteElapsedExams(ctx, m.now())
	if err != nil {
		return err
	}
	if n > 0 {
		m.logger.Info().Int("exams", n).Msg("Completed elapsed exams")
	}
	return nil
}
