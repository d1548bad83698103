// Package scheduler runs the periodic background jobs of the CMS on robfig/cron.
// Each job is executed once per active tenant with a per-run timeout.
package scheduler

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// JobStatus represents the outcome of a job run
type JobStatus string

const (
	JobStatusRunning JobStatus = "RUNNING"
	JobStatusSuccess JobStatus = "SUCCESS"
	JobStatusFailed  JobStatus = "FAILED"
)

// TenantProvider lists the tenants jobs iterate over
type TenantProvider interface {
	FindActiveIDs(ctx context.Context) ([]uuid.UUID, error)
}

// Job is one unit of periodic work for a single tenant
type Job interface {
	Name() string
	// Run processes one tenant and returns how many items it touched
	Run(ctx context.Context, tenantID uuid.UUID, now time.Time) (int, error)
}

// RunRecord describes the latest run of a job across all tenants
type RunRecord struct {
	Job       string        `json:"job"`
	Status    JobStatus     `json:"status"`
	StartedAt time.Time     `json:"started_at"`
	Duration  time.Duration `json:"duration"`
	Tenants   int           `json:"tenants"`
	Processed int           `json:"processed"`
	Failures  int           `json:"failures"`
	LastError string        `json:"last_error,omitempty"`
	NextRunAt *time.Time    `json:"next_run_at,omitempty"`
	entryID   cron.EntryID
}

// Config holds scheduler settings
type Config struct {
	// JobTimeout bounds one job run for one tenant
	JobTimeout time.Duration
	Location   *time.Location
}

// DefaultConfig returns the scheduler defaults
func DefaultConfig() Config {
	return Config{
		JobTimeout: 5 * time.Minute,
		Location:   time.UTC,
	}
}

// Scheduler wires jobs into a cron instance
type Scheduler struct {
	cron    *cron.Cron
	tenants TenantProvider
	config  Config
	logger  *zap.Logger
	now     func() time.Time

	mu   sync.RWMutex
	jobs map[string]Job
	runs map[string]*RunRecord
}

// New creates a scheduler. Overlapping runs of the same job are skipped and
// panics inside a job are recovered and logged.
func New(cfg Config, tenants TenantProvider, logger *zap.Logger) *Scheduler {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.JobTimeout <= 0 {
		cfg.JobTimeout = DefaultConfig().JobTimeout
	}
	if cfg.Location == nil {
		cfg.Location = time.UTC
	}
	logger = logger.Named("scheduler")
	cronLogger := zapCronLogger{logger: logger}

	return &Scheduler{
		cron: cron.New(
			cron.WithLocation(cfg.Location),
			cron.WithLogger(cronLogger),
			cron.WithChain(cron.Recover(cronLogger), cron.SkipIfStillRunning(cronLogger)),
		),
		tenants: tenants,
		config:  cfg,
		logger:  logger,
		now:     time.Now,
		jobs:    make(map[string]Job),
		runs:    make(map[string]*RunRecord),
	}
}

// Register schedules job on a standard five field cron spec
func (s *Scheduler) Register(spec string, job Job) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.jobs[job.Name()]; exists {
		return fmt.Errorf("%w: %s", ErrDuplicateJob, job.Name())
	}

	entryID, err := s.cron.AddFunc(spec, func() {
		_ = s.RunNow(context.Background(), job.Name())
	})
	if err != nil {
		return fmt.Errorf("%w %q for %s: %v", ErrInvalidSchedule, spec, job.Name(), err)
	}

	s.jobs[job.Name()] = job
	s.runs[job.Name()] = &RunRecord{Job: job.Name(), entryID: entryID}
	s.logger.Info("Job registered", zap.String("job", job.Name()), zap.String("schedule", spec))
	return nil
}

// Start begins firing registered jobs in the background
func (s *Scheduler) Start() {
	s.cron.Start()
	s.logger.Info("Scheduler started", zap.Int("jobs", len(s.jobs)))
}

// Stop stops firing jobs and waits for running ones, or for ctx to expire
func (s *Scheduler) Stop(ctx context.Context) error {
	done := s.cron.Stop()
	select {
	case <-done.Done():
		s.logger.Info("Scheduler stopped")
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// RunNow executes a job for every active tenant in the calling goroutine.
// Failures for one tenant do not stop the others; the joined error is returned.
func (s *Scheduler) RunNow(ctx context.Context, name string) error {
	s.mu.RLock()
	job, ok := s.jobs[name]
	s.mu.RUnlock()
	if !ok {
		return fmt.Errorf("%w: %s", ErrJobNotFound, name)
	}

	started := s.now()
	s.updateRun(name, func(r *RunRecord) {
		r.Status = JobStatusRunning
		r.StartedAt = started
	})

	tenantIDs, err := s.tenants.FindActiveIDs(ctx)
	if err != nil {
		s.finishRun(name, started, 0, 0, 1, err)
		s.logger.Error("Job could not list tenants", zap.String("job", name), zap.Error(err))
		return fmt.Errorf("list tenants for %s: %w", name, err)
	}

	var (
		processed int
		failures  int
		errs      []error
	)
	for _, tenantID := range tenantIDs {
		n, err := s.runForTenant(ctx, job, tenantID, started)
		processed += n
		if err != nil {
			failures++
			errs = append(errs, fmt.Errorf("tenant %s: %w", tenantID, err))
			s.logger.Error("Job failed for tenant",
				zap.String("job", name),
				zap.String("tenant_id", tenantID.String()),
				zap.Error(err))
		}
	}

	joined := errors.Join(errs...)
	s.finishRun(name, started, len(tenantIDs), processed, failures, joined)
	s.logger.Info("Job run finished",
		zap.String("job", name),
		zap.Int("tenants", len(tenantIDs)),
		zap.Int("processed", processed),
		zap.Int("failures", failures),
		zap.Duration("duration", s.now().Sub(started)))
	return joined
}

func (s *Scheduler) runForTenant(ctx context.Context, job Job, tenantID uuid.UUID, now time.Time) (n int, err error) {
	ctx, cancel := context.WithTimeout(ctx, s.config.JobTimeout)
	defer cancel()

	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("job panicked: %v", r)
		}
	}()
	return job.Run(ctx, tenantID, now)
}

func (s *Scheduler) updateRun(name string, fn func(*RunRecord)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fn(s.runs[name])
}

func (s *Scheduler) finishRun(name string, started time.Time, tenants, processed, failures int, err error) {
	s.updateRun(name, func(r *RunRecord) {
		r.Duration = s.now().Sub(started)
		r.Tenants = tenants
		r.Processed = processed
		r.Failures = failures
		r.Status = JobStatusSuccess
		r.LastError = ""
		if err != nil {
			r.Status = JobStatusFailed
			r.LastError = err.Error()
		}
	})
}

// Runs returns the latest run record of every registered job, sorted by name
func (s *Scheduler) Runs() []RunRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]RunRecord, 0, len(s.runs))
	for _, r := range s.runs {
		rec := *r
		if entry := s.cron.Entry(r.entryID); entry.Valid() && !entry.Next.IsZero() {
			next := entry.Next
			rec.NextRunAt = &next
		}
		out = append(out, rec)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Job < out[j].Job })
	return out
}

// zapCronLogger adapts zap to cron.Logger
type zapCronLogger struct {
	logger *zap.Logger
}

func (l zapCronLogger) Info(msg string, keysAndValues ...any) {
	l.logger.Sugar().Debugw(msg, keysAndValues...)
}

func (l zapCronLogger) Error(err error, msg string, keysAndValues ...any) {
	l.logger.Sugar().Errorw(msg, append(keysAndValues, "error", err)...)
}
