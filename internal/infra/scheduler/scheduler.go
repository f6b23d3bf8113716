// Package scheduler runs the periodic background jobs on a cron engine.
package scheduler

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"
)

// Job is a named unit of periodic work.
type Job struct {
	Name    string
	Spec    string
	Timeout time.Duration
	Run     func(ctx context.Context) error
}

// Scheduler registers jobs on a cron engine in a fixed location.
type Scheduler struct {
	cronEngine *cron.Cron
	jobs       map[string]Job
	order      []string
}

// New creates a scheduler whose cron specs are read in location.
func New(location *time.Location, jobs ...Job) *Scheduler {
	if location == nil {
		location = time.UTC
	}
	s := &Scheduler{
		cronEngine: cron.New(
			cron.WithLocation(location),
			cron.WithChain(cron.Recover(slogCronLogger{}), cron.SkipIfStillRunning(slogCronLogger{})),
		),
		jobs: make(map[string]Job, len(jobs)),
	}
	for _, job := range jobs {
		s.jobs[job.Name] = job
		s.order = append(s.order, job.Name)
	}
	return s
}

// Start registers every job and starts the engine. Nothing runs when a spec
// fails to parse.
func (s *Scheduler) Start() error {
	for _, name := range s.order {
		job := s.jobs[name]
		if _, err := s.cronEngine.AddFunc(job.Spec, func() { s.execute(job) }); err != nil {
			return fmt.Errorf("failed to schedule job %s with spec %q: %w", job.Name, job.Spec, err)
		}
	}

	s.cronEngine.Start()
	slog.Info("Scheduler started", "jobs", s.order)
	return nil
}

// Stop stops the engine and waits for running jobs to finish.
func (s *Scheduler) Stop() {
	ctx := s.cronEngine.Stop()
	<-ctx.Done()
	slog.Info("Scheduler stopped")
}

// RunNow executes a registered job synchronously.
func (s *Scheduler) RunNow(ctx context.Context, name string) error {
	job, ok := s.jobs[name]
	if !ok {
		return fmt.Errorf("unknown job %q", name)
	}
	return s.run(ctx, job)
}

func (s *Scheduler) execute(job Job) {
	if err := s.run(context.Background(), job); err != nil {
		slog.Error("Scheduled job failed", "job", job.Name, "error", err)
	}
}

func (s *Scheduler) run(ctx context.Context, job Job) error {
	logger := slog.With("job", job.Name)
	if job.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, job.Timeout)
		defer cancel()
	}

	started := time.Now()
	logger.Info("Job started")
	err := job.Run(ctx)
	logger.Info("Job finished", "duration", time.Since(started), "failed", err != nil)
	return err
}

// slogCronLogger adapts cron's logger interface to slog.
type slogCronLogger struct{}

func (slogCronLogger) Info(msg string, keysAndValues ...interface{}) {
	slog.Debug("cron: "+msg, keysAndValues...)
}

func (slogCronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	slog.Error("cron: "+msg, append(keysAndValues, "error", err)...)
}
