// Package scheduler runs the portal's daily jobs at fixed wall-clock times.
package scheduler

import (
	"context"
	"fmt"
	"time"

	"smg-portal/internal/metrics"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const (
	JobAttendanceRollup   = "attendance_rollup"
	JobTrainingReminders  = "training_reminders"
	JobNotificationPurge  = "notification_purge"
	defaultHandlerTimeout = 60 * time.Second
)

// Job is run once a day at Hour:Minute in the scheduler's location.
type Job struct {
	Name   string
	Hour   int
	Minute int
	Run    func(ctx context.Context, now time.Time) error
}

type Scheduler struct {
	loc     *time.Location
	timeout time.Duration
	jobs    []Job
	now     func() time.Time
	after   func(d time.Duration) <-chan time.Time
	logger  *zap.Logger
}

func New(loc *time.Location, timeout time.Duration, logger ...*zap.Logger) *Scheduler {
	l := zap.L().Named("scheduler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("scheduler")
	}
	if loc == nil {
		loc = time.UTC
	}
	if timeout <= 0 {
		timeout = defaultHandlerTimeout
	}
	return &Scheduler{
		loc:     loc,
		timeout: timeout,
		now:     time.Now,
		after:   time.After,
		logger:  l,
	}
}

// WithClock replaces the time source and timer, for tests.
func (s *Scheduler) WithClock(now func() time.Time, after func(time.Duration) <-chan time.Time) *Scheduler {
	s.now = now
	s.after = after
	return s
}

func (s *Scheduler) Add(job Job) error {
	if job.Run == nil || job.Name == "" {
		return fmt.Errorf("scheduler: job needs a name and a run func")
	}
	if job.Hour < 0 || job.Hour > 23 || job.Minute < 0 || job.Minute > 59 {
		return fmt.Errorf("scheduler: job %s has invalid time %02d:%02d", job.Name, job.Hour, job.Minute)
	}
	s.jobs = append(s.jobs, job)
	return nil
}

func (s *Scheduler) Jobs() []Job {
	return s.jobs
}

// NextRun is the first hour:minute in loc strictly after now.
func NextRun(now time.Time, hour, minute int, loc *time.Location) time.Time {
	local := now.In(loc)
	next := time.Date(local.Year(), local.Month(), local.Day(), hour, minute, 0, 0, loc)
	if !next.After(local) {
		next = time.Date(local.Year(), local.Month(), local.Day()+1, hour, minute, 0, 0, loc)
	}
	return next
}

// Start blocks until ctx is cancelled. A failing run is logged and the job
// waits for its next slot.
func (s *Scheduler) Start(ctx context.Context) error {
	g, ctx := errgroup.WithContext(ctx)
	for _, job := range s.jobs {
		g.Go(func() error {
			s.loop(ctx, job)
			return nil
		})
	}
	s.logger.Info("scheduler started", zap.Int("jobs", len(s.jobs)), zap.String("location", s.loc.String()))
	return g.Wait()
}

func (s *Scheduler) loop(ctx context.Context, job Job) {
	var prev time.Time
	for {
		// An early wakeup must not pick the slot that just ran.
		from := s.now()
		if !from.After(prev) {
			from = prev
		}
		next := NextRun(from, job.Hour, job.Minute, s.loc)
		s.logger.Debug("job scheduled", zap.String("job", job.Name), zap.Time("next_run", next))

		select {
		case <-ctx.Done():
			return
		case <-s.after(next.Sub(s.now())):
		}
		_ = s.RunNow(ctx, job, next)
		prev = next
	}
}

// RunNow executes job for the given instant with the handler timeout and
// records the run.
func (s *Scheduler) RunNow(ctx context.Context, job Job, at time.Time) error {
	log := s.logger.With(zap.String("job", job.Name), zap.Time("at", at))
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	started := time.Now()
	err := job.Run(ctx, at.In(s.loc))
	metrics.ObserveJob(job.Name, started, err)
	if err != nil {
		log.Error("job failed", zap.Duration("took", time.Since(started)), zap.Error(err))
		return err
	}
	log.Info("job finished", zap.Duration("took", time.Since(started)))
	return nil
}
