package app

import (
	"context"
	"os/signal"
	"syscall"
	"time"

	"smg-portal/internal/attendance"
	"smg-portal/internal/notification"
	"smg-portal/internal/scheduler"
	"smg-portal/internal/training"

	"go.uber.org/zap"
)

// Jobs are the daily jobs, shared by the scheduler and the ops CLI.
type Jobs struct {
	Rollup    scheduler.Job
	Reminders scheduler.Job
	Purge     scheduler.Job
}

func NewJobs(in *Infra) Jobs {
	logger := in.Logger
	loc := in.Config.Location

	rollup := attendance.NewRollup(in.SQLDB, attendance.NewRepository(in.GormDB), loc, logger)
	notifier := notification.NewService(notification.NewRepository(in.GormDB), logger)
	reminder := training.NewReminder(training.NewRepository(in.GormDB), notifier, loc, logger)

	return Jobs{
		Rollup: scheduler.Job{
			Name: scheduler.JobAttendanceRollup,
			Hour: 0,
			Run: func(ctx context.Context, now time.Time) error {
				res, err := rollup.Run(ctx, now)
				if err == nil {
					logger.Info("attendance rollup", zap.String("month", res.Month), zap.Int("users", res.Users))
				}
				return err
			},
		},
		Reminders: scheduler.Job{
			Name: scheduler.JobTrainingReminders,
			Hour: 9,
			Run: func(ctx context.Context, now time.Time) error {
				_, err := reminder.Run(ctx, now)
				return err
			},
		},
		Purge: scheduler.Job{
			Name: scheduler.JobNotificationPurge,
			Hour: 3,
			Run: func(ctx context.Context, now time.Time) error {
				n, err := notifier.PurgeExpired(ctx, now)
				if err == nil {
					logger.Info("notifications purged", zap.Int64("deleted", n))
				}
				return err
			},
		},
	}
}

func NewScheduler(in *Infra) (*scheduler.Scheduler, error) {
	jobs := NewJobs(in)
	s := scheduler.New(in.Config.Location, in.Config.HandlerTimeout, in.Logger)
	for _, job := range []scheduler.Job{jobs.Rollup, jobs.Reminders, jobs.Purge} {
		if err := s.Add(job); err != nil {
			return nil, err
		}
	}
	return s, nil
}

func RunScheduler(in *Infra) error {
	s, err := NewScheduler(in)
	if err != nil {
		return err
	}
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	err = s.Start(ctx)
	in.Logger.Named("app.scheduler").Info("scheduler shutting down")
	return err
}
