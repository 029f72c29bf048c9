package main

import (
	"fmt"
	"time"

	"smg-portal/internal/app"
	"smg-portal/internal/bootstrap"
	"smg-portal/internal/config"
	"smg-portal/internal/scheduler"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// parseAt reads --at. A bare date means midnight of that day in loc.
func parseAt(v string, loc *time.Location, now time.Time) (time.Time, error) {
	if v == "" {
		return now.In(loc), nil
	}
	if t, err := time.Parse(time.RFC3339, v); err == nil {
		return t.In(loc), nil
	}
	t, err := time.ParseInLocation("2006-01-02", v, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid --at %q: want RFC3339 or YYYY-MM-DD", v)
	}
	return t, nil
}

func runRollup(cmd *cobra.Command, _ []string) error {
	return runJob(cmd, func(j app.Jobs) scheduler.Job { return j.Rollup })
}

func runReminders(cmd *cobra.Command, _ []string) error {
	return runJob(cmd, func(j app.Jobs) scheduler.Job { return j.Reminders })
}

func runPurge(cmd *cobra.Command, _ []string) error {
	return runJob(cmd, func(j app.Jobs) scheduler.Job { return j.Purge })
}

func runJob(cmd *cobra.Command, pick func(app.Jobs) scheduler.Job) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	at, err := parseAt(atFlag, cfg.Location, time.Now())
	if err != nil {
		return err
	}

	logger, err := bootstrap.NewLogger(cfg.IsProduction())
	if err != nil {
		return err
	}
	defer logger.Sync()
	zap.ReplaceGlobals(logger)

	infra, err := app.Connect(cfg, logger, false)
	if err != nil {
		return err
	}
	defer infra.Close()

	job := pick(app.NewJobs(infra))
	s := scheduler.New(cfg.Location, cfg.HandlerTimeout, logger)
	if err := s.RunNow(cmd.Context(), job, at); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s finished for %s\n", job.Name, at.Format(time.RFC3339))
	return nil
}
