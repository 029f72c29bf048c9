package main

import (
	"github.com/spf13/cobra"
)

var (
	atFlag string

	rootCmd = &cobra.Command{
		Use:   "portalctl",
		Short: "Operations CLI for the SMG employee portal",
		Long: `portalctl re-runs the portal's scheduled jobs by hand, for example
after a missed or failed nightly run.`,
		SilenceUsage: true,
	}

	jobsCmd = &cobra.Command{
		Use:   "jobs",
		Short: "Run a scheduled job once",
	}
	rollupCmd = &cobra.Command{
		Use:   "rollup",
		Short: "Recompute monthly attendance summaries for the month of --at",
		RunE:  runRollup,
	}
	remindersCmd = &cobra.Command{
		Use:   "reminders",
		Short: "Send mandatory training reminders as of --at",
		RunE:  runReminders,
	}
	purgeCmd = &cobra.Command{
		Use:   "purge-notifications",
		Short: "Delete expired notifications",
		RunE:  runPurge,
	}
)

func init() {
	for _, cmd := range []*cobra.Command{rollupCmd, remindersCmd} {
		cmd.Flags().StringVar(&atFlag, "at", "", "run as of this instant (RFC3339 or YYYY-MM-DD in the portal time zone), default now")
	}
	jobsCmd.AddCommand(rollupCmd, remindersCmd, purgeCmd)
	rootCmd.AddCommand(jobsCmd)
}
