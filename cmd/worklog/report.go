package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kingrea/worklog/internal/report"
)

func reportCmd() *cobra.Command {
	var week int

	cmd := &cobra.Command{
		Use:   "report",
		Short: "Generate the weekly markdown report",
		Long: `Generate the markdown report for a calendar week (Monday through Sunday).
--week selects the week relative to the current one: 0 is this week, -1 is
last week, and so on. A week with no recorded entries still produces a
valid report.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runReport(week)
		},
	}

	cmd.Flags().IntVarP(&week, "week", "w", 0, "Week offset from the current week (0=this week, -1=last week)")

	return cmd
}

func lastWeekCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "lastweek",
		Short: "Generate last week's report",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runReport(-1)
		},
	}
}

func runReport(week int) error {
	e, err := newEnv()
	if err != nil {
		return err
	}
	defer e.close()

	gen, err := report.NewGenerator(e.cfg.ReportsDir())
	if err != nil {
		return err
	}
	path, err := gen.WriteWeekly(e.store.State(), week)
	if err != nil {
		e.log.Printf("report week=%d: %v", week, err)
		return err
	}
	e.journal.Info("generated report %s", path)
	fmt.Printf("Report generated: %s\n", path)
	return nil
}
