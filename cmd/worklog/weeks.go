package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kingrea/worklog/internal/report"
)

func weeksCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "weeks",
		Short: "List weeks with a generated report",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := newEnv()
			if err != nil {
				return err
			}
			defer e.close()

			gen, err := report.NewGenerator(e.cfg.ReportsDir())
			if err != nil {
				return err
			}
			weeks, err := gen.AvailableWeeks()
			if err != nil {
				return err
			}
			if len(weeks) == 0 {
				fmt.Println("No reports generated yet.")
				return nil
			}
			for _, week := range weeks {
				fmt.Printf("%s  %s\n", week.Display, week.Path)
			}
			return nil
		},
	}
}
