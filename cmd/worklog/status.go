package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func statusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show the current session and this week's summary",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := newEnv()
			if err != nil {
				return err
			}
			defer e.close()

			fmt.Println("Worklog Status")
			fmt.Println(strings.Repeat("=", 40))

			state := e.store.State()
			fmt.Println("\nCurrent Work:")
			if state.SessionActive() {
				fmt.Printf("  Project: %s\n", state.CurrentProject)
				fmt.Printf("  Ticket:  %s\n", state.CurrentTicket)
				if state.CurrentDetails != "" {
					fmt.Printf("  Details: %s\n", state.CurrentDetails)
				}
			} else {
				fmt.Println("  No active work")
			}

			summary := e.store.WeekSummary(0)
			fmt.Println("\nThis Week:")
			fmt.Printf("  Total hours: %.1f\n", summary.Hours())
			fmt.Printf("  Entries:     %d\n", summary.EntryCount)
			fmt.Printf("  Projects:    %d\n", len(summary.Projects))
			for _, project := range summary.Projects {
				fmt.Printf("    - %s: %.1fh (%s)\n",
					project.Name, project.Hours(), strings.Join(project.Tickets, ", "))
			}

			fmt.Printf("\nData location: %s\n", e.store.Path())
			return nil
		},
	}
}
