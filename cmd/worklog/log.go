package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func logCmd() *cobra.Command {
	var project string
	var details string

	cmd := &cobra.Command{
		Use:   "log <ticket>",
		Short: "Record a work entry and make it the current session",
		Long: `Record a work entry for a ticket. When --project is omitted the project
is auto-detected from ticket prefixes seen before; the first logged entry
for a new prefix must name its project explicitly.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := newEnv()
			if err != nil {
				return err
			}
			defer e.close()

			ticket := args[0]
			if project == "" {
				detected, ok := e.store.AutoDetectProject(ticket)
				if !ok {
					return fmt.Errorf("no project known for %q, pass one with --project", ticket)
				}
				project = detected
				fmt.Printf("Detected project: %s\n", project)
			}

			entry, err := e.store.AddWorkEntry(ticket, project, details)
			if err != nil {
				e.log.Printf("log %s: %v", ticket, err)
				return err
			}
			e.log.Printf("logged %s for %s", entry.Ticket, entry.Project)
			fmt.Printf("Logged %s on %s (%d min)\n", entry.Ticket, entry.Project, entry.Duration)
			return nil
		},
	}

	cmd.Flags().StringVarP(&project, "project", "p", "", "Project name (auto-detected when omitted)")
	cmd.Flags().StringVarP(&details, "details", "d", "", "Free-text details for this entry")

	return cmd
}
