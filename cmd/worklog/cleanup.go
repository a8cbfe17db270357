package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func cleanupCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "cleanup",
		Short: "Remove test and demo entries from the database",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := newEnv()
			if err != nil {
				return err
			}
			defer e.close()

			removed, err := e.store.CleanupTestData()
			if err != nil {
				e.log.Printf("cleanup: %v", err)
				return err
			}
			if removed > 0 {
				fmt.Printf("Cleaned up %d test entries\n", removed)
			} else {
				fmt.Println("No test data found - database is clean")
			}
			return nil
		},
	}
}
