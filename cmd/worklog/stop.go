package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func stopCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stop",
		Short: "Stop the current work session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := newEnv()
			if err != nil {
				return err
			}
			defer e.close()

			state := e.store.State()
			if !state.SessionActive() {
				fmt.Println("No active session.")
				return nil
			}
			ticket := state.CurrentTicket
			if err := e.store.StopCurrentWork(); err != nil {
				e.log.Printf("stop: %v", err)
				return err
			}
			fmt.Printf("Stopped working on %s\n", ticket)
			return nil
		},
	}
}
