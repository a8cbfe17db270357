package main

import (
	"github.com/spf13/cobra"

	"github.com/kingrea/worklog/internal/config"
	"github.com/kingrea/worklog/internal/journal"
	"github.com/kingrea/worklog/internal/store"
	"github.com/kingrea/worklog/internal/tui"
)

func dashboardCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "dashboard",
		Short: "Show a live terminal dashboard",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.New()
			if err != nil {
				return err
			}
			jnl, err := journal.New(cfg.JournalPath())
			if err != nil {
				return err
			}
			return tui.Run(snapshotLoader(cfg, jnl))
		},
	}
}

// snapshotLoader reopens the store on every refresh so the dashboard tracks
// what other worklog invocations persist while it is on screen.
func snapshotLoader(cfg *config.Config, jnl *journal.Journal) tui.LoadFunc {
	return func() (tui.Snapshot, error) {
		st, err := store.Open(cfg.DatabasePath(),
			store.WithDefaultDuration(cfg.DefaultDuration()),
		)
		if err != nil {
			return tui.Snapshot{}, err
		}
		state := st.State()
		return tui.Snapshot{
			Active:   state.SessionActive(),
			Ticket:   state.CurrentTicket,
			Project:  state.CurrentProject,
			Details:  state.CurrentDetails,
			Summary:  st.WeekSummary(0),
			Journal:  jnl.Tail(8),
			DataPath: st.Path(),
		}, nil
	}
}
