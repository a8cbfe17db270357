package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/kingrea/worklog/internal/config"
	"github.com/kingrea/worklog/internal/journal"
	"github.com/kingrea/worklog/internal/logging"
	"github.com/kingrea/worklog/internal/store"
)

var Version = "dev"

func main() {
	rootCmd := &cobra.Command{
		Use:          "worklog",
		Short:        "Track work sessions and produce weekly markdown reports",
		Version:      Version,
		SilenceUsage: true,
	}

	rootCmd.AddCommand(logCmd())
	rootCmd.AddCommand(stopCmd())
	rootCmd.AddCommand(statusCmd())
	rootCmd.AddCommand(reportCmd())
	rootCmd.AddCommand(lastWeekCmd())
	rootCmd.AddCommand(weeksCmd())
	rootCmd.AddCommand(cleanupCmd())
	rootCmd.AddCommand(dashboardCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// env wires together the pieces every command needs: resolved paths, the
// activity journal, the process log, and the opened state store.
type env struct {
	cfg     *config.Config
	journal *journal.Journal
	log     *logging.Logger
	store   *store.Store
}

func newEnv() (*env, error) {
	cfg, err := config.New()
	if err != nil {
		return nil, err
	}
	jnl, err := journal.New(cfg.JournalPath())
	if err != nil {
		return nil, err
	}
	logger, err := logging.New(cfg.LogsDir())
	if err != nil {
		return nil, err
	}
	st, err := store.Open(cfg.DatabasePath(),
		store.WithJournal(jnl),
		store.WithDefaultDuration(cfg.DefaultDuration()),
	)
	if err != nil {
		logger.Printf("open store: %v", err)
		logger.Close()
		return nil, err
	}
	return &env{cfg: cfg, journal: jnl, log: logger, store: st}, nil
}

func (e *env) close() {
	_ = e.log.Close()
}
