// Package store owns durable persistence of the tracker state: loading it
// with corruption recovery, saving it atomically, and the mutation API every
// front end goes through.
package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/kingrea/worklog/internal/journal"
	"github.com/kingrea/worklog/internal/track"
)

// BackupSuffix is appended to a state file that failed to parse. The corrupt
// file is preserved, never silently discarded.
const BackupSuffix = ".backup"

// Store binds an AppState to its file on disk. All access is single-process
// and single-threaded; the store performs no locking of its own.
type Store struct {
	path            string
	state           *track.AppState
	now             func() time.Time
	journal         *journal.Journal
	defaultDuration int
}

// Option customizes a Store during construction.
type Option func(*Store)

// WithClock overrides the clock used to stamp entries.
func WithClock(clock func() time.Time) Option {
	return func(s *Store) {
		s.now = clock
	}
}

// WithJournal attaches an activity journal. A nil journal is fine; journal
// writes become no-ops.
func WithJournal(j *journal.Journal) Option {
	return func(s *Store) {
		s.journal = j
	}
}

// WithDefaultDuration sets the minutes stamped on new entries. Values below
// one fall back to track.DefaultDurationMinutes.
func WithDefaultDuration(minutes int) Option {
	return func(s *Store) {
		if minutes >= 1 {
			s.defaultDuration = minutes
		}
	}
}

// Open loads the state file at path, creating a default state when the file
// is absent and quarantining it when it cannot be parsed. Corruption never
// surfaces as an error: the bad file is renamed with BackupSuffix, the
// condition is journaled, and a fresh state takes its place.
func Open(path string, opts ...Option) (*Store, error) {
	s := &Store{
		path:            path,
		now:             time.Now,
		defaultDuration: track.DefaultDurationMinutes,
	}
	for _, opt := range opts {
		opt(s)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("store: ensure data dir: %w", err)
	}
	if err := s.load(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Store) load() error {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		s.state = track.NewAppState()
		return s.Save()
	}
	if err != nil {
		return fmt.Errorf("store: read state file: %w", err)
	}

	state := track.NewAppState()
	if err := json.Unmarshal(data, state); err != nil {
		backup := s.path + BackupSuffix
		if renameErr := os.Rename(s.path, backup); renameErr != nil {
			return fmt.Errorf("store: quarantine corrupt state file: %w", renameErr)
		}
		s.journal.Warn("state file corrupt (%v), backed up to %s", err, backup)
		s.state = track.NewAppState()
		return s.Save()
	}
	s.state = state
	return nil
}

// Path returns the location of the canonical state file.
func (s *Store) Path() string {
	return s.path
}

// State returns the live in-memory state. Callers share the instance; there
// are no copy semantics.
func (s *Store) State() *track.AppState {
	return s.state
}

// Save serializes the full state to a staging file and renames it over the
// canonical path, so a crash mid-write never leaves a half-written file. The
// first save writes directly since there is nothing to clobber.
func (s *Store) Save() error {
	data, err := json.MarshalIndent(s.state, "", "  ")
	if err != nil {
		return fmt.Errorf("store: encode state: %w", err)
	}
	data = append(data, '\n')

	if _, statErr := os.Stat(s.path); errors.Is(statErr, fs.ErrNotExist) {
		if err := os.WriteFile(s.path, data, 0o644); err != nil {
			s.journal.Error("save failed: %v", err)
			return fmt.Errorf("store: write state file: %w", err)
		}
		return nil
	}

	staging := s.path + ".tmp"
	if err := os.WriteFile(staging, data, 0o644); err != nil {
		s.journal.Error("save failed: %v", err)
		return fmt.Errorf("store: write staging file: %w", err)
	}
	if err := os.Rename(staging, s.path); err != nil {
		s.journal.Error("save failed: %v", err)
		return fmt.Errorf("store: replace state file: %w", err)
	}
	return nil
}

// AddWorkEntry records a new entry for ticket/project with optional details,
// making it the current session. Ticket and project are required. A save
// failure is returned but leaves the in-memory mutation intact; the next
// successful save picks it up.
func (s *Store) AddWorkEntry(ticket, project, details string) (track.WorkEntry, error) {
	ticket = strings.TrimSpace(ticket)
	project = strings.TrimSpace(project)
	if ticket == "" {
		return track.WorkEntry{}, fmt.Errorf("store: ticket is required")
	}
	if project == "" {
		return track.WorkEntry{}, fmt.Errorf("store: project is required")
	}

	entry := s.state.AddWorkEntry(s.now(), ticket, project, strings.TrimSpace(details), s.defaultDuration)
	s.journal.Info("logged %s for %s (%d min)", entry.Ticket, entry.Project, entry.Duration)
	return entry, s.Save()
}

// SessionUpdate carries optional replacements for the in-progress session
// fields. Nil fields are left untouched.
type SessionUpdate struct {
	Ticket  *string
	Project *string
	Details *string
}

// UpdateCurrentWork adjusts the in-progress pointer without appending an
// entry.
func (s *Store) UpdateCurrentWork(update SessionUpdate) error {
	if update.Ticket != nil {
		s.state.CurrentTicket = *update.Ticket
	}
	if update.Project != nil {
		s.state.CurrentProject = *update.Project
	}
	if update.Details != nil {
		s.state.CurrentDetails = *update.Details
	}
	return s.Save()
}

// StopCurrentWork clears the in-progress session. The entry log is
// untouched.
func (s *Store) StopCurrentWork() error {
	s.state.StopSession()
	s.journal.Info("stopped current session")
	return s.Save()
}

// AutoDetectProject suggests a project for a ticket based on learned
// patterns.
func (s *Store) AutoDetectProject(ticket string) (string, bool) {
	return s.state.AutoDetectProject(ticket)
}
