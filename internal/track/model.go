package track

import (
	"strings"
	"time"
)

// DefaultDurationMinutes is the duration stamped on an entry when the wire
// format omits one. One check-in counts as one hour unless configured
// otherwise.
const DefaultDurationMinutes = 60

// WorkEntry is one recorded block of work on a ticket. Entries are
// append-only: once created they are never mutated, and they carry no id of
// their own.
type WorkEntry struct {
	Timestamp time.Time
	Ticket    string
	Project   string
	Details   string
	Duration  int // minutes
}

// AppState is the single in-memory state object for the process. The
// current_* fields form the in-progress session pointer: either all of
// ticket, project and details describe an active session, or the session is
// inactive. WorkEntries grows chronologically and shrinks only through
// explicit cleanup.
type AppState struct {
	CurrentTicket  string
	CurrentProject string
	CurrentDetails string
	LastActivity   time.Time // zero when no entry has been recorded
	WorkEntries    []WorkEntry
	Mappings       *Mappings
}

// NewAppState returns an empty state ready for use.
func NewAppState() *AppState {
	return &AppState{Mappings: NewMappings()}
}

// SessionActive reports whether an in-progress session is set. A session
// needs both a ticket and a project; partial state left behind by older
// files is treated as inactive.
func (s *AppState) SessionActive() bool {
	return s.CurrentTicket != "" && s.CurrentProject != ""
}

// AddWorkEntry appends a new entry stamped at now, makes it the current
// session, refreshes LastActivity, and teaches the project mapping the
// ticket's prefix for future auto-detection.
func (s *AppState) AddWorkEntry(now time.Time, ticket, project, details string, duration int) WorkEntry {
	if duration <= 0 {
		duration = DefaultDurationMinutes
	}
	entry := WorkEntry{
		Timestamp: now,
		Ticket:    ticket,
		Project:   project,
		Details:   details,
		Duration:  duration,
	}
	s.WorkEntries = append(s.WorkEntries, entry)

	s.CurrentTicket = ticket
	s.CurrentProject = project
	s.CurrentDetails = details
	s.LastActivity = entry.Timestamp

	if s.Mappings == nil {
		s.Mappings = NewMappings()
	}
	s.Mappings.Learn(project, TicketPrefix(ticket))

	return entry
}

// StopSession clears the in-progress pointer. The entry log is untouched.
func (s *AppState) StopSession() {
	s.CurrentTicket = ""
	s.CurrentProject = ""
	s.CurrentDetails = ""
}

// AutoDetectProject returns the first project (in mapping insertion order)
// with a pattern that is a case-insensitive substring of ticket. The second
// return is false when nothing matches.
func (s *AppState) AutoDetectProject(ticket string) (string, bool) {
	if s.Mappings == nil {
		return "", false
	}
	return s.Mappings.Detect(ticket)
}

// TicketPrefix derives the pattern learned from a ticket id: the substring
// before the first '-', or the first three characters when there is none.
func TicketPrefix(ticket string) string {
	if i := strings.Index(ticket, "-"); i >= 0 {
		return ticket[:i]
	}
	if len(ticket) > 3 {
		return ticket[:3]
	}
	return ticket
}
