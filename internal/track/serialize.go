package track

import (
	"encoding/json"
	"fmt"
	"time"
)

// Wire format for the persisted state file. Optional keys default at this
// boundary: a missing details string becomes empty, a missing duration
// becomes DefaultDurationMinutes, missing collections become empty.

type workEntryJSON struct {
	Timestamp string `json:"timestamp"`
	Ticket    string `json:"ticket"`
	Project   string `json:"project"`
	Details   string `json:"details"`
	Duration  *int   `json:"duration,omitempty"`
}

type appStateJSON struct {
	CurrentTicket  *string         `json:"current_ticket"`
	CurrentProject *string         `json:"current_project"`
	CurrentDetails *string         `json:"current_details"`
	LastActivity   *string         `json:"last_activity"`
	WorkEntries    []workEntryJSON `json:"work_entries"`
	Mappings       *Mappings       `json:"project_mappings"`
}

// MarshalJSON writes the state in the flat-file wire format.
func (s *AppState) MarshalJSON() ([]byte, error) {
	out := appStateJSON{
		CurrentTicket:  nullableString(s.CurrentTicket),
		CurrentProject: nullableString(s.CurrentProject),
		CurrentDetails: nullableString(s.CurrentDetails),
		WorkEntries:    make([]workEntryJSON, 0, len(s.WorkEntries)),
		Mappings:       s.Mappings,
	}
	if !s.LastActivity.IsZero() {
		formatted := s.LastActivity.Format(time.RFC3339)
		out.LastActivity = &formatted
	}
	if out.Mappings == nil {
		out.Mappings = NewMappings()
	}
	for _, entry := range s.WorkEntries {
		duration := entry.Duration
		out.WorkEntries = append(out.WorkEntries, workEntryJSON{
			Timestamp: entry.Timestamp.Format(time.RFC3339),
			Ticket:    entry.Ticket,
			Project:   entry.Project,
			Details:   entry.Details,
			Duration:  &duration,
		})
	}
	return json.Marshal(out)
}

// UnmarshalJSON reads the wire format, applying documented defaults for
// missing keys.
func (s *AppState) UnmarshalJSON(data []byte) error {
	var raw appStateJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	s.CurrentTicket = stringOrEmpty(raw.CurrentTicket)
	s.CurrentProject = stringOrEmpty(raw.CurrentProject)
	s.CurrentDetails = stringOrEmpty(raw.CurrentDetails)

	s.LastActivity = time.Time{}
	if raw.LastActivity != nil && *raw.LastActivity != "" {
		ts, err := parseTimestamp(*raw.LastActivity)
		if err != nil {
			return fmt.Errorf("track: last_activity: %w", err)
		}
		s.LastActivity = ts
	}

	s.WorkEntries = make([]WorkEntry, 0, len(raw.WorkEntries))
	for i, entry := range raw.WorkEntries {
		ts, err := parseTimestamp(entry.Timestamp)
		if err != nil {
			return fmt.Errorf("track: work_entries[%d]: %w", i, err)
		}
		duration := DefaultDurationMinutes
		if entry.Duration != nil && *entry.Duration > 0 {
			duration = *entry.Duration
		}
		s.WorkEntries = append(s.WorkEntries, WorkEntry{
			Timestamp: ts,
			Ticket:    entry.Ticket,
			Project:   entry.Project,
			Details:   entry.Details,
			Duration:  duration,
		})
	}

	s.Mappings = raw.Mappings
	if s.Mappings == nil {
		s.Mappings = NewMappings()
	}
	return nil
}

// timestampLayouts covers RFC 3339 plus the zone-less ISO form older state
// files carry; zone-less values are taken as local time.
var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04:05",
}

func parseTimestamp(value string) (time.Time, error) {
	for _, layout := range timestampLayouts {
		if ts, err := time.ParseInLocation(layout, value, time.Local); err == nil {
			return ts, nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid timestamp %q", value)
}

func nullableString(value string) *string {
	if value == "" {
		return nil
	}
	return &value
}

func stringOrEmpty(value *string) string {
	if value == nil {
		return ""
	}
	return *value
}
