package store

import (
	"strings"
	"time"
)

// testMarkers flags entries, mappings and sessions that were planted by
// tests or demo scripts rather than real work. Matching is case-insensitive
// substring.
var testMarkers = []string{
	"test", "demo", "example", "sample", "mock", "fake", "dummy",
	"added via status script", "added via script", "via script",
}

// CleanupTestData removes work entries, project mappings and the current
// session when their text matches any test marker. It returns the number of
// entries removed and persists only when something changed, so running it
// twice in a row removes nothing the second time.
func (s *Store) CleanupTestData() (int, error) {
	state := s.state
	originalCount := len(state.WorkEntries)

	kept := state.WorkEntries[:0]
	for _, entry := range state.WorkEntries {
		if matchesMarker(entry.Ticket) || matchesMarker(entry.Project) || matchesMarker(entry.Details) {
			continue
		}
		kept = append(kept, entry)
	}
	state.WorkEntries = kept
	removed := originalCount - len(state.WorkEntries)

	if state.CurrentTicket != "" &&
		(matchesMarker(state.CurrentTicket) || matchesMarker(state.CurrentProject)) {
		state.StopSession()
		state.LastActivity = time.Time{}
	}

	for _, project := range state.Mappings.Names() {
		if matchesMarker(project) {
			state.Mappings.Delete(project)
		}
	}

	if removed == 0 {
		return 0, nil
	}
	s.journal.Info("cleanup removed %d test entries", removed)
	return removed, s.Save()
}

func matchesMarker(text string) bool {
	lower := strings.ToLower(text)
	for _, marker := range testMarkers {
		if strings.Contains(lower, marker) {
			return true
		}
	}
	return false
}
