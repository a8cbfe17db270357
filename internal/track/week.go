package track

import "time"

// Weeks run Monday through Sunday on the local calendar. Entries are
// compared by local date only; no timezone normalization happens here.

// WeekRange returns the Monday and Sunday (midnight, local) of the calendar
// week offset weeks away from the week containing today. Offset 0 is the
// current week, negative offsets reach into the past.
func WeekRange(today time.Time, offset int) (start, end time.Time) {
	weekday := int(today.Weekday())
	if weekday == 0 { // Sunday closes the week rather than opening it
		weekday = 7
	}
	monday := dateOf(today).AddDate(0, 0, -(weekday - 1))
	start = monday.AddDate(0, 0, 7*offset)
	end = start.AddDate(0, 0, 6)
	return start, end
}

// EntriesInWeek selects the entries whose local date falls within
// [start, end] inclusive.
func (s *AppState) EntriesInWeek(start, end time.Time) []WorkEntry {
	startDate := dateOf(start)
	endDate := dateOf(end)
	var selected []WorkEntry
	for _, entry := range s.WorkEntries {
		day := dateOf(entry.Timestamp)
		if day.Before(startDate) || day.After(endDate) {
			continue
		}
		selected = append(selected, entry)
	}
	return selected
}

// dateOf truncates a time to local midnight.
func dateOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
