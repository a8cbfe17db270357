package store

import (
	"time"

	"github.com/kingrea/worklog/internal/track"
)

// ProjectSummary aggregates one project's share of a week.
type ProjectSummary struct {
	Name    string
	Minutes int
	Tickets []string // distinct, in first-seen order
	Details []string // non-empty detail strings, in entry order
}

// WeekSummary is the plain-data weekly view handed to front ends.
type WeekSummary struct {
	Start        time.Time
	End          time.Time
	TotalMinutes int
	EntryCount   int
	Projects     []ProjectSummary // first-seen project order
}

// Hours converts the total to hours.
func (w WeekSummary) Hours() float64 {
	return float64(w.TotalMinutes) / 60
}

// Hours converts a project's total to hours.
func (p ProjectSummary) Hours() float64 {
	return float64(p.Minutes) / 60
}

// WeekSummaryAt summarizes the calendar week offset weeks from the week
// containing today (0 = this week, negative = past).
func (s *Store) WeekSummaryAt(today time.Time, offset int) WeekSummary {
	start, end := track.WeekRange(today, offset)
	entries := s.state.EntriesInWeek(start, end)

	summary := WeekSummary{Start: start, End: end, EntryCount: len(entries)}
	index := map[string]int{}
	for _, entry := range entries {
		i, seen := index[entry.Project]
		if !seen {
			i = len(summary.Projects)
			index[entry.Project] = i
			summary.Projects = append(summary.Projects, ProjectSummary{Name: entry.Project})
		}
		project := &summary.Projects[i]
		project.Minutes += entry.Duration
		if !containsString(project.Tickets, entry.Ticket) {
			project.Tickets = append(project.Tickets, entry.Ticket)
		}
		if entry.Details != "" {
			project.Details = append(project.Details, entry.Details)
		}
		summary.TotalMinutes += entry.Duration
	}
	return summary
}

// WeekSummary is WeekSummaryAt relative to the store's clock.
func (s *Store) WeekSummary(offset int) WeekSummary {
	return s.WeekSummaryAt(s.now(), offset)
}

func containsString(values []string, target string) bool {
	for _, v := range values {
		if v == target {
			return true
		}
	}
	return false
}
