// Package report turns a week of work entries into a markdown report and
// manages the directory of generated report files.
package report

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/kingrea/worklog/internal/track"
)

const dateDisplayLayout = "01/02/2006"

// Render produces the weekly report for entries already filtered to the
// [weekStart, weekEnd] span. It is a pure function: grouping and formatting
// only, no IO.
func Render(entries []track.WorkEntry, weekStart, weekEnd time.Time) string {
	var b strings.Builder
	writeHeader(&b, weekStart, weekEnd)

	if len(entries) == 0 {
		b.WriteString("## Summary\n")
		b.WriteString("No activities were recorded this week.\n")
		b.WriteString("\n---\n")
		return b.String()
	}

	projects := groupByProject(entries)

	totalMinutes := 0
	for _, entry := range entries {
		totalMinutes += entry.Duration
	}

	b.WriteString("## Executive Summary\n")
	fmt.Fprintf(&b, "- **Total hours worked:** %.1f hours\n", float64(totalMinutes)/60)
	fmt.Fprintf(&b, "- **Total entries:** %d\n", len(entries))
	fmt.Fprintf(&b, "- **Projects worked on:** %d\n", len(projects))
	b.WriteString("\n---\n\n")

	for _, project := range projects {
		writeProjectSection(&b, project)
	}

	writeDailyBreakdown(&b, entries)

	b.WriteString("\n---\n")
	return b.String()
}

func writeHeader(b *strings.Builder, weekStart, weekEnd time.Time) {
	b.WriteString("# Weekly Report\n")
	fmt.Fprintf(b, "**Week:** %s - %s\n\n",
		weekStart.Format(dateDisplayLayout), weekEnd.Format(dateDisplayLayout))
	b.WriteString("---\n\n")
}

// projectGroup collects one project's entries in first-seen order.
type projectGroup struct {
	name    string
	minutes int
	entries []track.WorkEntry
}

func groupByProject(entries []track.WorkEntry) []*projectGroup {
	var groups []*projectGroup
	index := map[string]*projectGroup{}
	for _, entry := range entries {
		group, ok := index[entry.Project]
		if !ok {
			group = &projectGroup{name: entry.Project}
			index[entry.Project] = group
			groups = append(groups, group)
		}
		group.minutes += entry.Duration
		group.entries = append(group.entries, entry)
	}
	return groups
}

func writeProjectSection(b *strings.Builder, project *projectGroup) {
	fmt.Fprintf(b, "## %s\n", project.name)
	fmt.Fprintf(b, "**Total time:** %.1f hours\n\n", float64(project.minutes)/60)

	type ticketGroup struct {
		minutes  int
		sessions int
		details  map[string]bool
	}
	tickets := map[string]*ticketGroup{}
	for _, entry := range project.entries {
		group, ok := tickets[entry.Ticket]
		if !ok {
			group = &ticketGroup{details: map[string]bool{}}
			tickets[entry.Ticket] = group
		}
		group.minutes += entry.Duration
		group.sessions++
		if entry.Details != "" {
			group.details[entry.Details] = true
		}
	}

	names := make([]string, 0, len(tickets))
	for name := range tickets {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		group := tickets[name]
		fmt.Fprintf(b, "### %s\n", name)
		fmt.Fprintf(b, "**Time spent:** %.1f hours  \n", float64(group.minutes)/60)
		fmt.Fprintf(b, "**Sessions:** %d\n\n", group.sessions)

		if len(group.details) > 0 {
			details := make([]string, 0, len(group.details))
			for detail := range group.details {
				details = append(details, detail)
			}
			sort.Strings(details)
			b.WriteString("**Activities:**\n")
			for _, detail := range details {
				fmt.Fprintf(b, "- %s\n", detail)
			}
			b.WriteString("\n")
		}
	}
}

func writeDailyBreakdown(b *strings.Builder, entries []track.WorkEntry) {
	byDay := map[time.Time][]track.WorkEntry{}
	var days []time.Time
	for _, entry := range entries {
		day := time.Date(entry.Timestamp.Year(), entry.Timestamp.Month(), entry.Timestamp.Day(),
			0, 0, 0, 0, entry.Timestamp.Location())
		if _, ok := byDay[day]; !ok {
			days = append(days, day)
		}
		byDay[day] = append(byDay[day], entry)
	}
	sort.Slice(days, func(i, j int) bool { return days[i].Before(days[j]) })

	b.WriteString("## Daily Breakdown\n\n")
	for _, day := range days {
		dayEntries := byDay[day]
		dayMinutes := 0
		for _, entry := range dayEntries {
			dayMinutes += entry.Duration
		}
		fmt.Fprintf(b, "### %s %s\n", day.Weekday(), day.Format("01/02"))
		fmt.Fprintf(b, "**Total:** %.1f hours\n\n", float64(dayMinutes)/60)

		projects := groupByProject(dayEntries)
		for _, project := range projects {
			tickets := distinctTickets(project.entries)
			fmt.Fprintf(b, "- **%s** (%.1fh): %s\n",
				project.name, float64(project.minutes)/60, strings.Join(tickets, ", "))
		}
		b.WriteString("\n")
	}
}

// distinctTickets dedups tickets preserving first-seen order.
func distinctTickets(entries []track.WorkEntry) []string {
	seen := map[string]bool{}
	var tickets []string
	for _, entry := range entries {
		if !seen[entry.Ticket] {
			seen[entry.Ticket] = true
			tickets = append(tickets, entry.Ticket)
		}
	}
	return tickets
}
