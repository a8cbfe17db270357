package report

import (
	"strings"
	"testing"
	"time"

	"github.com/kingrea/worklog/internal/track"
)

func weekOf(t *testing.T) (time.Time, time.Time) {
	t.Helper()
	start := time.Date(2025, 8, 25, 0, 0, 0, 0, time.Local) // a Monday
	return start, start.AddDate(0, 0, 6)
}

func entry(day time.Time, project, ticket, details string, minutes int) track.WorkEntry {
	return track.WorkEntry{
		Timestamp: day,
		Ticket:    ticket,
		Project:   project,
		Details:   details,
		Duration:  minutes,
	}
}

func TestRenderScenarioTotals(t *testing.T) {
	start, end := weekOf(t)
	monday := start.Add(9 * time.Hour)
	tuesday := start.AddDate(0, 0, 1).Add(10 * time.Hour)

	entries := []track.WorkEntry{
		entry(monday, "Alpha", "X-1", "refactor parser", 60),
		entry(monday.Add(2*time.Hour), "Alpha", "X-1", "", 30),
		entry(tuesday, "Beta", "Y-1", "deploy", 120),
	}

	out := Render(entries, start, end)

	for _, want := range []string{
		"# Weekly Report",
		"**Week:** 08/25/2025 - 08/31/2025",
		"- **Total hours worked:** 3.5 hours",
		"- **Total entries:** 3",
		"- **Projects worked on:** 2",
		"## Alpha",
		"### X-1",
		"**Time spent:** 1.5 hours",
		"**Sessions:** 2",
		"## Beta",
		"### Y-1",
		"**Time spent:** 2.0 hours",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("report missing %q\n%s", want, out)
		}
	}

	// Alpha was seen first and must come first.
	if strings.Index(out, "## Alpha") > strings.Index(out, "## Beta") {
		t.Error("projects must render in first-seen order")
	}
}

func TestRenderEmptyWeek(t *testing.T) {
	start, end := weekOf(t)
	out := Render(nil, start, end)

	if !strings.Contains(out, "**Week:** 08/25/2025 - 08/31/2025") {
		t.Errorf("empty report must keep the date range header:\n%s", out)
	}
	if !strings.Contains(out, "No activities were recorded this week.") {
		t.Errorf("missing no-activity notice:\n%s", out)
	}
}

func TestRenderTicketWithoutDetailsHasNoActivities(t *testing.T) {
	start, end := weekOf(t)
	entries := []track.WorkEntry{
		entry(start.Add(9*time.Hour), "Alpha", "X-1", "", 60),
	}
	out := Render(entries, start, end)
	if strings.Contains(out, "**Activities:**") {
		t.Errorf("ticket without details must not render an Activities list:\n%s", out)
	}
}

func TestRenderActivitiesDedupedAndSorted(t *testing.T) {
	start, end := weekOf(t)
	day := start.Add(9 * time.Hour)
	entries := []track.WorkEntry{
		entry(day, "Alpha", "X-1", "write docs", 60),
		entry(day.Add(time.Hour), "Alpha", "X-1", "fix build", 60),
		entry(day.Add(2*time.Hour), "Alpha", "X-1", "write docs", 60),
	}
	out := Render(entries, start, end)

	fix := strings.Index(out, "- fix build")
	docs := strings.Index(out, "- write docs")
	if fix == -1 || docs == -1 {
		t.Fatalf("missing activities:\n%s", out)
	}
	if fix > docs {
		t.Error("activities must be sorted")
	}
	if strings.Count(out, "- write docs") != 1 {
		t.Error("duplicate details must collapse to one activity line")
	}
}

func TestRenderDailyBreakdown(t *testing.T) {
	start, end := weekOf(t)
	monday := start.Add(9 * time.Hour)
	wednesday := start.AddDate(0, 0, 2).Add(9 * time.Hour)

	entries := []track.WorkEntry{
		entry(wednesday, "Beta", "Y-1", "", 120),
		entry(monday, "Alpha", "X-1", "", 60),
		entry(monday.Add(time.Hour), "Alpha", "X-2", "", 30),
	}
	out := Render(entries, start, end)

	if !strings.Contains(out, "### Monday 08/25") {
		t.Errorf("missing Monday section:\n%s", out)
	}
	if !strings.Contains(out, "### Wednesday 08/27") {
		t.Errorf("missing Wednesday section:\n%s", out)
	}
	if strings.Index(out, "### Monday 08/25") > strings.Index(out, "### Wednesday 08/27") {
		t.Error("days must be in ascending date order")
	}
	if !strings.Contains(out, "- **Alpha** (1.5h): X-1, X-2") {
		t.Errorf("missing per-project day line:\n%s", out)
	}
}
