package store

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func openTestStore(t *testing.T, opts ...Option) *Store {
	t.Helper()
	path := filepath.Join(t.TempDir(), "database.json")
	s, err := Open(path, opts...)
	if err != nil {
		t.Fatalf("Open returned error: %v", err)
	}
	return s
}

func TestOpenCreatesDefaultState(t *testing.T) {
	s := openTestStore(t)
	if len(s.State().WorkEntries) != 0 {
		t.Fatalf("expected empty state, got %d entries", len(s.State().WorkEntries))
	}
	if _, err := os.Stat(s.Path()); err != nil {
		t.Fatalf("expected state file persisted on first open: %v", err)
	}
}

func TestOpenRecoversFromCorruptFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "database.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
		t.Fatal(err)
	}

	s, err := Open(path)
	if err != nil {
		t.Fatalf("corruption must not surface as an error, got %v", err)
	}
	if len(s.State().WorkEntries) != 0 {
		t.Fatal("expected fresh default state after corruption")
	}
	if _, err := os.Stat(path + BackupSuffix); err != nil {
		t.Fatalf("expected corrupt file preserved at %s: %v", path+BackupSuffix, err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("expected fresh state file written: %v", err)
	}
	if !json.Valid(data) {
		t.Fatal("fresh state file is not valid JSON")
	}
}

func TestSaveIsAtomicReplacement(t *testing.T) {
	s := openTestStore(t)
	if _, err := s.AddWorkEntry("BUG-1", "Alpha", "first"); err != nil {
		t.Fatalf("AddWorkEntry: %v", err)
	}

	// No staging leftovers, and the canonical file parses back.
	if _, err := os.Stat(s.Path() + ".tmp"); !os.IsNotExist(err) {
		t.Fatal("staging file left behind after save")
	}
	reopened, err := Open(s.Path())
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	if len(reopened.State().WorkEntries) != 1 {
		t.Fatalf("expected 1 entry after reload, got %d", len(reopened.State().WorkEntries))
	}
}

func TestAddWorkEntryValidation(t *testing.T) {
	s := openTestStore(t)
	if _, err := s.AddWorkEntry("", "Alpha", ""); err == nil {
		t.Fatal("expected error for missing ticket")
	}
	if _, err := s.AddWorkEntry("BUG-1", "  ", ""); err == nil {
		t.Fatal("expected error for missing project")
	}
	if len(s.State().WorkEntries) != 0 {
		t.Fatal("rejected entries must not mutate state")
	}
}

func TestAddWorkEntryUsesConfiguredDuration(t *testing.T) {
	s := openTestStore(t, WithDefaultDuration(30))
	entry, err := s.AddWorkEntry("BUG-1", "Alpha", "")
	if err != nil {
		t.Fatalf("AddWorkEntry: %v", err)
	}
	if entry.Duration != 30 {
		t.Fatalf("expected configured duration 30, got %d", entry.Duration)
	}
}

func TestUpdateAndStopCurrentWork(t *testing.T) {
	s := openTestStore(t)
	if _, err := s.AddWorkEntry("BUG-1", "Alpha", "start"); err != nil {
		t.Fatal(err)
	}

	details := "reviewing the fix"
	if err := s.UpdateCurrentWork(SessionUpdate{Details: &details}); err != nil {
		t.Fatalf("UpdateCurrentWork: %v", err)
	}
	if s.State().CurrentDetails != details {
		t.Fatalf("expected updated details, got %q", s.State().CurrentDetails)
	}
	if len(s.State().WorkEntries) != 1 {
		t.Fatal("update must not append an entry")
	}

	if err := s.StopCurrentWork(); err != nil {
		t.Fatalf("StopCurrentWork: %v", err)
	}
	if s.State().SessionActive() {
		t.Fatal("expected inactive session after stop")
	}

	reopened, err := Open(s.Path())
	if err != nil {
		t.Fatal(err)
	}
	if reopened.State().SessionActive() {
		t.Fatal("stop must persist")
	}
}

func TestWeekSummaryScenario(t *testing.T) {
	monday := time.Date(2025, 8, 25, 9, 0, 0, 0, time.Local)
	tuesday := monday.AddDate(0, 0, 1)

	clock := monday
	s := openTestStore(t, WithClock(func() time.Time { return clock }))

	if _, err := s.AddWorkEntry("X-1", "Alpha", "refactor"); err != nil {
		t.Fatal(err)
	}
	s.State().WorkEntries[len(s.State().WorkEntries)-1].Duration = 60
	if _, err := s.AddWorkEntry("X-1", "Alpha", ""); err != nil {
		t.Fatal(err)
	}
	s.State().WorkEntries[len(s.State().WorkEntries)-1].Duration = 30
	clock = tuesday
	if _, err := s.AddWorkEntry("Y-1", "Beta", "deploy"); err != nil {
		t.Fatal(err)
	}
	s.State().WorkEntries[len(s.State().WorkEntries)-1].Duration = 120

	summary := s.WeekSummaryAt(tuesday, 0)
	if summary.TotalMinutes != 210 {
		t.Fatalf("expected 210 total minutes, got %d", summary.TotalMinutes)
	}
	if summary.EntryCount != 3 {
		t.Fatalf("expected 3 entries, got %d", summary.EntryCount)
	}
	if len(summary.Projects) != 2 {
		t.Fatalf("expected 2 projects, got %d", len(summary.Projects))
	}
	alpha := summary.Projects[0]
	if alpha.Name != "Alpha" || alpha.Minutes != 90 {
		t.Fatalf("expected Alpha first with 90 minutes, got %s/%d", alpha.Name, alpha.Minutes)
	}
	if len(alpha.Tickets) != 1 || alpha.Tickets[0] != "X-1" {
		t.Fatalf("expected distinct ticket X-1, got %v", alpha.Tickets)
	}
	if len(alpha.Details) != 1 || alpha.Details[0] != "refactor" {
		t.Fatalf("expected only non-empty details, got %v", alpha.Details)
	}
}

func TestWeekSummaryOffsetExcludesOtherWeeks(t *testing.T) {
	lastMonday := time.Date(2025, 8, 18, 9, 0, 0, 0, time.Local)
	thisMonday := time.Date(2025, 8, 25, 9, 0, 0, 0, time.Local)

	clock := lastMonday
	s := openTestStore(t, WithClock(func() time.Time { return clock }))
	if _, err := s.AddWorkEntry("OLD-1", "Alpha", ""); err != nil {
		t.Fatal(err)
	}
	clock = thisMonday
	if _, err := s.AddWorkEntry("NEW-1", "Alpha", ""); err != nil {
		t.Fatal(err)
	}

	previous := s.WeekSummaryAt(thisMonday, -1)
	if previous.EntryCount != 1 || previous.Projects[0].Tickets[0] != "OLD-1" {
		t.Fatalf("expected only last week's entry, got %+v", previous)
	}
	current := s.WeekSummaryAt(thisMonday, 0)
	if current.EntryCount != 1 || current.Projects[0].Tickets[0] != "NEW-1" {
		t.Fatalf("expected only this week's entry, got %+v", current)
	}
}

func TestCleanupTestDataRemovesMarkedRows(t *testing.T) {
	s := openTestStore(t)
	if _, err := s.AddWorkEntry("PROD-1", "Alpha", "real work"); err != nil {
		t.Fatal(err)
	}
	if _, err := s.AddWorkEntry("TEST-123", "Test Project", "sample entry added via script"); err != nil {
		t.Fatal(err)
	}

	removed, err := s.CleanupTestData()
	if err != nil {
		t.Fatalf("CleanupTestData: %v", err)
	}
	if removed != 1 {
		t.Fatalf("expected 1 removed, got %d", removed)
	}
	if len(s.State().WorkEntries) != 1 || s.State().WorkEntries[0].Ticket != "PROD-1" {
		t.Fatalf("expected only PROD-1 to survive, got %+v", s.State().WorkEntries)
	}
	if s.State().SessionActive() {
		t.Fatal("test session should have been cleared")
	}
	if _, ok := s.State().Mappings.Get("Test Project"); ok {
		t.Fatal("test project mapping should have been removed")
	}
	if _, ok := s.State().Mappings.Get("Alpha"); !ok {
		t.Fatal("real project mapping must survive")
	}
}

func TestCleanupTestDataIsIdempotent(t *testing.T) {
	s := openTestStore(t)
	if _, err := s.AddWorkEntry("DEMO-1", "Demo", ""); err != nil {
		t.Fatal(err)
	}

	first, err := s.CleanupTestData()
	if err != nil {
		t.Fatal(err)
	}
	if first != 1 {
		t.Fatalf("expected 1 removed on first pass, got %d", first)
	}
	second, err := s.CleanupTestData()
	if err != nil {
		t.Fatal(err)
	}
	if second != 0 {
		t.Fatalf("expected 0 removed on second pass, got %d", second)
	}
}

func TestAutoDetectThroughStore(t *testing.T) {
	s := openTestStore(t)
	if _, err := s.AddWorkEntry("BUG-42", "Alpha", ""); err != nil {
		t.Fatal(err)
	}
	project, ok := s.AutoDetectProject("BUG-99")
	if !ok || project != "Alpha" {
		t.Fatalf("expected Alpha, got %q (matched=%v)", project, ok)
	}
	if _, ok := s.AutoDetectProject("TASK-1"); ok {
		t.Fatal("expected no match for TASK-1")
	}
}

func TestRoundTripPreservesStateEquality(t *testing.T) {
	s := openTestStore(t)
	if _, err := s.AddWorkEntry("BUG-1", "Alpha", "one"); err != nil {
		t.Fatal(err)
	}
	if _, err := s.AddWorkEntry("OPS-2", "Beta", ""); err != nil {
		t.Fatal(err)
	}

	reopened, err := Open(s.Path())
	if err != nil {
		t.Fatal(err)
	}

	want, got := s.State(), reopened.State()
	if want.CurrentTicket != got.CurrentTicket || want.CurrentProject != got.CurrentProject ||
		want.CurrentDetails != got.CurrentDetails {
		t.Fatal("current session fields differ after round trip")
	}
	if !want.LastActivity.Equal(got.LastActivity) {
		t.Fatalf("last activity differs: %v vs %v", want.LastActivity, got.LastActivity)
	}
	if len(want.WorkEntries) != len(got.WorkEntries) {
		t.Fatalf("entry count differs: %d vs %d", len(want.WorkEntries), len(got.WorkEntries))
	}
	wantNames, gotNames := want.Mappings.Names(), got.Mappings.Names()
	if len(wantNames) != len(gotNames) {
		t.Fatalf("mapping count differs: %v vs %v", wantNames, gotNames)
	}
	for i := range wantNames {
		if wantNames[i] != gotNames[i] {
			t.Fatalf("mapping order differs: %v vs %v", wantNames, gotNames)
		}
	}
}
