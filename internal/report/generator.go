package report

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/gobwas/glob"

	"github.com/kingrea/worklog/internal/track"
)

const (
	filenamePrefix     = "weekly_report_"
	filenameExt        = ".md"
	filenameDateLayout = "20060102"
)

// reportPattern matches the deterministic report naming scheme, which is how
// previously generated reports are discovered.
var reportPattern = glob.MustCompile(filenamePrefix + "*" + filenameExt)

// Generator writes weekly reports into a reports directory and finds them
// again later by name.
type Generator struct {
	dir string
	now func() time.Time
}

// GeneratorOption customizes a Generator during construction.
type GeneratorOption func(*Generator)

// WithClock overrides the clock used to resolve week offsets.
func WithClock(clock func() time.Time) GeneratorOption {
	return func(g *Generator) {
		g.now = clock
	}
}

// NewGenerator builds a generator rooted at dir, creating it if needed.
func NewGenerator(dir string, opts ...GeneratorOption) (*Generator, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("report: ensure reports dir: %w", err)
	}
	g := &Generator{dir: dir, now: time.Now}
	for _, opt := range opts {
		opt(g)
	}
	return g, nil
}

// Dir returns the reports directory.
func (g *Generator) Dir() string {
	return g.dir
}

// Filename derives the deterministic report name for a week. The same date
// range always yields the same name, so callers can re-derive it to look up
// a prior week's report.
func Filename(weekStart, weekEnd time.Time) string {
	return fmt.Sprintf("%s%s-%s%s",
		filenamePrefix,
		weekStart.Format(filenameDateLayout),
		weekEnd.Format(filenameDateLayout),
		filenameExt)
}

// PathFor returns where the report for a week lives, whether or not it has
// been generated yet.
func (g *Generator) PathFor(weekStart, weekEnd time.Time) string {
	return filepath.Join(g.dir, Filename(weekStart, weekEnd))
}

// WriteWeekly renders the report for the week offset weeks from the current
// one and writes it to its deterministic path. A week with no entries still
// produces a valid report file.
func (g *Generator) WriteWeekly(state *track.AppState, offset int) (string, error) {
	start, end := track.WeekRange(g.now(), offset)
	entries := state.EntriesInWeek(start, end)
	content := Render(entries, start, end)

	path := g.PathFor(start, end)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return "", fmt.Errorf("report: write %s: %w", filepath.Base(path), err)
	}
	return path, nil
}

// ListReports returns the paths of all generated reports, newest first by
// name (the date-stamped names make lexicographic and chronological order
// agree).
func (g *Generator) ListReports() ([]string, error) {
	items, err := os.ReadDir(g.dir)
	if err != nil {
		return nil, fmt.Errorf("report: read reports dir: %w", err)
	}
	var paths []string
	for _, item := range items {
		if item.IsDir() || !reportPattern.Match(item.Name()) {
			continue
		}
		paths = append(paths, filepath.Join(g.dir, item.Name()))
	}
	sort.Sort(sort.Reverse(sort.StringSlice(paths)))
	return paths, nil
}

// Week describes one previously generated report.
type Week struct {
	Display string // MM/DD/YYYY - MM/DD/YYYY
	Path    string
	Start   time.Time
	End     time.Time
}

// AvailableWeeks parses generated report filenames back into date ranges,
// newest first. Files that merely resemble the naming scheme are skipped.
func (g *Generator) AvailableWeeks() ([]Week, error) {
	paths, err := g.ListReports()
	if err != nil {
		return nil, err
	}
	var weeks []Week
	for _, path := range paths {
		start, end, ok := parseFilename(filepath.Base(path))
		if !ok {
			continue
		}
		weeks = append(weeks, Week{
			Display: fmt.Sprintf("%s - %s",
				start.Format(dateDisplayLayout), end.Format(dateDisplayLayout)),
			Path:  path,
			Start: start,
			End:   end,
		})
	}
	sort.Slice(weeks, func(i, j int) bool { return weeks[i].Start.After(weeks[j].Start) })
	return weeks, nil
}

// parseFilename extracts the week range from weekly_report_YYYYMMDD-YYYYMMDD.md.
func parseFilename(name string) (start, end time.Time, ok bool) {
	datePart := strings.TrimSuffix(strings.TrimPrefix(name, filenamePrefix), filenameExt)
	if len(datePart) != 17 {
		return time.Time{}, time.Time{}, false
	}
	parts := strings.SplitN(datePart, "-", 2)
	if len(parts) != 2 {
		return time.Time{}, time.Time{}, false
	}
	start, err := time.ParseInLocation(filenameDateLayout, parts[0], time.Local)
	if err != nil {
		return time.Time{}, time.Time{}, false
	}
	end, err = time.ParseInLocation(filenameDateLayout, parts[1], time.Local)
	if err != nil {
		return time.Time{}, time.Time{}, false
	}
	return start, end, true
}
