// internal/tui/dashboard.go
//
// Read-only terminal dashboard for the tracker. It follows The Elm
// Architecture that bubbletea imposes: a model, an Update that reacts to
// messages, and a View that renders state to a string. The dashboard never
// mutates tracker state; it reloads a snapshot from disk on a timer so a
// second terminal always shows what the CLI just recorded.

package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/kingrea/worklog/internal/store"
)

const refreshInterval = 30 * time.Second

var (
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1)

	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#874BFD")).
			Padding(1, 2).
			MarginBottom(1)

	activeStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#04B575")).
			Bold(true)

	idleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B")).
			Bold(true)

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#626262"))
)

// Snapshot is everything the dashboard shows, captured at one instant.
type Snapshot struct {
	Active   bool
	Ticket   string
	Project  string
	Details  string
	Summary  store.WeekSummary
	Journal  []string
	DataPath string
}

// LoadFunc produces a fresh snapshot. The dashboard calls it on startup and
// on every refresh tick.
type LoadFunc func() (Snapshot, error)

type keyMap struct {
	Refresh key.Binding
	Quit    key.Binding
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Refresh, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{{k.Refresh, k.Quit}}
}

func defaultKeyMap() keyMap {
	return keyMap{
		Refresh: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "refresh"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "esc", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

type tickMsg time.Time

type snapshotMsg struct {
	snap Snapshot
	err  error
}

// Dashboard is the bubbletea model.
type Dashboard struct {
	load   LoadFunc
	snap   Snapshot
	err    error
	loaded bool
	width  int
	height int
	keys   keyMap
	help   help.Model
}

// New builds a dashboard around a snapshot loader.
func New(load LoadFunc) Dashboard {
	return Dashboard{
		load: load,
		keys: defaultKeyMap(),
		help: help.New(),
	}
}

// Run starts the dashboard in the alternate screen.
func Run(load LoadFunc) error {
	_, err := tea.NewProgram(New(load), tea.WithAltScreen()).Run()
	return err
}

func (d Dashboard) Init() tea.Cmd {
	return tea.Batch(d.refreshCmd(), tickCmd())
}

func (d Dashboard) refreshCmd() tea.Cmd {
	return func() tea.Msg {
		snap, err := d.load()
		return snapshotMsg{snap: snap, err: err}
	}
}

func tickCmd() tea.Cmd {
	return tea.Tick(refreshInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (d Dashboard) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, d.keys.Quit):
			return d, tea.Quit
		case key.Matches(msg, d.keys.Refresh):
			return d, d.refreshCmd()
		}
	case tea.WindowSizeMsg:
		d.width = msg.Width
		d.height = msg.Height
		d.help.Width = msg.Width
	case tickMsg:
		return d, tea.Batch(d.refreshCmd(), tickCmd())
	case snapshotMsg:
		d.err = msg.err
		if msg.err == nil {
			d.snap = msg.snap
			d.loaded = true
		}
	}
	return d, nil
}

func (d Dashboard) View() string {
	if !d.loaded && d.err == nil {
		return "Loading..."
	}

	width := d.width
	if width < 40 {
		width = 80
	}
	boxWidth := width - 4

	header := headerStyle.Width(width).Render(
		fmt.Sprintf("Worklog Dashboard - %s", time.Now().Format("Jan 2, 2006 15:04")),
	)

	sections := []string{header}
	if d.err != nil {
		sections = append(sections, boxStyle.Width(boxWidth).Render(
			idleStyle.Render(fmt.Sprintf("load failed: %v", d.err)),
		))
	} else {
		sections = append(sections,
			d.sessionBox(boxWidth),
			d.weekBox(boxWidth),
			d.journalBox(boxWidth),
		)
	}
	sections = append(sections, dimStyle.Render(d.snap.DataPath), d.help.View(d.keys))

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (d Dashboard) sessionBox(width int) string {
	var body string
	if d.snap.Active {
		body = fmt.Sprintf("%s\n\nProject: %s\nTicket:  %s",
			activeStyle.Render("WORKING"), d.snap.Project, d.snap.Ticket)
		if d.snap.Details != "" {
			body += fmt.Sprintf("\nDetails: %s", d.snap.Details)
		}
	} else {
		body = idleStyle.Render("NO ACTIVE SESSION")
	}
	return boxStyle.Width(width).Render("CURRENT SESSION\n\n" + body)
}

func (d Dashboard) weekBox(width int) string {
	summary := d.snap.Summary
	var b strings.Builder
	b.WriteString("THIS WEEK\n\n")
	fmt.Fprintf(&b, "Total: %.1f hours across %d entries\n", summary.Hours(), summary.EntryCount)
	for _, project := range summary.Projects {
		fmt.Fprintf(&b, "  %s %s: %.1fh (%s)\n",
			activeStyle.Render("•"), project.Name, project.Hours(),
			strings.Join(project.Tickets, ", "))
	}
	if len(summary.Projects) == 0 {
		b.WriteString(dimStyle.Render("  nothing recorded yet\n"))
	}
	return boxStyle.Width(width).Render(strings.TrimRight(b.String(), "\n"))
}

func (d Dashboard) journalBox(width int) string {
	var b strings.Builder
	b.WriteString("RECENT ACTIVITY\n\n")
	if len(d.snap.Journal) == 0 {
		b.WriteString(dimStyle.Render("journal is empty"))
	} else {
		for _, line := range d.snap.Journal {
			b.WriteString(line + "\n")
		}
	}
	return boxStyle.Width(width).Render(strings.TrimRight(b.String(), "\n"))
}
