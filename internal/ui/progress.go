// Package ui renders interactive terminal progress for batch diagnostics.
package ui

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"asmodeus/internal/driver"
)

// maxRows bounds the file list; finished clean files leave it first.
const maxRows = 12

var (
	headerStyle = lipgloss.NewStyle().Bold(true)
	statusStyle = map[driver.Status]lipgloss.Style{
		driver.StatusQueued:  lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
		driver.StatusWorking: lipgloss.NewStyle().Foreground(lipgloss.Color("6")),
		driver.StatusDone:    lipgloss.NewStyle().Foreground(lipgloss.Color("2")),
		driver.StatusError:   lipgloss.NewStyle().Foreground(lipgloss.Color("1")),
	}
	problemStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("3"))
)

type row struct {
	path    string
	status  driver.Status
	cached  bool
	errors  int
	elapsed time.Duration
}

func (r *row) final() bool {
	return r.status == driver.StatusDone || r.status == driver.StatusError
}

// tally counts finished files by outcome.
type tally struct {
	clean, withErrors, cached, failed int
}

func (t tally) finished() int { return t.clean + t.withErrors + t.failed }

func (t tally) String() string {
	return fmt.Sprintf("%d clean, %d with errors, %d cached, %d unreadable", t.clean, t.withErrors, t.cached, t.failed)
}

type batchModel struct {
	title  string
	events <-chan driver.Event
	spin   spinner.Model
	bar    progress.Model
	rows   []*row
	byPath map[string]*row
	tally  tally
	width  int
	closed bool
}

type eventMsg driver.Event
type doneMsg struct{}

// NewProgressModel returns a Bubble Tea model following the analysis of
// files through events. It quits once events is closed.
func NewProgressModel(title string, files []string, events <-chan driver.Event) tea.Model {
	spin := spinner.New()
	spin.Spinner = spinner.MiniDot
	spin.Style = statusStyle[driver.StatusWorking]

	m := &batchModel{
		title:  title,
		events: events,
		spin:   spin,
		bar:    progress.New(progress.WithDefaultGradient(), progress.WithWidth(60)),
		byPath: make(map[string]*row, len(files)),
		width:  80,
	}
	for _, f := range files {
		r := &row{path: f, status: driver.StatusQueued}
		m.rows = append(m.rows, r)
		m.byPath[f] = r
	}
	return m
}

// Run drives the model on out until events is closed.
func Run(title string, files []string, events <-chan driver.Event, out io.Writer) error {
	_, err := tea.NewProgram(NewProgressModel(title, files, events), tea.WithOutput(out), tea.WithInput(nil)).Run()
	return err
}

func (m *batchModel) Init() tea.Cmd {
	return tea.Batch(m.spin.Tick, m.next())
}

func (m *batchModel) next() tea.Cmd {
	return func() tea.Msg {
		if ev, ok := <-m.events; ok {
			return eventMsg(ev)
		}
		return doneMsg{}
	}
}

func (m *batchModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case eventMsg:
		return m, tea.Batch(m.record(driver.Event(msg)), m.next())
	case doneMsg:
		m.closed = true
		return m, tea.Quit
	case spinner.TickMsg:
		if m.closed {
			return m, nil
		}
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd
	case progress.FrameMsg:
		bar, cmd := m.bar.Update(msg)
		m.bar = bar.(progress.Model)
		return m, cmd
	case tea.WindowSizeMsg:
		if msg.Width > 0 {
			m.width = msg.Width
			m.bar.Width = max(msg.Width-4, 10)
		}
	}
	return m, nil
}

// record applies ev; a file is counted once, on its first final status.
func (m *batchModel) record(ev driver.Event) tea.Cmd {
	r, ok := m.byPath[ev.File]
	if !ok || r.final() {
		return nil
	}
	r.status, r.cached, r.errors, r.elapsed = ev.Status, ev.Cached, ev.Errors, ev.Elapsed
	switch {
	case ev.Status == driver.StatusError:
		m.tally.failed++
	case ev.Status != driver.StatusDone:
		return nil
	case ev.Errors > 0:
		m.tally.withErrors++
	default:
		m.tally.clean++
	}
	if ev.Cached {
		m.tally.cached++
	}
	return m.bar.SetPercent(float64(m.tally.finished()) / float64(len(m.rows)))
}

func (m *batchModel) View() string {
	if len(m.rows) == 0 {
		return ""
	}
	var b strings.Builder
	lead := m.spin.View()
	if m.closed {
		lead = "done:"
	}
	b.WriteString(headerStyle.Render(fmt.Sprintf("%s %s %d/%d", lead, m.title, m.tally.finished(), len(m.rows))))
	b.WriteString("\n\n")

	nameWidth := max(m.width-34, 20)
	for _, r := range m.visible() {
		status := statusStyle[r.status].Render(fmt.Sprintf("%-7s", r.status))
		fmt.Fprintf(&b, "  %s %s%s\n", status, truncate(r.path, nameWidth), detail(r))
	}

	b.WriteString("\n")
	if m.closed {
		b.WriteString(m.bar.ViewAs(1))
	} else {
		b.WriteString(m.bar.View())
	}
	b.WriteString("\n" + m.tally.String() + "\n")
	return b.String()
}

// visible picks up to maxRows rows, preferring files that are in flight or
// reported problems over queued and clean ones.
func (m *batchModel) visible() []*row {
	if len(m.rows) <= maxRows {
		return m.rows
	}
	out := make([]*row, 0, maxRows)
	for pass := 0; pass < 3 && len(out) < maxRows; pass++ {
		for _, r := range m.rows {
			if len(out) == maxRows {
				break
			}
			if rank(r) == pass {
				out = append(out, r)
			}
		}
	}
	return out
}

func rank(r *row) int {
	switch {
	case r.status == driver.StatusWorking, r.status == driver.StatusError, r.errors > 0:
		return 0
	case r.status == driver.StatusQueued:
		return 1
	default:
		return 2
	}
}

func detail(r *row) string {
	switch r.status {
	case driver.StatusError:
		return "  unreadable"
	case driver.StatusDone:
	default:
		return ""
	}
	s := fmt.Sprintf("  %d error(s)", r.errors)
	if r.errors > 0 {
		s = problemStyle.Render(s)
	}
	if r.cached {
		return s + " (cached)"
	}
	return s + " in " + r.elapsed.Round(time.Microsecond).String()
}

func truncate(value string, width int) string {
	if width <= 0 || runewidth.StringWidth(value) <= width {
		return value
	}
	if width <= 3 {
		return runewidth.Truncate(value, width, "")
	}
	return runewidth.Truncate(value, width-3, "...")
}
