package ui

import (
	"fmt"
	"slices"
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/MaruForge/PennMUSHSoftcodeTools/internal/driver"
)

// chromeLines is the header, blank separators, bar and footer around the
// file rows.
const chromeLines = 6

type progressModel struct {
	title   string
	events  <-chan driver.Event
	spinner spinner.Model
	prog    progress.Model
	items   []fileItem
	index   map[string]int

	cached   int
	problems int
	width    int
	height   int // 0 until the first WindowSizeMsg; no row limit
	done     bool
}

type fileItem struct {
	path     string
	status   driver.Status
	cached   bool
	problems int
}

type eventMsg driver.Event
type doneMsg struct{}

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("7"))
	footerStyle = lipgloss.NewStyle().Faint(true)
	queuedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("7"))
)

var statusStyles = map[driver.Status]lipgloss.Style{
	driver.StatusDone:    lipgloss.NewStyle().Foreground(lipgloss.Color("2")),
	driver.StatusError:   lipgloss.NewStyle().Foreground(lipgloss.Color("1")),
	driver.StatusWorking: lipgloss.NewStyle().Foreground(lipgloss.Color("6")),
}

// NewProgressModel returns a Bubble Tea model that renders check progress.
// The model quits once events is closed.
func NewProgressModel(title string, files []string, events <-chan driver.Event) tea.Model {
	sp := spinner.New(spinner.WithSpinner(spinner.Dot))
	sp.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))

	prog := progress.New(progress.WithDefaultGradient())
	prog.Width = 76

	m := &progressModel{
		title:   title,
		events:  events,
		spinner: sp,
		prog:    prog,
		items:   make([]fileItem, len(files)),
		index:   make(map[string]int, len(files)),
		width:   80,
	}
	for i, file := range files {
		m.items[i] = fileItem{path: file, status: driver.StatusQueued}
		m.index[file] = i
	}
	return m
}

func (m *progressModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.listenForEvent())
}

func (m *progressModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case eventMsg:
		return m, tea.Batch(m.applyEvent(driver.Event(msg)), m.listenForEvent())
	case doneMsg:
		m.done = true
		return m, tea.Quit
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		if msg.Width > 0 {
			m.width = msg.Width
			m.prog.Width = msg.Width - 4
		}
		m.height = max(msg.Height, 0)
	case spinner.TickMsg:
		if !m.done {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			return m, cmd
		}
	case progress.FrameMsg:
		next, cmd := m.prog.Update(msg)
		m.prog = next.(progress.Model)
		return m, cmd
	}
	return m, nil
}

func (m *progressModel) View() string {
	if len(m.items) == 0 {
		return ""
	}
	var b strings.Builder
	b.WriteString(titleStyle.Render(m.header()))
	b.WriteString("\n\n")

	rows, hidden := m.visibleRows()
	for _, idx := range rows {
		b.WriteString(m.renderRow(m.items[idx]))
		b.WriteByte('\n')
	}
	if hidden > 0 {
		b.WriteString(footerStyle.Render(fmt.Sprintf("  ... and %d more", hidden)))
		b.WriteByte('\n')
	}

	b.WriteByte('\n')
	if m.done {
		b.WriteString(m.prog.ViewAs(1.0))
	} else {
		b.WriteString(m.prog.View())
	}
	b.WriteByte('\n')
	if m.problems > 0 {
		b.WriteString(footerStyle.Render(plural(m.problems, "problem") + " found"))
		b.WriteByte('\n')
	}
	return b.String()
}

func (m *progressModel) header() string {
	header := fmt.Sprintf("%s (%d/%d)", m.title, m.finished(), len(m.items))
	if m.cached > 0 {
		header += fmt.Sprintf(", %d cached", m.cached)
	}
	if m.done {
		return "done: " + header
	}
	return m.spinner.View() + " " + header
}

func (m *progressModel) renderRow(item fileItem) string {
	const statusWidth = 8
	label := string(item.status)
	if item.cached {
		label = "cached"
	}
	style, ok := statusStyles[item.status]
	if !ok {
		style = queuedStyle
	}
	suffix := ""
	if item.problems > 0 {
		suffix = "  " + plural(item.problems, "problem")
	}
	nameWidth := max(m.width-statusWidth-4-runewidth.StringWidth(suffix), 20)
	return fmt.Sprintf("  %s %s%s", style.Render(fmt.Sprintf("%*s", statusWidth, label)), truncate(item.path, nameWidth), suffix)
}

// visibleRows picks the rows that fit the terminal height. Working files come
// first, then failures, then queued files, then finished ones; the picked rows
// keep file order. hidden is the number of rows left out.
func (m *progressModel) visibleRows() (rows []int, hidden int) {
	limit := len(m.items)
	if m.height > 0 {
		limit = min(limit, max(m.height-chromeLines, 1))
	}
	rows = make([]int, len(m.items))
	for i := range rows {
		rows[i] = i
	}
	if limit == len(m.items) {
		return rows, 0
	}
	slices.SortStableFunc(rows, func(a, b int) int {
		return rowRank(m.items[a].status) - rowRank(m.items[b].status)
	})
	rows = rows[:limit]
	slices.Sort(rows)
	return rows, len(m.items) - limit
}

func rowRank(status driver.Status) int {
	switch status {
	case driver.StatusWorking:
		return 0
	case driver.StatusError:
		return 1
	case driver.StatusQueued:
		return 2
	default:
		return 3
	}
}

func (m *progressModel) listenForEvent() tea.Cmd {
	return func() tea.Msg {
		ev, ok := <-m.events
		if !ok {
			return doneMsg{}
		}
		return eventMsg(ev)
	}
}

func (m *progressModel) applyEvent(ev driver.Event) tea.Cmd {
	idx, ok := m.index[ev.File]
	if !ok {
		return nil
	}
	item := &m.items[idx]
	item.status = ev.Status
	if ev.Cached && !item.cached {
		item.cached = true
		m.cached++
	}
	if ev.Status == driver.StatusDone || ev.Status == driver.StatusError {
		m.problems += ev.Problems - item.problems
		item.problems = ev.Problems
	}
	return m.prog.SetPercent(m.percent())
}

func (m *progressModel) finished() int {
	n := 0
	for _, item := range m.items {
		if item.status == driver.StatusDone || item.status == driver.StatusError {
			n++
		}
	}
	return n
}

// percent counts a working file as half done.
func (m *progressModel) percent() float64 {
	if len(m.items) == 0 {
		return 0
	}
	total := 0.0
	for _, item := range m.items {
		switch item.status {
		case driver.StatusDone, driver.StatusError:
			total += 1.0
		case driver.StatusWorking:
			total += 0.5
		}
	}
	return total / float64(len(m.items))
}

func plural(n int, word string) string {
	if n == 1 {
		return "1 " + word
	}
	return fmt.Sprintf("%d %ss", n, word)
}

// truncate shortens value to width display cells, marking the cut with "...".
func truncate(value string, width int) string {
	switch {
	case width <= 0, runewidth.StringWidth(value) <= width:
		return value
	case width <= 3:
		return runewidth.Truncate(value, width, "")
	default:
		return runewidth.Truncate(value, width, "...")
	}
}
