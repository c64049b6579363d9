// Package ui renders run progress as a Bubble Tea view.
package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	runprogress "github.com/pilgerone/PHP-CS-Fixer/internal/progress"
)

// maxVisible caps the file list; the rest is summarised in one line.
const maxVisible = 20

type progressModel struct {
	title   string
	events  <-chan runprogress.Event
	spinner spinner.Model
	prog    progress.Model
	items   []fileItem
	index   map[string]int
	done    int
	failed  int
	width   int
	closed  bool
}

type fileItem struct {
	path   string
	status runprogress.Status
}

type eventMsg runprogress.Event
type doneMsg struct{}

// NewProgressModel returns a model that follows events until the channel
// is closed.
func NewProgressModel(title string, files []string, events <-chan runprogress.Event) tea.Model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))

	prog := progress.New(progress.WithDefaultGradient())
	prog.Width = 76

	items := make([]fileItem, 0, len(files))
	index := make(map[string]int, len(files))
	for i, file := range files {
		items = append(items, fileItem{path: file, status: runprogress.StatusQueued})
		index[file] = i
	}
	return &progressModel{
		title:   title,
		events:  events,
		spinner: sp,
		prog:    prog,
		items:   items,
		index:   index,
		width:   80,
	}
}

func (m *progressModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.listenForEvent())
}

func (m *progressModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case eventMsg:
		cmd := m.applyEvent(runprogress.Event(msg))
		return m, tea.Batch(cmd, m.listenForEvent())
	case doneMsg:
		m.closed = true
		return m, tea.Quit
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		return m, nil
	case spinner.TickMsg:
		if m.closed {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	case tea.WindowSizeMsg:
		if msg.Width > 0 {
			m.width = msg.Width
			m.prog.Width = msg.Width - 4
		}
		return m, nil
	case progress.FrameMsg:
		model, cmd := m.prog.Update(msg)
		m.prog = model.(progress.Model)
		return m, cmd
	}
	return m, nil
}

func (m *progressModel) View() string {
	if len(m.items) == 0 {
		return ""
	}
	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("7"))
	header := fmt.Sprintf("%s (%d/%d)", m.title, m.done, len(m.items))
	if m.closed {
		header = "done: " + header
	} else {
		header = m.spinner.View() + " " + header
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render(header))
	b.WriteString("\n\n")

	statusWidth := 22
	nameWidth := max(20, m.width-statusWidth-4)
	shown := 0
	for _, item := range m.visible() {
		label := statusLabel(item.status)
		styled := styleStatus(item.status).Render(fmt.Sprintf("%*s", statusWidth, label))
		fmt.Fprintf(&b, "  %s %s\n", styled, truncate(item.path, nameWidth))
		shown++
	}
	if hidden := len(m.items) - shown; hidden > 0 {
		fmt.Fprintf(&b, "  %*s %d more\n", statusWidth, "", hidden)
	}

	b.WriteString("\n")
	if m.closed {
		b.WriteString(m.prog.ViewAs(1.0))
	} else {
		b.WriteString(m.prog.View())
	}
	b.WriteString("\n")
	if m.failed > 0 {
		b.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color("1")).Render(fmt.Sprintf("%d file(s) failed", m.failed)))
		b.WriteString("\n")
	}
	return b.String()
}

// visible prefers files in flight, then finished ones, then queued ones.
func (m *progressModel) visible() []fileItem {
	if len(m.items) <= maxVisible {
		return m.items
	}
	out := make([]fileItem, 0, maxVisible)
	for _, pass := range []func(runprogress.Status) bool{
		func(s runprogress.Status) bool { return s == runprogress.StatusWorking },
		func(s runprogress.Status) bool { return s != runprogress.StatusWorking && s != runprogress.StatusQueued },
		func(s runprogress.Status) bool { return s == runprogress.StatusQueued },
	} {
		for _, item := range m.items {
			if len(out) == maxVisible {
				return out
			}
			if pass(item.status) {
				out = append(out, item)
			}
		}
	}
	return out
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

func (m *progressModel) applyEvent(ev runprogress.Event) tea.Cmd {
	idx, ok := m.index[ev.File]
	if !ok {
		return nil
	}
	prev := m.items[idx].status
	m.items[idx].status = ev.Status
	if ev.Status.Final() && !prev.Final() {
		m.done++
		switch ev.Status {
		case runprogress.StatusException, runprogress.StatusInvalidInput, runprogress.StatusInvalidOutput:
			m.failed++
		}
	}
	return m.prog.SetPercent(float64(m.done) / float64(len(m.items)))
}

func statusLabel(status runprogress.Status) string {
	switch status {
	case runprogress.StatusWorking:
		return "fixing"
	case runprogress.StatusUnknown:
		return "?"
	default:
		return string(status)
	}
}

func styleStatus(status runprogress.Status) lipgloss.Style {
	switch status {
	case runprogress.StatusFixed:
		return lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	case runprogress.StatusException, runprogress.StatusInvalidInput, runprogress.StatusInvalidOutput:
		return lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	case runprogress.StatusWorking:
		return lipgloss.NewStyle().Foreground(lipgloss.Color("6"))
	case runprogress.StatusSkipped:
		return lipgloss.NewStyle().Foreground(lipgloss.Color("3"))
	default:
		return lipgloss.NewStyle().Foreground(lipgloss.Color("7"))
	}
}

func truncate(value string, width int) string {
	if width <= 0 || runewidth.StringWidth(value) <= width {
		return value
	}
	if width <= 3 {
		return runewidth.Truncate(value, width, "")
	}
	// хвост пути информативнее начала
	runes := []rune(value)
	for len(runes) > 0 && runewidth.StringWidth(string(runes))+3 > width {
		runes = runes[1:]
	}
	return "..." + string(runes)
}
