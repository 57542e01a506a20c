package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"bigcalc/internal/batch"
)

// maxRows bounds how many expressions are listed at once.
const maxRows = 12

type progressModel struct {
	title   string
	events  <-chan batch.Event
	spinner spinner.Model
	prog    progress.Model
	items   []exprItem
	recent  []int // indexes of items in the order they last changed
	counts  map[string]int
	width   int
	done    bool
}

type exprItem struct {
	line   int
	expr   string
	status string
}

type eventMsg batch.Event
type doneMsg struct{}

// NewProgressModel returns a Bubble Tea model that renders batch progress.
// The model quits when events is closed.
func NewProgressModel(title string, items []batch.Item, events <-chan batch.Event) tea.Model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))

	prog := progress.New(progress.WithDefaultGradient())
	prog.Width = 76

	list := make([]exprItem, len(items))
	for i, it := range items {
		list[i] = exprItem{line: it.Line, expr: it.Expr, status: "queued"}
	}
	return &progressModel{
		title:   title,
		events:  events,
		spinner: sp,
		prog:    prog,
		items:   list,
		counts:  map[string]int{"queued": len(list)},
		width:   80,
	}
}

func (m *progressModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.listenForEvent())
}

func (m *progressModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case eventMsg:
		cmd := m.applyEvent(batch.Event(msg))
		return m, tea.Batch(cmd, m.listenForEvent())
	case doneMsg:
		m.done = true
		return m, tea.Quit
	case spinner.TickMsg:
		if m.done {
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
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		return m, nil
	case progress.FrameMsg:
		progressModel, cmd := m.prog.Update(msg)
		m.prog = progressModel.(progress.Model)
		return m, cmd
	}
	return m, nil
}

func (m *progressModel) View() string {
	if len(m.items) == 0 {
		return ""
	}
	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("7"))
	header := fmt.Sprintf("%s (%d/%d)", m.title, m.finished(), len(m.items))
	if m.done {
		header = "done: " + header
	} else {
		header = m.spinner.View() + " " + header
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render(header))
	b.WriteString("\n\n")

	exprWidth := max(m.width-12-10-4, 20)
	for _, idx := range m.visible() {
		item := m.items[idx]
		status := styleStatus(item.status).Render(fmt.Sprintf("%10s", item.status))
		fmt.Fprintf(&b, "  %s %6d  %s\n", status, item.line, truncate(item.expr, exprWidth))
	}
	if hidden := len(m.items) - len(m.visible()); hidden > 0 {
		fmt.Fprintf(&b, "  %s\n", lipgloss.NewStyle().Faint(true).Render(fmt.Sprintf("… %d more", hidden)))
	}

	b.WriteString("\n")
	if m.done {
		b.WriteString(m.prog.ViewAs(1.0))
	} else {
		b.WriteString(m.prog.View())
	}
	b.WriteString("\n")
	if failed := m.counts["error"]; failed > 0 {
		b.WriteString(styleStatus("error").Render(fmt.Sprintf("%d failed", failed)))
		b.WriteString("\n")
	}
	return b.String()
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

func (m *progressModel) applyEvent(ev batch.Event) tea.Cmd {
	if ev.Index < 0 || ev.Index >= len(m.items) {
		return nil
	}
	label := statusLabel(ev)
	item := &m.items[ev.Index]
	if label == "" || label == item.status {
		return nil
	}
	m.counts[item.status]--
	m.counts[label]++
	item.status = label
	m.touch(ev.Index)
	return m.prog.SetPercent(float64(m.finished()) / float64(len(m.items)))
}

func (m *progressModel) finished() int {
	return m.counts["done"] + m.counts["cached"] + m.counts["error"]
}

// touch moves idx to the end of the recently changed list.
func (m *progressModel) touch(idx int) {
	for i, v := range m.recent {
		if v == idx {
			m.recent = append(m.recent[:i], m.recent[i+1:]...)
			break
		}
	}
	m.recent = append(m.recent, idx)
}

// visible lists running expressions first, then the most recently
// finished ones, capped at maxRows.
func (m *progressModel) visible() []int {
	if len(m.items) <= maxRows {
		out := make([]int, len(m.items))
		for i := range out {
			out[i] = i
		}
		return out
	}
	out := make([]int, 0, maxRows)
	for i := len(m.recent) - 1; i >= 0 && len(out) < maxRows; i-- {
		if m.items[m.recent[i]].status == "evaluating" {
			out = append(out, m.recent[i])
		}
	}
	for i := len(m.recent) - 1; i >= 0 && len(out) < maxRows; i-- {
		if m.items[m.recent[i]].status != "evaluating" {
			out = append(out, m.recent[i])
		}
	}
	return out
}

func statusLabel(ev batch.Event) string {
	switch ev.Status {
	case batch.StatusQueued:
		return "queued"
	case batch.StatusWorking:
		return "evaluating"
	case batch.StatusDone:
		if ev.Cached {
			return "cached"
		}
		return "done"
	case batch.StatusError:
		return "error"
	default:
		return ""
	}
}

func styleStatus(status string) lipgloss.Style {
	switch status {
	case "done", "cached":
		return lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	case "error":
		return lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	case "evaluating":
		return lipgloss.NewStyle().Foreground(lipgloss.Color("6"))
	default:
		return lipgloss.NewStyle().Foreground(lipgloss.Color("7"))
	}
}

// truncate shortens value to at most width cells, "..." included.
func truncate(value string, width int) string {
	if width <= 0 {
		return value
	}
	if runewidth.StringWidth(value) <= width {
		return value
	}
	if width <= 3 {
		return runewidth.Truncate(value, width, "")
	}
	return runewidth.Truncate(value, width, "...")
}
