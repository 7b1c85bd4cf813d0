// Package ui renders the interactive builtin browser.
package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
)

// Row is one builtin as shown in the browser.
type Row struct {
	ID       uint32
	Name     string
	Segment  string
	Type     string
	Attrs    string
	Header   string
	Features string
	Format   string
	Langs    string
	Enabled  bool
}

type browserModel struct {
	title    string
	rows     []Row
	filtered []int
	cursor   int
	offset   int
	filter   textinput.Model
	width    int
	height   int
}

var (
	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("7"))
	cursorStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("6"))
	disabledStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	segmentStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("3"))
	detailStyle   = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
)

// NewBrowserModel returns a Bubble Tea model listing rows with a filter box.
func NewBrowserModel(title string, rows []Row) tea.Model {
	ti := textinput.New()
	ti.Placeholder = "filter by name"
	ti.Prompt = "/ "
	ti.Focus()
	m := &browserModel{
		title:  title,
		rows:   rows,
		filter: ti,
		width:  100,
		height: 30,
	}
	m.applyFilter()
	return m
}

func (m *browserModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m *browserModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		if msg.Width > 0 {
			m.width = msg.Width
		}
		if msg.Height > 0 {
			m.height = msg.Height
		}
		m.clampOffset()
		return m, nil
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "ctrl+p":
			m.move(-1)
			return m, nil
		case "down", "ctrl+n":
			m.move(1)
			return m, nil
		case "pgup":
			m.move(-m.listHeight())
			return m, nil
		case "pgdown":
			m.move(m.listHeight())
			return m, nil
		}
	}
	var cmd tea.Cmd
	before := m.filter.Value()
	m.filter, cmd = m.filter.Update(msg)
	if m.filter.Value() != before {
		m.applyFilter()
	}
	return m, cmd
}

func (m *browserModel) View() string {
	var b strings.Builder
	header := fmt.Sprintf("%s (%d/%d)", m.title, len(m.filtered), len(m.rows))
	b.WriteString(titleStyle.Render(header))
	b.WriteString("\n")
	b.WriteString(m.filter.View())
	b.WriteString("\n\n")

	nameWidth := m.width - 28
	if nameWidth < 20 {
		nameWidth = 20
	}
	end := min(m.offset+m.listHeight(), len(m.filtered))
	for i := m.offset; i < end; i++ {
		row := m.rows[m.filtered[i]]
		name := runewidth.FillRight(runewidth.Truncate(row.Name, nameWidth, "…"), nameWidth)
		line := fmt.Sprintf("%6d %s %s %s", row.ID, segmentStyle.Render(fmt.Sprintf("%-6s", row.Segment)), name, row.Attrs)
		switch {
		case i == m.cursor:
			line = cursorStyle.Render("> " + line)
		case !row.Enabled:
			line = disabledStyle.Render("  " + line)
		default:
			line = "  " + line
		}
		b.WriteString(line)
		b.WriteString("\n")
	}
	if len(m.filtered) == 0 {
		b.WriteString(disabledStyle.Render("  no builtins match"))
		b.WriteString("\n")
		return b.String()
	}
	b.WriteString("\n")
	b.WriteString(detailStyle.Render(describe(m.rows[m.filtered[m.cursor]])))
	b.WriteString("\n")
	return b.String()
}

func describe(row Row) string {
	lines := []string{
		fmt.Sprintf("%s  #%d (%s)", row.Name, row.ID, row.Segment),
		"type:     " + valueOr(row.Type, "-"),
		"attrs:    " + valueOr(row.Attrs, "-"),
		"langs:    " + row.Langs,
		"header:   " + valueOr(row.Header, "-"),
		"features: " + valueOr(row.Features, "-"),
		"format:   " + valueOr(row.Format, "-"),
	}
	if !row.Enabled {
		lines = append(lines, "disabled under the active language options")
	}
	return strings.Join(lines, "\n")
}

func valueOr(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}

// listHeight leaves room for the header, filter and detail box.
func (m *browserModel) listHeight() int {
	return max(m.height-14, 3)
}

func (m *browserModel) move(delta int) {
	if len(m.filtered) == 0 {
		return
	}
	m.cursor = min(max(m.cursor+delta, 0), len(m.filtered)-1)
	m.clampOffset()
}

func (m *browserModel) clampOffset() {
	h := m.listHeight()
	if m.cursor < m.offset {
		m.offset = m.cursor
	}
	if m.cursor >= m.offset+h {
		m.offset = m.cursor - h + 1
	}
	m.offset = max(m.offset, 0)
}

func (m *browserModel) applyFilter() {
	needle := strings.ToLower(strings.TrimSpace(m.filter.Value()))
	m.filtered = m.filtered[:0]
	for i, row := range m.rows {
		if needle == "" || strings.Contains(strings.ToLower(row.Name), needle) {
			m.filtered = append(m.filtered, i)
		}
	}
	m.cursor = 0
	m.offset = 0
}
