package ui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"builtinreg/internal/catalog"
)

func sampleRows() []Row {
	return []Row{
		{ID: 1, Name: "__builtin_abs", Segment: "core", Type: "ii", Attrs: "ncF", Langs: "all", Enabled: true},
		{ID: 2, Name: "__builtin_trap", Segment: "core", Type: "v", Attrs: "nr", Langs: "all", Enabled: true},
		{ID: 3, Name: "__builtin_ia32_pause", Segment: "target", Type: "v", Langs: "all_gnu"},
		{ID: 4, Name: "abs", Segment: "core", Type: "ii", Attrs: "fnc", Header: "stdlib.h", Langs: "all", Enabled: true},
	}
}

func typeText(m tea.Model, s string) tea.Model {
	for _, r := range s {
		m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
	return m
}

func TestBrowserFilter(t *testing.T) {
	m := NewBrowserModel("builtins", sampleRows())
	if view := m.View(); !strings.Contains(view, "(4/4)") {
		t.Fatalf("initial header missing count:\n%s", view)
	}
	m = typeText(m, "abs")
	bm := m.(*browserModel)
	if len(bm.filtered) != 2 {
		t.Fatalf("filter %q matched %d rows, want 2", "abs", len(bm.filtered))
	}
	view := m.View()
	if !strings.Contains(view, "(2/4)") || strings.Contains(view, "__builtin_trap") {
		t.Fatalf("filtered view wrong:\n%s", view)
	}

	m = typeText(m, "zzz")
	if view := m.View(); !strings.Contains(view, "no builtins match") {
		t.Fatalf("empty filter result not reported:\n%s", view)
	}
}

func TestBrowserNavigation(t *testing.T) {
	m := NewBrowserModel("builtins", sampleRows())
	m, _ = m.Update(tea.WindowSizeMsg{Width: 80, Height: 20})
	for range 10 {
		m, _ = m.Update(tea.KeyMsg{Type: tea.KeyDown})
	}
	bm := m.(*browserModel)
	if bm.cursor != 3 {
		t.Fatalf("cursor = %d, want clamped to 3", bm.cursor)
	}
	if !strings.Contains(m.View(), "header:   stdlib.h") {
		t.Fatalf("detail box does not describe the selected row:\n%s", m.View())
	}
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyPgUp})
	if m.(*browserModel).cursor != 0 {
		t.Fatalf("pgup did not return to the top")
	}
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyDown})
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyDown})
	if !strings.Contains(m.View(), "disabled under the active language options") {
		t.Fatalf("disabled row not flagged:\n%s", m.View())
	}
}

func TestBrowserQuit(t *testing.T) {
	m := NewBrowserModel("builtins", sampleRows())
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if cmd == nil {
		t.Fatalf("esc should quit")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Fatalf("esc returned %T, want tea.QuitMsg", cmd())
	}
}

func TestProgressModel(t *testing.T) {
	events := make(chan catalog.Event, 8)
	m := NewProgressModel("loading tables", []string{"a.toml", "b.toml"}, events)

	m, _ = m.Update(eventMsg{File: "a.toml", Stage: catalog.StageParse, Status: catalog.StatusWorking})
	m, _ = m.Update(eventMsg{File: "b.toml", Stage: catalog.StageCache, Status: catalog.StatusCached, Records: 4})
	view := m.View()
	if !strings.Contains(view, "parsing") || !strings.Contains(view, "cached") {
		t.Fatalf("statuses not rendered:\n%s", view)
	}
	if !strings.Contains(view, "(4 builtins)") {
		t.Fatalf("record count missing:\n%s", view)
	}
	pm := m.(*progressModel)
	if got := pm.fraction(); got != 0.75 {
		t.Fatalf("fraction = %v, want 0.75", got)
	}

	// unknown files are ignored
	m, _ = m.Update(eventMsg{File: "c.toml", Status: catalog.StatusDone, Records: 9})
	if pm.records != 4 {
		t.Fatalf("records = %d after unknown file", pm.records)
	}

	m, cmd := m.Update(doneMsg{})
	if cmd == nil || !strings.Contains(m.View(), "done: loading tables") {
		t.Fatalf("done state not rendered:\n%s", m.View())
	}
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		in    string
		width int
		want  string
	}{
		{"short", 10, "short"},
		{"a-long-table-name.toml", 10, "a-long-..."},
		{"abcdef", 3, "abc"},
		{"abc", 0, "abc"},
	}
	for _, tt := range tests {
		if got := truncate(tt.in, tt.width); got != tt.want {
			t.Fatalf("truncate(%q, %d) = %q, want %q", tt.in, tt.width, got, tt.want)
		}
	}
}
