package main

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
)

func scenarioModel(t *testing.T) Model {
	t.Helper()
	agg := scenarioAggregator(t)
	return NewModel(NewReport(agg, false), agg.Stats(), []string{"matched size to SMALL"})
}

func TestModelViewShowsBothModes(t *testing.T) {
	m := scenarioModel(t)
	out := m.View()
	for _, want := range []string{"LARGE", "SMALL", "scans", "matched size to SMALL", "#1"} {
		if !strings.Contains(out, want) {
			t.Errorf("View() missing %q:\n%s", want, out)
		}
	}
}

func TestModelTabSwitchesRecords(t *testing.T) {
	m := scenarioModel(t)
	updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyTab})
	m = updated.(Model)
	if !m.showPotential {
		t.Fatalf("tab should switch to potential view")
	}
	if got := m.renderRecords(); !strings.Contains(got, "LARGE (0)") || !strings.Contains(got, "SMALL (1)") {
		t.Errorf("renderRecords() = %q", got)
	}
	updated, _ = m.Update(tea.KeyMsg{Type: tea.KeyTab})
	if updated.(Model).showPotential {
		t.Errorf("second tab should switch back to scans")
	}
}

func TestModelQuit(t *testing.T) {
	m := scenarioModel(t)
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
	if cmd == nil {
		t.Fatalf("q should return a command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Errorf("q should quit")
	}
}

func TestModelWindowResize(t *testing.T) {
	m := scenarioModel(t)
	updated, _ := m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	m = updated.(Model)
	if m.width != 120 || m.height != 40 {
		t.Errorf("size = %dx%d, want 120x40", m.width, m.height)
	}
	if m.viewport.Width != 118 {
		t.Errorf("viewport width = %d, want 118", m.viewport.Width)
	}
	if m.viewport.Height < 3 {
		t.Errorf("viewport height = %d", m.viewport.Height)
	}
}

func TestRenderHistogram(t *testing.T) {
	m := Model{width: 10}
	if got := m.renderHistogram(nil); got != "Нет данных" {
		t.Errorf("renderHistogram(nil) = %q", got)
	}

	out := m.renderHistogram([]int{1, 0, 4})
	lines := strings.Split(out, "\n")
	if len(lines) != histHeight+1 {
		t.Fatalf("expected %d lines, got %d:\n%s", histHeight+1, len(lines), out)
	}
	// три значения — три столбца; самый высокий заполняет верхнюю строку
	if lines[0] != "  █" {
		t.Errorf("top row = %q", lines[0])
	}
	if lines[histHeight-1] != "█ █" {
		t.Errorf("bottom row = %q", lines[histHeight-1])
	}
	if !strings.Contains(lines[histHeight], "всего 5") {
		t.Errorf("label = %q", lines[histHeight])
	}

	if got := (Model{width: 3}).renderHistogram([]int{1}); !strings.Contains(got, "Недостаточно") {
		t.Errorf("narrow histogram = %q", got)
	}
}

func TestModelViewEmptyReport(t *testing.T) {
	agg := NewAggregator(nil)
	out := NewModel(NewReport(agg, false), agg.Stats(), nil).View()
	if strings.Count(out, "Нет данных") != len(Modes) {
		t.Errorf("View() should show an empty histogram per mode:\n%s", out)
	}
	if !strings.Contains(out, "LARGE (0)") || !strings.Contains(out, "SMALL (0)") {
		t.Errorf("View() missing empty record list:\n%s", out)
	}
}
