package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Высота гистограммы в строках
const histHeight = 5

type keyMap struct {
	Next key.Binding
	Quit key.Binding
}

var defaultKeys = keyMap{
	Next: key.NewBinding(key.WithKeys("tab", "right", "l"), key.WithHelp("tab", "scans/potential")),
	Quit: key.NewBinding(key.WithKeys("q", "esc", "ctrl+c"), key.WithHelp("q", "выход")),
}

// Model — интерактивный просмотр результата агрегации
type Model struct {
	report        Report
	stats         Counters
	notifications []string
	showPotential bool
	keys          keyMap
	viewport      viewport.Model
	width         int
	height        int
}

func NewModel(rep Report, stats Counters, notifications []string) Model {
	m := Model{
		report:        rep,
		stats:         stats,
		notifications: notifications,
		keys:          defaultKeys,
		viewport:      viewport.New(80, 10),
		width:         80,
		height:        24,
	}
	m.viewport.SetContent(m.renderRecords())
	return m
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.Next):
			m.showPotential = !m.showPotential
			m.viewport.SetContent(m.renderRecords())
			m.viewport.GotoTop()
			return m, nil
		}
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		// рамки и заголовки: две гистограммы, строка вкладки, рамка списка
		reserved := 2*(histHeight+4) + 3 + 2
		m.viewport.Width = max(msg.Width-2, 10)
		m.viewport.Height = max(msg.Height-reserved, 3)
		m.viewport.SetContent(m.renderRecords())
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

// View отвечает за отрисовку интерфейса
func (m Model) View() string {
	borderStyle := lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("#874BFD")).
		Padding(0, 1)

	records := m.current()
	boxes := make([]string, 0, len(Modes)+2)
	for _, mode := range Modes {
		title := lipgloss.NewStyle().Bold(true).Render(string(mode))
		hist := m.renderHistogram(records[mode])
		boxes = append(boxes, borderStyle.Width(m.width-borderStyle.GetHorizontalFrameSize()+2).Render(title+"\n"+hist))
	}

	inputStyle := lipgloss.NewStyle().
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("#874BFD")).
		Padding(0, 1)

	labelText := lipgloss.NewStyle().Bold(true).Render(m.tabName())
	status := fmt.Sprintf("%s > строк %d, пропущено %d, агентов %d, смен режима %d   [%s] [%s]",
		labelText, m.stats.Lines, m.stats.Skipped, m.stats.Agents, m.stats.Switches,
		m.keys.Next.Help().Key+" "+m.keys.Next.Help().Desc,
		m.keys.Quit.Help().Key+" "+m.keys.Quit.Help().Desc)
	statusBar := inputStyle.Width(m.width - inputStyle.GetHorizontalFrameSize() + 2).Render(status)

	logOutputStyle := lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("#874BFD"))
	logOutput := logOutputStyle.Width(m.width - logOutputStyle.GetHorizontalFrameSize()).Render(m.viewport.View())

	boxes = append(boxes, statusBar, logOutput)
	return lipgloss.JoinVertical(lipgloss.Left, boxes...)
}

func (m Model) current() Records {
	if m.showPotential {
		return m.report.Potential
	}
	return m.report.Scans
}

func (m Model) tabName() string {
	if m.showPotential {
		return "potential"
	}
	return "scans"
}

// Список значений по режимам и уведомления о смене режима
func (m Model) renderRecords() string {
	var sb strings.Builder
	records := m.current()
	for _, mode := range Modes {
		values := records[mode]
		fmt.Fprintf(&sb, "%s (%d):\n", mode, len(values))
		if len(values) == 0 {
			sb.WriteString("  —\n")
			continue
		}
		for i, v := range values {
			fmt.Fprintf(&sb, "  #%-5d %s\n", i+1, strconv.Itoa(v))
		}
	}
	if len(m.notifications) > 0 {
		sb.WriteString("\n")
		for _, n := range m.notifications {
			sb.WriteString(n)
			sb.WriteString("\n")
		}
	}
	return strings.TrimRight(sb.String(), "\n")
}

// Визуализация гистограммы: значения в порядке лога раскладываются по корзинам
// шириной в один столбец
func (m Model) renderHistogram(values []int) string {
	if len(values) == 0 {
		return "Нет данных"
	}

	histWidth := m.width - 4 // 2 символа на каждую сторону рамки
	if histWidth < 2 {
		return "Недостаточно места для гистограммы"
	}
	if histWidth > len(values) {
		histWidth = len(values)
	}

	binCounts := make([]int, histWidth)
	for i, v := range values {
		binIdx := i * histWidth / len(values)
		binCounts[binIdx] += v
	}

	maxCount := 0
	for _, c := range binCounts {
		if c > maxCount {
			maxCount = c
		}
	}
	peak := maxCount
	if maxCount == 0 {
		maxCount = 1
	}

	var sb strings.Builder
	for i := 0; i < histHeight; i++ {
		for _, count := range binCounts {
			barHeight := (count * histHeight) / maxCount
			if count > 0 && barHeight == 0 {
				barHeight = 1
			}
			if histHeight-i-1 < barHeight {
				sb.WriteString("█")
			} else {
				sb.WriteString(" ")
			}
		}
		sb.WriteString("\n")
	}

	total := 0
	for _, v := range values {
		total += v
	}
	sb.WriteString(fmt.Sprintf("записей %d, всего %d, макс. корзина %d", len(values), total, peak))

	return sb.String()
}
