package heatmap

import (
	"context"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	statsdto "tenk/internal/modules/stats/dto"
	"tenk/internal/ui/theme"
)

const defaultWeeks = 12

type HeatmapPort interface {
	Heatmap(ctx context.Context, skillID string, weeks int) (statsdto.HeatmapOutput, error)
}

type LoadedMsg struct {
	Heatmap statsdto.HeatmapOutput
	Err     error
}

type Model struct {
	port    HeatmapPort
	skillID string
	heatmap statsdto.HeatmapOutput
	err     error
	width   int
	height  int
}

func New(port HeatmapPort) Model {
	return Model{port: port}
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
	case LoadedMsg:
		m.err = msg.Err
		if msg.Err == nil {
			m.heatmap = msg.Heatmap
		}
	}
	return m, nil
}

// SetSkill loads the grid for the skill.
func (m *Model) SetSkill(skillID string) tea.Cmd {
	m.skillID = skillID
	if skillID == "" {
		return nil
	}
	port := m.port
	return func() tea.Msg {
		out, err := port.Heatmap(context.Background(), skillID, defaultWeeks)
		return LoadedMsg{Heatmap: out, Err: err}
	}
}

func (m Model) View() string {
	var sb strings.Builder
	sb.WriteString(theme.Title.Render("Heatmap") + "\n\n")

	switch {
	case m.skillID == "":
		sb.WriteString(theme.Muted.Render("Select a skill on the Skills tab first."))
	case m.err != nil:
		sb.WriteString(theme.Muted.Render("heatmap: ") + m.err.Error())
	default:
		sb.WriteString(theme.Hot.Render(m.heatmap.SkillName) + "\n\n")
		sb.WriteString(m.renderGrid())
		sb.WriteString("\n" + m.renderLegend())
	}

	return lipgloss.NewStyle().Width(m.width).Height(m.height).Padding(1, 2).Render(sb.String())
}

// renderGrid draws one row per weekday, one column per week, oldest week
// on the left.
func (m Model) renderGrid() string {
	if len(m.heatmap.Weeks) == 0 {
		return theme.Muted.Render("no practice recorded yet") + "\n"
	}
	var sb strings.Builder
	for day := 0; day < 7; day++ {
		label := "   "
		if len(m.heatmap.Weeks[0]) > day {
			label = m.heatmap.Weeks[0][day].Date.Format("Mon")[:2] + " "
		}
		sb.WriteString(theme.Muted.Render(label))
		for _, week := range m.heatmap.Weeks {
			cell := week[day]
			sb.WriteString(lipgloss.NewStyle().Foreground(theme.HeatLevels[cell.Level]).Render("■ "))
		}
		sb.WriteString("\n")
	}
	return sb.String()
}

func (m Model) renderLegend() string {
	var sb strings.Builder
	sb.WriteString(theme.Muted.Render("less "))
	for _, color := range theme.HeatLevels {
		sb.WriteString(lipgloss.NewStyle().Foreground(color).Render("■ "))
	}
	sb.WriteString(theme.Muted.Render("more"))
	return sb.String()
}
