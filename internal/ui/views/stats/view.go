package stats

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	statsdto "tenk/internal/modules/stats/dto"
	"tenk/internal/ui/theme"
)

type StatsPort interface {
	Pace(ctx context.Context, skillID string) (statsdto.PaceOutput, error)
	Target(ctx context.Context, skillID string) (statsdto.TargetOutput, error)
	Summary(ctx context.Context, skillID string) (statsdto.SummaryOutput, error)
}

type LoadedMsg struct {
	Pace    statsdto.PaceOutput
	Target  statsdto.TargetOutput
	Summary statsdto.SummaryOutput
	Err     error
}

type Model struct {
	port    StatsPort
	skillID string
	loaded  LoadedMsg
	width   int
	height  int
}

func New(port StatsPort) Model {
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
		m.loaded = msg
	}
	return m, nil
}

// SetSkill loads stats for the skill; call when the selection changes or
// the tab gains focus.
func (m *Model) SetSkill(skillID string) tea.Cmd {
	m.skillID = skillID
	if skillID == "" {
		return nil
	}
	port := m.port
	return func() tea.Msg {
		ctx := context.Background()
		pace, err := port.Pace(ctx, skillID)
		if err != nil {
			return LoadedMsg{Err: err}
		}
		target, err := port.Target(ctx, skillID)
		if err != nil {
			return LoadedMsg{Err: err}
		}
		summary, err := port.Summary(ctx, skillID)
		if err != nil {
			return LoadedMsg{Err: err}
		}
		return LoadedMsg{Pace: pace, Target: target, Summary: summary}
	}
}

func (m Model) View() string {
	var sb strings.Builder
	sb.WriteString(theme.Title.Render("Stats") + "\n\n")

	switch {
	case m.skillID == "":
		sb.WriteString(theme.Muted.Render("Select a skill on the Skills tab first."))
	case m.loaded.Err != nil:
		sb.WriteString(theme.Muted.Render("stats: ") + m.loaded.Err.Error())
	default:
		s := m.loaded.Summary
		p := m.loaded.Pace
		t := m.loaded.Target

		sb.WriteString(theme.Hot.Render(s.SkillName) + "\n\n")
		sb.WriteString(theme.Muted.Render("total:      ") + fmt.Sprintf("%.1f h (%.2f%% of 10,000 h)", s.TotalHours, s.Progress*100) + "\n")
		sb.WriteString(theme.Muted.Render("sessions:   ") + fmt.Sprintf("%d", s.SessionCount) + "\n")
		if !s.LastPracticedAt.IsZero() {
			sb.WriteString(theme.Muted.Render("last:       ") + s.LastPracticedAt.Format("2006-01-02") + "\n")
		}
		sb.WriteString("\n")
		sb.WriteString(theme.Muted.Render("pace:       ") + fmt.Sprintf("%.1f h/week", p.HoursPerWeek) + "\n")
		sb.WriteString(theme.Muted.Render("confidence: ") + p.Confidence + fmt.Sprintf(" (%d practice days)", p.UniqueDays) + "\n")
		sb.WriteString(theme.Muted.Render("trend:      ") + p.Trend + "\n")
		sb.WriteString(theme.Muted.Render("projection: ") + p.ProjectionDisplay + "\n")
		if t.TargetHoursPerWeek > 0 {
			sb.WriteString("\n")
			sb.WriteString(theme.Muted.Render("target:     ") + fmt.Sprintf("%.1f h/week", t.TargetHoursPerWeek) + "\n")
			gap := fmt.Sprintf("%+.1f h/week", t.GapHoursPerWeek)
			if t.GapHoursPerWeek >= 0 {
				sb.WriteString(theme.Muted.Render("gap:        ") + lipgloss.NewStyle().Foreground(theme.Green).Render(gap) + "\n")
			} else {
				sb.WriteString(theme.Muted.Render("gap:        ") + theme.Hot.Render(gap) + "\n")
			}
			sb.WriteString(theme.Muted.Render("at target:  ") + t.ProjectionDisplay + "\n")
		}
	}

	return lipgloss.NewStyle().Width(m.width).Height(m.height).Padding(1, 2).Render(sb.String())
}
