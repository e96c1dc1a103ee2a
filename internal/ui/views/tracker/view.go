package tracker

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	trackerdto "tenk/internal/modules/tracker/dto"
	"tenk/internal/ui/theme"
)

type TrackerPort interface {
	Start(ctx context.Context, skillID string) (trackerdto.StartOutput, error)
	Pause(ctx context.Context) (trackerdto.StatusOutput, error)
	Resume(ctx context.Context) (trackerdto.StatusOutput, error)
	Stop(ctx context.Context) (trackerdto.StopOutput, error)
	Status(ctx context.Context) (trackerdto.StatusOutput, error)
}

type StatusMsg struct {
	Status trackerdto.StatusOutput
	Err    error
}

type StoppedMsg struct {
	Out trackerdto.StopOutput
	Err error
}

// tickMsg drives the 1-second elapsed refresh while a session is live. It
// is a display cue only; the timer itself is wall-clock arithmetic.
type tickMsg time.Time

type Model struct {
	port   TrackerPort
	status trackerdto.StatusOutput
	err    error
	width  int
	height int
}

func New(port TrackerPort) Model {
	return Model{port: port}
}

func (m Model) Init() tea.Cmd {
	return m.refreshCmd()
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case StatusMsg:
		m.err = msg.Err
		if msg.Err == nil {
			m.status = msg.Status
		}
		if m.tracking() {
			return m, tick()
		}

	case StoppedMsg:
		m.err = msg.Err
		if msg.Err == nil {
			m.status = trackerdto.StatusOutput{State: "idle"}
		}

	case tickMsg:
		// The resulting StatusMsg schedules the next tick, so the loop
		// stays single-flight.
		if m.tracking() {
			return m, m.refreshCmd()
		}
	}
	return m, nil
}

func (m Model) View() string {
	var sb strings.Builder
	sb.WriteString(theme.Title.Render("Tracker") + "\n\n")

	switch {
	case m.err != nil:
		sb.WriteString(theme.Muted.Render("tracker: ") + m.err.Error() + "\n")
	case m.status.State == "" || m.status.State == "idle":
		sb.WriteString(theme.Muted.Render("No session running.") + "\n\n")
		sb.WriteString(theme.Muted.Render("Select a skill and press s to start tracking.") + "\n")
	default:
		state := m.status.State
		badge := theme.Hot.Render("● " + state)
		if state == "paused" {
			badge = theme.Muted.Render("❚❚ paused")
		}
		sb.WriteString(badge + "  " + theme.Title.Render(m.status.SkillName) + "\n\n")
		sb.WriteString(elapsedStyle.Render(formatClock(m.status.ElapsedSeconds)) + "\n\n")
		sb.WriteString(theme.Muted.Render("started: ") + m.status.StartedAt.Local().Format("15:04:05") + "\n")
		if m.status.PausedSeconds > 0 {
			sb.WriteString(theme.Muted.Render("paused:  ") + formatClock(m.status.PausedSeconds) + "\n")
		}
		sb.WriteString("\n" + theme.Muted.Render("p: pause/resume  x: stop"))
	}

	return lipgloss.NewStyle().Width(m.width).Height(m.height).Padding(1, 2).Render(sb.String())
}

var elapsedStyle = lipgloss.NewStyle().Foreground(theme.Green).Bold(true)

// StartTracking begins a session on the skill.
func (m Model) StartTracking(skillID string) tea.Cmd {
	return func() tea.Msg {
		if _, err := m.port.Start(context.Background(), skillID); err != nil {
			return StatusMsg{Err: err}
		}
		status, err := m.port.Status(context.Background())
		return StatusMsg{Status: status, Err: err}
	}
}

// TogglePause pauses a running session or resumes a paused one.
func (m Model) TogglePause() tea.Cmd {
	paused := m.status.State == "paused"
	return func() tea.Msg {
		var status trackerdto.StatusOutput
		var err error
		if paused {
			status, err = m.port.Resume(context.Background())
		} else {
			status, err = m.port.Pause(context.Background())
		}
		return StatusMsg{Status: status, Err: err}
	}
}

// StopTracking closes the open session.
func (m Model) StopTracking() tea.Cmd {
	return func() tea.Msg {
		out, err := m.port.Stop(context.Background())
		return StoppedMsg{Out: out, Err: err}
	}
}

// Refresh refetches the tracking status.
func (m Model) Refresh() tea.Cmd {
	return m.refreshCmd()
}

func (m Model) tracking() bool {
	return m.status.State == "running" || m.status.State == "paused"
}

func (m Model) refreshCmd() tea.Cmd {
	return func() tea.Msg {
		status, err := m.port.Status(context.Background())
		return StatusMsg{Status: status, Err: err}
	}
}

func tick() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func formatClock(seconds int64) string {
	h := seconds / 3600
	m := (seconds % 3600) / 60
	s := seconds % 60
	return fmt.Sprintf("%02d:%02d:%02d", h, m, s)
}
