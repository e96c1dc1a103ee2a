package skills

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	skilldto "tenk/internal/modules/skill/dto"
	"tenk/internal/ui/theme"
)

type SkillPort interface {
	List(ctx context.Context) ([]skilldto.SkillOutput, error)
	Get(ctx context.Context, skillID string) (skilldto.SkillDetailOutput, error)
}

type SkillsLoadedMsg struct {
	Skills []skilldto.SkillOutput
	Err    error
}

type DetailLoadedMsg struct {
	Detail skilldto.SkillDetailOutput
	Err    error
}

type skillItem struct {
	skill skilldto.SkillOutput
}

func (i skillItem) Title() string {
	dot := lipgloss.NewStyle().Foreground(theme.SkillColor(i.skill.PaletteID, i.skill.ColorIndex)).Render("●")
	return dot + " " + i.skill.Name
}

func (i skillItem) Description() string {
	return fmt.Sprintf("%.1f h  %.2f%% of mastery", float64(i.skill.TotalSeconds)/3600, i.skill.Progress*100)
}

func (i skillItem) FilterValue() string { return i.skill.Name }

type Model struct {
	port     SkillPort
	list     list.Model
	detail   skilldto.SkillDetailOutput
	preview  viewport.Model
	progress progress.Model
	spinner  spinner.Model
	loading  bool
	width    int
	height   int
}

func New(port SkillPort) Model {
	delegate := list.NewDefaultDelegate()
	delegate.Styles.SelectedTitle = delegate.Styles.SelectedTitle.Foreground(theme.Lavender).BorderForeground(theme.Lavender)
	delegate.Styles.SelectedDesc = delegate.Styles.SelectedDesc.Foreground(theme.Sapphire).BorderForeground(theme.Lavender)

	l := list.New(nil, delegate, 0, 0)
	l.Title = "Skills"
	l.Styles.Title = theme.Title
	l.SetShowStatusBar(true)
	l.SetFilteringEnabled(true)
	l.SetShowHelp(false)

	vp := viewport.New(0, 0)
	vp.Style = lipgloss.NewStyle().
		Background(theme.Mantle).
		Foreground(theme.Text).
		Padding(1)

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(theme.Lavender)

	return Model{
		port:     port,
		list:     l,
		preview:  vp,
		progress: progress.New(progress.WithDefaultGradient()),
		spinner:  sp,
		loading:  true,
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.loadSkillsCmd(), m.spinner.Tick)
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resize()

	case SkillsLoadedMsg:
		m.loading = false
		if msg.Err != nil {
			m.list.Title = "Skills (error: " + msg.Err.Error() + ")"
			return m, nil
		}
		items := make([]list.Item, len(msg.Skills))
		for i, s := range msg.Skills {
			items[i] = skillItem{skill: s}
		}
		cmds = append(cmds, m.list.SetItems(items))
		if len(msg.Skills) > 0 {
			cmds = append(cmds, m.loadDetailCmd(msg.Skills[0].ID))
		}

	case DetailLoadedMsg:
		if msg.Err == nil {
			m.detail = msg.Detail
			m.preview.SetContent(m.renderDetail())
		}

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		cmds = append(cmds, cmd)
	}

	if !m.loading {
		var lCmd tea.Cmd
		prevIdx := m.list.Index()
		m.list, lCmd = m.list.Update(msg)
		cmds = append(cmds, lCmd)
		if m.list.Index() != prevIdx {
			if item, ok := m.list.SelectedItem().(skillItem); ok {
				cmds = append(cmds, m.loadDetailCmd(item.skill.ID))
			}
		}

		var vCmd tea.Cmd
		m.preview, vCmd = m.preview.Update(msg)
		cmds = append(cmds, vCmd)
	}

	return m, tea.Batch(cmds...)
}

func (m Model) View() string {
	if m.loading {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center,
			m.spinner.View()+" Loading skills…")
	}

	listW := m.width * 4 / 10
	detailW := m.width - listW

	listPane := lipgloss.NewStyle().
		Width(listW).
		Height(m.height).
		Render(m.list.View())

	detailPane := lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(theme.Surface1).
		Background(theme.Mantle).
		Width(detailW - 2).
		Height(m.height - 2).
		Render(m.preview.View())

	return lipgloss.JoinHorizontal(lipgloss.Top, listPane, detailPane)
}

// Reload refetches the skill list, e.g. after a palette mutation.
func (m Model) Reload() tea.Cmd {
	return m.loadSkillsCmd()
}

// SelectedSkillID returns the current selection's skill ID, if any.
func (m Model) SelectedSkillID() (string, bool) {
	if item, ok := m.list.SelectedItem().(skillItem); ok {
		return item.skill.ID, true
	}
	return "", false
}

// SelectedSkillName returns the current selection's name.
func (m Model) SelectedSkillName() string {
	if item, ok := m.list.SelectedItem().(skillItem); ok {
		return item.skill.Name
	}
	return ""
}

// Filtering reports whether the list's search filter is currently active.
// The app model checks this to avoid consuming global keys during a search.
func (m Model) Filtering() bool {
	return m.list.FilterState() == list.Filtering
}

func (m *Model) resize() {
	listW := m.width * 4 / 10
	detailW := m.width - listW
	m.list.SetSize(listW, m.height)
	m.preview.Width = detailW - 4
	m.preview.Height = m.height - 4
	m.progress.Width = detailW - 8
}

func (m Model) renderDetail() string {
	d := m.detail
	if d.ID == "" {
		return theme.Muted.Render("Select a skill to see details")
	}
	var sb strings.Builder
	sb.WriteString(theme.Title.Render(d.Name) + "\n\n")
	sb.WriteString(m.progress.ViewAs(d.Progress) + "\n\n")
	sb.WriteString(theme.Muted.Render("total:    ") + fmt.Sprintf("%.1f h of 10,000 h", float64(d.TotalSeconds)/3600) + "\n")
	sb.WriteString(theme.Muted.Render("sessions: ") + fmt.Sprintf("%d", d.SessionCount) + "\n")
	if d.WeeklyTargetHours > 0 {
		sb.WriteString(theme.Muted.Render("target:   ") + fmt.Sprintf("%.1f h/week", d.WeeklyTargetHours) + "\n")
	}
	if !d.LastPracticedAt.IsZero() {
		sb.WriteString(theme.Muted.Render("last:     ") + d.LastPracticedAt.Format("2006-01-02 15:04") + "\n")
	}
	sb.WriteString(theme.Muted.Render("created:  ") + d.CreatedAt.Format("2006-01-02") + "\n")
	sb.WriteString("\n" + theme.Muted.Render("s: start tracking  :: palette"))
	return sb.String()
}

func (m Model) loadSkillsCmd() tea.Cmd {
	return func() tea.Msg {
		skills, err := m.port.List(context.Background())
		return SkillsLoadedMsg{Skills: skills, Err: err}
	}
}

func (m Model) loadDetailCmd(id string) tea.Cmd {
	return func() tea.Msg {
		detail, err := m.port.Get(context.Background(), id)
		return DetailLoadedMsg{Detail: detail, Err: err}
	}
}
