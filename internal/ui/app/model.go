package app

import (
	"context"
	"fmt"
	"os"
	osexec "os/exec"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	plugindto "tenk/internal/modules/plugin/dto"
	skilldto "tenk/internal/modules/skill/dto"
	statsdto "tenk/internal/modules/stats/dto"
	trackerdto "tenk/internal/modules/tracker/dto"
	"tenk/internal/ui/components"
	"tenk/internal/ui/theme"
	heatmapview "tenk/internal/ui/views/heatmap"
	skillsview "tenk/internal/ui/views/skills"
	statsview "tenk/internal/ui/views/stats"
	trackerview "tenk/internal/ui/views/tracker"
)

// ─── ports ───────────────────────────────────────────────────────────────────
// Each port is the minimal interface that this orchestration layer requires.
// Sub-view ports are defined in their own packages and narrowed further.

type skillPort interface {
	List(ctx context.Context) ([]skilldto.SkillOutput, error)
	Get(ctx context.Context, skillID string) (skilldto.SkillDetailOutput, error)
	Create(ctx context.Context, name, paletteID string, colorIndex int) (skilldto.SkillOutput, error)
	Rename(ctx context.Context, skillID, newName string) (skilldto.SkillOutput, error)
	SetTarget(ctx context.Context, skillID string, hoursPerWeek float64) (skilldto.SkillDetailOutput, error)
	Delete(ctx context.Context, skillID string) error
}

type trackerPort interface {
	Start(ctx context.Context, skillID string) (trackerdto.StartOutput, error)
	Pause(ctx context.Context) (trackerdto.StatusOutput, error)
	Resume(ctx context.Context) (trackerdto.StatusOutput, error)
	Stop(ctx context.Context) (trackerdto.StopOutput, error)
	Status(ctx context.Context) (trackerdto.StatusOutput, error)
	Log(ctx context.Context, skillID string, startedAt time.Time, durationSeconds int64) (trackerdto.SessionOutput, error)
	Reindex(ctx context.Context) (int, error)
}

type statsPort interface {
	Pace(ctx context.Context, skillID string) (statsdto.PaceOutput, error)
	Target(ctx context.Context, skillID string) (statsdto.TargetOutput, error)
	Heatmap(ctx context.Context, skillID string, weeks int) (statsdto.HeatmapOutput, error)
	Summary(ctx context.Context, skillID string) (statsdto.SummaryOutput, error)
}

type pluginPort interface {
	ListCommands(ctx context.Context, pluginName string) ([]plugindto.CommandInfo, error)
	Execute(ctx context.Context, input plugindto.ExecuteInput) (plugindto.ExecuteOutput, error)
	PrepareTTY(ctx context.Context, input plugindto.TTYPrepareInput) (plugindto.TTYPrepareOutput, error)
}

// ─── tab index ───────────────────────────────────────────────────────────────

type tabID int

const (
	tabSkills tabID = iota
	tabTracker
	tabStats
	tabHeatmap
	tabCount
)

var tabLabels = [tabCount]string{
	"Skills", "Tracker", "Stats", "Heatmap",
}

// ─── async messages ───────────────────────────────────────────────────────────

type mutationDoneMsg struct {
	status string
	err    error
}

type pluginExecDoneMsg struct {
	out plugindto.ExecuteOutput
	err error
}

type pluginTTYReadyMsg struct {
	plan plugindto.TTYPrepareOutput
	err  error
}

type pluginTTYDoneMsg struct{ err error }

// ─── key bindings ─────────────────────────────────────────────────────────────

type keyMap struct {
	Tab     key.Binding
	Help    key.Binding
	Palette key.Binding
	Quit    key.Binding
	Start   key.Binding
	Pause   key.Binding
	Stop    key.Binding
}

func defaultKeys() keyMap {
	return keyMap{
		Tab:     key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next tab")),
		Help:    key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Palette: key.NewBinding(key.WithKeys(":"), key.WithHelp(":", "palette")),
		Quit:    key.NewBinding(key.WithKeys("ctrl+c", "q"), key.WithHelp("q", "quit")),
		Start:   key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "start tracking")),
		Pause:   key.NewBinding(key.WithKeys("p"), key.WithHelp("p", "pause/resume")),
		Stop:    key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "stop")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Tab, k.Help, k.Palette, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Tab, k.Start},
		{k.Pause, k.Stop},
		{k.Help, k.Palette, k.Quit},
	}
}

// ─── model ───────────────────────────────────────────────────────────────────

// Model is the root Bubble Tea model. It owns tab routing, the global help
// overlay, and the command palette. All business logic is delegated to
// port interfaces; all rendering is delegated to sub-views.
type Model struct {
	dataDir string

	skill   skillPort
	tracker trackerPort
	plugin  pluginPort

	skillsView  skillsview.Model
	trackerView trackerview.Model
	statsView   statsview.Model
	heatmapView heatmapview.Model

	activeTab tabID
	keys      keyMap
	help      help.Model
	showHelp  bool
	palette   components.Palette
	status    string
	width     int
	height    int
}

// ─── constructor ─────────────────────────────────────────────────────────────

func NewModel(
	dataDir string,
	skill skillPort,
	tracker trackerPort,
	stats statsPort,
	plugin pluginPort,
) Model {
	return Model{
		dataDir:     dataDir,
		skill:       skill,
		tracker:     tracker,
		plugin:      plugin,
		skillsView:  skillsview.New(skillPortBridge{p: skill}),
		trackerView: trackerview.New(trackerPortBridge{p: tracker}),
		statsView:   statsview.New(statsPortBridge{p: stats}),
		heatmapView: heatmapview.New(statsPortBridge{p: stats}),
		activeTab:   tabSkills,
		keys:        defaultKeys(),
		help:        help.New(),
		palette:     components.NewPalette(),
		status:      "ready",
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(
		m.skillsView.Init(),
		m.trackerView.Init(),
	)
}

// ─── update ───────────────────────────────────────────────────────────────────

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	// The palette intercepts all input while open.
	if m.palette.Visible() {
		var cmd tea.Cmd
		m.palette, cmd = m.palette.Update(msg)
		return m, cmd
	}

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.palette.SetWidth(min(m.width-4, 80))
		m.help.Width = m.width
		m.propagateSize()

	case mutationDoneMsg:
		if msg.err != nil {
			m.status = msg.err.Error()
		} else {
			m.status = msg.status
			cmds = append(cmds, m.skillsView.Reload())
		}

	case pluginExecDoneMsg:
		if msg.err != nil {
			m.status = "plugin exec: " + msg.err.Error()
		} else {
			m.status = fmt.Sprintf("plugin %s/%s exit=%d", msg.out.PluginName, msg.out.CommandID, msg.out.ExitCode)
		}

	case pluginTTYReadyMsg:
		if msg.err != nil {
			m.status = "plugin tty prepare: " + msg.err.Error()
			return m, nil
		}
		if len(msg.plan.Argv) == 0 {
			m.status = "plugin tty: empty argv"
			return m, nil
		}
		cmd := osexec.Command(msg.plan.Argv[0], msg.plan.Argv[1:]...)
		if msg.plan.Cwd != "" {
			cmd.Dir = msg.plan.Cwd
		}
		env := os.Environ()
		for k, v := range msg.plan.Env {
			env = append(env, k+"="+v)
		}
		cmd.Env = env
		m.status = "plugin tty running"
		return m, tea.ExecProcess(cmd, func(err error) tea.Msg {
			return pluginTTYDoneMsg{err: err}
		})

	case pluginTTYDoneMsg:
		if msg.err != nil {
			m.status = "plugin tty error: " + msg.err.Error()
		} else {
			m.status = "plugin tty completed"
		}

	case components.PaletteSubmitMsg:
		return m.executePalette(msg.Input)

	case components.PaletteCancelMsg:
		m.status = "ready"

	case trackerview.StatusMsg:
		var cmd tea.Cmd
		m.trackerView, cmd = m.trackerView.Update(msg)
		return m, cmd

	case trackerview.StoppedMsg:
		if msg.Err != nil {
			m.status = "stop failed: " + msg.Err.Error()
		} else if msg.Out.Stopped {
			m.status = fmt.Sprintf("stopped %s after %s", msg.Out.SkillName, formatDuration(msg.Out.ElapsedSeconds))
			cmds = append(cmds, m.skillsView.Reload())
		} else {
			m.status = "nothing to stop"
		}
		var cmd tea.Cmd
		m.trackerView, cmd = m.trackerView.Update(msg)
		cmds = append(cmds, cmd)
		return m, tea.Batch(cmds...)

	case tea.KeyMsg:
		if m.showHelp {
			if msg.String() == "?" || msg.String() == "esc" {
				m.showHelp = false
			}
			return m, nil
		}

		// Yield to the skills view when its search filter is active.
		if m.activeTab == tabSkills && m.skillsView.Filtering() {
			break
		}

		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit
		case "tab":
			m.activeTab = (m.activeTab + 1) % tabCount
			cmds = append(cmds, m.onTabChange())
		case "shift+tab":
			m.activeTab = (m.activeTab + tabCount - 1) % tabCount
			cmds = append(cmds, m.onTabChange())
		case "?":
			m.showHelp = !m.showHelp
		case ":":
			cmds = append(cmds, m.palette.Open())
			return m, tea.Batch(cmds...)
		case "s":
			if m.activeTab == tabSkills {
				if id, ok := m.skillsView.SelectedSkillID(); ok {
					m.activeTab = tabTracker
					m.status = "tracking " + m.skillsView.SelectedSkillName()
					cmds = append(cmds, m.trackerView.StartTracking(id))
				}
			}
		case "p":
			if m.activeTab == tabTracker {
				cmds = append(cmds, m.trackerView.TogglePause())
			}
		case "x":
			if m.activeTab == tabTracker {
				cmds = append(cmds, m.trackerView.StopTracking())
			}
		}
	}

	// Propagate the message to the active tab's sub-view.
	var tabCmd tea.Cmd
	switch m.activeTab {
	case tabSkills:
		m.skillsView, tabCmd = m.skillsView.Update(msg)
	case tabTracker:
		m.trackerView, tabCmd = m.trackerView.Update(msg)
	case tabStats:
		m.statsView, tabCmd = m.statsView.Update(msg)
	case tabHeatmap:
		m.heatmapView, tabCmd = m.heatmapView.Update(msg)
	}
	cmds = append(cmds, tabCmd)

	return m, tea.Batch(cmds...)
}

// ─── view ────────────────────────────────────────────────────────────────────

func (m Model) View() string {
	tabBar := m.renderTabBar()
	statusBar := m.renderStatusBar()
	tabBarH := lipgloss.Height(tabBar)
	statusBarH := lipgloss.Height(statusBar)

	contentH := m.height - tabBarH - statusBarH
	if contentH < 1 {
		contentH = 1
	}

	var content string
	switch {
	case m.showHelp:
		content = lipgloss.NewStyle().Width(m.width).Height(contentH).
			Render(m.help.View(m.keys))
	case m.palette.Visible():
		content = lipgloss.Place(m.width, contentH,
			lipgloss.Center, lipgloss.Center, m.palette.View())
	default:
		content = m.activeView()
	}

	return lipgloss.JoinVertical(lipgloss.Left, tabBar, content, statusBar)
}

func (m Model) activeView() string {
	switch m.activeTab {
	case tabSkills:
		return m.skillsView.View()
	case tabTracker:
		return m.trackerView.View()
	case tabStats:
		return m.statsView.View()
	case tabHeatmap:
		return m.heatmapView.View()
	}
	return ""
}

func (m Model) renderTabBar() string {
	parts := make([]string, tabCount)
	for i := tabID(0); i < tabCount; i++ {
		label := tabLabels[i]
		if i == m.activeTab {
			parts[i] = theme.Hot.Render(" " + label + " ")
		} else {
			parts[i] = theme.Muted.Render(" " + label + " ")
		}
	}
	sep := theme.Muted.Render(" │ ")
	bar := "tenk  " + strings.Join(parts, sep)
	return lipgloss.NewStyle().Background(theme.Mantle).Width(m.width).Render(bar) + "\n"
}

func (m Model) renderStatusBar() string {
	left := m.status
	right := theme.Muted.Render("?:help  tab:switch  :::palette  q:quit")
	gap := m.width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 1 {
		gap = 1
	}
	bar := left + strings.Repeat(" ", gap) + right
	return "\n" + lipgloss.NewStyle().Background(theme.Mantle).Width(m.width).Render(bar)
}

// ─── palette execution ────────────────────────────────────────────────────────

func (m Model) executePalette(input string) (tea.Model, tea.Cmd) {
	if strings.TrimSpace(input) == "" {
		return m, nil
	}
	parts := strings.Fields(input)
	selected, _ := m.skillsView.SelectedSkillID()

	switch parts[0] {
	case "skill:add":
		if len(parts) < 2 {
			m.status = "usage: skill:add <name>"
			return m, nil
		}
		name := strings.TrimSpace(strings.TrimPrefix(input, parts[0]))
		return m, m.createSkillCmd(name)

	case "skill:rename":
		if selected == "" {
			m.status = "no skill selected"
			return m, nil
		}
		if len(parts) < 2 {
			m.status = "usage: skill:rename <new name>"
			return m, nil
		}
		name := strings.TrimSpace(strings.TrimPrefix(input, parts[0]))
		return m, m.renameSkillCmd(selected, name)

	case "skill:target":
		if selected == "" {
			m.status = "no skill selected"
			return m, nil
		}
		if len(parts) < 2 {
			m.status = "usage: skill:target <hours/week>"
			return m, nil
		}
		hours, err := strconv.ParseFloat(parts[1], 64)
		if err != nil {
			m.status = "invalid hours"
			return m, nil
		}
		return m, m.setTargetCmd(selected, hours)

	case "skill:delete":
		if selected == "" {
			m.status = "no skill selected"
			return m, nil
		}
		return m, m.deleteSkillCmd(selected, m.skillsView.SelectedSkillName())

	case "track:start":
		if selected == "" {
			m.status = "no skill selected"
			return m, nil
		}
		m.activeTab = tabTracker
		return m, m.trackerView.StartTracking(selected)

	case "track:pause", "track:resume":
		m.activeTab = tabTracker
		return m, m.trackerView.TogglePause()

	case "track:stop":
		return m, m.trackerView.StopTracking()

	case "track:log":
		if selected == "" {
			m.status = "no skill selected"
			return m, nil
		}
		if len(parts) < 2 {
			m.status = "usage: track:log <minutes>"
			return m, nil
		}
		minutes, err := strconv.Atoi(parts[1])
		if err != nil || minutes <= 0 {
			m.status = "invalid minutes"
			return m, nil
		}
		return m, m.logPracticeCmd(selected, minutes)

	case "plugin:exec":
		if len(parts) < 3 {
			m.status = "usage: plugin:exec <plugin> <command> [json]"
			return m, nil
		}
		prefix := parts[0] + " " + parts[1] + " " + parts[2]
		inputJSON := strings.TrimSpace(strings.TrimPrefix(input, prefix))
		return m, m.execPluginCmd(plugindto.ExecuteInput{
			PluginName: parts[1],
			CommandID:  parts[2],
			InputJSON:  inputJSON,
			SkillID:    selected,
			DataDir:    m.dataDir,
			Cwd:        m.dataDir,
		})

	case "plugin:tty":
		if len(parts) < 3 {
			m.status = "usage: plugin:tty <plugin> <command> [json]"
			return m, nil
		}
		prefix := parts[0] + " " + parts[1] + " " + parts[2]
		inputJSON := strings.TrimSpace(strings.TrimPrefix(input, prefix))
		return m, m.preparePluginTTYCmd(plugindto.TTYPrepareInput{
			PluginName: parts[1],
			CommandID:  parts[2],
			InputJSON:  inputJSON,
			SkillID:    selected,
			DataDir:    m.dataDir,
			Cwd:        m.dataDir,
		})

	case "reindex":
		return m, m.reindexCmd()

	default:
		m.status = "unknown command: " + parts[0]
	}
	return m, nil
}

// ─── helpers ─────────────────────────────────────────────────────────────────

// onTabChange pushes the current skill selection into the stats views so
// they load data lazily when focused.
func (m *Model) onTabChange() tea.Cmd {
	selected, _ := m.skillsView.SelectedSkillID()
	switch m.activeTab {
	case tabStats:
		return m.statsView.SetSkill(selected)
	case tabHeatmap:
		return m.heatmapView.SetSkill(selected)
	case tabTracker:
		return m.trackerView.Refresh()
	}
	return nil
}

func (m *Model) propagateSize() {
	sz := tea.WindowSizeMsg{Width: m.width, Height: m.height - 3}
	m.skillsView, _ = m.skillsView.Update(sz)
	m.trackerView, _ = m.trackerView.Update(sz)
	m.statsView, _ = m.statsView.Update(sz)
	m.heatmapView, _ = m.heatmapView.Update(sz)
}

func formatDuration(seconds int64) string {
	d := time.Duration(seconds) * time.Second
	if d >= time.Hour {
		return fmt.Sprintf("%dh%02dm", int(d.Hours()), int(d.Minutes())%60)
	}
	if d >= time.Minute {
		return fmt.Sprintf("%dm%02ds", int(d.Minutes()), int(d.Seconds())%60)
	}
	return fmt.Sprintf("%ds", int(d.Seconds()))
}

// ─── async commands ───────────────────────────────────────────────────────────

func (m Model) createSkillCmd(name string) tea.Cmd {
	return func() tea.Msg {
		out, err := m.skill.Create(context.Background(), name, "catppuccin", 0)
		if err != nil {
			return mutationDoneMsg{err: err}
		}
		return mutationDoneMsg{status: "created " + out.Name}
	}
}

func (m Model) renameSkillCmd(skillID, name string) tea.Cmd {
	return func() tea.Msg {
		out, err := m.skill.Rename(context.Background(), skillID, name)
		if err != nil {
			return mutationDoneMsg{err: err}
		}
		return mutationDoneMsg{status: "renamed to " + out.Name}
	}
}

func (m Model) setTargetCmd(skillID string, hours float64) tea.Cmd {
	return func() tea.Msg {
		_, err := m.skill.SetTarget(context.Background(), skillID, hours)
		if err != nil {
			return mutationDoneMsg{err: err}
		}
		return mutationDoneMsg{status: fmt.Sprintf("target set to %.1f h/week", hours)}
	}
}

func (m Model) deleteSkillCmd(skillID, name string) tea.Cmd {
	return func() tea.Msg {
		if err := m.skill.Delete(context.Background(), skillID); err != nil {
			return mutationDoneMsg{err: err}
		}
		return mutationDoneMsg{status: "deleted " + name}
	}
}

func (m Model) logPracticeCmd(skillID string, minutes int) tea.Cmd {
	return func() tea.Msg {
		duration := int64(minutes) * 60
		startedAt := time.Now().UTC().Add(-time.Duration(duration) * time.Second)
		_, err := m.tracker.Log(context.Background(), skillID, startedAt, duration)
		if err != nil {
			return mutationDoneMsg{err: err}
		}
		return mutationDoneMsg{status: fmt.Sprintf("logged %d minutes", minutes)}
	}
}

func (m Model) reindexCmd() tea.Cmd {
	return func() tea.Msg {
		n, err := m.tracker.Reindex(context.Background())
		if err != nil {
			return mutationDoneMsg{err: err}
		}
		return mutationDoneMsg{status: fmt.Sprintf("reindexed %d sessions", n)}
	}
}

func (m Model) execPluginCmd(input plugindto.ExecuteInput) tea.Cmd {
	return func() tea.Msg {
		if m.plugin == nil {
			return pluginExecDoneMsg{err: fmt.Errorf("plugin adapter not configured")}
		}
		out, err := m.plugin.Execute(context.Background(), input)
		return pluginExecDoneMsg{out: out, err: err}
	}
}

func (m Model) preparePluginTTYCmd(input plugindto.TTYPrepareInput) tea.Cmd {
	return func() tea.Msg {
		if m.plugin == nil {
			return pluginTTYReadyMsg{err: fmt.Errorf("plugin adapter not configured")}
		}
		plan, err := m.plugin.PrepareTTY(context.Background(), input)
		return pluginTTYReadyMsg{plan: plan, err: err}
	}
}

// ─── port bridges ─────────────────────────────────────────────────────────────
// Each bridge narrows a broad port interface to the minimal interface needed by
// a specific sub-view, keeping view packages free of knowledge about the wider
// port surface.

type skillPortBridge struct{ p skillPort }

func (b skillPortBridge) List(ctx context.Context) ([]skilldto.SkillOutput, error) {
	return b.p.List(ctx)
}
func (b skillPortBridge) Get(ctx context.Context, id string) (skilldto.SkillDetailOutput, error) {
	return b.p.Get(ctx, id)
}

type trackerPortBridge struct{ p trackerPort }

func (b trackerPortBridge) Start(ctx context.Context, skillID string) (trackerdto.StartOutput, error) {
	return b.p.Start(ctx, skillID)
}
func (b trackerPortBridge) Pause(ctx context.Context) (trackerdto.StatusOutput, error) {
	return b.p.Pause(ctx)
}
func (b trackerPortBridge) Resume(ctx context.Context) (trackerdto.StatusOutput, error) {
	return b.p.Resume(ctx)
}
func (b trackerPortBridge) Stop(ctx context.Context) (trackerdto.StopOutput, error) {
	return b.p.Stop(ctx)
}
func (b trackerPortBridge) Status(ctx context.Context) (trackerdto.StatusOutput, error) {
	return b.p.Status(ctx)
}

type statsPortBridge struct{ p statsPort }

func (b statsPortBridge) Pace(ctx context.Context, id string) (statsdto.PaceOutput, error) {
	return b.p.Pace(ctx, id)
}
func (b statsPortBridge) Target(ctx context.Context, id string) (statsdto.TargetOutput, error) {
	return b.p.Target(ctx, id)
}
func (b statsPortBridge) Heatmap(ctx context.Context, id string, weeks int) (statsdto.HeatmapOutput, error) {
	return b.p.Heatmap(ctx, id, weeks)
}
func (b statsPortBridge) Summary(ctx context.Context, id string) (statsdto.SummaryOutput, error) {
	return b.p.Summary(ctx, id)
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}
