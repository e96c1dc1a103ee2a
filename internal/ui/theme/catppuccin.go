package theme

import "github.com/charmbracelet/lipgloss"

var (
	Base     = lipgloss.Color("#1e1e2e")
	Mantle   = lipgloss.Color("#181825")
	Surface0 = lipgloss.Color("#313244")
	Surface1 = lipgloss.Color("#45475a")
	Text     = lipgloss.Color("#cdd6f4")
	Subtext0 = lipgloss.Color("#a6adc8")
	Lavender = lipgloss.Color("#b4befe")
	Sapphire = lipgloss.Color("#74c7ec")
	Green    = lipgloss.Color("#a6e3a1")
	Peach    = lipgloss.Color("#fab387")

	App = lipgloss.NewStyle().
		Background(Base).
		Foreground(Text).
		Padding(1, 2)

	Pane = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(Surface1).
		Background(Mantle).
		Foreground(Text).
		Padding(1)

	PaneActive = Pane.BorderForeground(Lavender)

	Title = lipgloss.NewStyle().Foreground(Sapphire).Bold(true)
	Muted = lipgloss.NewStyle().Foreground(Subtext0)
	Hot   = lipgloss.NewStyle().Foreground(Peach).Bold(true)
)

// Skill color palettes. A skill stores a palette id plus an index into it.
var skillPalettes = map[string][]lipgloss.Color{
	"catppuccin": {
		lipgloss.Color("#f38ba8"),
		lipgloss.Color("#fab387"),
		lipgloss.Color("#f9e2af"),
		lipgloss.Color("#a6e3a1"),
		lipgloss.Color("#74c7ec"),
		lipgloss.Color("#b4befe"),
		lipgloss.Color("#cba6f7"),
		lipgloss.Color("#f5c2e7"),
	},
	"terminal": {
		lipgloss.Color("1"),
		lipgloss.Color("2"),
		lipgloss.Color("3"),
		lipgloss.Color("4"),
		lipgloss.Color("5"),
		lipgloss.Color("6"),
	},
}

// SkillColor resolves a palette id and index to a concrete color, falling
// back to Lavender for unknown palettes or out-of-range indexes.
func SkillColor(paletteID string, index int) lipgloss.Color {
	palette, ok := skillPalettes[paletteID]
	if !ok || len(palette) == 0 {
		return Lavender
	}
	if index < 0 {
		index = 0
	}
	return palette[index%len(palette)]
}

// HeatLevels maps heatmap intensity levels 0..6 to colors, cold to hot.
var HeatLevels = [7]lipgloss.Color{
	Surface0,
	lipgloss.Color("#3b4261"),
	lipgloss.Color("#4a547d"),
	lipgloss.Color("#74c7ec"),
	lipgloss.Color("#a6e3a1"),
	lipgloss.Color("#f9e2af"),
	lipgloss.Color("#fab387"),
}
