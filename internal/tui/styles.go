package tui

import "github.com/charmbracelet/lipgloss"

// palette holds the colors for one theme.
type palette struct {
	Header  lipgloss.Color
	Accent  lipgloss.Color
	Border  lipgloss.Color
	Muted   lipgloss.Color
	Text    lipgloss.Color
	Success lipgloss.Color
	Warning lipgloss.Color
	Danger  lipgloss.Color
	Bar     lipgloss.Color
	BarAlt  lipgloss.Color
}

var darkPalette = palette{
	Header:  lipgloss.Color("#FF6B6B"),
	Accent:  lipgloss.Color("#5B8DEF"),
	Border:  lipgloss.Color("#444444"),
	Muted:   lipgloss.Color("#888888"),
	Text:    lipgloss.Color("#AAAAAA"),
	Success: lipgloss.Color("#4CAF50"),
	Warning: lipgloss.Color("#FFC107"),
	Danger:  lipgloss.Color("#E53935"),
	Bar:     lipgloss.Color("#4DB6AC"),
	BarAlt:  lipgloss.Color("#E57373"),
}

var lightPalette = palette{
	Header:  lipgloss.Color("#2E3B4E"),
	Accent:  lipgloss.Color("#1E5BC6"),
	Border:  lipgloss.Color("#C5CAD3"),
	Muted:   lipgloss.Color("#6B7280"),
	Text:    lipgloss.Color("#101F38"),
	Success: lipgloss.Color("#2E7D32"),
	Warning: lipgloss.Color("#B26A00"),
	Danger:  lipgloss.Color("#C62828"),
	Bar:     lipgloss.Color("#00897B"),
	BarAlt:  lipgloss.Color("#D84315"),
}

type styles struct {
	theme    string
	colors   palette
	Header   lipgloss.Style
	Tab      lipgloss.Style
	TabOn    lipgloss.Style
	Label    lipgloss.Style
	LabelOn  lipgloss.Style
	Muted    lipgloss.Style
	Box      lipgloss.Style
	Title    lipgloss.Style
	Success  lipgloss.Style
	Warning  lipgloss.Style
	Error    lipgloss.Style
	Button   lipgloss.Style
	ButtonOn lipgloss.Style
}

func newStyles(theme string) styles {
	colors := darkPalette
	if theme == "light" {
		colors = lightPalette
	} else {
		theme = "dark"
	}
	return styles{
		theme:  theme,
		colors: colors,
		Header: lipgloss.NewStyle().
			Bold(true).
			Foreground(colors.Header).
			MarginBottom(1),
		Tab:   lipgloss.NewStyle().Foreground(colors.Muted).Padding(0, 1),
		TabOn: lipgloss.NewStyle().Bold(true).Underline(true).Foreground(colors.Accent).Padding(0, 1),
		Label: lipgloss.NewStyle().Foreground(colors.Text).Width(26),
		LabelOn: lipgloss.NewStyle().
			Bold(true).
			Foreground(colors.Accent).
			Width(26),
		Muted: lipgloss.NewStyle().Foreground(colors.Muted),
		Box: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colors.Border).
			Padding(0, 1),
		Title:   lipgloss.NewStyle().Bold(true).Foreground(colors.Accent),
		Success: lipgloss.NewStyle().Foreground(colors.Success),
		Warning: lipgloss.NewStyle().Foreground(colors.Warning),
		Error:   lipgloss.NewStyle().Bold(true).Foreground(colors.Danger),
		Button: lipgloss.NewStyle().
			Foreground(colors.Text).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colors.Border).
			Padding(0, 2),
		ButtonOn: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FFFFFF")).
			Background(colors.Success).
			Padding(0, 2).
			Margin(1, 0),
	}
}
