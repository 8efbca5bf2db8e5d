package styles

import "github.com/charmbracelet/lipgloss"

// Color palette
var (
	Amber      = lipgloss.Color("#E5A00D")
	SlateDark  = lipgloss.Color("#1F2937")
	SlateLight = lipgloss.Color("#374151")
	DimGray    = lipgloss.Color("#6B7280")
	LightGray  = lipgloss.Color("#9CA3AF")
	White      = lipgloss.Color("#F9FAFB")
	Ink        = lipgloss.Color("#111827")
	Paper      = lipgloss.Color("#E5E7EB")
	Green      = lipgloss.Color("#10B981")
	Red        = lipgloss.Color("#EF4444")
)

// Theme bundles the styles that differ between the dark and light palettes
type Theme struct {
	Name string

	Title    lipgloss.Style
	Subtitle lipgloss.Style
	Dim      lipgloss.Style
	Accent   lipgloss.Style
	Error    lipgloss.Style
	Success  lipgloss.Style

	SelectedItem lipgloss.Style
	NormalItem   lipgloss.Style

	Border lipgloss.Style
	Footer lipgloss.Style
}

// DarkTheme is the default theme
func DarkTheme() Theme {
	return Theme{
		Name:     "dark",
		Title:    lipgloss.NewStyle().Foreground(White).Bold(true),
		Subtitle: lipgloss.NewStyle().Foreground(LightGray),
		Dim:      lipgloss.NewStyle().Foreground(DimGray),
		Accent:   lipgloss.NewStyle().Foreground(Amber),
		Error:    lipgloss.NewStyle().Foreground(Red),
		Success:  lipgloss.NewStyle().Foreground(Green),
		SelectedItem: lipgloss.NewStyle().
			Foreground(White).
			Background(SlateLight).
			Padding(0, 1),
		NormalItem: lipgloss.NewStyle().
			Foreground(LightGray).
			Padding(0, 1),
		Border: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(Amber),
		Footer: lipgloss.NewStyle().Foreground(DimGray),
	}
}

// LightTheme mirrors the persisted "light-mode" preference
func LightTheme() Theme {
	return Theme{
		Name:     "light",
		Title:    lipgloss.NewStyle().Foreground(Ink).Bold(true),
		Subtitle: lipgloss.NewStyle().Foreground(SlateLight),
		Dim:      lipgloss.NewStyle().Foreground(LightGray),
		Accent:   lipgloss.NewStyle().Foreground(Amber),
		Error:    lipgloss.NewStyle().Foreground(Red),
		Success:  lipgloss.NewStyle().Foreground(Green),
		SelectedItem: lipgloss.NewStyle().
			Foreground(Ink).
			Background(Paper).
			Padding(0, 1),
		NormalItem: lipgloss.NewStyle().
			Foreground(SlateLight).
			Padding(0, 1),
		Border: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(Amber),
		Footer: lipgloss.NewStyle().Foreground(LightGray),
	}
}
