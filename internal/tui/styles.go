package tui

import "github.com/charmbracelet/lipgloss"

// The palette follows the original dark green theme.
type theme struct {
	header    lipgloss.Style
	userLabel lipgloss.Style
	aiLabel   lipgloss.Style
	errText   lipgloss.Style
	dim       lipgloss.Style
	accent    lipgloss.Style
	selected  lipgloss.Style
	inputBox  lipgloss.Style
	notice    lipgloss.Style
}

func defaultTheme() theme {
	return theme{
		header: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("151")).
			Background(lipgloss.Color("22")).
			Padding(0, 1),
		userLabel: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("117")),
		aiLabel:   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("114")),
		errText:   lipgloss.NewStyle().Foreground(lipgloss.Color("203")),
		dim:       lipgloss.NewStyle().Foreground(lipgloss.Color("243")),
		accent:    lipgloss.NewStyle().Foreground(lipgloss.Color("42")),
		selected: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("230")).
			Background(lipgloss.Color("29")).
			Padding(0, 1),
		inputBox: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("29")).
			Padding(0, 1),
		notice: lipgloss.NewStyle().Foreground(lipgloss.Color("179")),
	}
}
