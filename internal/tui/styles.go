package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/agbru/mtcollatz/internal/ui"
)

// Styles bundles the lipgloss styles used by the dashboard, derived from the
// active theme.
type Styles struct {
	Panel lipgloss.Style
	Title lipgloss.Style
	Label lipgloss.Style
	Value lipgloss.Style
	Warn  lipgloss.Style
	Good  lipgloss.Style
	Dim   lipgloss.Style
}

// NewStyles builds the dashboard styles from the current TUI theme.
func NewStyles() Styles {
	theme := ui.GetCurrentTUITheme()
	return Styles{
		Panel: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(theme.Border).
			Padding(0, 2),
		Title: lipgloss.NewStyle().Bold(true).Foreground(theme.Accent),
		Label: lipgloss.NewStyle().Foreground(theme.Dim).Width(12),
		Value: lipgloss.NewStyle().Foreground(theme.Text),
		Warn:  lipgloss.NewStyle().Foreground(theme.Warning),
		Good:  lipgloss.NewStyle().Foreground(theme.Success),
		Dim:   lipgloss.NewStyle().Foreground(theme.Dim),
	}
}
