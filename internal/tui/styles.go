package tui

import (
	"github.com/charmbracelet/lipgloss"
)

// Theme holds the colours of the picker. Empty fields fall back to the
// defaults.
type Theme struct {
	Accent   string `yaml:"accent"`
	Selected string `yaml:"selected"`
	Muted    string `yaml:"muted"`
	Error    string `yaml:"error"`
}

// DefaultTheme is the colour set used when no theme is configured
var DefaultTheme = Theme{
	Accent:   "#7B61FF",
	Selected: "#73F59F",
	Muted:    "#666666",
	Error:    "#FF0000",
}

// Styles are the rendered styles of the picker
type Styles struct {
	App        lipgloss.Style
	Title      lipgloss.Style
	Selected   lipgloss.Style
	Unselected lipgloss.Style
	Key        lipgloss.Style
	Help       lipgloss.Style
	Error      lipgloss.Style
}

// NewStyles builds styles for theme
func NewStyles(theme Theme) Styles {
	theme = theme.withDefaults()
	return Styles{
		App: lipgloss.NewStyle().
			Padding(1, 2),
		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color(theme.Accent)).
			MarginBottom(1),
		Selected: lipgloss.NewStyle().
			Foreground(lipgloss.Color(theme.Selected)).
			Bold(true),
		Unselected: lipgloss.NewStyle().
			Foreground(lipgloss.Color(theme.Muted)),
		Key: lipgloss.NewStyle().
			Foreground(lipgloss.Color(theme.Accent)),
		Help: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#5A9")),
		Error: lipgloss.NewStyle().
			Foreground(lipgloss.Color(theme.Error)),
	}
}

// DefaultStyles returns the styles of DefaultTheme
func DefaultStyles() Styles {
	return NewStyles(DefaultTheme)
}

func (t Theme) withDefaults() Theme {
	if t.Accent == "" {
		t.Accent = DefaultTheme.Accent
	}
	if t.Selected == "" {
		t.Selected = DefaultTheme.Selected
	}
	if t.Muted == "" {
		t.Muted = DefaultTheme.Muted
	}
	if t.Error == "" {
		t.Error = DefaultTheme.Error
	}
	return t
}
