package render

import (
	"github.com/charmbracelet/lipgloss"

	"cadence/internal/engine"
)

var (
	// Colors - all colors meet WCAG AA contrast (4.5:1) on both black and dark surfaces
	PrimaryColor   = lipgloss.Color("#A78BFA") // Purple
	SecondaryColor = lipgloss.Color("#10B981") // Green
	WarningColor   = lipgloss.Color("#F59E0B") // Amber
	ErrorColor     = lipgloss.Color("#F87171") // Red
	MutedColor     = lipgloss.Color("#9CA3AF") // Gray
	TextColor      = lipgloss.Color("#F9FAFB") // Light text
	BorderColor    = lipgloss.Color("#6B7280") // Gray

	// Convenience styles for colors
	Primary   = lipgloss.NewStyle().Foreground(PrimaryColor)
	Secondary = lipgloss.NewStyle().Foreground(SecondaryColor)
	Warning   = lipgloss.NewStyle().Foreground(WarningColor)
	Error     = lipgloss.NewStyle().Foreground(ErrorColor)
	Muted     = lipgloss.NewStyle().Foreground(MutedColor)

	// Risk tier colors
	TierLowColor      = lipgloss.Color("#10B981") // Green
	TierMediumColor   = lipgloss.Color("#FBBF24") // Yellow
	TierHighColor     = lipgloss.Color("#FB923C") // Orange
	TierCriticalColor = lipgloss.Color("#F87171") // Red

	// Base styles
	Title = lipgloss.NewStyle().
		Bold(true).
		Foreground(PrimaryColor).
		MarginBottom(1)

	SectionTitle = lipgloss.NewStyle().
			Bold(true).
			Foreground(PrimaryColor)

	Header = lipgloss.NewStyle().
		Bold(true).
		Foreground(MutedColor)

	ContentBox = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(BorderColor).
			Padding(0, 1)

	InfeasibleBadge = lipgloss.NewStyle().
			Bold(true).
			Foreground(TextColor).
			Background(ErrorColor).
			Padding(0, 1)

	MissedBadge = lipgloss.NewStyle().
			Bold(true).
			Foreground(TextColor).
			Background(WarningColor).
			Padding(0, 1)
)

// TierStyle returns the style for a risk tier label.
func TierStyle(tier engine.RiskTier) lipgloss.Style {
	switch tier {
	case engine.TierLow:
		return lipgloss.NewStyle().Foreground(TierLowColor)
	case engine.TierMedium:
		return lipgloss.NewStyle().Foreground(TierMediumColor)
	case engine.TierHigh:
		return lipgloss.NewStyle().Foreground(TierHighColor)
	case engine.TierCritical:
		return lipgloss.NewStyle().Foreground(TierCriticalColor).Bold(true)
	default:
		return Muted
	}
}

// StressStyle returns the style for a 0..100 stress index.
func StressStyle(stress float64) lipgloss.Style {
	switch {
	case stress >= 75:
		return Error.Bold(true)
	case stress >= 50:
		return lipgloss.NewStyle().Foreground(TierHighColor)
	case stress >= 25:
		return Warning
	default:
		return Secondary
	}
}
