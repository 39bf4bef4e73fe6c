// Package presenter renders dashboard reports for people: styled terminal
// output and PNG charts.
package presenter

import (
	"github.com/charmbracelet/lipgloss"
)

var (
	// PositiveColor marks rising prices and positive contributions.
	PositiveColor = lipgloss.Color("#1F77B4")
	// NegativeColor marks falling prices and negative contributions.
	NegativeColor = lipgloss.Color("#D62728")
	// HighlightColor is used for the disparity section.
	HighlightColor = lipgloss.Color("#FF7F0E")
	// WarningColor indicates missing data.
	WarningColor = lipgloss.Color("#FFE66D")
	// SubtleColor indicates less prominent text.
	SubtleColor = lipgloss.Color("#666666")

	// TitleStyle is used for the dashboard title.
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(PositiveColor).
			MarginBottom(1)

	// HeaderStyle is used for section headers.
	HeaderStyle = lipgloss.NewStyle().
			Bold(true).
			Underline(true).
			MarginTop(1)

	// SubtleStyle formats less prominent text.
	SubtleStyle = lipgloss.NewStyle().
			Foreground(SubtleColor)

	// WarningStyle formats "no data" notices.
	WarningStyle = lipgloss.NewStyle().
			Foreground(WarningColor)

	// CardStyle frames a single metric.
	CardStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#333")).
			Padding(0, 2).
			MarginRight(1).
			Width(28)

	// MetricStyle formats the number inside a card.
	MetricStyle = lipgloss.NewStyle().
			Bold(true)

	positiveStyle = lipgloss.NewStyle().Foreground(PositiveColor)
	negativeStyle = lipgloss.NewStyle().Foreground(NegativeColor)
	headerCell    = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	bodyCell      = lipgloss.NewStyle().Padding(0, 1)
)
