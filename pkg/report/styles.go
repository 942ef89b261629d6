package report

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/arthur-debert/neosetup/pkg/schema"
)

// Adaptive colors so output reads on both light and dark terminals.
var (
	SuccessColor = lipgloss.AdaptiveColor{
		Light: "#28A745", // Green
		Dark:  "#4CDD76",
	}

	ErrorColor = lipgloss.AdaptiveColor{
		Light: "#DC3545", // Red
		Dark:  "#FF6B7D",
	}

	WarningColor = lipgloss.AdaptiveColor{
		Light: "#FFC107", // Amber
		Dark:  "#FFD54F",
	}

	InfoColor = lipgloss.AdaptiveColor{
		Light: "#17A2B8", // Cyan
		Dark:  "#4DD0E1",
	}

	HeadingColor = lipgloss.AdaptiveColor{
		Light: "#212529", // Almost black
		Dark:  "#F8F9FA", // Almost white
	}

	MutedColor = lipgloss.AdaptiveColor{
		Light: "#6C757D", // Medium gray
		Dark:  "#ADB5BD",
	}
)

var (
	TitleStyle = lipgloss.NewStyle().
			Foreground(HeadingColor).
			Bold(true)

	SuccessStyle = lipgloss.NewStyle().
			Foreground(SuccessColor).
			Bold(true)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(ErrorColor).
			Bold(true)

	WarningStyle = lipgloss.NewStyle().
			Foreground(WarningColor).
			Bold(true)

	InfoStyle = lipgloss.NewStyle().
			Foreground(InfoColor)

	MutedStyle = lipgloss.NewStyle().
			Foreground(MutedColor)

	PathStyle = lipgloss.NewStyle().
			Bold(true)
)

func severityStyle(s schema.Severity) lipgloss.Style {
	switch s {
	case schema.SeverityError:
		return ErrorStyle
	case schema.SeverityWarning:
		return WarningStyle
	default:
		return InfoStyle
	}
}

func severityIndicator(s schema.Severity) string {
	switch s {
	case schema.SeverityError:
		return "✗"
	case schema.SeverityWarning:
		return "!"
	default:
		return "•"
	}
}
