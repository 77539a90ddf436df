package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/orglens/orglens/pkg/ranking"
)

// Styles
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FF00FF")).
			MarginLeft(2).
			MarginTop(1)

	activeTabStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FFFFFF")).
			Background(lipgloss.Color("#FF00FF")).
			Padding(0, 2)

	inactiveTabStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#666666")).
				Padding(0, 2)

	contentStyle = lipgloss.NewStyle().
			MarginLeft(2).
			MarginTop(1)

	canvasStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#00FFFF")).
			Padding(0, 1)

	panelStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#FFFF00")).
			Padding(1, 2).
			MarginLeft(2)

	boxStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#00FF00")).
			Padding(1, 2).
			MarginRight(2)

	sectionStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#00FFFF"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF0000")).
			Bold(true)

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#888888")).
			MarginTop(1).
			MarginLeft(2)

	userTurnStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#00FFFF"))

	assistantTurnStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#FFFFFF"))
)

var tierStyles = map[ranking.Tier]lipgloss.Style{
	ranking.TierCritical: lipgloss.NewStyle().Foreground(lipgloss.Color("#FF0000")).Bold(true),
	ranking.TierWarning:  lipgloss.NewStyle().Foreground(lipgloss.Color("#FFFF00")),
	ranking.TierHealthy:  lipgloss.NewStyle().Foreground(lipgloss.Color("#00FF00")),
}

func tierStyle(t ranking.Tier) lipgloss.Style {
	if s, ok := tierStyles[t]; ok {
		return s
	}
	return tierStyles[ranking.TierHealthy]
}
