package cmd

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/khrees2412/screener/pkg/models"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("12")).
			MarginTop(1).
			MarginBottom(1)

	labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("10")).
			Bold(true)

	valueStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("7"))

	mutedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("8"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("9")).
			Bold(true)

	verdictStyles = map[models.Verdict]lipgloss.Style{
		models.VerdictStrong:  lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Bold(true),
		models.VerdictAverage: lipgloss.NewStyle().Foreground(lipgloss.Color("11")).Bold(true),
		models.VerdictWeak:    lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true),
	}
)

func renderVerdict(v models.Verdict) string {
	style, ok := verdictStyles[v]
	if !ok {
		return string(v)
	}
	return style.Render(string(v))
}
