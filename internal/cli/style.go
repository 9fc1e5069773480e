package cli

import "github.com/charmbracelet/lipgloss"

var (
	titleStyle     = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#4ade80"))
	boldStyle      = lipgloss.NewStyle().Bold(true)
	dimStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("#9bb8a5"))
	headerStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#7fd49a"))
	healthyStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#4ade80"))
	unhealthyStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#f87171"))
	pendingStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#facc15"))

	dotHealthy   = healthyStyle.Render("●")
	dotUnhealthy = unhealthyStyle.Render("●")
	dotUnknown   = dimStyle.Render("●")
)

// statusDot returns a colored dot for a match status.
func statusDot(status string) string {
	switch status {
	case "live":
		return dotHealthy
	case "pending":
		return pendingStyle.Render("●")
	case "ended":
		return dotUnhealthy
	default:
		return dotUnknown
	}
}
