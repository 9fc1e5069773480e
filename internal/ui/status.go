package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/fblive/fblive/internal/api"
	"github.com/fblive/fblive/internal/health"
)

// healthText returns the label and description shown for a health state.
func healthText(state health.State) (label, description string) {
	switch state {
	case health.Online:
		return "Online", "Server is responding normally"
	case health.Offline:
		return "Offline", "Server is not responding. Check if the backend is running."
	default:
		return "Checking...", "Checking server status..."
	}
}

// troubleshootingHints lists what to check when the server is offline.
func troubleshootingHints(baseURL string) []string {
	target := "the configured address"
	if strings.TrimSpace(baseURL) != "" {
		target = baseURL
	}
	return []string{
		"Make sure the backend server is running at " + target,
		"Check the server console for error messages",
		"Verify the server URL (--api, FBLIVE_API_URL or api_url)",
	}
}

func (m Model) healthStyle() lipgloss.Style {
	styles := m.theme.Styles()
	switch m.snapshot.Health.State {
	case health.Online:
		return styles.SuccessText
	case health.Offline:
		return styles.DangerText
	default:
		return styles.FaintText
	}
}

// renderHeader renders the top status bar.
func (m Model) renderHeader() string {
	styles := m.theme.Styles()
	bg := NewBgStyle(m.theme.Surface)
	label, _ := healthText(m.snapshot.Health.State)

	parts := []string{
		bg.Render("fblive", styles.Logo),
		bg.Render("●", m.healthStyle()) + bg.Space() + bg.Render(label, styles.Text),
		bg.Render(m.baseURL, styles.MutedText),
	}
	if m.snapshot.Tracking {
		parts = append(parts, bg.Render("LIVE", styles.SuccessText))
	}
	if m.filter != FilterAll {
		parts = append(parts, bg.Render("Filter: "+m.filter.Label(), styles.AccentText))
	}
	if !m.snapshot.LastUpdated.IsZero() {
		parts = append(parts, bg.Render("Updated "+m.snapshot.LastUpdated.Format("15:04:05"), styles.FaintText))
	}
	if m.busy() {
		parts = append(parts, bg.Render(m.spinner.View(), styles.AccentText))
	}

	return bg.FillLine(bg.Space()+bg.Join(parts, "  "), m.width)
}

// renderCommandBar renders the key hints for the current view.
func (m Model) renderCommandBar() string {
	styles := m.theme.Styles()
	var hints []string
	switch m.currentView {
	case ViewLogs:
		hints = []string{"space follow", "j/k scroll", "m matches", "? help", "q quit"}
	default:
		hints = []string{"n search", "e edit", "w watch", "d delete", "f filter", "s track", "r refresh", "l logs", "? help", "q quit"}
	}
	return styles.Footer.Width(m.width).Render(truncate(strings.Join(hints, " · "), m.width-2))
}

// renderServerStatus renders the server status panel.
func (m Model) renderServerStatus(width int) string {
	styles := m.theme.Styles()
	state := m.snapshot.Health.State
	label, description := healthText(state)

	var b strings.Builder
	b.WriteString(styles.AccentText.Bold(true).Render("Server Status"))
	b.WriteString("\n\n")
	b.WriteString(m.healthStyle().Render("●") + " " + styles.Text.Bold(true).Render(label))
	b.WriteString("\n")
	b.WriteString(styles.MutedText.Render(description))
	if !m.snapshot.Health.LastChecked.IsZero() {
		b.WriteString("\n")
		b.WriteString(styles.FaintText.Render("Last checked: " + m.snapshot.Health.LastChecked.Format("15:04:05")))
	}
	if state == health.Offline {
		b.WriteString("\n\n")
		b.WriteString(styles.DangerText.Render("Troubleshooting:"))
		for _, hint := range troubleshootingHints(m.baseURL) {
			b.WriteString("\n")
			b.WriteString(styles.WarningText.Render("• " + hint))
		}
	}
	if apiErr := m.requestError(); apiErr != nil {
		b.WriteString("\n\n")
		b.WriteString(styles.DangerText.Render("Last request failed"))
		b.WriteString("\n")
		b.WriteString(styles.WarningText.Render(api.DisplayMessage(apiErr)))
		b.WriteString("\n")
		b.WriteString(styles.FaintText.Render("x dismiss"))
	}
	b.WriteString("\n\n")
	b.WriteString(styles.FaintText.Render("r refresh"))

	return styles.Panel.Width(width - 2).Render(b.String())
}

// renderTracking renders the live tracking panel.
func (m Model) renderTracking(width int) string {
	styles := m.theme.Styles()

	var b strings.Builder
	b.WriteString(styles.AccentText.Bold(true).Render("Live Tracking"))
	b.WriteString("\n\n")
	if m.snapshot.Tracking {
		b.WriteString(styles.SuccessText.Render("● Live tracking is active"))
		b.WriteString("\n")
		b.WriteString(styles.MutedText.Render("Monitoring watched matches that are still pending. Check the server console for live updates."))
	} else {
		b.WriteString(styles.FaintText.Render("○ ") + styles.Text.Render("Live tracking is inactive"))
		b.WriteString("\n")
		b.WriteString(styles.MutedText.Render("Press s to start live tracking of watched matches."))
	}
	if msg := strings.TrimSpace(m.trackingMessage); msg != "" {
		b.WriteString("\n\n")
		if m.trackingFailed {
			b.WriteString(styles.DangerText.Render(msg))
		} else {
			b.WriteString(styles.SuccessText.Render(msg))
		}
	}

	return styles.Panel.Width(width - 2).Render(b.String())
}
