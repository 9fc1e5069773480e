package ui

import (
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/fblive/fblive/internal/logtail"
)

// logState holds the log view state.
type logState struct {
	follow  bool
	entries []logtail.Entry
	err     error
}

type logLinesMsg struct {
	lines []string
	err   error
}

func readLogsCmd(path string) tea.Cmd {
	if strings.TrimSpace(path) == "" {
		return nil
	}
	return func() tea.Msg {
		lines, err := logtail.Read(path, LogTailLines)
		return logLinesMsg{lines: lines, err: err}
	}
}

func (m *Model) initLogViewport() {
	m.logViewport = viewport.New(m.width, m.contentHeight())
}

func (m *Model) resizeLogViewport() {
	m.logViewport.Width = m.width
	m.logViewport.Height = m.contentHeight()
}

func (m *Model) handleLogLines(msg logLinesMsg) {
	if msg.err != nil {
		m.logState.err = msg.err
		return
	}
	m.logState.err = nil
	m.logState.entries = logtail.ParseLines(msg.lines)
	m.updateLogViewport()
}

func (m *Model) updateLogViewport() {
	if len(m.logState.entries) == 0 {
		m.logViewport.SetContent(m.theme.Styles().MutedText.Render("No log entries yet."))
		return
	}
	lines := make([]string, len(m.logState.entries))
	for i, e := range m.logState.entries {
		lines[i] = m.formatLogEntry(e)
	}
	m.logViewport.SetContent(strings.Join(lines, "\n"))
	if m.logState.follow {
		m.logViewport.GotoBottom()
	}
}

// handleLogsKey processes keyboard input for the log view.
func (m Model) handleLogsKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == " " {
		m.logState.follow = !m.logState.follow
		if m.logState.follow {
			m.logViewport.GotoBottom()
		}
		return m, nil
	}
	var cmd tea.Cmd
	m.logViewport, cmd = m.logViewport.Update(msg)
	m.logState.follow = m.logViewport.AtBottom()
	return m, cmd
}

func (m Model) formatLogEntry(e logtail.Entry) string {
	styles := m.theme.Styles()
	if !e.Structured() {
		return styles.Text.Render(e.Raw)
	}

	parts := make([]string, 0, 4+len(e.Fields))
	if ts := formatLogTime(e.Time); ts != "" {
		parts = append(parts, styles.FaintText.Render(ts))
	}
	level := strings.ToUpper(e.Level)
	if level == "" {
		level = "INFO"
	}
	switch e.Level {
	case "error", "fatal":
		parts = append(parts, styles.DangerText.Render(padRight(level, 5)))
	case "warn":
		parts = append(parts, styles.WarningText.Bold(true).Render(padRight(level, 5)))
	case "debug":
		parts = append(parts, styles.InfoText.Render(padRight(level, 5)))
	default:
		parts = append(parts, styles.SuccessText.Render(padRight(level, 5)))
	}
	if e.Message != "" {
		parts = append(parts, styles.Text.Render(e.Message))
	}
	for _, f := range e.Fields {
		if f.Value == "" {
			continue
		}
		parts = append(parts, styles.MutedText.Render(f.Key+"=")+styles.Text.Render(f.Value))
	}
	return strings.Join(parts, " ")
}

func formatLogTime(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ""
	}
	for _, layout := range []string{time.RFC3339Nano, "2006/01/02 15:04:05"} {
		if t, err := time.Parse(layout, raw); err == nil {
			return t.In(time.Local).Format("15:04:05")
		}
	}
	return raw
}

// renderLogs renders the log view.
func (m Model) renderLogs() string {
	styles := m.theme.Styles()
	title := styles.AccentText.Bold(true).Render("Log") + "  " + styles.MutedText.Render(m.logPath)
	if m.logState.follow {
		title += "  " + styles.SuccessText.Render("following")
	}
	if m.logState.err != nil {
		title += "  " + styles.DangerText.Render(m.logState.err.Error())
	}
	return title + "\n" + m.logViewport.View()
}
