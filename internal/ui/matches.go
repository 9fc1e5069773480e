package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/fblive/fblive/internal/api"
)

// MatchFilter represents the match list filter mode.
type MatchFilter int

const (
	FilterAll MatchFilter = iota
	FilterWatched
	FilterPending
	FilterEnded
)

// ParseFilter maps a persisted filter name back to a MatchFilter. Unknown
// names select FilterAll.
func ParseFilter(name string) MatchFilter {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "watched":
		return FilterWatched
	case "pending":
		return FilterPending
	case "ended":
		return FilterEnded
	default:
		return FilterAll
	}
}

// String returns the persisted name of the filter.
func (f MatchFilter) String() string {
	switch f {
	case FilterWatched:
		return "watched"
	case FilterPending:
		return "pending"
	case FilterEnded:
		return "ended"
	default:
		return "all"
	}
}

// Label returns the display label of the filter.
func (f MatchFilter) Label() string {
	return titleCase(f.String())
}

// Next returns the following filter in the cycle.
func (f MatchFilter) Next() MatchFilter {
	switch f {
	case FilterAll:
		return FilterWatched
	case FilterWatched:
		return FilterPending
	case FilterPending:
		return FilterEnded
	default:
		return FilterAll
	}
}

// Matches reports whether m passes the filter.
func (f MatchFilter) Matches(m api.Match) bool {
	switch f {
	case FilterWatched:
		return m.Watch
	case FilterPending:
		return statusIs(m, "pending")
	case FilterEnded:
		return statusIs(m, "ended")
	default:
		return true
	}
}

func statusIs(m api.Match, status string) bool {
	return strings.EqualFold(strings.TrimSpace(m.Status), status)
}

// filterMatches keeps the order of matches.
func filterMatches(matches []api.Match, f MatchFilter) []api.Match {
	if f == FilterAll {
		return matches
	}
	out := make([]api.Match, 0, len(matches))
	for _, m := range matches {
		if f.Matches(m) {
			out = append(out, m)
		}
	}
	return out
}

// visibleMatches returns the filtered list the selection indexes into.
func (m Model) visibleMatches() []api.Match {
	return filterMatches(m.snapshot.Matches, m.filter)
}

// selectedMatch returns the highlighted match, if any.
func (m Model) selectedMatch() (api.Match, bool) {
	items := m.visibleMatches()
	if len(items) == 0 {
		return api.Match{}, false
	}
	idx := m.selectedRow
	if idx >= len(items) {
		idx = len(items) - 1
	}
	if idx < 0 {
		idx = 0
	}
	return items[idx], true
}

// clampSelection keeps selectedRow inside the visible list.
func (m *Model) clampSelection() {
	n := len(m.visibleMatches())
	if m.selectedRow >= n {
		m.selectedRow = n - 1
	}
	if m.selectedRow < 0 {
		m.selectedRow = 0
	}
}

// handleMatchesKey processes navigation in the match list.
func (m Model) handleMatchesKey(msg string) Model {
	itemCount := len(m.visibleMatches())
	if itemCount == 0 {
		return m
	}

	switch msg {
	case "j", "down":
		if m.selectedRow < itemCount-1 {
			m.selectedRow++
		}
	case "k", "up":
		if m.selectedRow > 0 {
			m.selectedRow--
		}
	case "g", "home":
		m.selectedRow = 0
	case "G", "end":
		m.selectedRow = itemCount - 1
	}
	return m
}

// formatKickoff renders the match date and time for the list.
func formatKickoff(match api.Match) string {
	if k := match.Kickoff(); !k.IsZero() {
		if strings.TrimSpace(match.Time) == "" {
			return k.Format("Mon 02 Jan 2006")
		}
		return k.Format("Mon 02 Jan 2006 15:04")
	}
	return strings.TrimSpace(match.Date + " " + match.Time)
}

// renderMatches renders the match list panel.
func (m Model) renderMatches(width, height int) string {
	styles := m.theme.Styles()
	items := m.visibleMatches()
	inner := maxInt(width-4, 10)

	var b strings.Builder
	title := fmt.Sprintf("Matches (%d)", len(m.snapshot.Matches))
	if m.filter != FilterAll {
		title = fmt.Sprintf("Matches (%d of %d) · %s", len(items), len(m.snapshot.Matches), m.filter.Label())
	}
	b.WriteString(styles.AccentText.Bold(true).Render(title))
	b.WriteString("\n\n")

	switch {
	case !m.snapshot.HasMatches && m.snapshot.LastError != nil:
		b.WriteString(styles.DangerText.Render(truncate(api.DisplayMessage(m.snapshot.LastError), inner)))
	case !m.snapshot.HasMatches:
		b.WriteString(styles.MutedText.Render("Loading matches..."))
	case len(m.snapshot.Matches) == 0:
		b.WriteString(styles.MutedText.Render("No matches found. Press n to search for a match."))
	case len(items) == 0:
		b.WriteString(styles.MutedText.Render("No matches for filter " + m.filter.Label() + "."))
	default:
		rows := maxInt(height-4, 1) / 2
		start := 0
		if m.selectedRow >= rows {
			start = m.selectedRow - rows + 1
		}
		end := start + rows
		if end > len(items) {
			end = len(items)
		}
		for i := start; i < end; i++ {
			b.WriteString(m.renderMatchRow(items[i], i == m.selectedRow, inner, styles))
			if i < end-1 {
				b.WriteString("\n")
			}
		}
	}

	panel := styles.FocusPanel
	if m.modal != nil {
		panel = styles.Panel
	}
	return panel.Width(width - 2).Height(maxInt(height-2, 1)).Render(b.String())
}

func (m Model) renderMatchRow(match api.Match, selected bool, width int, styles Styles) string {
	watch := ternary(match.Watch, "● Watching", "○ Watch")
	status := strings.TrimSpace(match.Status)
	if status == "" {
		status = "unknown"
	}
	badge := styles.StatusStyle(status).Render(titleCase(status))

	titleWidth := width - lipgloss.Width(badge) - 1
	title := padRight(truncate(match.Title(), titleWidth), titleWidth)

	watchStyle := styles.MutedText
	if match.Watch {
		watchStyle = styles.SuccessText
	}
	line1 := title + " " + badge
	line2 := padRight(truncate(formatKickoff(match), width-12), width-12) + watchStyle.Render(padRight(watch, 12))

	if selected {
		return styles.Selected.Width(width).Render(line1) + "\n" + styles.Selected.Width(width).Render(line2)
	}
	return styles.Text.Render(line1) + "\n" + styles.MutedText.Render(line2)
}
