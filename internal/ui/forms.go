package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/fblive/fblive/internal/api"
)

// Modal is a dialog drawn over the dashboard. While one is open it receives
// every key. Update reports closed=true when the dialog is done; any command
// it returns still runs.
type Modal interface {
	Update(msg tea.Msg, keys keyMap) (next Modal, cmd tea.Cmd, closed bool)
	View(theme Theme, width, height int) string
}

// Messages emitted by dialogs. The model turns them into API calls.

type searchSubmitMsg struct {
	req api.SearchRequest
}

type teamsSubmitMsg struct {
	id     string
	update api.TeamsUpdate
}

type deleteConfirmedMsg struct {
	id    string
	title string
}

// Search form

const (
	fieldHome = iota
	fieldAway
	fieldDate
)

// searchForm collects the teams and date of a match to look up.
type searchForm struct {
	inputs  [3]textinput.Model
	focus   int
	err     string
	pending bool
}

func newSearchForm() searchForm {
	var f searchForm
	f.inputs[fieldHome] = newInput("e.g. Rangers", 40)
	f.inputs[fieldAway] = newInput("e.g. Plzen", 40)
	f.inputs[fieldDate] = newInput("YYYY-MM-DD", 10)
	f.setFocus(fieldHome)
	return f
}

func newInput(placeholder string, limit int) textinput.Model {
	in := textinput.New()
	in.Placeholder = placeholder
	in.CharLimit = limit
	in.Width = LayoutModalWidth - 8
	in.Prompt = "› "
	return in
}

func (f *searchForm) setFocus(idx int) {
	n := len(f.inputs)
	f.focus = ((idx % n) + n) % n
	for i := range f.inputs {
		if i == f.focus {
			f.inputs[i].Focus()
		} else {
			f.inputs[i].Blur()
		}
	}
}

func (f searchForm) request() api.SearchRequest {
	return api.SearchRequest{
		HomeTeam: f.inputs[fieldHome].Value(),
		AwayTeam: f.inputs[fieldAway].Value(),
		Date:     f.inputs[fieldDate].Value(),
	}
}

// Update implements Modal.
func (f searchForm) Update(msg tea.Msg, keys keyMap) (Modal, tea.Cmd, bool) {
	if k, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(k, keys.Escape):
			return f, nil, true
		case f.pending:
			return f, nil, false
		case key.Matches(k, keys.NextField):
			f.setFocus(f.focus + 1)
			return f, nil, false
		case key.Matches(k, keys.PrevField):
			f.setFocus(f.focus - 1)
			return f, nil, false
		case key.Matches(k, keys.Confirm):
			if f.focus < len(f.inputs)-1 {
				f.setFocus(f.focus + 1)
				return f, nil, false
			}
			req := f.request()
			if err := req.Validate(); err != nil {
				f.err = err.Message
				return f, nil, false
			}
			f.err = ""
			f.pending = true
			return f, func() tea.Msg { return searchSubmitMsg{req: req} }, false
		}
	}

	var cmd tea.Cmd
	f.inputs[f.focus], cmd = f.inputs[f.focus].Update(msg)
	return f, cmd, false
}

// failed re-enables the form and shows message.
func (f searchForm) failed(message string) searchForm {
	f.pending = false
	f.err = message
	return f
}

// View implements Modal.
func (f searchForm) View(theme Theme, width, height int) string {
	styles := theme.Styles()
	var b strings.Builder
	labels := [...]string{"Home team", "Away team", "Date"}
	for i, in := range f.inputs {
		b.WriteString(styles.MutedText.Render(labels[i]))
		b.WriteString("\n")
		b.WriteString(in.View())
		b.WriteString("\n\n")
	}
	writeFormStatus(&b, styles, f.err, f.pending, "Searching...")
	b.WriteString(styles.FaintText.Render("enter next/submit · tab next · esc cancel"))
	return renderModal(theme, width, height, "Search Match", b.String())
}

// Team editor

// teamEditor renames the teams of one match.
type teamEditor struct {
	id      string
	inputs  [2]textinput.Model
	focus   int
	err     string
	pending bool
}

func newTeamEditor(match api.Match) teamEditor {
	e := teamEditor{id: match.ID}
	e.inputs[0] = newInput("Home team", 40)
	e.inputs[0].SetValue(match.HomeTeam)
	e.inputs[1] = newInput("Away team", 40)
	e.inputs[1].SetValue(match.AwayTeam)
	e.setFocus(0)
	return e
}

func (e *teamEditor) setFocus(idx int) {
	n := len(e.inputs)
	e.focus = ((idx % n) + n) % n
	for i := range e.inputs {
		if i == e.focus {
			e.inputs[i].Focus()
		} else {
			e.inputs[i].Blur()
		}
	}
}

// Update implements Modal.
func (e teamEditor) Update(msg tea.Msg, keys keyMap) (Modal, tea.Cmd, bool) {
	if k, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(k, keys.Escape):
			return e, nil, true
		case e.pending:
			return e, nil, false
		case key.Matches(k, keys.NextField):
			e.setFocus(e.focus + 1)
			return e, nil, false
		case key.Matches(k, keys.PrevField):
			e.setFocus(e.focus - 1)
			return e, nil, false
		case key.Matches(k, keys.Confirm):
			if e.focus < len(e.inputs)-1 {
				e.setFocus(e.focus + 1)
				return e, nil, false
			}
			update := api.TeamsUpdate{HomeTeam: e.inputs[0].Value(), AwayTeam: e.inputs[1].Value()}
			if err := update.Validate(); err != nil {
				e.err = err.Message
				return e, nil, false
			}
			e.err = ""
			e.pending = true
			id := e.id
			return e, func() tea.Msg { return teamsSubmitMsg{id: id, update: update} }, false
		}
	}

	var cmd tea.Cmd
	e.inputs[e.focus], cmd = e.inputs[e.focus].Update(msg)
	return e, cmd, false
}

func (e teamEditor) failed(message string) teamEditor {
	e.pending = false
	e.err = message
	return e
}

// View implements Modal.
func (e teamEditor) View(theme Theme, width, height int) string {
	styles := theme.Styles()
	var b strings.Builder
	labels := [...]string{"Home team", "Away team"}
	for i, in := range e.inputs {
		b.WriteString(styles.MutedText.Render(labels[i]))
		b.WriteString("\n")
		b.WriteString(in.View())
		b.WriteString("\n\n")
	}
	writeFormStatus(&b, styles, e.err, e.pending, "Saving...")
	b.WriteString(styles.FaintText.Render("enter save · tab next · esc cancel"))
	return renderModal(theme, width, height, "Edit Team Names", b.String())
}

// Delete confirmation

type confirmDelete struct {
	id    string
	title string
}

// Update implements Modal.
func (c confirmDelete) Update(msg tea.Msg, keys keyMap) (Modal, tea.Cmd, bool) {
	k, ok := msg.(tea.KeyMsg)
	if !ok {
		return c, nil, false
	}
	switch {
	case key.Matches(k, keys.Yes):
		id, title := c.id, c.title
		return c, func() tea.Msg { return deleteConfirmedMsg{id: id, title: title} }, true
	case key.Matches(k, keys.No), key.Matches(k, keys.Escape):
		return c, nil, true
	}
	return c, nil, false
}

// View implements Modal.
func (c confirmDelete) View(theme Theme, width, height int) string {
	styles := theme.Styles()
	body := styles.Text.Render("Are you sure you want to delete this match?") + "\n\n" +
		styles.AccentText.Bold(true).Render(truncate(c.title, LayoutModalWidth-6)) + "\n\n" +
		styles.FaintText.Render("y delete · n/esc cancel")
	return renderModal(theme, width, height, "Delete Match", body)
}

func writeFormStatus(b *strings.Builder, styles Styles, errText string, pending bool, pendingText string) {
	switch {
	case pending:
		b.WriteString(styles.WarningText.Render(pendingText))
		b.WriteString("\n")
	case errText != "":
		b.WriteString(styles.DangerText.Render(errText))
		b.WriteString("\n")
	}
}

// renderModal centers a bordered dialog on the screen.
func renderModal(theme Theme, width, height int, title, body string) string {
	styles := theme.Styles()
	content := styles.Text.Bold(true).Render(title) + "\n" +
		styles.FaintText.Render(strings.Repeat("─", LayoutModalWidth-6)) + "\n\n" +
		body

	modal := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(theme.Accent)).
		Padding(1, 2).
		Width(LayoutModalWidth)

	return lipgloss.Place(
		width,
		height,
		lipgloss.Center,
		lipgloss.Center,
		modal.Render(content),
		lipgloss.WithWhitespaceChars(" "),
		lipgloss.WithWhitespaceForeground(lipgloss.Color(theme.Background)),
	)
}
