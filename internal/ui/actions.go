package ui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/fblive/fblive/internal/api"
)

const (
	searchSuccessText   = "Match found and saved successfully!"
	searchFailedText    = "Failed to search match"
	teamsUpdatedText    = "Team names updated"
	teamsFailedText     = "Failed to update team names"
	deleteSuccessText   = "Match deleted"
	deleteFailedText    = "Failed to delete match"
	watchFailedText     = "Failed to update watch status"
	trackingStartedText = "Live tracking started successfully!"
	trackingFailedText  = "Failed to start tracking"
)

// Result messages of API calls.

type searchResultMsg struct {
	match api.Match
	err   error
}

type teamsResultMsg struct {
	id  string
	err error
}

type watchResultMsg struct {
	id  string
	err error
}

type deleteResultMsg struct {
	title string
	err   error
}

type trackingResultMsg struct {
	result api.TrackingResult
	err    error
}

func searchCmd(ctx context.Context, client api.MatchService, req api.SearchRequest) tea.Cmd {
	if client == nil {
		return nil
	}
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(ctx, ActionTimeout)
		defer cancel()
		match, err := client.SearchMatch(ctx, req)
		return searchResultMsg{match: match, err: err}
	}
}

func updateTeamsCmd(ctx context.Context, client api.MatchService, id string, update api.TeamsUpdate) tea.Cmd {
	if client == nil {
		return nil
	}
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(ctx, ActionTimeout)
		defer cancel()
		return teamsResultMsg{id: id, err: client.UpdateTeams(ctx, id, update)}
	}
}

func toggleWatchCmd(ctx context.Context, client api.MatchService, id string) tea.Cmd {
	if client == nil {
		return nil
	}
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(ctx, ActionTimeout)
		defer cancel()
		return watchResultMsg{id: id, err: client.ToggleWatch(ctx, id)}
	}
}

func deleteCmd(ctx context.Context, client api.MatchService, id, title string) tea.Cmd {
	if client == nil {
		return nil
	}
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(ctx, ActionTimeout)
		defer cancel()
		return deleteResultMsg{title: title, err: client.DeleteMatch(ctx, id)}
	}
}

func startTrackingCmd(ctx context.Context, client api.MatchService) tea.Cmd {
	if client == nil {
		return nil
	}
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(ctx, ActionTimeout)
		defer cancel()
		result, err := client.StartTracking(ctx)
		return trackingResultMsg{result: result, err: err}
	}
}

// errorText returns the message to show inline for a failed action.
// Validation errors keep their specific text.
func errorText(err error, fallback string) string {
	apiErr, ok := api.AsError(err)
	if !ok {
		return fallback
	}
	if apiErr.Kind == api.KindClient && apiErr.Message != "" {
		return apiErr.Message
	}
	if msg := api.DisplayMessage(apiErr); msg != "" {
		return msg
	}
	return fallback
}

func (m Model) handleSearchResult(msg searchResultMsg) (tea.Model, tea.Cmd) {
	form, open := m.modal.(searchForm)
	if msg.err != nil {
		if open {
			m.modal = form.failed(errorText(msg.err, searchFailedText))
		}
		return m, nil
	}
	if open {
		m.modal = nil
	}
	m.logger.Info("match saved", "id", msg.match.ID, "match", msg.match.Title())
	m.refresh()
	return m, m.showToast(toastSuccess, searchSuccessText)
}

func (m Model) handleTeamsResult(msg teamsResultMsg) (tea.Model, tea.Cmd) {
	editor, open := m.modal.(teamEditor)
	open = open && editor.id == msg.id
	if msg.err != nil {
		if open {
			m.modal = editor.failed(errorText(msg.err, teamsFailedText))
			return m, nil
		}
		return m, m.showToast(toastError, errorText(msg.err, teamsFailedText))
	}
	if open {
		m.modal = nil
	}
	m.refresh()
	return m, m.showToast(toastSuccess, teamsUpdatedText)
}

// rejectedLocally reports whether err was raised before any request was
// sent. Those never reach the notifier.
func rejectedLocally(err error) bool {
	apiErr, ok := api.AsError(err)
	return ok && apiErr.Kind == api.KindClient
}

func (m Model) handleWatchResult(msg watchResultMsg) (tea.Model, tea.Cmd) {
	if m.togglingID == msg.id {
		m.togglingID = ""
	}
	if msg.err != nil {
		if rejectedLocally(msg.err) {
			return m, m.showToast(toastError, errorText(msg.err, watchFailedText))
		}
		return m, nil
	}
	m.refresh()
	return m, nil
}

func (m Model) handleDeleteResult(msg deleteResultMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		if rejectedLocally(msg.err) {
			return m, m.showToast(toastError, errorText(msg.err, deleteFailedText))
		}
		return m, nil
	}
	m.refresh()
	return m, m.showToast(toastSuccess, deleteSuccessText+": "+msg.title)
}

func (m Model) startTracking() (tea.Model, tea.Cmd) {
	if m.trackingPending || m.snapshot.Tracking {
		return m, nil
	}
	m.trackingPending = true
	m.trackingMessage = ""
	m.trackingFailed = false
	return m, startTrackingCmd(m.ctx, m.client)
}

func (m Model) handleTrackingResult(msg trackingResultMsg) (tea.Model, tea.Cmd) {
	m.trackingPending = false
	if msg.err != nil {
		m.trackingFailed = true
		m.trackingMessage = errorText(msg.err, trackingFailedText)
		return m, nil
	}

	m.trackingFailed = false
	m.trackingMessage = msg.result.Message
	if m.trackingMessage == "" {
		m.trackingMessage = trackingStartedText
	}
	if msg.result.Started() {
		if m.store != nil {
			m.store.SetTracking(true)
		}
		m.snapshot.Tracking = true
		m.logger.Info("live tracking started", "message", msg.result.Message)
	}
	return m, nil
}
