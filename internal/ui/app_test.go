package ui

import (
	"context"
	"strings"
	"sync"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/fblive/fblive/internal/api"
	"github.com/fblive/fblive/internal/health"
	"github.com/fblive/fblive/internal/state"
)

type fakeService struct {
	mu       sync.Mutex
	matches  []api.Match
	found    api.Match
	tracking api.TrackingResult
	err      error
	calls    []string
}

func (f *fakeService) record(call string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, call)
}

func (f *fakeService) ListMatches(context.Context) ([]api.Match, error) {
	f.record("list")
	return f.matches, f.err
}

func (f *fakeService) SearchMatch(_ context.Context, req api.SearchRequest) (api.Match, error) {
	f.record("search " + req.HomeTeam + " " + req.AwayTeam)
	return f.found, f.err
}

func (f *fakeService) StartTracking(context.Context) (api.TrackingResult, error) {
	f.record("track")
	return f.tracking, f.err
}

func (f *fakeService) ToggleWatch(_ context.Context, id string) error {
	f.record("watch " + id)
	return f.err
}

func (f *fakeService) UpdateTeams(_ context.Context, id string, update api.TeamsUpdate) error {
	f.record("teams " + id + " " + update.HomeTeam + " " + update.AwayTeam)
	return f.err
}

func (f *fakeService) DeleteMatch(_ context.Context, id string) error {
	f.record("delete " + id)
	return f.err
}

type countingRefresher struct{ n int }

func (r *countingRefresher) Refresh() { r.n++ }

func newTestModel(t *testing.T, svc *fakeService) Model {
	t.Helper()
	opts := Options{
		Context:  context.Background(),
		Store:    &state.Store{},
		BaseURL:  api.DefaultBaseURL,
		Filter:   "all",
		PollTick: DefaultUIInterval,
	}
	if svc != nil {
		opts.Client = svc
	}
	m := New(opts)
	m.width, m.height = 120, 40
	m.initLogViewport()
	m.ready = true
	return m
}

func keyPress(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func typeText(t *testing.T, m Model, text string) Model {
	t.Helper()
	for _, r := range text {
		next, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
		m = next.(Model)
	}
	return m
}

func press(t *testing.T, m Model, k string) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(keyPress(k))
	return next.(Model), cmd
}

func TestModel_SwitchesViews(t *testing.T) {
	m := newTestModel(t, nil)

	m, _ = press(t, m, "l")
	if m.currentView != ViewLogs {
		t.Fatalf("currentView = %v, want ViewLogs", m.currentView)
	}
	m, _ = press(t, m, "tab")
	if m.currentView != ViewMatches {
		t.Fatalf("currentView = %v, want ViewMatches after tab", m.currentView)
	}
	m, _ = press(t, m, "l")
	m, _ = press(t, m, "esc")
	if m.currentView != ViewMatches {
		t.Fatalf("currentView = %v, want ViewMatches after esc", m.currentView)
	}
}

func TestModel_CycleFilterAndTheme(t *testing.T) {
	m := newTestModel(t, nil)
	m.prefsPath = t.TempDir() + "/prefs.toml"

	m, _ = press(t, m, "f")
	if m.filter != FilterWatched {
		t.Fatalf("filter = %v, want FilterWatched", m.filter)
	}
	m, _ = press(t, m, "T")
	if m.theme.Name != "Night" {
		t.Fatalf("theme = %q, want Night", m.theme.Name)
	}
}

func TestModel_HelpClosesOnAnyKey(t *testing.T) {
	m := newTestModel(t, nil)
	m, _ = press(t, m, "?")
	if !m.showHelp {
		t.Fatalf("showHelp = false after ?")
	}
	m, _ = press(t, m, "f")
	if m.showHelp {
		t.Fatalf("showHelp = true after second key")
	}
	if m.filter != FilterAll {
		t.Fatalf("filter changed while closing help")
	}
}

func TestModel_SearchFlow(t *testing.T) {
	svc := &fakeService{found: api.Match{ID: "9", HomeTeam: "Rangers", AwayTeam: "Plzen"}}
	m := newTestModel(t, svc)
	refresher := &countingRefresher{}
	m.refresher = refresher

	m, _ = press(t, m, "n")
	if _, ok := m.modal.(searchForm); !ok {
		t.Fatalf("modal = %T, want searchForm", m.modal)
	}

	m = typeText(t, m, "Rangers")
	m, _ = press(t, m, "enter")
	m = typeText(t, m, "Plzen")
	m, _ = press(t, m, "enter")
	m = typeText(t, m, "2024-05-01")
	m, cmd := press(t, m, "enter")
	if cmd == nil {
		t.Fatalf("submit returned nil command")
	}
	submit, ok := cmd().(searchSubmitMsg)
	if !ok {
		t.Fatalf("submit message has wrong type")
	}
	if submit.req.HomeTeam != "Rangers" || submit.req.AwayTeam != "Plzen" || submit.req.Date != "2024-05-01" {
		t.Fatalf("submitted request = %#v", submit.req)
	}

	next, cmd := m.Update(submit)
	m = next.(Model)
	result := cmd()
	next, _ = m.Update(result)
	m = next.(Model)

	if m.modal != nil {
		t.Fatalf("modal = %T, want closed after success", m.modal)
	}
	if m.toast == nil || m.toast.level != toastSuccess || m.toast.message != searchSuccessText {
		t.Fatalf("toast = %#v, want success", m.toast)
	}
	if refresher.n != 1 {
		t.Fatalf("refresh count = %d, want 1", refresher.n)
	}
}

func TestModel_SearchFailureStaysOpen(t *testing.T) {
	m := newTestModel(t, &fakeService{})
	form := newSearchForm()
	form.pending = true
	m.modal = form

	err := &api.Error{Message: "Not found", Kind: api.KindServer, Status: 404}
	next, _ := m.Update(searchResultMsg{err: err})
	m = next.(Model)

	got, ok := m.modal.(searchForm)
	if !ok {
		t.Fatalf("modal = %T, want searchForm still open", m.modal)
	}
	if got.pending {
		t.Fatalf("form still pending after failure")
	}
	if got.err != api.DisplayMessage(err) {
		t.Fatalf("form err = %q, want %q", got.err, api.DisplayMessage(err))
	}
}

func TestModel_DeleteRequiresConfirmation(t *testing.T) {
	svc := &fakeService{}
	m := newTestModel(t, svc)
	m.snapshot.Matches = sampleMatches()
	m.snapshot.HasMatches = true

	m, _ = press(t, m, "d")
	if _, ok := m.modal.(confirmDelete); !ok {
		t.Fatalf("modal = %T, want confirmDelete", m.modal)
	}
	m, _ = press(t, m, "n")
	if m.modal != nil {
		t.Fatalf("modal still open after n")
	}
	if len(svc.calls) != 0 {
		t.Fatalf("calls = %v, want none", svc.calls)
	}

	m, _ = press(t, m, "d")
	m, cmd := press(t, m, "y")
	if m.modal != nil {
		t.Fatalf("modal still open after y")
	}
	confirmed, ok := cmd().(deleteConfirmedMsg)
	if !ok || confirmed.id != "1" {
		t.Fatalf("confirm message = %#v, want delete of 1", confirmed)
	}
	next, cmd := m.Update(confirmed)
	m = next.(Model)
	next, _ = m.Update(cmd())
	m = next.(Model)

	if len(svc.calls) != 1 || svc.calls[0] != "delete 1" {
		t.Fatalf("calls = %v, want [delete 1]", svc.calls)
	}
	if m.toast == nil || !strings.Contains(m.toast.message, "Rangers vs Plzen") {
		t.Fatalf("toast = %#v, want deleted match title", m.toast)
	}
}

func TestModel_ToggleWatchClearsPending(t *testing.T) {
	svc := &fakeService{}
	m := newTestModel(t, svc)
	m.snapshot.Matches = sampleMatches()

	m, cmd := press(t, m, "w")
	if m.togglingID != "1" {
		t.Fatalf("togglingID = %q, want 1", m.togglingID)
	}
	if !m.busy() {
		t.Fatalf("busy() = false while toggling")
	}
	if _, second := press(t, m, "w"); second != nil {
		t.Fatalf("second toggle issued while first outstanding")
	}

	next, _ := m.Update(cmd())
	m = next.(Model)
	if m.togglingID != "" {
		t.Fatalf("togglingID = %q, want cleared", m.togglingID)
	}
}

func TestModel_TrackingResult(t *testing.T) {
	cases := []struct {
		name    string
		result  api.TrackingResult
		err     error
		message string
		started bool
		failed  bool
	}{
		{
			name:    "started",
			result:  api.TrackingResult{Message: "Tracking 2 matches"},
			message: "Tracking 2 matches",
			started: true,
		},
		{
			name:    "no live matches",
			result:  api.TrackingResult{Message: "No live matches found"},
			message: "No live matches found",
		},
		{
			name:    "empty message",
			result:  api.TrackingResult{},
			message: trackingStartedText,
		},
		{
			name:    "network failure",
			err:     &api.Error{Message: "Network error", Kind: api.KindNetwork},
			message: api.DisplayMessage(&api.Error{Kind: api.KindNetwork}),
			failed:  true,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			svc := &fakeService{tracking: tc.result, err: tc.err}
			m := newTestModel(t, svc)

			m, cmd := press(t, m, "s")
			if !m.trackingPending || cmd == nil {
				t.Fatalf("tracking not started: pending=%v", m.trackingPending)
			}
			next, _ := m.Update(cmd())
			m = next.(Model)

			if m.trackingPending {
				t.Fatalf("trackingPending still set")
			}
			if m.trackingMessage != tc.message {
				t.Fatalf("trackingMessage = %q, want %q", m.trackingMessage, tc.message)
			}
			if m.trackingFailed != tc.failed {
				t.Fatalf("trackingFailed = %v, want %v", m.trackingFailed, tc.failed)
			}
			if got := m.store.Snapshot().Tracking; got != tc.started {
				t.Fatalf("store Tracking = %v, want %v", got, tc.started)
			}
		})
	}
}

func TestModel_TrackingIgnoredWhileActive(t *testing.T) {
	m := newTestModel(t, &fakeService{})
	m.snapshot.Tracking = true
	if _, cmd := press(t, m, "s"); cmd != nil {
		t.Fatalf("start tracking issued while already tracking")
	}
}

func TestModel_NoticeShowsToastAndDismisses(t *testing.T) {
	m := newTestModel(t, nil)
	m.notifier = NewNotifier()

	err := &api.Error{Message: "Internal", Kind: api.KindServer, Status: 500}
	next, cmd := m.Update(noticeMsg{err: err})
	m = next.(Model)
	if cmd == nil {
		t.Fatalf("notice returned nil command")
	}
	if m.toast == nil || m.toast.level != toastError || m.toast.message != api.DisplayMessage(err) {
		t.Fatalf("toast = %#v, want error toast", m.toast)
	}
	if !strings.Contains(m.View(), api.DisplayMessage(err)) {
		t.Fatalf("view does not render the toast")
	}

	m, _ = press(t, m, "x")
	if m.toast != nil {
		t.Fatalf("toast = %#v, want dismissed", m.toast)
	}
}

func TestModel_ViewRendersOfflineHints(t *testing.T) {
	m := newTestModel(t, nil)
	m.snapshot.Health.State = health.Offline
	view := m.View()
	if !strings.Contains(view, "Offline") {
		t.Fatalf("view missing Offline label")
	}
	if !strings.Contains(view, "Troubleshooting:") {
		t.Fatalf("view missing troubleshooting hints")
	}

	m.snapshot.Health.State = health.Online
	if strings.Contains(m.View(), "Troubleshooting:") {
		t.Fatalf("hints rendered while online")
	}
}

func TestErrorText(t *testing.T) {
	if got := errorText(api.NewClientError("Date is required"), "fallback"); got != "Date is required" {
		t.Fatalf("errorText(client) = %q, want the validation message", got)
	}
	server := &api.Error{Message: "Boom", Kind: api.KindServer, Status: 500}
	if got := errorText(server, "fallback"); got != api.DisplayMessage(server) {
		t.Fatalf("errorText(server) = %q, want %q", got, api.DisplayMessage(server))
	}
	if got := errorText(context.Canceled, "fallback"); got != "fallback" {
		t.Fatalf("errorText(plain) = %q, want fallback", got)
	}
}

type fakeRequestState struct {
	err     *api.Error
	cleared int
}

func (f *fakeRequestState) InFlight() bool  { return false }
func (f *fakeRequestState) Err() *api.Error { return f.err }
func (f *fakeRequestState) ClearError() {
	f.err = nil
	f.cleared++
}

func TestModel_ShowsAndDismissesRequestError(t *testing.T) {
	m := newTestModel(t, nil)
	requests := &fakeRequestState{err: &api.Error{Message: "Duplicate match", Kind: api.KindServer, Status: 409}}
	m.activity = requests

	view := m.View()
	if !strings.Contains(view, "Last request failed") || !strings.Contains(view, "Duplicate match") {
		t.Fatalf("view does not show the current request error")
	}

	m, _ = press(t, m, "x")
	if requests.cleared != 1 {
		t.Fatalf("ClearError calls = %d, want 1", requests.cleared)
	}
	if strings.Contains(m.View(), "Last request failed") {
		t.Fatalf("request error still rendered after dismiss")
	}
}

func TestModel_LocalRejectionsRaiseToast(t *testing.T) {
	m := newTestModel(t, nil)
	m.togglingID = " "

	next, cmd := m.Update(watchResultMsg{id: " ", err: api.NewClientError("match id required")})
	m = next.(Model)
	if cmd == nil || m.toast == nil || m.toast.level != toastError || m.toast.message != "match id required" {
		t.Fatalf("toast = %#v, want local rejection message", m.toast)
	}
	if m.togglingID != "" {
		t.Fatalf("togglingID = %q, want cleared", m.togglingID)
	}

	m.toast = nil
	next, _ = m.Update(deleteResultMsg{title: "A vs B", err: api.NewClientError("match id required")})
	m = next.(Model)
	if m.toast == nil || m.toast.message != "match id required" {
		t.Fatalf("toast = %#v, want delete rejection message", m.toast)
	}

	m.toast = nil
	server := &api.Error{Message: "Internal", Kind: api.KindServer, Status: 500}
	next, _ = m.Update(deleteResultMsg{title: "A vs B", err: server})
	m = next.(Model)
	if m.toast != nil {
		t.Fatalf("toast = %#v, want none for errors the notifier already raised", m.toast)
	}
}
