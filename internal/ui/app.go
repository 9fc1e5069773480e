package ui

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/fblive/fblive/internal/api"
	"github.com/fblive/fblive/internal/logging"
	"github.com/fblive/fblive/internal/prefs"
	"github.com/fblive/fblive/internal/state"
)

// View represents the current active view.
type View int

const (
	ViewMatches View = iota
	ViewLogs
)

// RequestState exposes the dashboard executor's in-flight flag and its
// current error. *api.Executor satisfies it.
type RequestState interface {
	InFlight() bool
	Err() *api.Error
	ClearError()
}

// HealthChecker triggers an immediate server health check.
type HealthChecker interface {
	CheckNow()
}

// Refresher triggers an immediate reload of the match list.
type Refresher interface {
	Refresh()
}

// Options configures the UI.
type Options struct {
	Context   context.Context
	Client    api.MatchService
	Executor  RequestState
	Store     *state.Store
	Health    HealthChecker
	Refresher Refresher
	Notifier  *Notifier
	LogPath   string
	BaseURL   string
	PollTick  time.Duration
	ThemeName string
	Filter    string
	PrefsPath string
	Logger    *log.Logger
}

// Model is the root application state for Bubble Tea.
type Model struct {
	// Configuration
	ctx          context.Context
	client       api.MatchService
	activity     RequestState
	store        *state.Store
	health       HealthChecker
	refresher    Refresher
	notifier     *Notifier
	logger       *log.Logger
	keys         keyMap
	prefsPath    string
	logPath      string
	baseURL      string
	pollTick     time.Duration
	toastTimeout time.Duration

	// UI state
	theme       Theme
	currentView View
	width       int
	height      int
	ready       bool
	spinner     spinner.Model

	// Data state
	snapshot state.Snapshot

	// Match list state
	selectedRow int
	filter      MatchFilter
	togglingID  string

	// Tracking state
	trackingPending bool
	trackingMessage string
	trackingFailed  bool

	// Overlays
	modal    Modal
	showHelp bool
	toast    *toast
	toastSeq int

	// Log state
	logViewport viewport.Model
	logState    logState
}

// New creates a new Bubble Tea model.
func New(opts Options) Model {
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}

	pollTick := opts.PollTick
	if pollTick <= 0 {
		pollTick = DefaultUIInterval
	}

	themeName := opts.ThemeName
	if themeName == "" {
		themeName = prefs.Default().Theme
	}

	logger := opts.Logger
	if logger == nil {
		logger = logging.Discard()
	}

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	return Model{
		ctx:          ctx,
		client:       opts.Client,
		activity:     opts.Executor,
		store:        opts.Store,
		health:       opts.Health,
		refresher:    opts.Refresher,
		notifier:     opts.Notifier,
		logger:       logger,
		keys:         DefaultKeyMap(),
		prefsPath:    opts.PrefsPath,
		logPath:      opts.LogPath,
		baseURL:      opts.BaseURL,
		pollTick:     pollTick,
		toastTimeout: ToastTimeout,
		theme:        GetTheme(themeName),
		currentView:  ViewMatches,
		spinner:      sp,
		filter:       ParseFilter(opts.Filter),
		logState:     logState{follow: true},
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{
		tickCmd(m.pollTick),
		m.spinner.Tick,
	}
	if m.store != nil {
		cmds = append(cmds, fetchSnapshotCmd(m.store))
	}
	if cmd := m.notifier.listen(); cmd != nil {
		cmds = append(cmds, cmd)
	}
	return tea.Batch(cmds...)
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		if !m.ready {
			m.initLogViewport()
		} else {
			m.resizeLogViewport()
		}
		m.ready = true
		m.updateLogViewport()
		return m, nil

	case tickMsg:
		return m.handleTick()

	case snapshotMsg:
		m.snapshot = state.Snapshot(msg)
		m.clampSelection()
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case noticeMsg:
		cmd := m.showToast(toastError, api.DisplayMessage(msg.err))
		return m, tea.Batch(cmd, m.notifier.listen())

	case toastExpiredMsg:
		m.expireToast(msg.id)
		return m, nil

	case logLinesMsg:
		m.handleLogLines(msg)
		return m, nil

	case searchSubmitMsg:
		return m, searchCmd(m.ctx, m.client, msg.req)

	case teamsSubmitMsg:
		return m, updateTeamsCmd(m.ctx, m.client, msg.id, msg.update)

	case deleteConfirmedMsg:
		return m, deleteCmd(m.ctx, m.client, msg.id, msg.title)

	case searchResultMsg:
		return m.handleSearchResult(msg)

	case teamsResultMsg:
		return m.handleTeamsResult(msg)

	case watchResultMsg:
		return m.handleWatchResult(msg)

	case deleteResultMsg:
		return m.handleDeleteResult(msg)

	case trackingResultMsg:
		return m.handleTrackingResult(msg)
	}

	if m.modal != nil {
		modal, cmd, closed := m.modal.Update(msg, m.keys)
		m.modal = modal
		if closed {
			m.modal = nil
		}
		return m, cmd
	}
	return m, nil
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}
	if m.showHelp {
		return m.renderHelp()
	}
	if m.modal != nil {
		return m.modal.View(m.theme, m.width, m.height)
	}
	return m.renderMain()
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}

	if m.showHelp {
		// Any key closes help
		m.showHelp = false
		return m, nil
	}

	if m.modal != nil {
		modal, cmd, closed := m.modal.Update(msg, m.keys)
		m.modal = modal
		if closed {
			m.modal = nil
		}
		return m, cmd
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.showHelp = true
		return m, nil

	case key.Matches(msg, m.keys.CycleTheme):
		m.theme = GetTheme(NextTheme(m.theme.Name))
		m.updateLogViewport()
		m.savePrefs()
		return m, nil

	case key.Matches(msg, m.keys.Dismiss):
		m.toast = nil
		if m.activity != nil {
			m.activity.ClearError()
		}
		return m, nil

	case key.Matches(msg, m.keys.Tab):
		if m.currentView == ViewMatches {
			return m.switchView(ViewLogs)
		}
		return m.switchView(ViewMatches)

	case key.Matches(msg, m.keys.ViewMatches), key.Matches(msg, m.keys.Escape):
		return m.switchView(ViewMatches)

	case key.Matches(msg, m.keys.ViewLogs):
		return m.switchView(ViewLogs)

	case key.Matches(msg, m.keys.Refresh):
		if m.health != nil {
			m.health.CheckNow()
		}
		m.refresh()
		return m, nil

	case key.Matches(msg, m.keys.StartTracking):
		return m.startTracking()
	}

	switch m.currentView {
	case ViewLogs:
		return m.handleLogsKey(msg)
	default:
		return m.handleMatchAction(msg)
	}
}

func (m Model) switchView(v View) (tea.Model, tea.Cmd) {
	m.currentView = v
	if v == ViewLogs {
		return m, readLogsCmd(m.logPath)
	}
	return m, nil
}

// handleMatchAction processes keys of the match view.
func (m Model) handleMatchAction(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.CycleFilter):
		m.filter = m.filter.Next()
		m.clampSelection()
		m.savePrefs()
		return m, nil

	case key.Matches(msg, m.keys.Search):
		form := newSearchForm()
		m.modal = form
		return m, textinput.Blink

	case key.Matches(msg, m.keys.EditTeams):
		match, ok := m.selectedMatch()
		if !ok {
			return m, nil
		}
		m.modal = newTeamEditor(match)
		return m, textinput.Blink

	case key.Matches(msg, m.keys.ToggleWatch):
		match, ok := m.selectedMatch()
		if !ok || m.togglingID != "" {
			return m, nil
		}
		m.togglingID = match.ID
		return m, toggleWatchCmd(m.ctx, m.client, match.ID)

	case key.Matches(msg, m.keys.Delete):
		match, ok := m.selectedMatch()
		if !ok {
			return m, nil
		}
		m.modal = confirmDelete{id: match.ID, title: match.Title()}
		return m, nil
	}

	return m.handleMatchesKey(msg.String()), nil
}

// handleTick processes the polling tick.
func (m Model) handleTick() (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	if m.store != nil {
		cmds = append(cmds, fetchSnapshotCmd(m.store))
	}
	if m.currentView == ViewLogs && m.logState.follow {
		if cmd := readLogsCmd(m.logPath); cmd != nil {
			cmds = append(cmds, cmd)
		}
	}
	cmds = append(cmds, tickCmd(m.pollTick))

	return m, tea.Batch(cmds...)
}

// requestError returns the error of the last failed dashboard call, if any.
func (m Model) requestError() *api.Error {
	if m.activity == nil {
		return nil
	}
	return m.activity.Err()
}

// busy reports whether any API work is outstanding.
func (m Model) busy() bool {
	if m.trackingPending || m.togglingID != "" {
		return true
	}
	return m.activity != nil && m.activity.InFlight()
}

func (m Model) refresh() {
	if m.refresher != nil {
		m.refresher.Refresh()
	}
}

func (m Model) savePrefs() {
	if m.prefsPath == "" {
		return
	}
	p := prefs.Prefs{Theme: m.theme.Name, Filter: m.filter.String()}
	if err := prefs.Save(m.prefsPath, p); err != nil {
		m.logger.Warn("save preferences failed", "err", err)
	}
}

// contentHeight is the height left for the active view.
func (m Model) contentHeight() int {
	// header, command bar and the toast area
	return maxInt(m.height-5, 3)
}

// renderMain renders the full UI.
func (m Model) renderMain() string {
	var b strings.Builder
	b.WriteString(m.renderHeader())
	b.WriteString("\n")
	b.WriteString(m.renderCommandBar())
	b.WriteString("\n")
	b.WriteString(clipLines(m.renderContent(), m.contentHeight()))
	if t := m.renderToast(); t != "" {
		b.WriteString("\n")
		b.WriteString(t)
	}
	return b.String()
}

// renderContent renders the main content area based on current view.
func (m Model) renderContent() string {
	switch m.currentView {
	case ViewLogs:
		return m.renderLogs()
	default:
		return m.renderDashboard()
	}
}

func (m Model) renderDashboard() string {
	height := m.contentHeight()
	if m.width < LayoutCompactWidth {
		side := lipgloss.JoinHorizontal(lipgloss.Top,
			m.renderServerStatus(m.width/2),
			m.renderTracking(m.width-m.width/2),
		)
		listHeight := maxInt(height-lipgloss.Height(side), 6)
		return lipgloss.JoinVertical(lipgloss.Left, m.renderMatches(m.width, listHeight), side)
	}

	side := lipgloss.JoinVertical(lipgloss.Left,
		m.renderServerStatus(LayoutSidePanelWidth),
		m.renderTracking(LayoutSidePanelWidth),
	)
	return lipgloss.JoinHorizontal(lipgloss.Top,
		m.renderMatches(m.width-LayoutSidePanelWidth, height),
		side,
	)
}

// clipLines keeps at most n lines of s.
func clipLines(s string, n int) string {
	lines := strings.Split(s, "\n")
	if len(lines) <= n {
		return s
	}
	return strings.Join(lines[:n], "\n")
}

// Messages

type tickMsg time.Time

type snapshotMsg state.Snapshot

// Commands

func tickCmd(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func fetchSnapshotCmd(store *state.Store) tea.Cmd {
	return func() tea.Msg {
		return snapshotMsg(store.Snapshot())
	}
}

// Run starts the Bubble Tea program.
func Run(opts Options) error {
	m := New(opts)
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(m.ctx))
	_, err := p.Run()
	if errors.Is(err, tea.ErrProgramKilled) && m.ctx.Err() != nil {
		return nil
	}
	return err
}
