package ui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/fblive/fblive/internal/api"
)

// Notifier carries executor failures that asked for a notification into the
// Bubble Tea event loop. Notify never blocks; notices beyond the buffer are
// dropped.
type Notifier struct {
	ch chan *api.Error
}

const notifierBuffer = 16

// NewNotifier returns a ready Notifier.
func NewNotifier() *Notifier {
	return &Notifier{ch: make(chan *api.Error, notifierBuffer)}
}

// Notify queues e for display. It is safe to call from any goroutine.
func (n *Notifier) Notify(e *api.Error) {
	if n == nil || e == nil {
		return
	}
	select {
	case n.ch <- e:
	default:
	}
}

// listen waits for the next notice.
func (n *Notifier) listen() tea.Cmd {
	if n == nil {
		return nil
	}
	return func() tea.Msg {
		return noticeMsg{err: <-n.ch}
	}
}

type toastLevel int

const (
	toastError toastLevel = iota
	toastSuccess
)

// toast is the floating notification shown above the footer.
type toast struct {
	id      int
	level   toastLevel
	message string
}

type noticeMsg struct {
	err *api.Error
}

type toastExpiredMsg struct {
	id int
}

// showToast replaces the current toast and schedules its dismissal.
func (m *Model) showToast(level toastLevel, message string) tea.Cmd {
	m.toastSeq++
	id := m.toastSeq
	m.toast = &toast{id: id, level: level, message: message}
	return tea.Tick(m.toastTimeout, func(time.Time) tea.Msg {
		return toastExpiredMsg{id: id}
	})
}

// expireToast closes the toast only if it is still the one the timer was
// started for.
func (m *Model) expireToast(id int) {
	if m.toast != nil && m.toast.id == id {
		m.toast = nil
	}
}

func (m Model) renderToast() string {
	if m.toast == nil {
		return ""
	}
	styles := m.theme.Styles()
	accent := m.theme.Danger
	label := styles.DangerText.Render("Error")
	if m.toast.level == toastSuccess {
		accent = m.theme.Success
		label = styles.SuccessText.Render("Done")
	}
	body := label + "  " + styles.Text.Render(m.toast.message) + "  " + styles.FaintText.Render("[x] close")
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(accent)).
		Background(lipgloss.Color(m.theme.SurfaceAlt)).
		Padding(0, 1).
		MaxWidth(m.width).
		Render(body)
}
