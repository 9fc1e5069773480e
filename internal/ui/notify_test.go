package ui

import (
	"testing"
	"time"

	"github.com/fblive/fblive/internal/api"
)

func TestNotifier_NonBlockingAndOrdered(t *testing.T) {
	n := NewNotifier()
	for i := 0; i < notifierBuffer+5; i++ {
		n.Notify(&api.Error{Message: "boom", Kind: api.KindServer, Status: 500 + i})
	}
	n.Notify(nil)

	msg := n.listen()()
	notice, ok := msg.(noticeMsg)
	if !ok {
		t.Fatalf("listen() = %T, want noticeMsg", msg)
	}
	if notice.err.Status != 500 {
		t.Fatalf("first notice status = %d, want 500", notice.err.Status)
	}

	var nilNotifier *Notifier
	nilNotifier.Notify(&api.Error{})
	if cmd := nilNotifier.listen(); cmd != nil {
		t.Fatalf("nil notifier listen() returned a command")
	}
}

func TestToast_ExpiresOnlyMatchingID(t *testing.T) {
	m := newTestModel(t, nil)
	m.toastTimeout = time.Millisecond

	cmd := m.showToast(toastError, "first")
	if cmd == nil {
		t.Fatalf("showToast returned nil command")
	}
	firstID := m.toast.id
	_ = m.showToast(toastError, "second")

	m.expireToast(firstID)
	if m.toast == nil || m.toast.message != "second" {
		t.Fatalf("toast = %#v, want second still visible", m.toast)
	}

	msg := cmd()
	expired, ok := msg.(toastExpiredMsg)
	if !ok || expired.id != firstID {
		t.Fatalf("timer message = %#v, want toastExpiredMsg{%d}", msg, firstID)
	}

	m.expireToast(m.toast.id)
	if m.toast != nil {
		t.Fatalf("toast = %#v, want nil after its timer", m.toast)
	}
}
