package ui

import (
	"strings"
	"testing"
	"time"

	"github.com/fblive/fblive/internal/logtail"
)

func TestFormatLogTime(t *testing.T) {
	ts := time.Date(2025, 10, 8, 21, 1, 5, 0, time.UTC)
	want := ts.In(time.Local).Format("15:04:05")
	if got := formatLogTime(ts.Format(time.RFC3339)); got != want {
		t.Fatalf("formatLogTime(RFC3339) = %q, want %q", got, want)
	}
	if got := formatLogTime("yesterday"); got != "yesterday" {
		t.Fatalf("formatLogTime(raw) = %q, want raw text", got)
	}
	if got := formatLogTime(" "); got != "" {
		t.Fatalf("formatLogTime(blank) = %q, want empty", got)
	}
}

func TestFormatLogEntry_IncludesFields(t *testing.T) {
	m := newTestModel(t, nil)
	line := m.formatLogEntry(logtail.Parse(`level=error msg="API Request" kind=network status=0 details=""`))
	for _, want := range []string{"ERROR", "API Request", "kind=", "network", "status="} {
		if !strings.Contains(line, want) {
			t.Fatalf("formatted line %q missing %q", line, want)
		}
	}
	if strings.Contains(line, "details=") {
		t.Fatalf("formatted line %q should skip empty fields", line)
	}

	raw := m.formatLogEntry(logtail.Parse("plain text"))
	if !strings.Contains(raw, "plain text") {
		t.Fatalf("raw line = %q, want plain text", raw)
	}
}

func TestHandleLogLines_FollowKeepsBottom(t *testing.T) {
	m := newTestModel(t, nil)
	m.width, m.height = 80, 10
	m.initLogViewport()
	m.logState.follow = true

	lines := make([]string, 50)
	for i := range lines {
		lines[i] = "level=info msg=line"
	}
	m.handleLogLines(logLinesMsg{lines: lines})
	if len(m.logState.entries) != 50 {
		t.Fatalf("entries = %d, want 50", len(m.logState.entries))
	}
	if !m.logViewport.AtBottom() {
		t.Fatalf("viewport not at bottom while following")
	}
}
