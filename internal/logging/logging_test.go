package logging

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/fblive/fblive/internal/logtail"
)

func TestNew_WritesLogfmt(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&buf, "debug")
	logger.Error("API Request", "kind", "network", "status", 0)

	out := buf.String()
	if !strings.Contains(out, "kind=network") {
		t.Fatalf("log output = %q, want kind=network", out)
	}
	if !strings.Contains(out, "API Request") {
		t.Fatalf("log output = %q, want message", out)
	}
}

func TestNew_UnknownLevelFallsBackToInfo(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&buf, "chatty")
	logger.Debug("hidden")
	logger.Info("shown")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Fatalf("debug record written at info level: %q", out)
	}
	if !strings.Contains(out, "shown") {
		t.Fatalf("info record missing: %q", out)
	}
}

func TestOpenFile_CreatesDirectories(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dir", "fblive.log")
	file, err := OpenFile(path)
	if err != nil {
		t.Fatalf("OpenFile returned error: %v", err)
	}
	t.Cleanup(func() { _ = file.Close() })

	if _, err := os.Stat(path); err != nil {
		t.Fatalf("Stat(%q) returned error: %v", path, err)
	}
}

func TestOpenFile_EmptyPathErrors(t *testing.T) {
	if _, err := OpenFile("  "); err == nil {
		t.Fatalf("OpenFile returned nil error, want error")
	}
}

func TestNew_RecordsParseForLogView(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&buf, "info")
	logger.Error("API Request", "kind", "server", "status", 409, "message", "Duplicate match")

	entry := logtail.Parse(strings.TrimSpace(buf.String()))
	if entry.Level != "error" || entry.Message != "API Request" || entry.Prefix != "fblive" {
		t.Fatalf("entry = %#v, want error/API Request/fblive", entry)
	}
	if _, err := time.Parse(time.RFC3339, entry.Time); err != nil {
		t.Fatalf("entry time %q is not RFC 3339: %v", entry.Time, err)
	}
	want := []logtail.Field{{Key: "kind", Value: "server"}, {Key: "status", Value: "409"}, {Key: "message", Value: "Duplicate match"}}
	if len(entry.Fields) != len(want) {
		t.Fatalf("fields = %#v, want %#v", entry.Fields, want)
	}
	for i := range want {
		if entry.Fields[i] != want[i] {
			t.Fatalf("field %d = %#v, want %#v", i, entry.Fields[i], want[i])
		}
	}
}
