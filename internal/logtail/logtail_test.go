package logtail

import (
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
)

func TestRead(t *testing.T) {
	tmpDir := t.TempDir()
	logPath := filepath.Join(tmpDir, "test.log")

	var content strings.Builder
	var expectedAll []string
	for i := 1; i <= 10; i++ {
		line := fmt.Sprintf("Line %d", i)
		content.WriteString(line + "\n")
		expectedAll = append(expectedAll, line)
	}

	if err := os.WriteFile(logPath, []byte(content.String()), 0644); err != nil {
		t.Fatalf("failed to create test log file: %v", err)
	}

	tests := []struct {
		name     string
		maxLines int
		expected []string
	}{
		{name: "zero returns nothing", maxLines: 0, expected: nil},
		{name: "negative returns nothing", maxLines: -1, expected: nil},
		{name: "read partial (5)", maxLines: 5, expected: expectedAll[5:]},
		{name: "read exactly all (10)", maxLines: 10, expected: expectedAll},
		{name: "read more than exists (20)", maxLines: 20, expected: expectedAll},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Read(logPath, tt.maxLines)
			if err != nil {
				t.Fatalf("Read() error = %v", err)
			}
			if !reflect.DeepEqual(got, tt.expected) {
				t.Errorf("Read() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestRead_MissingFile(t *testing.T) {
	got, err := Read(filepath.Join(t.TempDir(), "nope.log"), 10)
	if err != nil {
		t.Fatalf("Read() error = %v, want nil", err)
	}
	if got != nil {
		t.Fatalf("Read() = %v, want nil", got)
	}
}

func TestParse(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  Entry
	}{
		{
			name:  "empty line",
			input: "",
			want:  Entry{Raw: ""},
		},
		{
			name:  "plain text",
			input: "panic: something odd",
			want:  Entry{Raw: "panic: something odd"},
		},
		{
			name:  "request failure",
			input: `time=2025-10-08T21:01:05Z level=error prefix=fblive msg="API Request" message="Server is not responding. Please check if the backend is running." kind=network`,
			want: Entry{
				Raw:     `time=2025-10-08T21:01:05Z level=error prefix=fblive msg="API Request" message="Server is not responding. Please check if the backend is running." kind=network`,
				Time:    "2025-10-08T21:01:05Z",
				Level:   "error",
				Prefix:  "fblive",
				Message: "API Request",
				Fields: []Field{
					{Key: "message", Value: "Server is not responding. Please check if the backend is running."},
					{Key: "kind", Value: "network"},
				},
			},
		},
		{
			name:  "level is lowercased",
			input: `level=WARN msg=slow`,
			want:  Entry{Raw: `level=WARN msg=slow`, Level: "warn", Message: "slow"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Parse(tt.input)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Parse() = %#v, want %#v", got, tt.want)
			}
		})
	}
}

func TestParseLines(t *testing.T) {
	if got := ParseLines(nil); got != nil {
		t.Fatalf("ParseLines(nil) = %v, want nil", got)
	}
	got := ParseLines([]string{"level=info msg=started", "not logfmt \"unterminated"})
	if len(got) != 2 {
		t.Fatalf("ParseLines returned %d entries, want 2", len(got))
	}
	if !got[0].Structured() || got[0].Message != "started" {
		t.Fatalf("entry 0 = %#v, want structured started", got[0])
	}
	if got[1].Structured() {
		t.Fatalf("entry 1 = %#v, want raw", got[1])
	}
}
