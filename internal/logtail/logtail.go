package logtail

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/go-logfmt/logfmt"
)

// Read returns at most maxLines from the end of the file at path. A missing
// file yields no lines and no error.
func Read(path string, maxLines int) ([]string, error) {
	if maxLines <= 0 {
		return nil, nil
	}
	file, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("open log: %w", err)
	}
	defer file.Close()

	ring := make([]string, maxLines)
	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	count := 0
	idx := 0
	for scanner.Scan() {
		ring[idx] = scanner.Text()
		idx = (idx + 1) % maxLines
		if count < maxLines {
			count++
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read log: %w", err)
	}

	lines := make([]string, count)
	if count == maxLines {
		for i := 0; i < count; i++ {
			lines[i] = ring[(idx+i)%maxLines]
		}
	} else {
		copy(lines, ring[:count])
	}
	return lines, nil
}

// Field is a key/value pair from a logfmt record that is not one of the
// well-known keys.
type Field struct {
	Key   string
	Value string
}

// Entry is one parsed log line.
type Entry struct {
	Raw     string
	Time    string
	Level   string
	Prefix  string
	Message string
	Fields  []Field
}

// Structured reports whether the line parsed as logfmt with at least a level
// or a message.
func (e Entry) Structured() bool {
	return e.Level != "" || e.Message != ""
}

// Parse decodes a logfmt line as written by the application logger. Lines
// that are not valid logfmt come back with only Raw set.
func Parse(line string) Entry {
	entry := Entry{Raw: line}
	if strings.TrimSpace(line) == "" {
		return entry
	}

	dec := logfmt.NewDecoder(strings.NewReader(line))
	var parsed Entry
	for dec.ScanRecord() {
		for dec.ScanKeyval() {
			key := string(dec.Key())
			val := string(dec.Value())
			switch key {
			case "time", "ts":
				parsed.Time = val
			case "level", "lvl":
				parsed.Level = strings.ToLower(val)
			case "prefix":
				parsed.Prefix = val
			case "msg":
				parsed.Message = val
			default:
				parsed.Fields = append(parsed.Fields, Field{Key: key, Value: val})
			}
		}
	}
	if dec.Err() != nil {
		return entry
	}
	parsed.Raw = line
	if !parsed.Structured() {
		return entry
	}
	return parsed
}

// ParseLines parses every line in order.
func ParseLines(lines []string) []Entry {
	if len(lines) == 0 {
		return nil
	}
	out := make([]Entry, len(lines))
	for i, line := range lines {
		out[i] = Parse(line)
	}
	return out
}
