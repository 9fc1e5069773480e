// Package logtail reads the tail of fblive's own log file and parses its
// lines for display in the log view.
//
// # Reading
//
// Read returns the last maxLines lines of a file in one sequential pass. It
// keeps a ring buffer of size maxLines, so memory is bounded by the number of
// lines requested rather than by the file size:
//
//	lines, err := logtail.Read(cfg.LogFile, 400)
//
// A file that does not exist yet yields no lines and no error. A maxLines of
// zero or less also yields nothing.
//
// # Parsing
//
// The application logger writes logfmt records:
//
//	time=2025-10-08T21:01:05Z level=error prefix=fblive msg="API Request" kind=network status=0
//
// Parse decodes a line with github.com/go-logfmt/logfmt and lifts the
// well-known keys (time, level, prefix, msg) into Entry fields. Any other
// pairs land in Entry.Fields in their original order. Lines that are not
// logfmt, or that carry neither a level nor a message, come back with only
// Raw set so the view can print them unstyled.
//
// The package does not watch the file. The UI re-reads it on its own tick.
package logtail
