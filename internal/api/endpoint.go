package api

import "strings"

// DefaultBaseURL is used when no API address is configured.
const DefaultBaseURL = "http://127.0.0.1:3000"

// Resolver turns relative API paths into absolute request URLs.
type Resolver struct {
	base string
}

// NewResolver builds a Resolver for the given base address. Trailing slashes
// are stripped; an empty base falls back to DefaultBaseURL.
func NewResolver(base string) Resolver {
	trimmed := strings.TrimSpace(base)
	if trimmed == "" {
		trimmed = DefaultBaseURL
	}
	if !hasScheme(trimmed) {
		trimmed = "http://" + trimmed
	}
	return Resolver{base: strings.TrimRight(trimmed, "/")}
}

// Base returns the normalized base address.
func (r Resolver) Base() string {
	return r.base
}

// Resolve returns path unchanged when it is already fully qualified, otherwise
// it joins base and path with exactly one slash.
func (r Resolver) Resolve(path string) string {
	if hasScheme(path) {
		return path
	}
	return r.base + "/" + strings.TrimLeft(path, "/")
}

// hasScheme reports whether value starts with an RFC 3986 scheme followed by "://".
func hasScheme(value string) bool {
	idx := strings.Index(value, "://")
	if idx <= 0 {
		return false
	}
	for i, c := range value[:idx] {
		switch {
		case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z':
		case i > 0 && (c >= '0' && c <= '9' || c == '+' || c == '-' || c == '.'):
		default:
			return false
		}
	}
	return true
}
