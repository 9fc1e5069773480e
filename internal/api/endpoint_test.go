package api

import (
	"strings"
	"testing"
)

func TestResolve_JoinsWithSingleSlash(t *testing.T) {
	bases := []string{"http://example.com:3000", "http://example.com:3000/", "http://example.com:3000//"}
	paths := []string{"api/matches", "/api/matches", "//api/matches"}
	want := "http://example.com:3000/api/matches"

	for _, base := range bases {
		r := NewResolver(base)
		for _, p := range paths {
			if got := r.Resolve(p); got != want {
				t.Fatalf("Resolve(%q) with base %q = %q, want %q", p, base, got, want)
			}
		}
	}
}

func TestResolve_NoDoubleSlashAfterScheme(t *testing.T) {
	r := NewResolver("https://api.example.com/prefix/")
	got := r.Resolve("/api/match/1/teams")
	if got != "https://api.example.com/prefix/api/match/1/teams" {
		t.Fatalf("Resolve = %q, want base path preserved", got)
	}
	if strings.Contains(strings.TrimPrefix(got, "https://"), "//") {
		t.Fatalf("Resolve = %q contains a double slash", got)
	}
}

func TestResolve_AbsoluteIsIdentity(t *testing.T) {
	r := NewResolver("http://127.0.0.1:3000")
	for _, abs := range []string{
		"http://other.example.com/api/matches",
		"https://other.example.com//odd//path/",
		"svc+unix://socket/path",
	} {
		if got := r.Resolve(abs); got != abs {
			t.Fatalf("Resolve(%q) = %q, want identity", abs, got)
		}
	}
}

func TestNewResolver_DefaultsAndScheme(t *testing.T) {
	if got := NewResolver("  ").Base(); got != DefaultBaseURL {
		t.Fatalf("Base() = %q, want %q", got, DefaultBaseURL)
	}
	if got := NewResolver("10.0.0.5:3000/").Base(); got != "http://10.0.0.5:3000" {
		t.Fatalf("Base() = %q, want http://10.0.0.5:3000", got)
	}
}

func TestHasScheme(t *testing.T) {
	cases := map[string]bool{
		"http://x":      true,
		"HTTPS://x":     true,
		"a1+b-c.d://x":  true,
		"/api/matches":  false,
		"api/http://x":  false,
		"://x":          false,
		"1http://x":     false,
		"api/matches":   false,
		"/redirect?to=": false,
	}
	for in, want := range cases {
		if got := hasScheme(in); got != want {
			t.Fatalf("hasScheme(%q) = %v, want %v", in, got, want)
		}
	}
}
