package ui

import "testing"

func TestThemeNames(t *testing.T) {
	names := ThemeNames()
	if len(names) != 3 {
		t.Fatalf("ThemeNames() returned %d names, want 3", len(names))
	}
	if names[0] != "Pitch" || names[1] != "Night" || names[2] != "Slate" {
		t.Fatalf("ThemeNames() = %v, want [Pitch Night Slate]", names)
	}
}

func TestNextTheme(t *testing.T) {
	if got := NextTheme("Pitch"); got != "Night" {
		t.Fatalf("NextTheme(Pitch) = %q, want Night", got)
	}
	if got := NextTheme("Slate"); got != "Pitch" {
		t.Fatalf("NextTheme(Slate) = %q, want Pitch", got)
	}
	if got := NextTheme("Unknown"); got != "Pitch" {
		t.Fatalf("NextTheme(Unknown) = %q, want Pitch", got)
	}
}

func TestGetTheme(t *testing.T) {
	for _, name := range ThemeNames() {
		if got := GetTheme(name).Name; got != name {
			t.Fatalf("GetTheme(%s).Name = %q, want %q", name, got, name)
		}
	}
	if got := GetTheme("Unknown").Name; got != "Pitch" {
		t.Fatalf("GetTheme(Unknown).Name = %q, want Pitch (fallback)", got)
	}
}

func TestStatusColor(t *testing.T) {
	th := GetTheme("Slate")
	styles := th.Styles()

	if got := styles.StatusColor("  Ended "); got != th.StatusColors["ended"] {
		t.Fatalf("StatusColor(ended) = %q, want %q", got, th.StatusColors["ended"])
	}
	if got := styles.StatusColor("postponed"); got != th.Muted {
		t.Fatalf("StatusColor(postponed) = %q, want muted %q", got, th.Muted)
	}
}
