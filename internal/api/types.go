package api

import (
	"sort"
	"strings"
	"time"
)

const (
	matchDateLayout     = "2006-01-02"
	matchDateTimeLayout = "2006-01-02T15:04"
)

// Match mirrors a stored match returned by /api/matches.
type Match struct {
	ID       string `json:"_id"`
	EventID  string `json:"eventId"`
	HomeTeam string `json:"homeTeam"`
	AwayTeam string `json:"awayTeam"`
	Date     string `json:"date"`
	Time     string `json:"time"`
	Status   string `json:"status"`
	Watch    bool   `json:"watch"`
}

// Title returns "Home vs Away".
func (m Match) Title() string {
	return m.HomeTeam + " vs " + m.AwayTeam
}

// Kickoff parses Date and Time into a local timestamp. Date may be a plain
// day or a full RFC 3339 timestamp; the zero time is returned when neither parses.
func (m Match) Kickoff() time.Time {
	day := strings.TrimSpace(m.Date)
	if day == "" {
		return time.Time{}
	}
	if t, err := time.Parse(time.RFC3339Nano, day); err == nil {
		day = t.Format(matchDateLayout)
	} else if len(day) > len(matchDateLayout) {
		day = day[:len(matchDateLayout)]
	}
	clock := strings.TrimSpace(m.Time)
	if len(clock) >= 5 {
		if t, err := time.ParseInLocation(matchDateTimeLayout, day+"T"+clock[:5], time.Local); err == nil {
			return t
		}
	}
	if t, err := time.ParseInLocation(matchDateLayout, day, time.Local); err == nil {
		return t
	}
	return time.Time{}
}

// SortMatches orders matches by kickoff, earliest first. Matches without a
// parseable kickoff keep their relative order at the end.
func SortMatches(matches []Match) []Match {
	out := make([]Match, len(matches))
	copy(out, matches)
	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i].Kickoff(), out[j].Kickoff()
		switch {
		case a.IsZero():
			return false
		case b.IsZero():
			return true
		default:
			return a.Before(b)
		}
	})
	return out
}

// SearchRequest is the body of POST /api/match/search.
type SearchRequest struct {
	HomeTeam string `json:"homeTeam"`
	AwayTeam string `json:"awayTeam"`
	Date     string `json:"date"`
}

// Validate trims the fields and rejects incomplete searches.
func (r *SearchRequest) Validate() *Error {
	r.HomeTeam = strings.TrimSpace(r.HomeTeam)
	r.AwayTeam = strings.TrimSpace(r.AwayTeam)
	r.Date = strings.TrimSpace(r.Date)
	if r.HomeTeam == "" || r.AwayTeam == "" || r.Date == "" {
		return NewClientError("Home team, away team and date are required")
	}
	if _, err := time.Parse(matchDateLayout, r.Date); err != nil {
		return NewClientError("Date must be in YYYY-MM-DD format")
	}
	return nil
}

// TeamsUpdate is the body of PATCH /api/match/{id}/teams.
type TeamsUpdate struct {
	HomeTeam string `json:"homeTeam"`
	AwayTeam string `json:"awayTeam"`
}

// Validate trims the names and requires both.
func (u *TeamsUpdate) Validate() *Error {
	u.HomeTeam = strings.TrimSpace(u.HomeTeam)
	u.AwayTeam = strings.TrimSpace(u.AwayTeam)
	if u.HomeTeam == "" || u.AwayTeam == "" {
		return NewClientError("Both team names are required")
	}
	return nil
}

// TrackingResult is the decoded reply of POST /api/match/start.
type TrackingResult struct {
	Message string `json:"message"`
	Error   string `json:"error,omitempty"`
}

// Started reports whether the server actually began tracking matches.
func (r TrackingResult) Started() bool {
	msg := strings.TrimSpace(r.Message)
	return msg != "" && !strings.Contains(msg, "No live matches")
}
