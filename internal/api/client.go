package api

import (
	"context"
	"net/http"
	"net/url"
	"strings"
)

// MatchService defines the match API used by the UI and commands.
// It is implemented by *Client and can be replaced in tests.
type MatchService interface {
	ListMatches(ctx context.Context) ([]Match, error)
	SearchMatch(ctx context.Context, req SearchRequest) (Match, error)
	StartTracking(ctx context.Context) (TrackingResult, error)
	ToggleWatch(ctx context.Context, id string) error
	UpdateTeams(ctx context.Context, id string, update TeamsUpdate) error
	DeleteMatch(ctx context.Context, id string) error
}

// Ensure Client implements MatchService at compile time.
var _ MatchService = (*Client)(nil)

// Client talks to the match tracking API through an Executor.
type Client struct {
	exec *Executor
}

// NewClient wraps exec.
func NewClient(exec *Executor) *Client {
	return &Client{exec: exec}
}

// Executor exposes the underlying executor for in-flight and error state.
func (c *Client) Executor() *Executor {
	return c.exec
}

// ListMatches retrieves every stored match.
func (c *Client) ListMatches(ctx context.Context) ([]Match, error) {
	var matches []Match
	out := c.exec.Execute(ctx, Request{Method: http.MethodGet, Path: "/api/matches"}, nil)
	if err := out.Decode(&matches); err != nil {
		return nil, err
	}
	return matches, nil
}

// SearchMatch asks the server to look up and store a match.
func (c *Client) SearchMatch(ctx context.Context, req SearchRequest) (Match, error) {
	if err := req.Validate(); err != nil {
		return Match{}, err
	}
	var match Match
	out := c.exec.Execute(ctx, Request{Method: http.MethodPost, Path: "/api/match/search", Body: req}, &Hooks{Notify: true})
	if err := out.Decode(&match); err != nil {
		return Match{}, err
	}
	return match, nil
}

// StartTracking begins server-side live tracking of watched matches.
func (c *Client) StartTracking(ctx context.Context) (TrackingResult, error) {
	var result TrackingResult
	out := c.exec.Execute(ctx, Request{Method: http.MethodPost, Path: "/api/match/start"}, &Hooks{Notify: true})
	if err := out.Decode(&result); err != nil {
		return TrackingResult{}, err
	}
	return result, nil
}

// ToggleWatch flips the watch flag of a match.
func (c *Client) ToggleWatch(ctx context.Context, id string) error {
	path, err := matchPath(id, "toggle-watch")
	if err != nil {
		return err
	}
	return c.exec.Execute(ctx, Request{Method: http.MethodPatch, Path: path}, &Hooks{Notify: true}).Decode(nil)
}

// UpdateTeams renames the teams of a match.
func (c *Client) UpdateTeams(ctx context.Context, id string, update TeamsUpdate) error {
	if err := update.Validate(); err != nil {
		return err
	}
	path, err := matchPath(id, "teams")
	if err != nil {
		return err
	}
	return c.exec.Execute(ctx, Request{Method: http.MethodPatch, Path: path, Body: update}, nil).Decode(nil)
}

// DeleteMatch removes a match.
func (c *Client) DeleteMatch(ctx context.Context, id string) error {
	path, err := matchPath(id, "")
	if err != nil {
		return err
	}
	return c.exec.Execute(ctx, Request{Method: http.MethodDelete, Path: path}, &Hooks{Notify: true}).Decode(nil)
}

func matchPath(id, action string) (string, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return "", NewClientError("match id required")
	}
	path := "/api/match/" + url.PathEscape(id)
	if action != "" {
		path += "/" + action
	}
	return path, nil
}
