package state

import (
	"sync"
	"time"

	"github.com/fblive/fblive/internal/api"
	"github.com/fblive/fblive/internal/health"
)

// Snapshot represents the latest data available to the UI.
type Snapshot struct {
	Matches             []api.Match
	HasMatches          bool
	LastUpdated         time.Time
	LastError           *api.Error
	ConsecutiveFailures int
	Health              health.Status
	Tracking            bool
}

// IsOffline reports whether the server looks unreachable, either from the
// health poller or from the last match refresh.
func (s Snapshot) IsOffline() bool {
	if s.Health.State == health.Offline {
		return true
	}
	return api.IsOffline(s.LastError)
}

// Store coordinates concurrent updates to the snapshot.
type Store struct {
	mu       sync.RWMutex
	snapshot Snapshot
}

// UpdateMatches replaces the match list. When err is non-nil the previous list
// is kept but the error is recorded for visibility.
func (s *Store) UpdateMatches(matches []api.Match, err *api.Error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.snapshot.LastUpdated = time.Now()
	if err != nil {
		s.snapshot.LastError = err
		s.snapshot.ConsecutiveFailures++
		return
	}

	s.snapshot.Matches = api.SortMatches(matches)
	s.snapshot.HasMatches = true
	s.snapshot.LastError = nil
	s.snapshot.ConsecutiveFailures = 0
}

// SetHealth records the latest health poller result.
func (s *Store) SetHealth(status health.Status) {
	s.mu.Lock()
	s.snapshot.Health = status
	s.mu.Unlock()
}

// SetTracking records that server-side live tracking has been started.
func (s *Store) SetTracking(active bool) {
	s.mu.Lock()
	s.snapshot.Tracking = active
	s.mu.Unlock()
}

// Snapshot returns a copy of the current snapshot.
func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snap := s.snapshot
	snap.Matches = cloneMatches(s.snapshot.Matches)
	if s.snapshot.LastError != nil {
		errCopy := *s.snapshot.LastError
		snap.LastError = &errCopy
	}
	return snap
}

func cloneMatches(items []api.Match) []api.Match {
	if len(items) == 0 {
		return nil
	}
	dup := make([]api.Match, len(items))
	copy(dup, items)
	return dup
}
