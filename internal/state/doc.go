// Package state provides thread-safe state shared between fblive's background
// workers and the UI.
//
// # Overview
//
// Three producers write into a single Store:
//
//	Match refresher ──UpdateMatches()──┐
//	Health poller   ──SetHealth()──────┼──> Store ──Snapshot()──> UI
//	UI actions      ──SetTracking()────┘
//
// The UI never reads the store's fields directly; it asks for a Snapshot,
// which is a copy that can be rendered without holding any lock.
//
// # Core Types
//
// Store:
//   - Guards the latest Snapshot with a sync.RWMutex
//   - Keeps the previous match list when a refresh fails
//   - Counts consecutive refresh failures
//
// Snapshot:
//   - Matches sorted by kickoff (earliest first)
//   - LastError from the most recent refresh, nil after a success
//   - Health status reported by the health poller
//   - Tracking flag set once live tracking was started
//
// # Offline Detection
//
// Snapshot.IsOffline is true when the health poller reports Offline or when
// the last refresh failed with an offline-class error (see api.IsOffline).
//
// # Copy Semantics
//
// Snapshot() clones the match slice and the error record so the caller may
// mutate the result freely.
package state
