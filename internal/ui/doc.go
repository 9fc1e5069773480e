// Package ui provides the terminal dashboard for fblive.
//
// # Architecture Overview
//
// The UI is a Bubble Tea program. Model holds all view state and is updated
// only from Update; API calls run as tea.Cmd functions and report back with
// result messages. Background workers (health poller and match refresher)
// write to state.Store, and the model copies a snapshot on every UI tick.
//
// # Package Structure
//
//   - app.go: Model, message routing, key dispatch and the Run function
//   - actions.go: API commands and their result handlers
//   - matches.go: match filters, selection and the match list
//   - status.go: header, command bar, server status and tracking panels
//   - forms.go: search form, team editor and delete confirmation dialogs
//   - notify.go: error notifier and auto-dismissing toasts
//   - logs.go: log view backed by logtail
//   - theme.go, keys.go, layout.go: styling, key bindings and sizing
//
// # Views
//
//   - Matches View: match list with filters, server status and live tracking
//   - Logs View: structured tail of the fblive log file
//
// # Key Bindings
//
//   - n or /: Search for a match
//   - e: Edit team names of the selected match
//   - w: Toggle watch on the selected match
//   - d: Delete the selected match (asks for confirmation)
//   - s: Start live tracking
//   - f: Cycle match filter
//   - r: Refresh matches and check server health
//   - m / l / Tab: Switch views
//   - Space: Toggle log follow (logs view)
//   - T: Cycle theme
//   - x: Dismiss notification
//   - h or ?: Help
//   - q or Ctrl+C: Exit
//
// # Usage Example
//
//	err := ui.Run(ui.Options{
//		Context:   ctx,
//		Client:    client,
//		Executor:  exec,
//		Store:     store,
//		Health:    poller,
//		Refresher: refresher,
//		Notifier:  notifier,
//		LogPath:   cfg.LogFile,
//	})
package ui
