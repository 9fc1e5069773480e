// Package app is the composition root of fblive.
//
// # Overview
//
// Run loads configuration, opens the log file, builds the shared Services and
// hands them to the dashboard:
//
//	Run()
//	 ├─> LoadConfig()       config file, .env, FBLIVE_API_URL, --api
//	 ├─> prefs.Load()       theme and filter
//	 ├─> logging.OpenFile() logfmt records for the log view
//	 ├─> NewServices()
//	 │    ├─> api.Executor  dashboard requests, raises toasts
//	 │    ├─> api.Executor  health checks only
//	 │    ├─> api.Executor  background match refresh only
//	 │    ├─> state.Store
//	 │    ├─> health.Poller ──OnChange──> Store.SetHealth
//	 │    └─> Refresher     ──ListMatches──> Store.UpdateMatches
//	 └─> ui.Run()           blocks until quit
//
// CLI commands reuse LoadConfig and NewServices without starting the
// background workers.
//
// # Refresher
//
// The refresher reloads the match list every refresh_interval (15 seconds by
// default) and whenever Refresh is called, which the dashboard does after
// every successful mutation. Pending refresh requests are coalesced. Failures
// are recorded in the store and the previous list is kept.
//
// # Error Handling
//
// Configuration, log file and wiring errors are returned from Run. Request
// failures never are: the executor logs them, the store records them and the
// dashboard shows them.
package app
