// Package api provides the HTTP client for the match tracking server.
//
// # Overview
//
// The package is built in layers:
//
//   - endpoint.go: Resolver joins a configured base address and relative paths
//   - errors.go: the failure taxonomy (network, server, client, unknown) and Classify
//   - executor.go: Executor performs one call, classifies failures and tracks state
//   - client.go: typed match operations on top of an Executor
//   - types.go: match payloads, validation and ordering helpers
//
// # Failure Classification
//
// Raw failures are tagged where they are produced rather than inferred later:
//
//   - TransportFailure: the request never completed (refused, DNS, timeout, cancel)
//   - ResponseFailure: a response arrived with a non-2xx status
//   - DecodeFailure: a 2xx body was not valid JSON
//
// Classify turns any value into an *Error. KindNetwork is reserved for
// TransportFailure; an error response from a reachable server is always
// KindServer. KindClient is only produced by input validation before a request
// is sent.
//
// # Executor State
//
// Every Execute call raises the in-flight count and clears the stored error
// before sending, and lowers the count on every exit path. A failure is
// classified once, logged with message, kind, status and details under the
// executor's label, stored as the current error and returned in the Outcome.
// Hooks.OnSuccess and Hooks.OnError are optional; Hooks.Notify forwards the
// failure to the notifier set with WithNotifier.
//
// Callers needing cancellation pass their own context. The executor never
// retries.
//
// # Endpoints
//
//   - GET /api/matches
//   - POST /api/match/search
//   - POST /api/match/start
//   - PATCH /api/match/{id}/toggle-watch
//   - PATCH /api/match/{id}/teams
//   - DELETE /api/match/{id}
//
// Failed responses are expected to carry {"error": "..."}; that text becomes
// the error message, otherwise "HTTP {status}: {statusText}" is used.
package api
