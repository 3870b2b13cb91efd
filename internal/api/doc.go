// Package api serves BingeBoard over HTTP for `bingeboard serve`.
//
// The chi router mounts everything under /api plus /healthz and /metrics.
// Requests get an id (echoed in X-Request-ID and attached to log lines), are
// counted by route pattern in Prometheus, and pass a bearer-token check when
// paths.api_token is set. Assistant routes are rate limited per client IP
// because each call costs a model request.
//
// # Error Mapping
//
// Handlers translate domain results rather than errors: a missing list is
// 404, validation failures are 400 with field messages, list import failures
// are 422 carrying the importer's message, and storage errors are 500.
// Catalog lookups never fail; upstream problems surface as empty payloads.
//
// # Lifecycle
//
// Run acquires an flock on <data_dir>/bingeboard.lock so a single server owns
// the store, listens on paths.api_bind and shuts down gracefully when its
// context is cancelled.
package api
