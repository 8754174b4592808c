// Package httputil holds the HTTP plumbing used by remote dataset sources.
//
//   - [Retry]: exponential backoff for transient failures
//   - [Limiter]: per-host request rate limiting
//   - [Client]: JSON GET combining both, with typed errors
//
// Only failures wrapped in [RetryableError] are retried. [Client] wraps
// network errors, 429 and 5xx responses that way; other 4xx responses fail
// immediately with a pkg/errors code the CLI can show to users.
package httputil
