// Package httputil provides the JSON-over-HTTP client used to reach remote
// annotation services.
//
// # Overview
//
//   - [Client]: JSON GET/POST against a base URL with retries and hooks
//   - [Retry]: automatic retry with exponential backoff
//
// # Retry
//
// [Retry] re-runs an operation only for errors wrapped in [RetryableError].
// [Client] wraps network failures, 429 and 5xx responses this way, honoring
// Retry-After; other 4xx responses fail immediately:
//
//	err := httputil.Retry(ctx, 3, time.Second, func() error {
//	    return client.GetJSON(ctx, "/health", &health)
//	})
//
// # Observability
//
// Every request reports to [observability.HTTP] so callers can attach
// metrics without this package depending on a metrics backend.
//
// # Configuration
//
// Defaults are suitable for a model server on the same host:
//
//   - Request timeout: 60 seconds (annotation of long texts is slow)
//   - Max retries: 3
//   - Base backoff: 1 second, capped at 30 seconds
package httputil
