// Package apiclient is the HTTP engine behind the Hookbase API client: it
// sends authenticated JSON requests, retries transient failures with
// exponential backoff, and classifies everything else into typed errors.
//
// # Usage
//
//	c, err := apiclient.New(apiKey, "https://api.hookbase.app", 30*time.Second, 3)
//	if err != nil {
//	    return err
//	}
//
//	src, err := apiclient.Request[Source](ctx, c, http.MethodPost, "/api/sources",
//	    apiclient.WithBody(CreateSource{Name: "stripe"}),
//	    apiclient.WithIdempotencyKey(key),
//	)
//
// # Retries
//
// Status codes 429, 500, 502, 503 and 504 and transport failures (connection
// errors, per-attempt timeouts) are retried up to maxRetries times. The delay
// before retry n (zero-based) is the response's Retry-After value when
// present, used exactly; otherwise min(2^n, 10) seconds plus up to 30% random
// jitter. The request, including body and idempotency key, is rebuilt
// unchanged for each attempt.
//
// Everything else fails immediately. Cancelling the context stops both an
// in-flight call and a pending backoff.
//
// # Errors
//
// Failures are returned as *Error carrying a Kind, the HTTP status, the
// server's X-Request-Id and whatever the error body contained:
//
//	var apiErr *apiclient.Error
//	switch {
//	case errors.Is(err, apiclient.ErrValidation):
//	    apiErr, _ = apiclient.AsError(err)
//	    for field, msgs := range apiErr.FieldErrors { ... }
//	case errors.Is(err, apiclient.ErrRateLimit):
//	    // retry budget exhausted; apiErr.RetryAfter holds the server hint
//	case errors.Is(err, apiclient.ErrCanceled):
//	    // ctx was cancelled
//	}
//
//	400, 422  ErrValidation       (FieldErrors)
//	401       ErrAuthentication
//	403       ErrForbidden
//	404       ErrNotFound
//	409       ErrConflict
//	429       ErrRateLimit        (RetryAfter)
//	other     ErrServer
//	transport ErrTransport        (cause wrapped)
//	bad 2xx   ErrDeserialization  (cause wrapped)
//
// Every error built from an HTTP response also matches ErrAPI.
package apiclient
