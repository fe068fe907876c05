package apiclient

import (
	"context"
	"log/slog"
	"time"
)

// AttemptInfo describes one finished attempt. It is passed to the hook set
// with WithOnAttempt.
type AttemptInfo struct {
	Method     string
	Path       string
	Attempt    int // zero-based
	StatusCode int // zero when the transport failed
	RequestID  string
	Duration   time.Duration
	Err        error
	// Delay is the wait before the next attempt; meaningful only when WillRetry.
	Delay     time.Duration
	WillRetry bool
}

// AttemptHook observes attempts, e.g. for metrics. It must not block.
type AttemptHook func(AttemptInfo)

// SleepFunc waits for d or until ctx is done, returning ctx.Err() in the latter case.
type SleepFunc func(ctx context.Context, d time.Duration) error

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the default pooled http.Client. Useful for proxies,
// custom transports and tests.
func WithHTTPClient(doer HTTPDoer) Option {
	return func(c *Client) {
		if doer != nil {
			c.doer = doer
		}
	}
}

// WithUserAgent overrides DefaultUserAgent. An empty ua is ignored.
func WithUserAgent(ua string) Option {
	return func(c *Client) {
		if ua != "" {
			c.userAgent = ua
		}
	}
}

// WithLogger enables retry and failure logging.
func WithLogger(l *slog.Logger) Option {
	return func(c *Client) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithBackoff replaces DefaultBackoff.
func WithBackoff(b Backoff) Option {
	return func(c *Client) {
		if b != nil {
			c.backoff = b
		}
	}
}

// WithSleep replaces the context-aware timer used between attempts.
func WithSleep(fn SleepFunc) Option {
	return func(c *Client) {
		if fn != nil {
			c.sleep = fn
		}
	}
}

// WithOnAttempt registers hook to run after each finished attempt. Attempts
// aborted by caller cancellation are not reported.
func WithOnAttempt(hook AttemptHook) Option {
	return func(c *Client) {
		c.onAttempt = hook
	}
}

// RequestOption configures a single request.
type RequestOption func(*requestOptions)

type requestOptions struct {
	body           any
	query          map[string]string
	idempotencyKey string
	headers        map[string]string
}

// WithBody JSON-encodes v as the request body. Field names come from the
// value's json tags, which the API expects in camelCase with omitempty.
func WithBody(v any) RequestOption {
	return func(o *requestOptions) {
		o.body = v
	}
}

// WithQuery merges params into the query string. Empty values are dropped.
func WithQuery(params map[string]string) RequestOption {
	return func(o *requestOptions) {
		if o.query == nil {
			o.query = make(map[string]string, len(params))
		}
		for k, v := range params {
			o.query[k] = v
		}
	}
}

// WithQueryParam sets a single query parameter.
func WithQueryParam(key, value string) RequestOption {
	return WithQuery(map[string]string{key: value})
}

// WithIdempotencyKey sends key in the Idempotency-Key header on every attempt.
func WithIdempotencyKey(key string) RequestOption {
	return func(o *requestOptions) {
		o.idempotencyKey = key
	}
}

// WithHeader adds a request header. Empty keys or values are ignored.
func WithHeader(key, value string) RequestOption {
	return func(o *requestOptions) {
		if key == "" || value == "" {
			return
		}
		if o.headers == nil {
			o.headers = make(map[string]string)
		}
		o.headers[key] = value
	}
}
