package webhook

import (
	"log/slog"
	"net/http"
	"time"
)

// DefaultTolerance is the maximum accepted clock distance between a
// delivery's timestamp and now.
const DefaultTolerance = 5 * time.Minute

// VerifierOption configures a Verifier at construction time.
type VerifierOption func(*Verifier)

// WithTolerance overrides the default replay window. Non-positive values are ignored.
func WithTolerance(d time.Duration) VerifierOption {
	return func(v *Verifier) {
		if d > 0 {
			v.tolerance = d
		}
	}
}

// WithClock replaces time.Now, mostly for tests.
func WithClock(now func() time.Time) VerifierOption {
	return func(v *Verifier) {
		if now != nil {
			v.now = now
		}
	}
}

// WithUnprefixedSignatures accepts signature tokens without a "v1," tag as
// raw signatures. Only enable it for producers that do not tag signatures.
func WithUnprefixedSignatures() VerifierOption {
	return func(v *Verifier) {
		v.allowUntagged = true
	}
}

// VerifyOption adjusts a single Verify call.
type VerifyOption func(*verifyOptions)

type verifyOptions struct {
	tolerance time.Duration
}

// Tolerance overrides the verifier's tolerance for one call.
func Tolerance(d time.Duration) VerifyOption {
	return func(o *verifyOptions) {
		if d > 0 {
			o.tolerance = d
		}
	}
}

// ErrorHandler writes the HTTP response for a rejected delivery.
type ErrorHandler func(w http.ResponseWriter, r *http.Request, err error)

type middlewareOptions struct {
	logger       *slog.Logger
	guard        ReplayGuard
	maxBodySize  int64
	tolerance    time.Duration
	errorHandler ErrorHandler
}

// MiddlewareOption configures Middleware.
type MiddlewareOption func(*middlewareOptions)

// WithLogger sets the logger used to report rejected deliveries.
func WithLogger(l *slog.Logger) MiddlewareOption {
	return func(o *middlewareOptions) {
		if l != nil {
			o.logger = l
		}
	}
}

// WithReplayGuard rejects deliveries whose webhook-id was already accepted
// within the tolerance window.
func WithReplayGuard(g ReplayGuard) MiddlewareOption {
	return func(o *middlewareOptions) {
		o.guard = g
	}
}

// WithMaxBodySize limits how many body bytes are read. Default is 1 MiB.
func WithMaxBodySize(n int64) MiddlewareOption {
	return func(o *middlewareOptions) {
		if n > 0 {
			o.maxBodySize = n
		}
	}
}

// WithMiddlewareTolerance overrides the verifier tolerance for requests
// passing through the middleware.
func WithMiddlewareTolerance(d time.Duration) MiddlewareOption {
	return func(o *middlewareOptions) {
		if d > 0 {
			o.tolerance = d
		}
	}
}

// WithErrorHandler replaces the default plain-text error responses.
func WithErrorHandler(h ErrorHandler) MiddlewareOption {
	return func(o *middlewareOptions) {
		if h != nil {
			o.errorHandler = h
		}
	}
}
