package webhook

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/hookbase/hookbase-go/pkg/logger"
)

// DefaultMaxBodySize bounds how much of a delivery body is read.
const DefaultMaxBodySize int64 = 1 << 20

type contextKey struct{}

// WebhookIDFromContext returns the verified webhook-id stored by Middleware.
func WebhookIDFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	id, _ := ctx.Value(contextKey{}).(string)
	return id
}

// VerifyRequest reads up to maxBodySize bytes of r's body, verifies it, and
// decodes it into out when out is non-nil. It returns the raw body.
// A non-positive maxBodySize means DefaultMaxBodySize.
func (v *Verifier) VerifyRequest(r *http.Request, maxBodySize int64, out any, opts ...VerifyOption) ([]byte, error) {
	body, err := readBody(r, maxBodySize)
	if err != nil {
		return nil, err
	}
	if err := v.Verify(body, HeadersFromHTTP(r.Header), out, opts...); err != nil {
		return body, err
	}
	return body, nil
}

// Middleware rejects requests that do not carry a valid webhook signature.
// Accepted requests reach next with the body restored and the webhook id in
// the context.
func Middleware(v *Verifier, opts ...MiddlewareOption) func(http.Handler) http.Handler {
	o := &middlewareOptions{
		logger:       logger.Discard(),
		maxBodySize:  DefaultMaxBodySize,
		tolerance:    v.tolerance,
		errorHandler: defaultErrorHandler,
	}
	for _, opt := range opts {
		opt(o)
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			headers := HeadersFromHTTP(r.Header)
			id, _ := headers.Get(HeaderID)

			body, err := readBody(r, o.maxBodySize)
			if err == nil {
				err = v.Verify(body, headers, nil, Tolerance(o.tolerance))
			}
			if err == nil && o.guard != nil {
				err = claim(ctx, o.guard, id, o)
			}
			if err != nil {
				o.logger.WarnContext(ctx, "webhook rejected",
					logger.WebhookID(id),
					logger.Error(err),
				)
				o.errorHandler(w, r, err)
				return
			}

			r.Body = io.NopCloser(bytes.NewReader(body))
			r.ContentLength = int64(len(body))
			next.ServeHTTP(w, r.WithContext(context.WithValue(ctx, contextKey{}, id)))
		})
	}
}

func claim(ctx context.Context, guard ReplayGuard, id string, o *middlewareOptions) error {
	// Future-dated deliveries are accepted too, so an id must be remembered
	// for the full window on both sides of now.
	fresh, err := guard.Claim(ctx, id, 2*o.tolerance)
	if err != nil {
		return fmt.Errorf("replay guard: %w", err)
	}
	if !fresh {
		return verificationErrorf(ErrReplayedWebhook, "%s", id)
	}
	return nil
}

func readBody(r *http.Request, limit int64) ([]byte, error) {
	if limit <= 0 {
		limit = DefaultMaxBodySize
	}
	if r.Body == nil {
		return []byte{}, nil
	}
	defer func() { _ = r.Body.Close() }()

	body, err := io.ReadAll(io.LimitReader(r.Body, limit+1))
	if err != nil {
		return nil, fmt.Errorf("read webhook body: %w", err)
	}
	if int64(len(body)) > limit {
		return nil, verificationErrorf(ErrBodyTooLarge, "limit is %d bytes", limit)
	}
	return body, nil
}

// StatusCode maps a verification error to the HTTP status the middleware
// responds with.
func StatusCode(err error) int {
	switch {
	case errors.Is(err, ErrBodyTooLarge):
		return http.StatusRequestEntityTooLarge
	case errors.Is(err, ErrReplayedWebhook):
		return http.StatusConflict
	case errors.Is(err, ErrMissingHeader),
		errors.Is(err, ErrInvalidTimestamp),
		errors.Is(err, ErrNoSignatures),
		errors.Is(err, ErrPayloadDecode):
		return http.StatusBadRequest
	case errors.Is(err, ErrVerification):
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}

func defaultErrorHandler(w http.ResponseWriter, _ *http.Request, err error) {
	status := StatusCode(err)
	http.Error(w, http.StatusText(status), status)
}
