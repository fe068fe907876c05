package apiclient

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// Kind classifies a failed request.
type Kind string

const (
	KindValidation      Kind = "validation"
	KindAuthentication  Kind = "authentication"
	KindForbidden       Kind = "forbidden"
	KindNotFound        Kind = "not_found"
	KindConflict        Kind = "conflict"
	KindRateLimit       Kind = "rate_limit"
	KindServer          Kind = "server"
	KindTransport       Kind = "transport"
	KindDeserialization Kind = "deserialization"
)

// Sentinels matching each Kind, for use with errors.Is.
// ErrAPI matches every error produced from a non-2xx response.
var (
	ErrAPI             = errors.New("hookbase api error")
	ErrValidation      = errors.New("hookbase: validation failed")
	ErrAuthentication  = errors.New("hookbase: authentication failed")
	ErrForbidden       = errors.New("hookbase: forbidden")
	ErrNotFound        = errors.New("hookbase: not found")
	ErrConflict        = errors.New("hookbase: conflict")
	ErrRateLimit       = errors.New("hookbase: rate limit exceeded")
	ErrServer          = errors.New("hookbase: server error")
	ErrTransport       = errors.New("hookbase: request failed")
	ErrDeserialization = errors.New("hookbase: failed to deserialize response")

	ErrInvalidConfiguration = errors.New("hookbase: invalid client configuration")
	ErrInvalidRequest       = errors.New("hookbase: invalid request")
	ErrCanceled             = errors.New("hookbase: request canceled")
)

var kindSentinels = map[Kind]error{
	KindValidation:      ErrValidation,
	KindAuthentication:  ErrAuthentication,
	KindForbidden:       ErrForbidden,
	KindNotFound:        ErrNotFound,
	KindConflict:        ErrConflict,
	KindRateLimit:       ErrRateLimit,
	KindServer:          ErrServer,
	KindTransport:       ErrTransport,
	KindDeserialization: ErrDeserialization,
}

// Error is returned by Client for every classified failure.
type Error struct {
	Kind       Kind
	StatusCode int // zero for transport failures
	Message    string
	RequestID  string

	// Details holds every top-level field of the error body, stringified.
	Details map[string]string
	// FieldErrors is populated for validation failures when the body carries
	// an "errors" object of field name to messages.
	FieldErrors map[string][]string
	// RetryAfter is the server's hint on rate-limit responses; zero when absent.
	RetryAfter time.Duration

	Err error
}

func (e *Error) Error() string {
	var b strings.Builder
	b.WriteString("hookbase: ")
	b.WriteString(e.Message)
	if e.StatusCode != 0 {
		fmt.Fprintf(&b, " (status %d", e.StatusCode)
		if e.RequestID != "" {
			fmt.Fprintf(&b, ", request id %s", e.RequestID)
		}
		b.WriteString(")")
	} else if e.RequestID != "" {
		fmt.Fprintf(&b, " (request id %s)", e.RequestID)
	}
	return b.String()
}

// Unwrap exposes the Kind sentinel and the underlying cause.
func (e *Error) Unwrap() []error {
	errs := make([]error, 0, 2)
	if s, ok := kindSentinels[e.Kind]; ok {
		errs = append(errs, s)
	}
	if e.Err != nil {
		errs = append(errs, e.Err)
	}
	return errs
}

// Is reports ErrAPI for errors built from an HTTP error response.
func (e *Error) Is(target error) bool {
	return target == ErrAPI && e.isAPIError()
}

func (e *Error) isAPIError() bool {
	return e.Kind != KindTransport && e.Kind != KindDeserialization
}

// AsError unwraps err into an *Error.
func AsError(err error) (*Error, bool) {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr, true
	}
	return nil, false
}

// KindOf returns the Kind of err, or "" when err is not an *Error.
func KindOf(err error) Kind {
	if apiErr, ok := AsError(err); ok {
		return apiErr.Kind
	}
	return ""
}

// kindForStatus maps a non-2xx status to its Kind.
func kindForStatus(status int) Kind {
	switch status {
	case 400, 422:
		return KindValidation
	case 401:
		return KindAuthentication
	case 403:
		return KindForbidden
	case 404:
		return KindNotFound
	case 409:
		return KindConflict
	case 429:
		return KindRateLimit
	default:
		return KindServer
	}
}
