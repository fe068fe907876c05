package webhook

import (
	"errors"
	"fmt"
)

// Domain errors for inbound webhook verification.
// Every error returned by a Verifier wraps ErrVerification and exactly one of
// the specific sentinels below, so callers can branch with errors.Is on either.
var (
	ErrVerification = errors.New("webhook verification failed")

	ErrInvalidSecret     = errors.New("invalid webhook secret")
	ErrMissingHeader     = errors.New("missing webhook header")
	ErrInvalidTimestamp  = errors.New("invalid webhook timestamp")
	ErrTimestampTooOld   = errors.New("webhook timestamp too old")
	ErrTimestampTooNew   = errors.New("webhook timestamp too far in the future")
	ErrNoSignatures      = errors.New("no signatures found in webhook-signature header")
	ErrSignatureMismatch = errors.New("webhook signature mismatch")
	ErrPayloadDecode     = errors.New("failed to decode webhook payload")

	// Returned by the HTTP middleware and VerifyRequest only.
	ErrReplayedWebhook = errors.New("webhook id already processed")
	ErrBodyTooLarge    = errors.New("webhook body exceeds size limit")
)

// IsVerificationError reports whether err was produced by webhook verification.
func IsVerificationError(err error) bool {
	return errors.Is(err, ErrVerification)
}

// verificationErrorf wraps kind under ErrVerification with an optional detail message.
func verificationErrorf(kind error, format string, args ...any) error {
	if format == "" {
		return fmt.Errorf("%w: %w", ErrVerification, kind)
	}
	return fmt.Errorf("%w: %w: %s", ErrVerification, kind, fmt.Sprintf(format, args...))
}
