package webhook

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"time"
)

// Verifier authenticates inbound webhook deliveries signed with a shared secret.
//
// A Verifier is immutable after NewVerifier returns; any number of goroutines
// may call its methods concurrently.
type Verifier struct {
	key           []byte
	tolerance     time.Duration
	now           func() time.Time
	allowUntagged bool
}

// NewVerifier decodes secret (optionally prefixed with "whsec_") and returns
// a Verifier bound to the resulting key.
func NewVerifier(secret string, opts ...VerifierOption) (*Verifier, error) {
	key, err := decodeSecret(secret)
	if err != nil {
		return nil, err
	}

	v := &Verifier{
		key:       key,
		tolerance: DefaultTolerance,
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(v)
	}
	return v, nil
}

// Verify authenticates payload against headers and, when out is non-nil,
// decodes the JSON payload into it. Field names match case-insensitively.
//
// payload must be the raw request body; re-encoded JSON will not verify.
func (v *Verifier) Verify(payload []byte, headers Headers, out any, opts ...VerifyOption) error {
	if err := v.verify(payload, headers, opts...); err != nil {
		return err
	}
	if out == nil {
		return nil
	}
	return decodePayload(payload, out)
}

// VerifySignature runs the full verification pipeline and reports only
// whether it succeeded. The payload must decode as a JSON object.
func (v *Verifier) VerifySignature(payload []byte, headers Headers, opts ...VerifyOption) bool {
	var discard map[string]any
	return v.Verify(payload, headers, &discard, opts...) == nil
}

// Verify is the generic form of (*Verifier).Verify.
func Verify[T any](v *Verifier, payload []byte, headers Headers, opts ...VerifyOption) (T, error) {
	var out T
	if err := v.Verify(payload, headers, &out, opts...); err != nil {
		var zero T
		return zero, err
	}
	return out, nil
}

func (v *Verifier) verify(payload []byte, headers Headers, opts ...VerifyOption) error {
	o := verifyOptions{tolerance: v.tolerance}
	for _, opt := range opts {
		opt(&o)
	}

	id, err := requireHeader(headers, HeaderID)
	if err != nil {
		return err
	}
	rawTimestamp, err := requireHeader(headers, HeaderTimestamp)
	if err != nil {
		return err
	}
	signatureHeader, err := requireHeader(headers, HeaderSignature)
	if err != nil {
		return err
	}

	timestamp, err := strconv.ParseInt(rawTimestamp, 10, 64)
	if err != nil {
		return verificationErrorf(ErrInvalidTimestamp, "%q is not a unix timestamp", rawTimestamp)
	}
	if err := v.checkTimestamp(timestamp, o.tolerance); err != nil {
		return err
	}

	candidates := parseSignatures(signatureHeader, v.allowUntagged)
	if len(candidates) == 0 {
		return verificationErrorf(ErrNoSignatures, "")
	}

	computed := computeSignature(v.key, id, timestamp, payload)
	if !matchAny(computed, candidates) {
		return verificationErrorf(ErrSignatureMismatch, "")
	}
	return nil
}

// checkTimestamp rejects deliveries older than tolerance as well as ones
// dated more than tolerance into the future. The window is compared in whole
// seconds so timestamps far outside the time.Duration range cannot wrap.
func (v *Verifier) checkTimestamp(timestamp int64, tolerance time.Duration) error {
	now := v.now().UTC()
	nowSec := now.Unix()
	tolSec := int64(tolerance / time.Second)

	if timestamp < nowSec-tolSec {
		return verificationErrorf(ErrTimestampTooOld,
			"sent %s, now %s, tolerance %s",
			formatUnix(timestamp), now.Format(time.RFC3339), tolerance)
	}
	if timestamp > nowSec+tolSec {
		return verificationErrorf(ErrTimestampTooNew,
			"sent %s, now %s, tolerance %s",
			formatUnix(timestamp), now.Format(time.RFC3339), tolerance)
	}
	return nil
}

// formatUnix renders timestamp as RFC 3339 when it falls within years 0-9999
// and as raw seconds otherwise.
func formatUnix(timestamp int64) string {
	if timestamp < minFormattableUnix || timestamp > maxFormattableUnix {
		return strconv.FormatInt(timestamp, 10)
	}
	return time.Unix(timestamp, 0).UTC().Format(time.RFC3339)
}

const (
	minFormattableUnix int64 = -62167219200 // 0000-01-01T00:00:00Z
	maxFormattableUnix int64 = 253402300799 // 9999-12-31T23:59:59Z
)

func requireHeader(headers Headers, name string) (string, error) {
	value, ok := headers.Get(name)
	if !ok || value == "" {
		return "", verificationErrorf(ErrMissingHeader, "%s", name)
	}
	return value, nil
}

var jsonNull = []byte("null")

func decodePayload(payload []byte, out any) error {
	if bytes.Equal(bytes.TrimSpace(payload), jsonNull) {
		return verificationErrorf(ErrPayloadDecode, "payload is null")
	}
	if err := json.Unmarshal(payload, out); err != nil {
		return fmt.Errorf("%w: %w: %w", ErrVerification, ErrPayloadDecode, err)
	}
	return nil
}
