package webhook

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// SignatureVersion is the only scheme this package produces and accepts.
const SignatureVersion = "v1"

const secretPrefix = "whsec_"

var versionTagPattern = regexp.MustCompile(`^v[0-9]+[a-z]*$`)

// decodeSecret strips the whsec_ prefix and base64-decodes the remainder.
func decodeSecret(secret string) ([]byte, error) {
	if strings.TrimSpace(secret) == "" {
		return nil, verificationErrorf(ErrInvalidSecret, "secret is required")
	}

	encoded := strings.TrimPrefix(secret, secretPrefix)
	key, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return nil, verificationErrorf(ErrInvalidSecret, "secret must be base64 encoded: %v", err)
	}
	if len(key) == 0 {
		return nil, verificationErrorf(ErrInvalidSecret, "secret decodes to an empty key")
	}
	return key, nil
}

// signedContent builds "{id}.{timestamp}.{payload}" with the payload untouched.
func signedContent(id string, timestamp int64, payload []byte) []byte {
	ts := strconv.FormatInt(timestamp, 10)
	buf := make([]byte, 0, len(id)+len(ts)+len(payload)+2)
	buf = append(buf, id...)
	buf = append(buf, '.')
	buf = append(buf, ts...)
	buf = append(buf, '.')
	buf = append(buf, payload...)
	return buf
}

func computeSignature(key []byte, id string, timestamp int64, payload []byte) string {
	h := hmac.New(sha256.New, key)
	h.Write(signedContent(id, timestamp, payload))
	return base64.StdEncoding.EncodeToString(h.Sum(nil))
}

// parseSignatures extracts candidate signatures from a webhook-signature header.
//
// Tokens are separated by whitespace or commas. A version tag such as "v1"
// applies to the token that follows it; only v1-tagged signatures are kept
// unless allowUntagged is set, in which case bare tokens count as raw
// signatures too. Duplicates are dropped.
func parseSignatures(header string, allowUntagged bool) []string {
	fields := strings.FieldsFunc(header, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t'
	})

	seen := make(map[string]struct{}, len(fields))
	out := make([]string, 0, len(fields))
	add := func(sig string) {
		if _, ok := seen[sig]; ok {
			return
		}
		seen[sig] = struct{}{}
		out = append(out, sig)
	}

	for i := 0; i < len(fields); i++ {
		field := fields[i]
		if versionTagPattern.MatchString(field) {
			if i+1 >= len(fields) {
				break
			}
			i++
			if field == SignatureVersion {
				add(fields[i])
			}
			continue
		}
		if allowUntagged {
			add(field)
		}
	}
	return out
}

// matchAny compares computed against every candidate in constant time per
// candidate, without stopping at the first mismatch.
func matchAny(computed string, candidates []string) bool {
	expected := []byte(computed)
	matched := false
	for _, c := range candidates {
		if hmac.Equal(expected, []byte(c)) {
			matched = true
		}
	}
	return matched
}

// Sign returns the "v1,<signature>" value for a delivery with the given id,
// timestamp and raw payload.
func (v *Verifier) Sign(id string, ts time.Time, payload []byte) string {
	return SignatureVersion + "," + computeSignature(v.key, id, ts.Unix(), payload)
}

// SignatureHeaders returns the full header set a producer attaches to a
// delivery: webhook-id, webhook-timestamp and webhook-signature.
func (v *Verifier) SignatureHeaders(id string, ts time.Time, payload []byte) Headers {
	return signatureHeaders(id, ts, v.Sign(id, ts, payload))
}
