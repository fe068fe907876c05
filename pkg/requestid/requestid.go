package requestid

import (
	"net/http"
	"regexp"
)

// Header is the response header carrying the server-assigned request id.
const Header = "X-Request-Id"

const maxIDLength = 128

var validIDRegex = regexp.MustCompile(`^[a-zA-Z0-9_.:-]+$`)

// FromResponse returns the request id attached to resp, or "" when absent or
// malformed.
func FromResponse(resp *http.Response) string {
	if resp == nil {
		return ""
	}
	return FromHeader(resp.Header)
}

// FromHeader returns a validated request id from h.
func FromHeader(h http.Header) string {
	id := h.Get(Header)
	if !IsValid(id) {
		return ""
	}
	return id
}

// IsValid reports whether id is safe to echo into logs and error messages.
func IsValid(id string) bool {
	if len(id) == 0 || len(id) > maxIDLength {
		return false
	}
	return validIDRegex.MatchString(id)
}
