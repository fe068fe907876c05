package webhook

import (
	"net/http"
	"strconv"
	"strings"
	"time"
)

// Standard header names carried by every webhook delivery.
const (
	HeaderID        = "webhook-id"
	HeaderTimestamp = "webhook-timestamp"
	HeaderSignature = "webhook-signature"
)

// Headers is a header-name to value mapping with case-insensitive lookup.
// Producers and proxies disagree on casing, so Get never relies on it.
type Headers map[string]string

// HeadersFromHTTP flattens an http.Header using the first value of each key.
func HeadersFromHTTP(h http.Header) Headers {
	out := make(Headers, len(h))
	for k, v := range h {
		if len(v) > 0 {
			out[k] = v[0]
		}
	}
	return out
}

// Get returns the value for name, trying an exact match before a
// case-insensitive scan. When several keys differ from name only in case, the
// one that sorts first wins.
func (h Headers) Get(name string) (string, bool) {
	if v, ok := h[name]; ok {
		return v, true
	}
	var (
		match string
		found bool
	)
	for k := range h {
		if strings.EqualFold(k, name) && (!found || k < match) {
			match, found = k, true
		}
	}
	if !found {
		return "", false
	}
	return h[match], true
}

// Apply sets the headers on an outgoing HTTP header set.
func (h Headers) Apply(dst http.Header) {
	for k, v := range h {
		dst.Set(k, v)
	}
}

func signatureHeaders(id string, ts time.Time, signature string) Headers {
	return Headers{
		HeaderID:        id,
		HeaderTimestamp: strconv.FormatInt(ts.Unix(), 10),
		HeaderSignature: signature,
	}
}
