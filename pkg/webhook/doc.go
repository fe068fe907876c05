// Package webhook verifies inbound webhook deliveries signed with a shared
// secret.
//
// A delivery carries three headers: webhook-id, webhook-timestamp (unix
// seconds) and webhook-signature. The signature is the standard base64
// encoding of HMAC-SHA256 over "{id}.{timestamp}.{payload}" keyed with the
// base64-decoded secret (an optional "whsec_" prefix is stripped first), sent
// as "v1,<signature>". A header may carry several space separated
// signatures during secret rotation; any match is accepted.
//
// # Usage
//
//	v, err := webhook.NewVerifier(os.Getenv("HOOKBASE_WEBHOOK_SECRET"))
//	if err != nil {
//	    return err
//	}
//
//	var event struct {
//	    Type string         `json:"type"`
//	    Data map[string]any `json:"data"`
//	}
//	if err := v.Verify(body, webhook.HeadersFromHTTP(r.Header), &event); err != nil {
//	    http.Error(w, "invalid signature", webhook.StatusCode(err))
//	    return
//	}
//
// Verify needs the raw request body exactly as received. Decoding and
// re-encoding JSON before verification changes the bytes and the signature
// will not match.
//
// # Middleware
//
// Middleware wraps an http.Handler, rejecting unsigned or stale requests
// before they reach it:
//
//	r := chi.NewRouter()
//	r.With(webhook.Middleware(v,
//	    webhook.WithReplayGuard(webhook.NewRedisReplayGuard(rdb, "hookbase:webhook:")),
//	    webhook.WithLogger(log),
//	)).Post("/webhooks/hookbase", handleDelivery)
//
// # Errors
//
// Every verification failure wraps ErrVerification together with one
// specific sentinel such as ErrTimestampTooOld or ErrSignatureMismatch, so
// callers can test for either with errors.Is.
package webhook
