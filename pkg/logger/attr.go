package logger

import (
	"log/slog"
	"time"
)

// Error records err under "error". Nil errors yield an empty Attr, which slog drops.
func Error(err error) slog.Attr {
	if err == nil {
		return slog.Attr{}
	}
	return slog.Any("error", err)
}

// RequestID records the server-assigned correlation id under "request_id".
func RequestID(id string) slog.Attr {
	if id == "" {
		return slog.Attr{}
	}
	return slog.String("request_id", id)
}

// WebhookID records an inbound delivery id under "webhook_id".
func WebhookID(id string) slog.Attr {
	if id == "" {
		return slog.Attr{}
	}
	return slog.String("webhook_id", id)
}

// Method records the HTTP method under "method".
func Method(m string) slog.Attr {
	return slog.String("method", m)
}

// Path records the request path under "path".
func Path(p string) slog.Attr {
	return slog.String("path", p)
}

// Attempt records the zero-based attempt number.
func Attempt(n int) slog.Attr {
	return slog.Int("attempt", n)
}

// StatusCode records an HTTP status under "status_code". Zero yields an empty Attr.
func StatusCode(code int) slog.Attr {
	if code == 0 {
		return slog.Attr{}
	}
	return slog.Int("status_code", code)
}

// Delay records a backoff delay under "delay".
func Delay(d time.Duration) slog.Attr {
	return slog.Duration("delay", d)
}

// Duration records how long an attempt took under "duration".
func Duration(d time.Duration) slog.Attr {
	return slog.Duration("duration", d)
}
