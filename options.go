package hookbase

import (
	"log/slog"
	"time"

	"github.com/hookbase/hookbase-go/pkg/apiclient"
)

type clientOptions struct {
	baseURL    string
	timeout    time.Duration
	maxRetries *int
	httpClient apiclient.HTTPDoer
	logger     *slog.Logger
	apiOptions []apiclient.Option
}

// Option configures a Client.
type Option func(*clientOptions)

// WithBaseURL points the client at another API host, e.g. a staging deployment.
func WithBaseURL(u string) Option {
	return func(o *clientOptions) {
		if u != "" {
			o.baseURL = u
		}
	}
}

// WithTimeout bounds each attempt. Non-positive values are ignored.
func WithTimeout(d time.Duration) Option {
	return func(o *clientOptions) {
		if d > 0 {
			o.timeout = d
		}
	}
}

// WithMaxRetries sets how many times a failed request is retried. Zero
// disables retries.
func WithMaxRetries(n int) Option {
	return func(o *clientOptions) {
		n = max(n, 0)
		o.maxRetries = &n
	}
}

// WithHTTPClient sends requests through c instead of the default pooled client.
func WithHTTPClient(c apiclient.HTTPDoer) Option {
	return func(o *clientOptions) {
		if c != nil {
			o.httpClient = c
		}
	}
}

// WithLogger sets the logger used for client diagnostics and retry logging.
func WithLogger(l *slog.Logger) Option {
	return func(o *clientOptions) {
		if l != nil {
			o.logger = l
		}
	}
}

// WithAPIOptions passes low-level options such as apiclient.WithBackoff or
// apiclient.WithOnAttempt to the request engine.
func WithAPIOptions(opts ...apiclient.Option) Option {
	return func(o *clientOptions) {
		o.apiOptions = append(o.apiOptions, opts...)
	}
}
