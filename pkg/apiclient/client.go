package apiclient

import (
	"bytes"
	"context"
	"crypto/tls"
	"crypto/x509"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"slices"
	"strings"
	"time"

	"github.com/hookbase/hookbase-go/pkg/logger"
	"github.com/hookbase/hookbase-go/pkg/requestid"
)

const (
	DefaultTimeout   = 30 * time.Second
	DefaultUserAgent = "hookbase-go/1.0.0"

	maxResponseBodyBytes int64 = 10 << 20
)

// retryableStatuses are retried while the retry budget lasts.
var retryableStatuses = map[int]struct{}{
	http.StatusTooManyRequests:     {},
	http.StatusInternalServerError: {},
	http.StatusBadGateway:          {},
	http.StatusServiceUnavailable:  {},
	http.StatusGatewayTimeout:      {},
}

// IsRetryableStatus reports whether the client retries responses with code.
func IsRetryableStatus(code int) bool {
	_, ok := retryableStatuses[code]
	return ok
}

// HTTPDoer sends a single HTTP request. *http.Client satisfies it.
type HTTPDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

// Client issues authenticated JSON requests against one API base URL,
// retrying transient failures.
//
// Configuration is fixed at construction; a Client is safe for concurrent
// use and keeps no per-request state.
type Client struct {
	baseURL    *url.URL
	credential string
	timeout    time.Duration
	maxRetries int

	doer      HTTPDoer
	userAgent string
	logger    *slog.Logger
	backoff   Backoff
	sleep     SleepFunc
	onAttempt AttemptHook
	now       func() time.Time
}

// New creates a Client. timeout bounds each attempt, not the whole retry
// sequence; non-positive values mean DefaultTimeout. maxRetries is the number
// of retries after the first attempt; negative values mean none.
func New(credential, baseURL string, timeout time.Duration, maxRetries int, opts ...Option) (*Client, error) {
	if strings.TrimSpace(credential) == "" {
		return nil, fmt.Errorf("%w: credential is required", ErrInvalidConfiguration)
	}
	u, err := parseBaseURL(baseURL)
	if err != nil {
		return nil, err
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	c := &Client{
		baseURL:    u,
		credential: credential,
		timeout:    timeout,
		maxRetries: max(maxRetries, 0),
		doer: &http.Client{
			Transport: &http.Transport{
				Proxy:               http.ProxyFromEnvironment,
				MaxIdleConns:        100,
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     90 * time.Second,
			},
		},
		userAgent: DefaultUserAgent,
		logger:    logger.Discard(),
		backoff:   DefaultBackoff(),
		sleep:     sleepContext,
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

func parseBaseURL(raw string) (*url.URL, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, fmt.Errorf("%w: base URL is required", ErrInvalidConfiguration)
	}
	u, err := url.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: base URL: %w", ErrInvalidConfiguration, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("%w: base URL scheme must be http or https", ErrInvalidConfiguration)
	}
	if u.Host == "" {
		return nil, fmt.Errorf("%w: base URL host is required", ErrInvalidConfiguration)
	}
	return u, nil
}

// BaseURL returns the API root every request path is joined onto.
func (c *Client) BaseURL() string { return c.baseURL.String() }

// MaxRetries returns how many times a failed attempt may be retried.
func (c *Client) MaxRetries() int { return c.maxRetries }

// Timeout returns the per-attempt timeout.
func (c *Client) Timeout() time.Duration { return c.timeout }

// Request is the generic form of (*Client).Do.
func Request[T any](ctx context.Context, c *Client, method, path string, opts ...RequestOption) (T, error) {
	var out T
	if err := c.Do(ctx, method, path, &out, opts...); err != nil {
		var zero T
		return zero, err
	}
	return out, nil
}

// Do sends method path and decodes a 2xx JSON response into out (ignored
// when nil or when the body is empty).
//
// Responses with status 429, 500, 502, 503 or 504 and transport failures are
// retried up to the client's retry budget; every other failure returns at
// once. Failures come back as *Error. Cancelling ctx aborts both the
// in-flight call and any pending backoff with an error wrapping ErrCanceled
// and ctx.Err().
func (c *Client) Do(ctx context.Context, method, path string, out any, opts ...RequestOption) error {
	if ctx == nil {
		ctx = context.Background()
	}
	ro := requestOptions{}
	for _, opt := range opts {
		opt(&ro)
	}

	method = strings.ToUpper(strings.TrimSpace(method))
	if method == "" {
		method = http.MethodGet
	}

	var body []byte
	if ro.body != nil {
		var err error
		if body, err = json.Marshal(ro.body); err != nil {
			return fmt.Errorf("%w: encode body: %w", ErrInvalidRequest, err)
		}
	}
	target, err := c.buildURL(path, ro.query)
	if err != nil {
		return err
	}

	for attempt := 0; ; attempt++ {
		start := c.now()
		resp, err := c.send(ctx, method, target, body, &ro)
		info := AttemptInfo{
			Method:   method,
			Path:     path,
			Attempt:  attempt,
			Duration: c.now().Sub(start),
		}

		if err != nil {
			if ctx.Err() != nil {
				return canceled(ctx)
			}
			if errors.Is(err, ErrInvalidRequest) {
				return err
			}
			info.Err = err
			if attempt < c.maxRetries && isRetryableTransportError(err) {
				if err := c.wait(ctx, info, c.backoff.Delay(attempt)); err != nil {
					return err
				}
				continue
			}
			c.observe(info)
			c.logger.DebugContext(ctx, "hookbase request failed",
				logger.Method(method),
				logger.Path(path),
				logger.Attempt(attempt),
				logger.Duration(info.Duration),
				logger.Error(err),
			)
			return &Error{
				Kind:    KindTransport,
				Message: "request failed: " + err.Error(),
				Err:     err,
			}
		}

		info.StatusCode = resp.status
		info.RequestID = resp.requestID

		if resp.status >= 200 && resp.status < 300 {
			c.observe(info)
			return decodeResponse(resp, out)
		}

		if attempt < c.maxRetries && IsRetryableStatus(resp.status) {
			delay, ok := parseRetryAfter(resp.header, c.now())
			if !ok {
				delay = c.backoff.Delay(attempt)
			}
			info.Err = fmt.Errorf("status %d", resp.status)
			if err := c.wait(ctx, info, delay); err != nil {
				return err
			}
			continue
		}

		apiErr := c.classify(resp)
		info.Err = apiErr
		c.observe(info)
		c.logger.DebugContext(ctx, "hookbase request failed",
			logger.Method(method),
			logger.Path(path),
			logger.Attempt(attempt),
			logger.StatusCode(resp.status),
			logger.RequestID(resp.requestID),
			logger.Duration(info.Duration),
			logger.Error(apiErr),
		)
		return apiErr
	}
}

// wait reports a retryable attempt and sleeps before the next one.
func (c *Client) wait(ctx context.Context, info AttemptInfo, delay time.Duration) error {
	info.Delay = delay
	info.WillRetry = true
	c.observe(info)

	c.logger.WarnContext(ctx, "retrying hookbase request",
		logger.Method(info.Method),
		logger.Path(info.Path),
		logger.Attempt(info.Attempt),
		logger.StatusCode(info.StatusCode),
		logger.RequestID(info.RequestID),
		logger.Delay(delay),
		logger.Error(info.Err),
	)

	if err := c.sleep(ctx, delay); err != nil {
		return canceled(ctx)
	}
	return nil
}

func (c *Client) observe(info AttemptInfo) {
	if c.onAttempt != nil {
		c.onAttempt(info)
	}
}

type response struct {
	status    int
	header    http.Header
	body      []byte
	requestID string
}

// send performs one attempt, bounded by the client timeout, and reads the
// whole response body.
func (c *Client) send(ctx context.Context, method, target string, body []byte, ro *requestOptions) (*response, error) {
	attemptCtx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(attemptCtx, method, target, reader)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidRequest, err)
	}

	req.Header.Set("Authorization", "Bearer "+c.credential)
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if ro.idempotencyKey != "" {
		req.Header.Set("Idempotency-Key", ro.idempotencyKey)
	}
	for k, v := range ro.headers {
		req.Header.Set(k, v)
	}

	httpResp, err := c.doer.Do(req)
	if err != nil {
		return nil, err
	}
	defer func() { _ = httpResp.Body.Close() }()

	data, err := io.ReadAll(io.LimitReader(httpResp.Body, maxResponseBodyBytes+1))
	if err != nil {
		return nil, fmt.Errorf("read response body: %w", err)
	}

	return &response{
		status:    httpResp.StatusCode,
		header:    httpResp.Header,
		body:      data,
		requestID: requestid.FromResponse(httpResp),
	}, nil
}

// buildURL joins path onto the base URL and appends the encoded query. A
// query string embedded in path is kept, with explicit params taking
// precedence on key collisions.
func (c *Client) buildURL(path string, query map[string]string) (string, error) {
	path, rawQuery, _ := strings.Cut(path, "?")

	values := url.Values{}
	if rawQuery != "" {
		embedded, err := url.ParseQuery(rawQuery)
		if err != nil {
			return "", fmt.Errorf("%w: query in path %q: %w", ErrInvalidRequest, path, err)
		}
		values = embedded
	}
	for k, v := range query {
		if v != "" {
			values.Set(k, v)
		}
	}

	u := *c.baseURL
	u.Path = strings.TrimRight(u.Path, "/") + "/" + strings.TrimLeft(path, "/")
	u.RawPath = ""
	u.RawQuery = encodeValues(values)
	return u.String(), nil
}

// encodeValues percent-encodes keys and values (spaces as %20), sorted by key,
// skipping empty values.
func encodeValues(values url.Values) string {
	if len(values) == 0 {
		return ""
	}
	keys := make([]string, 0, len(values))
	for k := range values {
		if k != "" {
			keys = append(keys, k)
		}
	}
	slices.Sort(keys)

	var b strings.Builder
	for _, k := range keys {
		for _, v := range values[k] {
			if v == "" {
				continue
			}
			if b.Len() > 0 {
				b.WriteByte('&')
			}
			b.WriteString(escapeQuery(k))
			b.WriteByte('=')
			b.WriteString(escapeQuery(v))
		}
	}
	return b.String()
}

func escapeQuery(s string) string {
	return strings.ReplaceAll(url.QueryEscape(s), "+", "%20")
}

func decodeResponse(resp *response, out any) error {
	if out == nil || resp.status == http.StatusNoContent {
		return nil
	}
	if int64(len(resp.body)) > maxResponseBodyBytes {
		return &Error{
			Kind:       KindDeserialization,
			StatusCode: resp.status,
			Message:    fmt.Sprintf("response body exceeds %d bytes", maxResponseBodyBytes),
			RequestID:  resp.requestID,
		}
	}
	trimmed := bytes.TrimSpace(resp.body)

	var err error
	switch {
	case len(trimmed) == 0:
		err = errors.New("response body is empty")
	case bytes.Equal(trimmed, []byte("null")):
		err = errors.New("response body is null")
	default:
		err = json.Unmarshal(trimmed, out)
	}
	if err != nil {
		return &Error{
			Kind:       KindDeserialization,
			StatusCode: resp.status,
			Message:    "failed to deserialize response: " + err.Error(),
			RequestID:  resp.requestID,
			Err:        err,
		}
	}
	return nil
}

// classify turns a terminal non-2xx response into an *Error.
func (c *Client) classify(resp *response) *Error {
	parsed := parseErrorBody(resp.status, resp.body)
	e := &Error{
		Kind:       kindForStatus(resp.status),
		StatusCode: resp.status,
		Message:    parsed.message,
		RequestID:  resp.requestID,
		Details:    parsed.details,
	}
	switch e.Kind {
	case KindValidation:
		e.FieldErrors = parsed.fieldErrors
	case KindRateLimit:
		if d, ok := parseRetryAfter(resp.header, c.now()); ok {
			e.RetryAfter = d
		}
	}
	return e
}

// isRetryableTransportError treats every failure to get a response as
// transient except certificate problems, which no retry can fix.
func isRetryableTransportError(err error) bool {
	if errors.Is(err, context.Canceled) {
		return false
	}
	var (
		unknownAuthority x509.UnknownAuthorityError
		hostname         x509.HostnameError
		invalidCert      x509.CertificateInvalidError
		verification     *tls.CertificateVerificationError
	)
	switch {
	case errors.As(err, &unknownAuthority),
		errors.As(err, &hostname),
		errors.As(err, &invalidCert),
		errors.As(err, &verification):
		return false
	}
	return true
}

func canceled(ctx context.Context) error {
	return fmt.Errorf("%w: %w", ErrCanceled, ctx.Err())
}

func sleepContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
