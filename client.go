package hookbase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/hookbase/hookbase-go/pkg/apiclient"
	"github.com/hookbase/hookbase-go/pkg/config"
	"github.com/hookbase/hookbase-go/pkg/logger"
	"github.com/hookbase/hookbase-go/pkg/webhook"
)

const (
	DefaultBaseURL    = "https://api.hookbase.app"
	DefaultMaxRetries = 3
)

// ErrMissingWebhookSecret is returned by Webhooks when neither an explicit
// secret nor HOOKBASE_WEBHOOK_SECRET is available.
var ErrMissingWebhookSecret = errors.New("hookbase: webhook secret is required")

// Client is the entry point to the Hookbase API.
type Client struct {
	api *apiclient.Client
	cfg Config
}

// New creates a Client authenticated with apiKey.
func New(apiKey string, opts ...Option) (*Client, error) {
	return NewFromConfig(Config{
		APIKey:     apiKey,
		BaseURL:    DefaultBaseURL,
		Timeout:    apiclient.DefaultTimeout,
		MaxRetries: DefaultMaxRetries,
	}, opts...)
}

// NewFromEnv loads Config with LoadConfig and creates a Client from it.
func NewFromEnv(opts ...Option) (*Client, error) {
	cfg, err := LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("hookbase: load config: %w", err)
	}
	return NewFromConfig(cfg, opts...)
}

// NewFromConfig creates a Client from cfg. Options override cfg fields.
func NewFromConfig(cfg Config, opts ...Option) (*Client, error) {
	o := &clientOptions{
		baseURL: cfg.BaseURL,
		timeout: cfg.Timeout,
		logger:  logger.Discard(),
	}
	for _, opt := range opts {
		opt(o)
	}

	if o.baseURL == "" {
		o.baseURL = DefaultBaseURL
	}
	maxRetries := cfg.MaxRetries
	if o.maxRetries != nil {
		maxRetries = *o.maxRetries
	}

	apiOpts := []apiclient.Option{apiclient.WithLogger(o.logger)}
	if o.httpClient != nil {
		apiOpts = append(apiOpts, apiclient.WithHTTPClient(o.httpClient))
	}
	apiOpts = append(apiOpts, o.apiOptions...)

	api, err := apiclient.New(cfg.APIKey, o.baseURL, o.timeout, maxRetries, apiOpts...)
	if err != nil {
		return nil, err
	}

	cfg.BaseURL = api.BaseURL()
	cfg.Timeout = api.Timeout()
	cfg.MaxRetries = api.MaxRetries()

	o.logger.Debug("hookbase client configured",
		slog.String("base_url", cfg.BaseURL),
		slog.Duration("timeout", cfg.Timeout),
		slog.Int("max_retries", cfg.MaxRetries),
	)
	return &Client{api: api, cfg: cfg}, nil
}

// API exposes the underlying request engine.
func (c *Client) API() *apiclient.Client { return c.api }

// Config returns the effective configuration. The API key is included.
func (c *Client) Config() Config { return c.cfg }

// Request sends method path and decodes a 2xx response into out.
// See apiclient.Client.Do for retry and error semantics.
func (c *Client) Request(ctx context.Context, method, path string, out any, opts ...apiclient.RequestOption) error {
	return c.api.Do(ctx, method, path, out, opts...)
}

// Webhooks returns a Verifier for deliveries signed with secret. An empty
// secret falls back to the configured webhook secret, and the configured
// tolerance applies unless opts override it.
func (c *Client) Webhooks(secret string, opts ...webhook.VerifierOption) (*webhook.Verifier, error) {
	cfg := c.cfg
	if strings.TrimSpace(secret) != "" {
		cfg.WebhookSecret = secret
	}
	return NewWebhookVerifierFromConfig(cfg, opts...)
}

// NewWebhookVerifierFromConfig builds a Verifier from cfg.WebhookSecret and
// cfg.WebhookTolerance without requiring an API key.
func NewWebhookVerifierFromConfig(cfg Config, opts ...webhook.VerifierOption) (*webhook.Verifier, error) {
	if strings.TrimSpace(cfg.WebhookSecret) == "" {
		return nil, ErrMissingWebhookSecret
	}
	base := []webhook.VerifierOption{webhook.WithTolerance(cfg.WebhookTolerance)}
	return webhook.NewVerifier(cfg.WebhookSecret, append(base, opts...)...)
}

// NewWebhookVerifierFromEnv loads HOOKBASE_WEBHOOK_SECRET and
// HOOKBASE_WEBHOOK_TOLERANCE. HOOKBASE_API_KEY is not required.
func NewWebhookVerifierFromEnv(opts ...webhook.VerifierOption) (*webhook.Verifier, error) {
	cfg, err := config.Load[webhookConfig](config.WithPrefix(EnvPrefix))
	if err != nil {
		return nil, fmt.Errorf("hookbase: load webhook config: %w", err)
	}
	return NewWebhookVerifierFromConfig(Config{
		WebhookSecret:    cfg.Secret,
		WebhookTolerance: cfg.Tolerance,
	}, opts...)
}
