package hookbase

import (
	"time"

	"github.com/hookbase/hookbase-go/pkg/config"
)

// EnvPrefix scopes every environment variable read by LoadConfig.
const EnvPrefix = "HOOKBASE_"

// Config holds client and webhook settings, usually loaded from the
// environment.
type Config struct {
	APIKey     string        `env:"API_KEY,required"`
	BaseURL    string        `env:"BASE_URL" envDefault:"https://api.hookbase.app"`
	Timeout    time.Duration `env:"TIMEOUT" envDefault:"30s"`
	MaxRetries int           `env:"MAX_RETRIES" envDefault:"3"`

	WebhookSecret    string        `env:"WEBHOOK_SECRET"`
	WebhookTolerance time.Duration `env:"WEBHOOK_TOLERANCE" envDefault:"5m"`
}

// webhookConfig is the subset of Config a webhook receiver needs.
type webhookConfig struct {
	Secret    string        `env:"WEBHOOK_SECRET,required"`
	Tolerance time.Duration `env:"WEBHOOK_TOLERANCE" envDefault:"5m"`
}

// LoadConfig reads Config from HOOKBASE_* variables. Additional options such
// as config.WithEnvFiles are applied after the prefix.
func LoadConfig(opts ...config.Option) (Config, error) {
	return config.Load[Config](append([]config.Option{config.WithPrefix(EnvPrefix)}, opts...)...)
}
