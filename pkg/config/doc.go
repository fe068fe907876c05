// Package config loads typed configuration from environment variables.
//
// It wraps `github.com/caarlos0/env/v11` for struct-tag parsing and
// `github.com/joho/godotenv` for reading `.env` files:
//
//   - Load returns a fresh value on every call; there is no process-wide cache.
//   - WithPrefix scopes every tag, so one struct can serve several prefixes.
//   - WithEnvFiles merges `.env` files underneath the process environment
//     without calling os.Setenv.
//   - WithEnvironment replaces the process environment, which keeps tests
//     independent of each other.
//
// Example:
//
//	type Config struct {
//		APIKey     string        `env:"API_KEY,required"`
//		BaseURL    string        `env:"BASE_URL" envDefault:"https://api.hookbase.app"`
//		Timeout    time.Duration `env:"TIMEOUT" envDefault:"30s"`
//		MaxRetries int           `env:"MAX_RETRIES" envDefault:"3"`
//	}
//
//	cfg, err := config.Load[Config](
//		config.WithPrefix("HOOKBASE_"),
//		config.WithEnvFiles(".env"),
//	)
package config
