package config

import (
	"errors"
	"fmt"
	"maps"
	"os"
	"strings"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

type loadOptions struct {
	prefix      string
	envFiles    []string
	environment map[string]string
}

// Option configures Load.
type Option func(*loadOptions)

// WithPrefix prepends prefix to every env tag, e.g. "HOOKBASE_".
func WithPrefix(prefix string) Option {
	return func(o *loadOptions) {
		o.prefix = prefix
	}
}

// WithEnvFiles reads variables from the given .env files. Files listed later
// override earlier ones; the process environment overrides all of them.
func WithEnvFiles(paths ...string) Option {
	return func(o *loadOptions) {
		o.envFiles = append(o.envFiles, paths...)
	}
}

// WithEnvironment parses from env instead of the process environment.
// Values from env files are still merged underneath it.
func WithEnvironment(env map[string]string) Option {
	return func(o *loadOptions) {
		o.environment = env
	}
}

// Load parses a fresh T from environment variables using its struct tags.
// Nothing is cached and the process environment is never modified, so
// multiple differently configured values can be loaded side by side.
//
// Example:
//
//	type Config struct {
//		APIKey  string        `env:"API_KEY,required"`
//		Timeout time.Duration `env:"TIMEOUT" envDefault:"30s"`
//	}
//
//	cfg, err := config.Load[Config](config.WithPrefix("HOOKBASE_"))
func Load[T any](opts ...Option) (T, error) {
	var cfg T

	o := &loadOptions{}
	for _, opt := range opts {
		opt(o)
	}

	environment, err := o.resolveEnvironment()
	if err != nil {
		return cfg, err
	}

	if err := env.ParseWithOptions(&cfg, env.Options{
		Prefix:      o.prefix,
		Environment: environment,
	}); err != nil {
		return cfg, errors.Join(ErrParsingConfig, err)
	}
	return cfg, nil
}

// MustLoad works like Load but panics if configuration loading fails.
func MustLoad[T any](opts ...Option) T {
	cfg, err := Load[T](opts...)
	if err != nil {
		panic(fmt.Sprintf("failed to load required configuration: %v", err))
	}
	return cfg
}

func (o *loadOptions) resolveEnvironment() (map[string]string, error) {
	base := o.environment
	if base == nil {
		base = processEnvironment()
	}
	if len(o.envFiles) == 0 {
		return base, nil
	}

	merged := make(map[string]string, len(base))
	for _, path := range o.envFiles {
		values, err := godotenv.Read(path)
		if err != nil {
			return nil, errors.Join(ErrLoadingEnvFile, fmt.Errorf("%s: %w", path, err))
		}
		maps.Copy(merged, values)
	}
	maps.Copy(merged, base)
	return merged, nil
}

func processEnvironment() map[string]string {
	out := make(map[string]string)
	for _, kv := range os.Environ() {
		if k, v, ok := strings.Cut(kv, "="); ok {
			out[k] = v
		}
	}
	return out
}
