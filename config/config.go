package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kbukum/paykit/logger"
	"github.com/kbukum/paykit/observability"
	"github.com/kbukum/paykit/security"
)

// Payment environments.
const (
	EnvTest = "test"
	EnvProd = "prod"
)

// Base URLs of the payment service per environment.
const (
	TestURL = "https://test.bitpay.com/"
	ProdURL = "https://bitpay.com/"
)

const defaultTimeout = 30 * time.Second

// Config is the full client configuration.
//
//	environment: test
//	token: "your-merchant-token"
//	timeout: 10s
//	logging:
//	  level: debug
type Config struct {
	// Environment selects the base URL. Unknown values fall back to prod.
	Environment string `yaml:"environment" mapstructure:"environment"`
	// Token is the static merchant token sent with every resource request.
	Token string `yaml:"token" mapstructure:"token"`
	// BaseURL overrides the environment URL, e.g. to target a sandbox.
	BaseURL string            `yaml:"base_url" mapstructure:"base_url"`
	Timeout time.Duration     `yaml:"timeout" mapstructure:"timeout"`
	Headers map[string]string `yaml:"headers" mapstructure:"headers"`

	TLS     security.TLSConfig   `yaml:"tls" mapstructure:"tls"`
	Logging logger.Config        `yaml:"logging" mapstructure:"logging"`
	Tracing observability.Config `yaml:"tracing" mapstructure:"tracing"`
}

// Default returns a prod configuration with every section defaulted.
func Default() *Config {
	cfg := &Config{}
	cfg.ApplyDefaults()
	return cfg
}

// ApplyDefaults applies default values to every section.
func (c *Config) ApplyDefaults() {
	c.Environment = NormalizeEnvironment(c.Environment)
	if c.Timeout == 0 {
		c.Timeout = defaultTimeout
	}
	c.Logging.ApplyDefaults()
	c.Tracing.ApplyDefaults()
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if c.Timeout < 0 {
		return fmt.Errorf("config.timeout must not be negative (got: %s)", c.Timeout)
	}
	if c.BaseURL != "" {
		u, err := url.Parse(c.BaseURL)
		if err != nil || u.Scheme == "" || u.Host == "" {
			return fmt.Errorf("config.base_url must be an absolute URL (got: %q)", c.BaseURL)
		}
	}
	if err := c.TLS.Validate(); err != nil {
		return fmt.Errorf("config.tls: %w", err)
	}
	if err := c.Logging.Validate(); err != nil {
		return fmt.Errorf("config.logging: %w", err)
	}
	if err := c.Tracing.Validate(); err != nil {
		return fmt.Errorf("config.tracing: %w", err)
	}
	return nil
}

// ResolveBaseURL returns the URL requests are resolved against, always with
// a trailing slash.
func (c *Config) ResolveBaseURL() string {
	base := c.BaseURL
	if base == "" {
		base = EnvironmentURL(c.Environment)
	}
	if !strings.HasSuffix(base, "/") {
		base += "/"
	}
	return base
}

// NormalizeEnvironment maps any spelling of test to EnvTest and everything
// else to EnvProd.
func NormalizeEnvironment(env string) string {
	if strings.EqualFold(strings.TrimSpace(env), EnvTest) {
		return EnvTest
	}
	return EnvProd
}

// EnvironmentURL returns the base URL of env.
func EnvironmentURL(env string) string {
	if NormalizeEnvironment(env) == EnvTest {
		return TestURL
	}
	return ProdURL
}
