package httpclient

import (
	"fmt"
	"net/url"
	"time"

	"github.com/kbukum/paykit/security"
)

const (
	defaultTimeout = 30 * time.Second
)

// Config configures the HTTP adapter.
type Config struct {
	// BaseURL is the absolute URL request paths are resolved against.
	BaseURL string `yaml:"base_url" mapstructure:"base_url"`

	// Timeout bounds a whole exchange, body read included. Defaults to 30s.
	Timeout time.Duration `yaml:"timeout" mapstructure:"timeout"`

	// TLS configures TLS settings for the HTTP transport.
	TLS *security.TLSConfig `yaml:"tls" mapstructure:"tls"`

	// Headers are extra headers applied to all requests. They never replace
	// the protocol headers.
	Headers map[string]string `yaml:"headers" mapstructure:"headers"`
}

// ApplyDefaults fills in zero-value fields with sensible defaults.
func (c *Config) ApplyDefaults() {
	if c.Timeout <= 0 {
		c.Timeout = defaultTimeout
	}
}

// Validate checks that the configuration is valid.
func (c *Config) Validate() error {
	if c.Timeout <= 0 {
		return fmt.Errorf("httpclient: timeout must be positive")
	}
	u, err := url.Parse(c.BaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("httpclient: base_url must be an absolute URL (got: %q)", c.BaseURL)
	}
	if c.TLS != nil {
		if err := c.TLS.Validate(); err != nil {
			return err
		}
	}
	return nil
}
