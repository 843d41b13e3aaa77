package sandbox

import (
	"fmt"

	"github.com/kbukum/paykit/bitpay"
	"github.com/kbukum/paykit/security"
)

// Config holds sandbox server configuration.
type Config struct {
	Host         string `yaml:"host" mapstructure:"host"`
	Port         int    `yaml:"port" mapstructure:"port"`
	ReadTimeout  int    `yaml:"read_timeout" mapstructure:"read_timeout"`   // seconds
	WriteTimeout int    `yaml:"write_timeout" mapstructure:"write_timeout"` // seconds
	IdleTimeout  int    `yaml:"idle_timeout" mapstructure:"idle_timeout"`   // seconds
	MaxBodySize  string `yaml:"max_body_size" mapstructure:"max_body_size"` // e.g. "1MB"

	// Token, when set, is the only merchant token the sandbox accepts.
	Token string `yaml:"token" mapstructure:"token"`
	// PublicURL prefixes the invoice and bill URLs handed out.
	PublicURL string `yaml:"public_url" mapstructure:"public_url"`
	// Rates is the rate table served by GET /rates.
	Rates []bitpay.Rate `yaml:"rates" mapstructure:"rates"`

	// TLS serves HTTPS when CertFile and KeyFile are set.
	TLS security.TLSConfig `yaml:"tls" mapstructure:"tls"`
}

// DefaultRates is the rate table served when none is configured.
func DefaultRates() []bitpay.Rate {
	return []bitpay.Rate{
		{Code: bitpay.BTC, Name: "Bitcoin", Value: 1},
		{Code: bitpay.BCH, Name: "Bitcoin Cash", Value: 38.42},
		{Code: bitpay.ETH, Name: "Ether", Value: 45.91},
		{Code: bitpay.USD, Name: "US Dollar", Value: 9434.5},
		{Code: bitpay.EUR, Name: "Eurozone Euro", Value: 8696.21},
		{Code: bitpay.GBP, Name: "Pound Sterling", Value: 7578.12},
		{Code: bitpay.JPY, Name: "Japanese Yen", Value: 1010342.57},
		{Code: bitpay.CNY, Name: "Chinese Yuan", Value: 66807.96},
	}
}

// ApplyDefaults sets sensible default values for unset fields.
func (c *Config) ApplyDefaults() {
	if c.Host == "" {
		c.Host = "127.0.0.1"
	}
	if c.Port == 0 {
		c.Port = 8089
	}
	if c.ReadTimeout == 0 {
		c.ReadTimeout = 15
	}
	if c.WriteTimeout == 0 {
		c.WriteTimeout = 15
	}
	if c.IdleTimeout == 0 {
		c.IdleTimeout = 60
	}
	if c.MaxBodySize == "" {
		c.MaxBodySize = "1MB"
	}
	if c.PublicURL == "" {
		scheme := "http"
		if c.TLS.CertFile != "" {
			scheme = "https"
		}
		c.PublicURL = fmt.Sprintf("%s://%s:%d/", scheme, c.Host, c.Port)
	}
	if len(c.Rates) == 0 {
		c.Rates = DefaultRates()
	}
}

// Validate checks the configuration for invalid values.
func (c *Config) Validate() error {
	if c.Port < 0 || c.Port > 65535 {
		return fmt.Errorf("sandbox.port must be between 0 and 65535 (got: %d)", c.Port)
	}
	if c.ReadTimeout < 0 {
		return fmt.Errorf("sandbox.read_timeout must be non-negative (got: %d)", c.ReadTimeout)
	}
	if c.WriteTimeout < 0 {
		return fmt.Errorf("sandbox.write_timeout must be non-negative (got: %d)", c.WriteTimeout)
	}
	if c.IdleTimeout < 0 {
		return fmt.Errorf("sandbox.idle_timeout must be non-negative (got: %d)", c.IdleTimeout)
	}
	if err := c.TLS.Validate(); err != nil {
		return fmt.Errorf("sandbox.tls: %w", err)
	}
	return nil
}
