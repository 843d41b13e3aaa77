package security

import (
	"crypto/tls"
	"crypto/x509"
	"fmt"
	"os"
	"strings"
)

// TLSConfig holds TLS settings for the connection to the payment service and
// for the sandbox listener.
type TLSConfig struct {
	// SkipVerify disables server certificate verification.
	// Only meant for a local sandbox with a self-signed certificate.
	SkipVerify bool `yaml:"skip_verify" mapstructure:"skip_verify"`

	// CAFile is the path to an extra CA certificate for verifying the server.
	CAFile string `yaml:"ca_file" mapstructure:"ca_file"`

	// CertFile is the path to a TLS certificate: the client certificate for
	// mTLS, or the serving certificate of the sandbox.
	CertFile string `yaml:"cert_file" mapstructure:"cert_file"`

	// KeyFile is the private key matching CertFile.
	KeyFile string `yaml:"key_file" mapstructure:"key_file"`

	// ServerName overrides the server name used for certificate verification.
	ServerName string `yaml:"server_name" mapstructure:"server_name"`

	// MinVersion is "1.2" or "1.3". Defaults to 1.2.
	MinVersion string `yaml:"min_version" mapstructure:"min_version"`
}

// Build creates a client *tls.Config.
// Returns nil if no TLS settings are configured, leaving net/http defaults.
func (c *TLSConfig) Build() (*tls.Config, error) {
	if !c.IsEnabled() {
		return nil, nil
	}

	minVersion, err := parseMinVersion(c.MinVersion)
	if err != nil {
		return nil, err
	}

	cfg := &tls.Config{
		InsecureSkipVerify: c.SkipVerify, //nolint:gosec // opt-in for sandbox use
		ServerName:         c.ServerName,
		MinVersion:         minVersion,
	}

	if err := c.loadCA(cfg); err != nil {
		return nil, err
	}
	if err := c.loadCertificate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// BuildServer creates a *tls.Config for a listener serving CertFile/KeyFile.
// Returns nil if no certificate is configured.
func (c *TLSConfig) BuildServer() (*tls.Config, error) {
	if c == nil || c.CertFile == "" {
		return nil, nil
	}
	minVersion, err := parseMinVersion(c.MinVersion)
	if err != nil {
		return nil, err
	}
	cfg := &tls.Config{MinVersion: minVersion}
	if err := c.loadCertificate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks that the TLS configuration is consistent.
func (c *TLSConfig) Validate() error {
	if c == nil {
		return nil
	}
	if (c.CertFile != "") != (c.KeyFile != "") {
		return fmt.Errorf("security/tls: both cert_file and key_file must be provided together")
	}
	if _, err := parseMinVersion(c.MinVersion); err != nil {
		return err
	}
	return nil
}

// IsEnabled returns true if any client TLS setting is configured.
func (c *TLSConfig) IsEnabled() bool {
	if c == nil {
		return false
	}
	return c.SkipVerify || c.CAFile != "" || c.CertFile != "" || c.ServerName != "" || c.MinVersion != ""
}

func parseMinVersion(v string) (uint16, error) {
	switch strings.TrimSpace(v) {
	case "", "1.2":
		return tls.VersionTLS12, nil
	case "1.3":
		return tls.VersionTLS13, nil
	default:
		return 0, fmt.Errorf("security/tls: min_version must be 1.2 or 1.3 (got: %s)", v)
	}
}

// loadCA adds CAFile to a copy of the system pool.
func (c *TLSConfig) loadCA(cfg *tls.Config) error {
	if c.CAFile == "" {
		return nil
	}
	ca, err := os.ReadFile(c.CAFile)
	if err != nil {
		return fmt.Errorf("security/tls: failed to read CA file: %w", err)
	}
	pool, err := x509.SystemCertPool()
	if err != nil || pool == nil {
		pool = x509.NewCertPool()
	}
	if !pool.AppendCertsFromPEM(ca) {
		return fmt.Errorf("security/tls: failed to parse CA certificate")
	}
	cfg.RootCAs = pool
	return nil
}

func (c *TLSConfig) loadCertificate(cfg *tls.Config) error {
	if c.CertFile == "" || c.KeyFile == "" {
		return nil
	}
	cert, err := tls.LoadX509KeyPair(c.CertFile, c.KeyFile)
	if err != nil {
		return fmt.Errorf("security/tls: failed to load certificate: %w", err)
	}
	cfg.Certificates = []tls.Certificate{cert}
	return nil
}
