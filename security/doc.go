// Package security holds the TLS settings shared by the HTTP adapter and the
// sandbox listener.
//
//	cfg := security.TLSConfig{CAFile: "/etc/paykit/ca.pem"}
//	tlsConfig, err := cfg.Build()
package security
