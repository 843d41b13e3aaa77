// Package config loads and validates the paykit client configuration.
//
// Values come from a paykit.yml file, an optional .env file and PAYKIT_*
// environment variables, in increasing order of precedence. Nested keys use
// underscores in the environment, so PAYKIT_LOGGING_LEVEL sets logging.level.
//
//	cfg, err := config.Load()
//	client, err := bitpay.New(cfg)
package config
