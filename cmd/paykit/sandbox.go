package main

import (
	"context"
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/kbukum/paykit/config"
	"github.com/kbukum/paykit/logger"
	"github.com/kbukum/paykit/sandbox"
)

// sandboxFile is the part of paykit.yml the sandbox command reads.
//
//	sandbox:
//	  port: 8089
//	  token: "merchant-token"
//	  tls:
//	    cert_file: sandbox.crt
//	    key_file: sandbox.key
type sandboxFile struct {
	Logging logger.Config  `yaml:"logging" mapstructure:"logging"`
	Sandbox sandbox.Config `yaml:"sandbox" mapstructure:"sandbox"`
}

func runSandbox(ctx context.Context, a *app, args []string) int {
	var (
		configFile string
		envFile    string
		host       string
		port       int
		token      string
		publicURL  string
		certFile   string
		keyFile    string
		logLevel   string
	)
	fs := a.newFlagSet("sandbox")
	fs.StringVarP(&configFile, "config", "c", "", "path to paykit.yml")
	fs.StringVar(&envFile, "env-file", "", "path to a .env file")
	fs.StringVar(&host, "host", "", "address to bind (default 127.0.0.1)")
	fs.IntVarP(&port, "port", "p", 0, "port to bind (default 8089)")
	fs.StringVarP(&token, "token", "t", "", "only accept this merchant token")
	fs.StringVar(&publicURL, "public-url", "", "prefix of the invoice and bill URLs handed out")
	fs.StringVar(&certFile, "tls-cert", "", "serve HTTPS with this certificate")
	fs.StringVar(&keyFile, "tls-key", "", "private key of --tls-cert")
	fs.StringVar(&logLevel, "log-level", "", "off, debug, info, warn or error (default info)")
	if code := a.parse(fs, args); code >= 0 {
		return code
	}

	var opts []config.LoaderOption
	if configFile != "" {
		opts = append(opts, config.WithConfigFile(configFile))
	}
	if envFile != "" {
		opts = append(opts, config.WithEnvFile(envFile))
	}
	var file sandboxFile
	if err := config.LoadInto(&file, opts...); err != nil {
		return a.fail(err)
	}

	cfg := file.Sandbox
	if host != "" {
		cfg.Host = host
	}
	if fs.Changed("port") {
		cfg.Port = port
	}
	if token != "" {
		cfg.Token = token
	}
	if publicURL != "" {
		cfg.PublicURL = publicURL
	}
	if certFile != "" {
		cfg.TLS.CertFile = certFile
	}
	if keyFile != "" {
		cfg.TLS.KeyFile = keyFile
	}

	logCfg := file.Logging
	if logCfg.Level == "" {
		logCfg.Level = "info"
	}
	if logLevel != "" {
		logCfg.Level = logLevel
	}
	logCfg.ApplyDefaults()
	if err := logCfg.Validate(); err != nil {
		return a.fail(err)
	}
	log := logger.NewWithWriter(&logCfg, "paykit-sandbox", a.stderr)
	gin.SetMode(ginModeFor(log))

	srv, err := sandbox.NewServer(cfg, log)
	if err != nil {
		return a.fail(err)
	}
	if err := srv.Start(ctx); err != nil {
		return a.fail(err)
	}
	fmt.Fprintf(a.stdout, "sandbox listening on %s\n", srv.URL())

	<-ctx.Done()
	if err := srv.Stop(context.WithoutCancel(ctx)); err != nil {
		return a.fail(err)
	}
	return exitOK
}

// ginModeFor returns gin's debug mode when log shows debug lines, release
// mode otherwise.
func ginModeFor(log *logger.Logger) string {
	if log.Enabled(zerolog.DebugLevel) {
		return gin.DebugMode
	}
	return gin.ReleaseMode
}
