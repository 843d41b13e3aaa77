package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/pflag"

	"github.com/kbukum/paykit/bitpay"
	"github.com/kbukum/paykit/config"
	"github.com/kbukum/paykit/errors"
	"github.com/kbukum/paykit/logger"
	"github.com/kbukum/paykit/observability"
	"github.com/kbukum/paykit/util"
	"github.com/kbukum/paykit/version"
)

// Exit codes.
const (
	exitOK    = 0
	exitError = 1
	exitUsage = 2
)

const usage = `Usage: paykit <command> [flags]

Commands:
  invoice create   create an invoice
  invoice get ID   fetch an invoice
  bill create      create a bill
  bill get ID      fetch a bill
  bill deliver ID  email a bill to its recipient
  rates [CODE]     list exchange rates, or print one
  sandbox          run the local sandbox service
  version          print build information

Run "paykit <command> --help" for the flags of a command.
`

type command func(ctx context.Context, a *app, args []string) int

// app carries the streams shared by every command.
type app struct {
	stdout io.Writer
	stderr io.Writer
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	a := &app{stdout: stdout, stderr: stderr}
	if len(args) == 0 {
		fmt.Fprint(stderr, usage)
		return exitUsage
	}

	commands := map[string]command{
		"invoice": runInvoice,
		"bill":    runBill,
		"rates":   runRates,
		"sandbox": runSandbox,
		"version": runVersion,
	}

	switch args[0] {
	case "-h", "--help", "help":
		fmt.Fprint(stdout, usage)
		return exitOK
	}
	cmd, ok := commands[args[0]]
	if !ok {
		fmt.Fprintf(stderr, "paykit: unknown command %q\n\n%s", args[0], usage)
		return exitUsage
	}
	return cmd(ctx, a, args[1:])
}

// clientFlags are the connection flags shared by the client commands.
// Set flags override paykit.yml and PAYKIT_* variables.
type clientFlags struct {
	configFile  string
	envFile     string
	token       string
	environment string
	baseURL     string
	caFile      string
	insecure    bool
	logLevel    string
	logFormat   string
}

func (f *clientFlags) register(fs *pflag.FlagSet) {
	fs.StringVarP(&f.configFile, "config", "c", "", "path to paykit.yml")
	fs.StringVar(&f.envFile, "env-file", "", "path to a .env file")
	fs.StringVarP(&f.token, "token", "t", "", "merchant token")
	fs.StringVarP(&f.environment, "env", "e", "", "environment: test or prod")
	fs.StringVar(&f.baseURL, "base-url", "", "override the service URL, e.g. a local sandbox")
	fs.StringVar(&f.caFile, "ca-file", "", "extra CA certificate to trust")
	fs.BoolVar(&f.insecure, "insecure", false, "skip server certificate verification")
	fs.StringVar(&f.logLevel, "log-level", "", "off, debug, info, warn or error")
	fs.StringVar(&f.logFormat, "log-format", "", "console or json")
}

// loadConfig layers the flags over config.Load.
func (f *clientFlags) loadConfig() (*config.Config, error) {
	var opts []config.LoaderOption
	if f.configFile != "" {
		opts = append(opts, config.WithConfigFile(f.configFile))
	}
	if f.envFile != "" {
		opts = append(opts, config.WithEnvFile(f.envFile))
	}
	cfg, err := config.Load(opts...)
	if err != nil {
		return nil, err
	}

	if f.token != "" {
		cfg.Token = f.token
	}
	if f.environment != "" {
		cfg.Environment = f.environment
	}
	if f.baseURL != "" {
		cfg.BaseURL = f.baseURL
	}
	if f.caFile != "" {
		cfg.TLS.CAFile = f.caFile
	}
	if f.insecure {
		cfg.TLS.SkipVerify = true
	}
	if f.logLevel != "" {
		cfg.Logging.Level = f.logLevel
	}
	if f.logFormat != "" {
		cfg.Logging.Format = f.logFormat
	}

	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// session is an open client plus the teardown of its telemetry.
type session struct {
	client   *bitpay.Client
	log      *logger.Logger
	shutdown func(context.Context) error
}

func (s *session) close(ctx context.Context) {
	if err := s.shutdown(ctx); err != nil {
		s.log.Warn("telemetry shutdown failed", logger.Fields(logger.FieldError, err.Error()))
	}
}

func (a *app) open(ctx context.Context, f *clientFlags) (*session, error) {
	cfg, err := f.loadConfig()
	if err != nil {
		return nil, err
	}

	log := logger.NewWithWriter(&cfg.Logging, "paykit", a.stderr)
	shutdown, err := observability.Setup(ctx, cfg.Tracing, version.GetShortVersion(), cfg.Environment)
	if err != nil {
		return nil, err
	}

	client, err := bitpay.New(cfg, bitpay.WithLogger(log))
	if err != nil {
		_ = shutdown(ctx)
		return nil, err
	}
	log.Debug("client ready", logger.Fields(
		"base_url", client.BaseURL(),
		"environment", client.Environment(),
		"token", util.MaskSecret(cfg.Token, 4),
	))
	return &session{client: client, log: log, shutdown: shutdown}, nil
}

// newFlagSet returns a flag set that reports errors instead of exiting.
func (a *app) newFlagSet(name string) *pflag.FlagSet {
	fs := pflag.NewFlagSet(name, pflag.ContinueOnError)
	fs.SetOutput(a.stderr)
	fs.SortFlags = false
	return fs
}

// parse parses args and returns the exit code to stop with, or -1 to go on.
func (a *app) parse(fs *pflag.FlagSet, args []string) int {
	if err := fs.Parse(args); err != nil {
		if err == pflag.ErrHelp {
			return exitOK
		}
		return exitUsage
	}
	return -1
}

// printJSON writes v to stdout as indented JSON.
func (a *app) printJSON(v any) int {
	enc := json.NewEncoder(a.stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return a.fail(errors.Serialization("output", err))
	}
	return exitOK
}

// fail reports err on stderr. Client errors print as CLASS [code]: message.
func (a *app) fail(err error) int {
	msg := err.Error()
	if appErr, ok := errors.AsAppError(err); ok && strings.Contains(appErr.Message, "\n") {
		msg = strings.ReplaceAll(msg, "\n", "\n  ")
	}
	fmt.Fprintf(a.stderr, "paykit: %s\n", msg)
	return exitError
}

func (a *app) usageError(format string, args ...any) int {
	fmt.Fprintf(a.stderr, "paykit: "+format+"\n", args...)
	return exitUsage
}
