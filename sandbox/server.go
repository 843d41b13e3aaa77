package sandbox

import (
	"context"
	"crypto/tls"
	"fmt"
	"net"
	"net/http"
	"time"

	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"

	"github.com/kbukum/paykit/logger"
)

// Server runs a Handler on a TCP listener, speaking HTTP/2 cleartext
// alongside HTTP/1.1, or TLS when a certificate is configured.
type Server struct {
	httpServer *http.Server
	handler    *Handler
	tlsConfig  *tls.Config
	config     Config
	log        *logger.Logger
	listener   net.Listener
}

// NewServer creates a server for a fresh in-memory store.
func NewServer(cfg Config, log *logger.Logger) (*Server, error) {
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if log == nil {
		log = logger.Nop()
	}

	tlsConfig, err := cfg.TLS.BuildServer()
	if err != nil {
		return nil, fmt.Errorf("sandbox tls: %w", err)
	}

	handler := NewHandler(cfg, NewStore(cfg.Rates), log)

	h2s := &http2.Server{
		MaxConcurrentStreams: 250,
		IdleTimeout:          time.Duration(cfg.IdleTimeout) * time.Second,
	}

	httpServer := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Handler:      h2c.NewHandler(handler, h2s),
		TLSConfig:    tlsConfig,
		ReadTimeout:  time.Duration(cfg.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.IdleTimeout) * time.Second,
	}

	return &Server{
		httpServer: httpServer,
		handler:    handler,
		tlsConfig:  tlsConfig,
		config:     cfg,
		log:        log.WithComponent("sandbox"),
	}, nil
}

// Handler returns the routes served.
func (s *Server) Handler() *Handler { return s.handler }

// Start binds the port and begins serving. It returns once the listener is
// bound so the caller knows the port is ready; serving continues in a goroutine.
func (s *Server) Start(ctx context.Context) error {
	var lc net.ListenConfig
	listener, err := lc.Listen(ctx, "tcp", s.httpServer.Addr)
	if err != nil {
		return fmt.Errorf("sandbox failed to bind %s: %w", s.httpServer.Addr, err)
	}
	s.Serve(listener)
	return nil
}

// Serve serves on an already bound listener in a goroutine.
func (s *Server) Serve(listener net.Listener) {
	if s.tlsConfig != nil {
		listener = tls.NewListener(listener, s.tlsConfig)
	}
	s.listener = listener

	go func() {
		if err := s.httpServer.Serve(listener); err != nil && err != http.ErrServerClosed {
			s.log.Error("sandbox error", map[string]interface{}{
				"error": err.Error(),
			})
		}
	}()

	s.log.Info("sandbox started", map[string]interface{}{
		"addr": s.Addr(),
		"tls":  s.tlsConfig != nil,
	})
}

// Stop gracefully shuts down the server with a 5-second deadline.
func (s *Server) Stop(ctx context.Context) error {
	shutdownCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("sandbox shutdown error: %w", err)
	}
	s.log.Info("sandbox shut down")
	return nil
}

// Addr returns the bound address once started, the configured one before.
func (s *Server) Addr() string {
	if s.listener != nil {
		return s.listener.Addr().String()
	}
	return s.httpServer.Addr
}

// URL returns the base URL clients should use.
func (s *Server) URL() string {
	scheme := "http"
	if s.tlsConfig != nil {
		scheme = "https"
	}
	return scheme + "://" + s.Addr() + "/"
}
