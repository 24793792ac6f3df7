package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/coreos/go-systemd/v22/daemon"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"

	"github.com/reolink-tools/fwcheck/pkg/checker"
	"github.com/reolink-tools/fwcheck/pkg/device"
)

// Server exposes firmware check results over HTTP and keeps them fresh with
// a periodic background check.
type Server struct {
	config      *Config
	httpServer  *http.Server
	rateLimiter *rate.Limiter
	checker     *checker.Checker
	device      device.Device

	mu    sync.RWMutex
	last  *checker.Result
	ready bool
}

// NewServer creates a new server instance for the given device.
func NewServer(config *Config, chk *checker.Checker, dev device.Device) *Server {
	if config == nil {
		config = NewConfig()
	}
	if chk == nil {
		chk = checker.New()
	}

	s := &Server{
		config:      config,
		rateLimiter: rate.NewLimiter(config.RateLimit, config.RateLimitBurst),
		checker:     chk,
		device:      dev,
	}

	mux := s.setupRoutes()
	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf("%s:%d", config.Address, config.Port),
		Handler:      mux,
		ReadTimeout:  config.ReadTimeout,
		WriteTimeout: config.WriteTimeout,
		IdleTimeout:  config.IdleTimeout,
	}

	return s
}

// setupRoutes configures all HTTP routes and middleware
func (s *Server) setupRoutes() http.Handler {
	mux := http.NewServeMux()

	// Default handler
	mux.HandleFunc("/", s.handleDefault)

	// System endpoints (no rate limiting)
	mux.HandleFunc("/health", s.handleHealth)
	mux.HandleFunc("/ready", s.handleReady)
	mux.Handle("/metrics", promhttp.Handler())

	// API endpoints with middleware
	mux.HandleFunc("/v1/check", s.withMiddleware(s.handleCheck))

	return mux
}

// SetReady marks the server as ready to serve traffic
func (s *Server) SetReady(ready bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ready = ready
}

// Start starts the HTTP server and blocks until ctx is cancelled or the
// listener fails. Readiness is reported only once the listener is bound.
func (s *Server) Start(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.httpServer.Addr)
	if err != nil {
		return fmt.Errorf("failed to bind %s: %w", s.httpServer.Addr, err)
	}

	s.SetReady(true)

	slog.Info("starting http listener", "addr", ln.Addr().String())

	errChan := make(chan error, 1)
	go func() {
		if err := s.httpServer.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errChan <- err
		}
	}()

	select {
	case <-ctx.Done():
		return s.Shutdown(context.Background())
	case err := <-errChan:
		return err
	}
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	s.SetReady(false)

	shutdownCtx, cancel := context.WithTimeout(ctx, s.config.ShutdownTimeout)
	defer cancel()

	slog.Info("shutting down server")
	return s.httpServer.Shutdown(shutdownCtx)
}

// checkLoop runs periodic firmware checks until ctx is cancelled. Check
// failures are logged and retried on the next tick; only cancellation stops
// the loop.
func (s *Server) checkLoop(ctx context.Context) error {
	if s.config.CheckOnStartup {
		s.backgroundCheck(ctx)
	}

	ticker := time.NewTicker(s.config.CheckInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			s.backgroundCheck(ctx)
		}
	}
}

func (s *Server) backgroundCheck(ctx context.Context) {
	res, err := s.runCheck(ctx)
	if err != nil {
		slog.Error("periodic firmware check failed",
			"device", s.device.String(),
			"error", err.Error(),
		)
		return
	}
	if res.UpdateAvailable {
		slog.Warn("firmware update available",
			"device", s.device.String(),
			"current", res.Current,
			"latest", res.Latest,
			"url", res.DownloadURL,
		)
	}
}

// Run starts the server with graceful shutdown handling.
func Run(config *Config, chk *checker.Checker, dev device.Device) error {
	if config == nil {
		config = NewConfig()
	}

	slog.Info("starting server",
		"name", config.Name,
		"version", config.Version,
		"device", dev.String(),
	)

	server := NewServer(config, chk, dev)

	slog.Info("server config",
		"address", server.httpServer.Addr,
		"port", config.Port,
		"rateLimit", float64(config.RateLimit),
		"rateLimitBurst", config.RateLimitBurst,
		"checkInterval", config.CheckInterval.String(),
		"checkOnStartup", config.CheckOnStartup,
		"readTimeout", config.ReadTimeout.String(),
		"writeTimeout", config.WriteTimeout.String(),
		"idleTimeout", config.IdleTimeout.String(),
		"shutdownTimeout", config.ShutdownTimeout.String(),
	)

	// Setup graceful shutdown
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)

	// Start HTTP server
	g.Go(func() error {
		return server.Start(gctx)
	})

	// Periodic firmware checks
	g.Go(func() error {
		return server.checkLoop(gctx)
	})

	// Tell the service manager we are up; no-op outside systemd units.
	if _, err := daemon.SdNotify(false, daemon.SdNotifyReady); err != nil {
		slog.Debug("sd_notify ready failed", "error", err.Error())
	}

	err := g.Wait()

	if _, nerr := daemon.SdNotify(false, daemon.SdNotifyStopping); nerr != nil {
		slog.Debug("sd_notify stopping failed", "error", nerr.Error())
	}

	if err != nil {
		return fmt.Errorf("server error: %w", err)
	}

	slog.Info("server stopped gracefully")
	return nil
}
