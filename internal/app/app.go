// Package app wires configuration, storage, services and transport into the
// runnable HTTP server.
package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"strconv"

	"golang.org/x/sync/errgroup"

	"github.com/heartmarshall/writeassist-backend/internal/adapter/gemini"
	"github.com/heartmarshall/writeassist-backend/internal/auth"
	"github.com/heartmarshall/writeassist-backend/internal/config"
	"github.com/heartmarshall/writeassist-backend/internal/domain"
	"github.com/heartmarshall/writeassist-backend/internal/service/assist"
	"github.com/heartmarshall/writeassist-backend/internal/service/settings"
	"github.com/heartmarshall/writeassist-backend/internal/transport/middleware"
	"github.com/heartmarshall/writeassist-backend/internal/transport/rest"
)

// AIClient is the provider contract shared by the REST and SDK Gemini clients.
type AIClient interface {
	Generate(ctx context.Context, prompt string, temperature float64, cred domain.UserCredential) (string, error)
}

// NewAIClient returns the Gemini client selected by cfg.Client.
func NewAIClient(cfg config.GeminiConfig, logger *slog.Logger) AIClient {
	if cfg.Client == config.GeminiClientSDK {
		return gemini.NewSDKClient(cfg, logger)
	}
	return gemini.NewClient(cfg, logger)
}

// Server holds the wired HTTP handler and the resources it owns.
type Server struct {
	handler http.Handler
	store   *storage
	limiter *middleware.RateLimiter
}

type serverOptions struct {
	ai AIClient
}

// ServerOption customizes NewServer.
type ServerOption func(*serverOptions)

// WithAIClient replaces the configured Gemini client.
func WithAIClient(ai AIClient) ServerOption {
	return func(o *serverOptions) { o.ai = ai }
}

// NewServer opens storage and builds services and routes. Call Close when done.
func NewServer(ctx context.Context, cfg *config.Config, logger *slog.Logger, opts ...ServerOption) (*Server, error) {
	var o serverOptions
	for _, opt := range opts {
		opt(&o)
	}
	if o.ai == nil {
		o.ai = NewAIClient(cfg.Gemini, logger)
	}

	sealer, err := auth.NewSealer(cfg.Auth.EncryptionKey)
	if err != nil {
		return nil, fmt.Errorf("create sealer: %w", err)
	}
	tokens := auth.NewJWTManager(cfg.Auth.JWTSecret, cfg.Auth.JWTIssuer, cfg.Auth.AccessTokenTTL, cfg.Auth.ActionTokenTTL)

	store, err := openStorage(ctx, cfg, logger)
	if err != nil {
		return nil, err
	}

	settingsSvc := settings.NewService(logger, store.meta, sealer, store.tx)
	assistSvc := assist.NewService(logger, o.ai, settingsSvc)

	var limiter *middleware.RateLimiter
	if cfg.RateLimit.Enabled {
		limiter = middleware.NewRateLimiter(cfg.RateLimit.CleanupInterval)
	}

	handler := newRouter(routerDeps{
		cfg:      cfg,
		log:      logger,
		tokens:   tokens,
		health:   rest.NewHealthHandler(store.ping, store.backend, BuildVersion()),
		assist:   rest.NewAssistHandler(assistSvc, tokens, logger),
		settings: rest.NewSettingsHandler(settingsSvc, tokens, logger),
		limiter:  limiter,
	})

	return &Server{handler: handler, store: store, limiter: limiter}, nil
}

// Handler returns the root HTTP handler.
func (s *Server) Handler() http.Handler { return s.handler }

// Close stops background work and releases storage.
func (s *Server) Close() {
	if s.limiter != nil {
		s.limiter.Stop()
	}
	s.store.close()
}

// Run serves HTTP until ctx is cancelled, then shuts down gracefully within
// the configured shutdown timeout.
func Run(ctx context.Context, cfg *config.Config, logger *slog.Logger) error {
	srv, err := NewServer(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer srv.Close()

	httpSrv := &http.Server{
		Addr:              net.JoinHostPort(cfg.Server.Host, strconv.Itoa(cfg.Server.Port)),
		Handler:           srv.Handler(),
		ReadTimeout:       cfg.Server.ReadTimeout,
		ReadHeaderTimeout: cfg.Server.ReadTimeout,
		WriteTimeout:      cfg.Server.WriteTimeout,
		IdleTimeout:       cfg.Server.IdleTimeout,
		ErrorLog:          slog.NewLogLogger(logger.Handler(), slog.LevelWarn),
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info("http server listening",
			slog.String("addr", httpSrv.Addr),
			slog.String("version", BuildVersion()),
			slog.String("storage", cfg.Storage.Backend),
			slog.String("gemini_client", cfg.Gemini.Client),
		)
		if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("listen: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down", slog.Duration("timeout", cfg.Server.ShutdownTimeout))

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()
		if err := httpSrv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown: %w", err)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return err
	}
	logger.Info("shutdown complete")
	return nil
}
