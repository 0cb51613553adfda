package bootstrap

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/target/onboarding-portal/config"
	httpx "github.com/target/onboarding-portal/internal/http"
)

const (
	defaultListenAddr      = ":8080"
	serverIdleTimeout      = 120 * time.Second
	defaultShutdownTimeout = 15 * time.Second
)

// HTTPServerConfig wires NewHTTPServer.
type HTTPServerConfig struct {
	Config   *config.AppConfig
	Services ServiceContainer
	Health   []httpx.HealthCheck
	Logger   *slog.Logger
}

// NewHTTPServer builds the portal's server. It does not listen.
func NewHTTPServer(cfg HTTPServerConfig) *http.Server {
	logger := cmp.Or(cfg.Logger, slog.Default())
	appCfg := cfg.Config
	if appCfg == nil {
		appCfg = &config.AppConfig{}
	}
	h := appCfg.HTTP

	return &http.Server{
		Addr:              cmp.Or(h.Addr, defaultListenAddr),
		Handler:           httpx.NewRouter(BuildRouterServices(cfg.Services, appCfg, cfg.Health, logger)),
		ReadHeaderTimeout: h.ReadHeaderTimeout,
		ReadTimeout:       h.ReadTimeout,
		WriteTimeout:      h.WriteTimeout,
		IdleTimeout:       serverIdleTimeout,
		ErrorLog:          slog.NewLogLogger(logger.Handler(), slog.LevelWarn),
	}
}

// BuildRouterServices maps the service container and configuration onto the router's dependencies.
func BuildRouterServices(
	svcs ServiceContainer,
	appCfg *config.AppConfig,
	health []httpx.HealthCheck,
	logger *slog.Logger,
) httpx.RouterServices {
	rs := httpx.RouterServices{
		Auth:       svcs.Auth,
		Users:      svcs.Users,
		Modules:    svcs.Modules,
		Questions:  svcs.Questions,
		Quiz:       svcs.Quiz,
		Onboarding: svcs.Onboarding,
		Health:     health,
		Cookie: httpx.SessionCookieConfig{
			Name:   appCfg.Auth.SessionCookieName,
			Domain: appCfg.HTTP.CookieDomain,
			TTL:    appCfg.Auth.SessionTTL,
			Secure: appCfg.HTTP.SecureOrigin(),
		},
		IsDev:  appCfg.IsDev,
		Logger: logger,
	}
	if appCfg.HTTP.CompressionEnabled {
		logger.Info("HTTP compression enabled", "level", appCfg.HTTP.CompressionLevel, "min_size", appCfg.HTTP.CompressionMinSize)
		rs.Compression = httpx.CompressionConfig{
			Level:   appCfg.HTTP.CompressionLevel,
			MinSize: appCfg.HTTP.CompressionMinSize,
			Logger:  logger,
		}
	}
	return rs
}

// Serve runs srv until ctx is done or the listener fails, then gives
// in-flight requests up to drain to finish. A listener failure is returned;
// a clean stop returns nil.
func Serve(ctx context.Context, srv *http.Server, drain time.Duration, logger *slog.Logger) error {
	logger = cmp.Or(logger, slog.Default())
	if drain <= 0 {
		drain = defaultShutdownTimeout
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("starting HTTP server", "addr", srv.Addr)
		if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down HTTP server")
		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), drain)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown http server: %w", err)
		}
		logger.Info("HTTP server stopped")
		return nil
	})
	return g.Wait()
}
