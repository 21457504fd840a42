package http

import (
	"context"
	"log/slog"

	"go.uber.org/fx"

	"github.com/sp3dr4/xlu/config"
	"github.com/sp3dr4/xlu/internal/application"
	"github.com/sp3dr4/xlu/internal/server"
)

// ServerParams holds what the HTTP lifecycle hooks need
type ServerParams struct {
	fx.In

	Server  server.Server
	Config  *config.Config
	Logger  *slog.Logger
	Service *application.ShortLinkService
}

// RegisterHTTPServerHooks starts serving once the graph is built, optionally
// loading the short link cache first, and drains the server on shutdown.
func RegisterHTTPServerHooks(lc fx.Lifecycle, p ServerParams) {
	logger := p.Logger.With("addr", p.Server.Addr())

	lc.Append(fx.StartStopHook(
		func(ctx context.Context) error {
			if p.Config.Cache.Enabled && p.Config.Cache.WarmOnStart {
				warmCache(ctx, p.Service, logger)
			}

			logger.Info("Serving short links",
				"store", p.Config.Database.Type,
				"cache_enabled", p.Config.Cache.Enabled,
				"base_url", p.Config.App.BaseURL,
			)
			return p.Server.Start(ctx)
		},
		func(ctx context.Context) error {
			if err := p.Server.Stop(ctx); err != nil {
				logger.Error("HTTP server did not drain cleanly", "error", err)
				return err
			}
			logger.Info("HTTP server stopped")
			return nil
		},
	))
}

// warmCache fills the cache ahead of the first request. A failure is not
// fatal: the cache loads lazily on the next read.
func warmCache(ctx context.Context, service *application.ShortLinkService, logger *slog.Logger) {
	links, err := service.ListShortLinks(ctx)
	if err != nil {
		logger.Warn("Cache warm-up failed, links will load on first request", "error", err)
		return
	}
	logger.Info("Cache warmed", "links", len(links))
}
