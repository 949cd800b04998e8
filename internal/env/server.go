package environment

import (
	"context"
	"log/slog"
	"net/http"

	"amele-bot/internal/config"
)

type Servers struct {
	HTTP struct {
		Observability *http.Server
		Web           *http.Server
	}
}

func newServers(ctx context.Context, cfg config.Config, logger *slog.Logger, services *Services) *Servers {
	var servers Servers

	servers.HTTP.Web = &http.Server{
		Addr:              cfg.Web.ADDR(),
		Handler:           services.WebServer.Handler(),
		ReadTimeout:       cfg.Web.ReadTimeout,
		WriteTimeout:      cfg.Web.WriteTimeout,
		IdleTimeout:       cfg.Web.IdleTimeout,
		ReadHeaderTimeout: cfg.Web.ReadTimeout,
	}

	servers.HTTP.Observability = initObservability(ctx, logger.WithGroup("http"), cfg)

	return &servers
}
