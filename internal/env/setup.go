package environment

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/joho/godotenv"
	"github.com/sethvargo/go-envconfig"

	"amele-bot/internal/config"
)

type closer func()

type Env struct {
	Config   *config.Config
	Logger   *slog.Logger
	Servers  *Servers
	Clients  *Clients
	Services *Services

	Closers []closer
}

func Setup(ctx context.Context) (*Env, error) {
	// Загружаем .env файл если он существует (игнорируем ошибки - файл может не существовать)
	_ = godotenv.Load()

	var cfg config.Config
	err := envconfig.Process(ctx, &cfg)
	if err != nil {
		return nil, fmt.Errorf("env processing: %w", err)
	}

	var e Env

	logger, err := initLogger(cfg)
	if err != nil {
		return nil, fmt.Errorf("initLogger: %w", err)
	}

	clients, err := newClients(ctx, cfg, logger)
	if err != nil {
		return nil, fmt.Errorf("newClients: %w", err)
	}

	services, err := newServices(ctx, clients, &cfg, logger)
	if err != nil {
		return nil, fmt.Errorf("newServices: %w", err)
	}

	servers := newServers(ctx, cfg, logger, services)

	e.Config = &cfg
	e.Logger = logger
	e.Clients = clients
	e.Services = services
	e.Servers = servers
	e.Closers = []closer{
		func() {
			if err := clients.Cache.Close(); err != nil {
				logger.Warn("cache close", slog.Any("error", err))
			}
		},
	}
	if clients.SQLiteDB != nil {
		e.Closers = append(e.Closers, func() {
			if err := clients.SQLiteDB.Close(); err != nil {
				logger.Warn("sqlite close", slog.Any("error", err))
			}
		})
	}

	return &e, nil
}
