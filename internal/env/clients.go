package environment

import (
	"context"
	"log/slog"

	"amele-bot/internal/config"
	"amele-bot/internal/infra/cache"
	"amele-bot/internal/infra/mailer"
	"amele-bot/internal/infra/sqlite3"
	"amele-bot/internal/infra/telegram"
)

type Clients struct {
	// SQLiteDB инициализируется только при STORAGE_BACKEND=sqlite
	SQLiteDB       *sqlite3.DB
	Cache          *cache.Client
	TelegramBot    *telegram.Client
	TokenValidator *telegram.TokenValidator
	Mailer         *mailer.Mailer
}

func newClients(ctx context.Context, cfg config.Config, logger *slog.Logger) (*Clients, error) {
	var c Clients

	if cfg.Storage.Backend == "sqlite" {
		sqliteDB, err := provideSQLiteDB(ctx, cfg)
		if err != nil {
			return nil, err
		}
		c.SQLiteDB = sqliteDB
	}

	// Кэш сам переключается на память, если Redis недоступен
	c.Cache = cache.New(ctx, cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB, logger)

	telegramBot, err := telegram.NewClient(cfg.Telegram.BotToken, logger)
	if err != nil {
		return nil, err
	}
	c.TelegramBot = telegramBot

	c.TokenValidator = telegram.NewTokenValidator(cfg.Telegram.ValidationTimeout, c.Cache, logger)

	c.Mailer = mailer.New(cfg.SMTP.Host, cfg.SMTP.Port, cfg.SMTP.Username, cfg.SMTP.Password, cfg.SMTP.From, logger)

	return &c, nil
}

func provideSQLiteDB(ctx context.Context, cfg config.Config) (*sqlite3.DB, error) {
	opts := []sqlite3.Option{
		sqlite3.WithDSN(cfg.Storage.SQLite.Path),
		sqlite3.WithMaxOpenConns(cfg.Storage.SQLite.MaxOpenConns),
		sqlite3.WithMaxIdleConns(cfg.Storage.SQLite.MaxIdleConns),
		sqlite3.WithConnMaxLifetime(cfg.Storage.SQLite.MaxLifetime),
	}

	return sqlite3.New(ctx, opts...)
}
