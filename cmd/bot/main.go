package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	environment "amele-bot/internal/env"
)

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize environment
	env, err := environment.Setup(ctx)
	if err != nil {
		log.Fatalf("Failed to setup environment: %v", err)
	}

	logger := env.Logger
	logger.Info("Starting amele-bot application")

	// Start observability server in background
	go func() {
		logger.Info("Starting observability server", slog.String("addr", env.Servers.HTTP.Observability.Addr))
		if err := env.Servers.HTTP.Observability.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("Observability server error", slog.Any("error", err))
		}
	}()

	// Start web server in background
	go func() {
		logger.Info("Starting web server", slog.String("addr", env.Servers.HTTP.Web.Addr))
		if err := env.Servers.HTTP.Web.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("Web server error", slog.Any("error", err))
		}
	}()

	// Запускаем Telegram бота
	if err := startTelegramBot(ctx, env); err != nil {
		logger.Error("Failed to start telegram bot", slog.Any("error", err))
		return
	}

	// Запускаем фоновые воркеры
	if err := env.Services.WorkerManager.Start(); err != nil {
		logger.Error("Failed to start workers", slog.Any("error", err))
		return
	}
	if err := env.Services.WorkerService.Start(); err != nil {
		logger.Error("Failed to start worker service", slog.Any("error", err))
		return
	}

	// Wait for interrupt signal to gracefully shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	logger.Info("Bot started successfully. Press Ctrl+C to stop.")
	<-quit

	logger.Info("Shutting down application...")
	cancel()

	// Create context with timeout for graceful shutdown
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), env.Config.ShutdownDuration)
	defer shutdownCancel()

	env.Services.WorkerService.Stop()
	env.Services.WorkerManager.Stop()

	if err := env.Servers.HTTP.Web.Shutdown(shutdownCtx); err != nil && err != http.ErrServerClosed {
		logger.Error("Web server shutdown error", slog.Any("error", err))
	}
	if err := env.Servers.HTTP.Observability.Shutdown(shutdownCtx); err != nil && err != http.ErrServerClosed {
		logger.Error("Observability server shutdown error", slog.Any("error", err))
	}

	// Close resources
	for _, closer := range env.Closers {
		closer()
	}

	logger.Info("Application stopped")
}

func startTelegramBot(ctx context.Context, env *environment.Env) error {
	logger := env.Logger

	if env.Clients.TelegramBot == nil {
		return fmt.Errorf("telegram bot не инициализирован")
	}
	if env.Services.TelegramRouter == nil {
		return fmt.Errorf("telegram router не инициализирован")
	}

	// Запускаем telegram клиент
	if err := env.Clients.TelegramBot.Start(ctx); err != nil {
		return fmt.Errorf("запуск telegram клиента: %w", err)
	}

	updates := env.Clients.TelegramBot.GetUpdates()

	logger.Info("Started listening for updates with router...")

	go func() {
		for {
			select {
			case <-ctx.Done():
				env.Clients.TelegramBot.Stop()
				return
			case update := <-updates:
				if update.Message != nil {
					var userID int64
					if update.Message.From != nil {
						userID = update.Message.From.ID
					}
					logger.Info("Получено сообщение",
						slog.Int64("chat_id", update.Message.Chat.ID),
						slog.Int64("user_id", userID),
						slog.String("text", update.Message.Text))
				} else if update.CallbackQuery != nil {
					logger.Info("Получен callback",
						slog.Int64("user_id", update.CallbackQuery.From.ID),
						slog.String("data", update.CallbackQuery.Data))
				}

				// Ошибки уже залогированы внутри роутера
				_ = env.Services.TelegramRouter.Route(&update)
			}
		}
	}()

	return nil
}
