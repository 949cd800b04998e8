// Package worker запускает расписание фоновых задач на cron.
package worker

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/robfig/cron/v3"

	"amele-bot/internal/telegram/cmds"
)

type Service struct {
	orders   statsProvider
	notifier operatorNotifier
	logger   *slog.Logger
	cron     *cron.Cron
}

func NewService(orders statsProvider, notifier operatorNotifier, logger *slog.Logger) *Service {
	return &Service{
		orders:   orders,
		notifier: notifier,
		logger:   logger,
		cron:     cron.New(),
	}
}

// Start starts the cron workers
func (s *Service) Start() error {
	s.logger.Info("Starting worker service")

	// Дневная сводка оператору в 09:00
	_, err := s.cron.AddFunc("0 9 * * *", func() {
		ctx := context.Background()
		s.logger.Info("Running daily digest worker")
		if err := s.runDailyDigest(ctx); err != nil {
			s.logger.Error("Daily digest worker failed", "error", err)
		}
	})
	if err != nil {
		return fmt.Errorf("failed to add daily digest worker: %w", err)
	}

	s.cron.Start()
	return nil
}

// Stop stops the cron workers
func (s *Service) Stop() {
	s.logger.Info("Stopping worker service")
	ctx := s.cron.Stop()
	<-ctx.Done()
}

func (s *Service) runDailyDigest(ctx context.Context) error {
	stats, err := s.orders.Stats(ctx)
	if err != nil {
		return fmt.Errorf("get stats: %w", err)
	}

	s.notifier.Digest(cmds.FormatStats(stats))
	return nil
}
