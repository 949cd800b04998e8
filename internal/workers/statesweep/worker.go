// Package statesweep убирает просроченные диалоговые состояния.
package statesweep

import (
	"log/slog"
	"time"
)

type Sweeper interface {
	Sweep() int
}

type Worker struct {
	sweeper  Sweeper
	interval time.Duration
	logger   *slog.Logger

	stopCh chan struct{}
	doneCh chan struct{}
}

func NewWorker(sweeper Sweeper, interval time.Duration, logger *slog.Logger) *Worker {
	return &Worker{
		sweeper:  sweeper,
		interval: interval,
		logger:   logger,
		stopCh:   make(chan struct{}),
		doneCh:   make(chan struct{}),
	}
}

func (w *Worker) Name() string {
	return "statesweep"
}

func (w *Worker) Start() error {
	w.logger.Info("Starting state sweep worker", "interval", w.interval)

	go func() {
		defer func() {
			if r := recover(); r != nil {
				w.logger.Error("Panic in state sweep worker goroutine", "panic", r)
			}
		}()
		w.run()
	}()
	return nil
}

func (w *Worker) Stop() {
	w.logger.Info("Stopping state sweep worker")
	close(w.stopCh)
	<-w.doneCh
}

func (w *Worker) run() {
	defer close(w.doneCh)

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if removed := w.sweeper.Sweep(); removed > 0 {
				w.logger.Info("Swept expired dialog states", "count", removed)
			}
		case <-w.stopCh:
			return
		}
	}
}
