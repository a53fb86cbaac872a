package tracker

import (
	"context"
	"math/rand"
	"time"

	"go.uber.org/zap"

	"github.com/johnquangdev/meeting-agent/pkg/config"
)

// Worker runs the drift service on an interval with a small random
// jitter so multiple instances do not poll the board in lockstep.
type Worker struct {
	svc      *Service
	interval time.Duration
	jitter   time.Duration
	logger   *zap.Logger
}

// NewWorker creates a new polling worker
func NewWorker(svc *Service, cfg *config.WorkerConfig, logger *zap.Logger) *Worker {
	return &Worker{
		svc:      svc,
		interval: cfg.Interval,
		jitter:   cfg.Jitter,
		logger:   logger,
	}
}

// Start runs the poll loop until the context is cancelled. The first
// pass runs immediately.
func (w *Worker) Start(ctx context.Context) {
	w.logger.Info("drift worker started",
		zap.Duration("interval", w.interval),
		zap.Duration("jitter", w.jitter))

	for {
		w.runOnce(ctx)

		select {
		case <-ctx.Done():
			w.logger.Info("drift worker stopped")
			return
		case <-time.After(w.nextDelay()):
		}
	}
}

func (w *Worker) runOnce(ctx context.Context) {
	start := time.Now()
	reports, err := w.svc.Run(ctx)
	if err != nil {
		w.logger.Error("drift pass failed", zap.Error(err))
		return
	}

	var checked, moved, unreachable int
	for _, report := range reports {
		for _, card := range report.Cards {
			checked++
			switch card.State {
			case StateMoved:
				moved++
			case StateUnreachable:
				unreachable++
			}
		}
	}

	w.logger.Info("drift pass finished",
		zap.Int("users", len(reports)),
		zap.Int("cards_checked", checked),
		zap.Int("cards_moved", moved),
		zap.Int("cards_unreachable", unreachable),
		zap.Duration("took", time.Since(start)))
}

func (w *Worker) nextDelay() time.Duration {
	delay := w.interval
	if w.jitter > 0 {
		delay += time.Duration(rand.Int63n(int64(w.jitter)))
	}
	return delay
}
