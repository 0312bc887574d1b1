package planner

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/itinerary-microservice/internal/usecase"
)

// WarmupWorker periodically pre-assembles candidate pools for the
// configured cities so the first planning request per city does not pay
// the store round trips. Pools land in the shared cache through the
// candidate use case.
type WarmupWorker struct {
	candidateUC *usecase.CandidateUseCase
	cities      []string
	poolSize    int
	interval    time.Duration
	logger      *zap.Logger
	stopCh      chan struct{}
}

func NewWarmupWorker(
	candidateUC *usecase.CandidateUseCase,
	cities []string,
	poolSize int,
	interval time.Duration,
	logger *zap.Logger,
) *WarmupWorker {
	return &WarmupWorker{
		candidateUC: candidateUC,
		cities:      cities,
		poolSize:    poolSize,
		interval:    interval,
		logger:      logger,
		stopCh:      make(chan struct{}),
	}
}

func (w *WarmupWorker) Name() string {
	return "pool-warmup"
}

// Start warms the pools immediately and then on every tick until the
// context is cancelled or Stop is called.
func (w *WarmupWorker) Start(ctx context.Context) error {
	w.warmAll(ctx)

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-w.stopCh:
			return nil
		case <-ticker.C:
			w.warmAll(ctx)
		}
	}
}

func (w *WarmupWorker) Stop() error {
	close(w.stopCh)
	return nil
}

func (w *WarmupWorker) warmAll(ctx context.Context) {
	for _, city := range w.cities {
		select {
		case <-ctx.Done():
			return
		default:
		}

		pool := w.candidateUC.FetchCandidates(ctx, city, nil, w.poolSize)
		w.logger.Debug("Pool warmed",
			zap.String("city", city),
			zap.Int("size", pool.Size()))
	}
}
