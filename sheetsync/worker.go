// Package sheetsync owns self-healing: promoting form-submission rows
// that never reached the canonical sheets. Promotion is a scheduled
// background concern, not a side effect of user reads.
package sheetsync

import (
	"context"
	"time"

	"github.com/bsm/redislock"

	"bitbucket.org/alrahmateam/medaid_backend/config"
	"bitbucket.org/alrahmateam/medaid_backend/ledger"
)

type RunStats struct {
	Entity     string `json:"entity"`
	Merged     int    `json:"merged"`
	Promoted   int    `json:"promoted"`
	Errors     int    `json:"errors"`
	DurationMs int64  `json:"duration_ms"`
}

type Worker struct {
	service  *ledger.Service
	interval time.Duration
}

func NewWorker(service *ledger.Service, interval time.Duration) *Worker {
	return &Worker{service: service, interval: interval}
}

// Start runs the sync loop until ctx is canceled. One pass happens
// immediately so a fresh deploy converges without waiting a full period.
func (w *Worker) Start(ctx context.Context) {
	go func() {
		w.RunOnce(ctx)
		ticker := time.NewTicker(w.interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				w.RunOnce(ctx)
			}
		}
	}()
}

// RunOnce reconciles every dual-source entity and commits pending
// promotions. The Redis lock keeps multiple replicas from appending the
// same promotion batch twice; with no Redis configured the deployment is
// assumed single-instance.
func (w *Worker) RunOnce(ctx context.Context) []RunStats {
	logger := config.GetLogger()

	release, obtained := w.tryLock(ctx)
	if !obtained {
		config.LogInfo(logger, "sheetsync", "RunOnce", "another replica holds the sync lock, skipping", nil)
		return nil
	}
	defer release()

	stats := []RunStats{w.syncCases(ctx)}
	for _, st := range stats {
		if st.Errors > 0 {
			config.LogWarn(logger, "sheetsync", "RunOnce", "sync pass finished with errors", st)
		} else {
			config.LogInfo(logger, "sheetsync", "RunOnce", "sync pass finished", st)
		}
	}
	return stats
}

func (w *Worker) syncCases(ctx context.Context) RunStats {
	started := time.Now()
	stats := RunStats{Entity: "cases"}

	merged, promotions := w.service.ReconcileCases(ctx)
	stats.Merged = len(merged)
	if len(promotions) > 0 {
		if err := w.service.CommitCasePromotions(ctx, promotions); err != nil {
			stats.Errors++
			config.LogError(config.GetLogger(), "sheetsync", "syncCases", "promotion append failed", len(promotions), err)
		} else {
			stats.Promoted = len(promotions)
		}
	}
	stats.DurationMs = time.Since(started).Milliseconds()
	return stats
}

func (w *Worker) tryLock(ctx context.Context) (func(), bool) {
	locker := config.GetRedisLock()
	if locker == nil {
		return func() {}, true
	}
	lock, err := locker.Obtain(ctx, "sheetsync:run", 2*time.Minute, nil)
	if err == redislock.ErrNotObtained {
		return nil, false
	}
	if err != nil {
		config.LogError(config.GetLogger(), "sheetsync", "tryLock", "lock error, proceeding unlocked", nil, err)
		return func() {}, true
	}
	return func() { _ = lock.Release(ctx) }, true
}
