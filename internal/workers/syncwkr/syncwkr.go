package syncwkr

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"
	"go.uber.org/fx"

	"github.com/laddertrack/backend/internal/app/appconfig"
	"github.com/laddertrack/backend/internal/service"
)

type WorkerDeps struct {
	fx.In
	SyncService        *service.Sync
	MemberStatsService *service.MemberStats
}

type Worker struct {
	// count counts sync rounds the worker has completed so far
	count int

	// interval describes the interval in-between different sync rounds
	interval time.Duration

	// deps
	WorkerDeps
}

func Start(conf *appconfig.Config, deps WorkerDeps) {
	if !conf.SyncEnabled {
		log.Info().Msg("sync worker is disabled")
		return
	}
	(&Worker{
		interval:   conf.SyncInterval,
		WorkerDeps: deps,
	}).do()
}

func (w *Worker) do() context.CancelFunc {
	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		for {
			log.Info().
				Int("count", w.count).
				Msg("sync worker round started")

			stats, err := w.SyncService.SyncRoster(ctx)
			if err != nil {
				log.Error().
					Err(err).
					Int("count", w.count).
					Msg("sync worker roster sync failed")
			} else {
				log.Info().
					Int("count", w.count).
					Int("attempted", stats.Attempted).
					Int("succeeded", stats.Succeeded).
					Int("skipped", stats.Skipped).
					Int("failed", stats.Failed).
					Msg("sync worker roster sync finished")

				w.MemberStatsService.WarmAll(ctx)
			}

			log.Info().Int("count", w.count).Msg("sync worker round finished")

			w.count++
			time.Sleep(w.interval)
		}
	}()

	return cancel
}

func (w *Worker) Count() int {
	return w.count
}
