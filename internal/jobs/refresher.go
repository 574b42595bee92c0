// Package jobs holds background tasks run on a schedule.
package jobs

import (
	"context"
	"runtime/debug"
	"time"

	"github.com/go-co-op/gocron/v2"
	"gorm.io/gorm"

	"fintrack/internal/logger"
	"fintrack/internal/models"
	"fintrack/internal/services"
)

// PriceRefresher keeps the price cache warm by resolving every tracked
// ticker on an interval. Tickers whose cache entry is still fresh are
// served from the cache, so a run only hits the provider for expired ones.
type PriceRefresher struct {
	db     *gorm.DB
	prices services.PriceResolver
}

// NewPriceRefresher creates a new PriceRefresher.
func NewPriceRefresher(db *gorm.DB, prices services.PriceResolver) *PriceRefresher {
	return &PriceRefresher{db: db, prices: prices}
}

// Refresh resolves the current price for every distinct tracked ticker.
// Unresolvable tickers are skipped; the run itself only fails on a database
// error.
func (r *PriceRefresher) Refresh(ctx context.Context) error {
	tickers, err := r.Tickers()
	if err != nil {
		return err
	}

	log := logger.Get()
	refreshed := 0
	for _, ticker := range tickers {
		if r.prices.CurrentPrice(ctx, ticker) != nil {
			refreshed++
		}
	}
	log.Infow("price refresh complete", "tickers", len(tickers), "resolved", refreshed)
	return nil
}

// Tickers returns every distinct ticker across all users' investments.
func (r *PriceRefresher) Tickers() ([]string, error) {
	var tickers []string
	if err := r.db.Model(&models.Investment{}).
		Distinct("ticker").Order("ticker ASC").Pluck("ticker", &tickers).Error; err != nil {
		return nil, err
	}
	return tickers, nil
}

// Schedule registers the refresher on a new gocron scheduler and starts it.
// The caller owns the returned scheduler and should Shutdown it when the
// process stops.
func (r *PriceRefresher) Schedule(interval time.Duration) (gocron.Scheduler, error) {
	scheduler, err := gocron.NewScheduler()
	if err != nil {
		return nil, err
	}

	_, err = scheduler.NewJob(
		gocron.DurationJob(interval),
		gocron.NewTask(withRecover("price_refresh", r.Refresh)),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
		gocron.WithStartAt(gocron.WithStartImmediately()),
	)
	if err != nil {
		return nil, err
	}

	scheduler.Start()
	return scheduler, nil
}

// withRecover wraps a job so a panic inside it cannot kill the scheduler.
func withRecover(name string, fn func(ctx context.Context) error) func(ctx context.Context) {
	return func(ctx context.Context) {
		log := logger.Get()
		defer func() {
			if rec := recover(); rec != nil {
				log.Errorw("panic in scheduled job",
					"job", name,
					"panic", rec,
					"stacktrace", string(debug.Stack()),
				)
			}
		}()

		if err := fn(ctx); err != nil {
			log.Errorw("scheduled job failed", "job", name, "error", err)
		}
	}
}
