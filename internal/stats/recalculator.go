// Copyright (c) 2026 Hondana. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package stats

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/taibuivan/hondana/internal/platform/constants"
)

// Recalculator recomputes derived book statistics.
//
// # Concurrency Model
//
// Review mutations call [Recalculator.Enqueue], which is non-blocking:
// the book ID lands on a bounded channel drained by a fixed worker pool
// started via [Recalculator.Start]. A full queue drops the trigger and
// logs a warning; the next successful review write for the same book
// re-triggers the recompute, so a drop never leaves stats permanently
// stale under normal traffic.
type Recalculator struct {
	store       Store
	invalidator Invalidator
	logger      *slog.Logger

	queue     chan string
	waitGroup sync.WaitGroup
	startOnce sync.Once
	stopOnce  sync.Once
}

// NewRecalculator constructs a [Recalculator] with its storage dependencies.
func NewRecalculator(store Store, invalidator Invalidator, logger *slog.Logger) *Recalculator {
	return &Recalculator{
		store:       store,
		invalidator: invalidator,
		logger:      logger,
		queue:       make(chan string, constants.StatsQueueCapacity),
	}
}

// # Background Workers

// Start launches the worker pool that drains the recompute queue.
//
// Workers run until [Recalculator.Stop] is called or the context is
// cancelled. Each queued book is recomputed with a background-derived
// context so that in-flight work survives the HTTP request that
// triggered it.
func (recalculator *Recalculator) Start(ctx context.Context) {
	recalculator.startOnce.Do(func() {
		for i := 0; i < constants.StatsWorkerCount; i++ {
			recalculator.waitGroup.Add(1)

			go func(workerID int) {
				defer recalculator.waitGroup.Done()

				for {
					select {
					case bookID, open := <-recalculator.queue:
						if !open {
							return
						}

						if err := recalculator.Recompute(ctx, bookID); err != nil {
							recalculator.logger.Error("stats_recompute_failed",
								slog.Int("worker", workerID),
								slog.String("book_id", bookID),
								slog.String("error", err.Error()),
							)
						}
					case <-ctx.Done():
						return
					}
				}
			}(i)
		}
	})
}

// Stop closes the queue and waits for in-flight recomputes to finish.
func (recalculator *Recalculator) Stop() {
	recalculator.stopOnce.Do(func() {
		close(recalculator.queue)
	})
	recalculator.waitGroup.Wait()
}

// Enqueue schedules a fire-and-forget recompute for the given book.
//
// The call never blocks the caller. When the queue is saturated the
// trigger is dropped and logged; callers must not depend on the
// recompute having completed, or even started, when Enqueue returns.
func (recalculator *Recalculator) Enqueue(bookID string) {
	select {
	case recalculator.queue <- bookID:
	default:
		recalculator.logger.Warn("stats_queue_full_dropping_trigger",
			slog.String("book_id", bookID),
		)
	}
}

// QueueDepth reports the number of pending recompute triggers.
func (recalculator *Recalculator) QueueDepth() int {
	return len(recalculator.queue)
}

// # Recompute Logic

/*
Recompute recalculates and persists the derived metrics for one book.

Description: Aggregates the book's non-deleted reviews, derives the
popularity score, rounds both metrics to two decimals, and writes them
onto the book row. The cached stats for the book are invalidated after
a successful write.

Parameters:
  - context: context.Context
  - bookID: string

Returns:
  - error: apperr.NotFound if the book vanished, or storage errors
*/
func (recalculator *Recalculator) Recompute(context context.Context, bookID string) error {

	// Aggregate the active reviews for this book
	aggregate, err := recalculator.store.AggregateReviews(context, bookID)
	if err != nil {
		return fmt.Errorf("stats_aggregate_failed: %w", err)
	}

	popularity := Popularity(aggregate.ReviewCount, aggregate.AverageRating)

	// Persist rounded metrics onto the book row
	err = recalculator.store.SaveBookStats(
		context,
		bookID,
		aggregate.ReviewCount,
		Round2(aggregate.AverageRating),
		Round2(popularity),
	)
	if err != nil {
		return err
	}

	// Drop any cached stats so readers observe the fresh values
	if recalculator.invalidator != nil {
		if err := recalculator.invalidator.InvalidateBook(context, bookID); err != nil {
			recalculator.logger.Warn("stats_cache_invalidation_failed",
				slog.String("book_id", bookID),
				slog.String("error", err.Error()),
			)
		}
	}

	return nil
}

/*
RecomputeBatch recalculates statistics for a list of books.

Description: Processes each book independently and continues past
per-book failures, which are logged. Used by the full rebuild path
where one broken book must not abort the run.

Parameters:
  - context: context.Context
  - bookIDs: []string
*/
func (recalculator *Recalculator) RecomputeBatch(context context.Context, bookIDs []string) {
	recalculator.logger.Info("stats_batch_started", slog.Int("count", len(bookIDs)))

	for _, bookID := range bookIDs {
		if err := recalculator.Recompute(context, bookID); err != nil {
			recalculator.logger.Error("stats_batch_item_failed",
				slog.String("book_id", bookID),
				slog.String("error", err.Error()),
			)
		}
	}

	recalculator.logger.Info("stats_batch_finished", slog.Int("count", len(bookIDs)))
}

/*
RecomputeAll rebuilds statistics for every active book.

Description: Walks the books table in fixed-size ID pages and funnels
each page through the continue-on-error batch path.

Parameters:
  - context: context.Context

Returns:
  - error: Only pagination failures; per-book failures are logged
*/
func (recalculator *Recalculator) RecomputeAll(context context.Context) error {
	recalculator.logger.Info("stats_full_rebuild_started")

	offset := 0
	totalProcessed := 0

	for {
		bookIDs, err := recalculator.store.ActiveBookIDs(context, offset, constants.StatsRebuildPageSize)
		if err != nil {
			return fmt.Errorf("stats_rebuild_page_failed: %w", err)
		}

		if len(bookIDs) == 0 {
			break
		}

		recalculator.RecomputeBatch(context, bookIDs)

		totalProcessed += len(bookIDs)
		offset += constants.StatsRebuildPageSize

		recalculator.logger.Info("stats_full_rebuild_progress", slog.Int("processed", totalProcessed))
	}

	recalculator.logger.Info("stats_full_rebuild_finished", slog.Int("total", totalProcessed))
	return nil
}
