// Copyright (c) 2026 Hondana. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package stats_test

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/hondana/internal/platform/apperr"
	"github.com/taibuivan/hondana/internal/stats"
)

// fakeStore is an in-memory [stats.Store].
type fakeStore struct {
	mu         sync.Mutex
	aggregates map[string]stats.ReviewAggregate
	saved      map[string][3]float64 // count, avg, popularity
	bookIDs    []string
	failFor    map[string]error
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		aggregates: make(map[string]stats.ReviewAggregate),
		saved:      make(map[string][3]float64),
		failFor:    make(map[string]error),
	}
}

func (store *fakeStore) AggregateReviews(_ context.Context, bookID string) (stats.ReviewAggregate, error) {
	store.mu.Lock()
	defer store.mu.Unlock()
	if err, ok := store.failFor[bookID]; ok {
		return stats.ReviewAggregate{}, err
	}
	return store.aggregates[bookID], nil
}

func (store *fakeStore) SaveBookStats(_ context.Context, bookID string, count int64, avg, popularity float64) error {
	store.mu.Lock()
	defer store.mu.Unlock()
	store.saved[bookID] = [3]float64{float64(count), avg, popularity}
	return nil
}

func (store *fakeStore) ActiveBookIDs(_ context.Context, offset, limit int) ([]string, error) {
	store.mu.Lock()
	defer store.mu.Unlock()
	if offset >= len(store.bookIDs) {
		return nil, nil
	}
	end := offset + limit
	if end > len(store.bookIDs) {
		end = len(store.bookIDs)
	}
	return store.bookIDs[offset:end], nil
}

func (store *fakeStore) savedFor(bookID string) ([3]float64, bool) {
	store.mu.Lock()
	defer store.mu.Unlock()
	values, ok := store.saved[bookID]
	return values, ok
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

/*
TestPopularity verifies the weighted score formula and its zero cases.
*/
func TestPopularity(t *testing.T) {
	// 4.0 * ln(3) * 20 = 87.8889... rounds to 87.89
	assert.InDelta(t, 87.89, stats.Round2(stats.Popularity(2, 4.0)), 0.001)

	// 4.0 * ln(4) * 20 = 110.90
	assert.InDelta(t, 110.90, stats.Round2(stats.Popularity(3, 4.0)), 0.001)

	assert.Zero(t, stats.Popularity(0, 4.5))
	assert.Zero(t, stats.Popularity(12, 0.0))
}

/*
TestRecalculator_Recompute checks that rounded metrics land in the store.
*/
func TestRecalculator_Recompute(t *testing.T) {
	store := newFakeStore()
	store.aggregates["book-1"] = stats.ReviewAggregate{ReviewCount: 2, AverageRating: 4.005}

	recalculator := stats.NewRecalculator(store, nil, discardLogger())
	require.NoError(t, recalculator.Recompute(context.Background(), "book-1"))

	saved, ok := store.savedFor("book-1")
	require.True(t, ok)
	assert.Equal(t, 2.0, saved[0])
	assert.InDelta(t, 4.01, saved[1], 0.0001)
	assert.InDelta(t, stats.Round2(stats.Popularity(2, 4.005)), saved[2], 0.0001)
}

/*
TestRecalculator_RecomputeZeroReviews ensures empty books persist zeroes.
*/
func TestRecalculator_RecomputeZeroReviews(t *testing.T) {
	store := newFakeStore()

	recalculator := stats.NewRecalculator(store, nil, discardLogger())
	require.NoError(t, recalculator.Recompute(context.Background(), "book-empty"))

	saved, ok := store.savedFor("book-empty")
	require.True(t, ok)
	assert.Zero(t, saved[0])
	assert.Zero(t, saved[1])
	assert.Zero(t, saved[2])
}

/*
TestRecalculator_BatchContinuesOnError verifies a failing book does not
abort the rest of the batch.
*/
func TestRecalculator_BatchContinuesOnError(t *testing.T) {
	store := newFakeStore()
	store.aggregates["ok-1"] = stats.ReviewAggregate{ReviewCount: 1, AverageRating: 5}
	store.aggregates["ok-2"] = stats.ReviewAggregate{ReviewCount: 3, AverageRating: 3}
	store.failFor["broken"] = apperr.NotFound("Book")

	recalculator := stats.NewRecalculator(store, nil, discardLogger())
	recalculator.RecomputeBatch(context.Background(), []string{"ok-1", "broken", "ok-2"})

	_, ok1 := store.savedFor("ok-1")
	_, okBroken := store.savedFor("broken")
	_, ok2 := store.savedFor("ok-2")

	assert.True(t, ok1)
	assert.False(t, okBroken)
	assert.True(t, ok2)
}

/*
TestRecalculator_RecomputeAll walks the catalogue in pages.
*/
func TestRecalculator_RecomputeAll(t *testing.T) {
	store := newFakeStore()
	// 250 books spans three rebuild pages of 100.
	for i := 0; i < 250; i++ {
		store.bookIDs = append(store.bookIDs, fmt.Sprintf("book-%03d", i))
	}

	recalculator := stats.NewRecalculator(store, nil, discardLogger())
	require.NoError(t, recalculator.RecomputeAll(context.Background()))

	store.mu.Lock()
	defer store.mu.Unlock()
	assert.Len(t, store.saved, 250)
}

/*
TestRecalculator_WorkerDrainsQueue exercises the Enqueue/Start/Stop cycle.
*/
func TestRecalculator_WorkerDrainsQueue(t *testing.T) {
	store := newFakeStore()
	store.aggregates["book-q"] = stats.ReviewAggregate{ReviewCount: 4, AverageRating: 2.5}

	recalculator := stats.NewRecalculator(store, nil, discardLogger())
	recalculator.Start(context.Background())

	recalculator.Enqueue("book-q")
	recalculator.Stop()

	_, ok := store.savedFor("book-q")
	assert.True(t, ok)
}

/*
TestRecalculator_EnqueueNeverBlocks floods the queue far beyond capacity
without a running worker pool.
*/
func TestRecalculator_EnqueueNeverBlocks(t *testing.T) {
	store := newFakeStore()
	recalculator := stats.NewRecalculator(store, nil, discardLogger())

	for i := 0; i < 1000; i++ {
		recalculator.Enqueue("book-flood")
	}

	assert.LessOrEqual(t, recalculator.QueueDepth(), 256)
}
