// Copyright (c) 2026 Hondana. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package stats maintains the derived rating metrics stored on each book.

Every review mutation changes a book's review count, average rating, and
popularity score. Rather than recomputing these on every read, the package
recalculates them from the reviews table and persists the result onto the
book row, either one book at a time (triggered after a review write) or in
bulk (admin-initiated full rebuild).

# Architecture

  - Recalculator: Owns the recompute logic and a bounded background queue.
  - Store: Postgres access for aggregates and stat persistence.
  - Cache: Redis-backed stats cache shared with the read endpoints.
*/
package stats

import "math"

// ReviewAggregate holds the raw aggregate over a book's active reviews.
type ReviewAggregate struct {
	ReviewCount   int64
	AverageRating float64
}

// ReviewStats is the public review statistics payload for a book.
type ReviewStats struct {
	BookID        string  `json:"bookId"`
	ReviewCount   int64   `json:"reviewCount"`
	AverageRating float64 `json:"averageRating"`
}

// FavoriteStats is the public favorite statistics payload for a book.
type FavoriteStats struct {
	BookID        string `json:"bookId"`
	FavoriteCount int64  `json:"favoriteCount"`
}

// Popularity computes the weighted popularity score for a book.
//
// The formula is: averageRating * ln(reviewCount + 1) * 20, yielding scores
// roughly in the 0-100 range for a five-star rating scale. Books with no
// reviews or a zero average score exactly 0.
func Popularity(reviewCount int64, averageRating float64) float64 {
	if reviewCount == 0 || averageRating == 0.0 {
		return 0.0
	}

	logWeight := math.Log(float64(reviewCount) + 1)
	return averageRating * logWeight * 20
}

// Round2 rounds a metric to two decimal places before persistence.
func Round2(value float64) float64 {
	return math.Round(value*100.0) / 100.0
}
