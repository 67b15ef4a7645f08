// Copyright (c) 2026 Wayfarer Travel. All rights reserved.
// Author: dev@wayfarer.travel

/*
Package review implements tour reviews: creation and reads nested under a
tour, plus the derived ratings aggregates on the parent tour.

One review per (tour, user) pair is enforced by a unique constraint; every
review write recomputes the tour's ratings_average and ratings_quantity in
the same transaction.
*/
package review

import (
	"time"
)

const (
	MinRating = 1
	MaxRating = 5
)

// Review is a user's rating of a tour.
type Review struct {
	ID     string `json:"id"`
	TourID string `json:"tour_id"`
	UserID string `json:"user_id"`

	Rating int    `json:"rating"`
	Review string `json:"review"`

	// UserName denormalizes the author for list responses.
	UserName string `json:"user_name,omitempty"`

	CreatedAt time.Time `json:"created_at"`
}
