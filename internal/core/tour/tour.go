// Copyright (c) 2026 Wayfarer Travel. All rights reserved.
// Author: dev@wayfarer.travel

/*
Package tour implements the tour catalog: CRUD over tours, the public list
query features (filtering, sorting, projection, paging), and the reporting
aggregations (difficulty stats, monthly departure plan).
*/
package tour

import (
	"time"
)

// # Catalog Constraints

const (
	MinNameLength = 10
	MaxNameLength = 40

	MinRating = 1.0
	MaxRating = 5.0

	// DefaultRatingsAverage seeds a new tour before any review exists.
	DefaultRatingsAverage = 4.5
)

// Difficulty levels form a closed set.
const (
	DifficultyEasy      = "easy"
	DifficultyMedium    = "medium"
	DifficultyDifficult = "difficult"
)

// Difficulties enumerates the accepted difficulty values.
var Difficulties = []string{DifficultyEasy, DifficultyMedium, DifficultyDifficult}

// # Domain Entity

// Tour is a bookable trip in the catalog.
type Tour struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Slug         string `json:"slug"`
	Duration     int    `json:"duration"`
	MaxGroupSize int    `json:"max_group_size"`
	Difficulty   string `json:"difficulty"`

	// Ratings aggregates are derived from reviews and recomputed on every
	// review write; they are never writable through the tour API.
	RatingsAverage  float64 `json:"ratings_average"`
	RatingsQuantity int     `json:"ratings_quantity"`

	Price         float64  `json:"price"`
	PriceDiscount *float64 `json:"price_discount,omitempty"`

	Summary     string      `json:"summary"`
	Description string      `json:"description,omitempty"`
	ImageCover  string      `json:"image_cover,omitempty"`
	StartDates  []time.Time `json:"start_dates,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Stat is one row of the difficulty-grouped catalog report.
type Stat struct {
	Difficulty string  `json:"difficulty"`
	NumTours   int     `json:"num_tours"`
	NumRatings int     `json:"num_ratings"`
	AvgRating  float64 `json:"avg_rating"`
	AvgPrice   float64 `json:"avg_price"`
	MinPrice   float64 `json:"min_price"`
	MaxPrice   float64 `json:"max_price"`
}

// MonthlyPlanEntry is one month of the departure plan for a year: how many
// tours start that month and which ones.
type MonthlyPlanEntry struct {
	Month         int      `json:"month"`
	NumTourStarts int      `json:"num_tour_starts"`
	Tours         []string `json:"tours"`
}

// ListedColumns is the allow-list for public query features: only these
// column names may appear in filters, sort terms, and projections.
var ListedColumns = map[string]bool{
	"name":             true,
	"slug":             true,
	"duration":         true,
	"max_group_size":   true,
	"difficulty":       true,
	"ratings_average":  true,
	"ratings_quantity": true,
	"price":            true,
	"summary":          true,
	"image_cover":      true,
	"created_at":       true,
}
