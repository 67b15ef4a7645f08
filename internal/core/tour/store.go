// Copyright (c) 2026 Wayfarer Travel. All rights reserved.
// Author: dev@wayfarer.travel

package tour

import (
	"context"
	"time"

	"github.com/wayfarer-travel/wayfarer/pkg/pagination"
	"github.com/wayfarer-travel/wayfarer/pkg/query"
)

// TourUpdate carries the mutable tour fields. Nil means "leave unchanged".
type TourUpdate struct {
	Name          *string  `json:"name"`
	Duration      *int     `json:"duration"`
	MaxGroupSize  *int     `json:"max_group_size"`
	Difficulty    *string  `json:"difficulty"`
	Price         *float64 `json:"price"`
	PriceDiscount *float64 `json:"price_discount"`
	Summary       *string  `json:"summary"`
	Description   *string  `json:"description"`
	ImageCover    *string  `json:"image_cover"`
	// StartDates replaces the whole set when non-nil.
	StartDates []time.Time `json:"start_dates"`
}

// TourRepository is the persistence boundary for the catalog.
type TourRepository interface {
	Create(ctx context.Context, tour *Tour) error
	FindByID(ctx context.Context, id string) (*Tour, error)

	// List applies the parsed query options (filter, sort, projection) and
	// pagination, returning projected rows plus the filtered total.
	List(ctx context.Context, opts query.Options, params pagination.Params) ([]map[string]interface{}, int, error)

	Update(ctx context.Context, id string, update TourUpdate, slug *string) (*Tour, error)
	Delete(ctx context.Context, id string) error

	// Stats aggregates the catalog grouped by difficulty.
	Stats(ctx context.Context) ([]Stat, error)

	// MonthlyPlan expands start dates for the given year into per-month
	// departure counts.
	MonthlyPlan(ctx context.Context, year int) ([]MonthlyPlanEntry, error)
}
