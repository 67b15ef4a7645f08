// Copyright (c) 2026 Wayfarer Travel. All rights reserved.
// Author: dev@wayfarer.travel

package review

import (
	"context"

	"github.com/wayfarer-travel/wayfarer/pkg/pagination"
)

// ReviewRepository is the persistence boundary for reviews.
//
// Create and Delete also recompute the parent tour's ratings aggregates;
// the write and the recomputation commit atomically.
type ReviewRepository interface {
	Create(ctx context.Context, review *Review) error
	FindByID(ctx context.Context, id string) (*Review, error)
	ListByTour(ctx context.Context, tourID string, params pagination.Params) ([]Review, int, error)
	Delete(ctx context.Context, id string) error
}
