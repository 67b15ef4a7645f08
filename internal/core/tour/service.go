// Copyright (c) 2026 Wayfarer Travel. All rights reserved.
// Author: dev@wayfarer.travel

package tour

import (
	"context"
	"log/slog"
	"time"

	"github.com/wayfarer-travel/wayfarer/internal/platform/apperr"
	"github.com/wayfarer-travel/wayfarer/internal/platform/validate"
	"github.com/wayfarer-travel/wayfarer/pkg/pagination"
	"github.com/wayfarer-travel/wayfarer/pkg/query"
	"github.com/wayfarer-travel/wayfarer/pkg/slug"
)

// Service implements catalog operations on top of the repository.
type Service struct {
	tours  TourRepository
	logger *slog.Logger
}

// NewService wires the tour service.
func NewService(tours TourRepository, logger *slog.Logger) *Service {
	return &Service{tours: tours, logger: logger}
}

// CreateTourInput carries the writable fields for tour creation.
type CreateTourInput struct {
	Name          string      `json:"name"`
	Duration      int         `json:"duration"`
	MaxGroupSize  int         `json:"max_group_size"`
	Difficulty    string      `json:"difficulty"`
	Price         float64     `json:"price"`
	PriceDiscount *float64    `json:"price_discount"`
	Summary       string      `json:"summary"`
	Description   string      `json:"description"`
	ImageCover    string      `json:"image_cover"`
	StartDates    []time.Time `json:"start_dates"`
}

// Create validates and persists a new tour. The slug is derived from the
// name and the ratings aggregates start at their defaults.
func (s *Service) Create(ctx context.Context, input CreateTourInput) (*Tour, error) {
	v := &validate.Validator{}
	v.Required("name", input.Name).
		MinLen("name", input.Name, MinNameLength).
		MaxLen("name", input.Name, MaxNameLength).
		Positive("duration", float64(input.Duration)).
		Positive("max_group_size", float64(input.MaxGroupSize)).
		OneOf("difficulty", input.Difficulty, Difficulties...).
		Positive("price", input.Price).
		Required("summary", input.Summary)
	if input.PriceDiscount != nil {
		v.Custom("price_discount", *input.PriceDiscount >= input.Price,
			"Discount price should be below regular price")
	}
	if err := v.Err(); err != nil {
		return nil, err
	}

	t := &Tour{
		Name:           input.Name,
		Slug:           slug.From(input.Name),
		Duration:       input.Duration,
		MaxGroupSize:   input.MaxGroupSize,
		Difficulty:     input.Difficulty,
		RatingsAverage: DefaultRatingsAverage,
		Price:          input.Price,
		PriceDiscount:  input.PriceDiscount,
		Summary:        input.Summary,
		Description:    input.Description,
		ImageCover:     input.ImageCover,
		StartDates:     input.StartDates,
	}
	if err := s.tours.Create(ctx, t); err != nil {
		return nil, err
	}

	s.logger.InfoContext(ctx, "tour created", "tour_id", t.ID, "slug", t.Slug)
	return t, nil
}

// Get returns a tour by ID.
func (s *Service) Get(ctx context.Context, id string) (*Tour, error) {
	return s.tours.FindByID(ctx, id)
}

// List applies the public query features over the catalog.
func (s *Service) List(ctx context.Context, opts query.Options, params pagination.Params) ([]map[string]interface{}, int, error) {
	return s.tours.List(ctx, opts, params)
}

// Update validates and applies a partial tour update. A name change also
// regenerates the slug.
func (s *Service) Update(ctx context.Context, id string, update TourUpdate) (*Tour, error) {
	v := &validate.Validator{}
	if update.Name != nil {
		v.MinLen("name", *update.Name, MinNameLength).
			MaxLen("name", *update.Name, MaxNameLength)
	}
	if update.Duration != nil {
		v.Positive("duration", float64(*update.Duration))
	}
	if update.MaxGroupSize != nil {
		v.Positive("max_group_size", float64(*update.MaxGroupSize))
	}
	if update.Difficulty != nil {
		v.OneOf("difficulty", *update.Difficulty, Difficulties...)
	}
	if update.Price != nil {
		v.Positive("price", *update.Price)
	}
	if err := v.Err(); err != nil {
		return nil, err
	}

	// The discount invariant spans two fields; compare against the price
	// the row will have after the update.
	if update.PriceDiscount != nil {
		price := update.Price
		if price == nil {
			existing, err := s.tours.FindByID(ctx, id)
			if err != nil {
				return nil, err
			}
			price = &existing.Price
		}
		if *update.PriceDiscount >= *price {
			return nil, apperr.ValidationError("Validation failed", apperr.FieldError{
				Field:   "price_discount",
				Message: "Discount price should be below regular price",
			})
		}
	}

	var newSlug *string
	if update.Name != nil {
		generated := slug.From(*update.Name)
		newSlug = &generated
	}

	t, err := s.tours.Update(ctx, id, update, newSlug)
	if err != nil {
		return nil, err
	}

	s.logger.InfoContext(ctx, "tour updated", "tour_id", id)
	return t, nil
}

// Delete removes a tour from the catalog.
func (s *Service) Delete(ctx context.Context, id string) error {
	if err := s.tours.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.InfoContext(ctx, "tour deleted", "tour_id", id)
	return nil
}

// Stats returns the difficulty-grouped catalog report.
func (s *Service) Stats(ctx context.Context) ([]Stat, error) {
	return s.tours.Stats(ctx)
}

// MonthlyPlan returns the per-month departure plan for a year.
func (s *Service) MonthlyPlan(ctx context.Context, year int) ([]MonthlyPlanEntry, error) {
	if year < 1900 || year > 2200 {
		return nil, apperr.ValidationError("Please provide a valid year")
	}
	return s.tours.MonthlyPlan(ctx, year)
}
