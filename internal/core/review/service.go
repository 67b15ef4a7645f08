// Copyright (c) 2026 Wayfarer Travel. All rights reserved.
// Author: dev@wayfarer.travel

package review

import (
	"context"
	"log/slog"

	"github.com/wayfarer-travel/wayfarer/internal/platform/apperr"
	"github.com/wayfarer-travel/wayfarer/internal/platform/sec"
	"github.com/wayfarer-travel/wayfarer/internal/platform/validate"
	"github.com/wayfarer-travel/wayfarer/pkg/pagination"
)

// Service implements review operations on top of the repository.
type Service struct {
	reviews ReviewRepository
	logger  *slog.Logger
}

// NewService wires the review service.
func NewService(reviews ReviewRepository, logger *slog.Logger) *Service {
	return &Service{reviews: reviews, logger: logger}
}

// CreateInput carries the writable review fields. Tour and author come from
// the URL and the authenticated identity, never from the body.
type CreateInput struct {
	Rating int    `json:"rating"`
	Review string `json:"review"`
}

// Create persists a review by the given author on the given tour. A second
// review by the same author on the same tour surfaces as a conflict.
func (s *Service) Create(ctx context.Context, tourID, userID string, input CreateInput) (*Review, error) {
	v := &validate.Validator{}
	v.Range("rating", input.Rating, MinRating, MaxRating).
		Required("review", input.Review)
	if err := v.Err(); err != nil {
		return nil, err
	}

	review := &Review{
		TourID: tourID,
		UserID: userID,
		Rating: input.Rating,
		Review: input.Review,
	}
	if err := s.reviews.Create(ctx, review); err != nil {
		return nil, err
	}

	s.logger.InfoContext(ctx, "review created", "review_id", review.ID, "tour_id", tourID)
	return review, nil
}

// Get returns a review by ID.
func (s *Service) Get(ctx context.Context, id string) (*Review, error) {
	return s.reviews.FindByID(ctx, id)
}

// ListByTour returns a page of reviews for the given tour.
func (s *Service) ListByTour(ctx context.Context, tourID string, params pagination.Params) ([]Review, int, error) {
	return s.reviews.ListByTour(ctx, tourID, params)
}

// Delete removes a review. Only the author or an admin may delete it; the
// parent tour's aggregates are rebuilt in the same transaction.
func (s *Service) Delete(ctx context.Context, id string, actor *sec.Identity) error {
	review, err := s.reviews.FindByID(ctx, id)
	if err != nil {
		return err
	}

	if review.UserID != actor.ID && actor.Role != sec.RoleAdmin {
		return apperr.Forbidden("You do not have permission to perform this action")
	}

	if err := s.reviews.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.InfoContext(ctx, "review deleted", "review_id", id)
	return nil
}
