// Copyright (c) 2026 Wayfarer Travel. All rights reserved.
// Author: dev@wayfarer.travel

package review

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/wayfarer-travel/wayfarer/internal/platform/dberr"
	"github.com/wayfarer-travel/wayfarer/pkg/pagination"
	"github.com/wayfarer-travel/wayfarer/pkg/uuid"
)

// PostgresReviewRepository implements ReviewRepository on top of pgx.
type PostgresReviewRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresReviewRepository constructs a repository bound to the given pool.
func NewPostgresReviewRepository(pool *pgxpool.Pool) *PostgresReviewRepository {
	return &PostgresReviewRepository{pool: pool}
}

func (r *PostgresReviewRepository) Create(ctx context.Context, review *Review) error {
	review.ID = uuid.New()

	err := pgx.BeginFunc(ctx, r.pool, func(tx pgx.Tx) error {
		insert := `
			INSERT INTO reviews (id, tour_id, user_id, rating, review)
			VALUES ($1, $2, $3, $4, $5)
			RETURNING created_at`

		err := tx.QueryRow(ctx, insert,
			review.ID, review.TourID, review.UserID, review.Rating, review.Review,
		).Scan(&review.CreatedAt)
		if err != nil {
			return err
		}
		return recalcTourRatings(ctx, tx, review.TourID)
	})
	if err != nil {
		return dberr.Wrap(err, "Review")
	}
	return nil
}

func (r *PostgresReviewRepository) FindByID(ctx context.Context, id string) (*Review, error) {
	q := `
		SELECT r.id, r.tour_id, r.user_id, r.rating, r.review, u.name, r.created_at
		FROM reviews r
		JOIN users u ON u.id = r.user_id
		WHERE r.id = $1`

	rows, err := r.pool.Query(ctx, q, id)
	if err != nil {
		return nil, dberr.Wrap(err, "Review")
	}
	review, err := pgx.CollectExactlyOneRow(rows, scanReview)
	if err != nil {
		return nil, dberr.Wrap(err, "Review")
	}
	return review, nil
}

func (r *PostgresReviewRepository) ListByTour(ctx context.Context, tourID string, params pagination.Params) ([]Review, int, error) {
	var total int
	if err := r.pool.QueryRow(ctx, `SELECT count(*) FROM reviews WHERE tour_id = $1`, tourID).Scan(&total); err != nil {
		return nil, 0, dberr.Wrap(err, "Review")
	}

	q := `
		SELECT r.id, r.tour_id, r.user_id, r.rating, r.review, u.name, r.created_at
		FROM reviews r
		JOIN users u ON u.id = r.user_id
		WHERE r.tour_id = $1
		ORDER BY r.created_at DESC
		LIMIT $2 OFFSET $3`

	rows, err := r.pool.Query(ctx, q, tourID, params.Limit, params.Offset())
	if err != nil {
		return nil, 0, dberr.Wrap(err, "Review")
	}
	reviews, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (Review, error) {
		rv, err := scanReview(row)
		if err != nil {
			return Review{}, err
		}
		return *rv, nil
	})
	if err != nil {
		return nil, 0, dberr.Wrap(err, "Review")
	}
	return reviews, total, nil
}

func (r *PostgresReviewRepository) Delete(ctx context.Context, id string) error {
	err := pgx.BeginFunc(ctx, r.pool, func(tx pgx.Tx) error {
		var tourID string
		if err := tx.QueryRow(ctx, `DELETE FROM reviews WHERE id = $1 RETURNING tour_id`, id).Scan(&tourID); err != nil {
			return err
		}
		return recalcTourRatings(ctx, tx, tourID)
	})
	if err != nil {
		return dberr.Wrap(err, "Review")
	}
	return nil
}

// recalcTourRatings rebuilds the aggregates from the surviving reviews. A
// tour with no reviews falls back to the catalog default average.
func recalcTourRatings(ctx context.Context, tx pgx.Tx, tourID string) error {
	update := `
		UPDATE tours SET
			ratings_quantity = agg.qty,
			ratings_average  = agg.avg,
			updated_at       = now()
		FROM (
			SELECT count(*)::int AS qty,
			       coalesce(round(avg(rating)::numeric, 1)::float8, 4.5) AS avg
			FROM reviews
			WHERE tour_id = $1
		) agg
		WHERE tours.id = $1`

	_, err := tx.Exec(ctx, update, tourID)
	return err
}

func scanReview(row pgx.CollectableRow) (*Review, error) {
	var rv Review
	err := row.Scan(&rv.ID, &rv.TourID, &rv.UserID, &rv.Rating, &rv.Review,
		&rv.UserName, &rv.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &rv, nil
}
