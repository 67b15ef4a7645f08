// Copyright (c) 2026 Wayfarer Travel. All rights reserved.
// Author: dev@wayfarer.travel

package tour

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/wayfarer-travel/wayfarer/internal/platform/dberr"
	"github.com/wayfarer-travel/wayfarer/pkg/pagination"
	"github.com/wayfarer-travel/wayfarer/pkg/query"
	"github.com/wayfarer-travel/wayfarer/pkg/uuid"
)

const tourColumns = `
	id, name, slug, duration, max_group_size, difficulty,
	ratings_average, ratings_quantity, price, price_discount,
	summary, description, image_cover, start_dates, created_at, updated_at`

// defaultListColumns is the projection used when the request does not
// narrow fields. Long-text columns stay out of list responses.
var defaultListColumns = []string{
	"id", "name", "slug", "duration", "max_group_size", "difficulty",
	"ratings_average", "ratings_quantity", "price", "summary", "image_cover",
}

// PostgresTourRepository implements TourRepository on top of pgx.
type PostgresTourRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresTourRepository constructs a repository bound to the given pool.
func NewPostgresTourRepository(pool *pgxpool.Pool) *PostgresTourRepository {
	return &PostgresTourRepository{pool: pool}
}

func (r *PostgresTourRepository) Create(ctx context.Context, t *Tour) error {
	q := `
		INSERT INTO tours (
			id, name, slug, duration, max_group_size, difficulty,
			ratings_average, ratings_quantity, price, price_discount,
			summary, description, image_cover, start_dates
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
		RETURNING created_at, updated_at`

	t.ID = uuid.New()
	err := r.pool.QueryRow(ctx, q,
		t.ID, t.Name, t.Slug, t.Duration, t.MaxGroupSize, t.Difficulty,
		t.RatingsAverage, t.RatingsQuantity, t.Price, t.PriceDiscount,
		t.Summary, t.Description, t.ImageCover, t.StartDates,
	).Scan(&t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		return dberr.Wrap(err, "Tour")
	}
	return nil
}

func (r *PostgresTourRepository) FindByID(ctx context.Context, id string) (*Tour, error) {
	q := `SELECT ` + tourColumns + ` FROM tours WHERE id = $1`

	rows, err := r.pool.Query(ctx, q, id)
	if err != nil {
		return nil, dberr.Wrap(err, "Tour")
	}
	t, err := pgx.CollectExactlyOneRow(rows, scanTour)
	if err != nil {
		return nil, dberr.Wrap(err, "Tour")
	}
	return t, nil
}

func (r *PostgresTourRepository) List(ctx context.Context, opts query.Options, params pagination.Params) ([]map[string]interface{}, int, error) {
	where, args := opts.WhereClause(1)
	filter := ""
	if where != "" {
		filter = " WHERE " + where
	}

	var total int
	if err := r.pool.QueryRow(ctx, `SELECT count(*) FROM tours`+filter, args...).Scan(&total); err != nil {
		return nil, 0, dberr.Wrap(err, "Tour")
	}

	columns := opts.SelectColumns(defaultListColumns, "id")
	q := fmt.Sprintf(`SELECT %s FROM tours%s ORDER BY %s LIMIT $%d OFFSET $%d`,
		strings.Join(columns, ", "), filter,
		opts.OrderByClause("created_at DESC"),
		len(args)+1, len(args)+2)
	args = append(args, params.Limit, params.Offset())

	rows, err := r.pool.Query(ctx, q, args...)
	if err != nil {
		return nil, 0, dberr.Wrap(err, "Tour")
	}
	items, err := pgx.CollectRows(rows, pgx.RowToMap)
	if err != nil {
		return nil, 0, dberr.Wrap(err, "Tour")
	}
	return items, total, nil
}

func (r *PostgresTourRepository) Update(ctx context.Context, id string, update TourUpdate, slug *string) (*Tour, error) {
	var (
		set  []string
		args []interface{}
	)
	add := func(column string, value interface{}) {
		args = append(args, value)
		set = append(set, fmt.Sprintf("%s = $%d", column, len(args)))
	}

	if update.Name != nil {
		add("name", *update.Name)
	}
	if slug != nil {
		add("slug", *slug)
	}
	if update.Duration != nil {
		add("duration", *update.Duration)
	}
	if update.MaxGroupSize != nil {
		add("max_group_size", *update.MaxGroupSize)
	}
	if update.Difficulty != nil {
		add("difficulty", *update.Difficulty)
	}
	if update.Price != nil {
		add("price", *update.Price)
	}
	if update.PriceDiscount != nil {
		add("price_discount", *update.PriceDiscount)
	}
	if update.Summary != nil {
		add("summary", *update.Summary)
	}
	if update.Description != nil {
		add("description", *update.Description)
	}
	if update.ImageCover != nil {
		add("image_cover", *update.ImageCover)
	}
	if update.StartDates != nil {
		add("start_dates", update.StartDates)
	}

	if len(set) == 0 {
		return r.FindByID(ctx, id)
	}

	set = append(set, "updated_at = now()")
	args = append(args, id)
	q := fmt.Sprintf(`UPDATE tours SET %s WHERE id = $%d RETURNING `+tourColumns,
		strings.Join(set, ", "), len(args))

	rows, err := r.pool.Query(ctx, q, args...)
	if err != nil {
		return nil, dberr.Wrap(err, "Tour")
	}
	t, err := pgx.CollectExactlyOneRow(rows, scanTour)
	if err != nil {
		return nil, dberr.Wrap(err, "Tour")
	}
	return t, nil
}

func (r *PostgresTourRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM tours WHERE id = $1`, id)
	if err != nil {
		return dberr.Wrap(err, "Tour")
	}
	if tag.RowsAffected() == 0 {
		return dberr.Wrap(pgx.ErrNoRows, "Tour")
	}
	return nil
}

func (r *PostgresTourRepository) Stats(ctx context.Context) ([]Stat, error) {
	q := `
		SELECT difficulty,
		       count(*)                            AS num_tours,
		       coalesce(sum(ratings_quantity), 0)  AS num_ratings,
		       round(avg(ratings_average)::numeric, 2)::float8 AS avg_rating,
		       round(avg(price)::numeric, 2)::float8           AS avg_price,
		       min(price)                          AS min_price,
		       max(price)                          AS max_price
		FROM tours
		WHERE ratings_average >= $1
		GROUP BY difficulty
		ORDER BY avg_price ASC`

	rows, err := r.pool.Query(ctx, q, MinRating)
	if err != nil {
		return nil, dberr.Wrap(err, "Tour")
	}
	stats, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (Stat, error) {
		var s Stat
		err := row.Scan(&s.Difficulty, &s.NumTours, &s.NumRatings,
			&s.AvgRating, &s.AvgPrice, &s.MinPrice, &s.MaxPrice)
		return s, err
	})
	if err != nil {
		return nil, dberr.Wrap(err, "Tour")
	}
	return stats, nil
}

func (r *PostgresTourRepository) MonthlyPlan(ctx context.Context, year int) ([]MonthlyPlanEntry, error) {
	// unnest expands each tour into one row per start date, the SQL
	// equivalent of the document-store $unwind stage.
	q := `
		SELECT extract(month FROM d)::int AS month,
		       count(*)                   AS num_tour_starts,
		       array_agg(name ORDER BY name) AS tours
		FROM tours, unnest(start_dates) AS d
		WHERE d >= make_date($1, 1, 1)
		  AND d < make_date($1 + 1, 1, 1)
		GROUP BY month
		ORDER BY num_tour_starts DESC, month ASC`

	rows, err := r.pool.Query(ctx, q, year)
	if err != nil {
		return nil, dberr.Wrap(err, "Tour")
	}
	plan, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (MonthlyPlanEntry, error) {
		var e MonthlyPlanEntry
		err := row.Scan(&e.Month, &e.NumTourStarts, &e.Tours)
		return e, err
	})
	if err != nil {
		return nil, dberr.Wrap(err, "Tour")
	}
	return plan, nil
}

func scanTour(row pgx.CollectableRow) (*Tour, error) {
	var (
		t           Tour
		description *string
		imageCover  *string
	)
	err := row.Scan(
		&t.ID, &t.Name, &t.Slug, &t.Duration, &t.MaxGroupSize, &t.Difficulty,
		&t.RatingsAverage, &t.RatingsQuantity, &t.Price, &t.PriceDiscount,
		&t.Summary, &description, &imageCover, &t.StartDates,
		&t.CreatedAt, &t.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if description != nil {
		t.Description = *description
	}
	if imageCover != nil {
		t.ImageCover = *imageCover
	}
	return &t, nil
}
