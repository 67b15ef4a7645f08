// Copyright (c) 2026 Wayfarer Travel. All rights reserved.
// Author: dev@wayfarer.travel

// Command seed imports development fixture data into the tours table, or
// wipes it.
//
// Usage:
//
//	seed -import [-file ./data/tours.json]
//	seed -delete
//
// It reuses the production repository, so seeded rows go through the same
// validation-free persistence path as the API (slug generation included).
package main

import (
	"context"
	"encoding/json"
	"flag"
	"log/slog"
	"os"
	"time"

	"github.com/wayfarer-travel/wayfarer/internal/core/tour"
	"github.com/wayfarer-travel/wayfarer/internal/platform/config"
	"github.com/wayfarer-travel/wayfarer/internal/platform/migration"
	pgstore "github.com/wayfarer-travel/wayfarer/internal/platform/postgres"
	"github.com/wayfarer-travel/wayfarer/pkg/pointer"
	"github.com/wayfarer-travel/wayfarer/pkg/slug"
)

// seedTour is the fixture-file shape; start dates are RFC 3339 strings.
type seedTour struct {
	Name          string    `json:"name"`
	Duration      int       `json:"duration"`
	MaxGroupSize  int       `json:"max_group_size"`
	Difficulty    string    `json:"difficulty"`
	Price         float64   `json:"price"`
	PriceDiscount *float64  `json:"price_discount"`
	Summary       string    `json:"summary"`
	Description   string    `json:"description"`
	ImageCover    string    `json:"image_cover"`
	StartDates    []string  `json:"start_dates"`
	RatingsAvg    *float64  `json:"ratings_average"`
	RatingsQty    int       `json:"ratings_quantity"`
}

func main() {
	doImport := flag.Bool("import", false, "import fixture tours")
	doDelete := flag.Bool("delete", false, "delete all tours")
	file := flag.String("file", "./data/tours.json", "fixture file path")
	flag.Parse()

	log := slog.New(slog.NewJSONHandler(os.Stdout, nil)).With(slog.String("app", "wayfarer-seed"))

	if *doImport == *doDelete {
		log.Error("exactly one of -import or -delete is required")
		os.Exit(2)
	}

	cfg, err := config.Load()
	must(log, err, "load configuration")

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	pool, err := pgstore.NewPool(ctx, cfg.DatabaseURL, log)
	must(log, err, "connect to postgres")
	defer pool.Close()

	must(log, migration.RunUp(cfg.DatabaseURL, cfg.MigrationPath, log), "run migrations")

	if *doDelete {
		tag, err := pool.Exec(ctx, `DELETE FROM tours`)
		must(log, err, "delete tours")
		log.Info("tours deleted", slog.Int64("count", tag.RowsAffected()))
		return
	}

	raw, err := os.ReadFile(*file)
	must(log, err, "read fixture file")

	var fixtures []seedTour
	must(log, json.Unmarshal(raw, &fixtures), "parse fixture file")

	repo := tour.NewPostgresTourRepository(pool)
	for _, f := range fixtures {
		t := &tour.Tour{
			Name:            f.Name,
			Slug:            slug.From(f.Name),
			Duration:        f.Duration,
			MaxGroupSize:    f.MaxGroupSize,
			Difficulty:      f.Difficulty,
			RatingsAverage:  pointer.Fallback(f.RatingsAvg, tour.DefaultRatingsAverage),
			RatingsQuantity: f.RatingsQty,
			Price:           f.Price,
			PriceDiscount:   f.PriceDiscount,
			Summary:         f.Summary,
			Description:     f.Description,
			ImageCover:      f.ImageCover,
			StartDates:      parseDates(log, f.Name, f.StartDates),
		}
		must(log, repo.Create(ctx, t), "insert tour "+f.Name)
	}

	log.Info("tours imported", slog.Int("count", len(fixtures)))
}

func parseDates(log *slog.Logger, name string, raw []string) []time.Time {
	dates := make([]time.Time, 0, len(raw))
	for _, r := range raw {
		d, err := time.Parse(time.RFC3339, r)
		if err != nil {
			log.Warn("skipping unparsable start date",
				slog.String("tour", name), slog.String("value", r))
			continue
		}
		dates = append(dates, d)
	}
	return dates
}

func must(log *slog.Logger, err error, context string) {
	if err != nil {
		log.Error("seed failure", slog.String("context", context), slog.Any("error", err))
		os.Exit(1)
	}
}
