// Copyright (c) 2026 Wayfarer Travel. All rights reserved.
// Author: dev@wayfarer.travel

package query_test

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wayfarer-travel/wayfarer/pkg/query"
)

var allowed = map[string]bool{
	"name":            true,
	"price":           true,
	"duration":        true,
	"difficulty":      true,
	"ratings_average": true,
}

/*
TestParse_Filters covers bracket operators, equality, numeric coercion,
and the allow-list gate.
*/
func TestParse_Filters(t *testing.T) {
	t.Run("equality_and_operators", func(t *testing.T) {
		values, err := url.ParseQuery("difficulty=easy&price[lt]=1000&duration[gte]=5")
		require.NoError(t, err)

		opts := query.Parse(values, allowed)
		require.Len(t, opts.Conditions, 3)

		byColumn := map[string]query.Condition{}
		for _, c := range opts.Conditions {
			byColumn[c.Column] = c
		}

		assert.Equal(t, "=", byColumn["difficulty"].Operator)
		assert.Equal(t, "easy", byColumn["difficulty"].Value)

		assert.Equal(t, "<", byColumn["price"].Operator)
		assert.Equal(t, int64(1000), byColumn["price"].Value, "integer literals bind as int64")

		assert.Equal(t, ">=", byColumn["duration"].Operator)
	})

	t.Run("float_coercion", func(t *testing.T) {
		values := url.Values{"ratings_average[gte]": {"4.5"}}
		opts := query.Parse(values, allowed)
		require.Len(t, opts.Conditions, 1)
		assert.Equal(t, 4.5, opts.Conditions[0].Value)
	})

	t.Run("unknown_column_ignored", func(t *testing.T) {
		values := url.Values{"password": {"x"}, "secret[gte]": {"1"}}
		opts := query.Parse(values, allowed)
		assert.Empty(t, opts.Conditions)
	})

	t.Run("unknown_operator_falls_back_to_equality", func(t *testing.T) {
		values := url.Values{"price[like]": {"500"}}
		opts := query.Parse(values, allowed)
		require.Len(t, opts.Conditions, 1)
		assert.Equal(t, "=", opts.Conditions[0].Operator)
	})

	t.Run("reserved_keys_skipped", func(t *testing.T) {
		values := url.Values{
			"page":   {"2"},
			"limit":  {"10"},
			"sort":   {"price"},
			"fields": {"name"},
		}
		opts := query.Parse(values, allowed)
		assert.Empty(t, opts.Conditions)
	})

	t.Run("empty_value_skipped", func(t *testing.T) {
		values := url.Values{"difficulty": {""}}
		opts := query.Parse(values, allowed)
		assert.Empty(t, opts.Conditions)
	})
}

/*
TestParse_Sort covers ascending, descending, and disallowed sort terms.
*/
func TestParse_Sort(t *testing.T) {
	values := url.Values{"sort": {"-ratings_average,price,oops"}}
	opts := query.Parse(values, allowed)

	require.Len(t, opts.Sorts, 2)
	assert.Equal(t, "ratings_average", opts.Sorts[0].Column)
	assert.True(t, opts.Sorts[0].Descending)
	assert.Equal(t, "price", opts.Sorts[1].Column)
	assert.False(t, opts.Sorts[1].Descending)
}

/*
TestParse_Fields covers projection with allow-list filtering and
whitespace tolerance.
*/
func TestParse_Fields(t *testing.T) {
	values := url.Values{"fields": {"name, price ,password"}}
	opts := query.Parse(values, allowed)

	assert.Equal(t, []string{"name", "price"}, opts.Fields)
}

/*
TestWhereClause verifies placeholder numbering and argument ordering.
*/
func TestWhereClause(t *testing.T) {
	t.Run("empty", func(t *testing.T) {
		clause, args := query.Options{}.WhereClause(1)
		assert.Empty(t, clause)
		assert.Nil(t, args)
	})

	t.Run("numbered_from_start_arg", func(t *testing.T) {
		opts := query.Options{Conditions: []query.Condition{
			{Column: "difficulty", Operator: "=", Value: "easy"},
			{Column: "price", Operator: "<", Value: int64(1000)},
		}}

		clause, args := opts.WhereClause(3)
		assert.Equal(t, "difficulty = $3 AND price < $4", clause)
		assert.Equal(t, []interface{}{"easy", int64(1000)}, args)
	})
}

/*
TestOrderByClause verifies direction rendering and the fallback.
*/
func TestOrderByClause(t *testing.T) {
	t.Run("fallback", func(t *testing.T) {
		assert.Equal(t, "created_at DESC", query.Options{}.OrderByClause("created_at DESC"))
	})

	t.Run("mixed_directions", func(t *testing.T) {
		opts := query.Options{Sorts: []query.Sort{
			{Column: "ratings_average", Descending: true},
			{Column: "price"},
		}}
		assert.Equal(t, "ratings_average DESC, price ASC", opts.OrderByClause("created_at DESC"))
	})
}

/*
TestSelectColumns verifies projection defaults, forced columns, and
deduplication.
*/
func TestSelectColumns(t *testing.T) {
	defaults := []string{"id", "name", "price"}

	t.Run("defaults_when_no_projection", func(t *testing.T) {
		assert.Equal(t, defaults, query.Options{}.SelectColumns(defaults, "id"))
	})

	t.Run("forced_columns_lead", func(t *testing.T) {
		opts := query.Options{Fields: []string{"name", "price"}}
		assert.Equal(t, []string{"id", "name", "price"}, opts.SelectColumns(defaults, "id"))
	})

	t.Run("duplicates_collapsed", func(t *testing.T) {
		opts := query.Options{Fields: []string{"id", "name", "name"}}
		assert.Equal(t, []string{"id", "name"}, opts.SelectColumns(defaults, "id"))
	})
}
