// Copyright (c) 2026 Wayfarer Travel. All rights reserved.
// Author: dev@wayfarer.travel

/*
Package query translates list-endpoint query strings into SQL fragments.

Supported features, mirroring the API's public filtering contract:

  - Filtering:  ?difficulty=easy&price[lt]=1000&duration[gte]=5
  - Sorting:    ?sort=-price,ratings_average
  - Projection: ?fields=name,price,summary
  - Paging:     handled separately by pkg/pagination

# Safety

Column names are never taken from input verbatim: every referenced field
must appear in the caller-supplied allow-list, and values are always bound
as placeholder arguments. Unknown fields and operators are ignored rather
than rejected, matching the tolerant behavior of the public API.
*/
package query

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
)

// Comparison operators accepted inside bracket suffixes: price[gte]=500.
var operators = map[string]string{
	"gte": ">=",
	"gt":  ">",
	"lte": "<=",
	"lt":  "<",
}

// Parameters with pipeline meaning, never treated as filters.
var reserved = map[string]bool{
	"page":   true,
	"limit":  true,
	"sort":   true,
	"fields": true,
}

// Condition is a single parsed filter term.
type Condition struct {
	Column   string
	Operator string // SQL comparison operator
	Value    interface{}
}

// Sort is a single parsed ordering term.
type Sort struct {
	Column     string
	Descending bool
}

// Options is the parsed, allow-list-checked representation of a list query.
type Options struct {
	Conditions []Condition
	Sorts      []Sort
	Fields     []string
}

// Parse extracts filter, sort, and projection options from URL query values.
// allowed is the set of filterable/sortable/projectable column names.
func Parse(values url.Values, allowed map[string]bool) Options {
	var opts Options

	for rawKey, items := range values {
		if len(items) == 0 || reserved[rawKey] {
			continue
		}

		column, operator := splitKey(rawKey)
		if !allowed[column] {
			continue
		}

		for _, item := range items {
			if item == "" {
				continue
			}
			opts.Conditions = append(opts.Conditions, Condition{
				Column:   column,
				Operator: operator,
				Value:    coerce(item),
			})
		}
	}

	for _, term := range strings.Split(values.Get("sort"), ",") {
		term = strings.TrimSpace(term)
		if term == "" {
			continue
		}
		descending := strings.HasPrefix(term, "-")
		column := strings.TrimPrefix(term, "-")
		if !allowed[column] {
			continue
		}
		opts.Sorts = append(opts.Sorts, Sort{Column: column, Descending: descending})
	}

	for _, field := range strings.Split(values.Get("fields"), ",") {
		field = strings.TrimSpace(field)
		if field != "" && allowed[field] {
			opts.Fields = append(opts.Fields, field)
		}
	}

	return opts
}

// WhereClause renders the conditions as an AND-joined SQL fragment with
// numbered placeholders starting at startArg. It returns an empty string
// when no conditions apply.
func (o Options) WhereClause(startArg int) (string, []interface{}) {
	if len(o.Conditions) == 0 {
		return "", nil
	}

	terms := make([]string, 0, len(o.Conditions))
	args := make([]interface{}, 0, len(o.Conditions))

	for i, c := range o.Conditions {
		terms = append(terms, fmt.Sprintf("%s %s $%d", c.Column, c.Operator, startArg+i))
		args = append(args, c.Value)
	}

	return strings.Join(terms, " AND "), args
}

// OrderByClause renders the sort terms, falling back to the given default
// ordering (e.g. "created_at DESC") when none were requested.
func (o Options) OrderByClause(fallback string) string {
	if len(o.Sorts) == 0 {
		return fallback
	}

	terms := make([]string, 0, len(o.Sorts))
	for _, s := range o.Sorts {
		direction := "ASC"
		if s.Descending {
			direction = "DESC"
		}
		terms = append(terms, s.Column+" "+direction)
	}

	return strings.Join(terms, ", ")
}

// SelectColumns returns the projected column list, or defaults when the
// request did not narrow the projection. Mandatory columns (e.g. "id") can
// be forced by listing them in always.
func (o Options) SelectColumns(defaults []string, always ...string) []string {
	if len(o.Fields) == 0 {
		return defaults
	}

	seen := make(map[string]bool, len(always)+len(o.Fields))
	columns := make([]string, 0, len(always)+len(o.Fields))

	for _, col := range always {
		if !seen[col] {
			seen[col] = true
			columns = append(columns, col)
		}
	}
	for _, col := range o.Fields {
		if !seen[col] {
			seen[col] = true
			columns = append(columns, col)
		}
	}

	return columns
}

// splitKey separates "price[gte]" into ("price", ">="); a bare key maps to
// equality.
func splitKey(rawKey string) (column, operator string) {
	open := strings.IndexByte(rawKey, '[')
	if open > 0 && strings.HasSuffix(rawKey, "]") {
		if op, ok := operators[rawKey[open+1:len(rawKey)-1]]; ok {
			return rawKey[:open], op
		}
		return rawKey[:open], "="
	}
	return rawKey, "="
}

// coerce converts a filter value to a numeric type when possible so that
// comparisons against numeric columns bind with the right argument type.
func coerce(raw string) interface{} {
	if n, err := strconv.ParseInt(raw, 10, 64); err == nil {
		return n
	}
	if f, err := strconv.ParseFloat(raw, 64); err == nil {
		return f
	}
	return raw
}
