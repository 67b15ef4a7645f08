// Copyright (c) 2026 Wayfarer Travel. All rights reserved.
// Author: dev@wayfarer.travel

package slug_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/wayfarer-travel/wayfarer/pkg/slug"
)

/*
TestFrom covers lowercasing, accent stripping, punctuation replacement,
and hyphen hygiene.
*/
func TestFrom(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"simple_title", "The Forest Hiker", "the-forest-hiker"},
		{"already_slug", "the-sea-explorer", "the-sea-explorer"},
		{"accents_stripped", "Château de Provence", "chateau-de-provence"},
		{"punctuation_replaced", "Hiking, Camping & More!", "hiking-camping-more"},
		{"multiple_spaces_collapsed", "The   Snow    Adventurer", "the-snow-adventurer"},
		{"leading_trailing_trimmed", "  --City Wanderer--  ", "city-wanderer"},
		{"digits_kept", "Top 5 Tours 2026", "top-5-tours-2026"},
		{"empty", "", ""},
		{"only_punctuation", "!!!", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, slug.From(tt.input))
		})
	}
}
