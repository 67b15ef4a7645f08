// Copyright (c) 2026 Wayfarer Travel. All rights reserved.
// Author: dev@wayfarer.travel

package sanitize_test

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wayfarer-travel/wayfarer/internal/platform/sanitize"
)

/*
TestString verifies script blocks are removed and markup is escaped.
*/
func TestString(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"plain", "Ada Lovelace", "Ada Lovelace"},
		{"script_block", "<script>alert(1)</script>Ada", "Ada"},
		{"script_mixed_case", "<SCRIPT src='x'>evil()</SCRIPT>ok", "ok"},
		{"markup_escaped", "a<b>c", "a&lt;b&gt;c"},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, sanitize.String(tt.input))
		})
	}
}

/*
TestUnsafeKey verifies datastore-operator key detection.
*/
func TestUnsafeKey(t *testing.T) {
	assert.True(t, sanitize.UnsafeKey("$gt"))
	assert.True(t, sanitize.UnsafeKey("email[$gt]"))
	assert.True(t, sanitize.UnsafeKey("a.b"))
	assert.False(t, sanitize.UnsafeKey("email"))
	assert.False(t, sanitize.UnsafeKey("price[gte]"))
}

/*
TestValue verifies recursive sanitization of decoded JSON structures,
dropping operator keys at any depth.
*/
func TestValue(t *testing.T) {
	input := map[string]interface{}{
		"name": "<script>x()</script>Ada",
		"$where": "1 == 1",
		"profile": map[string]interface{}{
			"bio":  "hello",
			"$set": map[string]interface{}{"role": "admin"},
		},
		"tags": []interface{}{"a", map[string]interface{}{"$gt": ""}},
	}

	cleaned, ok := sanitize.Value(input).(map[string]interface{})
	require.True(t, ok)

	assert.Equal(t, "Ada", cleaned["name"])
	assert.NotContains(t, cleaned, "$where")

	profile, ok := cleaned["profile"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "hello", profile["bio"])
	assert.NotContains(t, profile, "$set")

	tags, ok := cleaned["tags"].([]interface{})
	require.True(t, ok)
	require.Len(t, tags, 2)
	nested, ok := tags[1].(map[string]interface{})
	require.True(t, ok)
	assert.Empty(t, nested)
}

/*
TestQuery verifies query-string scrubbing drops unsafe keys and cleans
surviving values.
*/
func TestQuery(t *testing.T) {
	values := url.Values{
		"sort":       []string{"price"},
		"email[$gt]": []string{""},
		"name":       []string{"<script>a</script>Bob"},
	}

	cleaned := sanitize.Query(values)

	assert.Equal(t, "price", cleaned.Get("sort"))
	assert.NotContains(t, cleaned, "email[$gt]")
	assert.Equal(t, "Bob", cleaned.Get("name"))
}
