// Copyright (c) 2026 Wayfarer Travel. All rights reserved.
// Author: dev@wayfarer.travel

/*
Package sanitize scrubs untrusted request input before handlers see it.

Two classes of payload are neutralized:

  - Datastore operator injection: object keys that start with '$' or contain
    a '.' are dropped entirely. Filter expressions built from user input must
    never be able to smuggle query operators into the storage layer.
  - Script injection: "<script>...</script>" blocks are removed from string
    values and any remaining markup is HTML-escaped.

Sanitization is an explicit, value-walking step invoked by the request
pipeline after body parsing and before routing — not a hidden storage hook.
*/
package sanitize

import (
	"html"
	"net/url"
	"regexp"
	"strings"
)

var scriptBlock = regexp.MustCompile(`(?is)<script\b[^>]*>.*?</script\s*>`)

// String neutralizes script payloads in a single value: script blocks are
// removed and residual markup characters are entity-escaped.
func String(s string) string {
	if !strings.ContainsAny(s, "<>&") {
		return s
	}
	cleaned := scriptBlock.ReplaceAllString(s, "")
	return html.EscapeString(cleaned)
}

// UnsafeKey reports whether an object key can carry a datastore operator.
// A '$' anywhere covers both bare operators ("$gt") and bracketed forms
// ("email[$gt]"); a '.' covers path traversal into nested fields.
func UnsafeKey(key string) bool {
	return strings.ContainsAny(key, "$.")
}

// Value recursively sanitizes a decoded JSON value.
//
// Maps lose entries with unsafe keys, strings are passed through [String],
// and arrays/objects are walked in place. Scalars other than strings are
// returned unchanged.
func Value(v interface{}) interface{} {
	switch typed := v.(type) {
	case map[string]interface{}:
		for key, item := range typed {
			if UnsafeKey(key) {
				delete(typed, key)
				continue
			}
			typed[key] = Value(item)
		}
		return typed
	case []interface{}:
		for i, item := range typed {
			typed[i] = Value(item)
		}
		return typed
	case string:
		return String(typed)
	default:
		return v
	}
}

// Query sanitizes URL query values: parameters with unsafe names are
// dropped, and every retained value is scrubbed of script payloads.
func Query(values url.Values) url.Values {
	cleaned := make(url.Values, len(values))
	for key, items := range values {
		if UnsafeKey(key) {
			continue
		}
		for _, item := range items {
			cleaned.Add(key, String(item))
		}
	}
	return cleaned
}
