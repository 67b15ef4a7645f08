// Copyright (c) 2026 Wayfarer Travel. All rights reserved.
// Author: dev@wayfarer.travel

/*
Package request provides utilities for extracting data from HTTP requests.

It abstracts away the underlying router's parameter extraction and common
body decoding patterns, ensuring consistent error handling and type safety.
*/
package requestutil

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/wayfarer-travel/wayfarer/internal/platform/apperr"
	"github.com/wayfarer-travel/wayfarer/internal/platform/ctxutil"
	"github.com/wayfarer-travel/wayfarer/internal/platform/sec"
	"github.com/wayfarer-travel/wayfarer/internal/platform/validate"
)

// DecodeJSON reads the request body and decodes it into the target structure.
//
// Unknown fields are tolerated (sanitization may already have stripped
// some); an oversized body surfaces as 413, anything else undecodable as
// a 400 validation error.
func DecodeJSON(request *http.Request, target interface{}) error {
	if err := json.NewDecoder(request.Body).Decode(target); err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			return apperr.PayloadTooLarge("Request body exceeds the allowed size")
		}
		return validate.ErrInvalidJSON
	}
	return nil
}

// Param retrieves a named URL parameter from the request.
func Param(request *http.Request, name string) string {
	return chi.URLParam(request, name)
}

// Identity extracts the authenticated identity from the request context.
//
// Returns nil if the request is not authenticated.
func Identity(request *http.Request) *sec.Identity {
	return ctxutil.GetAuthUser(request.Context())
}

// RequiredIdentity ensures the request is authenticated and returns the
// resolved identity, or an Unauthenticated error for anonymous requests.
func RequiredIdentity(request *http.Request) (*sec.Identity, error) {
	identity := ctxutil.GetAuthUser(request.Context())
	if identity == nil {
		return nil, apperr.Unauthenticated("You are not logged in! Please log in to get access.")
	}
	return identity, nil
}
