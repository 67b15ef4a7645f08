// Copyright (c) 2026 Wayfarer Travel. All rights reserved.
// Author: dev@wayfarer.travel

// Package respond provides HTTP response helpers used by all API handlers,
// including the terminal error funnel.
//
// # Architecture
//
// This package centralizes the presentation logic for HTTP responses.
// Every response (success or error) across the entire application follows a
// strict, predictable JSON envelope:
//
//	success: {"status": "success", "data": ...}
//	4xx:     {"status": "fail",    "message": "...", "code": "..."}
//	5xx:     {"status": "error",   "message": "...", "code": "..."}
//
// Development mode additionally carries "detail" and "stack" fields on
// error responses; production never does.
package respond

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"runtime/debug"

	"github.com/wayfarer-travel/wayfarer/internal/platform/apperr"
	"github.com/wayfarer-travel/wayfarer/internal/platform/ctxutil"
	"github.com/wayfarer-travel/wayfarer/pkg/pagination"
)

// Envelope statuses, mirroring the classic REST "fail vs error" split:
// "fail" marks an operational client fault, "error" a server-side fault.
const (
	StatusSuccess = "success"
	StatusFail    = "fail"
	StatusError   = "error"
)

// SuccessEnvelope is the JSON envelope for successful responses.
type SuccessEnvelope struct {
	Status string      `json:"status"`
	Data   interface{} `json:"data,omitempty"`
	// Message is used by flows that return no resource (e.g. password reset).
	Message string `json:"message,omitempty"`
}

// PaginatedEnvelope is the JSON envelope for paginated list responses.
type PaginatedEnvelope struct {
	Status  string          `json:"status"`
	Results int             `json:"results"`
	Data    interface{}     `json:"data"`
	Meta    pagination.Meta `json:"meta"`
}

// ErrorEnvelope is the JSON envelope for error responses.
type ErrorEnvelope struct {
	Status  string              `json:"status"`
	Message string              `json:"message"`
	Code    string              `json:"code,omitempty"`
	Details []apperr.FieldError `json:"details,omitempty"`

	// Development-mode only diagnostics. Never populated in production.
	Detail string `json:"detail,omitempty"`
	Stack  string `json:"stack,omitempty"`
}

// JSON writes a JSON response with the given status code.
func JSON(writer http.ResponseWriter, statusCode int, payload interface{}) {
	writer.Header().Set("Content-Type", "application/json; charset=utf-8")
	writer.WriteHeader(statusCode)
	_ = json.NewEncoder(writer).Encode(payload)
}

// OK writes a 200 OK response with data wrapped in the standard success envelope.
func OK(writer http.ResponseWriter, data interface{}) {
	JSON(writer, http.StatusOK, SuccessEnvelope{Status: StatusSuccess, Data: data})
}

// Created writes a 201 Created response with data wrapped in the standard success envelope.
func Created(writer http.ResponseWriter, data interface{}) {
	JSON(writer, http.StatusCreated, SuccessEnvelope{Status: StatusSuccess, Data: data})
}

// Message writes a 200 OK response carrying only a human-readable message.
func Message(writer http.ResponseWriter, message string) {
	JSON(writer, http.StatusOK, SuccessEnvelope{Status: StatusSuccess, Message: message})
}

// Paginated writes a 200 OK response with paginated data and a metadata block.
func Paginated(writer http.ResponseWriter, data interface{}, results int, metadata pagination.Meta) {
	JSON(writer, http.StatusOK, PaginatedEnvelope{
		Status:  StatusSuccess,
		Results: results,
		Data:    data,
		Meta:    metadata,
	})
}

// NoContent writes a 204 No Content response.
func NoContent(writer http.ResponseWriter) {
	writer.WriteHeader(http.StatusNoContent)
}

// Error is the terminal error funnel: it converts any propagated Go error
// into the standardized JSON error response.
//
// # Classification
//
// Operational errors ([*apperr.AppError] with a 4xx status) are safe to
// expose: the client receives their message and status. Everything else is
// a programming/unknown fault: it is logged with full detail server-side
// and the client sees only a generic 500 message. In development mode the
// envelope additionally echoes the underlying detail and a stack trace.
func Error(writer http.ResponseWriter, request *http.Request, err error) {
	ctx := request.Context()
	devMode := ctxutil.IsDevMode(ctx)

	var appError *apperr.AppError
	if !errors.As(err, &appError) {
		// Unknown fault: log everything, surface nothing.
		logger := ctxutil.GetLogger(ctx)
		logger.ErrorContext(ctx, "unhandled_error_funneled",
			slog.String("error", err.Error()),
			slog.String("request_id", ctxutil.GetRequestID(ctx)),
		)
		appError = apperr.Internal(err)
	}

	// Always log 5xx errors: they indicate server-side defects.
	if appError.HTTPStatus >= 500 {
		logger := ctxutil.GetLogger(ctx)
		logger.ErrorContext(ctx, "api_server_error",
			slog.String("code", appError.Code),
			slog.String("request_id", ctxutil.GetRequestID(ctx)),
			slog.Any("cause", appError.Cause),
		)
	}

	status := StatusFail
	if appError.HTTPStatus >= 500 {
		status = StatusError
	}

	envelope := ErrorEnvelope{
		Status:  status,
		Message: appError.Message,
		Code:    appError.Code,
		Details: appError.Details,
	}

	if devMode {
		if appError.Cause != nil {
			envelope.Detail = appError.Cause.Error()
		}
		if appError.HTTPStatus >= 500 {
			envelope.Stack = string(debug.Stack())
		}
	}

	JSON(writer, appError.HTTPStatus, envelope)
}
