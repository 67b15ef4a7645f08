// Copyright (c) 2026 Wayfarer Travel. All rights reserved.
// Author: dev@wayfarer.travel

package review

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/wayfarer-travel/wayfarer/internal/platform/middleware"
	requestutil "github.com/wayfarer-travel/wayfarer/internal/platform/request"
	"github.com/wayfarer-travel/wayfarer/internal/platform/respond"
	"github.com/wayfarer-travel/wayfarer/internal/platform/sec"
	"github.com/wayfarer-travel/wayfarer/pkg/pagination"
)

// Handler exposes reviews over HTTP.
type Handler struct {
	service *Service
	protect func(http.Handler) http.Handler
}

// NewHandler constructs the review HTTP handler.
func NewHandler(service *Service, protect func(http.Handler) http.Handler) *Handler {
	return &Handler{service: service, protect: protect}
}

// RegisterNested mounts the tour-scoped review routes; the router must
// carry a {tourId} URL parameter. Writing a review is reserved for the
// customer role: guides do not rate their own tours.
func (h *Handler) RegisterNested(r chi.Router) {
	r.Group(func(r chi.Router) {
		r.Use(h.protect)

		r.Get("/", h.listByTour)
		r.With(middleware.RequireRole(sec.RoleUser)).Post("/", h.create)
	})
}

// Register mounts the top-level review routes.
func (h *Handler) Register(r chi.Router) {
	r.Group(func(r chi.Router) {
		r.Use(h.protect)

		r.Get("/{id}", h.get)
		r.Delete("/{id}", h.delete)
	})
}

func (h *Handler) listByTour(w http.ResponseWriter, r *http.Request) {
	params := pagination.FromRequest(r)
	tourID := requestutil.Param(r, "tourId")

	reviews, total, err := h.service.ListByTour(r.Context(), tourID, params)
	if err != nil {
		respond.Error(w, r, err)
		return
	}
	respond.Paginated(w, map[string]interface{}{"reviews": reviews}, len(reviews), pagination.NewMeta(params.Page, params.Limit, total))
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	identity, err := requestutil.RequiredIdentity(r)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	var input CreateInput
	if err := requestutil.DecodeJSON(r, &input); err != nil {
		respond.Error(w, r, err)
		return
	}

	review, err := h.service.Create(r.Context(), requestutil.Param(r, "tourId"), identity.ID, input)
	if err != nil {
		respond.Error(w, r, err)
		return
	}
	respond.Created(w, map[string]interface{}{"review": review})
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	review, err := h.service.Get(r.Context(), requestutil.Param(r, "id"))
	if err != nil {
		respond.Error(w, r, err)
		return
	}
	respond.OK(w, map[string]interface{}{"review": review})
}

func (h *Handler) delete(w http.ResponseWriter, r *http.Request) {
	identity, err := requestutil.RequiredIdentity(r)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	if err := h.service.Delete(r.Context(), requestutil.Param(r, "id"), identity); err != nil {
		respond.Error(w, r, err)
		return
	}
	respond.NoContent(w)
}
