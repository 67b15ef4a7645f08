// Copyright (c) 2026 Wayfarer Travel. All rights reserved.
// Author: dev@wayfarer.travel

package tour

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/wayfarer-travel/wayfarer/internal/platform/apperr"
	"github.com/wayfarer-travel/wayfarer/internal/platform/middleware"
	requestutil "github.com/wayfarer-travel/wayfarer/internal/platform/request"
	"github.com/wayfarer-travel/wayfarer/internal/platform/respond"
	"github.com/wayfarer-travel/wayfarer/internal/platform/sec"
	"github.com/wayfarer-travel/wayfarer/pkg/pagination"
	"github.com/wayfarer-travel/wayfarer/pkg/query"
)

// Handler exposes the tour catalog over HTTP.
type Handler struct {
	service *Service
	protect func(http.Handler) http.Handler
}

// NewHandler constructs the tour HTTP handler.
func NewHandler(service *Service, protect func(http.Handler) http.Handler) *Handler {
	return &Handler{service: service, protect: protect}
}

// Register mounts the tour routes. The route table mirrors the catalog's
// access model: reads require a login, writes require guide-level roles,
// and deletion is reserved for admins and lead guides.
func (h *Handler) Register(r chi.Router) {
	r.Get("/tour-stats", h.stats)
	r.Get("/top-5-cheap", h.topFiveCheap)

	r.Group(func(r chi.Router) {
		r.Use(h.protect)

		r.Get("/", h.list)
		r.Get("/{tourId}", h.get)

		r.With(middleware.RequireRole(sec.RoleAdmin, sec.RoleLeadGuide, sec.RoleGuide)).
			Get("/monthly-plan/{year}", h.monthlyPlan)

		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireRole(sec.RoleAdmin, sec.RoleLeadGuide))

			r.Post("/", h.create)
			r.Patch("/{tourId}", h.update)
			r.Delete("/{tourId}", h.delete)
		})
	})
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	opts := query.Parse(r.URL.Query(), ListedColumns)
	params := pagination.FromRequest(r)

	tours, total, err := h.service.List(r.Context(), opts, params)
	if err != nil {
		respond.Error(w, r, err)
		return
	}
	respond.Paginated(w, map[string]interface{}{"tours": tours}, len(tours), pagination.NewMeta(params.Page, params.Limit, total))
}

// topFiveCheap is the aliased list: best-rated first, cheapest among
// equals, capped at five. Client paging and sorting are overridden.
func (h *Handler) topFiveCheap(w http.ResponseWriter, r *http.Request) {
	values := r.URL.Query()
	values.Set("limit", "5")
	values.Set("sort", "-ratings_average,price")
	values.Del("page")

	opts := query.Parse(values, ListedColumns)
	params := pagination.Params{Page: 1, Limit: 5}

	tours, _, err := h.service.List(r.Context(), opts, params)
	if err != nil {
		respond.Error(w, r, err)
		return
	}
	respond.OK(w, map[string]interface{}{"tours": tours})
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	t, err := h.service.Get(r.Context(), requestutil.Param(r, "tourId"))
	if err != nil {
		respond.Error(w, r, err)
		return
	}
	respond.OK(w, map[string]interface{}{"tour": t})
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var input CreateTourInput
	if err := requestutil.DecodeJSON(r, &input); err != nil {
		respond.Error(w, r, err)
		return
	}

	t, err := h.service.Create(r.Context(), input)
	if err != nil {
		respond.Error(w, r, err)
		return
	}
	respond.Created(w, map[string]interface{}{"tour": t})
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	var input TourUpdate
	if err := requestutil.DecodeJSON(r, &input); err != nil {
		respond.Error(w, r, err)
		return
	}

	t, err := h.service.Update(r.Context(), requestutil.Param(r, "tourId"), input)
	if err != nil {
		respond.Error(w, r, err)
		return
	}
	respond.OK(w, map[string]interface{}{"tour": t})
}

func (h *Handler) delete(w http.ResponseWriter, r *http.Request) {
	if err := h.service.Delete(r.Context(), requestutil.Param(r, "tourId")); err != nil {
		respond.Error(w, r, err)
		return
	}
	respond.NoContent(w)
}

func (h *Handler) stats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.service.Stats(r.Context())
	if err != nil {
		respond.Error(w, r, err)
		return
	}
	respond.OK(w, map[string]interface{}{"stats": stats})
}

func (h *Handler) monthlyPlan(w http.ResponseWriter, r *http.Request) {
	year, err := strconv.Atoi(requestutil.Param(r, "year"))
	if err != nil {
		respond.Error(w, r, apperr.ValidationError("Please provide a valid year"))
		return
	}

	plan, err := h.service.MonthlyPlan(r.Context(), year)
	if err != nil {
		respond.Error(w, r, err)
		return
	}
	respond.OK(w, map[string]interface{}{"plan": plan})
}
