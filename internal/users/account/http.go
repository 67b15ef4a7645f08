// Copyright (c) 2026 Wayfarer Travel. All rights reserved.
// Author: dev@wayfarer.travel

package account

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/wayfarer-travel/wayfarer/internal/platform/middleware"
	requestutil "github.com/wayfarer-travel/wayfarer/internal/platform/request"
	"github.com/wayfarer-travel/wayfarer/internal/platform/respond"
	"github.com/wayfarer-travel/wayfarer/internal/platform/sec"
	"github.com/wayfarer-travel/wayfarer/internal/platform/validate"
	"github.com/wayfarer-travel/wayfarer/internal/users/auth"
	"github.com/wayfarer-travel/wayfarer/pkg/pagination"
)

// Handler exposes profile management over HTTP.
type Handler struct {
	service *Service
	protect func(http.Handler) http.Handler
}

// NewHandler constructs the account HTTP handler.
func NewHandler(service *Service, protect func(http.Handler) http.Handler) *Handler {
	return &Handler{service: service, protect: protect}
}

// Register mounts the profile routes on the given router. Everything here
// requires a login; the administration surface additionally requires the
// admin role.
func (h *Handler) Register(r chi.Router) {
	r.Group(func(r chi.Router) {
		r.Use(h.protect)

		r.Get("/me", h.getMe)
		r.Patch("/updateMe", h.updateMe)
		r.Delete("/deleteMe", h.deleteMe)

		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireRole(sec.RoleAdmin))

			r.Get("/", h.listUsers)
			r.Post("/", h.createUser)
			r.Get("/{id}", h.getUser)
			r.Patch("/{id}", h.updateUser)
			r.Delete("/{id}", h.deleteUser)
		})
	})
}

// # Self-Service Handlers

func (h *Handler) getMe(w http.ResponseWriter, r *http.Request) {
	identity, err := requestutil.RequiredIdentity(r)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	user, err := h.service.GetMe(r.Context(), identity.ID)
	if err != nil {
		respond.Error(w, r, err)
		return
	}
	respond.OK(w, map[string]interface{}{"user": user})
}

// updateMeInput deliberately has no password fields: presence of either in
// the raw body is rejected with a pointer to the password route.
type updateMeInput struct {
	Name  *string `json:"name"`
	Email *string `json:"email"`
	Photo *string `json:"photo"`

	Password        *string `json:"password"`
	PasswordConfirm *string `json:"passwordConfirm"`
}

func (h *Handler) updateMe(w http.ResponseWriter, r *http.Request) {
	identity, err := requestutil.RequiredIdentity(r)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	var input updateMeInput
	if err := requestutil.DecodeJSON(r, &input); err != nil {
		respond.Error(w, r, err)
		return
	}

	if input.Password != nil || input.PasswordConfirm != nil {
		respond.Error(w, r, validate.RequiredError(auth.FieldPassword,
			"This route is not for password updates. Please use /updateMyPassword."))
		return
	}

	v := &validate.Validator{}
	if input.Name != nil {
		v.Required(auth.FieldName, *input.Name)
	}
	if input.Email != nil {
		v.Email(auth.FieldEmail, *input.Email)
	}
	if err := v.Err(); err != nil {
		respond.Error(w, r, err)
		return
	}

	user, err := h.service.UpdateMe(r.Context(), identity.ID, ProfileUpdate{
		Name:  input.Name,
		Email: input.Email,
		Photo: input.Photo,
	})
	if err != nil {
		respond.Error(w, r, err)
		return
	}
	respond.OK(w, map[string]interface{}{"user": user})
}

func (h *Handler) deleteMe(w http.ResponseWriter, r *http.Request) {
	identity, err := requestutil.RequiredIdentity(r)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	if err := h.service.DeleteMe(r.Context(), identity.ID); err != nil {
		respond.Error(w, r, err)
		return
	}
	respond.NoContent(w)
}

// # Administration Handlers

func (h *Handler) listUsers(w http.ResponseWriter, r *http.Request) {
	params := pagination.FromRequest(r)

	users, total, err := h.service.ListUsers(r.Context(), params)
	if err != nil {
		respond.Error(w, r, err)
		return
	}
	respond.Paginated(w, map[string]interface{}{"users": users}, len(users), pagination.NewMeta(params.Page, params.Limit, total))
}

func (h *Handler) createUser(w http.ResponseWriter, r *http.Request) {
	var input CreateUserInput
	if err := requestutil.DecodeJSON(r, &input); err != nil {
		respond.Error(w, r, err)
		return
	}

	v := &validate.Validator{}
	v.Required(auth.FieldName, input.Name).
		Required(auth.FieldEmail, input.Email).
		Email(auth.FieldEmail, input.Email).
		MinLen(auth.FieldPassword, input.Password, auth.MinPasswordLength)
	if err := v.Err(); err != nil {
		respond.Error(w, r, err)
		return
	}

	user, err := h.service.CreateUser(r.Context(), input)
	if err != nil {
		respond.Error(w, r, err)
		return
	}
	respond.Created(w, map[string]interface{}{"user": user})
}

func (h *Handler) getUser(w http.ResponseWriter, r *http.Request) {
	user, err := h.service.GetUser(r.Context(), requestutil.Param(r, "id"))
	if err != nil {
		respond.Error(w, r, err)
		return
	}
	respond.OK(w, map[string]interface{}{"user": user})
}

func (h *Handler) updateUser(w http.ResponseWriter, r *http.Request) {
	var input struct {
		updateMeInput
		Role   *string `json:"role"`
		Active *bool   `json:"active"`
	}
	if err := requestutil.DecodeJSON(r, &input); err != nil {
		respond.Error(w, r, err)
		return
	}

	if input.Password != nil || input.PasswordConfirm != nil {
		respond.Error(w, r, validate.RequiredError(auth.FieldPassword,
			"This route is not for password updates. Please use /updateMyPassword."))
		return
	}

	user, err := h.service.UpdateUser(r.Context(), requestutil.Param(r, "id"), AdminUpdate{
		ProfileUpdate: ProfileUpdate{
			Name:  input.Name,
			Email: input.Email,
			Photo: input.Photo,
		},
		Role:   input.Role,
		Active: input.Active,
	})
	if err != nil {
		respond.Error(w, r, err)
		return
	}
	respond.OK(w, map[string]interface{}{"user": user})
}

func (h *Handler) deleteUser(w http.ResponseWriter, r *http.Request) {
	if err := h.service.DeleteUser(r.Context(), requestutil.Param(r, "id")); err != nil {
		respond.Error(w, r, err)
		return
	}
	respond.NoContent(w)
}
