// Copyright (c) 2026 Wayfarer Travel. All rights reserved.
// Author: dev@wayfarer.travel

package auth

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/wayfarer-travel/wayfarer/internal/platform/constants"
	"github.com/wayfarer-travel/wayfarer/internal/platform/ctxutil"
	requestutil "github.com/wayfarer-travel/wayfarer/internal/platform/request"
	"github.com/wayfarer-travel/wayfarer/internal/platform/respond"
	"github.com/wayfarer-travel/wayfarer/internal/platform/validate"
)

// Handler exposes the authentication flows over HTTP.
type Handler struct {
	service *Service
	protect func(http.Handler) http.Handler

	// tokenTTL drives the cookie lifetime so the cookie and the embedded
	// token expire together.
	tokenTTL      time.Duration
	secureCookies bool
}

// NewHandler constructs the auth HTTP handler. protect is the
// authentication middleware applied to routes that require a login.
func NewHandler(service *Service, protect func(http.Handler) http.Handler, tokenTTL time.Duration, secureCookies bool) *Handler {
	return &Handler{
		service:       service,
		protect:       protect,
		tokenTTL:      tokenTTL,
		secureCookies: secureCookies,
	}
}

// Register mounts the authentication routes on the given router.
func (h *Handler) Register(r chi.Router) {
	r.Post("/signup", h.signup)
	r.Post("/login", h.login)
	r.Post("/forgotPassword", h.forgotPassword)
	r.Patch("/resetPassword/{token}", h.resetPassword)

	r.Group(func(r chi.Router) {
		r.Use(h.protect)
		r.Patch("/updateMyPassword", h.updateMyPassword)
	})
}

// tokenEnvelope is the success payload for flows that mint a token.
type tokenEnvelope struct {
	Status string      `json:"status"`
	Token  string      `json:"token"`
	Data   interface{} `json:"data,omitempty"`
}

func (h *Handler) signup(w http.ResponseWriter, r *http.Request) {
	var input SignupInput
	if err := requestutil.DecodeJSON(r, &input); err != nil {
		respond.Error(w, r, err)
		return
	}

	v := &validate.Validator{}
	v.Required(FieldName, input.Name).
		Required(FieldEmail, input.Email).
		Email(FieldEmail, input.Email).
		MinLen(FieldPassword, input.Password, MinPasswordLength).
		Equals(FieldPasswordConfirm, input.PasswordConfirm, input.Password, "Passwords are not the same!")
	if err := v.Err(); err != nil {
		respond.Error(w, r, err)
		return
	}

	user, token, err := h.service.Signup(r.Context(), input)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	h.setTokenCookie(w, token)
	respond.JSON(w, http.StatusCreated, tokenEnvelope{
		Status: respond.StatusSuccess,
		Token:  token,
		Data:   map[string]interface{}{"user": user},
	})
}

func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	var input LoginInput
	if err := requestutil.DecodeJSON(r, &input); err != nil {
		respond.Error(w, r, err)
		return
	}

	if input.Email == "" || input.Password == "" {
		respond.Error(w, r, validate.RequiredError(FieldEmail, "Please provide email and password!"))
		return
	}

	user, token, err := h.service.Login(r.Context(), input)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	h.setTokenCookie(w, token)
	respond.JSON(w, http.StatusOK, tokenEnvelope{
		Status: respond.StatusSuccess,
		Token:  token,
		Data:   map[string]interface{}{"user": user},
	})
}

func (h *Handler) forgotPassword(w http.ResponseWriter, r *http.Request) {
	var input struct {
		Email string `json:"email"`
	}
	if err := requestutil.DecodeJSON(r, &input); err != nil {
		respond.Error(w, r, err)
		return
	}

	v := &validate.Validator{}
	v.Required(FieldEmail, input.Email).Email(FieldEmail, input.Email)
	if err := v.Err(); err != nil {
		respond.Error(w, r, err)
		return
	}

	plaintext, err := h.service.ForgotPassword(r.Context(), input.Email)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	payload := respond.SuccessEnvelope{
		Status:  respond.StatusSuccess,
		Message: "Token sent to email!",
	}
	// Mail delivery is out of process; in development the secret is echoed
	// so the flow can be exercised end to end.
	if ctxutil.IsDevMode(r.Context()) {
		payload.Data = map[string]string{"resetToken": plaintext}
	}
	respond.JSON(w, http.StatusOK, payload)
}

func (h *Handler) resetPassword(w http.ResponseWriter, r *http.Request) {
	plaintext := requestutil.Param(r, FieldToken)

	var input ResetPasswordInput
	if err := requestutil.DecodeJSON(r, &input); err != nil {
		respond.Error(w, r, err)
		return
	}

	v := &validate.Validator{}
	v.MinLen(FieldPassword, input.Password, MinPasswordLength).
		Equals(FieldPasswordConfirm, input.PasswordConfirm, input.Password, "Passwords are not the same!")
	if err := v.Err(); err != nil {
		respond.Error(w, r, err)
		return
	}

	user, token, err := h.service.ResetPassword(r.Context(), plaintext, input)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	h.setTokenCookie(w, token)
	respond.JSON(w, http.StatusOK, tokenEnvelope{
		Status: respond.StatusSuccess,
		Token:  token,
		Data:   map[string]interface{}{"user": user},
	})
}

func (h *Handler) updateMyPassword(w http.ResponseWriter, r *http.Request) {
	identity, err := requestutil.RequiredIdentity(r)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	var input UpdatePasswordInput
	if err := requestutil.DecodeJSON(r, &input); err != nil {
		respond.Error(w, r, err)
		return
	}

	v := &validate.Validator{}
	v.Required(FieldPasswordCurrent, input.PasswordCurrent).
		MinLen(FieldPassword, input.Password, MinPasswordLength).
		Equals(FieldPasswordConfirm, input.PasswordConfirm, input.Password, "Passwords are not the same!")
	if err := v.Err(); err != nil {
		respond.Error(w, r, err)
		return
	}

	user, token, err := h.service.UpdatePassword(r.Context(), identity.ID, input)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	h.setTokenCookie(w, token)
	respond.JSON(w, http.StatusOK, tokenEnvelope{
		Status: respond.StatusSuccess,
		Token:  token,
		Data:   map[string]interface{}{"user": user},
	})
}

// setTokenCookie mirrors the access token into an HTTP-only cookie so
// browser clients get a transport that scripts cannot read.
func (h *Handler) setTokenCookie(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     constants.AccessTokenCookieName,
		Value:    token,
		Path:     "/",
		Expires:  time.Now().Add(h.tokenTTL),
		HttpOnly: true,
		Secure:   h.secureCookies,
		SameSite: http.SameSiteLaxMode,
	})
}
