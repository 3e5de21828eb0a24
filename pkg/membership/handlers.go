// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package membership

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/canonical/squad-service/internal/http/types"
	"github.com/canonical/squad-service/internal/logging"
	"github.com/canonical/squad-service/internal/monitoring"
	"github.com/canonical/squad-service/internal/tracing"
	"github.com/canonical/squad-service/pkg/authentication"
)

// IdempotencyKeyHeader carries the client's key for organization creation
const IdempotencyKeyHeader = "Idempotency-Key"

type RegisterRequest struct {
	Email       string `json:"email"`
	Password    string `json:"password"`
	DisplayName string `json:"display_name"`
}

type SignInRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type PasswordResetRequest struct {
	Email string `json:"email"`
}

type ProfileRequest struct {
	DisplayName string `json:"display_name"`
}

type PresenceRequest struct {
	Online bool `json:"online"`
}

type OrganizationRequest struct {
	Name string `json:"name"`
}

type JoinRequest struct {
	Code string `json:"code"`
}

type OrganizationCreated struct {
	Code string `json:"code"`
}

type API struct {
	service ServiceInterface

	tracer  tracing.TracingInterface
	monitor monitoring.MonitorInterface
	logger  logging.LoggerInterface
}

// RegisterPublicEndpoints mounts the routes reachable without a caller
func (a *API) RegisterPublicEndpoints(mux chi.Router) {
	mux.Post("/api/v0/auth/register", a.register)
	mux.Post("/api/v0/auth/login", a.signIn)
	mux.Post("/api/v0/auth/password-reset", a.passwordReset)
}

// RegisterEndpoints mounts the routes that act on behalf of the caller
func (a *API) RegisterEndpoints(mux chi.Router) {
	mux.Post("/api/v0/auth/logout", a.signOut)
	mux.Get("/api/v0/me", a.me)
	mux.Patch("/api/v0/me", a.updateProfile)
	mux.Put("/api/v0/me/presence", a.setPresence)
	mux.Post("/api/v0/organizations", a.createOrganization)
	mux.Post("/api/v0/organizations/join", a.joinOrganization)
	mux.Get("/api/v0/organizations/{code}", a.organization)
	mux.Patch("/api/v0/organizations/{code}", a.renameOrganization)
	mux.Get("/api/v0/organizations/{code}/members", a.members)
}

func (a *API) error(w http.ResponseWriter, err error) {
	status, kind := ErrorStatus(err)

	if status >= http.StatusInternalServerError {
		a.logger.Errorf("request failed: %v", err)
	}

	body := types.ErrorResponse{Status: status, Message: err.Error(), Kind: kind}

	var partial *PartialFailureError
	if errors.As(err, &partial) {
		body.Code = partial.OrganizationCode
	}

	types.WriteJSON(w, status, body)
}

func (a *API) badRequest(w http.ResponseWriter, err error) {
	types.WriteError(w, http.StatusBadRequest, "validation", err.Error())
}

func (a *API) caller(w http.ResponseWriter, r *http.Request) (string, bool) {
	userID, ok := authentication.GetUserID(r.Context())
	if !ok {
		types.WriteError(w, http.StatusUnauthorized, "unauthenticated", "unauthenticated")
	}

	return userID, ok
}

func (a *API) register(w http.ResponseWriter, r *http.Request) {
	ctx, span := a.tracer.Start(r.Context(), "membership.API.register")
	defer span.End()

	var req RegisterRequest
	if err := types.DecodeJSON(r, &req); err != nil {
		a.badRequest(w, err)
		return
	}

	user, err := a.service.Register(ctx, req.Email, req.Password, req.DisplayName)
	if err != nil {
		a.error(w, err)
		return
	}

	types.WriteData(w, http.StatusCreated, user, nil)
}

func (a *API) signIn(w http.ResponseWriter, r *http.Request) {
	ctx, span := a.tracer.Start(r.Context(), "membership.API.signIn")
	defer span.End()

	var req SignInRequest
	if err := types.DecodeJSON(r, &req); err != nil {
		a.badRequest(w, err)
		return
	}

	session, err := a.service.SignIn(ctx, req.Email, req.Password)
	if err != nil {
		a.error(w, err)
		return
	}

	types.WriteData(w, http.StatusOK, session, nil)
}

func (a *API) signOut(w http.ResponseWriter, r *http.Request) {
	ctx, span := a.tracer.Start(r.Context(), "membership.API.signOut")
	defer span.End()

	userID, ok := a.caller(w, r)
	if !ok {
		return
	}

	if err := a.service.SignOut(ctx, userID); err != nil {
		a.error(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (a *API) passwordReset(w http.ResponseWriter, r *http.Request) {
	ctx, span := a.tracer.Start(r.Context(), "membership.API.passwordReset")
	defer span.End()

	var req PasswordResetRequest
	if err := types.DecodeJSON(r, &req); err != nil {
		a.badRequest(w, err)
		return
	}

	if err := a.service.SendPasswordReset(ctx, req.Email); err != nil {
		a.error(w, err)
		return
	}

	types.WriteData(w, http.StatusAccepted, nil, nil)
}

func (a *API) me(w http.ResponseWriter, r *http.Request) {
	ctx, span := a.tracer.Start(r.Context(), "membership.API.me")
	defer span.End()

	userID, ok := a.caller(w, r)
	if !ok {
		return
	}

	user, err := a.service.GetUser(ctx, userID)
	if err != nil {
		a.error(w, err)
		return
	}

	types.WriteData(w, http.StatusOK, user, nil)
}

func (a *API) updateProfile(w http.ResponseWriter, r *http.Request) {
	ctx, span := a.tracer.Start(r.Context(), "membership.API.updateProfile")
	defer span.End()

	userID, ok := a.caller(w, r)
	if !ok {
		return
	}

	var req ProfileRequest
	if err := types.DecodeJSON(r, &req); err != nil {
		a.badRequest(w, err)
		return
	}

	user, err := a.service.UpdateProfile(ctx, userID, req.DisplayName)
	if err != nil {
		a.error(w, err)
		return
	}

	types.WriteData(w, http.StatusOK, user, nil)
}

func (a *API) setPresence(w http.ResponseWriter, r *http.Request) {
	ctx, span := a.tracer.Start(r.Context(), "membership.API.setPresence")
	defer span.End()

	userID, ok := a.caller(w, r)
	if !ok {
		return
	}

	var req PresenceRequest
	if err := types.DecodeJSON(r, &req); err != nil {
		a.badRequest(w, err)
		return
	}

	if err := a.service.SetOnline(ctx, userID, req.Online); err != nil {
		a.error(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (a *API) createOrganization(w http.ResponseWriter, r *http.Request) {
	ctx, span := a.tracer.Start(r.Context(), "membership.API.createOrganization")
	defer span.End()

	userID, ok := a.caller(w, r)
	if !ok {
		return
	}

	var req OrganizationRequest
	if err := types.DecodeJSON(r, &req); err != nil {
		a.badRequest(w, err)
		return
	}

	code, err := a.service.CreateOrganization(ctx, userID, req.Name, r.Header.Get(IdempotencyKeyHeader))
	if err != nil {
		a.error(w, err)
		return
	}

	types.WriteData(w, http.StatusCreated, OrganizationCreated{Code: code}, nil)
}

func (a *API) joinOrganization(w http.ResponseWriter, r *http.Request) {
	ctx, span := a.tracer.Start(r.Context(), "membership.API.joinOrganization")
	defer span.End()

	userID, ok := a.caller(w, r)
	if !ok {
		return
	}

	var req JoinRequest
	if err := types.DecodeJSON(r, &req); err != nil {
		a.badRequest(w, err)
		return
	}

	if err := a.service.JoinOrganization(ctx, userID, req.Code); err != nil {
		a.error(w, err)
		return
	}

	user, err := a.service.GetUser(ctx, userID)
	if err != nil {
		a.error(w, err)
		return
	}

	types.WriteData(w, http.StatusOK, user, nil)
}

func (a *API) organization(w http.ResponseWriter, r *http.Request) {
	ctx, span := a.tracer.Start(r.Context(), "membership.API.organization")
	defer span.End()

	userID, ok := a.caller(w, r)
	if !ok {
		return
	}

	org, err := a.service.GetOrganization(ctx, userID, chi.URLParam(r, "code"))
	if err != nil {
		a.error(w, err)
		return
	}

	types.WriteData(w, http.StatusOK, org, nil)
}

func (a *API) renameOrganization(w http.ResponseWriter, r *http.Request) {
	ctx, span := a.tracer.Start(r.Context(), "membership.API.renameOrganization")
	defer span.End()

	userID, ok := a.caller(w, r)
	if !ok {
		return
	}

	var req OrganizationRequest
	if err := types.DecodeJSON(r, &req); err != nil {
		a.badRequest(w, err)
		return
	}

	org, err := a.service.RenameOrganization(ctx, userID, chi.URLParam(r, "code"), req.Name)
	if err != nil {
		a.error(w, err)
		return
	}

	types.WriteData(w, http.StatusOK, org, nil)
}

func (a *API) members(w http.ResponseWriter, r *http.Request) {
	ctx, span := a.tracer.Start(r.Context(), "membership.API.members")
	defer span.End()

	userID, ok := a.caller(w, r)
	if !ok {
		return
	}

	page := types.ParsePage(r)

	members, err := a.service.ListMembers(ctx, userID, chi.URLParam(r, "code"), page.Page, page.Size)
	if err != nil {
		a.error(w, err)
		return
	}

	types.WriteData(w, http.StatusOK, members, page)
}

func NewAPI(service ServiceInterface, tracer tracing.TracingInterface, monitor monitoring.MonitorInterface, logger logging.LoggerInterface) *API {
	a := new(API)

	a.service = service
	a.tracer = tracer
	a.monitor = monitor
	a.logger = logger

	return a
}
