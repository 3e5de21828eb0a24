// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package mission

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	httptypes "github.com/canonical/squad-service/internal/http/types"
	"github.com/canonical/squad-service/internal/logging"
	"github.com/canonical/squad-service/internal/monitoring"
	"github.com/canonical/squad-service/internal/tracing"
	"github.com/canonical/squad-service/internal/types"
	"github.com/canonical/squad-service/pkg/authentication"
)

type StartRequest struct {
	Title       string            `json:"title"`
	Type        types.MissionType `json:"type"`
	TeamMembers []string          `json:"team_members"`
}

type PinRequest struct {
	Title       string        `json:"title"`
	Description string        `json:"description"`
	Type        types.PinType `json:"type"`
	Latitude    float64       `json:"latitude"`
	Longitude   float64       `json:"longitude"`
}

type LocationRequest struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

type API struct {
	service ServiceInterface

	tracer  tracing.TracingInterface
	monitor monitoring.MonitorInterface
	logger  logging.LoggerInterface
}

func (a *API) RegisterEndpoints(mux chi.Router) {
	mux.Post("/api/v0/missions", a.start)
	mux.Get("/api/v0/missions/active", a.active)
	mux.Get("/api/v0/missions/reports", a.reports)
	mux.Get("/api/v0/missions/{id}", a.report)
	mux.Post("/api/v0/missions/{id}/pins", a.addPin)
	mux.Post("/api/v0/missions/{id}/locations", a.recordLocation)
	mux.Post("/api/v0/missions/{id}/end", a.end)
}

func (a *API) error(w http.ResponseWriter, err error) {
	status, kind := ErrorStatus(err)

	if status >= http.StatusInternalServerError {
		a.logger.Errorf("request failed: %v", err)
	}

	httptypes.WriteError(w, status, kind, err.Error())
}

func (a *API) caller(w http.ResponseWriter, r *http.Request) (string, bool) {
	userID, ok := authentication.GetUserID(r.Context())
	if !ok {
		httptypes.WriteError(w, http.StatusUnauthorized, "unauthenticated", "unauthenticated")
	}

	return userID, ok
}

func (a *API) start(w http.ResponseWriter, r *http.Request) {
	ctx, span := a.tracer.Start(r.Context(), "mission.API.start")
	defer span.End()

	userID, ok := a.caller(w, r)
	if !ok {
		return
	}

	var req StartRequest
	if err := httptypes.DecodeJSON(r, &req); err != nil {
		httptypes.WriteError(w, http.StatusBadRequest, "validation", err.Error())
		return
	}

	m, err := a.service.StartMission(ctx, userID, req.Title, req.Type, req.TeamMembers)
	if err != nil {
		a.error(w, err)
		return
	}

	httptypes.WriteData(w, http.StatusCreated, m, nil)
}

func (a *API) active(w http.ResponseWriter, r *http.Request) {
	ctx, span := a.tracer.Start(r.Context(), "mission.API.active")
	defer span.End()

	userID, ok := a.caller(w, r)
	if !ok {
		return
	}

	m, err := a.service.GetActiveMission(ctx, userID)
	if err != nil {
		a.error(w, err)
		return
	}

	httptypes.WriteData(w, http.StatusOK, m, nil)
}

func (a *API) reports(w http.ResponseWriter, r *http.Request) {
	ctx, span := a.tracer.Start(r.Context(), "mission.API.reports")
	defer span.End()

	userID, ok := a.caller(w, r)
	if !ok {
		return
	}

	page := httptypes.ParsePage(r)

	missions, err := a.service.ListReports(ctx, userID, page.Page, page.Size)
	if err != nil {
		a.error(w, err)
		return
	}

	httptypes.WriteData(w, http.StatusOK, missions, page)
}

func (a *API) report(w http.ResponseWriter, r *http.Request) {
	ctx, span := a.tracer.Start(r.Context(), "mission.API.report")
	defer span.End()

	userID, ok := a.caller(w, r)
	if !ok {
		return
	}

	m, err := a.service.GetReport(ctx, userID, chi.URLParam(r, "id"))
	if err != nil {
		a.error(w, err)
		return
	}

	httptypes.WriteData(w, http.StatusOK, m, nil)
}

func (a *API) addPin(w http.ResponseWriter, r *http.Request) {
	ctx, span := a.tracer.Start(r.Context(), "mission.API.addPin")
	defer span.End()

	userID, ok := a.caller(w, r)
	if !ok {
		return
	}

	var req PinRequest
	if err := httptypes.DecodeJSON(r, &req); err != nil {
		httptypes.WriteError(w, http.StatusBadRequest, "validation", err.Error())
		return
	}

	pin, err := a.service.AddPin(ctx, userID, chi.URLParam(r, "id"), &types.Pin{
		Title:       req.Title,
		Description: req.Description,
		Type:        req.Type,
		Latitude:    req.Latitude,
		Longitude:   req.Longitude,
	})

	if err != nil {
		a.error(w, err)
		return
	}

	httptypes.WriteData(w, http.StatusCreated, pin, nil)
}

func (a *API) recordLocation(w http.ResponseWriter, r *http.Request) {
	ctx, span := a.tracer.Start(r.Context(), "mission.API.recordLocation")
	defer span.End()

	userID, ok := a.caller(w, r)
	if !ok {
		return
	}

	var req LocationRequest
	if err := httptypes.DecodeJSON(r, &req); err != nil {
		httptypes.WriteError(w, http.StatusBadRequest, "validation", err.Error())
		return
	}

	if err := a.service.RecordLocation(ctx, userID, chi.URLParam(r, "id"), req.Latitude, req.Longitude); err != nil {
		a.error(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (a *API) end(w http.ResponseWriter, r *http.Request) {
	ctx, span := a.tracer.Start(r.Context(), "mission.API.end")
	defer span.End()

	userID, ok := a.caller(w, r)
	if !ok {
		return
	}

	m, err := a.service.EndMission(ctx, userID, chi.URLParam(r, "id"))
	if err != nil {
		a.error(w, err)
		return
	}

	httptypes.WriteData(w, http.StatusOK, m, nil)
}

func NewAPI(service ServiceInterface, tracer tracing.TracingInterface, monitor monitoring.MonitorInterface, logger logging.LoggerInterface) *API {
	a := new(API)

	a.service = service
	a.tracer = tracer
	a.monitor = monitor
	a.logger = logger

	return a
}
