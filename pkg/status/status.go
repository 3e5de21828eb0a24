// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package status

import (
	"context"
	"net/http"
	"sort"
	"time"

	"github.com/go-chi/chi/v5"

	httptypes "github.com/canonical/squad-service/internal/http/types"
	"github.com/canonical/squad-service/internal/logging"
	"github.com/canonical/squad-service/internal/monitoring"
	"github.com/canonical/squad-service/internal/tracing"
	"github.com/canonical/squad-service/internal/version"
)

const checkTimeout = 3 * time.Second

type Status struct {
	Status    string `json:"status"`
	BuildInfo string `json:"buildInfo"`
}

type Readiness struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks,omitempty"`
}

type API struct {
	checks map[string]CheckerInterface

	tracer  tracing.TracingInterface
	monitor monitoring.MonitorInterface
	logger  logging.LoggerInterface
}

func (a *API) RegisterEndpoints(mux chi.Router) {
	mux.Get("/api/v0/status", a.alive)
	mux.Get("/api/v0/ready", a.ready)
	mux.Get("/api/v0/version", a.version)
}

func (a *API) alive(w http.ResponseWriter, r *http.Request) {
	httptypes.WriteJSON(w, http.StatusOK, Status{Status: "ok", BuildInfo: version.Version})
}

func (a *API) version(w http.ResponseWriter, r *http.Request) {
	httptypes.WriteJSON(w, http.StatusOK, map[string]string{"version": version.Version})
}

func (a *API) ready(w http.ResponseWriter, r *http.Request) {
	ctx, span := a.tracer.Start(r.Context(), "status.API.ready")
	defer span.End()

	ctx, cancel := context.WithTimeout(ctx, checkTimeout)
	defer cancel()

	names := make([]string, 0, len(a.checks))
	for name := range a.checks {
		names = append(names, name)
	}
	sort.Strings(names)

	rs := Readiness{Status: "ok", Checks: make(map[string]string, len(names))}

	for _, name := range names {
		if err := a.checks[name].Ping(ctx); err != nil {
			a.logger.Warnf("readiness check %s failed: %v", name, err)
			rs.Checks[name] = "down: " + err.Error()
			rs.Status = "unavailable"
			continue
		}

		rs.Checks[name] = "ok"
	}

	status := http.StatusOK
	if rs.Status != "ok" {
		status = http.StatusServiceUnavailable
	}

	httptypes.WriteJSON(w, status, rs)
}

// NewAPI builds the status endpoints, checks are keyed by the dependency name
func NewAPI(checks map[string]CheckerInterface, tracer tracing.TracingInterface, monitor monitoring.MonitorInterface, logger logging.LoggerInterface) *API {
	a := new(API)

	a.checks = checks
	if a.checks == nil {
		a.checks = make(map[string]CheckerInterface)
	}

	a.tracer = tracer
	a.monitor = monitor
	a.logger = logger

	return a
}
