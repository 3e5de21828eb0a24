// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package web

import (
	"net/http"

	chi "github.com/go-chi/chi/v5"
	middleware "github.com/go-chi/chi/v5/middleware"

	"github.com/canonical/squad-service/internal/db"
	"github.com/canonical/squad-service/internal/identity"
	"github.com/canonical/squad-service/internal/logging"
	"github.com/canonical/squad-service/internal/monitoring"
	"github.com/canonical/squad-service/internal/ratelimit"
	"github.com/canonical/squad-service/internal/tracing"
	"github.com/canonical/squad-service/pkg/authentication"
	"github.com/canonical/squad-service/pkg/membership"
	"github.com/canonical/squad-service/pkg/metrics"
	"github.com/canonical/squad-service/pkg/mission"
	"github.com/canonical/squad-service/pkg/status"
	"github.com/canonical/squad-service/pkg/webhooks"
)

// NewRouter mounts every API of the service. identityMiddleware is only set
// when the proxy identity header is trusted, dbClient only when the directory
// lives in postgres.
func NewRouter(
	membershipService membership.ServiceInterface,
	missionService mission.ServiceInterface,
	webhooksService webhooks.ServiceInterface,
	authMiddleware *authentication.Middleware,
	identityMiddleware *identity.Middleware,
	limiter *ratelimit.IPRateLimiter,
	checks map[string]status.CheckerInterface,
	dbClient db.DBClientInterface,
	allowedOrigins []string,
	webhookAPIKey string,
	tracer tracing.TracingInterface,
	monitor monitoring.MonitorInterface,
	logger logging.LoggerInterface,
) http.Handler {
	router := chi.NewMux()

	middlewares := make(chi.Middlewares, 0)
	middlewares = append(
		middlewares,
		middleware.RequestID,
		middleware.Recoverer,
		monitoring.NewMiddleware(monitor, logger).ResponseTime(),
		middlewareCORS(allowedOrigins),
	)

	if identityMiddleware != nil {
		middlewares = append(middlewares, identityMiddleware.HTTPMiddleware)
	}

	router.Use(middlewares...)

	metrics.NewAPI(logger).RegisterEndpoints(router)
	status.NewAPI(checks, tracer, monitor, logger).RegisterEndpoints(router)
	webhooks.NewAPI(webhooksService, webhookAPIKey, logger).RegisterEndpoints(router)

	membershipAPI := membership.NewAPI(membershipService, tracer, monitor, logger)
	missionAPI := mission.NewAPI(missionService, tracer, monitor, logger)

	router.Group(func(r chi.Router) {
		if limiter != nil {
			r.Use(limiter.Middleware)
		}

		membershipAPI.RegisterPublicEndpoints(r)
	})

	router.Group(func(r chi.Router) {
		r.Use(authMiddleware.Authenticate())

		membershipAPI.RegisterEndpoints(r)

		r.Group(func(r chi.Router) {
			if dbClient != nil {
				r.Use(db.TransactionMiddleware(dbClient, logger))
			}

			missionAPI.RegisterEndpoints(r)
		})
	})

	return tracing.NewMiddleware(monitor, logger).OpenTelemetry(router)
}
