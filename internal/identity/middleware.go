// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package identity

import (
	"context"
	"net/http"
	"strings"

	"google.golang.org/grpc"
	"google.golang.org/grpc/metadata"

	"github.com/canonical/squad-service/internal/logging"
	"github.com/canonical/squad-service/internal/monitoring"
	"github.com/canonical/squad-service/internal/tracing"
	"github.com/canonical/squad-service/pkg/authentication"
)

// HeaderName carries the identity authenticated by the Oathkeeper proxy
const HeaderName = "X-Kratos-Authenticated-Identity-Id"

// Middleware trusts the identity header set by the proxy in front of the
// service, it must only be installed when that proxy strips client copies
type Middleware struct {
	tracer  tracing.TracingInterface
	monitor monitoring.MonitorInterface
	logger  logging.LoggerInterface
}

func (m *Middleware) HTTPMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx, span := m.tracer.Start(r.Context(), "identity.Middleware.HTTPMiddleware")
		defer span.End()

		if userID := strings.TrimSpace(r.Header.Get(HeaderName)); userID != "" {
			ctx = authentication.WithUserID(ctx, userID)
		}

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func (m *Middleware) GRPCInterceptor(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
	ctx, span := m.tracer.Start(ctx, "identity.Middleware.GRPCInterceptor")
	defer span.End()

	// metadata keys are lowercased
	if md, ok := metadata.FromIncomingContext(ctx); ok {
		if values := md.Get(strings.ToLower(HeaderName)); len(values) > 0 && values[0] != "" {
			ctx = authentication.WithUserID(ctx, values[0])
			m.logger.Debugf("grpc call %s on behalf of %s", info.FullMethod, values[0])
		}
	}

	return handler(ctx, req)
}

func NewMiddleware(tracer tracing.TracingInterface, monitor monitoring.MonitorInterface, logger logging.LoggerInterface) *Middleware {
	return &Middleware{
		tracer:  tracer,
		monitor: monitor,
		logger:  logger,
	}
}
