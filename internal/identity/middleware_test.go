// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package identity

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"google.golang.org/grpc"
	"google.golang.org/grpc/metadata"

	"github.com/canonical/squad-service/internal/logging"
	"github.com/canonical/squad-service/internal/monitoring"
	"github.com/canonical/squad-service/internal/tracing"
	"github.com/canonical/squad-service/pkg/authentication"
)

func newTestMiddleware() *Middleware {
	return NewMiddleware(tracing.NewNoopTracer(), monitoring.NewNoopMonitor("test"), logging.NewNoopLogger())
}

func TestHTTPMiddleware(t *testing.T) {
	tests := []struct {
		name     string
		header   string
		expected string
		found    bool
	}{
		{name: "header present", header: "user-1", expected: "user-1", found: true},
		{name: "header absent"},
		{name: "blank header", header: "  "},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			var (
				got   string
				found bool
			)

			handler := newTestMiddleware().HTTPMiddleware(http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
				got, found = authentication.GetUserID(r.Context())
			}))

			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if test.header != "" {
				req.Header.Set(HeaderName, test.header)
			}

			handler.ServeHTTP(httptest.NewRecorder(), req)

			if got != test.expected || found != test.found {
				t.Fatalf("expected %q/%v, got %q/%v", test.expected, test.found, got, found)
			}
		})
	}
}

func TestGRPCInterceptor(t *testing.T) {
	ctx := metadata.NewIncomingContext(context.Background(), metadata.Pairs("x-kratos-authenticated-identity-id", "user-1"))

	_, err := newTestMiddleware().GRPCInterceptor(ctx, nil, &grpc.UnaryServerInfo{FullMethod: "/grpc.health.v1.Health/Check"}, func(ctx context.Context, _ any) (any, error) {
		if id, ok := authentication.GetUserID(ctx); !ok || id != "user-1" {
			t.Fatalf("expected user-1 in context, got %q", id)
		}
		return nil, nil
	})

	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}
