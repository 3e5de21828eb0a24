// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package membership

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"go.uber.org/mock/gomock"

	"github.com/canonical/squad-service/internal/http/types"
	"github.com/canonical/squad-service/internal/logging"
	"github.com/canonical/squad-service/internal/monitoring"
	"github.com/canonical/squad-service/internal/tracing"
	domain "github.com/canonical/squad-service/internal/types"
	"github.com/canonical/squad-service/pkg/authentication"
)

func newTestRouter(svc ServiceInterface, userID string) *chi.Mux {
	mux := chi.NewMux()

	if userID != "" {
		mux.Use(func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				next.ServeHTTP(w, r.WithContext(authentication.WithUserID(r.Context(), userID)))
			})
		})
	}

	api := NewAPI(svc, tracing.NewNoopTracer(), monitoring.NewNoopMonitor("test"), logging.NewNoopLogger())
	api.RegisterPublicEndpoints(mux)
	api.RegisterEndpoints(mux)

	return mux
}

func TestHandlers(t *testing.T) {
	tests := []struct {
		name     string
		method   string
		path     string
		body     string
		header   map[string]string
		userID   string
		setup    func(*MockServiceInterface)
		status   int
		kind     string
		validate func(*testing.T, *httptest.ResponseRecorder)
	}{
		{
			name:   "register",
			method: http.MethodPost,
			path:   "/api/v0/auth/register",
			body:   `{"email":"a@x.com","password":"secret1","display_name":"Alice"}`,
			setup: func(s *MockServiceInterface) {
				s.EXPECT().Register(gomock.Any(), "a@x.com", "secret1", "Alice").Return(&domain.User{ID: "u1", Role: domain.RolePending}, nil)
			},
			status: http.StatusCreated,
		},
		{
			name:   "register with unknown field",
			method: http.MethodPost,
			path:   "/api/v0/auth/register",
			body:   `{"mail":"a@x.com"}`,
			status: http.StatusBadRequest,
			kind:   "validation",
		},
		{
			name:   "register conflict",
			method: http.MethodPost,
			path:   "/api/v0/auth/register",
			body:   `{"email":"a@x.com","password":"secret1","display_name":"Alice"}`,
			setup: func(s *MockServiceInterface) {
				s.EXPECT().Register(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, &IdentityConflictError{Email: "a@x.com"})
			},
			status: http.StatusConflict,
			kind:   "identity_conflict",
		},
		{
			name:   "login with bad credentials",
			method: http.MethodPost,
			path:   "/api/v0/auth/login",
			body:   `{"email":"a@x.com","password":"nope"}`,
			setup: func(s *MockServiceInterface) {
				s.EXPECT().SignIn(gomock.Any(), "a@x.com", "nope").Return(nil, &InvalidCredentialsError{})
			},
			status: http.StatusUnauthorized,
			kind:   "invalid_credentials",
		},
		{
			name:   "password reset",
			method: http.MethodPost,
			path:   "/api/v0/auth/password-reset",
			body:   `{"email":"a@x.com"}`,
			setup: func(s *MockServiceInterface) {
				s.EXPECT().SendPasswordReset(gomock.Any(), "a@x.com").Return(nil)
			},
			status: http.StatusAccepted,
		},
		{
			name:   "me without caller",
			method: http.MethodGet,
			path:   "/api/v0/me",
			status: http.StatusUnauthorized,
			kind:   "unauthenticated",
		},
		{
			name:   "me",
			method: http.MethodGet,
			path:   "/api/v0/me",
			userID: "u1",
			setup: func(s *MockServiceInterface) {
				s.EXPECT().GetUser(gomock.Any(), "u1").Return(&domain.User{ID: "u1", Role: domain.RoleAdmin, OrganizationCode: "ABC123"}, nil)
			},
			status: http.StatusOK,
			validate: func(t *testing.T, w *httptest.ResponseRecorder) {
				var body struct {
					Data domain.User `json:"data"`
				}
				if err := json.NewDecoder(w.Body).Decode(&body); err != nil {
					t.Fatalf("failed to decode body: %v", err)
				}

				if body.Data.OrganizationCode != "ABC123" || body.Data.Role != domain.RoleAdmin {
					t.Fatalf("unexpected user %+v", body.Data)
				}
			},
		},
		{
			name:   "create organization forwards the idempotency key",
			method: http.MethodPost,
			path:   "/api/v0/organizations",
			body:   `{"name":"Rescue Squad"}`,
			header: map[string]string{IdempotencyKeyHeader: "req-1"},
			userID: "u1",
			setup: func(s *MockServiceInterface) {
				s.EXPECT().CreateOrganization(gomock.Any(), "u1", "Rescue Squad", "req-1").Return("ABC123", nil)
			},
			status: http.StatusCreated,
			validate: func(t *testing.T, w *httptest.ResponseRecorder) {
				if !strings.Contains(w.Body.String(), `"code":"ABC123"`) {
					t.Fatalf("expected the code in the body, got %s", w.Body.String())
				}
			},
		},
		{
			name:   "create organization partial failure",
			method: http.MethodPost,
			path:   "/api/v0/organizations",
			body:   `{"name":"Rescue Squad"}`,
			userID: "u1",
			setup: func(s *MockServiceInterface) {
				s.EXPECT().CreateOrganization(gomock.Any(), "u1", "Rescue Squad", "").Return("", &PartialFailureError{UserID: "u1", OrganizationCode: "ABC123", Err: errors.New("down")})
			},
			status: http.StatusServiceUnavailable,
			kind:   "partial_failure",
			validate: func(t *testing.T, w *httptest.ResponseRecorder) {
				var body types.ErrorResponse
				if err := json.NewDecoder(w.Body).Decode(&body); err != nil {
					t.Fatalf("failed to decode body: %v", err)
				}

				if body.Code != "ABC123" {
					t.Fatalf("expected the code to be reported, got %+v", body)
				}
			},
		},
		{
			name:   "join unknown organization",
			method: http.MethodPost,
			path:   "/api/v0/organizations/join",
			body:   `{"code":"nosuch"}`,
			userID: "u2",
			setup: func(s *MockServiceInterface) {
				s.EXPECT().JoinOrganization(gomock.Any(), "u2", "nosuch").Return(&OrganizationNotFoundError{Code: "NOSUCH"})
			},
			status: http.StatusNotFound,
			kind:   "organization_not_found",
		},
		{
			name:   "join",
			method: http.MethodPost,
			path:   "/api/v0/organizations/join",
			body:   `{"code":"abc123"}`,
			userID: "u2",
			setup: func(s *MockServiceInterface) {
				s.EXPECT().JoinOrganization(gomock.Any(), "u2", "abc123").Return(nil)
				s.EXPECT().GetUser(gomock.Any(), "u2").Return(&domain.User{ID: "u2", Role: domain.RoleMember}, nil)
			},
			status: http.StatusOK,
		},
		{
			name:   "rename forbidden",
			method: http.MethodPatch,
			path:   "/api/v0/organizations/ABC123",
			body:   `{"name":"New Name"}`,
			userID: "u2",
			setup: func(s *MockServiceInterface) {
				s.EXPECT().RenameOrganization(gomock.Any(), "u2", "ABC123", "New Name").Return(nil, &ForbiddenError{UserID: "u2"})
			},
			status: http.StatusForbidden,
			kind:   "forbidden",
		},
		{
			name:   "members with paging",
			method: http.MethodGet,
			path:   "/api/v0/organizations/ABC123/members?page=2&size=10",
			userID: "u1",
			setup: func(s *MockServiceInterface) {
				s.EXPECT().ListMembers(gomock.Any(), "u1", "ABC123", int64(2), int64(10)).Return([]*domain.User{}, nil)
			},
			status: http.StatusOK,
		},
		{
			name:   "organization read by an outsider",
			method: http.MethodGet,
			path:   "/api/v0/organizations/ABC123",
			userID: "u3",
			setup: func(s *MockServiceInterface) {
				s.EXPECT().GetOrganization(gomock.Any(), "u3", "ABC123").Return(nil, &ForbiddenError{UserID: "u3", Reason: "read organization ABC123"})
			},
			status: http.StatusForbidden,
			kind:   "forbidden",
		},
		{
			name:   "members listed by an outsider",
			method: http.MethodGet,
			path:   "/api/v0/organizations/ABC123/members",
			userID: "u3",
			setup: func(s *MockServiceInterface) {
				s.EXPECT().ListMembers(gomock.Any(), "u3", "ABC123", gomock.Any(), gomock.Any()).Return(nil, &ForbiddenError{UserID: "u3", Reason: "read organization ABC123"})
			},
			status: http.StatusForbidden,
			kind:   "forbidden",
		},
		{
			name:   "timeout",
			method: http.MethodGet,
			path:   "/api/v0/organizations/ABC123",
			userID: "u1",
			setup: func(s *MockServiceInterface) {
				s.EXPECT().GetOrganization(gomock.Any(), "u1", "ABC123").Return(nil, &TimeoutError{Op: "directory get organization", Err: context.DeadlineExceeded})
			},
			status: http.StatusGatewayTimeout,
			kind:   "timeout",
		},
		{
			name:   "presence",
			method: http.MethodPut,
			path:   "/api/v0/me/presence",
			body:   `{"online":true}`,
			userID: "u1",
			setup: func(s *MockServiceInterface) {
				s.EXPECT().SetOnline(gomock.Any(), "u1", true).Return(nil)
			},
			status: http.StatusNoContent,
		},
		{
			name:   "logout",
			method: http.MethodPost,
			path:   "/api/v0/auth/logout",
			userID: "u1",
			setup: func(s *MockServiceInterface) {
				s.EXPECT().SignOut(gomock.Any(), "u1").Return(nil)
			},
			status: http.StatusNoContent,
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			svc := NewMockServiceInterface(ctrl)
			if test.setup != nil {
				test.setup(svc)
			}

			r := httptest.NewRequest(test.method, test.path, strings.NewReader(test.body))
			for k, v := range test.header {
				r.Header.Set(k, v)
			}

			w := httptest.NewRecorder()
			newTestRouter(svc, test.userID).ServeHTTP(w, r)

			if w.Code != test.status {
				t.Fatalf("expected status %d, got %d: %s", test.status, w.Code, w.Body.String())
			}

			if test.kind != "" {
				var body types.ErrorResponse
				if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
					t.Fatalf("failed to decode error body: %v", err)
				}

				if body.Kind != test.kind || body.Status != test.status {
					t.Fatalf("expected kind %s, got %+v", test.kind, body)
				}
			}

			if test.validate != nil {
				test.validate(t, w)
			}
		})
	}
}
