// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package mission

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"go.uber.org/mock/gomock"

	httptypes "github.com/canonical/squad-service/internal/http/types"
	"github.com/canonical/squad-service/internal/logging"
	"github.com/canonical/squad-service/internal/monitoring"
	"github.com/canonical/squad-service/internal/tracing"
	"github.com/canonical/squad-service/internal/types"
	"github.com/canonical/squad-service/pkg/authentication"
	"github.com/canonical/squad-service/pkg/membership"
)

func TestHandlers(t *testing.T) {
	tests := []struct {
		name   string
		method string
		path   string
		body   string
		setup  func(*MockServiceInterface)
		status int
		kind   string
	}{
		{
			name:   "start",
			method: http.MethodPost,
			path:   "/api/v0/missions",
			body:   `{"title":"Sweep","type":"team","team_members":["u2"]}`,
			setup: func(s *MockServiceInterface) {
				s.EXPECT().StartMission(gomock.Any(), "u1", "Sweep", types.MissionTypeTeam, []string{"u2"}).Return(&types.Mission{ID: "m1"}, nil)
			},
			status: http.StatusCreated,
		},
		{
			name:   "start while busy",
			method: http.MethodPost,
			path:   "/api/v0/missions",
			body:   `{"title":"Sweep","type":"team"}`,
			setup: func(s *MockServiceInterface) {
				s.EXPECT().StartMission(gomock.Any(), "u1", "Sweep", types.MissionTypeTeam, gomock.Any()).Return(nil, ErrActiveMissionExists)
			},
			status: http.StatusConflict,
			kind:   "active_mission_exists",
		},
		{
			name:   "no active mission",
			method: http.MethodGet,
			path:   "/api/v0/missions/active",
			setup: func(s *MockServiceInterface) {
				s.EXPECT().GetActiveMission(gomock.Any(), "u1").Return(nil, ErrMissionNotFound)
			},
			status: http.StatusNotFound,
			kind:   "mission_not_found",
		},
		{
			name:   "reports",
			method: http.MethodGet,
			path:   "/api/v0/missions/reports?page=1",
			setup: func(s *MockServiceInterface) {
				s.EXPECT().ListReports(gomock.Any(), "u1", int64(1), int64(0)).Return([]*types.Mission{}, nil)
			},
			status: http.StatusOK,
		},
		{
			name:   "pin on a mission of another team",
			method: http.MethodPost,
			path:   "/api/v0/missions/m1/pins",
			body:   `{"title":"Tracks","type":"alert","latitude":1,"longitude":2}`,
			setup: func(s *MockServiceInterface) {
				s.EXPECT().AddPin(gomock.Any(), "u1", "m1", gomock.Any()).Return(nil, &membership.ForbiddenError{UserID: "u1"})
			},
			status: http.StatusForbidden,
			kind:   "forbidden",
		},
		{
			name:   "location",
			method: http.MethodPost,
			path:   "/api/v0/missions/m1/locations",
			body:   `{"latitude":46.5,"longitude":7.9}`,
			setup: func(s *MockServiceInterface) {
				s.EXPECT().RecordLocation(gomock.Any(), "u1", "m1", 46.5, 7.9).Return(nil)
			},
			status: http.StatusNoContent,
		},
		{
			name:   "end an ended mission",
			method: http.MethodPost,
			path:   "/api/v0/missions/m1/end",
			setup: func(s *MockServiceInterface) {
				s.EXPECT().EndMission(gomock.Any(), "u1", "m1").Return(nil, ErrMissionEnded)
			},
			status: http.StatusConflict,
			kind:   "mission_ended",
		},
		{
			name:   "report",
			method: http.MethodGet,
			path:   "/api/v0/missions/m1",
			setup: func(s *MockServiceInterface) {
				s.EXPECT().GetReport(gomock.Any(), "u1", "m1").Return(&types.Mission{ID: "m1"}, nil)
			},
			status: http.StatusOK,
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			svc := NewMockServiceInterface(ctrl)
			test.setup(svc)

			mux := chi.NewMux()
			mux.Use(func(next http.Handler) http.Handler {
				return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
					next.ServeHTTP(w, r.WithContext(authentication.WithUserID(r.Context(), "u1")))
				})
			})

			NewAPI(svc, tracing.NewNoopTracer(), monitoring.NewNoopMonitor("test"), logging.NewNoopLogger()).RegisterEndpoints(mux)

			w := httptest.NewRecorder()
			mux.ServeHTTP(w, httptest.NewRequest(test.method, test.path, strings.NewReader(test.body)))

			if w.Code != test.status {
				t.Fatalf("expected status %d, got %d: %s", test.status, w.Code, w.Body.String())
			}

			if test.kind == "" {
				return
			}

			var body httptypes.ErrorResponse
			if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
				t.Fatalf("failed to decode error body: %v", err)
			}

			if body.Kind != test.kind {
				t.Fatalf("expected kind %s, got %s", test.kind, body.Kind)
			}
		})
	}
}

func TestHandlersRequireCaller(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mux := chi.NewMux()
	NewAPI(NewMockServiceInterface(ctrl), tracing.NewNoopTracer(), monitoring.NewNoopMonitor("test"), logging.NewNoopLogger()).RegisterEndpoints(mux)

	w := httptest.NewRecorder()
	mux.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v0/missions/active", nil))

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected status %d, got %d", http.StatusUnauthorized, w.Code)
	}
}
