// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package mission

import (
	"context"
	"errors"
	"math"
	"testing"
	"time"

	"go.uber.org/mock/gomock"

	"github.com/canonical/squad-service/internal/logging"
	"github.com/canonical/squad-service/internal/monitoring"
	"github.com/canonical/squad-service/internal/storage"
	"github.com/canonical/squad-service/internal/tracing"
	"github.com/canonical/squad-service/internal/types"
	"github.com/canonical/squad-service/pkg/membership"
)

//go:generate mockgen -build_flags=--mod=mod -package mission -destination ./mock_mission.go -source=./interfaces.go

type clock struct {
	now time.Time
}

func (c *clock) Now() time.Time {
	return c.now
}

func (c *clock) Advance(d time.Duration) {
	c.now = c.now.Add(d)
}

type fixture struct {
	service *Service
	storage *storage.MemoryStorage
	clock   *clock
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	f := new(fixture)
	f.clock = &clock{now: time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)}
	f.storage = storage.NewMemoryStorage(tracing.NewNoopTracer(), monitoring.NewNoopMonitor("test"), logging.NewNoopLogger()).WithClock(f.clock.Now)
	f.service = NewService(f.storage, nil, time.Second, tracing.NewNoopTracer(), monitoring.NewNoopMonitor("test"), logging.NewNoopLogger())
	f.service.clock = f.clock.Now

	ctx := context.Background()

	for _, id := range []string{"admin", "alice", "bob", "pending", "outsider"} {
		if _, err := f.storage.CreateUser(ctx, &types.User{ID: id, Email: id + "@x.com", DisplayName: id}); err != nil {
			t.Fatalf("failed to seed user: %v", err)
		}
	}

	for _, o := range []struct{ code, admin string }{{"ABC123", "admin"}, {"XYZ789", "outsider"}} {
		if _, err := f.storage.CreateOrganization(ctx, &types.Organization{Code: o.code, Name: o.code, CreatedBy: o.admin, CreationKey: o.code}); err != nil {
			t.Fatalf("failed to seed organization: %v", err)
		}
	}

	for _, m := range []struct {
		id   string
		role types.Role
		code string
	}{
		{"admin", types.RoleAdmin, "ABC123"},
		{"alice", types.RoleMember, "ABC123"},
		{"bob", types.RoleMember, "ABC123"},
		{"outsider", types.RoleAdmin, "XYZ789"},
	} {
		if err := f.storage.AddOrganizationMember(ctx, m.code, m.id); err != nil {
			t.Fatalf("failed to seed member: %v", err)
		}

		if err := f.storage.UpdateUserMembership(ctx, m.id, m.role, m.code, m.code); err != nil {
			t.Fatalf("failed to seed membership: %v", err)
		}
	}

	return f
}

func TestHaversine(t *testing.T) {
	tests := []struct {
		name                   string
		lat1, lon1, lat2, lon2 float64
		expected               float64
	}{
		{"same point", 51.5, -0.12, 51.5, -0.12, 0},
		{"one degree of longitude at the equator", 0, 0, 0, 1, 111195.08},
		{"one degree of latitude", 10, 20, 11, 20, 111195.08},
		{"antipodes", 0, 0, 0, 180, math.Pi * earthRadiusMeters},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			if got := Haversine(test.lat1, test.lon1, test.lat2, test.lon2); math.Abs(got-test.expected) > 1 {
				t.Fatalf("expected %.2f, got %.2f", test.expected, got)
			}
		})
	}
}

func TestDistanceCoveredFollowsEachUser(t *testing.T) {
	samples := []types.LocationSample{
		{UserID: "a", Latitude: 0, Longitude: 0},
		{UserID: "b", Latitude: 45, Longitude: 45},
		{UserID: "a", Latitude: 0, Longitude: 1},
		{UserID: "b", Latitude: 45, Longitude: 45},
		{UserID: "a", Latitude: 0, Longitude: 2},
	}

	if got := DistanceCovered(samples); math.Abs(got-2*111195.08) > 2 {
		t.Fatalf("expected two degrees of travel, got %.2f", got)
	}

	if got := DistanceCovered(nil); got != 0 {
		t.Fatalf("expected no distance without samples, got %.2f", got)
	}
}

func TestStartMission(t *testing.T) {
	tests := []struct {
		name    string
		userID  string
		title   string
		kind    types.MissionType
		team    []string
		check   func(*testing.T, *types.Mission, error)
		prepare func(*testing.T, *fixture)
	}{
		{
			name:   "creator is always part of the team",
			userID: "alice",
			title:  " Sweep ",
			kind:   types.MissionTypeTeam,
			team:   []string{"bob", "bob", ""},
			check: func(t *testing.T, m *types.Mission, err error) {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}

				if !m.Active || m.Title != "Sweep" || m.OrganizationCode != "ABC123" || len(m.TeamMembers) != 2 || !m.HasTeamMember("alice") {
					t.Fatalf("unexpected mission %+v", m)
				}
			},
		},
		{
			name:   "unknown type",
			userID: "alice",
			title:  "Sweep",
			kind:   "patrol",
			check:  expectValidation("type"),
		},
		{
			name:   "missing title",
			userID: "alice",
			kind:   types.MissionTypeTeam,
			check:  expectValidation("title"),
		},
		{
			name:   "pending user",
			userID: "pending",
			title:  "Sweep",
			kind:   types.MissionTypeTeam,
			check: func(t *testing.T, _ *types.Mission, err error) {
				var e *membership.ForbiddenError
				if !errors.As(err, &e) {
					t.Fatalf("expected ForbiddenError, got %v", err)
				}
			},
		},
		{
			name:   "member from another organization",
			userID: "alice",
			title:  "Sweep",
			kind:   types.MissionTypeTeam,
			team:   []string{"outsider"},
			check:  expectValidation("team_members"),
		},
		{
			name:   "individual mission with a team",
			userID: "alice",
			title:  "Solo",
			kind:   types.MissionTypeIndividual,
			team:   []string{"bob"},
			check:  expectValidation("team_members"),
		},
		{
			name:   "member already on a mission",
			userID: "alice",
			title:  "Second",
			kind:   types.MissionTypeTeam,
			team:   []string{"bob"},
			prepare: func(t *testing.T, f *fixture) {
				if _, err := f.service.StartMission(context.Background(), "bob", "First", types.MissionTypeTraining, nil); err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
			},
			check: func(t *testing.T, _ *types.Mission, err error) {
				if !errors.Is(err, ErrActiveMissionExists) {
					t.Fatalf("expected ErrActiveMissionExists, got %v", err)
				}
			},
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			f := newFixture(t)

			if test.prepare != nil {
				test.prepare(t, f)
			}

			m, err := f.service.StartMission(context.Background(), test.userID, test.title, test.kind, test.team)
			test.check(t, m, err)
		})
	}
}

func expectValidation(field string) func(*testing.T, *types.Mission, error) {
	return func(t *testing.T, _ *types.Mission, err error) {
		t.Helper()

		var e *membership.ValidationError
		if !errors.As(err, &e) || e.Field != field {
			t.Fatalf("expected ValidationError on %s, got %v", field, err)
		}
	}
}

func TestMissionLifecycle(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	m, err := f.service.StartMission(ctx, "alice", "Sweep", types.MissionTypeTeam, []string{"bob"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var validation *membership.ValidationError
	if _, err := f.service.AddPin(ctx, "alice", m.ID, &types.Pin{Title: "Tracks", Type: types.PinTypeObservation, Latitude: 91}); !errors.As(err, &validation) {
		t.Fatalf("expected ValidationError for an out of range latitude, got %v", err)
	}

	if _, err := f.service.AddPin(ctx, "alice", m.ID, &types.Pin{Title: "Tracks", Type: "flag"}); !errors.As(err, &validation) {
		t.Fatalf("expected ValidationError for an unknown pin type, got %v", err)
	}

	var forbidden *membership.ForbiddenError
	if _, err := f.service.AddPin(ctx, "admin", m.ID, &types.Pin{Title: "Tracks", Type: types.PinTypeAlert}); !errors.As(err, &forbidden) {
		t.Fatalf("expected ForbiddenError for a non member, got %v", err)
	}

	pin, err := f.service.AddPin(ctx, "bob", m.ID, &types.Pin{Title: "Tracks", Type: types.PinTypePointOfInterest, Latitude: 46.5, Longitude: 7.9})
	if err != nil || pin.ID == "" || pin.CreatedBy != "bob" || pin.MissionID != m.ID {
		t.Fatalf("unexpected pin %+v %v", pin, err)
	}

	for _, p := range []struct {
		user     string
		lat, lon float64
	}{
		{"alice", 0, 0},
		{"bob", 10, 10},
		{"alice", 0, 1},
		{"bob", 10, 10},
	} {
		f.clock.Advance(time.Minute)

		if err := f.service.RecordLocation(ctx, p.user, m.ID, p.lat, p.lon); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}

	if err := f.service.RecordLocation(ctx, "alice", m.ID, 0, 181); !errors.As(err, &validation) {
		t.Fatalf("expected ValidationError for an out of range longitude, got %v", err)
	}

	if u, _ := f.storage.GetUser(ctx, "alice"); u.LastLatitude == nil || *u.LastLongitude != 1 {
		t.Fatalf("expected alice's last location to be updated, got %+v", u)
	}

	active, err := f.service.GetActiveMission(ctx, "bob")
	if err != nil || active.ID != m.ID || len(active.Pins) != 1 || len(active.LocationHistory) != 4 {
		t.Fatalf("unexpected active mission %+v %v", active, err)
	}

	if _, err := f.service.EndMission(ctx, "bob", m.ID); !errors.As(err, &forbidden) {
		t.Fatalf("expected ForbiddenError when a non creator member ends the mission, got %v", err)
	}

	f.clock.Advance(56 * time.Minute)

	ended, err := f.service.EndMission(ctx, "alice", m.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if ended.Active || ended.EndedAt == nil || ended.DurationSeconds != 3600 {
		t.Fatalf("unexpected ended mission %+v", ended)
	}

	if math.Abs(ended.DistanceMeters-111195.08) > 1 {
		t.Fatalf("expected one degree of travel, got %.2f", ended.DistanceMeters)
	}

	if _, err := f.service.AddPin(ctx, "alice", m.ID, &types.Pin{Title: "Late", Type: types.PinTypeAlert}); !errors.Is(err, ErrMissionEnded) {
		t.Fatalf("expected ErrMissionEnded, got %v", err)
	}

	if _, err := f.service.EndMission(ctx, "alice", m.ID); !errors.Is(err, ErrMissionEnded) {
		t.Fatalf("expected ErrMissionEnded on a second end, got %v", err)
	}

	if _, err := f.service.GetActiveMission(ctx, "alice"); !errors.Is(err, ErrMissionNotFound) {
		t.Fatalf("expected ErrMissionNotFound, got %v", err)
	}
}

func TestReports(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	first, err := f.service.StartMission(ctx, "alice", "First", types.MissionTypeTraining, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	f.clock.Advance(time.Hour)

	// the organization admin may end a mission they did not start
	if _, err := f.service.EndMission(ctx, "admin", first.ID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	second, err := f.service.StartMission(ctx, "alice", "Second", types.MissionTypeTraining, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	f.clock.Advance(time.Hour)

	if _, err := f.service.EndMission(ctx, "alice", second.ID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	reports, err := f.service.ListReports(ctx, "alice", 1, 10)
	if err != nil || len(reports) != 2 || reports[0].ID != second.ID {
		t.Fatalf("expected newest report first, got %v %v", reports, err)
	}

	if _, err := f.service.GetReport(ctx, "admin", first.ID); err != nil {
		t.Fatalf("expected the organization admin to read the report, got %v", err)
	}

	var forbidden *membership.ForbiddenError
	if _, err := f.service.GetReport(ctx, "outsider", first.ID); !errors.As(err, &forbidden) {
		t.Fatalf("expected ForbiddenError for another organization's admin, got %v", err)
	}

	if _, err := f.service.GetReport(ctx, "alice", "missing"); !errors.Is(err, ErrMissionNotFound) {
		t.Fatalf("expected ErrMissionNotFound, got %v", err)
	}
}

func TestRecordLocationRunsInOneTransaction(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	s := NewMockStorageInterface(ctrl)
	tx := NewMockTransactorInterface(ctrl)

	svc := NewService(s, tx, time.Second, tracing.NewNoopTracer(), monitoring.NewNoopMonitor("test"), logging.NewNoopLogger())

	s.EXPECT().GetMission(gomock.Any(), "m1").Return(&types.Mission{ID: "m1", Active: true, TeamMembers: []string{"u1"}}, nil)

	tx.EXPECT().WithTx(gomock.Any(), gomock.Any()).DoAndReturn(
		func(ctx context.Context, fn func(context.Context) error) error {
			return fn(ctx)
		},
	)

	s.EXPECT().UpdateUserLocation(gomock.Any(), "u1", 1.5, 2.5, gomock.Any()).Return(nil)
	s.EXPECT().AddLocationSample(gomock.Any(), gomock.Any()).Return(errors.New("insert failed"))

	if err := svc.RecordLocation(context.Background(), "u1", "m1", 1.5, 2.5); err == nil {
		t.Fatal("expected the failing sample insert to fail the transaction")
	}
}

func TestErrorStatus(t *testing.T) {
	tests := []struct {
		err    error
		status int
	}{
		{ErrMissionNotFound, 404},
		{ErrActiveMissionExists, 409},
		{ErrMissionEnded, 409},
		{&membership.ValidationError{}, 400},
		{errors.New("boom"), 500},
	}

	for _, test := range tests {
		if status, _ := ErrorStatus(test.err); status != test.status {
			t.Fatalf("expected %d for %v, got %d", test.status, test.err, status)
		}
	}
}
