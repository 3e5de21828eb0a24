// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package mission

import (
	"context"
	"time"

	"github.com/canonical/squad-service/internal/types"
)

type ServiceInterface interface {
	StartMission(ctx context.Context, userID, title string, missionType types.MissionType, teamMembers []string) (*types.Mission, error)
	AddPin(ctx context.Context, userID, missionID string, pin *types.Pin) (*types.Pin, error)
	RecordLocation(ctx context.Context, userID, missionID string, latitude, longitude float64) error
	EndMission(ctx context.Context, userID, missionID string) (*types.Mission, error)
	GetActiveMission(ctx context.Context, userID string) (*types.Mission, error)
	ListReports(ctx context.Context, userID string, page, size int64) ([]*types.Mission, error)
	GetReport(ctx context.Context, userID, missionID string) (*types.Mission, error)
}

// StorageInterface is the part of the directory store missions rely on
type StorageInterface interface {
	GetUser(ctx context.Context, id string) (*types.User, error)
	UpdateUserLocation(ctx context.Context, id string, latitude, longitude float64, at time.Time) error
	CreateMission(ctx context.Context, m *types.Mission) (*types.Mission, error)
	GetMission(ctx context.Context, id string) (*types.Mission, error)
	GetActiveMissionForUser(ctx context.Context, userID string) (*types.Mission, error)
	EndMission(ctx context.Context, id string, endedAt time.Time, distanceMeters float64, durationSeconds int64) error
	ListEndedMissionsForUser(ctx context.Context, userID string, page, size int64) ([]*types.Mission, error)
	AddPin(ctx context.Context, p *types.Pin) (*types.Pin, error)
	ListPins(ctx context.Context, missionID string) ([]types.Pin, error)
	AddLocationSample(ctx context.Context, s *types.LocationSample) error
	ListLocationSamples(ctx context.Context, missionID string) ([]types.LocationSample, error)
}

// TransactorInterface runs fn inside a single database transaction
type TransactorInterface interface {
	WithTx(ctx context.Context, fn func(context.Context) error) error
}
