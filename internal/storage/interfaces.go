// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package storage

import (
	"context"
	"time"

	"github.com/canonical/squad-service/internal/types"
)

// UserStore holds the user documents of the directory
type UserStore interface {
	CreateUser(ctx context.Context, u *types.User) (*types.User, error)
	GetUser(ctx context.Context, id string) (*types.User, error)
	GetUserByEmail(ctx context.Context, email string) (*types.User, error)
	UpdateUserMembership(ctx context.Context, id string, role types.Role, organizationCode, organizationName string) error
	UpdateUserProfile(ctx context.Context, id, displayName string) error
	UpdateUserPresence(ctx context.Context, id string, online bool) error
	UpdateUserLocation(ctx context.Context, id string, latitude, longitude float64, at time.Time) error
}

// OrganizationStore holds organizations and their member sets
type OrganizationStore interface {
	CreateOrganization(ctx context.Context, o *types.Organization) (*types.Organization, error)
	GetOrganization(ctx context.Context, code string) (*types.Organization, error)
	GetOrganizationByCreationKey(ctx context.Context, key string) (*types.Organization, error)
	GetOrganizationByCreator(ctx context.Context, userID string) (*types.Organization, error)
	AddOrganizationMember(ctx context.Context, code, userID string) error
	RenameOrganization(ctx context.Context, code, name string) error
	ListOrganizationMembers(ctx context.Context, code string, page, size int64) ([]*types.User, error)
}

// MissionStore holds missions, their pins and location history
type MissionStore interface {
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

type StorageInterface interface {
	UserStore
	OrganizationStore
	MissionStore
}
