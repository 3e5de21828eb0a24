// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package types

import (
	"time"
)

type Role string

const (
	RolePending Role = "pending"
	RoleAdmin   Role = "admin"
	RoleMember  Role = "member"
)

// HasOrganization reports whether the role implies an organization reference
func (r Role) HasOrganization() bool {
	return r == RoleAdmin || r == RoleMember
}

type User struct {
	ID               string     `json:"id" yaml:"id" db:"id"`
	Email            string     `json:"email" yaml:"email" db:"email"`
	DisplayName      string     `json:"display_name" yaml:"display_name" db:"display_name"`
	Role             Role       `json:"role" yaml:"role" db:"role"`
	OrganizationCode string     `json:"organization_code,omitempty" yaml:"organization_code,omitempty" db:"organization_code"`
	OrganizationName string     `json:"organization_name,omitempty" yaml:"organization_name,omitempty" db:"organization_name"`
	LastLatitude     *float64   `json:"last_latitude,omitempty" yaml:"last_latitude,omitempty" db:"last_latitude"`
	LastLongitude    *float64   `json:"last_longitude,omitempty" yaml:"last_longitude,omitempty" db:"last_longitude"`
	LastLocationAt   *time.Time `json:"last_location_at,omitempty" yaml:"last_location_at,omitempty" db:"last_location_at"`
	Online           bool       `json:"online" yaml:"online" db:"online"`
	CreatedAt        time.Time  `json:"created_at" yaml:"created_at" db:"created_at"`
	UpdatedAt        time.Time  `json:"updated_at" yaml:"updated_at" db:"updated_at"`
}

type Organization struct {
	Code        string    `json:"code" yaml:"code" db:"code"`
	Name        string    `json:"name" yaml:"name" db:"name"`
	CreatedBy   string    `json:"created_by" yaml:"created_by" db:"created_by"`
	CreationKey string    `json:"-" yaml:"-" db:"creation_key"`
	Members     []string  `json:"members" yaml:"members"`
	CreatedAt   time.Time `json:"created_at" yaml:"created_at" db:"created_at"`
}

// HasMember reports whether userID is in the member set
func (o *Organization) HasMember(userID string) bool {
	for _, m := range o.Members {
		if m == userID {
			return true
		}
	}

	return false
}

// Session is the outcome of a successful sign in
type Session struct {
	UserID           string `json:"user_id" yaml:"user_id"`
	Token            string `json:"token" yaml:"token"`
	Role             Role   `json:"role" yaml:"role"`
	OrganizationCode string `json:"organization_code,omitempty" yaml:"organization_code,omitempty"`
}

type MissionType string

const (
	MissionTypeTeam       MissionType = "team"
	MissionTypeIndividual MissionType = "individual"
	MissionTypeTraining   MissionType = "training"
)

func (t MissionType) Valid() bool {
	switch t {
	case MissionTypeTeam, MissionTypeIndividual, MissionTypeTraining:
		return true
	}

	return false
}

type PinType string

const (
	PinTypeObservation     PinType = "observation"
	PinTypeAlert           PinType = "alert"
	PinTypePointOfInterest PinType = "point-of-interest"
)

func (t PinType) Valid() bool {
	switch t {
	case PinTypeObservation, PinTypeAlert, PinTypePointOfInterest:
		return true
	}

	return false
}

type Mission struct {
	ID               string           `json:"id" yaml:"id" db:"id"`
	OrganizationCode string           `json:"organization_code" yaml:"organization_code" db:"organization_code"`
	Title            string           `json:"title" yaml:"title" db:"title"`
	Type             MissionType      `json:"type" yaml:"type" db:"type"`
	CreatedBy        string           `json:"created_by" yaml:"created_by" db:"created_by"`
	TeamMembers      []string         `json:"team_members" yaml:"team_members"`
	Active           bool             `json:"active" yaml:"active" db:"active"`
	StartedAt        time.Time        `json:"started_at" yaml:"started_at" db:"started_at"`
	EndedAt          *time.Time       `json:"ended_at,omitempty" yaml:"ended_at,omitempty" db:"ended_at"`
	DistanceMeters   float64          `json:"distance_meters" yaml:"distance_meters" db:"distance_meters"`
	DurationSeconds  int64            `json:"duration_seconds" yaml:"duration_seconds" db:"duration_seconds"`
	Pins             []Pin            `json:"pins,omitempty" yaml:"pins,omitempty"`
	LocationHistory  []LocationSample `json:"location_history,omitempty" yaml:"location_history,omitempty"`
}

// HasTeamMember reports whether userID takes part in the mission
func (m *Mission) HasTeamMember(userID string) bool {
	for _, id := range m.TeamMembers {
		if id == userID {
			return true
		}
	}

	return false
}

type Pin struct {
	ID          string    `json:"id" yaml:"id" db:"id"`
	MissionID   string    `json:"mission_id" yaml:"mission_id" db:"mission_id"`
	Latitude    float64   `json:"latitude" yaml:"latitude" db:"latitude"`
	Longitude   float64   `json:"longitude" yaml:"longitude" db:"longitude"`
	Title       string    `json:"title" yaml:"title" db:"title"`
	Description string    `json:"description,omitempty" yaml:"description,omitempty" db:"description"`
	Type        PinType   `json:"type" yaml:"type" db:"type"`
	CreatedBy   string    `json:"created_by" yaml:"created_by" db:"created_by"`
	CreatedAt   time.Time `json:"created_at" yaml:"created_at" db:"created_at"`
}

type LocationSample struct {
	MissionID  string    `json:"mission_id" yaml:"mission_id" db:"mission_id"`
	UserID     string    `json:"user_id" yaml:"user_id" db:"user_id"`
	Latitude   float64   `json:"latitude" yaml:"latitude" db:"latitude"`
	Longitude  float64   `json:"longitude" yaml:"longitude" db:"longitude"`
	RecordedAt time.Time `json:"recorded_at" yaml:"recorded_at" db:"recorded_at"`
}
