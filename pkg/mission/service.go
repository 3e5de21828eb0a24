// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package mission

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/canonical/squad-service/internal/authorization"
	"github.com/canonical/squad-service/internal/logging"
	"github.com/canonical/squad-service/internal/monitoring"
	"github.com/canonical/squad-service/internal/storage"
	"github.com/canonical/squad-service/internal/tracing"
	"github.com/canonical/squad-service/internal/types"
	"github.com/canonical/squad-service/internal/validation"
	"github.com/canonical/squad-service/pkg/membership"
)

var _ ServiceInterface = (*Service)(nil)

type missionInput struct {
	Title string            `json:"title" validate:"required,max=120"`
	Type  types.MissionType `json:"type" validate:"oneof=team individual training"`
}

type pinInput struct {
	Title       string        `json:"title" validate:"required,max=120"`
	Description string        `json:"description" validate:"max=1000"`
	Type        types.PinType `json:"type" validate:"oneof=observation alert point-of-interest"`
	Latitude    float64       `json:"latitude" validate:"latitude"`
	Longitude   float64       `json:"longitude" validate:"longitude"`
}

type positionInput struct {
	Latitude  float64 `json:"latitude" validate:"latitude"`
	Longitude float64 `json:"longitude" validate:"longitude"`
}

type passthroughTx struct{}

func (passthroughTx) WithTx(ctx context.Context, fn func(context.Context) error) error {
	return fn(ctx)
}

type Service struct {
	storage   StorageInterface
	tx        TransactorInterface
	authz     authorization.AuthorizerInterface
	validator *validation.Validator
	timeout   time.Duration
	clock     func() time.Time

	tracer  tracing.TracingInterface
	monitor monitoring.MonitorInterface
	logger  logging.LoggerInterface
}

func (s *Service) validate(err error) error {
	if err == nil {
		return nil
	}

	var violation *validation.Violation
	if errors.As(err, &violation) {
		return &membership.ValidationError{Field: violation.Field, Reason: violation.Reason()}
	}

	return err
}

func (s *Service) bounded(ctx context.Context, op string, fn func(context.Context) error) error {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	err := fn(ctx)
	if err != nil && errors.Is(err, context.DeadlineExceeded) {
		return &membership.TimeoutError{Op: op, Err: err}
	}

	return err
}

func (s *Service) user(ctx context.Context, userID string) (*types.User, error) {
	var user *types.User
	err := s.bounded(ctx, "directory get user", func(ctx context.Context) (err error) {
		user, err = s.storage.GetUser(ctx, userID)
		return err
	})

	if errors.Is(err, storage.ErrNotFound) {
		return nil, fmt.Errorf("%s: %w", userID, membership.ErrUserNotFound)
	}

	if err != nil {
		return nil, fmt.Errorf("failed to get user %s: %w", userID, err)
	}

	return user, nil
}

func (s *Service) mission(ctx context.Context, missionID string) (*types.Mission, error) {
	var m *types.Mission
	err := s.bounded(ctx, "directory get mission", func(ctx context.Context) (err error) {
		m, err = s.storage.GetMission(ctx, missionID)
		return err
	})

	if errors.Is(err, storage.ErrNotFound) {
		return nil, fmt.Errorf("%s: %w", missionID, ErrMissionNotFound)
	}

	if err != nil {
		return nil, fmt.Errorf("failed to get mission %s: %w", missionID, err)
	}

	return m, nil
}

// participating loads an active mission the caller takes part in
func (s *Service) participating(ctx context.Context, userID, missionID string) (*types.Mission, error) {
	m, err := s.mission(ctx, missionID)
	if err != nil {
		return nil, err
	}

	if !s.authz.CheckMissionAccess(ctx, &types.User{ID: userID}, m, authorization.CAN_EDIT_PERMISSION) {
		return nil, &membership.ForbiddenError{UserID: userID, Reason: "act on mission " + missionID}
	}

	if !m.Active {
		return nil, fmt.Errorf("%s: %w", missionID, ErrMissionEnded)
	}

	return m, nil
}

func (s *Service) activeMission(ctx context.Context, userID string) (*types.Mission, error) {
	var m *types.Mission
	err := s.bounded(ctx, "directory get active mission", func(ctx context.Context) (err error) {
		m, err = s.storage.GetActiveMissionForUser(ctx, userID)
		return err
	})

	if errors.Is(err, storage.ErrNotFound) {
		return nil, nil
	}

	if err != nil {
		return nil, fmt.Errorf("failed to get active mission of %s: %w", userID, err)
	}

	return m, nil
}

// StartMission opens a mission in the caller's organization. The caller is
// always part of the team and every member must be free of active missions.
func (s *Service) StartMission(ctx context.Context, userID, title string, missionType types.MissionType, teamMembers []string) (*types.Mission, error) {
	ctx, span := s.tracer.Start(ctx, "mission.Service.StartMission")
	defer span.End()

	in := missionInput{Title: strings.TrimSpace(title), Type: missionType}

	if err := s.validate(s.validator.Struct(in)); err != nil {
		return nil, err
	}

	creator, err := s.user(ctx, userID)
	if err != nil {
		return nil, err
	}

	if !s.authz.CheckOrganizationAccess(ctx, creator, creator.OrganizationCode, authorization.MEMBER_RELATION) {
		return nil, &membership.ForbiddenError{UserID: userID, Reason: "start a mission without an organization"}
	}

	team := []string{creator.ID}
	seen := map[string]bool{creator.ID: true}

	for _, id := range teamMembers {
		id = strings.TrimSpace(id)
		if id == "" || seen[id] {
			continue
		}

		seen[id] = true

		member, err := s.user(ctx, id)
		if err != nil {
			return nil, err
		}

		if member.OrganizationCode != creator.OrganizationCode || !member.Role.HasOrganization() {
			return nil, &membership.ValidationError{Field: "team_members", Reason: fmt.Sprintf("%s is not part of organization %s", id, creator.OrganizationCode)}
		}

		team = append(team, id)
	}

	if in.Type == types.MissionTypeIndividual && len(team) > 1 {
		return nil, &membership.ValidationError{Field: "team_members", Reason: "individual missions have a single member"}
	}

	for _, id := range team {
		active, err := s.activeMission(ctx, id)
		if err != nil {
			return nil, err
		}

		if active != nil {
			return nil, fmt.Errorf("%s in %s: %w", id, active.ID, ErrActiveMissionExists)
		}
	}

	var m *types.Mission
	err = s.bounded(ctx, "directory create mission", func(ctx context.Context) (err error) {
		m, err = s.storage.CreateMission(ctx, &types.Mission{
			OrganizationCode: creator.OrganizationCode,
			Title:            in.Title,
			Type:             in.Type,
			CreatedBy:        creator.ID,
			TeamMembers:      team,
		})
		return err
	})

	if err != nil {
		return nil, fmt.Errorf("failed to create mission: %w", err)
	}

	s.logger.Infof("mission %s started by %s with %d members", m.ID, creator.ID, len(team))

	return m, nil
}

func (s *Service) AddPin(ctx context.Context, userID, missionID string, pin *types.Pin) (*types.Pin, error) {
	ctx, span := s.tracer.Start(ctx, "mission.Service.AddPin")
	defer span.End()

	if pin == nil {
		return nil, &membership.ValidationError{Field: "pin", Reason: "is required"}
	}

	in := pinInput{
		Title:       strings.TrimSpace(pin.Title),
		Description: strings.TrimSpace(pin.Description),
		Type:        pin.Type,
		Latitude:    pin.Latitude,
		Longitude:   pin.Longitude,
	}

	if err := s.validate(s.validator.Struct(in)); err != nil {
		return nil, err
	}

	m, err := s.participating(ctx, userID, missionID)
	if err != nil {
		return nil, err
	}

	var created *types.Pin
	err = s.bounded(ctx, "directory add pin", func(ctx context.Context) (err error) {
		created, err = s.storage.AddPin(ctx, &types.Pin{
			MissionID:   m.ID,
			Latitude:    in.Latitude,
			Longitude:   in.Longitude,
			Title:       in.Title,
			Description: in.Description,
			Type:        in.Type,
			CreatedBy:   userID,
		})
		return err
	})

	if err != nil {
		return nil, fmt.Errorf("failed to add pin to %s: %w", m.ID, err)
	}

	return created, nil
}

// RecordLocation moves the caller's last known position and appends it to
// the mission history in one transaction
func (s *Service) RecordLocation(ctx context.Context, userID, missionID string, latitude, longitude float64) error {
	ctx, span := s.tracer.Start(ctx, "mission.Service.RecordLocation")
	defer span.End()

	if err := s.validate(s.validator.Struct(positionInput{Latitude: latitude, Longitude: longitude})); err != nil {
		return err
	}

	m, err := s.participating(ctx, userID, missionID)
	if err != nil {
		return err
	}

	at := s.clock().UTC()

	err = s.bounded(ctx, "directory record location", func(ctx context.Context) error {
		return s.tx.WithTx(ctx, func(ctx context.Context) error {
			if err := s.storage.UpdateUserLocation(ctx, userID, latitude, longitude, at); err != nil {
				return err
			}

			return s.storage.AddLocationSample(ctx, &types.LocationSample{
				MissionID:  m.ID,
				UserID:     userID,
				Latitude:   latitude,
				Longitude:  longitude,
				RecordedAt: at,
			})
		})
	})

	if err != nil {
		return fmt.Errorf("failed to record location of %s: %w", userID, err)
	}

	return nil
}

// EndMission closes the mission and stores its duration and the distance
// covered by all members. Only the creator or an admin of the organization may
// end it.
func (s *Service) EndMission(ctx context.Context, userID, missionID string) (*types.Mission, error) {
	ctx, span := s.tracer.Start(ctx, "mission.Service.EndMission")
	defer span.End()

	m, err := s.mission(ctx, missionID)
	if err != nil {
		return nil, err
	}

	// the creator needs no directory lookup
	user := &types.User{ID: userID}
	if m.CreatedBy != userID {
		if user, err = s.user(ctx, userID); err != nil {
			return nil, err
		}
	}

	if !s.authz.CheckMissionAccess(ctx, user, m, authorization.CAN_END_PERMISSION) {
		return nil, &membership.ForbiddenError{UserID: userID, Reason: "end mission " + missionID}
	}

	if !m.Active {
		return nil, fmt.Errorf("%s: %w", missionID, ErrMissionEnded)
	}

	var samples []types.LocationSample
	err = s.bounded(ctx, "directory list samples", func(ctx context.Context) (err error) {
		samples, err = s.storage.ListLocationSamples(ctx, m.ID)
		return err
	})

	if err != nil {
		return nil, fmt.Errorf("failed to list samples of %s: %w", m.ID, err)
	}

	endedAt := s.clock().UTC()
	duration := max(int64(endedAt.Sub(m.StartedAt)/time.Second), 0)
	distance := DistanceCovered(samples)

	err = s.bounded(ctx, "directory end mission", func(ctx context.Context) error {
		return s.storage.EndMission(ctx, m.ID, endedAt, distance, duration)
	})

	if errors.Is(err, storage.ErrNotFound) {
		return nil, fmt.Errorf("%s: %w", missionID, ErrMissionEnded)
	}

	if err != nil {
		return nil, fmt.Errorf("failed to end mission %s: %w", m.ID, err)
	}

	s.logger.Infof("mission %s ended after %ds covering %.0fm", m.ID, duration, distance)

	return s.report(ctx, m.ID)
}

func (s *Service) GetActiveMission(ctx context.Context, userID string) (*types.Mission, error) {
	ctx, span := s.tracer.Start(ctx, "mission.Service.GetActiveMission")
	defer span.End()

	m, err := s.activeMission(ctx, userID)
	if err != nil {
		return nil, err
	}

	if m == nil {
		return nil, fmt.Errorf("active mission of %s: %w", userID, ErrMissionNotFound)
	}

	return s.report(ctx, m.ID)
}

// ListReports returns the caller's ended missions, newest first
func (s *Service) ListReports(ctx context.Context, userID string, page, size int64) ([]*types.Mission, error) {
	ctx, span := s.tracer.Start(ctx, "mission.Service.ListReports")
	defer span.End()

	var missions []*types.Mission
	err := s.bounded(ctx, "directory list reports", func(ctx context.Context) (err error) {
		missions, err = s.storage.ListEndedMissionsForUser(ctx, userID, page, size)
		return err
	})

	if err != nil {
		return nil, fmt.Errorf("failed to list reports of %s: %w", userID, err)
	}

	return missions, nil
}

// GetReport returns a mission with its pins and location history, visible to
// its members and to the admin of its organization
func (s *Service) GetReport(ctx context.Context, userID, missionID string) (*types.Mission, error) {
	ctx, span := s.tracer.Start(ctx, "mission.Service.GetReport")
	defer span.End()

	m, err := s.mission(ctx, missionID)
	if err != nil {
		return nil, err
	}

	user := &types.User{ID: userID}
	if !m.HasTeamMember(userID) {
		if user, err = s.user(ctx, userID); err != nil {
			return nil, err
		}
	}

	if !s.authz.CheckMissionAccess(ctx, user, m, authorization.CAN_VIEW_PERMISSION) {
		return nil, &membership.ForbiddenError{UserID: userID, Reason: "read mission " + missionID}
	}

	return s.report(ctx, m.ID)
}

func (s *Service) report(ctx context.Context, missionID string) (*types.Mission, error) {
	m, err := s.mission(ctx, missionID)
	if err != nil {
		return nil, err
	}

	err = s.bounded(ctx, "directory list pins", func(ctx context.Context) (err error) {
		m.Pins, err = s.storage.ListPins(ctx, m.ID)
		return err
	})

	if err != nil {
		return nil, fmt.Errorf("failed to list pins of %s: %w", m.ID, err)
	}

	err = s.bounded(ctx, "directory list samples", func(ctx context.Context) (err error) {
		m.LocationHistory, err = s.storage.ListLocationSamples(ctx, m.ID)
		return err
	})

	if err != nil {
		return nil, fmt.Errorf("failed to list samples of %s: %w", m.ID, err)
	}

	return m, nil
}

// NewService wires the mission flow, tx may be nil when the store has no
// transactions
func NewService(
	storage StorageInterface,
	tx TransactorInterface,
	timeout time.Duration,
	tracer tracing.TracingInterface,
	monitor monitoring.MonitorInterface,
	logger logging.LoggerInterface,
) *Service {
	s := new(Service)

	s.storage = storage
	s.authz = authorization.NewAuthorizer(tracer, monitor, logger)
	s.validator = validation.NewValidator()
	s.clock = time.Now

	s.tx = tx
	if tx == nil {
		s.tx = passthroughTx{}
	}

	s.timeout = timeout
	if timeout <= 0 {
		s.timeout = membership.DefaultExternalCallTimeout
	}

	s.tracer = tracer
	s.monitor = monitor
	s.logger = logger

	return s
}
