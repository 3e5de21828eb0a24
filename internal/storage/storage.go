// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package storage

import (
	"context"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	"github.com/canonical/squad-service/internal/db"
	"github.com/canonical/squad-service/internal/logging"
	"github.com/canonical/squad-service/internal/monitoring"
	"github.com/canonical/squad-service/internal/tracing"
	"github.com/canonical/squad-service/internal/types"
)

var _ StorageInterface = (*Storage)(nil)

var userColumns = []string{
	"u.id",
	"u.email",
	"u.display_name",
	"u.role",
	"COALESCE(u.organization_code, '')",
	"COALESCE(u.organization_name, '')",
	"u.last_latitude",
	"u.last_longitude",
	"u.last_location_at",
	"u.online",
	"u.created_at",
	"u.updated_at",
}

var missionColumns = []string{
	"m.id",
	"m.organization_code",
	"m.title",
	"m.type",
	"m.created_by",
	"m.active",
	"m.started_at",
	"m.ended_at",
	"m.distance_meters",
	"m.duration_seconds",
}

type scanner interface {
	Scan(...any) error
}

func scanUser(row scanner) (*types.User, error) {
	u := new(types.User)

	err := row.Scan(
		&u.ID, &u.Email, &u.DisplayName, &u.Role, &u.OrganizationCode, &u.OrganizationName,
		&u.LastLatitude, &u.LastLongitude, &u.LastLocationAt, &u.Online, &u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	return u, nil
}

func scanMission(row scanner) (*types.Mission, error) {
	m := new(types.Mission)

	err := row.Scan(
		&m.ID, &m.OrganizationCode, &m.Title, &m.Type, &m.CreatedBy, &m.Active,
		&m.StartedAt, &m.EndedAt, &m.DistanceMeters, &m.DurationSeconds,
	)
	if err != nil {
		return nil, err
	}

	return m, nil
}

// Storage is the PostgreSQL directory store
type Storage struct {
	db db.DBClientInterface

	logger  logging.LoggerInterface
	tracer  tracing.TracingInterface
	monitor monitoring.MonitorInterface
}

func (s *Storage) CreateUser(ctx context.Context, u *types.User) (*types.User, error) {
	ctx, span := s.tracer.Start(ctx, "storage.Storage.CreateUser")
	defer span.End()

	role := u.Role
	if role == "" {
		role = types.RolePending
	}

	created := *u
	created.Role = role

	err := s.db.Statement(ctx).
		Insert("users").
		Columns("id", "email", "display_name", "role").
		Values(u.ID, u.Email, u.DisplayName, string(role)).
		Suffix("RETURNING created_at, updated_at").
		QueryRowContext(ctx).
		Scan(&created.CreatedAt, &created.UpdatedAt)

	if err != nil {
		return nil, translate(err, "insert user")
	}

	return &created, nil
}

func (s *Storage) GetUser(ctx context.Context, id string) (*types.User, error) {
	ctx, span := s.tracer.Start(ctx, "storage.Storage.GetUser")
	defer span.End()

	row := s.db.Statement(ctx).
		Select(userColumns...).
		From("users u").
		Where(sq.Eq{"u.id": id}).
		QueryRowContext(ctx)

	u, err := scanUser(row)
	if err != nil {
		return nil, translate(err, "get user")
	}

	return u, nil
}

func (s *Storage) GetUserByEmail(ctx context.Context, email string) (*types.User, error) {
	ctx, span := s.tracer.Start(ctx, "storage.Storage.GetUserByEmail")
	defer span.End()

	row := s.db.Statement(ctx).
		Select(userColumns...).
		From("users u").
		Where(sq.Eq{"lower(u.email)": normalizeEmail(email)}).
		QueryRowContext(ctx)

	u, err := scanUser(row)
	if err != nil {
		return nil, translate(err, "get user by email")
	}

	return u, nil
}

// updateUser applies values to a user row and fails with ErrNotFound when
// the row does not exist
func (s *Storage) updateUser(ctx context.Context, id, op string, values map[string]any) error {
	values["updated_at"] = sq.Expr("NOW()")

	res, err := s.db.Statement(ctx).
		Update("users").
		SetMap(values).
		Where(sq.Eq{"id": id}).
		ExecContext(ctx)

	if err != nil {
		return translate(err, op)
	}

	rows, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check rows affected: %w", err)
	}

	if rows == 0 {
		return fmt.Errorf("%s: %w", op, ErrNotFound)
	}

	return nil
}

func (s *Storage) UpdateUserMembership(ctx context.Context, id string, role types.Role, organizationCode, organizationName string) error {
	ctx, span := s.tracer.Start(ctx, "storage.Storage.UpdateUserMembership")
	defer span.End()

	return s.updateUser(ctx, id, "update user membership", map[string]any{
		"role":              string(role),
		"organization_code": organizationCode,
		"organization_name": organizationName,
	})
}

func (s *Storage) UpdateUserProfile(ctx context.Context, id, displayName string) error {
	ctx, span := s.tracer.Start(ctx, "storage.Storage.UpdateUserProfile")
	defer span.End()

	return s.updateUser(ctx, id, "update user profile", map[string]any{
		"display_name": displayName,
	})
}

func (s *Storage) UpdateUserPresence(ctx context.Context, id string, online bool) error {
	ctx, span := s.tracer.Start(ctx, "storage.Storage.UpdateUserPresence")
	defer span.End()

	return s.updateUser(ctx, id, "update user presence", map[string]any{
		"online": online,
	})
}

func (s *Storage) UpdateUserLocation(ctx context.Context, id string, latitude, longitude float64, at time.Time) error {
	ctx, span := s.tracer.Start(ctx, "storage.Storage.UpdateUserLocation")
	defer span.End()

	return s.updateUser(ctx, id, "update user location", map[string]any{
		"last_latitude":    latitude,
		"last_longitude":   longitude,
		"last_location_at": at,
	})
}

// CreateOrganization inserts the organization together with its creator as
// first member, both rows commit or neither does
func (s *Storage) CreateOrganization(ctx context.Context, o *types.Organization) (*types.Organization, error) {
	ctx, span := s.tracer.Start(ctx, "storage.Storage.CreateOrganization")
	defer span.End()

	created := *o
	created.Members = []string{o.CreatedBy}

	err := s.db.WithTx(ctx, func(ctx context.Context) error {
		err := s.db.Statement(ctx).
			Insert("organizations").
			Columns("code", "name", "created_by", "creation_key").
			Values(o.Code, o.Name, o.CreatedBy, o.CreationKey).
			Suffix("RETURNING created_at").
			QueryRowContext(ctx).
			Scan(&created.CreatedAt)

		if err != nil {
			return translate(err, "insert organization")
		}

		_, err = s.db.Statement(ctx).
			Insert("organization_members").
			Columns("organization_code", "user_id").
			Values(o.Code, o.CreatedBy).
			ExecContext(ctx)

		return translate(err, "insert organization creator")
	})

	if err != nil {
		return nil, err
	}

	return &created, nil
}

func (s *Storage) getOrganizationBy(ctx context.Context, where sq.Eq, op string) (*types.Organization, error) {
	o := new(types.Organization)

	err := s.db.Statement(ctx).
		Select("code", "name", "created_by", "creation_key", "created_at").
		From("organizations").
		Where(where).
		QueryRowContext(ctx).
		Scan(&o.Code, &o.Name, &o.CreatedBy, &o.CreationKey, &o.CreatedAt)

	if err != nil {
		return nil, translate(err, op)
	}

	rows, err := s.db.Statement(ctx).
		Select("user_id").
		From("organization_members").
		Where(sq.Eq{"organization_code": o.Code}).
		OrderBy("joined_at", "user_id").
		QueryContext(ctx)

	if err != nil {
		return nil, translate(err, "list organization members")
	}
	defer rows.Close()

	o.Members = make([]string, 0)
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan organization member: %w", err)
		}
		o.Members = append(o.Members, id)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return o, nil
}

func (s *Storage) GetOrganization(ctx context.Context, code string) (*types.Organization, error) {
	ctx, span := s.tracer.Start(ctx, "storage.Storage.GetOrganization")
	defer span.End()

	return s.getOrganizationBy(ctx, sq.Eq{"code": code}, "get organization")
}

func (s *Storage) GetOrganizationByCreationKey(ctx context.Context, key string) (*types.Organization, error) {
	ctx, span := s.tracer.Start(ctx, "storage.Storage.GetOrganizationByCreationKey")
	defer span.End()

	return s.getOrganizationBy(ctx, sq.Eq{"creation_key": key}, "get organization by creation key")
}

// GetOrganizationByCreator returns the organization created by the user, a
// user creates at most one
func (s *Storage) GetOrganizationByCreator(ctx context.Context, userID string) (*types.Organization, error) {
	ctx, span := s.tracer.Start(ctx, "storage.Storage.GetOrganizationByCreator")
	defer span.End()

	return s.getOrganizationBy(ctx, sq.Eq{"created_by": userID}, "get organization by creator")
}

// AddOrganizationMember is a set union, adding an existing member is a no-op
func (s *Storage) AddOrganizationMember(ctx context.Context, code, userID string) error {
	ctx, span := s.tracer.Start(ctx, "storage.Storage.AddOrganizationMember")
	defer span.End()

	_, err := s.db.Statement(ctx).
		Insert("organization_members").
		Columns("organization_code", "user_id").
		Values(code, userID).
		Suffix("ON CONFLICT (organization_code, user_id) DO NOTHING").
		ExecContext(ctx)

	return translate(err, "add organization member")
}

func (s *Storage) RenameOrganization(ctx context.Context, code, name string) error {
	ctx, span := s.tracer.Start(ctx, "storage.Storage.RenameOrganization")
	defer span.End()

	err := s.db.WithTx(ctx, func(ctx context.Context) error {
		res, err := s.db.Statement(ctx).
			Update("organizations").
			Set("name", name).
			Where(sq.Eq{"code": code}).
			ExecContext(ctx)

		if err != nil {
			return translate(err, "rename organization")
		}

		if n, err := res.RowsAffected(); err != nil {
			return fmt.Errorf("failed to check rows affected: %w", err)
		} else if n == 0 {
			return fmt.Errorf("rename organization: %w", ErrNotFound)
		}

		_, err = s.db.Statement(ctx).
			Update("users").
			Set("organization_name", name).
			Set("updated_at", sq.Expr("NOW()")).
			Where(sq.Eq{"organization_code": code}).
			ExecContext(ctx)

		return translate(err, "rename organization on users")
	})

	return err
}

func (s *Storage) ListOrganizationMembers(ctx context.Context, code string, page, size int64) ([]*types.User, error) {
	ctx, span := s.tracer.Start(ctx, "storage.Storage.ListOrganizationMembers")
	defer span.End()

	pageSize := db.PageSize(size)

	rows, err := s.db.Statement(ctx).
		Select(userColumns...).
		From("organization_members om").
		Join("users u ON u.id = om.user_id").
		Where(sq.Eq{"om.organization_code": code}).
		OrderBy("om.joined_at", "u.id").
		Limit(pageSize).
		Offset(db.Offset(page, pageSize)).
		QueryContext(ctx)

	if err != nil {
		return nil, translate(err, "list organization members")
	}
	defer rows.Close()

	users := make([]*types.User, 0)
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan user: %w", err)
		}
		users = append(users, u)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return users, nil
}

func (s *Storage) CreateMission(ctx context.Context, m *types.Mission) (*types.Mission, error) {
	ctx, span := s.tracer.Start(ctx, "storage.Storage.CreateMission")
	defer span.End()

	id, err := uuid.NewV7()
	if err != nil {
		return nil, fmt.Errorf("failed to generate mission ID: %w", err)
	}

	created := *m
	created.ID = id.String()
	created.Active = true

	err = s.db.WithTx(ctx, func(ctx context.Context) error {
		err := s.db.Statement(ctx).
			Insert("missions").
			Columns("id", "organization_code", "title", "type", "created_by").
			Values(created.ID, m.OrganizationCode, m.Title, string(m.Type), m.CreatedBy).
			Suffix("RETURNING started_at").
			QueryRowContext(ctx).
			Scan(&created.StartedAt)

		if err != nil {
			return translate(err, "insert mission")
		}

		insert := s.db.Statement(ctx).
			Insert("mission_members").
			Columns("mission_id", "user_id")

		for _, member := range m.TeamMembers {
			insert = insert.Values(created.ID, member)
		}

		_, err = insert.Suffix("ON CONFLICT DO NOTHING").ExecContext(ctx)

		return translate(err, "insert mission members")
	})

	if err != nil {
		return nil, err
	}

	return &created, nil
}

func (s *Storage) missionMembers(ctx context.Context, missionID string) ([]string, error) {
	rows, err := s.db.Statement(ctx).
		Select("user_id").
		From("mission_members").
		Where(sq.Eq{"mission_id": missionID}).
		OrderBy("user_id").
		QueryContext(ctx)

	if err != nil {
		return nil, translate(err, "list mission members")
	}
	defer rows.Close()

	members := make([]string, 0)
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan mission member: %w", err)
		}
		members = append(members, id)
	}

	return members, rows.Err()
}

func (s *Storage) getMissionBy(ctx context.Context, query sq.SelectBuilder, op string) (*types.Mission, error) {
	m, err := scanMission(query.QueryRowContext(ctx))
	if err != nil {
		return nil, translate(err, op)
	}

	if m.TeamMembers, err = s.missionMembers(ctx, m.ID); err != nil {
		return nil, err
	}

	return m, nil
}

func (s *Storage) GetMission(ctx context.Context, id string) (*types.Mission, error) {
	ctx, span := s.tracer.Start(ctx, "storage.Storage.GetMission")
	defer span.End()

	if _, err := uuid.Parse(id); err != nil {
		return nil, fmt.Errorf("get mission %q: %w", id, ErrNotFound)
	}

	query := s.db.Statement(ctx).
		Select(missionColumns...).
		From("missions m").
		Where(sq.Eq{"m.id": id})

	return s.getMissionBy(ctx, query, "get mission")
}

func (s *Storage) GetActiveMissionForUser(ctx context.Context, userID string) (*types.Mission, error) {
	ctx, span := s.tracer.Start(ctx, "storage.Storage.GetActiveMissionForUser")
	defer span.End()

	query := s.db.Statement(ctx).
		Select(missionColumns...).
		From("missions m").
		Join("mission_members mm ON mm.mission_id = m.id").
		Where(sq.Eq{"mm.user_id": userID, "m.active": true}).
		OrderBy("m.started_at DESC").
		Limit(1)

	return s.getMissionBy(ctx, query, "get active mission")
}

func (s *Storage) EndMission(ctx context.Context, id string, endedAt time.Time, distanceMeters float64, durationSeconds int64) error {
	ctx, span := s.tracer.Start(ctx, "storage.Storage.EndMission")
	defer span.End()

	res, err := s.db.Statement(ctx).
		Update("missions").
		SetMap(map[string]any{
			"active":           false,
			"ended_at":         endedAt,
			"distance_meters":  distanceMeters,
			"duration_seconds": durationSeconds,
		}).
		Where(sq.Eq{"id": id, "active": true}).
		ExecContext(ctx)

	if err != nil {
		return translate(err, "end mission")
	}

	if n, err := res.RowsAffected(); err != nil {
		return fmt.Errorf("failed to check rows affected: %w", err)
	} else if n == 0 {
		return fmt.Errorf("end mission: %w", ErrNotFound)
	}

	return nil
}

func (s *Storage) ListEndedMissionsForUser(ctx context.Context, userID string, page, size int64) ([]*types.Mission, error) {
	ctx, span := s.tracer.Start(ctx, "storage.Storage.ListEndedMissionsForUser")
	defer span.End()

	pageSize := db.PageSize(size)

	rows, err := s.db.Statement(ctx).
		Select(missionColumns...).
		From("missions m").
		Join("mission_members mm ON mm.mission_id = m.id").
		Where(sq.Eq{"mm.user_id": userID, "m.active": false}).
		OrderBy("m.ended_at DESC").
		Limit(pageSize).
		Offset(db.Offset(page, pageSize)).
		QueryContext(ctx)

	if err != nil {
		return nil, translate(err, "list ended missions")
	}

	missions := make([]*types.Mission, 0)
	for rows.Next() {
		m, err := scanMission(rows)
		if err != nil {
			rows.Close()
			return nil, fmt.Errorf("failed to scan mission: %w", err)
		}
		missions = append(missions, m)
	}

	err = rows.Err()
	rows.Close()

	if err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	// members are loaded once the result set is closed, the lazy
	// transaction runs a single statement at a time
	for _, m := range missions {
		if m.TeamMembers, err = s.missionMembers(ctx, m.ID); err != nil {
			return nil, err
		}
	}

	return missions, nil
}

func (s *Storage) AddPin(ctx context.Context, p *types.Pin) (*types.Pin, error) {
	ctx, span := s.tracer.Start(ctx, "storage.Storage.AddPin")
	defer span.End()

	id, err := uuid.NewV7()
	if err != nil {
		return nil, fmt.Errorf("failed to generate pin ID: %w", err)
	}

	created := *p
	created.ID = id.String()

	err = s.db.Statement(ctx).
		Insert("mission_pins").
		Columns("id", "mission_id", "latitude", "longitude", "title", "description", "type", "created_by").
		Values(created.ID, p.MissionID, p.Latitude, p.Longitude, p.Title, p.Description, string(p.Type), p.CreatedBy).
		Suffix("RETURNING created_at").
		QueryRowContext(ctx).
		Scan(&created.CreatedAt)

	if err != nil {
		return nil, translate(err, "insert pin")
	}

	return &created, nil
}

func (s *Storage) ListPins(ctx context.Context, missionID string) ([]types.Pin, error) {
	ctx, span := s.tracer.Start(ctx, "storage.Storage.ListPins")
	defer span.End()

	rows, err := s.db.Statement(ctx).
		Select("id", "mission_id", "latitude", "longitude", "title", "description", "type", "created_by", "created_at").
		From("mission_pins").
		Where(sq.Eq{"mission_id": missionID}).
		OrderBy("created_at").
		QueryContext(ctx)

	if err != nil {
		return nil, translate(err, "list pins")
	}
	defer rows.Close()

	pins := make([]types.Pin, 0)
	for rows.Next() {
		var p types.Pin
		if err := rows.Scan(&p.ID, &p.MissionID, &p.Latitude, &p.Longitude, &p.Title, &p.Description, &p.Type, &p.CreatedBy, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan pin: %w", err)
		}
		pins = append(pins, p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return pins, nil
}

func (s *Storage) AddLocationSample(ctx context.Context, sample *types.LocationSample) error {
	ctx, span := s.tracer.Start(ctx, "storage.Storage.AddLocationSample")
	defer span.End()

	_, err := s.db.Statement(ctx).
		Insert("mission_locations").
		Columns("mission_id", "user_id", "latitude", "longitude", "recorded_at").
		Values(sample.MissionID, sample.UserID, sample.Latitude, sample.Longitude, sample.RecordedAt).
		ExecContext(ctx)

	return translate(err, "insert location sample")
}

func (s *Storage) ListLocationSamples(ctx context.Context, missionID string) ([]types.LocationSample, error) {
	ctx, span := s.tracer.Start(ctx, "storage.Storage.ListLocationSamples")
	defer span.End()

	rows, err := s.db.Statement(ctx).
		Select("mission_id", "user_id", "latitude", "longitude", "recorded_at").
		From("mission_locations").
		Where(sq.Eq{"mission_id": missionID}).
		OrderBy("recorded_at", "id").
		QueryContext(ctx)

	if err != nil {
		return nil, translate(err, "list location samples")
	}
	defer rows.Close()

	samples := make([]types.LocationSample, 0)
	for rows.Next() {
		var ls types.LocationSample
		if err := rows.Scan(&ls.MissionID, &ls.UserID, &ls.Latitude, &ls.Longitude, &ls.RecordedAt); err != nil {
			return nil, fmt.Errorf("failed to scan location sample: %w", err)
		}
		samples = append(samples, ls)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return samples, nil
}

func NewStorage(c db.DBClientInterface, tracer tracing.TracingInterface, monitor monitoring.MonitorInterface, logger logging.LoggerInterface) *Storage {
	s := new(Storage)

	s.db = c

	s.logger = logger
	s.tracer = tracer
	s.monitor = monitor

	return s
}
