// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package storage

import (
	"context"
	"fmt"
	"slices"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/canonical/squad-service/internal/db"
	"github.com/canonical/squad-service/internal/logging"
	"github.com/canonical/squad-service/internal/monitoring"
	"github.com/canonical/squad-service/internal/tracing"
	"github.com/canonical/squad-service/internal/types"
)

var _ StorageInterface = (*MemoryStorage)(nil)

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

type memoryOrganization struct {
	organization types.Organization
	joined       map[string]int
}

// MemoryStorage is a process-local directory store, all documents are copied
// in and out so callers never share memory with it
type MemoryStorage struct {
	mu sync.RWMutex

	users         map[string]*types.User
	organizations map[string]*memoryOrganization
	creationKeys  map[string]string
	missions      map[string]*types.Mission
	pins          map[string][]types.Pin
	samples       map[string][]types.LocationSample

	seq   int
	clock func() time.Time

	logger  logging.LoggerInterface
	tracer  tracing.TracingInterface
	monitor monitoring.MonitorInterface
}

func copyUser(u *types.User) *types.User {
	c := *u
	return &c
}

func copyOrganization(o *memoryOrganization) *types.Organization {
	c := o.organization

	c.Members = make([]string, 0, len(o.joined))
	for id := range o.joined {
		c.Members = append(c.Members, id)
	}

	sort.Slice(c.Members, func(i, j int) bool {
		return o.joined[c.Members[i]] < o.joined[c.Members[j]]
	})

	return &c
}

func copyMission(m *types.Mission) *types.Mission {
	c := *m
	c.TeamMembers = slices.Clone(m.TeamMembers)

	if m.EndedAt != nil {
		t := *m.EndedAt
		c.EndedAt = &t
	}

	return &c
}

func (s *MemoryStorage) CreateUser(ctx context.Context, u *types.User) (*types.User, error) {
	_, span := s.tracer.Start(ctx, "storage.MemoryStorage.CreateUser")
	defer span.End()

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.users[u.ID]; ok {
		return nil, fmt.Errorf("insert user: %w", ErrDuplicateKey)
	}

	for _, existing := range s.users {
		if normalizeEmail(existing.Email) == normalizeEmail(u.Email) {
			return nil, fmt.Errorf("insert user: %w", ErrDuplicateKey)
		}
	}

	created := copyUser(u)
	if created.Role == "" {
		created.Role = types.RolePending
	}

	now := s.clock()
	created.CreatedAt = now
	created.UpdatedAt = now

	s.users[u.ID] = created

	return copyUser(created), nil
}

func (s *MemoryStorage) GetUser(ctx context.Context, id string) (*types.User, error) {
	_, span := s.tracer.Start(ctx, "storage.MemoryStorage.GetUser")
	defer span.End()

	s.mu.RLock()
	defer s.mu.RUnlock()

	u, ok := s.users[id]
	if !ok {
		return nil, fmt.Errorf("get user: %w", ErrNotFound)
	}

	return copyUser(u), nil
}

func (s *MemoryStorage) GetUserByEmail(ctx context.Context, email string) (*types.User, error) {
	_, span := s.tracer.Start(ctx, "storage.MemoryStorage.GetUserByEmail")
	defer span.End()

	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, u := range s.users {
		if normalizeEmail(u.Email) == normalizeEmail(email) {
			return copyUser(u), nil
		}
	}

	return nil, fmt.Errorf("get user by email: %w", ErrNotFound)
}

func (s *MemoryStorage) updateUser(id, op string, apply func(*types.User)) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.users[id]
	if !ok {
		return fmt.Errorf("%s: %w", op, ErrNotFound)
	}

	apply(u)
	u.UpdatedAt = s.clock()

	return nil
}

func (s *MemoryStorage) UpdateUserMembership(ctx context.Context, id string, role types.Role, organizationCode, organizationName string) error {
	_, span := s.tracer.Start(ctx, "storage.MemoryStorage.UpdateUserMembership")
	defer span.End()

	return s.updateUser(id, "update user membership", func(u *types.User) {
		u.Role = role
		u.OrganizationCode = organizationCode
		u.OrganizationName = organizationName
	})
}

func (s *MemoryStorage) UpdateUserProfile(ctx context.Context, id, displayName string) error {
	_, span := s.tracer.Start(ctx, "storage.MemoryStorage.UpdateUserProfile")
	defer span.End()

	return s.updateUser(id, "update user profile", func(u *types.User) {
		u.DisplayName = displayName
	})
}

func (s *MemoryStorage) UpdateUserPresence(ctx context.Context, id string, online bool) error {
	_, span := s.tracer.Start(ctx, "storage.MemoryStorage.UpdateUserPresence")
	defer span.End()

	return s.updateUser(id, "update user presence", func(u *types.User) {
		u.Online = online
	})
}

func (s *MemoryStorage) UpdateUserLocation(ctx context.Context, id string, latitude, longitude float64, at time.Time) error {
	_, span := s.tracer.Start(ctx, "storage.MemoryStorage.UpdateUserLocation")
	defer span.End()

	return s.updateUser(id, "update user location", func(u *types.User) {
		u.LastLatitude = &latitude
		u.LastLongitude = &longitude
		u.LastLocationAt = &at
	})
}

func (s *MemoryStorage) CreateOrganization(ctx context.Context, o *types.Organization) (*types.Organization, error) {
	_, span := s.tracer.Start(ctx, "storage.MemoryStorage.CreateOrganization")
	defer span.End()

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.organizations[o.Code]; ok {
		return nil, fmt.Errorf("insert organization: %w", ErrDuplicateKey)
	}

	if _, ok := s.creationKeys[o.CreationKey]; ok {
		return nil, fmt.Errorf("insert organization: %w", ErrDuplicateKey)
	}

	if _, ok := s.users[o.CreatedBy]; !ok {
		return nil, fmt.Errorf("insert organization: %w", ErrForeignKeyViolation)
	}

	for _, existing := range s.organizations {
		if existing.organization.CreatedBy == o.CreatedBy {
			return nil, fmt.Errorf("insert organization: %w", ErrDuplicateKey)
		}
	}

	mo := &memoryOrganization{organization: *o, joined: make(map[string]int)}
	mo.organization.Members = nil
	mo.organization.CreatedAt = s.clock()

	s.seq++
	mo.joined[o.CreatedBy] = s.seq

	s.organizations[o.Code] = mo
	s.creationKeys[o.CreationKey] = o.Code

	return copyOrganization(mo), nil
}

func (s *MemoryStorage) GetOrganization(ctx context.Context, code string) (*types.Organization, error) {
	_, span := s.tracer.Start(ctx, "storage.MemoryStorage.GetOrganization")
	defer span.End()

	s.mu.RLock()
	defer s.mu.RUnlock()

	o, ok := s.organizations[code]
	if !ok {
		return nil, fmt.Errorf("get organization: %w", ErrNotFound)
	}

	return copyOrganization(o), nil
}

func (s *MemoryStorage) GetOrganizationByCreationKey(ctx context.Context, key string) (*types.Organization, error) {
	_, span := s.tracer.Start(ctx, "storage.MemoryStorage.GetOrganizationByCreationKey")
	defer span.End()

	s.mu.RLock()
	defer s.mu.RUnlock()

	code, ok := s.creationKeys[key]
	if !ok {
		return nil, fmt.Errorf("get organization by creation key: %w", ErrNotFound)
	}

	return copyOrganization(s.organizations[code]), nil
}

func (s *MemoryStorage) GetOrganizationByCreator(ctx context.Context, userID string) (*types.Organization, error) {
	_, span := s.tracer.Start(ctx, "storage.MemoryStorage.GetOrganizationByCreator")
	defer span.End()

	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, o := range s.organizations {
		if o.organization.CreatedBy == userID {
			return copyOrganization(o), nil
		}
	}

	return nil, fmt.Errorf("get organization by creator: %w", ErrNotFound)
}

func (s *MemoryStorage) AddOrganizationMember(ctx context.Context, code, userID string) error {
	_, span := s.tracer.Start(ctx, "storage.MemoryStorage.AddOrganizationMember")
	defer span.End()

	s.mu.Lock()
	defer s.mu.Unlock()

	o, ok := s.organizations[code]
	if !ok {
		return fmt.Errorf("add organization member: %w", ErrForeignKeyViolation)
	}

	if _, ok := s.users[userID]; !ok {
		return fmt.Errorf("add organization member: %w", ErrForeignKeyViolation)
	}

	if _, ok := o.joined[userID]; ok {
		return nil
	}

	s.seq++
	o.joined[userID] = s.seq

	return nil
}

func (s *MemoryStorage) RenameOrganization(ctx context.Context, code, name string) error {
	_, span := s.tracer.Start(ctx, "storage.MemoryStorage.RenameOrganization")
	defer span.End()

	s.mu.Lock()
	defer s.mu.Unlock()

	o, ok := s.organizations[code]
	if !ok {
		return fmt.Errorf("rename organization: %w", ErrNotFound)
	}

	o.organization.Name = name

	for _, u := range s.users {
		if u.OrganizationCode == code {
			u.OrganizationName = name
			u.UpdatedAt = s.clock()
		}
	}

	return nil
}

func paginate[T any](items []T, page, size int64) []T {
	pageSize := db.PageSize(size)
	offset := db.Offset(page, pageSize)

	if offset >= uint64(len(items)) {
		return make([]T, 0)
	}

	end := min(offset+pageSize, uint64(len(items)))

	return items[offset:end]
}

func (s *MemoryStorage) ListOrganizationMembers(ctx context.Context, code string, page, size int64) ([]*types.User, error) {
	_, span := s.tracer.Start(ctx, "storage.MemoryStorage.ListOrganizationMembers")
	defer span.End()

	s.mu.RLock()
	defer s.mu.RUnlock()

	o, ok := s.organizations[code]
	if !ok {
		return make([]*types.User, 0), nil
	}

	users := make([]*types.User, 0, len(o.joined))
	for _, id := range copyOrganization(o).Members {
		if u, ok := s.users[id]; ok {
			users = append(users, copyUser(u))
		}
	}

	return paginate(users, page, size), nil
}

func (s *MemoryStorage) CreateMission(ctx context.Context, m *types.Mission) (*types.Mission, error) {
	_, span := s.tracer.Start(ctx, "storage.MemoryStorage.CreateMission")
	defer span.End()

	id, err := uuid.NewV7()
	if err != nil {
		return nil, fmt.Errorf("failed to generate mission ID: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.organizations[m.OrganizationCode]; !ok {
		return nil, fmt.Errorf("insert mission: %w", ErrForeignKeyViolation)
	}

	created := copyMission(m)
	created.ID = id.String()
	created.Active = true
	created.StartedAt = s.clock()
	created.Pins = nil
	created.LocationHistory = nil

	slices.Sort(created.TeamMembers)
	created.TeamMembers = slices.Compact(created.TeamMembers)

	s.missions[created.ID] = created

	return copyMission(created), nil
}

func (s *MemoryStorage) GetMission(ctx context.Context, id string) (*types.Mission, error) {
	_, span := s.tracer.Start(ctx, "storage.MemoryStorage.GetMission")
	defer span.End()

	s.mu.RLock()
	defer s.mu.RUnlock()

	m, ok := s.missions[id]
	if !ok {
		return nil, fmt.Errorf("get mission: %w", ErrNotFound)
	}

	return copyMission(m), nil
}

func (s *MemoryStorage) GetActiveMissionForUser(ctx context.Context, userID string) (*types.Mission, error) {
	_, span := s.tracer.Start(ctx, "storage.MemoryStorage.GetActiveMissionForUser")
	defer span.End()

	s.mu.RLock()
	defer s.mu.RUnlock()

	var active *types.Mission
	for _, m := range s.missions {
		if !m.Active || !m.HasTeamMember(userID) {
			continue
		}

		if active == nil || m.StartedAt.After(active.StartedAt) {
			active = m
		}
	}

	if active == nil {
		return nil, fmt.Errorf("get active mission: %w", ErrNotFound)
	}

	return copyMission(active), nil
}

func (s *MemoryStorage) EndMission(ctx context.Context, id string, endedAt time.Time, distanceMeters float64, durationSeconds int64) error {
	_, span := s.tracer.Start(ctx, "storage.MemoryStorage.EndMission")
	defer span.End()

	s.mu.Lock()
	defer s.mu.Unlock()

	m, ok := s.missions[id]
	if !ok || !m.Active {
		return fmt.Errorf("end mission: %w", ErrNotFound)
	}

	m.Active = false
	m.EndedAt = &endedAt
	m.DistanceMeters = distanceMeters
	m.DurationSeconds = durationSeconds

	return nil
}

func (s *MemoryStorage) ListEndedMissionsForUser(ctx context.Context, userID string, page, size int64) ([]*types.Mission, error) {
	_, span := s.tracer.Start(ctx, "storage.MemoryStorage.ListEndedMissionsForUser")
	defer span.End()

	s.mu.RLock()
	defer s.mu.RUnlock()

	missions := make([]*types.Mission, 0)
	for _, m := range s.missions {
		if !m.Active && m.HasTeamMember(userID) {
			missions = append(missions, copyMission(m))
		}
	}

	sort.Slice(missions, func(i, j int) bool {
		return missions[i].EndedAt.After(*missions[j].EndedAt)
	})

	return paginate(missions, page, size), nil
}

func (s *MemoryStorage) AddPin(ctx context.Context, p *types.Pin) (*types.Pin, error) {
	_, span := s.tracer.Start(ctx, "storage.MemoryStorage.AddPin")
	defer span.End()

	id, err := uuid.NewV7()
	if err != nil {
		return nil, fmt.Errorf("failed to generate pin ID: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.missions[p.MissionID]; !ok {
		return nil, fmt.Errorf("insert pin: %w", ErrForeignKeyViolation)
	}

	created := *p
	created.ID = id.String()
	created.CreatedAt = s.clock()

	s.pins[p.MissionID] = append(s.pins[p.MissionID], created)

	return &created, nil
}

func (s *MemoryStorage) ListPins(ctx context.Context, missionID string) ([]types.Pin, error) {
	_, span := s.tracer.Start(ctx, "storage.MemoryStorage.ListPins")
	defer span.End()

	s.mu.RLock()
	defer s.mu.RUnlock()

	pins := slices.Clone(s.pins[missionID])
	if pins == nil {
		pins = make([]types.Pin, 0)
	}

	return pins, nil
}

func (s *MemoryStorage) AddLocationSample(ctx context.Context, sample *types.LocationSample) error {
	_, span := s.tracer.Start(ctx, "storage.MemoryStorage.AddLocationSample")
	defer span.End()

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.missions[sample.MissionID]; !ok {
		return fmt.Errorf("insert location sample: %w", ErrForeignKeyViolation)
	}

	s.samples[sample.MissionID] = append(s.samples[sample.MissionID], *sample)

	return nil
}

func (s *MemoryStorage) ListLocationSamples(ctx context.Context, missionID string) ([]types.LocationSample, error) {
	_, span := s.tracer.Start(ctx, "storage.MemoryStorage.ListLocationSamples")
	defer span.End()

	s.mu.RLock()
	defer s.mu.RUnlock()

	samples := slices.Clone(s.samples[missionID])
	if samples == nil {
		samples = make([]types.LocationSample, 0)
	}

	sort.SliceStable(samples, func(i, j int) bool {
		return samples[i].RecordedAt.Before(samples[j].RecordedAt)
	})

	return samples, nil
}

// WithClock overrides the time source, used by tests
func (s *MemoryStorage) WithClock(clock func() time.Time) *MemoryStorage {
	s.clock = clock
	return s
}

func NewMemoryStorage(tracer tracing.TracingInterface, monitor monitoring.MonitorInterface, logger logging.LoggerInterface) *MemoryStorage {
	s := new(MemoryStorage)

	s.users = make(map[string]*types.User)
	s.organizations = make(map[string]*memoryOrganization)
	s.creationKeys = make(map[string]string)
	s.missions = make(map[string]*types.Mission)
	s.pins = make(map[string][]types.Pin)
	s.samples = make(map[string][]types.LocationSample)
	s.clock = time.Now

	s.logger = logger
	s.tracer = tracer
	s.monitor = monitor

	return s
}
