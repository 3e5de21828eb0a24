// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package membership

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/canonical/squad-service/internal/authorization"
	"github.com/canonical/squad-service/internal/invitecode"
	"github.com/canonical/squad-service/internal/kratos"
	"github.com/canonical/squad-service/internal/logging"
	"github.com/canonical/squad-service/internal/monitoring"
	"github.com/canonical/squad-service/internal/storage"
	"github.com/canonical/squad-service/internal/tracing"
	"github.com/canonical/squad-service/internal/types"
	"github.com/canonical/squad-service/internal/validation"
)

const (
	// DefaultExternalCallTimeout bounds every identity provider and directory call
	DefaultExternalCallTimeout = 10 * time.Second

	maxCodeAttempts = 5

	createOrganizationKeyPrefix = "create-organization:"
)

var _ ServiceInterface = (*Service)(nil)

type registration struct {
	Email       string `json:"email" validate:"required,mailbox"`
	Password    string `json:"password" validate:"min=6"`
	DisplayName string `json:"display_name" validate:"required,max=64"`
}

type credentials struct {
	Email    string `json:"email" validate:"required,mailbox"`
	Password string `json:"password" validate:"required"`
}

type Service struct {
	storage   StorageInterface
	identity  IdentityProviderInterface
	enqueuer  EnqueuerInterface
	codes     CodeGeneratorInterface
	authz     authorization.AuthorizerInterface
	validator *validation.Validator
	timeout   time.Duration

	tracer  tracing.TracingInterface
	monitor monitoring.MonitorInterface
	logger  logging.LoggerInterface
}

// validate turns validation violations into a ValidationError
func (s *Service) validate(err error) error {
	if err == nil {
		return nil
	}

	var violation *validation.Violation
	if errors.As(err, &violation) {
		return &ValidationError{Field: violation.Field, Reason: violation.Reason()}
	}

	return err
}

// external runs fn under the external call timeout, deadline expiry is
// reported as a TimeoutError
func (s *Service) external(ctx context.Context, op string, fn func(context.Context) error) error {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	err := fn(ctx)
	if err != nil && errors.Is(err, context.DeadlineExceeded) {
		return &TimeoutError{Op: op, Err: err}
	}

	return err
}

func (s *Service) identityError(op string, err error) error {
	var timeout *TimeoutError
	if errors.As(err, &timeout) {
		return err
	}

	return &IdentityProviderError{Op: op, Err: err}
}

func (s *Service) Register(ctx context.Context, email, password, displayName string) (*types.User, error) {
	ctx, span := s.tracer.Start(ctx, "membership.Service.Register")
	defer span.End()

	in := registration{
		Email:       strings.TrimSpace(email),
		Password:    password,
		DisplayName: strings.TrimSpace(displayName),
	}

	if err := s.validate(s.validator.Struct(in)); err != nil {
		return nil, err
	}

	var identityID string
	err := s.external(ctx, "identity sign up", func(ctx context.Context) (err error) {
		identityID, err = s.identity.SignUp(ctx, in.Email, in.Password, in.DisplayName)
		return err
	})

	if err != nil {
		switch {
		case errors.Is(err, kratos.ErrIdentityExists):
			return nil, &IdentityConflictError{Email: in.Email}
		case errors.Is(err, kratos.ErrInvalidIdentity):
			return nil, &ValidationError{Field: "password", Reason: "rejected by the identity provider: " + err.Error()}
		}

		s.logger.Errorf("failed to sign up %s: %v", in.Email, err)
		return nil, s.identityError("sign up", err)
	}

	user, err := s.storeUser(ctx, &types.User{
		ID:          identityID,
		Email:       in.Email,
		DisplayName: in.DisplayName,
		Role:        types.RolePending,
	})

	if err != nil {
		s.logger.Errorf("identity %s created but user document was not: %v", identityID, err)
		return nil, err
	}

	return user, nil
}

// storeUser writes a pending user document. A document already stored for the
// same identity is returned as is, one holding the address under another
// identity is an IdentityConflictError.
func (s *Service) storeUser(ctx context.Context, u *types.User) (*types.User, error) {
	var user *types.User
	created := true
	err := s.external(ctx, "directory create user", func(ctx context.Context) (err error) {
		user, err = s.storage.CreateUser(ctx, u)

		// the registration webhook may have stored the document first
		if errors.Is(err, storage.ErrDuplicateKey) {
			created = false
			user, err = s.storage.GetUser(ctx, u.ID)
		}

		return err
	})

	if errors.Is(err, storage.ErrNotFound) {
		return nil, &IdentityConflictError{Email: u.Email}
	}

	if err != nil {
		return nil, fmt.Errorf("failed to store user %s: %w", u.ID, err)
	}

	if created {
		s.logger.Security().UserCreated(user.ID)
	}

	return user, nil
}

func displayNameOf(name, email string) string {
	if name = strings.TrimSpace(name); name != "" {
		return name
	}

	local, _, _ := strings.Cut(email, "@")

	return local
}

func (s *Service) SignIn(ctx context.Context, email, password string) (*types.Session, error) {
	ctx, span := s.tracer.Start(ctx, "membership.Service.SignIn")
	defer span.End()

	in := credentials{Email: strings.TrimSpace(email), Password: password}

	if err := s.validate(s.validator.Struct(in)); err != nil {
		return nil, err
	}

	var session *kratos.Session
	err := s.external(ctx, "identity sign in", func(ctx context.Context) (err error) {
		session, err = s.identity.SignIn(ctx, in.Email, in.Password)
		return err
	})

	if err != nil {
		if errors.Is(err, kratos.ErrInvalidCredentials) {
			s.logger.Security().AuthnLoginFail(in.Email)
			return nil, &InvalidCredentialsError{}
		}

		s.logger.Errorf("failed to sign in %s: %v", in.Email, err)
		return nil, s.identityError("sign in", err)
	}

	user, err := s.GetUser(ctx, session.IdentityID)

	// registration stopped between the identity and its user document
	if errors.Is(err, ErrUserNotFound) {
		s.logger.Warnf("identity %s has no user document, storing it on sign in", session.IdentityID)
		user, err = s.storeUser(ctx, &types.User{
			ID:          session.IdentityID,
			Email:       in.Email,
			DisplayName: displayNameOf(session.DisplayName, in.Email),
			Role:        types.RolePending,
		})
	}

	if err != nil {
		return nil, err
	}

	s.logger.Security().AuthnLoginSuccess(user.ID)

	return &types.Session{
		UserID:           user.ID,
		Token:            session.Token,
		Role:             user.Role,
		OrganizationCode: user.OrganizationCode,
	}, nil
}

func (s *Service) SignOut(ctx context.Context, userID string) error {
	ctx, span := s.tracer.Start(ctx, "membership.Service.SignOut")
	defer span.End()

	err := s.external(ctx, "identity sign out", func(ctx context.Context) error {
		return s.identity.SignOut(ctx, userID)
	})

	if err != nil {
		if errors.Is(err, kratos.ErrIdentityNotFound) {
			return ErrUserNotFound
		}

		s.logger.Errorf("failed to sign out %s: %v", userID, err)
		return s.identityError("sign out", err)
	}

	s.logger.Security().AuthnLogout(userID)

	if err := s.SetOnline(ctx, userID, false); err != nil {
		s.logger.Warnf("user %s signed out but presence was not cleared: %v", userID, err)
	}

	return nil
}

func (s *Service) SendPasswordReset(ctx context.Context, email string) error {
	ctx, span := s.tracer.Start(ctx, "membership.Service.SendPasswordReset")
	defer span.End()

	email = strings.TrimSpace(email)

	if err := s.validate(s.validator.Var("email", email, "required,mailbox")); err != nil {
		return err
	}

	var recovery *kratos.Recovery
	err := s.external(ctx, "identity send reset", func(ctx context.Context) (err error) {
		recovery, err = s.identity.SendReset(ctx, email)
		return err
	})

	if err != nil {
		// unknown addresses look like known ones to the caller
		if errors.Is(err, kratos.ErrIdentityNotFound) {
			s.logger.Debugf("password reset requested for unknown address")
			return nil
		}

		s.logger.Errorf("failed to create recovery link: %v", err)
		return s.identityError("send reset", err)
	}

	err = s.external(ctx, "enqueue password reset", func(ctx context.Context) error {
		return s.enqueuer.EnqueuePasswordReset(ctx, email, recovery.Link)
	})

	if err != nil {
		s.logger.Errorf("failed to enqueue password reset for %s: %v", recovery.IdentityID, err)
		return fmt.Errorf("failed to enqueue password reset: %w", err)
	}

	return nil
}

func (s *Service) GetUser(ctx context.Context, userID string) (*types.User, error) {
	ctx, span := s.tracer.Start(ctx, "membership.Service.GetUser")
	defer span.End()

	var user *types.User
	err := s.external(ctx, "directory get user", func(ctx context.Context) (err error) {
		user, err = s.storage.GetUser(ctx, userID)
		return err
	})

	if errors.Is(err, storage.ErrNotFound) {
		return nil, fmt.Errorf("%s: %w", userID, ErrUserNotFound)
	}

	if err != nil {
		return nil, fmt.Errorf("failed to get user %s: %w", userID, err)
	}

	return user, nil
}

func (s *Service) UpdateProfile(ctx context.Context, userID, displayName string) (*types.User, error) {
	ctx, span := s.tracer.Start(ctx, "membership.Service.UpdateProfile")
	defer span.End()

	displayName = strings.TrimSpace(displayName)

	if err := s.validate(s.validator.Var("display_name", displayName, "required,max=64")); err != nil {
		return nil, err
	}

	err := s.external(ctx, "directory update profile", func(ctx context.Context) error {
		return s.storage.UpdateUserProfile(ctx, userID, displayName)
	})

	if errors.Is(err, storage.ErrNotFound) {
		return nil, fmt.Errorf("%s: %w", userID, ErrUserNotFound)
	}

	if err != nil {
		return nil, fmt.Errorf("failed to update profile of %s: %w", userID, err)
	}

	return s.GetUser(ctx, userID)
}

func (s *Service) SetOnline(ctx context.Context, userID string, online bool) error {
	ctx, span := s.tracer.Start(ctx, "membership.Service.SetOnline")
	defer span.End()

	err := s.external(ctx, "directory update presence", func(ctx context.Context) error {
		return s.storage.UpdateUserPresence(ctx, userID, online)
	})

	if errors.Is(err, storage.ErrNotFound) {
		return fmt.Errorf("%s: %w", userID, ErrUserNotFound)
	}

	if err != nil {
		return fmt.Errorf("failed to update presence of %s: %w", userID, err)
	}

	return nil
}

// CreateOrganization makes a pending user the admin of a new organization.
// The organization is written before the user, a failure in between is a
// PartialFailureError and a retry with the same idempotency key resumes it.
func (s *Service) CreateOrganization(ctx context.Context, userID, organizationName, idempotencyKey string) (string, error) {
	ctx, span := s.tracer.Start(ctx, "membership.Service.CreateOrganization")
	defer span.End()

	name := strings.TrimSpace(organizationName)

	if err := s.validate(s.validator.Var("name", name, "min=3,max=64")); err != nil {
		return "", err
	}

	key := strings.TrimSpace(idempotencyKey)
	if key == "" {
		key = createOrganizationKeyPrefix + userID
	}

	user, err := s.GetUser(ctx, userID)
	if err != nil {
		return "", err
	}

	var org *types.Organization

	// a pending creator resumes its unfinished organization whatever the key
	if user.Role == types.RolePending {
		if org, err = s.unfinishedOrganization(ctx, user.ID); err != nil {
			return "", err
		}
	}

	if org == nil {
		if org, err = s.organizationByKey(ctx, key); err != nil {
			return "", err
		}
	}

	if org == nil {
		if user.Role != types.RolePending {
			return "", &ValidationError{Field: "role", Reason: fmt.Sprintf("user is already %s of an organization", user.Role)}
		}

		if org, err = s.insertOrganization(ctx, user.ID, name, key); err != nil {
			return "", err
		}
	}

	if org.CreatedBy != user.ID {
		return "", &ValidationError{Field: "idempotency_key", Reason: "belongs to another request"}
	}

	switch {
	case user.Role == types.RoleAdmin && user.OrganizationCode == org.Code:
		return org.Code, nil
	case user.Role != types.RolePending:
		return "", &ValidationError{Field: "role", Reason: fmt.Sprintf("user is already %s of an organization", user.Role)}
	}

	err = s.external(ctx, "directory update user", func(ctx context.Context) error {
		return s.storage.UpdateUserMembership(ctx, user.ID, types.RoleAdmin, org.Code, org.Name)
	})

	if err != nil {
		s.logger.Errorf("organization %s created but user %s was not promoted: %v", org.Code, user.ID, err)
		s.partialFailure("create organization")
		return "", &PartialFailureError{Op: "create organization", UserID: user.ID, OrganizationCode: org.Code, Err: err}
	}

	s.logger.Security().AuthzRoleAssigned(user.ID, string(types.RoleAdmin), org.Code)

	return org.Code, nil
}

func (s *Service) organizationByKey(ctx context.Context, key string) (*types.Organization, error) {
	var org *types.Organization
	err := s.external(ctx, "directory get organization", func(ctx context.Context) (err error) {
		org, err = s.storage.GetOrganizationByCreationKey(ctx, key)
		return err
	})

	if errors.Is(err, storage.ErrNotFound) {
		return nil, nil
	}

	if err != nil {
		return nil, fmt.Errorf("failed to look up organization request: %w", err)
	}

	return org, nil
}

// unfinishedOrganization returns the organization a pending user created
// without being promoted to its admin, nil when there is none
func (s *Service) unfinishedOrganization(ctx context.Context, userID string) (*types.Organization, error) {
	var org *types.Organization
	err := s.external(ctx, "directory get organization", func(ctx context.Context) (err error) {
		org, err = s.storage.GetOrganizationByCreator(ctx, userID)
		return err
	})

	if errors.Is(err, storage.ErrNotFound) {
		return nil, nil
	}

	if err != nil {
		return nil, fmt.Errorf("failed to look up organization created by %s: %w", userID, err)
	}

	return org, nil
}

// insertOrganization writes a new organization under a fresh code, a code
// already in use is drawn again
func (s *Service) insertOrganization(ctx context.Context, userID, name, key string) (*types.Organization, error) {
	for attempt := 1; attempt <= maxCodeAttempts; attempt++ {
		code, err := s.codes.Generate()
		if err != nil {
			return nil, fmt.Errorf("failed to generate invite code: %w", err)
		}

		var org *types.Organization
		err = s.external(ctx, "directory create organization", func(ctx context.Context) (err error) {
			org, err = s.storage.CreateOrganization(ctx, &types.Organization{
				Code:        code,
				Name:        name,
				CreatedBy:   userID,
				CreationKey: key,
			})
			return err
		})

		if err == nil {
			return org, nil
		}

		if !errors.Is(err, storage.ErrDuplicateKey) {
			return nil, fmt.Errorf("failed to create organization: %w", err)
		}

		// a concurrent request by the same creator may have won the insert
		existing, lookupErr := s.organizationByKey(ctx, key)
		if lookupErr == nil && existing == nil {
			existing, lookupErr = s.unfinishedOrganization(ctx, userID)
		}

		if lookupErr != nil {
			return nil, lookupErr
		}

		if existing != nil {
			return existing, nil
		}

		s.logger.Debugf("invite code collision on attempt %d", attempt)
	}

	return nil, fmt.Errorf("failed to allocate an unused invite code after %d attempts", maxCodeAttempts)
}

// JoinOrganization makes a pending user a member of the organization behind
// the invite code. The member set is updated before the user.
func (s *Service) JoinOrganization(ctx context.Context, userID, organizationCode string) error {
	ctx, span := s.tracer.Start(ctx, "membership.Service.JoinOrganization")
	defer span.End()

	code := invitecode.Normalize(organizationCode)

	if err := s.validate(s.validator.Var("code", code, "invitecode")); err != nil {
		return err
	}

	user, err := s.GetUser(ctx, userID)
	if err != nil {
		return err
	}

	if user.Role.HasOrganization() {
		if user.OrganizationCode == code {
			return nil
		}

		return &ValidationError{Field: "code", Reason: "user already belongs to another organization"}
	}

	unfinished, err := s.unfinishedOrganization(ctx, user.ID)
	if err != nil {
		return err
	}

	if unfinished != nil {
		return &ValidationError{Field: "code", Reason: fmt.Sprintf("creation of organization %s must be completed first", unfinished.Code)}
	}

	org, err := s.organization(ctx, code)
	if err != nil {
		return err
	}

	err = s.external(ctx, "directory add member", func(ctx context.Context) error {
		return s.storage.AddOrganizationMember(ctx, org.Code, user.ID)
	})

	if errors.Is(err, storage.ErrForeignKeyViolation) {
		return &OrganizationNotFoundError{Code: code}
	}

	if err != nil {
		return fmt.Errorf("failed to add %s to organization %s: %w", user.ID, org.Code, err)
	}

	err = s.external(ctx, "directory update user", func(ctx context.Context) error {
		return s.storage.UpdateUserMembership(ctx, user.ID, types.RoleMember, org.Code, org.Name)
	})

	if err != nil {
		s.logger.Errorf("user %s added to %s but role was not updated: %v", user.ID, org.Code, err)
		s.partialFailure("join organization")
		return &PartialFailureError{Op: "join organization", UserID: user.ID, OrganizationCode: org.Code, Err: err}
	}

	s.logger.Security().AuthzRoleAssigned(user.ID, string(types.RoleMember), org.Code)

	return nil
}

func (s *Service) partialFailure(op string) {
	if err := s.monitor.IncPartialFailure(map[string]string{"operation": op}); err != nil {
		s.logger.Debugf("failed to count partial failure of %s: %v", op, err)
	}
}

// GetOrganization returns the organization to one of its admins or members
func (s *Service) GetOrganization(ctx context.Context, userID, organizationCode string) (*types.Organization, error) {
	ctx, span := s.tracer.Start(ctx, "membership.Service.GetOrganization")
	defer span.End()

	org, err := s.organization(ctx, organizationCode)
	if err != nil {
		return nil, err
	}

	if err := s.member(ctx, userID, org.Code); err != nil {
		return nil, err
	}

	return org, nil
}

// member fails with a ForbiddenError unless the user is admin or member of the
// organization
func (s *Service) member(ctx context.Context, userID, code string) error {
	user, err := s.GetUser(ctx, userID)
	if err != nil {
		return err
	}

	if !s.authz.CheckOrganizationAccess(ctx, user, code, authorization.MEMBER_RELATION) {
		return &ForbiddenError{UserID: user.ID, Reason: "read organization " + code}
	}

	return nil
}

func (s *Service) organization(ctx context.Context, organizationCode string) (*types.Organization, error) {
	code := invitecode.Normalize(organizationCode)

	if err := s.validate(s.validator.Var("code", code, "invitecode")); err != nil {
		return nil, err
	}

	var org *types.Organization
	err := s.external(ctx, "directory get organization", func(ctx context.Context) (err error) {
		org, err = s.storage.GetOrganization(ctx, code)
		return err
	})

	if errors.Is(err, storage.ErrNotFound) {
		return nil, &OrganizationNotFoundError{Code: code}
	}

	if err != nil {
		return nil, fmt.Errorf("failed to get organization %s: %w", code, err)
	}

	return org, nil
}

func (s *Service) ListMembers(ctx context.Context, userID, organizationCode string, page, size int64) ([]*types.User, error) {
	ctx, span := s.tracer.Start(ctx, "membership.Service.ListMembers")
	defer span.End()

	org, err := s.GetOrganization(ctx, userID, organizationCode)
	if err != nil {
		return nil, err
	}

	var members []*types.User
	err = s.external(ctx, "directory list members", func(ctx context.Context) (err error) {
		members, err = s.storage.ListOrganizationMembers(ctx, org.Code, page, size)
		return err
	})

	if err != nil {
		return nil, fmt.Errorf("failed to list members of %s: %w", org.Code, err)
	}

	return members, nil
}

func (s *Service) RenameOrganization(ctx context.Context, userID, organizationCode, name string) (*types.Organization, error) {
	ctx, span := s.tracer.Start(ctx, "membership.Service.RenameOrganization")
	defer span.End()

	code := invitecode.Normalize(organizationCode)
	name = strings.TrimSpace(name)

	if err := s.validate(s.validator.Var("name", name, "min=3,max=64")); err != nil {
		return nil, err
	}

	user, err := s.GetUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	if !s.authz.CheckOrganizationAccess(ctx, user, code, authorization.ADMIN_RELATION) {
		return nil, &ForbiddenError{UserID: user.ID, Reason: "rename organization " + code}
	}

	err = s.external(ctx, "directory rename organization", func(ctx context.Context) error {
		return s.storage.RenameOrganization(ctx, code, name)
	})

	if errors.Is(err, storage.ErrNotFound) {
		return nil, &OrganizationNotFoundError{Code: code}
	}

	if err != nil {
		return nil, fmt.Errorf("failed to rename organization %s: %w", code, err)
	}

	return s.organization(ctx, code)
}

// NewService wires the membership flow, a non positive timeout falls back to
// DefaultExternalCallTimeout
func NewService(
	storage StorageInterface,
	identity IdentityProviderInterface,
	enqueuer EnqueuerInterface,
	codes CodeGeneratorInterface,
	timeout time.Duration,
	tracer tracing.TracingInterface,
	monitor monitoring.MonitorInterface,
	logger logging.LoggerInterface,
) *Service {
	s := new(Service)

	s.storage = storage
	s.identity = identity
	s.enqueuer = enqueuer
	s.codes = codes
	s.authz = authorization.NewAuthorizer(tracer, monitor, logger)
	s.validator = validation.NewValidator()

	s.timeout = timeout
	if timeout <= 0 {
		s.timeout = DefaultExternalCallTimeout
	}

	s.tracer = tracer
	s.monitor = monitor
	s.logger = logger

	return s
}
