// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package membership

import (
	"context"

	"github.com/canonical/squad-service/internal/kratos"
	"github.com/canonical/squad-service/internal/types"
)

type ServiceInterface interface {
	Register(ctx context.Context, email, password, displayName string) (*types.User, error)
	SignIn(ctx context.Context, email, password string) (*types.Session, error)
	SignOut(ctx context.Context, userID string) error
	SendPasswordReset(ctx context.Context, email string) error
	GetUser(ctx context.Context, userID string) (*types.User, error)
	UpdateProfile(ctx context.Context, userID, displayName string) (*types.User, error)
	SetOnline(ctx context.Context, userID string, online bool) error
	CreateOrganization(ctx context.Context, userID, organizationName, idempotencyKey string) (string, error)
	JoinOrganization(ctx context.Context, userID, organizationCode string) error
	GetOrganization(ctx context.Context, userID, organizationCode string) (*types.Organization, error)
	ListMembers(ctx context.Context, userID, organizationCode string, page, size int64) ([]*types.User, error)
	RenameOrganization(ctx context.Context, userID, organizationCode, name string) (*types.Organization, error)
}

// StorageInterface is the directory store as seen by the membership flow
type StorageInterface interface {
	CreateUser(ctx context.Context, u *types.User) (*types.User, error)
	GetUser(ctx context.Context, id string) (*types.User, error)
	UpdateUserMembership(ctx context.Context, id string, role types.Role, organizationCode, organizationName string) error
	UpdateUserProfile(ctx context.Context, id, displayName string) error
	UpdateUserPresence(ctx context.Context, id string, online bool) error
	CreateOrganization(ctx context.Context, o *types.Organization) (*types.Organization, error)
	GetOrganization(ctx context.Context, code string) (*types.Organization, error)
	GetOrganizationByCreationKey(ctx context.Context, key string) (*types.Organization, error)
	GetOrganizationByCreator(ctx context.Context, userID string) (*types.Organization, error)
	AddOrganizationMember(ctx context.Context, code, userID string) error
	RenameOrganization(ctx context.Context, code, name string) error
	ListOrganizationMembers(ctx context.Context, code string, page, size int64) ([]*types.User, error)
}

type IdentityProviderInterface interface {
	SignUp(ctx context.Context, email, password, displayName string) (string, error)
	SignIn(ctx context.Context, email, password string) (*kratos.Session, error)
	SendReset(ctx context.Context, email string) (*kratos.Recovery, error)
	SignOut(ctx context.Context, identityID string) error
}

type EnqueuerInterface interface {
	EnqueuePasswordReset(ctx context.Context, email, link string) error
}

type CodeGeneratorInterface interface {
	Generate() (string, error)
}
