// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package kratos

import (
	"context"
)

// Session is the outcome of a password login
type Session struct {
	IdentityID  string
	Token       string
	DisplayName string
}

// Recovery carries the link a user follows to reset the password
type Recovery struct {
	IdentityID string
	Link       string
	Code       string
}

type ClientInterface interface {
	SignUp(ctx context.Context, email, password, displayName string) (string, error)
	SignIn(ctx context.Context, email, password string) (*Session, error)
	SendReset(ctx context.Context, email string) (*Recovery, error)
	SignOut(ctx context.Context, identityID string) error
	GetIdentityIDByEmail(ctx context.Context, email string) (string, error)
}
