// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package authorization

import (
	"context"

	"github.com/canonical/squad-service/internal/types"
)

type AuthorizerInterface interface {
	// CheckOrganizationAccess reports whether user holds relation on the organization
	CheckOrganizationAccess(ctx context.Context, user *types.User, code, relation string) bool
	// CheckMissionAccess reports whether user holds permission on the mission
	CheckMissionAccess(ctx context.Context, user *types.User, m *types.Mission, permission string) bool
}
