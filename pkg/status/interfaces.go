// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package status

import (
	"context"
)

// CheckerInterface is a dependency the service needs to be ready
type CheckerInterface interface {
	Ping(context.Context) error
}
