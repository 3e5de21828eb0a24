// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package queue

import (
	"context"
)

type EnqueuerInterface interface {
	EnqueuePasswordReset(ctx context.Context, email, link string) error
}

// SenderInterface delivers the mails queued by the service
type SenderInterface interface {
	SendPasswordReset(ctx context.Context, to, link string) error
}
