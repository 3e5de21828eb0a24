// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package queue

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/hibiken/asynq"
)

const (
	TypePasswordReset = "mail:password_reset"

	passwordResetMaxRetry = 5
	passwordResetTimeout  = time.Minute
)

// PasswordResetPayload is the body of a TypePasswordReset task
type PasswordResetPayload struct {
	Email string `json:"email"`
	Link  string `json:"link"`
}

func NewPasswordResetTask(p PasswordResetPayload) (*asynq.Task, error) {
	payload, err := json.Marshal(p)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal password reset payload: %w", err)
	}

	return asynq.NewTask(
		TypePasswordReset,
		payload,
		asynq.MaxRetry(passwordResetMaxRetry),
		asynq.Timeout(passwordResetTimeout),
	), nil
}
