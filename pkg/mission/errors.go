// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package mission

import (
	"errors"
	"net/http"

	"github.com/canonical/squad-service/pkg/membership"
)

var (
	ErrMissionNotFound     = errors.New("mission not found")
	ErrActiveMissionExists = errors.New("user already takes part in an active mission")
	ErrMissionEnded        = errors.New("mission has ended")
)

// ErrorStatus extends the membership mapping with mission errors
func ErrorStatus(err error) (int, string) {
	switch {
	case errors.Is(err, ErrMissionNotFound):
		return http.StatusNotFound, "mission_not_found"
	case errors.Is(err, ErrActiveMissionExists):
		return http.StatusConflict, "active_mission_exists"
	case errors.Is(err, ErrMissionEnded):
		return http.StatusConflict, "mission_ended"
	default:
		return membership.ErrorStatus(err)
	}
}
