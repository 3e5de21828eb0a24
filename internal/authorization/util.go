// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package authorization

const (
	ADMIN_RELATION       = "admin"
	MEMBER_RELATION      = "member"
	PARTICIPANT_RELATION = "participant"

	CAN_VIEW_PERMISSION = "can_view"
	CAN_EDIT_PERMISSION = "can_edit"
	CAN_END_PERMISSION  = "can_end"
)

func UserTuple(userId string) string {
	return "user:" + userId
}

func OrganizationTuple(code string) string {
	return "organization:" + code
}

func MissionTuple(missionId string) string {
	return "mission:" + missionId
}
