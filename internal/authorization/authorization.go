// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package authorization

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/canonical/squad-service/internal/logging"
	"github.com/canonical/squad-service/internal/monitoring"
	"github.com/canonical/squad-service/internal/tracing"
	"github.com/canonical/squad-service/internal/types"
)

var _ AuthorizerInterface = (*Authorizer)(nil)

// Authorizer resolves relations from the roles stored in the directory:
//
//	organization#admin       user is the admin of the organization
//	organization#member      user is the admin or a member of the organization
//	mission#participant      user is on the mission team
//	mission#can_view         participant or organization#admin
//	mission#can_edit         participant
//	mission#can_end          creator or organization#admin
type Authorizer struct {
	tracer  tracing.TracingInterface
	monitor monitoring.MonitorInterface
	logger  logging.LoggerInterface
}

func (a *Authorizer) organizationRelation(user *types.User, code, relation string) bool {
	if user == nil || code == "" || user.OrganizationCode != code {
		return false
	}

	switch relation {
	case ADMIN_RELATION:
		return user.Role == types.RoleAdmin
	case MEMBER_RELATION:
		return user.Role.HasOrganization()
	}

	return false
}

func (a *Authorizer) missionPermission(user *types.User, m *types.Mission, permission string) bool {
	if user == nil || m == nil {
		return false
	}

	participant := m.HasTeamMember(user.ID)
	admin := a.organizationRelation(user, m.OrganizationCode, ADMIN_RELATION)

	switch permission {
	case PARTICIPANT_RELATION, CAN_EDIT_PERMISSION:
		return participant
	case CAN_VIEW_PERMISSION:
		return participant || admin
	case CAN_END_PERMISSION:
		return m.CreatedBy == user.ID || admin
	}

	return false
}

func (a *Authorizer) decide(span trace.Span, user *types.User, relation, object string, allowed bool) bool {
	subject := ""
	if user != nil {
		subject = user.ID
	}

	span.SetAttributes(
		attribute.String("authz.user", UserTuple(subject)),
		attribute.String("authz.relation", relation),
		attribute.String("authz.object", object),
		attribute.Bool("authz.allowed", allowed),
	)

	if !allowed {
		a.logger.Security().AuthzFailure(subject, relation+"@"+object)
	}

	return allowed
}

func (a *Authorizer) CheckOrganizationAccess(ctx context.Context, user *types.User, code, relation string) bool {
	_, span := a.tracer.Start(ctx, "authorization.Authorizer.CheckOrganizationAccess")
	defer span.End()

	return a.decide(span, user, relation, OrganizationTuple(code), a.organizationRelation(user, code, relation))
}

func (a *Authorizer) CheckMissionAccess(ctx context.Context, user *types.User, m *types.Mission, permission string) bool {
	_, span := a.tracer.Start(ctx, "authorization.Authorizer.CheckMissionAccess")
	defer span.End()

	object := MissionTuple("")
	if m != nil {
		object = MissionTuple(m.ID)
	}

	return a.decide(span, user, permission, object, a.missionPermission(user, m, permission))
}

func NewAuthorizer(tracer tracing.TracingInterface, monitor monitoring.MonitorInterface, logger logging.LoggerInterface) *Authorizer {
	authorizer := new(Authorizer)
	authorizer.tracer = tracer
	authorizer.monitor = monitor
	authorizer.logger = logger

	return authorizer
}
