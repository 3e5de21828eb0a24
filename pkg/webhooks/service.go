// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package webhooks

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/ory/hydra/v2/oauth2"

	"github.com/canonical/squad-service/internal/logging"
	"github.com/canonical/squad-service/internal/monitoring"
	"github.com/canonical/squad-service/internal/storage"
	"github.com/canonical/squad-service/internal/tracing"
	"github.com/canonical/squad-service/internal/types"
)

const (
	RoleClaim             = "role"
	OrganizationCodeClaim = "organization_code"
)

var _ ServiceInterface = (*Service)(nil)

// ErrEmailTaken reports an address already held by another user document
var ErrEmailTaken = errors.New("email belongs to another user")

type Service struct {
	storage StorageInterface

	tracer  tracing.TracingInterface
	monitor monitoring.MonitorInterface
	logger  logging.LoggerInterface
}

// HandleRegistration stores the pending user document of an identity
// registered through Kratos self-service, a document that already exists for
// the identity is left untouched
func (s *Service) HandleRegistration(ctx context.Context, identityID, email, displayName string) error {
	ctx, span := s.tracer.Start(ctx, "webhooks.Service.HandleRegistration")
	defer span.End()

	s.logger.Debugf("handling registration of identity %s", identityID)

	email = strings.TrimSpace(email)
	if identityID == "" || email == "" {
		return fmt.Errorf("identity ID or email is empty")
	}

	displayName = strings.TrimSpace(displayName)
	if displayName == "" {
		displayName, _, _ = strings.Cut(email, "@")
	}

	_, err := s.storage.CreateUser(ctx, &types.User{
		ID:          identityID,
		Email:       email,
		DisplayName: displayName,
		Role:        types.RolePending,
	})

	if errors.Is(err, storage.ErrDuplicateKey) {
		return s.existing(ctx, identityID, email)
	}

	if err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}

	s.logger.Security().UserCreated(identityID)

	return nil
}

func (s *Service) existing(ctx context.Context, identityID, email string) error {
	_, err := s.storage.GetUser(ctx, identityID)

	if errors.Is(err, storage.ErrNotFound) {
		return fmt.Errorf("%s: %w", email, ErrEmailTaken)
	}

	if err != nil {
		return fmt.Errorf("failed to get user: %w", err)
	}

	s.logger.Debugf("user %s already stored", identityID)

	return nil
}

// HandleTokenHook adds the subject's role and organization code to the ID and
// access tokens issued by Hydra
func (s *Service) HandleTokenHook(ctx context.Context, req *oauth2.TokenHookRequest) (*TokenHookResponse, error) {
	ctx, span := s.tracer.Start(ctx, "webhooks.Service.HandleTokenHook")
	defer span.End()

	if req == nil || req.Session == nil || req.Session.DefaultSession == nil {
		return nil, fmt.Errorf("token hook request has no session")
	}

	subject := req.Session.DefaultSession.Subject
	if subject == "" {
		return nil, fmt.Errorf("token hook session has no subject")
	}

	s.logger.Debugf("handling token hook for %s", subject)

	resp := new(TokenHookResponse)

	user, err := s.storage.GetUser(ctx, subject)
	if errors.Is(err, storage.ErrNotFound) {
		// machine clients and identities without a user document get no claims
		return resp, nil
	}

	if err != nil {
		return nil, fmt.Errorf("failed to get user %s: %w", subject, err)
	}

	claims := map[string]any{RoleClaim: string(user.Role)}
	if user.OrganizationCode != "" {
		claims[OrganizationCodeClaim] = user.OrganizationCode
	}

	resp.Session.IDToken = claims
	resp.Session.AccessToken = claims

	return resp, nil
}

func NewService(
	storage StorageInterface,
	tracer tracing.TracingInterface,
	monitor monitoring.MonitorInterface,
	logger logging.LoggerInterface,
) *Service {
	return &Service{
		storage: storage,
		tracer:  tracer,
		monitor: monitor,
		logger:  logger,
	}
}
