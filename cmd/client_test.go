// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package cmd

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"go.uber.org/mock/gomock"
	"golang.org/x/crypto/bcrypt"

	"github.com/canonical/squad-service/internal/invitecode"
	"github.com/canonical/squad-service/internal/kratos"
	"github.com/canonical/squad-service/internal/logging"
	"github.com/canonical/squad-service/internal/monitoring"
	"github.com/canonical/squad-service/internal/storage"
	"github.com/canonical/squad-service/internal/tracing"
	"github.com/canonical/squad-service/internal/types"
	"github.com/canonical/squad-service/pkg/authentication"
	"github.com/canonical/squad-service/pkg/membership"
	"github.com/canonical/squad-service/pkg/mission"
	"github.com/canonical/squad-service/pkg/web"
	"github.com/canonical/squad-service/pkg/webhooks"
)

const testWebhookKey = "hook-secret"

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	ctrl := gomock.NewController(t)

	tracer := tracing.NewNoopTracer()
	monitor := monitoring.NewNoopMonitor("test")
	logger := logging.NewNoopLogger()

	s := storage.NewMemoryStorage(tracer, monitor, logger)
	identityProvider := kratos.NewMemoryClient("http://localhost", bcrypt.MinCost, tracer, monitor, logger)

	srv := httptest.NewServer(web.NewRouter(
		membership.NewService(s, identityProvider, membership.NewMockEnqueuerInterface(ctrl), invitecode.NewGenerator(), time.Second, tracer, monitor, logger),
		mission.NewService(s, nil, time.Second, tracer, monitor, logger),
		webhooks.NewService(s, tracer, monitor, logger),
		authentication.NewMiddleware(identityProvider, tracer, monitor, logger),
		nil,
		nil,
		nil,
		nil,
		[]string{"*"},
		testWebhookKey,
		tracer,
		monitor,
		logger,
	))
	t.Cleanup(srv.Close)

	return srv
}

func signedInClient(t *testing.T, endpoint, email string) *apiClient {
	t.Helper()

	ctx := context.Background()
	anonymous := newAPIClient(endpoint, "", "", nil)

	if _, err := anonymous.Register(ctx, email, "secret1", "Tester"); err != nil {
		t.Fatalf("failed to register %s: %v", email, err)
	}

	session, err := anonymous.SignIn(ctx, email, "secret1")
	if err != nil {
		t.Fatalf("failed to sign in %s: %v", email, err)
	}

	return newAPIClient(endpoint, session.Token, "", nil)
}

func TestAPIClientMembershipFlow(t *testing.T) {
	srv := newTestServer(t)
	ctx := context.Background()

	alice := signedInClient(t, srv.URL, "alice@x.com")
	bob := signedInClient(t, srv.URL, "bob@x.com")

	code, err := alice.CreateOrganization(ctx, "Rescue Squad", "key-1")
	if err != nil {
		t.Fatalf("failed to create organization: %v", err)
	}

	replayed, err := alice.CreateOrganization(ctx, "Rescue Squad", "key-1")
	if err != nil {
		t.Fatalf("failed to replay creation: %v", err)
	}

	if replayed != code {
		t.Fatalf("expected the replay to return %s, got %s", code, replayed)
	}

	u, err := bob.JoinOrganization(ctx, code)
	if err != nil {
		t.Fatalf("failed to join: %v", err)
	}

	if u.Role != types.RoleMember || u.OrganizationCode != code {
		t.Fatalf("unexpected user after join %+v", u)
	}

	o, err := bob.Organization(ctx, code)
	if err != nil {
		t.Fatalf("failed to get organization: %v", err)
	}

	if o.Name != "Rescue Squad" {
		t.Fatalf("unexpected organization %+v", o)
	}

	members, err := alice.Members(ctx, code, 1, 10)
	if err != nil {
		t.Fatalf("failed to list members: %v", err)
	}

	if len(members) != 2 {
		t.Fatalf("expected 2 members, got %d", len(members))
	}

	me, err := alice.Me(ctx)
	if err != nil {
		t.Fatalf("failed to get me: %v", err)
	}

	if me.Role != types.RoleAdmin {
		t.Fatalf("expected alice to be admin, got %s", me.Role)
	}
}

func TestAPIClientErrors(t *testing.T) {
	srv := newTestServer(t)
	ctx := context.Background()

	alice := signedInClient(t, srv.URL, "alice@x.com")

	_, err := alice.JoinOrganization(ctx, "NOSUCH")

	var e *apiError
	if !errors.As(err, &e) {
		t.Fatalf("expected an api error, got %v", err)
	}

	if e.Status != http.StatusNotFound || e.Kind != "organization_not_found" {
		t.Fatalf("unexpected error %+v", e)
	}

	_, err = newAPIClient(srv.URL, "", "", nil).Me(ctx)
	if !errors.As(err, &e) || e.Status != http.StatusUnauthorized {
		t.Fatalf("expected an unauthorized error, got %v", err)
	}
}

func TestNewAPIClientNormalizesEndpoint(t *testing.T) {
	c := newAPIClient("localhost:8080/", "", "", nil)

	if c.endpoint != "http://localhost:8080" {
		t.Fatalf("unexpected endpoint %s", c.endpoint)
	}
}
