// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package web

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"go.uber.org/mock/gomock"
	"golang.org/x/crypto/bcrypt"

	"github.com/canonical/squad-service/internal/identity"
	"github.com/canonical/squad-service/internal/invitecode"
	"github.com/canonical/squad-service/internal/kratos"
	"github.com/canonical/squad-service/internal/logging"
	"github.com/canonical/squad-service/internal/monitoring"
	"github.com/canonical/squad-service/internal/ratelimit"
	"github.com/canonical/squad-service/internal/storage"
	"github.com/canonical/squad-service/internal/tracing"
	"github.com/canonical/squad-service/internal/types"
	"github.com/canonical/squad-service/pkg/authentication"
	"github.com/canonical/squad-service/pkg/membership"
	"github.com/canonical/squad-service/pkg/mission"
	"github.com/canonical/squad-service/pkg/status"
	"github.com/canonical/squad-service/pkg/webhooks"
)

const testWebhookKey = "hook-secret"

type client struct {
	t       *testing.T
	handler http.Handler
}

func (c *client) do(method, path, token string, body any, out any) int {
	c.t.Helper()

	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			c.t.Fatalf("failed to encode body: %v", err)
		}
	}

	r := httptest.NewRequest(method, path, &buf)
	r.Header.Set("Content-Type", "application/json")
	if token != "" {
		r.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	c.handler.ServeHTTP(w, r)

	if out != nil && w.Code < http.StatusBadRequest {
		envelope := struct {
			Data any `json:"data"`
		}{Data: out}

		if err := json.NewDecoder(w.Body).Decode(&envelope); err != nil {
			c.t.Fatalf("failed to decode %s %s: %v", method, path, err)
		}
	}

	return w.Code
}

func newTestRouter(t *testing.T, trustHeader bool) *client {
	ctrl := gomock.NewController(t)

	tracer := tracing.NewNoopTracer()
	monitor := monitoring.NewNoopMonitor("test")
	logger := logging.NewNoopLogger()

	s := storage.NewMemoryStorage(tracer, monitor, logger)
	identityProvider := kratos.NewMemoryClient("http://localhost", bcrypt.MinCost, tracer, monitor, logger)

	checker := status.NewMockCheckerInterface(ctrl)
	checker.EXPECT().Ping(gomock.Any()).Return(nil).AnyTimes()

	var identityMiddleware *identity.Middleware
	if trustHeader {
		identityMiddleware = identity.NewMiddleware(tracer, monitor, logger)
	}

	handler := NewRouter(
		membership.NewService(s, identityProvider, membership.NewMockEnqueuerInterface(ctrl), invitecode.NewGenerator(), time.Second, tracer, monitor, logger),
		mission.NewService(s, nil, time.Second, tracer, monitor, logger),
		webhooks.NewService(s, tracer, monitor, logger),
		authentication.NewMiddleware(identityProvider, tracer, monitor, logger),
		identityMiddleware,
		ratelimit.NewIPRateLimiter(600, 100, logger),
		map[string]status.CheckerInterface{"database": checker},
		nil,
		[]string{"*"},
		testWebhookKey,
		tracer,
		monitor,
		logger,
	)

	return &client{t: t, handler: handler}
}

func (c *client) signUp(email, name string) string {
	c.t.Helper()

	if code := c.do(http.MethodPost, "/api/v0/auth/register", "", membership.RegisterRequest{Email: email, Password: "secret1", DisplayName: name}, nil); code != http.StatusCreated {
		c.t.Fatalf("register %s: status %d", email, code)
	}

	session := new(types.Session)
	if code := c.do(http.MethodPost, "/api/v0/auth/login", "", membership.SignInRequest{Email: email, Password: "secret1"}, session); code != http.StatusOK {
		c.t.Fatalf("login %s: status %d", email, code)
	}

	return session.Token
}

func TestRouterMembershipFlow(t *testing.T) {
	c := newTestRouter(t, false)

	alice := c.signUp("alice@x.com", "Alice")
	bob := c.signUp("bob@x.com", "Bob")

	created := new(membership.OrganizationCreated)
	if code := c.do(http.MethodPost, "/api/v0/organizations", alice, membership.OrganizationRequest{Name: "Rescue Squad"}, created); code != http.StatusCreated {
		t.Fatalf("create organization: status %d", code)
	}

	if code := c.do(http.MethodPost, "/api/v0/organizations/join", bob, membership.JoinRequest{Code: created.Code}, nil); code != http.StatusOK {
		t.Fatalf("join organization: status %d", code)
	}

	var members []*types.User
	if code := c.do(http.MethodGet, "/api/v0/organizations/"+created.Code+"/members", bob, nil, &members); code != http.StatusOK {
		t.Fatalf("members: status %d", code)
	}

	if len(members) != 2 {
		t.Fatalf("expected 2 members, got %d", len(members))
	}

	carol := c.signUp("carol@x.com", "Carol")
	for _, path := range []string{"/api/v0/organizations/" + created.Code, "/api/v0/organizations/" + created.Code + "/members"} {
		if code := c.do(http.MethodGet, path, carol, nil, nil); code != http.StatusForbidden {
			t.Fatalf("%s: expected status %d for a pending user, got %d", path, http.StatusForbidden, code)
		}
	}

	m := new(types.Mission)
	if code := c.do(http.MethodPost, "/api/v0/missions", alice, mission.StartRequest{Title: "Sweep", Type: types.MissionTypeIndividual}, m); code != http.StatusCreated {
		t.Fatalf("start mission: status %d", code)
	}

	if m.OrganizationCode != created.Code {
		t.Fatalf("expected mission in %s, got %s", created.Code, m.OrganizationCode)
	}
}

func TestRouterRejectsAnonymousCallers(t *testing.T) {
	c := newTestRouter(t, false)

	for _, path := range []string{"/api/v0/me", "/api/v0/missions/active"} {
		if code := c.do(http.MethodGet, path, "", nil, nil); code != http.StatusUnauthorized {
			t.Fatalf("%s: expected status %d, got %d", path, http.StatusUnauthorized, code)
		}
	}

	if code := c.do(http.MethodGet, "/api/v0/me", "not-a-session", nil, nil); code != http.StatusUnauthorized {
		t.Fatalf("expected an unknown token to be rejected, got %d", code)
	}
}

func TestRouterStatusEndpoints(t *testing.T) {
	c := newTestRouter(t, false)

	for _, path := range []string{"/api/v0/status", "/api/v0/ready", "/api/v0/version", "/api/v0/metrics"} {
		if code := c.do(http.MethodGet, path, "", nil, nil); code != http.StatusOK {
			t.Fatalf("%s: expected status %d, got %d", path, http.StatusOK, code)
		}
	}
}

func TestRouterTrustsIdentityHeader(t *testing.T) {
	c := newTestRouter(t, true)

	if code := c.do(http.MethodPost, "/api/v0/webhooks/registration", testWebhookKey, webhooks.KratosIdentity{ID: "u1", Traits: webhooks.KratosTraits{Email: "u1@x.com"}}, nil); code >= http.StatusBadRequest {
		t.Fatalf("registration webhook: status %d", code)
	}

	r := httptest.NewRequest(http.MethodGet, "/api/v0/me", nil)
	r.Header.Set(identity.HeaderName, "u1")

	w := httptest.NewRecorder()
	c.handler.ServeHTTP(w, r)

	if w.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d: %s", http.StatusOK, w.Code, w.Body.String())
	}
}

func TestRouterRejectsUnsignedWebhooks(t *testing.T) {
	c := newTestRouter(t, false)

	hook := webhooks.KratosIdentity{ID: "attacker-chosen-id", Traits: webhooks.KratosTraits{Email: "victim@x.com"}}

	for _, key := range []string{"", "guess"} {
		if code := c.do(http.MethodPost, "/api/v0/webhooks/registration", key, hook, nil); code != http.StatusUnauthorized {
			t.Fatalf("key %q: expected status %d, got %d", key, http.StatusUnauthorized, code)
		}
	}

	// the address is still free for its owner
	c.signUp("victim@x.com", "Victim")
}
