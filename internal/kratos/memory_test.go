// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package kratos

import (
	"context"
	"errors"
	"strings"
	"testing"

	"golang.org/x/crypto/bcrypt"

	"github.com/canonical/squad-service/internal/logging"
	"github.com/canonical/squad-service/internal/monitoring"
	"github.com/canonical/squad-service/internal/tracing"
)

func newTestMemoryClient() *MemoryClient {
	return NewMemoryClient("http://squad.local", bcrypt.MinCost, tracing.NewNoopTracer(), monitoring.NewNoopMonitor("test"), logging.NewNoopLogger())
}

func TestMemoryClientLifecycle(t *testing.T) {
	c := newTestMemoryClient()
	ctx := context.Background()

	id, err := c.SignUp(ctx, "a@x.com", "secret1", "Alice")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, err := c.SignUp(ctx, "A@X.com", "secret2", "Alice"); !errors.Is(err, ErrIdentityExists) {
		t.Fatalf("expected ErrIdentityExists, got %v", err)
	}

	if _, err := c.SignIn(ctx, "a@x.com", "wrong"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}

	if _, err := c.SignIn(ctx, "nobody@x.com", "secret1"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}

	session, err := c.SignIn(ctx, "a@x.com", "secret1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if session.IdentityID != id || session.Token == "" {
		t.Fatalf("unexpected session %+v", session)
	}

	if got, err := c.VerifyToken(ctx, session.Token); err != nil || got != id {
		t.Fatalf("expected the session to resolve to %s, got %q %v", id, got, err)
	}

	if err := c.SignOut(ctx, id); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, err := c.VerifyToken(ctx, session.Token); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected the session to be revoked, got %v", err)
	}
}

func TestMemoryClientSendReset(t *testing.T) {
	c := newTestMemoryClient()
	ctx := context.Background()

	id, _ := c.SignUp(ctx, "a@x.com", "secret1", "Alice")

	recovery, err := c.SendReset(ctx, "a@x.com")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if recovery.IdentityID != id || !strings.HasPrefix(recovery.Link, "http://squad.local/recovery?code=") {
		t.Fatalf("unexpected recovery %+v", recovery)
	}

	if _, err := c.SendReset(ctx, "nobody@x.com"); !errors.Is(err, ErrIdentityNotFound) {
		t.Fatalf("expected ErrIdentityNotFound, got %v", err)
	}
}

func TestMemoryClientHonoursContext(t *testing.T) {
	c := newTestMemoryClient()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := c.SignUp(ctx, "a@x.com", "secret1", "Alice"); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}
