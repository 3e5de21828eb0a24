// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package authentication

import (
	"context"
	"testing"

	"github.com/canonical/squad-service/internal/logging"
	"github.com/canonical/squad-service/internal/monitoring"
	"github.com/canonical/squad-service/internal/tracing"
)

func TestAccessClaimsHasScope(t *testing.T) {
	tests := []struct {
		name     string
		claims   accessClaims
		expected bool
	}{
		{name: "space separated scope", claims: accessClaims{Scope: "openid squad offline"}, expected: true},
		{name: "scp array", claims: accessClaims{Scopes: []string{"openid", "squad"}}, expected: true},
		{name: "prefix is not a match", claims: accessClaims{Scope: "squad.read"}},
		{name: "no scopes", claims: accessClaims{}},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			if got := test.claims.hasScope("squad"); got != test.expected {
				t.Fatalf("expected %v, got %v", test.expected, got)
			}
		})
	}
}

func TestNewJWTAuthenticatorRequiresIssuer(t *testing.T) {
	_, err := NewJWTAuthenticator(context.Background(), "", "", "", tracing.NewNoopTracer(), monitoring.NewNoopMonitor("test"), logging.NewNoopLogger())
	if err == nil {
		t.Fatal("expected an error without issuer")
	}
}

func TestNewJWTAuthenticatorWithJWKS(t *testing.T) {
	v, err := NewJWTAuthenticator(context.Background(), "http://hydra.local", "http://hydra.local/.well-known/jwks.json", "squad", tracing.NewNoopTracer(), monitoring.NewNoopMonitor("test"), logging.NewNoopLogger())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, err := v.VerifyToken(context.Background(), "not-a-jwt"); err == nil {
		t.Fatal("expected a malformed token to be rejected")
	}
}
