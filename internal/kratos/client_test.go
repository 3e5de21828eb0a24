// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package kratos

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/canonical/squad-service/internal/logging"
	"github.com/canonical/squad-service/internal/monitoring"
	"github.com/canonical/squad-service/internal/tracing"
)

func identityJSON(id, email string) map[string]any {
	return map[string]any{
		"id":         id,
		"schema_id":  "default",
		"schema_url": "http://kratos/schemas/default",
		"traits":     map[string]any{"email": email},
	}
}

func newFakeKratos(t *testing.T) *httptest.Server {
	t.Helper()

	r := chi.NewRouter()

	r.Post("/admin/identities", func(w http.ResponseWriter, r *http.Request) {
		body := make(map[string]any)
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}

		traits, _ := body["traits"].(map[string]any)
		if traits["email"] == "breached@x.com" {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusBadRequest)
			_ = json.NewEncoder(w).Encode(map[string]any{"error": map[string]any{
				"code":    400,
				"message": "The request was malformed or contained invalid parameters",
				"reason":  "the password has been found in data breaches",
			}})
			return
		}

		if traits["email"] == "taken@x.com" {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusConflict)
			_ = json.NewEncoder(w).Encode(map[string]any{"error": map[string]any{"code": 409, "message": "conflict"}})
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(identityJSON("identity-1", traits["email"].(string)))
	})

	r.Get("/admin/identities", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")

		if r.URL.Query().Get("credentials_identifier") == "a@x.com" {
			_ = json.NewEncoder(w).Encode([]any{identityJSON("identity-1", "a@x.com")})
			return
		}

		_ = json.NewEncoder(w).Encode([]any{})
	})

	r.Delete("/admin/identities/{id}/sessions", func(w http.ResponseWriter, r *http.Request) {
		if chi.URLParam(r, "id") != "identity-1" {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusNotFound)
			_ = json.NewEncoder(w).Encode(map[string]any{"error": map[string]any{"code": 404, "message": "not found"}})
			return
		}

		w.WriteHeader(http.StatusNoContent)
	})

	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)

	return srv
}

func newTestClient(url string) *Client {
	return NewClient(url, url, "default", "1h", http.DefaultClient, tracing.NewNoopTracer(), monitoring.NewNoopMonitor("test"), logging.NewNoopLogger())
}

func TestClientSignUp(t *testing.T) {
	c := newTestClient(newFakeKratos(t).URL)

	id, err := c.SignUp(context.Background(), "a@x.com", "secret1", "Alice")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if id != "identity-1" {
		t.Fatalf("expected identity-1, got %s", id)
	}

	if _, err := c.SignUp(context.Background(), "taken@x.com", "secret1", "Alice"); !errors.Is(err, ErrIdentityExists) {
		t.Fatalf("expected ErrIdentityExists, got %v", err)
	}

	_, err = c.SignUp(context.Background(), "breached@x.com", "password", "Alice")
	if !errors.Is(err, ErrInvalidIdentity) {
		t.Fatalf("expected ErrInvalidIdentity, got %v", err)
	}

	if !strings.Contains(err.Error(), "data breaches") {
		t.Fatalf("expected the provider reason in the error, got %v", err)
	}
}

func TestClientGetIdentityIDByEmail(t *testing.T) {
	c := newTestClient(newFakeKratos(t).URL)

	id, err := c.GetIdentityIDByEmail(context.Background(), "a@x.com")
	if err != nil || id != "identity-1" {
		t.Fatalf("expected identity-1, got %q %v", id, err)
	}

	if _, err := c.GetIdentityIDByEmail(context.Background(), "nobody@x.com"); !errors.Is(err, ErrIdentityNotFound) {
		t.Fatalf("expected ErrIdentityNotFound, got %v", err)
	}

	if _, err := c.SendReset(context.Background(), "nobody@x.com"); !errors.Is(err, ErrIdentityNotFound) {
		t.Fatalf("expected ErrIdentityNotFound, got %v", err)
	}
}

func TestClientSignOut(t *testing.T) {
	c := newTestClient(newFakeKratos(t).URL)

	if err := c.SignOut(context.Background(), "identity-1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if err := c.SignOut(context.Background(), "identity-2"); !errors.Is(err, ErrIdentityNotFound) {
		t.Fatalf("expected ErrIdentityNotFound, got %v", err)
	}
}

func TestClientDeadline(t *testing.T) {
	c := newTestClient(newFakeKratos(t).URL)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := c.SignUp(ctx, "a@x.com", "secret1", "Alice"); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected the context error to be preserved, got %v", err)
	}
}
