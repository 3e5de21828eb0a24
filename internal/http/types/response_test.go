// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package types

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestWriteError(t *testing.T) {
	w := httptest.NewRecorder()

	WriteError(w, http.StatusConflict, "conflict", "already exists")

	if w.Code != http.StatusConflict {
		t.Fatalf("expected status %d, got %d", http.StatusConflict, w.Code)
	}

	if ct := w.Header().Get("Content-Type"); ct != "application/json" {
		t.Fatalf("unexpected content type %q", ct)
	}

	var body ErrorResponse
	if err := json.NewDecoder(w.Body).Decode(&body); err != nil {
		t.Fatalf("failed to decode body: %v", err)
	}

	if body.Status != http.StatusConflict || body.Kind != "conflict" || body.Message != "already exists" {
		t.Fatalf("unexpected body %+v", body)
	}
}

func TestDecodeJSON(t *testing.T) {
	type payload struct {
		Name string `json:"name"`
	}

	tests := []struct {
		name     string
		body     string
		expected string
		wantErr  bool
	}{
		{name: "valid", body: `{"name":"squad"}`, expected: "squad"},
		{name: "empty body", body: ``},
		{name: "unknown field", body: `{"other":"x"}`, wantErr: true},
		{name: "not json", body: `name=squad`, wantErr: true},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(test.body))

			var p payload
			err := DecodeJSON(r, &p)

			if (err != nil) != test.wantErr {
				t.Fatalf("expected error %v, got %v", test.wantErr, err)
			}

			if p.Name != test.expected {
				t.Fatalf("expected name %q, got %q", test.expected, p.Name)
			}
		})
	}
}
