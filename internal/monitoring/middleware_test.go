// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package monitoring

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/canonical/squad-service/internal/logging"
)

type recordingMonitor struct {
	NoopMonitor

	tags []map[string]string
}

func (m *recordingMonitor) SetResponseTimeMetric(tags map[string]string, _ float64) error {
	m.tags = append(m.tags, tags)
	return nil
}

func TestResponseTimeUsesRoutePattern(t *testing.T) {
	monitor := new(recordingMonitor)

	r := chi.NewRouter()
	r.Use(NewMiddleware(monitor, logging.NewNoopLogger()).ResponseTime())
	r.Get("/api/v0/missions/{id}", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	})

	req := httptest.NewRequest(http.MethodGet, "/api/v0/missions/abc", nil)
	r.ServeHTTP(httptest.NewRecorder(), req)

	if len(monitor.tags) != 1 {
		t.Fatalf("expected one metric, got %d", len(monitor.tags))
	}

	if route := monitor.tags[0]["route"]; route != "GET/api/v0/missions/{id}" {
		t.Fatalf("unexpected route tag %q", route)
	}

	if status := monitor.tags[0]["status"]; status != "418" {
		t.Fatalf("unexpected status tag %q", status)
	}
}
