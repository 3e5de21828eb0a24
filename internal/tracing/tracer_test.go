// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package tracing

import (
	"context"
	"testing"

	"github.com/canonical/squad-service/internal/logging"
)

func TestNewTracerDisabled(t *testing.T) {
	tracer := NewTracer(NewConfig(false, "squad-service-test", "", "", 0.5, logging.NewNoopLogger()))

	_, span := tracer.Start(context.Background(), "tracing.TestNewTracerDisabled")
	defer span.End()

	if span.IsRecording() {
		t.Fatal("expected a non recording span when tracing is disabled")
	}
}

func TestNoopTracer(t *testing.T) {
	ctx, span := NewNoopTracer().Start(context.Background(), "noop")
	defer span.End()

	if ctx == nil {
		t.Fatal("expected a context")
	}
	if span.SpanContext().IsValid() {
		t.Fatal("expected an invalid span context from the noop tracer")
	}
}

func TestConfigDefaults(t *testing.T) {
	tests := []struct {
		name    string
		cfg     *Config
		service string
		ratio   float64
	}{
		{name: "empty", cfg: NewConfig(true, "", "", "", 0, nil), service: "squad-service", ratio: 1},
		{name: "out of range ratio", cfg: NewConfig(true, "worker", "", "", 2, nil), service: "worker", ratio: 1},
		{name: "explicit", cfg: NewConfig(true, "worker", "", "", 0.25, nil), service: "worker", ratio: 0.25},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			if got := test.cfg.service(); got != test.service {
				t.Fatalf("expected service %s, got %s", test.service, got)
			}

			if got := test.cfg.ratio(); got != test.ratio {
				t.Fatalf("expected ratio %v, got %v", test.ratio, got)
			}
		})
	}
}
