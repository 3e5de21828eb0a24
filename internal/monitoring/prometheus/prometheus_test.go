// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package prometheus

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/canonical/squad-service/internal/logging"
)

func TestIncPartialFailure(t *testing.T) {
	m := NewMonitor("squad_test", logging.NewNoopLogger())

	for range 2 {
		if err := m.IncPartialFailure(map[string]string{"operation": "join organization"}); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}

	families, err := prometheus.DefaultGatherer.Gather()
	if err != nil {
		t.Fatalf("failed to gather metrics: %v", err)
	}

	for _, family := range families {
		if family.GetName() != "squad_test_partial_failures_total" {
			continue
		}

		metrics := family.GetMetric()
		if len(metrics) != 1 || metrics[0].GetCounter().GetValue() != 2 {
			t.Fatalf("expected one series counted twice, got %v", metrics)
		}

		return
	}

	t.Fatal("partial failure counter was not registered")
}

func TestUninstantiatedMetrics(t *testing.T) {
	m := new(Monitor)

	if err := m.IncPartialFailure(map[string]string{"operation": "create organization"}); err == nil {
		t.Fatal("expected an error without a counter")
	}

	if err := m.SetDependencyAvailability(map[string]string{"component": "redis"}, 1); err == nil {
		t.Fatal("expected an error without a gauge")
	}
}
