// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package config

import (
	"fmt"
	"strings"
	"testing"
)

func TestRedacted(t *testing.T) {
	specs := EnvSpec{
		DSN:           "postgres://squad:hunter2@db:5432/squad",
		SMTPHost:      "smtp.local",
		SMTPPassword:  "hunter2",
		WebhookAPIKey: "hook-secret",
	}

	out := fmt.Sprintf("%+v", specs.Redacted())

	for _, secret := range []string{"hunter2", "hook-secret"} {
		if strings.Contains(out, secret) {
			t.Fatalf("expected %q to be redacted from %s", secret, out)
		}
	}

	if !strings.Contains(out, "smtp.local") {
		t.Fatalf("expected non secret values to be kept, got %s", out)
	}

	if specs.SMTPPassword != "hunter2" {
		t.Fatal("expected the original spec to be left untouched")
	}

	if empty := (EnvSpec{}).Redacted(); empty.SMTPPassword != "" {
		t.Fatalf("expected unset secrets to stay empty, got %q", empty.SMTPPassword)
	}
}
