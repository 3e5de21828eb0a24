// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package mail

import (
	"bytes"
	"strings"
	"testing"

	gomail "github.com/wneessen/go-mail"

	"github.com/canonical/squad-service/internal/logging"
	"github.com/canonical/squad-service/internal/monitoring"
	"github.com/canonical/squad-service/internal/tracing"
)

func newTestSender() *SMTPSender {
	return NewSMTPSender(
		Config{Host: "localhost", Port: 2525, From: "no-reply@squad.local"},
		tracing.NewNoopTracer(),
		monitoring.NewNoopMonitor("test"),
		logging.NewNoopLogger(),
	)
}

func TestPasswordResetMessage(t *testing.T) {
	s := newTestSender()

	msg, err := s.passwordResetMessage("a@x.com", "http://squad.local/recovery?code=abc&x=1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if subject := msg.GetGenHeader(gomail.HeaderSubject); len(subject) != 1 || subject[0] != passwordResetSubject {
		t.Fatalf("unexpected subject %v", subject)
	}

	recipients, err := msg.GetRecipients()
	if err != nil || len(recipients) != 1 || recipients[0] != "a@x.com" {
		t.Fatalf("unexpected recipients %v %v", recipients, err)
	}

	var buf bytes.Buffer
	if _, err := msg.WriteTo(&buf); err != nil {
		t.Fatalf("failed to render message: %v", err)
	}

	if !strings.Contains(buf.String(), "text/html") {
		t.Fatal("expected an html alternative")
	}
}

func TestPasswordResetMessageRejectsBadRecipient(t *testing.T) {
	if _, err := newTestSender().passwordResetMessage("not an address", "http://l"); err == nil {
		t.Fatal("expected an invalid recipient to fail")
	}
}

func TestDefaultTimeout(t *testing.T) {
	if s := newTestSender(); s.cfg.Timeout <= 0 {
		t.Fatal("expected a default timeout")
	}
}
