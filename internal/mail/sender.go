// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package mail

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"time"

	gomail "github.com/wneessen/go-mail"

	"github.com/canonical/squad-service/internal/logging"
	"github.com/canonical/squad-service/internal/monitoring"
	"github.com/canonical/squad-service/internal/tracing"
)

const passwordResetSubject = "Reset your Squad password"

var passwordResetHTML = template.Must(template.New("password_reset").Parse(`<!DOCTYPE html>
<html>
<body>
<p>Someone asked to reset the password of your Squad account.</p>
<p><a href="{{ .Link }}">Choose a new password</a></p>
<p>If it was not you, ignore this message.</p>
</body>
</html>
`))

type Config struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
	Timeout  time.Duration
}

// SMTPSender delivers mail through an SMTP relay
type SMTPSender struct {
	cfg Config

	tracer  tracing.TracingInterface
	monitor monitoring.MonitorInterface
	logger  logging.LoggerInterface
}

func (s *SMTPSender) passwordResetMessage(to, link string) (*gomail.Msg, error) {
	var html bytes.Buffer
	if err := passwordResetHTML.Execute(&html, struct{ Link string }{Link: link}); err != nil {
		return nil, fmt.Errorf("failed to render password reset mail: %w", err)
	}

	msg := gomail.NewMsg()

	if err := msg.FromFormat("Squad", s.cfg.From); err != nil {
		return nil, fmt.Errorf("smtp from: %w", err)
	}

	if err := msg.To(to); err != nil {
		return nil, fmt.Errorf("smtp to: %w", err)
	}

	msg.Subject(passwordResetSubject)
	msg.SetBodyString(gomail.TypeTextPlain, fmt.Sprintf("Follow this link to choose a new password: %s\n", link))
	msg.AddAlternativeString(gomail.TypeTextHTML, html.String())

	return msg, nil
}

func (s *SMTPSender) client() (*gomail.Client, error) {
	opts := []gomail.Option{
		gomail.WithPort(s.cfg.Port),
		gomail.WithTLSPortPolicy(gomail.TLSOpportunistic),
		gomail.WithTimeout(s.cfg.Timeout),
	}

	if s.cfg.Username != "" {
		opts = append(opts,
			gomail.WithSMTPAuth(gomail.SMTPAuthPlain),
			gomail.WithUsername(s.cfg.Username),
			gomail.WithPassword(s.cfg.Password),
		)
	}

	return gomail.NewClient(s.cfg.Host, opts...)
}

func (s *SMTPSender) SendPasswordReset(ctx context.Context, to, link string) error {
	ctx, span := s.tracer.Start(ctx, "mail.SMTPSender.SendPasswordReset")
	defer span.End()

	msg, err := s.passwordResetMessage(to, link)
	if err != nil {
		return err
	}

	client, err := s.client()
	if err != nil {
		return fmt.Errorf("smtp client: %w", err)
	}

	err = client.DialAndSendWithContext(ctx, msg)

	available := 1.0
	if err != nil {
		available = 0
	}

	if mErr := s.monitor.SetDependencyAvailability(map[string]string{"component": "smtp"}, available); mErr != nil {
		s.logger.Debugf("failed to set smtp availability: %v", mErr)
	}

	if err != nil {
		return fmt.Errorf("smtp send: %w", err)
	}

	return nil
}

func NewSMTPSender(cfg Config, tracer tracing.TracingInterface, monitor monitoring.MonitorInterface, logger logging.LoggerInterface) *SMTPSender {
	s := new(SMTPSender)

	if cfg.Timeout <= 0 {
		cfg.Timeout = 15 * time.Second
	}

	s.cfg = cfg

	s.tracer = tracer
	s.monitor = monitor
	s.logger = logger

	return s
}
