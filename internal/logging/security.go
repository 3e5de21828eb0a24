// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package logging

import (
	"go.uber.org/zap"
)

const securityAppID = "squad-service"

var _ SecurityLoggerInterface = (*SecurityLogger)(nil)

// SecurityLogger emits events following the OWASP logging vocabulary,
// every entry carries type=security so it can be filtered downstream.
type SecurityLogger struct {
	l *zap.Logger
}

func (s *SecurityLogger) event(name, description string, fields ...zap.Field) {
	fields = append(
		[]zap.Field{
			zap.String("type", "security"),
			zap.String("appid", securityAppID),
			zap.String("event", name),
		},
		fields...,
	)
	s.l.Info(description, fields...)
}

func (s *SecurityLogger) SystemStartup() {
	s.event("sys_startup", "service started")
}

func (s *SecurityLogger) SystemShutdown() {
	s.event("sys_shutdown", "service stopped")
}

func (s *SecurityLogger) AuthnLoginSuccess(userID string) {
	s.event("authn_login_success:"+userID, "user logged in", zap.String("user_id", userID))
}

func (s *SecurityLogger) AuthnLoginFail(email string) {
	s.event("authn_login_fail:"+email, "user login failed", zap.String("email", email))
}

func (s *SecurityLogger) AuthnLogout(userID string) {
	s.event("authn_logout:"+userID, "user sessions revoked", zap.String("user_id", userID))
}

func (s *SecurityLogger) AuthnPasswordReset(email string) {
	s.event("authn_password_change:"+email, "password reset requested", zap.String("email", email))
}

func (s *SecurityLogger) UserCreated(userID string) {
	s.event("user_created:"+userID, "user registered", zap.String("user_id", userID))
}

func (s *SecurityLogger) AuthzRoleAssigned(userID, role, organizationCode string) {
	s.event(
		"authz_admin:"+userID+","+role,
		"role assigned",
		zap.String("user_id", userID),
		zap.String("role", role),
		zap.String("organization_code", organizationCode),
	)
}

func (s *SecurityLogger) RateLimitExceeded(address, path string) {
	s.event("malicious_excess_use:"+address, "rate limit exceeded", zap.String("address", address), zap.String("path", path))
}

func (s *SecurityLogger) AuthzFailure(userID, resource string) {
	s.event("authz_fail:"+userID+","+resource, "access denied", zap.String("user_id", userID), zap.String("resource", resource))
}

func newSecurityLogger(l *zap.Logger) *SecurityLogger {
	return &SecurityLogger{l: l.Named("security")}
}
