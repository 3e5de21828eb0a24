// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package membership

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrUserNotFound is returned when the caller has no user document
var ErrUserNotFound = errors.New("user not found")

// ValidationError rejects an input before any external call is made
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

type IdentityConflictError struct {
	Email string
}

func (e *IdentityConflictError) Error() string {
	return fmt.Sprintf("an account for %s already exists", e.Email)
}

// IdentityProviderError wraps any identity provider failure that is neither
// a conflict nor a timeout
type IdentityProviderError struct {
	Op  string
	Err error
}

func (e *IdentityProviderError) Error() string {
	return fmt.Sprintf("identity provider failed to %s: %v", e.Op, e.Err)
}

func (e *IdentityProviderError) Unwrap() error {
	return e.Err
}

type OrganizationNotFoundError struct {
	Code string
}

func (e *OrganizationNotFoundError) Error() string {
	return fmt.Sprintf("organization %s not found", e.Code)
}

// PartialFailureError reports that the organization side of a membership
// change was written and the user side was not, repeating the same call
// completes it without creating anything twice
type PartialFailureError struct {
	Op               string
	UserID           string
	OrganizationCode string
	Err              error
}

func (e *PartialFailureError) Error() string {
	return fmt.Sprintf("%s for user %s partially applied on organization %s: %v", e.Op, e.UserID, e.OrganizationCode, e.Err)
}

func (e *PartialFailureError) Unwrap() error {
	return e.Err
}

type TimeoutError struct {
	Op  string
	Err error
}

func (e *TimeoutError) Error() string {
	return fmt.Sprintf("%s timed out: %v", e.Op, e.Err)
}

func (e *TimeoutError) Unwrap() error {
	return e.Err
}

type InvalidCredentialsError struct{}

func (e *InvalidCredentialsError) Error() string {
	return "invalid email or password"
}

type ForbiddenError struct {
	UserID string
	Reason string
}

func (e *ForbiddenError) Error() string {
	return fmt.Sprintf("user %s is not allowed to %s", e.UserID, e.Reason)
}

// ErrorStatus maps a service error to its HTTP status and kind. Partial
// failures are checked before timeouts since the former may wrap the latter.
func ErrorStatus(err error) (int, string) {
	var (
		validation *ValidationError
		conflict   *IdentityConflictError
		provider   *IdentityProviderError
		notFound   *OrganizationNotFoundError
		partial    *PartialFailureError
		timeout    *TimeoutError
		creds      *InvalidCredentialsError
		forbidden  *ForbiddenError
	)

	switch {
	case errors.As(err, &validation):
		return http.StatusBadRequest, "validation"
	case errors.As(err, &creds):
		return http.StatusUnauthorized, "invalid_credentials"
	case errors.As(err, &forbidden):
		return http.StatusForbidden, "forbidden"
	case errors.Is(err, ErrUserNotFound):
		return http.StatusNotFound, "user_not_found"
	case errors.As(err, &notFound):
		return http.StatusNotFound, "organization_not_found"
	case errors.As(err, &conflict):
		return http.StatusConflict, "identity_conflict"
	case errors.As(err, &partial):
		return http.StatusServiceUnavailable, "partial_failure"
	case errors.As(err, &timeout):
		return http.StatusGatewayTimeout, "timeout"
	case errors.As(err, &provider):
		return http.StatusBadGateway, "identity_provider"
	default:
		return http.StatusInternalServerError, "internal"
	}
}
