// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package kratos

import (
	"encoding/json"
	"errors"

	ory "github.com/ory/client-go"
)

var (
	ErrIdentityExists     = errors.New("identity already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrIdentityNotFound   = errors.New("identity not found")
	// ErrInvalidIdentity is a rejected password or trait, the caller can fix it
	ErrInvalidIdentity = errors.New("identity rejected")
)

// reason extracts the human readable cause of a Kratos error reply
func reason(err error) string {
	var apiErr *ory.GenericOpenAPIError
	if !errors.As(err, &apiErr) {
		return ""
	}

	var body ory.ErrorGeneric
	if json.Unmarshal(apiErr.Body(), &body) != nil {
		return ""
	}

	if r := body.Error.GetReason(); r != "" {
		return r
	}

	return body.Error.GetMessage()
}
