// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package authentication

import (
	"context"
	"fmt"

	"github.com/canonical/squad-service/internal/logging"
	"github.com/canonical/squad-service/internal/monitoring"
	"github.com/canonical/squad-service/internal/tracing"
)

// NewJWTAuthenticator builds a verifier for access tokens of issuer, keys come
// from jwksURL when set and from OIDC discovery otherwise
func NewJWTAuthenticator(
	ctx context.Context,
	issuer string,
	jwksURL string,
	requiredScope string,
	tracer tracing.TracingInterface,
	monitor monitoring.MonitorInterface,
	logger logging.LoggerInterface,
) (TokenVerifierInterface, error) {
	if issuer == "" {
		return nil, fmt.Errorf("issuer is required for JWT authentication")
	}

	if jwksURL != "" {
		logger.Infof("using JWKS URL %s for issuer %s", jwksURL, issuer)
		return NewJWTVerifierDirect(NewProviderWithJWKS(ctx, issuer, jwksURL), requiredScope, tracer, monitor, logger), nil
	}

	logger.Infof("using OIDC discovery for issuer %s", issuer)

	provider, err := NewProvider(ctx, issuer)
	if err != nil {
		return nil, err
	}

	return NewJWTVerifier(provider, requiredScope, tracer, monitor, logger), nil
}
