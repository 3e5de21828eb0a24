// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package kratos

import (
	"context"
	"fmt"
	"net/http"

	ory "github.com/ory/client-go"

	"github.com/canonical/squad-service/internal/logging"
	"github.com/canonical/squad-service/internal/monitoring"
	"github.com/canonical/squad-service/internal/tracing"
)

const passwordMethod = "password"

var _ ClientInterface = (*Client)(nil)

// Client talks to Kratos, identities and sessions go through the admin API
// and password logins through the public API native flow
type Client struct {
	admin  *ory.APIClient
	public *ory.APIClient

	schemaID         string
	recoveryLifetime string

	tracer  tracing.TracingInterface
	monitor monitoring.MonitorInterface
	logger  logging.LoggerInterface
}

func newAPIClient(url string, httpClient *http.Client) *ory.APIClient {
	conf := ory.NewConfiguration()
	conf.Servers = ory.ServerConfigurations{{URL: url}}
	conf.HTTPClient = httpClient

	return ory.NewAPIClient(conf)
}

func statusCode(r *http.Response) int {
	if r == nil {
		return 0
	}

	return r.StatusCode
}

func (c *Client) setAvailability(r *http.Response, err error) {
	available := 1.0
	if err != nil && (r == nil || r.StatusCode >= http.StatusInternalServerError) {
		available = 0
	}

	if mErr := c.monitor.SetDependencyAvailability(map[string]string{"component": "kratos"}, available); mErr != nil {
		c.logger.Debugf("failed to set kratos availability: %v", mErr)
	}
}

func (c *Client) GetIdentityIDByEmail(ctx context.Context, email string) (string, error) {
	ctx, span := c.tracer.Start(ctx, "kratos.Client.GetIdentityIDByEmail")
	defer span.End()

	// empty page token, see https://github.com/ory/sdk/issues/461
	ids, r, err := c.admin.IdentityAPI.ListIdentities(ctx).CredentialsIdentifier(email).PageToken("").Execute()
	c.setAvailability(r, err)

	if err != nil {
		if statusCode(r) == http.StatusNotFound {
			return "", ErrIdentityNotFound
		}

		return "", fmt.Errorf("failed to list identities: %w", err)
	}

	if len(ids) == 0 {
		return "", ErrIdentityNotFound
	}

	return ids[0].Id, nil
}

func (c *Client) SignUp(ctx context.Context, email, password, displayName string) (string, error) {
	ctx, span := c.tracer.Start(ctx, "kratos.Client.SignUp")
	defer span.End()

	body := ory.CreateIdentityBody{
		SchemaId: c.schemaID,
		Traits: map[string]interface{}{
			"email": email,
			"name":  displayName,
		},
		Credentials: &ory.IdentityWithCredentials{
			Password: &ory.IdentityWithCredentialsPassword{
				Config: &ory.IdentityWithCredentialsPasswordConfig{
					Password: &password,
				},
			},
		},
	}

	identity, r, err := c.admin.IdentityAPI.CreateIdentity(ctx).CreateIdentityBody(body).Execute()
	c.setAvailability(r, err)

	if err != nil {
		switch statusCode(r) {
		case http.StatusConflict:
			return "", fmt.Errorf("%s: %w", email, ErrIdentityExists)
		case http.StatusBadRequest:
			return "", fmt.Errorf("%s: %w", reason(err), ErrInvalidIdentity)
		}

		return "", fmt.Errorf("failed to create identity: %w", err)
	}

	return identity.Id, nil
}

func (c *Client) SignIn(ctx context.Context, email, password string) (*Session, error) {
	ctx, span := c.tracer.Start(ctx, "kratos.Client.SignIn")
	defer span.End()

	flow, r, err := c.public.FrontendAPI.CreateNativeLoginFlow(ctx).Execute()
	c.setAvailability(r, err)

	if err != nil {
		return nil, fmt.Errorf("failed to create login flow: %w", err)
	}

	method := &ory.UpdateLoginFlowWithPasswordMethod{
		Method:     passwordMethod,
		Identifier: email,
		Password:   password,
	}

	login, r, err := c.public.FrontendAPI.UpdateLoginFlow(ctx).
		Flow(flow.Id).
		UpdateLoginFlowBody(ory.UpdateLoginFlowWithPasswordMethodAsUpdateLoginFlowBody(method)).
		Execute()
	c.setAvailability(r, err)

	if err != nil {
		switch statusCode(r) {
		case http.StatusBadRequest, http.StatusUnauthorized:
			return nil, ErrInvalidCredentials
		}

		return nil, fmt.Errorf("failed to complete login flow: %w", err)
	}

	s := new(Session)
	s.Token = login.GetSessionToken()

	if login.Session.Identity != nil {
		s.IdentityID = login.Session.Identity.Id

		if traits, ok := login.Session.Identity.Traits.(map[string]interface{}); ok {
			s.DisplayName, _ = traits["name"].(string)
		}
	}

	return s, nil
}

func (c *Client) SignOut(ctx context.Context, identityID string) error {
	ctx, span := c.tracer.Start(ctx, "kratos.Client.SignOut")
	defer span.End()

	r, err := c.admin.IdentityAPI.DeleteIdentitySessions(ctx, identityID).Execute()
	c.setAvailability(r, err)

	if err != nil {
		if statusCode(r) == http.StatusNotFound {
			return ErrIdentityNotFound
		}

		return fmt.Errorf("failed to revoke sessions: %w", err)
	}

	return nil
}

func (c *Client) SendReset(ctx context.Context, email string) (*Recovery, error) {
	ctx, span := c.tracer.Start(ctx, "kratos.Client.SendReset")
	defer span.End()

	identityID, err := c.GetIdentityIDByEmail(ctx, email)
	if err != nil {
		return nil, err
	}

	body := ory.CreateRecoveryCodeForIdentityBody{
		IdentityId: identityID,
		ExpiresIn:  &c.recoveryLifetime,
	}

	code, r, err := c.admin.IdentityAPI.CreateRecoveryCodeForIdentity(ctx).CreateRecoveryCodeForIdentityBody(body).Execute()
	c.setAvailability(r, err)

	if err != nil {
		return nil, fmt.Errorf("failed to create recovery code: %w", err)
	}

	return &Recovery{IdentityID: identityID, Link: code.RecoveryLink, Code: code.RecoveryCode}, nil
}

// VerifyToken resolves a session token issued by SignIn to its identity
func (c *Client) VerifyToken(ctx context.Context, token string) (string, error) {
	ctx, span := c.tracer.Start(ctx, "kratos.Client.VerifyToken")
	defer span.End()

	session, r, err := c.public.FrontendAPI.ToSession(ctx).XSessionToken(token).Execute()
	c.setAvailability(r, err)

	if err != nil {
		if statusCode(r) == http.StatusUnauthorized {
			return "", ErrInvalidCredentials
		}

		return "", fmt.Errorf("failed to resolve session: %w", err)
	}

	if session.Identity == nil || (session.Active != nil && !*session.Active) {
		return "", ErrInvalidCredentials
	}

	return session.Identity.Id, nil
}

func NewClient(adminURL, publicURL, schemaID, recoveryLifetime string, httpClient *http.Client, tracer tracing.TracingInterface, monitor monitoring.MonitorInterface, logger logging.LoggerInterface) *Client {
	c := new(Client)

	c.admin = newAPIClient(adminURL, httpClient)
	c.public = newAPIClient(publicURL, httpClient)
	c.schemaID = schemaID
	c.recoveryLifetime = recoveryLifetime

	c.tracer = tracer
	c.monitor = monitor
	c.logger = logger

	return c
}
