// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	httptypes "github.com/canonical/squad-service/internal/http/types"
	"github.com/canonical/squad-service/internal/identity"
	"github.com/canonical/squad-service/internal/types"
	"github.com/canonical/squad-service/pkg/membership"
)

// apiError is an error body returned by the service
type apiError struct {
	httptypes.ErrorResponse
}

func (e *apiError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("api error (status %d, %s): %s, organization %s", e.Status, e.Kind, e.Message, e.Code)
	}

	return fmt.Sprintf("api error (status %d, %s): %s", e.Status, e.Kind, e.Message)
}

// apiClient talks to the HTTP API of a running service
type apiClient struct {
	endpoint string
	token    string
	userID   string

	client *http.Client
}

func (c *apiClient) do(ctx context.Context, method, path string, header http.Header, body, out any) error {
	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request: %w", err)
		}

		reader = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.endpoint+path, reader)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}

	for k, v := range header {
		req.Header[k] = v
	}

	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	if c.userID != "" {
		req.Header.Set(identity.HeaderName, c.userID)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		e := new(apiError)
		if err := json.NewDecoder(resp.Body).Decode(&e.ErrorResponse); err != nil || e.Status == 0 {
			e.Status = resp.StatusCode
			e.Message = http.StatusText(resp.StatusCode)
		}

		return e
	}

	if out == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}

	envelope := httptypes.Response{Data: out}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}

	return nil
}

func (c *apiClient) Register(ctx context.Context, email, password, displayName string) (*types.User, error) {
	u := new(types.User)
	req := membership.RegisterRequest{Email: email, Password: password, DisplayName: displayName}

	if err := c.do(ctx, http.MethodPost, "/api/v0/auth/register", nil, req, u); err != nil {
		return nil, err
	}

	return u, nil
}

func (c *apiClient) SignIn(ctx context.Context, email, password string) (*types.Session, error) {
	s := new(types.Session)
	req := membership.SignInRequest{Email: email, Password: password}

	if err := c.do(ctx, http.MethodPost, "/api/v0/auth/login", nil, req, s); err != nil {
		return nil, err
	}

	return s, nil
}

func (c *apiClient) SendPasswordReset(ctx context.Context, email string) error {
	return c.do(ctx, http.MethodPost, "/api/v0/auth/password-reset", nil, membership.PasswordResetRequest{Email: email}, nil)
}

func (c *apiClient) Me(ctx context.Context) (*types.User, error) {
	u := new(types.User)

	if err := c.do(ctx, http.MethodGet, "/api/v0/me", nil, nil, u); err != nil {
		return nil, err
	}

	return u, nil
}

func (c *apiClient) CreateOrganization(ctx context.Context, name, idempotencyKey string) (string, error) {
	created := new(membership.OrganizationCreated)

	header := http.Header{}
	if idempotencyKey != "" {
		header.Set(membership.IdempotencyKeyHeader, idempotencyKey)
	}

	if err := c.do(ctx, http.MethodPost, "/api/v0/organizations", header, membership.OrganizationRequest{Name: name}, created); err != nil {
		return "", err
	}

	return created.Code, nil
}

func (c *apiClient) JoinOrganization(ctx context.Context, code string) (*types.User, error) {
	u := new(types.User)

	if err := c.do(ctx, http.MethodPost, "/api/v0/organizations/join", nil, membership.JoinRequest{Code: code}, u); err != nil {
		return nil, err
	}

	return u, nil
}

func (c *apiClient) Organization(ctx context.Context, code string) (*types.Organization, error) {
	o := new(types.Organization)

	if err := c.do(ctx, http.MethodGet, "/api/v0/organizations/"+url.PathEscape(code), nil, nil, o); err != nil {
		return nil, err
	}

	return o, nil
}

func (c *apiClient) Members(ctx context.Context, code string, page, size int64) ([]*types.User, error) {
	q := url.Values{}
	if page > 0 {
		q.Set("page", strconv.FormatInt(page, 10))
	}

	if size > 0 {
		q.Set("size", strconv.FormatInt(size, 10))
	}

	path := "/api/v0/organizations/" + url.PathEscape(code) + "/members"
	if len(q) > 0 {
		path += "?" + q.Encode()
	}

	var members []*types.User
	if err := c.do(ctx, http.MethodGet, path, nil, nil, &members); err != nil {
		return nil, err
	}

	return members, nil
}

func newAPIClient(endpoint, token, userID string, client *http.Client) *apiClient {
	if !strings.HasPrefix(endpoint, "http") {
		endpoint = "http://" + endpoint
	}

	if client == nil {
		client = &http.Client{
			Transport: otelhttp.NewTransport(http.DefaultTransport),
			Timeout:   30 * time.Second,
		}
	}

	return &apiClient{
		endpoint: strings.TrimSuffix(endpoint, "/"),
		token:    token,
		userID:   userID,
		client:   client,
	}
}

// getClient builds a client from the persistent flags
func getClient() *apiClient {
	return newAPIClient(httpEndpoint, bearerToken, userID, nil)
}
