// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package kratos

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"net/url"
	"strings"
	"sync"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/canonical/squad-service/internal/logging"
	"github.com/canonical/squad-service/internal/monitoring"
	"github.com/canonical/squad-service/internal/tracing"
)

var _ ClientInterface = (*MemoryClient)(nil)

type memoryIdentity struct {
	id           string
	email        string
	displayName  string
	passwordHash []byte
}

// MemoryClient is an in-process identity provider for development and tests
type MemoryClient struct {
	mu sync.RWMutex

	identities map[string]*memoryIdentity
	sessions   map[string]string

	baseURL string
	cost    int

	tracer  tracing.TracingInterface
	monitor monitoring.MonitorInterface
	logger  logging.LoggerInterface
}

func randomToken() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}

	return base64.RawURLEncoding.EncodeToString(b), nil
}

func (c *MemoryClient) GetIdentityIDByEmail(ctx context.Context, email string) (string, error) {
	_, span := c.tracer.Start(ctx, "kratos.MemoryClient.GetIdentityIDByEmail")
	defer span.End()

	c.mu.RLock()
	defer c.mu.RUnlock()

	identity, ok := c.identities[strings.ToLower(email)]
	if !ok {
		return "", ErrIdentityNotFound
	}

	return identity.id, nil
}

func (c *MemoryClient) SignUp(ctx context.Context, email, password, displayName string) (string, error) {
	_, span := c.tracer.Start(ctx, "kratos.MemoryClient.SignUp")
	defer span.End()

	if err := ctx.Err(); err != nil {
		return "", err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), c.cost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	key := strings.ToLower(email)
	if _, ok := c.identities[key]; ok {
		return "", fmt.Errorf("%s: %w", email, ErrIdentityExists)
	}

	identity := &memoryIdentity{
		id:           uuid.NewString(),
		email:        email,
		displayName:  displayName,
		passwordHash: hash,
	}

	c.identities[key] = identity

	return identity.id, nil
}

func (c *MemoryClient) SignIn(ctx context.Context, email, password string) (*Session, error) {
	_, span := c.tracer.Start(ctx, "kratos.MemoryClient.SignIn")
	defer span.End()

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	c.mu.RLock()
	identity, ok := c.identities[strings.ToLower(email)]
	c.mu.RUnlock()

	if !ok {
		return nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword(identity.passwordHash, []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	token, err := randomToken()
	if err != nil {
		return nil, fmt.Errorf("failed to issue session token: %w", err)
	}

	c.mu.Lock()
	c.sessions[token] = identity.id
	c.mu.Unlock()

	return &Session{IdentityID: identity.id, Token: token, DisplayName: identity.displayName}, nil
}

func (c *MemoryClient) SignOut(ctx context.Context, identityID string) error {
	_, span := c.tracer.Start(ctx, "kratos.MemoryClient.SignOut")
	defer span.End()

	c.mu.Lock()
	defer c.mu.Unlock()

	for token, id := range c.sessions {
		if id == identityID {
			delete(c.sessions, token)
		}
	}

	return nil
}

func (c *MemoryClient) SendReset(ctx context.Context, email string) (*Recovery, error) {
	ctx, span := c.tracer.Start(ctx, "kratos.MemoryClient.SendReset")
	defer span.End()

	identityID, err := c.GetIdentityIDByEmail(ctx, email)
	if err != nil {
		return nil, err
	}

	code, err := randomToken()
	if err != nil {
		return nil, fmt.Errorf("failed to create recovery code: %w", err)
	}

	link := fmt.Sprintf("%s/recovery?code=%s", strings.TrimSuffix(c.baseURL, "/"), url.QueryEscape(code))

	return &Recovery{IdentityID: identityID, Link: link, Code: code}, nil
}

// VerifyToken resolves a session token issued by SignIn to its identity
func (c *MemoryClient) VerifyToken(ctx context.Context, token string) (string, error) {
	_, span := c.tracer.Start(ctx, "kratos.MemoryClient.VerifyToken")
	defer span.End()

	c.mu.RLock()
	defer c.mu.RUnlock()

	id, ok := c.sessions[token]
	if !ok {
		return "", ErrInvalidCredentials
	}

	return id, nil
}

// NewMemoryClient creates an in-process provider, cost is the bcrypt cost and
// falls back to bcrypt.DefaultCost when out of range
func NewMemoryClient(baseURL string, cost int, tracer tracing.TracingInterface, monitor monitoring.MonitorInterface, logger logging.LoggerInterface) *MemoryClient {
	c := new(MemoryClient)

	c.identities = make(map[string]*memoryIdentity)
	c.sessions = make(map[string]string)
	c.baseURL = baseURL

	c.cost = cost
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		c.cost = bcrypt.DefaultCost
	}

	c.tracer = tracer
	c.monitor = monitor
	c.logger = logger

	return c
}
