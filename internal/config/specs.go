// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package config

import (
	"time"
)

// EnvSpec is the basic environment configuration setup needed for the app to start
type EnvSpec struct {
	OtelGRPCEndpoint   string  `envconfig:"otel_grpc_endpoint"`
	OtelHTTPEndpoint   string  `envconfig:"otel_http_endpoint"`
	TracingEnabled     bool    `envconfig:"tracing_enabled" default:"true"`
	TracingSampleRatio float64 `envconfig:"tracing_sample_ratio" default:"1"`

	// IdentityBackend selects the identity provider, kratos or memory
	IdentityBackend string `envconfig:"identity_backend" default:"kratos"`
	KratosAdminURL  string `envconfig:"kratos_admin_url"`
	KratosPublicURL string `envconfig:"kratos_public_url"`
	KratosSchemaID  string `envconfig:"kratos_schema_id" default:"default"`

	RecoveryLifetime string `envconfig:"recovery_lifetime" default:"1h"`

	LogLevel string `envconfig:"log_level" default:"error"`
	Debug    bool   `envconfig:"debug" default:"false"`

	Port     int `envconfig:"port" default:"8080"`
	GRPCPort int `envconfig:"grpc_port" default:"50051"`

	// DirectoryBackend selects the directory store, postgres or memory
	DirectoryBackend string `envconfig:"directory_backend" default:"postgres"`
	DSN              string `envconfig:"DSN"`

	DBMaxConns        int32         `envconfig:"db_max_conns" default:"25"`
	DBMinConns        int32         `envconfig:"db_min_conns" default:"2"`
	DBMaxConnLifetime time.Duration `envconfig:"db_max_conn_lifetime" default:"1h"`
	DBMaxConnIdleTime time.Duration `envconfig:"db_max_conn_idle_time" default:"30m"`

	ExternalCallTimeout time.Duration `envconfig:"external_call_timeout" default:"10s"`

	// JWTAuthenticationEnabled accepts OAuth2 access tokens, otherwise
	// bearer tokens are identity provider session tokens
	JWTAuthenticationEnabled bool     `envconfig:"jwt_authentication_enabled" default:"false"`
	OIDCIssuer               string   `envconfig:"oidc_issuer"`
	OIDCJWKSURL              string   `envconfig:"oidc_jwks_url"`
	OIDCRequiredScope        string   `envconfig:"oidc_required_scope"`
	TrustIdentityHeader      bool     `envconfig:"trust_identity_header" default:"false"`
	AllowedOrigins           []string `envconfig:"allowed_origins" default:"*"`

	RedisURL          string `envconfig:"redis_url" default:"redis://localhost:6379/0"`
	QueueName         string `envconfig:"queue_name" default:"default"`
	WorkerConcurrency int    `envconfig:"worker_concurrency" default:"5"`

	SMTPHost     string        `envconfig:"smtp_host" default:"localhost"`
	SMTPPort     int           `envconfig:"smtp_port" default:"25"`
	SMTPUsername string        `envconfig:"smtp_username"`
	SMTPPassword string        `envconfig:"smtp_password"`
	SMTPFrom     string        `envconfig:"smtp_from" default:"no-reply@squad.local"`
	SMTPTimeout  time.Duration `envconfig:"smtp_timeout" default:"10s"`

	AuthRateLimit float64 `envconfig:"auth_rate_limit_per_minute" default:"5"`
	AuthRateBurst int     `envconfig:"auth_rate_burst" default:"5"`

	// WebhookAPIKey authenticates the Kratos and Hydra hooks, the hooks are
	// not served when it is empty
	WebhookAPIKey string `envconfig:"webhook_api_key"`
}

const redacted = "[redacted]"

// Redacted returns a copy safe to log, credentials are masked
func (s EnvSpec) Redacted() EnvSpec {
	for _, secret := range []*string{&s.DSN, &s.SMTPPassword, &s.WebhookAPIKey} {
		if *secret != "" {
			*secret = redacted
		}
	}

	return s
}
