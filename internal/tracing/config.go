// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package tracing

import (
	"github.com/canonical/squad-service/internal/logging"
)

const defaultServiceName = "squad-service"

type Config struct {
	ServiceName      string
	OtelHTTPEndpoint string
	OtelGRPCEndpoint string
	// SampleRatio applies to root spans, children follow their parent
	SampleRatio float64
	Logger      logging.LoggerInterface

	Enabled bool
}

func (c *Config) service() string {
	if c.ServiceName == "" {
		return defaultServiceName
	}

	return c.ServiceName
}

func (c *Config) ratio() float64 {
	if c.SampleRatio <= 0 || c.SampleRatio > 1 {
		return 1
	}

	return c.SampleRatio
}

func NewConfig(enabled bool, service, otelGRPCEndpoint, otelHTTPEndpoint string, sampleRatio float64, logger logging.LoggerInterface) *Config {
	c := new(Config)

	c.ServiceName = service
	c.OtelGRPCEndpoint = otelGRPCEndpoint
	c.OtelHTTPEndpoint = otelHTTPEndpoint
	c.SampleRatio = sampleRatio
	c.Logger = logger
	c.Enabled = enabled

	return c
}
