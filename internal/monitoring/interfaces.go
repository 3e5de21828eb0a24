// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package monitoring

// MonitorInterface is the metrics surface shared by the API and the worker.
// Every setter takes the label values of its collector.
type MonitorInterface interface {
	GetService() string
	// route, status
	SetResponseTimeMetric(map[string]string, float64) error
	// component: database, kratos, redis or smtp
	SetDependencyAvailability(map[string]string, float64) error
	// operation: the membership change left half applied
	IncPartialFailure(map[string]string) error
}
