// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package queue

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/hibiken/asynq"

	"github.com/canonical/squad-service/internal/logging"
	"github.com/canonical/squad-service/internal/monitoring"
	"github.com/canonical/squad-service/internal/tracing"
)

// Worker consumes the mail queue
type Worker struct {
	srv *asynq.Server
	mux *asynq.ServeMux

	sender SenderInterface

	tracer  tracing.TracingInterface
	monitor monitoring.MonitorInterface
	logger  logging.LoggerInterface
}

func (w *Worker) handlePasswordReset(ctx context.Context, t *asynq.Task) error {
	ctx, span := w.tracer.Start(ctx, "queue.Worker.handlePasswordReset")
	defer span.End()

	var p PasswordResetPayload
	if err := json.Unmarshal(t.Payload(), &p); err != nil {
		w.logger.Errorf("invalid password reset payload: %v", err)
		return fmt.Errorf("invalid payload: %v: %w", err, asynq.SkipRetry)
	}

	if p.Email == "" || p.Link == "" {
		return fmt.Errorf("incomplete password reset payload: %w", asynq.SkipRetry)
	}

	if err := w.sender.SendPasswordReset(ctx, p.Email, p.Link); err != nil {
		w.logger.Errorf("failed to send password reset mail: %v", err)
		return err
	}

	w.logger.Security().AuthnPasswordReset(p.Email)

	return nil
}

// Run blocks until the server stops
func (w *Worker) Run() error {
	return w.srv.Run(w.mux)
}

func (w *Worker) Shutdown() {
	w.srv.Shutdown()
}

func NewWorker(redisURL, queue string, concurrency int, sender SenderInterface, tracer tracing.TracingInterface, monitor monitoring.MonitorInterface, logger logging.LoggerInterface) (*Worker, error) {
	opt, err := RedisClientOpt(redisURL)
	if err != nil {
		return nil, err
	}

	if queue == "" {
		queue = "default"
	}

	w := new(Worker)

	w.srv = asynq.NewServer(opt, asynq.Config{
		Concurrency: concurrency,
		Queues:      map[string]int{queue: 1},
		Logger:      logger,
		LogLevel:    asynq.InfoLevel,
	})
	w.mux = asynq.NewServeMux()
	w.mux.HandleFunc(TypePasswordReset, w.handlePasswordReset)

	w.sender = sender

	w.tracer = tracer
	w.monitor = monitor
	w.logger = logger

	return w, nil
}
