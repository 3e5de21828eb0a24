// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package queue

import (
	"context"
	"fmt"

	"github.com/hibiken/asynq"
	"github.com/redis/go-redis/v9"

	"github.com/canonical/squad-service/internal/logging"
	"github.com/canonical/squad-service/internal/monitoring"
	"github.com/canonical/squad-service/internal/tracing"
)

var _ EnqueuerInterface = (*Enqueuer)(nil)

// RedisClientOpt turns a redis:// or rediss:// URL into asynq connection options
func RedisClientOpt(redisURL string) (asynq.RedisClientOpt, error) {
	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return asynq.RedisClientOpt{}, fmt.Errorf("invalid redis url: %w", err)
	}

	return asynq.RedisClientOpt{
		Network:   opt.Network,
		Addr:      opt.Addr,
		Username:  opt.Username,
		Password:  opt.Password,
		DB:        opt.DB,
		TLSConfig: opt.TLSConfig,
	}, nil
}

// Enqueuer pushes mail tasks to the worker queue
type Enqueuer struct {
	client *asynq.Client
	redis  *redis.Client
	queue  string

	tracer  tracing.TracingInterface
	monitor monitoring.MonitorInterface
	logger  logging.LoggerInterface
}

func (q *Enqueuer) EnqueuePasswordReset(ctx context.Context, email, link string) error {
	ctx, span := q.tracer.Start(ctx, "queue.Enqueuer.EnqueuePasswordReset")
	defer span.End()

	task, err := NewPasswordResetTask(PasswordResetPayload{Email: email, Link: link})
	if err != nil {
		return err
	}

	info, err := q.client.EnqueueContext(ctx, task, asynq.Queue(q.queue))
	if err != nil {
		return fmt.Errorf("failed to enqueue password reset: %w", err)
	}

	q.logger.Debugf("enqueued task %s on queue %s", info.ID, info.Queue)

	return nil
}

// Ping checks redis and reports its availability to the monitor
func (q *Enqueuer) Ping(ctx context.Context) error {
	err := q.redis.Ping(ctx).Err()

	available := 1.0
	if err != nil {
		available = 0
	}

	if mErr := q.monitor.SetDependencyAvailability(map[string]string{"component": "redis"}, available); mErr != nil {
		q.logger.Debugf("failed to set redis availability: %v", mErr)
	}

	return err
}

func (q *Enqueuer) Close() error {
	rErr := q.redis.Close()

	if err := q.client.Close(); err != nil {
		return err
	}

	return rErr
}

func NewEnqueuer(redisURL, queue string, tracer tracing.TracingInterface, monitor monitoring.MonitorInterface, logger logging.LoggerInterface) (*Enqueuer, error) {
	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("invalid redis url: %w", err)
	}

	clientOpt, err := RedisClientOpt(redisURL)
	if err != nil {
		return nil, err
	}

	if queue == "" {
		queue = "default"
	}

	q := new(Enqueuer)
	q.client = asynq.NewClient(clientOpt)
	q.redis = redis.NewClient(opt)
	q.queue = queue

	q.tracer = tracer
	q.monitor = monitor
	q.logger = logger

	return q, nil
}
