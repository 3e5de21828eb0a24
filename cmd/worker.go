// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package cmd

import (
	"fmt"

	"github.com/kelseyhightower/envconfig"
	"github.com/spf13/cobra"

	"github.com/canonical/squad-service/internal/config"
	"github.com/canonical/squad-service/internal/logging"
	"github.com/canonical/squad-service/internal/mail"
	"github.com/canonical/squad-service/internal/monitoring/prometheus"
	"github.com/canonical/squad-service/internal/queue"
	"github.com/canonical/squad-service/internal/tracing"
)

var workerCmd = &cobra.Command{
	Use:   "worker",
	Short: "worker delivers the queued mails",
	Long:  `Consume the mail queue and deliver password reset mails over SMTP`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return work()
	},
}

func init() {
	rootCmd.AddCommand(workerCmd)
}

func work() error {
	specs := new(config.EnvSpec)
	if err := envconfig.Process("", specs); err != nil {
		return fmt.Errorf("issues with environment sourcing: %w", err)
	}

	logger := logging.NewLogger(specs.LogLevel)
	defer logger.Sync()

	monitor := prometheus.NewMonitor("squad-service-worker", logger)
	tracer := tracing.NewTracer(tracing.NewConfig(specs.TracingEnabled, "squad-service-worker", specs.OtelGRPCEndpoint, specs.OtelHTTPEndpoint, specs.TracingSampleRatio, logger))

	sender := mail.NewSMTPSender(
		mail.Config{
			Host:     specs.SMTPHost,
			Port:     specs.SMTPPort,
			Username: specs.SMTPUsername,
			Password: specs.SMTPPassword,
			From:     specs.SMTPFrom,
			Timeout:  specs.SMTPTimeout,
		},
		tracer,
		monitor,
		logger,
	)

	w, err := queue.NewWorker(specs.RedisURL, specs.QueueName, specs.WorkerConcurrency, sender, tracer, monitor, logger)
	if err != nil {
		return fmt.Errorf("failed to create worker: %w", err)
	}

	logger.Infof("Starting worker on queue %s", specs.QueueName)
	logger.Security().SystemStartup()
	defer logger.Security().SystemShutdown()

	// Run returns once asynq has handled SIGINT or SIGTERM
	return w.Run()
}
