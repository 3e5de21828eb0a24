// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package cmd

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/kelseyhightower/envconfig"
	"github.com/spf13/cobra"
	"go.opentelemetry.io/contrib/instrumentation/google.golang.org/grpc/otelgrpc"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"golang.org/x/crypto/bcrypt"
	"golang.org/x/sync/errgroup"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"

	"github.com/canonical/squad-service/internal/config"
	"github.com/canonical/squad-service/internal/db"
	"github.com/canonical/squad-service/internal/identity"
	"github.com/canonical/squad-service/internal/invitecode"
	"github.com/canonical/squad-service/internal/kratos"
	"github.com/canonical/squad-service/internal/logging"
	"github.com/canonical/squad-service/internal/monitoring/prometheus"
	"github.com/canonical/squad-service/internal/queue"
	"github.com/canonical/squad-service/internal/ratelimit"
	"github.com/canonical/squad-service/internal/storage"
	"github.com/canonical/squad-service/internal/tracing"
	"github.com/canonical/squad-service/pkg/authentication"
	"github.com/canonical/squad-service/pkg/membership"
	"github.com/canonical/squad-service/pkg/mission"
	"github.com/canonical/squad-service/pkg/status"
	"github.com/canonical/squad-service/pkg/web"
	"github.com/canonical/squad-service/pkg/webhooks"
)

const (
	backendMemory   = "memory"
	backendPostgres = "postgres"
	backendKratos   = "kratos"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "serve starts the web server",
	Long:  `Launch the web application, list of environment variables is available in the readme`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return serve(cmd.Context())
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

// identityBackend is what both the Kratos client and the in-memory provider offer
type identityBackend interface {
	kratos.ClientInterface
	authentication.TokenVerifierInterface
}

func newIdentityBackend(specs *config.EnvSpec, tracer tracing.TracingInterface, monitor *prometheus.Monitor, logger logging.LoggerInterface) (identityBackend, error) {
	switch specs.IdentityBackend {
	case backendKratos:
		httpClient := &http.Client{
			Transport: otelhttp.NewTransport(http.DefaultTransport),
			Timeout:   specs.ExternalCallTimeout,
		}

		return kratos.NewClient(
			specs.KratosAdminURL,
			specs.KratosPublicURL,
			specs.KratosSchemaID,
			specs.RecoveryLifetime,
			httpClient,
			tracer,
			monitor,
			logger,
		), nil
	case backendMemory:
		logger.Warn("using the in-memory identity provider, identities are lost on restart")
		return kratos.NewMemoryClient(specs.KratosPublicURL, bcrypt.DefaultCost, tracer, monitor, logger), nil
	}

	return nil, fmt.Errorf("unknown identity backend %q", specs.IdentityBackend)
}

func newVerifier(ctx context.Context, specs *config.EnvSpec, backend identityBackend, tracer tracing.TracingInterface, monitor *prometheus.Monitor, logger logging.LoggerInterface) (authentication.TokenVerifierInterface, error) {
	if !specs.JWTAuthenticationEnabled {
		return backend, nil
	}

	return authentication.NewJWTAuthenticator(ctx, specs.OIDCIssuer, specs.OIDCJWKSURL, specs.OIDCRequiredScope, tracer, monitor, logger)
}

func serve(ctx context.Context) error {
	specs := new(config.EnvSpec)
	if err := envconfig.Process("", specs); err != nil {
		return fmt.Errorf("issues with environment sourcing: %w", err)
	}

	logger := logging.NewLogger(specs.LogLevel)
	logger.Debugf("env vars: %+v", specs.Redacted())
	defer logger.Sync()

	monitor := prometheus.NewMonitor("squad-service", logger)
	tracer := tracing.NewTracer(tracing.NewConfig(specs.TracingEnabled, "squad-service", specs.OtelGRPCEndpoint, specs.OtelHTTPEndpoint, specs.TracingSampleRatio, logger))

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	checks := make(map[string]status.CheckerInterface)

	var (
		s        storage.StorageInterface
		dbClient *db.DBClient
	)

	switch specs.DirectoryBackend {
	case backendPostgres:
		c, err := db.NewDBClient(
			db.Config{
				DSN:             specs.DSN,
				MaxConns:        specs.DBMaxConns,
				MinConns:        specs.DBMinConns,
				MaxConnLifetime: specs.DBMaxConnLifetime,
				MaxConnIdleTime: specs.DBMaxConnIdleTime,
				TracingEnabled:  specs.TracingEnabled,
			},
			tracer,
			monitor,
			logger,
		)
		if err != nil {
			return fmt.Errorf("failed to create database client: %w", err)
		}
		defer c.Close()

		dbClient = c
		s = storage.NewStorage(dbClient, tracer, monitor, logger)
		checks["database"] = dbClient
	case backendMemory:
		logger.Warn("using the in-memory directory, data is lost on restart")
		s = storage.NewMemoryStorage(tracer, monitor, logger)
	default:
		return fmt.Errorf("unknown directory backend %q", specs.DirectoryBackend)
	}

	identityProvider, err := newIdentityBackend(specs, tracer, monitor, logger)
	if err != nil {
		return err
	}

	verifier, err := newVerifier(ctx, specs, identityProvider, tracer, monitor, logger)
	if err != nil {
		return fmt.Errorf("failed to set up authentication: %w", err)
	}

	enqueuer, err := queue.NewEnqueuer(specs.RedisURL, specs.QueueName, tracer, monitor, logger)
	if err != nil {
		return fmt.Errorf("failed to create queue client: %w", err)
	}
	defer enqueuer.Close()

	checks["redis"] = enqueuer

	// the mission service and the transaction middleware only get a
	// transactor when the directory lives in postgres
	var (
		tx                 mission.TransactorInterface
		txMiddlewareClient db.DBClientInterface
	)

	if dbClient != nil {
		tx = dbClient
		txMiddlewareClient = dbClient
	}

	membershipService := membership.NewService(s, identityProvider, enqueuer, invitecode.NewGenerator(), specs.ExternalCallTimeout, tracer, monitor, logger)
	missionService := mission.NewService(s, tx, specs.ExternalCallTimeout, tracer, monitor, logger)
	webhooksService := webhooks.NewService(s, tracer, monitor, logger)

	var identityMiddleware *identity.Middleware
	if specs.TrustIdentityHeader {
		logger.Info("trusting the identity header set by the proxy")
		identityMiddleware = identity.NewMiddleware(tracer, monitor, logger)
	}

	router := web.NewRouter(
		membershipService,
		missionService,
		webhooksService,
		authentication.NewMiddleware(verifier, tracer, monitor, logger),
		identityMiddleware,
		ratelimit.NewIPRateLimiter(specs.AuthRateLimit, specs.AuthRateBurst, logger),
		checks,
		txMiddlewareClient,
		specs.AllowedOrigins,
		specs.WebhookAPIKey,
		tracer,
		monitor,
		logger,
	)

	srv := &http.Server{
		Addr:         fmt.Sprintf("0.0.0.0:%v", specs.Port),
		WriteTimeout: time.Second * 60,
		ReadTimeout:  time.Second * 15,
		IdleTimeout:  time.Second * 60,
		Handler:      router,
	}

	lis, err := net.Listen("tcp", fmt.Sprintf("0.0.0.0:%v", specs.GRPCPort))
	if err != nil {
		return fmt.Errorf("failed to listen on grpc port: %w", err)
	}

	grpcServer := grpc.NewServer(
		grpc.StatsHandler(otelgrpc.NewServerHandler()),
		grpc.UnaryInterceptor(identity.NewMiddleware(tracer, monitor, logger).GRPCInterceptor),
	)

	healthServer := health.NewServer()
	healthpb.RegisterHealthServer(grpcServer, healthServer)

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Infof("Starting gRPC server on port %v", specs.GRPCPort)
		healthServer.SetServingStatus("", healthpb.HealthCheckResponse_SERVING)

		if err := grpcServer.Serve(lis); err != nil && !errors.Is(err, grpc.ErrServerStopped) {
			return fmt.Errorf("grpc server error: %w", err)
		}

		return nil
	})

	g.Go(func() error {
		logger.Infof("Starting HTTP server on port %v", specs.Port)
		logger.Security().SystemStartup()

		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}

		return nil
	})

	g.Go(func() error {
		<-gctx.Done()

		logger.Security().SystemShutdown()
		healthServer.Shutdown()

		// Create a deadline to wait for.
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()

		grpcServer.GracefulStop()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("server shutdown error: %w", err)
		}

		return nil
	})

	return g.Wait()
}
