// Command leadserver runs the lead management REST API.
//
// @title                       Uninorte Lead System API
// @version                     1.0
// @description                 Role-based lead management backend.
// @BasePath                    /
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/uninorte/lead-system/internal/api"
	"github.com/uninorte/lead-system/internal/core/service"
	mongodb "github.com/uninorte/lead-system/internal/infrastructure/db/mongo"
	redisdb "github.com/uninorte/lead-system/internal/infrastructure/db/redis"
	"github.com/uninorte/lead-system/internal/infrastructure/export"
	"github.com/uninorte/lead-system/internal/infrastructure/http/handlers"
	"github.com/uninorte/lead-system/internal/infrastructure/queue"
	"github.com/uninorte/lead-system/internal/infrastructure/telemetry"
	"github.com/uninorte/lead-system/internal/pkg/config"
	"github.com/uninorte/lead-system/pkg/logger"
)

const (
	serviceName     = "leadserver"
	shutdownTimeout = 10 * time.Second
)

func main() {
	if err := run(); err != nil {
		log := logger.Get()
		log.Fatal().Err(err).Msg("leadserver stopped")
	}
}

func run() error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx)
	if err != nil {
		logger.Init(logger.Options{Service: serviceName})
		return err
	}

	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  cfg.LogPretty,
		Service: serviceName,
		Env:     cfg.Env,
	})

	shutdownTelemetry := telemetry.Setup(ctx, telemetry.Config{
		ServiceName: serviceName,
		Endpoint:    cfg.Telemetry.Endpoint,
		Insecure:    cfg.Telemetry.Insecure,
		Environment: cfg.Env,
	}, log)
	defer func() {
		sctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdownTelemetry(sctx); err != nil {
			log.Warn().Err(err).Msg("telemetry shutdown")
		}
	}()

	// --- Storage ---
	mongoClient, db, err := mongodb.Connect(ctx, mongodb.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
		AppName:  serviceName,
	})
	if err != nil {
		return err
	}
	defer func() {
		dctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = mongoClient.Disconnect(dctx)
	}()

	rdb, err := redisdb.Connect(ctx, redisdb.Config{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err != nil {
		return err
	}
	defer rdb.Close()

	users := mongodb.NewUserRepository(db)
	leads := mongodb.NewLeadRepository(db)
	courses := mongodb.NewCourseRepository(db)
	statuses := mongodb.NewLeadStatusRepository(db)
	auditLogs := mongodb.NewAuditRepository(db)

	if err := mongodb.EnsureIndexes(ctx, users, leads, courses, statuses, auditLogs); err != nil {
		return err
	}

	if cfg.SeedDemoData {
		if err := service.NewSeeder(users, courses, statuses, leads, log).Seed(ctx); err != nil {
			return err
		}
	}

	// --- Audit writer ---
	dispatcher := queue.NewAuditDispatcher(cfg.AuditWorkers, auditLogs, log)
	dispatcher.Start()
	defer dispatcher.Stop()

	// --- Services ---
	authService := service.NewAuthService(users, redisdb.NewTokenDenylist(rdb), cfg.JWTSecret, cfg.JWTTTL, log)
	xlsx := export.NewXLSXEncoder()

	router := api.NewRouter(api.Dependencies{
		Log:         log,
		CORSOrigins: cfg.CORSOrigins,
		Auth:        authService,
		Leads:       service.NewLeadService(leads, dispatcher, log),
		Dashboard:   service.NewDashboardService(leads),
		Users:       service.NewUserService(users, dispatcher, log),
		Catalog:     service.NewCatalogService(courses, statuses, dispatcher),
		Audit:       service.NewAuditService(auditLogs),
		Reports: service.NewReportService(service.ReportDeps{
			Users:    users,
			Leads:    leads,
			Courses:  courses,
			Statuses: statuses,
			CSV:      export.NewCSVEncoder(),
			Excel:    xlsx,
			Backup:   xlsx,
			Audit:    dispatcher,
		}, log),
		HealthChecks: map[string]handlers.Check{
			"mongodb": handlers.MongoCheck(db),
			"redis":   handlers.RedisCheck(rdb),
		},
	})

	server := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           otelhttp.NewHandler(router, serviceName),
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	return serve(ctx, server, log)
}

// serve runs server until ctx is canceled, then drains in-flight requests.
func serve(ctx context.Context, server *http.Server, log zerolog.Logger) error {
	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("addr", server.Addr).Msg("leadserver listening")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info().Msg("shutting down")
	sctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return server.Shutdown(sctx)
}

