package api

import (
	"net/http"
	"slices"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	_ "github.com/uninorte/lead-system/docs"
	"github.com/uninorte/lead-system/internal/api/handler"
	"github.com/uninorte/lead-system/internal/api/middleware"
	"github.com/uninorte/lead-system/internal/core/access"
	"github.com/uninorte/lead-system/internal/core/ports"
	"github.com/uninorte/lead-system/internal/infrastructure/http/handlers"
)

// Dependencies are the services the router exposes.
type Dependencies struct {
	Log         zerolog.Logger
	CORSOrigins []string

	Auth      ports.AuthService
	Leads     ports.LeadService
	Dashboard ports.DashboardService
	Users     ports.UserService
	Catalog   ports.CatalogService
	Audit     ports.AuditService
	Reports   ports.ReportService

	// HealthChecks back GET /health/ready, keyed by dependency name.
	HealthChecks map[string]handlers.Check
	// MetricsRegistry replaces the default Prometheus registry when set.
	MetricsRegistry *prometheus.Registry
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(deps Dependencies) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.HTTPErrorHandler = NewHTTPErrorHandler(deps.Log)
	e.Validator = handler.NewValidator()

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(requestLogger(deps.Log))
	e.Use(cors(deps.CORSOrigins))

	promConfig := echoprometheus.MiddlewareConfig{Subsystem: "http"}
	metricsHandler := echoprometheus.NewHandler()
	if deps.MetricsRegistry != nil {
		promConfig.Registerer = deps.MetricsRegistry
		metricsHandler = echoprometheus.NewHandlerWithConfig(echoprometheus.HandlerConfig{Gatherer: deps.MetricsRegistry})
	}
	e.Use(echoprometheus.NewMiddlewareWithConfig(promConfig))

	// --- Probes, metrics and docs (no auth required) ---
	healthHandler := handlers.NewHealthHandler()
	healthDepsHandler := handlers.NewHealthDependenciesHandler(deps.HealthChecks)

	e.GET("/health", healthHandler.Liveness)            // liveness  – is the process alive?
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness – are dependencies up?
	e.GET("/metrics", metricsHandler)
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	// --- Handlers ---
	authHandler := handler.NewAuthHandler(deps.Auth)
	leadHandler := handler.NewLeadHandler(deps.Leads)
	dashboardHandler := handler.NewDashboardHandler(deps.Dashboard)
	reportHandler := handler.NewReportHandler(deps.Reports)
	userHandler := handler.NewUserHandler(deps.Users)
	catalogHandler := handler.NewCatalogHandler(deps.Catalog)
	auditHandler := handler.NewAuditHandler(deps.Audit)

	auth := middleware.Auth(deps.Auth)
	can := middleware.RequireAction

	api := e.Group("/api")

	// --- Auth ---
	api.POST("/auth/login", authHandler.Login)
	api.POST("/auth/logout", authHandler.Logout, auth)
	api.GET("/auth/me", authHandler.Me, auth)

	// --- Leads ---
	api.POST("/leads", leadHandler.Create, auth, can(access.ActionCreateLead))
	api.GET("/leads/my", leadHandler.ListMine, auth, can(access.ActionViewOwnLeads))
	api.GET("/leads/stats", leadHandler.Stats, auth, can(access.ActionViewOwnStats))
	api.GET("/leads", leadHandler.List, auth, can(access.ActionViewAllLeads))
	api.PATCH("/leads/:id", leadHandler.Update, auth, can(access.ActionUpdateLead))

	// --- Dashboard and reports ---
	api.GET("/dashboard", dashboardHandler.Get, auth, can(access.ActionViewDashboard))
	api.GET("/reports/export/:format", reportHandler.Export, auth, can(access.ActionExportLeads))

	// --- Administration ---
	api.GET("/users", userHandler.List, auth, can(access.ActionManageUsers))
	api.POST("/users", userHandler.Create, auth, can(access.ActionManageUsers))
	api.PATCH("/users/:id", userHandler.Update, auth, can(access.ActionManageUsers))

	api.GET("/courses", catalogHandler.Courses)
	api.POST("/courses", catalogHandler.CreateCourse, auth, can(access.ActionManageCatalog))
	api.GET("/lead-status", catalogHandler.Statuses)
	api.POST("/lead-status", catalogHandler.CreateStatus, auth, can(access.ActionManageCatalog))

	api.GET("/audit-logs", auditHandler.Recent, auth, can(access.ActionViewAudit))
	api.GET("/system/backup", reportHandler.Backup, auth, can(access.ActionBackup))

	return e
}

func requestLogger(log zerolog.Logger) echo.MiddlewareFunc {
	return echomiddleware.RequestLoggerWithConfig(echomiddleware.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogError:     true,
		HandleError:  true,
		LogValuesFunc: func(_ echo.Context, v echomiddleware.RequestLoggerValues) error {
			evt := log.Info()
			if v.Error != nil {
				evt = log.Warn().Err(v.Error)
			}
			evt.
				Str("method", v.Method).
				Str("uri", v.URI).
				Int("status", v.Status).
				Dur("latency", v.Latency).
				Str("request_id", v.RequestID).
				Msg("request")
			return nil
		},
	})
}

// cors allows the configured origins. Credentials are only allowed when
// origins are listed explicitly.
func cors(origins []string) echo.MiddlewareFunc {
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	return echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins:     origins,
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPatch, http.MethodOptions},
		AllowHeaders:     []string{echo.HeaderAuthorization, echo.HeaderContentType},
		ExposeHeaders:    []string{echo.HeaderContentDisposition},
		AllowCredentials: !slices.Contains(origins, "*"),
	})
}
