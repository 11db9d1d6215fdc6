package router

import (
	"context"
	"log/slog"
	"net/http"

	"transactions-dashboard/internal/config"
	"transactions-dashboard/internal/handlers"
	"transactions-dashboard/internal/middleware"
	"transactions-dashboard/internal/repositories"
	"transactions-dashboard/internal/services"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"gorm.io/gorm"
)

const maxBodySize = "64K"

// APIDependencies is what the transactions API server is built from
type APIDependencies struct {
	Config       *config.Config
	DB           *gorm.DB
	Transactions services.TransactionServiceInterface
	// Tokens is nil when service tokens are disabled
	Tokens   services.TokenServiceInterface
	Gatherer prometheus.Gatherer
	Logger   *slog.Logger
}

// DashboardDependencies is what the dashboard server is built from
type DashboardDependencies struct {
	Config   *config.Config
	Provider services.TransactionsProviderInterface
	Gatherer prometheus.Gatherer
	Logger   *slog.Logger
}

// NewAPI builds the transactions REST API. Background work started for the
// server, such as rate limiter cleanup, stops when ctx is done.
func NewAPI(ctx context.Context, deps APIDependencies) *echo.Echo {
	e := newEcho(ctx, deps.Config, deps.Logger, middleware.APIContentSecurityPolicy)

	health := handlers.NewHealthCheckHandler(deps.DB, repositories.NewTransactionRepository(deps.DB))
	transactions := handlers.NewTransactionHandler(deps.Transactions)

	e.GET("/health", health.HealthCheck)
	e.GET("/metrics", metricsHandler(deps.Gatherer))

	group := e.Group("/transactions")
	if deps.Tokens != nil {
		group.Use(middleware.RequireServiceToken(deps.Tokens))
	}
	group.GET("", transactions.ListTransactions)
	group.POST("", transactions.CreateTransaction)
	group.GET("/:id", transactions.GetTransaction)

	if deps.Config.IsDevelopment() {
		dev := handlers.NewDevHandler(deps.Transactions)
		e.POST("/dev/sample-transactions", dev.GenerateSampleTransactions)
	}

	return e
}

// NewDashboard builds the dashboard server with deps.Provider in scope of every route
func NewDashboard(ctx context.Context, deps DashboardDependencies) *echo.Echo {
	e := newEcho(ctx, deps.Config, deps.Logger, middleware.DashboardContentSecurityPolicy)

	e.GET("/metrics", metricsHandler(deps.Gatherer))

	dashboard := handlers.NewDashboardHandler(deps.Logger)
	scoped := e.Group("", middleware.ProvideTransactions(deps.Provider))

	scoped.GET("/", dashboard.Page)
	scoped.GET("/health", dashboard.Health)
	scoped.GET("/transactions/table", dashboard.Table)
	scoped.POST("/transactions", dashboard.CreateTransaction)
	scoped.GET("/transactions/statement.pdf", dashboard.Statement)
	scoped.GET("/api/transactions", dashboard.Snapshot)
	scoped.GET("/api/summary", dashboard.Summary)
	scoped.GET("/api/categories", dashboard.Categories)

	return e
}

func newEcho(ctx context.Context, cfg *config.Config, logger *slog.Logger, contentSecurityPolicy string) *echo.Echo {
	if logger == nil {
		logger = slog.Default()
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.HTTPErrorHandler = middleware.CustomHTTPErrorHandler
	e.IPExtractor = middleware.IPExtractor(cfg.Security)
	e.Validator = handlers.NewValidator()

	e.Use(middleware.RequestID())
	e.Use(middleware.RequestLogger(logger))
	e.Use(middleware.PanicRecovery(logger))
	e.Use(middleware.SecurityHeaders(contentSecurityPolicy))
	e.Use(echomw.BodyLimit(maxBodySize))
	e.Use(echomw.CORSWithConfig(echomw.CORSConfig{
		AllowOrigins: cfg.Server.CORSAllowOrigins,
		AllowMethods: []string{http.MethodGet, http.MethodPost},
		AllowHeaders: []string{echo.HeaderContentType, echo.HeaderAuthorization, middleware.TraceIDHeader},
	}))
	e.Use(middleware.RateLimiterWithConfig(ctx, cfg.Security))

	return e
}

func metricsHandler(gatherer prometheus.Gatherer) echo.HandlerFunc {
	if gatherer == nil {
		gatherer = prometheus.DefaultGatherer
	}
	return echo.WrapHandler(promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))
}
