package handler

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"
	"go.uber.org/zap"

	"github.com/johnquangdev/notes-summarizer/internal/adapter/dto/common"
	"github.com/johnquangdev/notes-summarizer/internal/infrastructure/metrics"
	"github.com/johnquangdev/notes-summarizer/pkg/config"
	pkgvalidator "github.com/johnquangdev/notes-summarizer/pkg/validator"

	httpmw "github.com/johnquangdev/notes-summarizer/internal/infrastructure/http/middleware"

	// swagger spec registration
	_ "github.com/johnquangdev/notes-summarizer/docs"
)

// Router holds all handlers and the cross-cutting middleware they run behind
type Router struct {
	cfg            *config.Config
	summaryHandler *Summary
	limiter        echomw.RateLimiterStore
	metrics        *metrics.Metrics
	logger         *zap.Logger
	now            func() time.Time
}

// NewRouter creates a new router with all handlers
func NewRouter(cfg *config.Config, summaryHandler *Summary, limiter echomw.RateLimiterStore, m *metrics.Metrics, logger *zap.Logger) *Router {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Router{
		cfg:            cfg,
		summaryHandler: summaryHandler,
		limiter:        limiter,
		metrics:        m,
		logger:         logger,
		now:            time.Now,
	}
}

// Setup configures middleware, error handling and all application routes
func (rt *Router) Setup(e *echo.Echo) {
	e.Validator = pkgvalidator.New()
	e.HTTPErrorHandler = NewHTTPErrorHandler(rt.logger)
	if rt.cfg.Server.TrustProxy {
		e.IPExtractor = echo.ExtractIPFromXFFHeader()
	} else {
		e.IPExtractor = echo.ExtractIPDirect()
	}

	e.Use(echomw.RequestIDWithConfig(echomw.RequestIDConfig{Generator: uuid.NewString}))
	e.Use(httpmw.RequestLogger(rt.logger))
	e.Use(echomw.Recover())
	e.Use(echomw.Secure())
	e.Use(httpmw.CORS(rt.cfg.Origins()))
	e.Use(echomw.BodyLimit(rt.cfg.Server.BodyLimit))
	if rt.limiter != nil {
		e.Use(httpmw.RateLimit(rt.limiter, rt.metrics, rt.logger))
	}

	api := e.Group("/api")
	api.GET("/health", rt.healthCheck)
	api.POST("/summarize", rt.summaryHandler.Summarize)
	api.POST("/share", rt.summaryHandler.Share)

	if rt.metrics != nil {
		e.GET("/metrics", echo.WrapHandler(rt.metrics.Handler()))
	}
	e.GET("/swagger/*", echoSwagger.WrapHandler)
}

// healthCheck returns health status
// @Summary      Health check
// @Tags         Health
// @Produce      json
// @Success      200  {object}  common.HealthResponse
// @Router       /health [get]
func (rt *Router) healthCheck(c echo.Context) error {
	return c.JSON(http.StatusOK, common.HealthResponse{
		Status:      "OK",
		Message:     "Notes Summarizer API is running",
		Timestamp:   rt.now().UTC().Format("2006-01-02T15:04:05.000Z07:00"),
		Environment: rt.cfg.Server.Environment,
	})
}
