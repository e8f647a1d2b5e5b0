package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/labstack/echo/v4"

	"github.com/johnquangdev/notes-summarizer/internal/adapter/handler"
	"github.com/johnquangdev/notes-summarizer/internal/infrastructure/cache"
	"github.com/johnquangdev/notes-summarizer/internal/infrastructure/metrics"
	"github.com/johnquangdev/notes-summarizer/internal/infrastructure/ratelimit"
	"github.com/johnquangdev/notes-summarizer/internal/usecase/summary"
	pkgai "github.com/johnquangdev/notes-summarizer/pkg/ai"
	"github.com/johnquangdev/notes-summarizer/pkg/config"
	"github.com/johnquangdev/notes-summarizer/pkg/mailer"
)

// @title           Notes Summarizer API
// @version         1.0
// @description     Summarizes free-form notes with an LLM and shares the result by email

// @contact.name   API Support
// @contact.email  support@infoquang.id.vn

// @license.name  Apache 2.0
// @license.url   http://www.apache.org/licenses/LICENSE-2.0.html

// @BasePath  /api

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger, err := newLogger(cfg.Server.Environment)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	// Initialize Echo instance
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	logger.Info("🔧 Initializing dependencies...")
	m := metrics.New()

	logger.Info("🤖 Initializing completion client...", zap.String("model", cfg.Groq.Model))
	groqClient := pkgai.NewGroqClient(&cfg.Groq)
	if !cfg.GroqConfigured() {
		logger.Warn("⚠️  GROQ_API_KEY is not set; summarize requests will fail")
	}

	logger.Info("📧 Initializing mail sender...", zap.String("smtp_host", cfg.Mail.Host), zap.Int("smtp_port", cfg.Mail.Port))
	sender := mailer.NewSMTPSender(&cfg.Mail)
	if !cfg.MailConfigured() {
		logger.Warn("⚠️  EMAIL_USER or EMAIL_PASS is not set; share requests will fail")
	}

	store, closeStore, err := newLimiterStore(cfg, logger)
	if err != nil {
		logger.Fatal("Failed to initialize rate limit store", zap.Error(err))
	}
	defer closeStore()
	limiter := ratelimit.NewFixedWindow(store, cfg.RateLimit.Window, cfg.RateLimit.Max)

	svc := summary.NewService(groqClient, sender, cfg, m, logger)
	summaryHandler := handler.NewSummaryHandler(svc, logger)

	logger.Info("🛣️  Setting up routes...")
	router := handler.NewRouter(cfg, summaryHandler, limiter, m, logger)
	router.Setup(e)

	// Start server
	go func() {
		addr := fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port)
		logger.Info(fmt.Sprintf("🚀 Server running on port %s", cfg.Server.Port))
		logger.Info(fmt.Sprintf("📝 Environment: %s", cfg.Server.Environment))
		logger.Info(fmt.Sprintf("🔗 Health check: http://localhost:%s/api/health", cfg.Server.Port))

		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	logger.Info("🛑 Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := e.Shutdown(ctx); err != nil {
		logger.Error("❌ Server forced to shutdown", zap.Error(err))
		return
	}

	logger.Info("✅ Server stopped gracefully")
}

func newLogger(environment string) (*zap.Logger, error) {
	if environment == "development" {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}

// newLimiterStore picks the counter backend for the fixed window limiter
func newLimiterStore(cfg *config.Config, logger *zap.Logger) (ratelimit.Store, func(), error) {
	if cfg.RateLimit.Store == "redis" {
		logger.Info("📦 Connecting to Redis...", zap.String("addr", cfg.GetRedisAddr()))
		client, err := cache.NewRedisClient(cfg)
		if err != nil {
			return nil, nil, err
		}
		return ratelimit.NewRedisStore(client), func() { _ = client.Close() }, nil
	}

	logger.Info("📦 Using in-memory rate limit store")
	store := ratelimit.NewMemoryStore()
	return store, store.Close, nil
}
