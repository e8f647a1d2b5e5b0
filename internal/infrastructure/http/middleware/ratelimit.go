package middleware

import (
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"

	"github.com/johnquangdev/notes-summarizer/errors"
	"github.com/johnquangdev/notes-summarizer/internal/adapter/dto/common"
	"github.com/johnquangdev/notes-summarizer/internal/infrastructure/metrics"
)

// failOpenStore lets requests through when the counter store is unreachable
type failOpenStore struct {
	next   echomw.RateLimiterStore
	logger *zap.Logger
}

func (s failOpenStore) Allow(identifier string) (bool, error) {
	ok, err := s.next.Allow(identifier)
	if err != nil {
		s.logger.Warn("⚠️ rate limit store unavailable, allowing request",
			zap.String("client", identifier),
			zap.Error(err),
		)
		return true, nil
	}
	return ok, nil
}

// RateLimit throttles clients by address. Requests over the cap are answered
// here and never reach a handler.
func RateLimit(store echomw.RateLimiterStore, m *metrics.Metrics, logger *zap.Logger) echo.MiddlewareFunc {
	if logger == nil {
		logger = zap.NewNop()
	}
	return echomw.RateLimiterWithConfig(echomw.RateLimiterConfig{
		Store: failOpenStore{next: store, logger: logger},
		IdentifierExtractor: func(c echo.Context) (string, error) {
			return c.RealIP(), nil
		},
		DenyHandler: func(c echo.Context, identifier string, _ error) error {
			m.ObserveThrottled()
			logger.Warn("🚫 request throttled",
				zap.String("client", identifier),
				zap.String("path", c.Request().URL.Path),
			)
			appErr := errors.ErrTooManyRequests()
			return c.JSON(appErr.HTTPCode, common.ErrorResponse{Error: appErr.Message})
		},
	})
}
