package handler

import (
	stdErrors "errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/johnquangdev/notes-summarizer/errors"
	"github.com/johnquangdev/notes-summarizer/internal/adapter/dto/common"
)

// getRequestID returns the id assigned by the RequestID middleware,
// falling back to the X-Request-ID sent by the client
func getRequestID(c echo.Context) string {
	if c == nil || c.Request() == nil {
		return ""
	}
	if id := c.Response().Header().Get(echo.HeaderXRequestID); id != "" {
		return id
	}
	return c.Request().Header.Get(echo.HeaderXRequestID)
}

// HandleError centralizes error handling and logging using provided logger.
// AppErrors keep their status; anything else is flattened to a generic 500.
func HandleError(logger *zap.Logger, c echo.Context, err error) error {
	reqID := getRequestID(c)

	var appErr errors.AppError
	if stdErrors.As(err, &appErr) {
		if logger != nil {
			log := logger.Warn
			if appErr.HTTPCode >= http.StatusInternalServerError {
				log = logger.Error
			}
			log("http.response.error",
				zap.String("request_id", reqID),
				zap.String("path", c.Request().URL.Path),
				zap.Int("status", appErr.HTTPCode),
				zap.Stringer("app_code", appErr.Code),
				zap.Error(err),
			)
		}

		return c.JSON(appErr.HTTPCode, common.ErrorResponse{
			Error:   appErr.Message,
			Details: appErr.Details(),
		})
	}

	if logger != nil {
		logger.Error("http.response.error",
			zap.String("request_id", reqID),
			zap.String("path", c.Request().URL.Path),
			zap.Error(err),
		)
	}

	return c.JSON(http.StatusInternalServerError, common.ErrorResponse{
		Error: "Internal server error",
	})
}

// NewHTTPErrorHandler is the fallback for errors returned by middleware,
// the router and recovered panics. It never terminates the process.
func NewHTTPErrorHandler(logger *zap.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		var he *echo.HTTPError
		if stdErrors.As(err, &he) {
			switch {
			case he.Code == http.StatusNotFound || he.Code == http.StatusMethodNotAllowed:
				err = errors.ErrEndpointNotFound()
			case he.Code == http.StatusTooManyRequests:
				err = errors.ErrTooManyRequests()
			case he.Code < http.StatusInternalServerError:
				err = errors.AppError{
					Raw:      he,
					HTTPCode: he.Code,
					Code:     errors.ErrorCode_INVALID_ARGUMENT,
					Message:  http.StatusText(he.Code),
				}
			}
		}

		if hErr := HandleError(logger, c, err); hErr != nil && logger != nil {
			logger.Error("failed to write error response", zap.Error(hErr))
		}
	}
}
