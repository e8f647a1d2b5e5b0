package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	"github.com/johnquangdev/notes-summarizer/errors"
)

// CORS accepts requests without an Origin header and requests from an allowed
// origin. Any other origin is rejected before reaching a handler.
func CORS(allowedOrigins []string) echo.MiddlewareFunc {
	allowed := make(map[string]struct{}, len(allowedOrigins))
	for _, o := range allowedOrigins {
		allowed[o] = struct{}{}
	}

	return echomw.CORSWithConfig(echomw.CORSConfig{
		AllowOriginFunc: func(origin string) (bool, error) {
			if _, ok := allowed[origin]; ok {
				return true, nil
			}
			return false, errors.ErrCORSRejected(origin)
		},
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowHeaders:     []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderXRequestID},
		AllowCredentials: true,
	})
}
