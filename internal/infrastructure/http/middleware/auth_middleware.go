package middleware

import (
	"strings"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	apperrors "github.com/johnquangdev/meeting-agent/errors"
	"github.com/johnquangdev/meeting-agent/internal/adapter/handler"
	"github.com/johnquangdev/meeting-agent/internal/usecase/auth"
)

const bearerPrefix = "Bearer "

// Auth resolves the Bearer token to a user and stores it on the
// request context. Requests without a valid token are rejected.
func Auth(authService auth.Service, logger *zap.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			header := c.Request().Header.Get(echo.HeaderAuthorization)
			if !strings.HasPrefix(header, bearerPrefix) {
				return handler.HandleError(c, logger, apperrors.ErrUnauthenticated())
			}

			token := strings.TrimPrefix(header, bearerPrefix)
			user, err := authService.ValidateAccess(c.Request().Context(), token)
			if err != nil {
				return handler.HandleError(c, logger, err)
			}

			handler.SetCurrentUser(c, user)
			return next(c)
		}
	}
}
