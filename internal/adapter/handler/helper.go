package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	apperrors "github.com/johnquangdev/meeting-agent/errors"
	"github.com/johnquangdev/meeting-agent/internal/adapter/dto/common"
	"github.com/johnquangdev/meeting-agent/internal/domain/entities"
)

// userContextKey is where the auth middleware stores the resolved user.
const userContextKey = "current_user"

// HandleSuccess writes the success envelope.
func HandleSuccess(c echo.Context, status int, message string, data interface{}) error {
	return c.JSON(status, common.Response{
		Success:   true,
		Message:   message,
		Data:      data,
		RequestID: requestID(c),
	})
}

// HandleError maps an error to the response envelope. Unrecognized
// errors become an opaque 500.
func HandleError(c echo.Context, logger *zap.Logger, err error) error {
	var appErr apperrors.AppError
	if !errors.As(err, &appErr) {
		appErr = mapDomainError(err)
	}

	if appErr.HTTPCode >= http.StatusInternalServerError {
		logger.Error("request failed",
			zap.String("request_id", requestID(c)),
			zap.String("path", c.Path()),
			zap.Error(err))
	} else {
		logger.Debug("request rejected",
			zap.String("request_id", requestID(c)),
			zap.String("path", c.Path()),
			zap.Error(err))
	}

	return c.JSON(appErr.HTTPCode, common.Response{
		Success: false,
		Error: &common.ErrorBody{
			Code:    appErr.Code.String(),
			Message: appErr.Message,
			Details: appErr.Details,
		},
		RequestID: requestID(c),
	})
}

func mapDomainError(err error) apperrors.AppError {
	switch {
	case errors.Is(err, entities.ErrUserNotFound):
		return apperrors.ErrUserNotFound()
	case errors.Is(err, entities.ErrUserAlreadyExists):
		return apperrors.ErrAlreadyExists("User")
	case errors.Is(err, entities.ErrUnauthorized):
		return apperrors.ErrInvalidCredentials()
	case errors.Is(err, entities.ErrInvalidToken),
		errors.Is(err, entities.ErrSessionNotFound),
		errors.Is(err, entities.ErrSessionExpired):
		return apperrors.ErrInvalidToken()
	case errors.Is(err, entities.ErrTeamNotFound):
		return apperrors.ErrTeamNotFound()
	case errors.Is(err, entities.ErrNoTeam):
		return apperrors.ErrTeamRequired()
	case errors.Is(err, entities.ErrAlreadyInTeam):
		return apperrors.ErrInvalidArgument("User already belongs to a team")
	case errors.Is(err, entities.ErrEmptyTranscript):
		return apperrors.ErrMissingTranscript()
	case errors.Is(err, entities.ErrInvalidEmail),
		errors.Is(err, entities.ErrInvalidName),
		errors.Is(err, entities.ErrInvalidPassword):
		return apperrors.ErrInvalidArgument(err.Error())
	default:
		return apperrors.ErrInternal(err)
	}
}

// currentUser returns the authenticated user set by the auth
// middleware. Routes behind the middleware can rely on it being
// present.
func currentUser(c echo.Context) (*entities.User, error) {
	user, ok := c.Get(userContextKey).(*entities.User)
	if !ok || user == nil {
		return nil, apperrors.ErrUnauthenticated()
	}
	return user, nil
}

// SetCurrentUser stores the authenticated user on the request context.
// Called by the auth middleware.
func SetCurrentUser(c echo.Context, user *entities.User) {
	c.Set(userContextKey, user)
}

func requestID(c echo.Context) string {
	return c.Response().Header().Get(echo.HeaderXRequestID)
}
