package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	apperrors "github.com/johnquangdev/meeting-agent/errors"
	authdto "github.com/johnquangdev/meeting-agent/internal/adapter/dto/auth"
	"github.com/johnquangdev/meeting-agent/internal/domain/entities"
	"github.com/johnquangdev/meeting-agent/internal/usecase/auth"
)

// AuthHandler exposes registration, login and session endpoints.
type AuthHandler struct {
	authService auth.Service
	logger      *zap.Logger
}

// NewAuthHandler creates a new AuthHandler
func NewAuthHandler(authService auth.Service, logger *zap.Logger) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		logger:      logger,
	}
}

// Register handles POST /v1/auth/register
func (h *AuthHandler) Register(c echo.Context) error {
	var req authdto.RegisterRequest
	if err := c.Bind(&req); err != nil {
		return HandleError(c, h.logger, apperrors.ErrInvalidPayload())
	}
	if err := c.Validate(&req); err != nil {
		return HandleError(c, h.logger, apperrors.ErrInvalidArgument(err.Error()))
	}

	user, err := h.authService.Register(c.Request().Context(), req.Username, req.Email, req.Password)
	if err != nil {
		if errors.Is(err, entities.ErrUserAlreadyExists) {
			return HandleError(c, h.logger, apperrors.ErrUserAlreadyExists(req.Email))
		}
		return HandleError(c, h.logger, err)
	}

	return HandleSuccess(c, http.StatusCreated, "Account created", user.ToPublic())
}

// Login handles POST /v1/auth/login
func (h *AuthHandler) Login(c echo.Context) error {
	var req authdto.LoginRequest
	if err := c.Bind(&req); err != nil {
		return HandleError(c, h.logger, apperrors.ErrInvalidPayload())
	}
	if err := c.Validate(&req); err != nil {
		return HandleError(c, h.logger, apperrors.ErrInvalidArgument(err.Error()))
	}

	user, tokens, err := h.authService.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		return HandleError(c, h.logger, err)
	}

	return HandleSuccess(c, http.StatusOK, "Logged in", authdto.LoginResponse{
		User: user.ToPublic(),
		Tokens: authdto.TokenResponse{
			AccessToken:  tokens.AccessToken,
			RefreshToken: tokens.RefreshToken,
			ExpiresIn:    tokens.ExpiresIn,
		},
	})
}

// Refresh handles POST /v1/auth/refresh
func (h *AuthHandler) Refresh(c echo.Context) error {
	var req authdto.RefreshRequest
	if err := c.Bind(&req); err != nil {
		return HandleError(c, h.logger, apperrors.ErrInvalidPayload())
	}
	if err := c.Validate(&req); err != nil {
		return HandleError(c, h.logger, apperrors.ErrInvalidRefreshToken())
	}

	tokens, err := h.authService.Refresh(c.Request().Context(), req.RefreshToken)
	if err != nil {
		return HandleError(c, h.logger, err)
	}

	return HandleSuccess(c, http.StatusOK, "Token refreshed", authdto.TokenResponse{
		AccessToken:  tokens.AccessToken,
		RefreshToken: tokens.RefreshToken,
		ExpiresIn:    tokens.ExpiresIn,
	})
}

// Logout handles POST /v1/auth/logout
func (h *AuthHandler) Logout(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return HandleError(c, h.logger, err)
	}

	if err := h.authService.Logout(c.Request().Context(), user.ID); err != nil {
		return HandleError(c, h.logger, err)
	}

	return HandleSuccess(c, http.StatusOK, "Logged out", nil)
}

// Me handles GET /v1/auth/me
func (h *AuthHandler) Me(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return HandleError(c, h.logger, err)
	}
	return HandleSuccess(c, http.StatusOK, "", user.ToPublic())
}
