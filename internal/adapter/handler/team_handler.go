package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	apperrors "github.com/johnquangdev/meeting-agent/errors"
	teamdto "github.com/johnquangdev/meeting-agent/internal/adapter/dto/team"
	"github.com/johnquangdev/meeting-agent/internal/domain/entities"
	"github.com/johnquangdev/meeting-agent/internal/usecase/team"
)

// TeamHandler exposes team membership and settings endpoints.
type TeamHandler struct {
	teamService team.Service
	logger      *zap.Logger
}

// NewTeamHandler creates a new TeamHandler
func NewTeamHandler(teamService team.Service, logger *zap.Logger) *TeamHandler {
	return &TeamHandler{
		teamService: teamService,
		logger:      logger,
	}
}

// Create handles POST /v1/teams
func (h *TeamHandler) Create(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return HandleError(c, h.logger, err)
	}

	var req teamdto.CreateRequest
	if err := c.Bind(&req); err != nil {
		return HandleError(c, h.logger, apperrors.ErrInvalidPayload())
	}
	if err := c.Validate(&req); err != nil {
		return HandleError(c, h.logger, apperrors.ErrInvalidArgument(err.Error()))
	}

	created, err := h.teamService.Create(c.Request().Context(), user, req.Name)
	if err != nil {
		return HandleError(c, h.logger, err)
	}

	return HandleSuccess(c, http.StatusCreated, "Team created", teamdto.FromEntity(created))
}

// Invite handles POST /v1/teams/invite
func (h *TeamHandler) Invite(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return HandleError(c, h.logger, err)
	}

	var req teamdto.InviteRequest
	if err := c.Bind(&req); err != nil {
		return HandleError(c, h.logger, apperrors.ErrInvalidPayload())
	}
	if err := c.Validate(&req); err != nil {
		return HandleError(c, h.logger, apperrors.ErrInvalidArgument(err.Error()))
	}

	invitee, err := h.teamService.Invite(c.Request().Context(), user, req.Email)
	if err != nil {
		if errors.Is(err, entities.ErrUserNotFound) {
			return HandleError(c, h.logger, apperrors.ErrMemberNotFound(req.Email))
		}
		return HandleError(c, h.logger, err)
	}

	return HandleSuccess(c, http.StatusOK, "Member added", invitee.ToPublic())
}

// SetWebhook handles PUT /v1/teams/webhook
func (h *TeamHandler) SetWebhook(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return HandleError(c, h.logger, err)
	}

	var req teamdto.WebhookRequest
	if err := c.Bind(&req); err != nil {
		return HandleError(c, h.logger, apperrors.ErrInvalidPayload())
	}
	if err := c.Validate(&req); err != nil {
		return HandleError(c, h.logger, apperrors.ErrInvalidArgument(err.Error()))
	}

	updated, err := h.teamService.SetWebhook(c.Request().Context(), user, req.WebhookURL)
	if err != nil {
		return HandleError(c, h.logger, err)
	}

	return HandleSuccess(c, http.StatusOK, "Webhook updated", teamdto.FromEntity(updated))
}

// MyTeam handles GET /v1/teams/me
func (h *TeamHandler) MyTeam(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return HandleError(c, h.logger, err)
	}

	myTeam, err := h.teamService.MyTeam(c.Request().Context(), user)
	if err != nil {
		return HandleError(c, h.logger, err)
	}

	return HandleSuccess(c, http.StatusOK, "", teamdto.FromEntity(myTeam))
}
