package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	apperrors "github.com/johnquangdev/meeting-agent/errors"
	integrationdto "github.com/johnquangdev/meeting-agent/internal/adapter/dto/integration"
	"github.com/johnquangdev/meeting-agent/internal/domain/entities"
	"github.com/johnquangdev/meeting-agent/internal/usecase/integration"
)

// IntegrationHandler exposes credential management and board metadata
// endpoints.
type IntegrationHandler struct {
	integrationService integration.Service
	logger             *zap.Logger
}

// NewIntegrationHandler creates a new IntegrationHandler
func NewIntegrationHandler(integrationService integration.Service, logger *zap.Logger) *IntegrationHandler {
	return &IntegrationHandler{
		integrationService: integrationService,
		logger:             logger,
	}
}

// Status handles GET /v1/integrations
func (h *IntegrationHandler) Status(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return HandleError(c, h.logger, err)
	}

	status, err := h.integrationService.GetStatus(c.Request().Context(), user.ID)
	if err != nil {
		return HandleError(c, h.logger, err)
	}

	return HandleSuccess(c, http.StatusOK, "", status)
}

// ConnectTrello handles POST /v1/integrations/trello
func (h *IntegrationHandler) ConnectTrello(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return HandleError(c, h.logger, err)
	}

	var req integrationdto.ConnectTrelloRequest
	if err := c.Bind(&req); err != nil {
		return HandleError(c, h.logger, apperrors.ErrInvalidPayload())
	}
	if err := c.Validate(&req); err != nil {
		return HandleError(c, h.logger, apperrors.ErrInvalidArgument(err.Error()))
	}

	cred, err := h.integrationService.ConnectTrello(c.Request().Context(), user.ID, req.Token)
	if err != nil {
		return HandleError(c, h.logger, apperrors.ErrIntegrationFailed("Trello", err))
	}

	return HandleSuccess(c, http.StatusOK, "Trello connected", map[string]string{
		"trello_username": cred.TrelloUsername,
	})
}

// DisconnectTrello handles DELETE /v1/integrations/trello
func (h *IntegrationHandler) DisconnectTrello(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return HandleError(c, h.logger, err)
	}

	if err := h.integrationService.DisconnectTrello(c.Request().Context(), user.ID); err != nil {
		return HandleError(c, h.logger, err)
	}

	return HandleSuccess(c, http.StatusOK, "Trello disconnected", nil)
}

// Boards handles GET /v1/integrations/trello/boards
func (h *IntegrationHandler) Boards(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return HandleError(c, h.logger, err)
	}

	boards, err := h.integrationService.Boards(c.Request().Context(), user.ID)
	if err != nil {
		if errors.Is(err, entities.ErrCredentialNotFound) {
			return HandleError(c, h.logger, apperrors.ErrIntegrationNotConnected("Trello"))
		}
		return HandleError(c, h.logger, err)
	}

	return HandleSuccess(c, http.StatusOK, "", boards)
}

// Lists handles GET /v1/integrations/trello/boards/:boardID/lists
func (h *IntegrationHandler) Lists(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return HandleError(c, h.logger, err)
	}

	boardID := c.Param("boardID")
	if boardID == "" {
		return HandleError(c, h.logger, apperrors.ErrInvalidArgument("board id is required"))
	}

	lists, err := h.integrationService.Lists(c.Request().Context(), user.ID, boardID)
	if err != nil {
		if errors.Is(err, entities.ErrCredentialNotFound) {
			return HandleError(c, h.logger, apperrors.ErrIntegrationNotConnected("Trello"))
		}
		return HandleError(c, h.logger, err)
	}

	return HandleSuccess(c, http.StatusOK, "", lists)
}

// ConnectJira handles POST /v1/integrations/jira
func (h *IntegrationHandler) ConnectJira(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return HandleError(c, h.logger, err)
	}

	var req integrationdto.ConnectJiraRequest
	if err := c.Bind(&req); err != nil {
		return HandleError(c, h.logger, apperrors.ErrInvalidPayload())
	}
	if err := c.Validate(&req); err != nil {
		return HandleError(c, h.logger, apperrors.ErrInvalidArgument(err.Error()))
	}

	cred, err := h.integrationService.ConnectJira(c.Request().Context(), user.ID, req.BaseURL, req.Username, req.APIToken)
	if err != nil {
		return HandleError(c, h.logger, apperrors.ErrIntegrationFailed("Jira", err))
	}

	return HandleSuccess(c, http.StatusOK, "Jira connected", map[string]string{
		"base_url": cred.BaseURL,
	})
}

// DisconnectJira handles DELETE /v1/integrations/jira
func (h *IntegrationHandler) DisconnectJira(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return HandleError(c, h.logger, err)
	}

	if err := h.integrationService.DisconnectJira(c.Request().Context(), user.ID); err != nil {
		return HandleError(c, h.logger, err)
	}

	return HandleSuccess(c, http.StatusOK, "Jira disconnected", nil)
}

// JiraProjects handles GET /v1/integrations/jira/projects
func (h *IntegrationHandler) JiraProjects(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return HandleError(c, h.logger, err)
	}

	projects, err := h.integrationService.JiraProjects(c.Request().Context(), user.ID)
	if err != nil {
		if errors.Is(err, entities.ErrCredentialNotFound) {
			return HandleError(c, h.logger, apperrors.ErrIntegrationNotConnected("Jira"))
		}
		return HandleError(c, h.logger, err)
	}

	return HandleSuccess(c, http.StatusOK, "", projects)
}

// JiraIssueTypes handles GET /v1/integrations/jira/issue-types
func (h *IntegrationHandler) JiraIssueTypes(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return HandleError(c, h.logger, err)
	}

	issueTypes, err := h.integrationService.JiraIssueTypes(c.Request().Context(), user.ID)
	if err != nil {
		if errors.Is(err, entities.ErrCredentialNotFound) {
			return HandleError(c, h.logger, apperrors.ErrIntegrationNotConnected("Jira"))
		}
		return HandleError(c, h.logger, err)
	}

	return HandleSuccess(c, http.StatusOK, "", issueTypes)
}
