package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	apperrors "github.com/johnquangdev/meeting-agent/errors"
	analysisdto "github.com/johnquangdev/meeting-agent/internal/adapter/dto/analysis"
	"github.com/johnquangdev/meeting-agent/internal/usecase/analysis"
)

const defaultHistoryLimit = 20

// AnalysisHandler exposes the transcript analysis endpoint and the run
// history.
type AnalysisHandler struct {
	analysisService analysis.Service
	logger          *zap.Logger
}

// NewAnalysisHandler creates a new AnalysisHandler
func NewAnalysisHandler(analysisService analysis.Service, logger *zap.Logger) *AnalysisHandler {
	return &AnalysisHandler{
		analysisService: analysisService,
		logger:          logger,
	}
}

// Analyze handles POST /v1/analysis
func (h *AnalysisHandler) Analyze(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return HandleError(c, h.logger, err)
	}

	var req analysisdto.AnalyzeRequest
	if err := c.Bind(&req); err != nil {
		return HandleError(c, h.logger, apperrors.ErrInvalidPayload())
	}
	if err := c.Validate(&req); err != nil {
		return HandleError(c, h.logger, apperrors.ErrMissingTranscript())
	}

	result, err := h.analysisService.Analyze(c.Request().Context(), user, analysis.AnalyzeRequest{
		Transcript: req.Transcript,
		Flags:      req.Flags(),
	})
	if err != nil {
		return HandleError(c, h.logger, err)
	}

	// A model failure is a normal response carrying the failure
	// notification, not an HTTP error.
	return HandleSuccess(c, http.StatusOK, "", analysisdto.AnalyzeResponse{
		Analysis:     result.Analysis,
		Outcomes:     result.Outcomes,
		Notification: result.Notification,
	})
}

// History handles GET /v1/analysis/history
func (h *AnalysisHandler) History(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return HandleError(c, h.logger, err)
	}

	var q analysisdto.HistoryQuery
	if err := c.Bind(&q); err != nil {
		return HandleError(c, h.logger, apperrors.ErrInvalidArgument("invalid pagination parameters"))
	}
	if q.Limit <= 0 {
		q.Limit = defaultHistoryLimit
	}
	if q.Offset < 0 {
		q.Offset = 0
	}

	runs, err := h.analysisService.History(c.Request().Context(), user.ID, q.Limit, q.Offset)
	if err != nil {
		return HandleError(c, h.logger, err)
	}

	return HandleSuccess(c, http.StatusOK, "", runs)
}
