package user

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/lshigami/Axolotls/internal/apperr"
	"github.com/lshigami/Axolotls/internal/dto"
	"github.com/lshigami/Axolotls/internal/middleware"
	"github.com/lshigami/Axolotls/internal/service"
	"github.com/rs/zerolog/log"
)

type AttemptController struct {
	attemptService service.AttemptService
	historyService service.HistoryService
}

func NewAttemptController(attemptService service.AttemptService, historyService service.HistoryService) *AttemptController {
	return &AttemptController{
		attemptService: attemptService,
		historyService: historyService,
	}
}

// StartAttempt godoc
// @Summary Start a new attempt on a mock
// @Description Creates an IN_PROGRESS attempt and returns the mock content with the answer key stripped.
// @Tags Attempts
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param start_data body dto.StartAttemptRequest true "Mock to attempt"
// @Success 201 {object} dto.StartAttemptResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid request body or mock has no sections"
// @Failure 401 {object} dto.ErrorResponse "Missing or invalid token"
// @Failure 404 {object} dto.ErrorResponse "Mock not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /attempts [post]
func (c *AttemptController) StartAttempt(ctx *gin.Context) {
	var req dto.StartAttemptRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		log.Warn().Err(err).Msg("StartAttempt: failed to bind JSON")
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid request body", Details: []string{err.Error()}})
		return
	}

	resp, err := c.attemptService.StartAttempt(req.MockID, middleware.CurrentUserID(ctx))
	if err != nil {
		ctx.JSON(apperr.HTTPStatus(err), dto.ErrorResponse{Message: apperr.ClientMessage(err)})
		return
	}
	ctx.JSON(http.StatusCreated, resp)
}

// SubmitAttempt godoc
// @Summary Submit an attempt for scoring
// @Description Scores the submitted answers, persists them and finalizes the attempt. An attempt can be submitted exactly once.
// @Tags Attempts
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param submission body dto.SubmitAttemptRequest true "Attempt id and answers"
// @Success 200 {object} dto.SubmitAttemptResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid body, unknown question ids or duplicate answers"
// @Failure 401 {object} dto.ErrorResponse "Missing or invalid token"
// @Failure 403 {object} dto.ErrorResponse "Attempt belongs to another user"
// @Failure 404 {object} dto.ErrorResponse "Attempt not found"
// @Failure 409 {object} dto.ErrorResponse "Attempt already submitted"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /attempts/submit [post]
func (c *AttemptController) SubmitAttempt(ctx *gin.Context) {
	var req dto.SubmitAttemptRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		log.Warn().Err(err).Msg("SubmitAttempt: failed to bind JSON")
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid request body", Details: []string{err.Error()}})
		return
	}

	resp, err := c.attemptService.SubmitAttempt(req, middleware.CurrentUserID(ctx))
	if err != nil {
		ctx.JSON(apperr.HTTPStatus(err), dto.ErrorResponse{Message: apperr.ClientMessage(err)})
		return
	}
	ctx.JSON(http.StatusOK, resp)
}

// GetUserAttempts godoc
// @Summary List the caller's submitted attempts
// @Description Returns submitted attempts newest first with re-derived per-section breakdowns.
// @Tags Attempts
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.UserAttemptsResponse
// @Failure 401 {object} dto.ErrorResponse "Missing or invalid token"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /attempts [get]
func (c *AttemptController) GetUserAttempts(ctx *gin.Context) {
	resp, err := c.historyService.GetUserAttempts(middleware.CurrentUserID(ctx))
	if err != nil {
		ctx.JSON(apperr.HTTPStatus(err), dto.ErrorResponse{Message: apperr.ClientMessage(err)})
		return
	}
	ctx.JSON(http.StatusOK, resp)
}

// GetAttemptDetails godoc
// @Summary Get full details of one attempt
// @Description Returns the attempt with every question, the user's selections and the revealed answer key.
// @Tags Attempts
// @Produce json
// @Security BearerAuth
// @Param attempt_id path string true "Attempt ID"
// @Success 200 {object} dto.AttemptDetailsResponse
// @Failure 401 {object} dto.ErrorResponse "Missing or invalid token"
// @Failure 404 {object} dto.ErrorResponse "Attempt not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /attempts/{attempt_id} [get]
func (c *AttemptController) GetAttemptDetails(ctx *gin.Context) {
	attemptID := ctx.Param("attempt_id")
	resp, err := c.historyService.GetAttemptDetails(attemptID, middleware.CurrentUserID(ctx))
	if err != nil {
		ctx.JSON(apperr.HTTPStatus(err), dto.ErrorResponse{Message: apperr.ClientMessage(err)})
		return
	}
	ctx.JSON(http.StatusOK, resp)
}
