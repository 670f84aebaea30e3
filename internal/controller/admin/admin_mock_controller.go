package admin

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/lshigami/Axolotls/internal/apperr"
	"github.com/lshigami/Axolotls/internal/dto"
	"github.com/lshigami/Axolotls/internal/service"
	"github.com/rs/zerolog/log"
)

type AdminMockController struct {
	adminMockService service.AdminMockService
	mockService      service.MockService
}

func NewAdminMockController(adminMockService service.AdminMockService, mockService service.MockService) *AdminMockController {
	return &AdminMockController{
		adminMockService: adminMockService,
		mockService:      mockService,
	}
}

// CreateMock godoc
// @Summary (Admin) Create a complete mock
// @Description Creates a mock with its sections, questions and options in one request.
// @Tags Admin - Mocks
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param mock_data body dto.MockCreateRequest true "Mock definition"
// @Success 201 {object} dto.MockCreatedDTO
// @Failure 400 {object} dto.ErrorResponse "Invalid mock definition"
// @Failure 401 {object} dto.ErrorResponse "Missing or invalid token"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /admin/mocks [post]
func (c *AdminMockController) CreateMock(ctx *gin.Context) {
	var req dto.MockCreateRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		log.Warn().Err(err).Msg("Admin CreateMock: failed to bind JSON")
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid request body", Details: []string{err.Error()}})
		return
	}

	resp, err := c.adminMockService.CreateMock(req)
	if err != nil {
		ctx.JSON(apperr.HTTPStatus(err), dto.ErrorResponse{Message: apperr.ClientMessage(err)})
		return
	}
	ctx.JSON(http.StatusCreated, resp)
}

// GetMockAnswerKey godoc
// @Summary (Admin) Get a mock with its answer key
// @Description Returns the full mock content with correctness flags revealed on every option.
// @Tags Admin - Mocks
// @Produce json
// @Security BearerAuth
// @Param mock_id path string true "Mock ID"
// @Success 200 {object} dto.MockAnswerKeyResponse
// @Failure 400 {object} dto.ErrorResponse "Mock has no sections"
// @Failure 401 {object} dto.ErrorResponse "Missing or invalid token"
// @Failure 404 {object} dto.ErrorResponse "Mock not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /admin/mocks/{mock_id}/answers [get]
func (c *AdminMockController) GetMockAnswerKey(ctx *gin.Context) {
	mockID := ctx.Param("mock_id")
	resp, err := c.mockService.GetMockAnswerKey(mockID)
	if err != nil {
		ctx.JSON(apperr.HTTPStatus(err), dto.ErrorResponse{Message: apperr.ClientMessage(err)})
		return
	}
	ctx.JSON(http.StatusOK, resp)
}
