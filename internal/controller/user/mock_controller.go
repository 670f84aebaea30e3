package user

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/lshigami/Axolotls/internal/apperr"
	"github.com/lshigami/Axolotls/internal/dto"
	"github.com/lshigami/Axolotls/internal/service"
)

type MockController struct {
	mockService service.MockService
}

func NewMockController(mockService service.MockService) *MockController {
	return &MockController{mockService: mockService}
}

// GetAllMocks godoc
// @Summary List available mocks
// @Description Returns the catalogue of active mocks without questions.
// @Tags Mocks
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.MockListResponse
// @Failure 401 {object} dto.ErrorResponse "Missing or invalid token"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /mocks [get]
func (c *MockController) GetAllMocks(ctx *gin.Context) {
	resp, err := c.mockService.GetAllMocks()
	if err != nil {
		ctx.JSON(apperr.HTTPStatus(err), dto.ErrorResponse{Message: apperr.ClientMessage(err)})
		return
	}
	ctx.JSON(http.StatusOK, resp)
}
