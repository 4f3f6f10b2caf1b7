package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/tutordesk/tutordesk/internal/logger"
	"github.com/tutordesk/tutordesk/internal/service"
)

type DashboardHandler struct {
	service service.DashboardService
	log     *logger.Logger
}

func NewDashboardHandler(service service.DashboardService, log *logger.Logger) *DashboardHandler {
	return &DashboardHandler{
		service: service,
		log:     log,
	}
}

// @Summary Dashboard summary
// @Description Student count, this month's revenue, outstanding balance and recent payments
// @Tags Dashboard
// @Produce json
// @Success 200 {object} dto.DashboardResponse
// @Failure 500 {object} ierr.ErrorResponse
// @Router /dashboard [get]
func (h *DashboardHandler) GetSummary(c *gin.Context) {
	resp, err := h.service.GetSummary(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}
