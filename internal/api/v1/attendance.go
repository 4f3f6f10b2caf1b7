package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/tutordesk/tutordesk/internal/api/dto"
	"github.com/tutordesk/tutordesk/internal/logger"
	"github.com/tutordesk/tutordesk/internal/service"
	"github.com/tutordesk/tutordesk/internal/types"
)

type AttendanceHandler struct {
	service service.AttendanceService
	log     *logger.Logger
}

func NewAttendanceHandler(service service.AttendanceService, log *logger.Logger) *AttendanceHandler {
	return &AttendanceHandler{
		service: service,
		log:     log,
	}
}

// @Summary Mark attendance
// @Description Record a student as Present or Absent for a subject on a date. Marking again overwrites the status.
// @Tags Attendance
// @Accept json
// @Produce json
// @Param attendance body dto.MarkAttendanceRequest true "Attendance"
// @Success 200 {object} dto.AttendanceResponse
// @Failure 400 {object} ierr.ErrorResponse
// @Failure 404 {object} ierr.ErrorResponse
// @Router /attendance [post]
func (h *AttendanceHandler) MarkAttendance(c *gin.Context) {
	var req dto.MarkAttendanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(invalidRequest(err))
		return
	}

	resp, err := h.service.MarkAttendance(c.Request.Context(), req)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// @Summary Mark a day's register
// @Tags Attendance
// @Accept json
// @Produce json
// @Param register body dto.BulkMarkAttendanceRequest true "Register"
// @Success 200 {object} dto.ListAttendanceResponse
// @Failure 400 {object} ierr.ErrorResponse
// @Router /attendance/bulk [post]
func (h *AttendanceHandler) BulkMarkAttendance(c *gin.Context) {
	var req dto.BulkMarkAttendanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(invalidRequest(err))
		return
	}

	resp, err := h.service.BulkMarkAttendance(c.Request.Context(), req)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// @Summary Get an attendance record
// @Tags Attendance
// @Produce json
// @Param id path string true "Attendance ID"
// @Success 200 {object} dto.AttendanceResponse
// @Failure 404 {object} ierr.ErrorResponse
// @Router /attendance/{id} [get]
func (h *AttendanceHandler) GetAttendance(c *gin.Context) {
	resp, err := h.service.GetAttendance(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// @Summary List attendance
// @Description List one day's attendance (today by default) or a student's history
// @Tags Attendance
// @Produce json
// @Param date query string false "Date (YYYY-MM-DD)"
// @Param student_id query string false "Student ID"
// @Success 200 {object} dto.ListAttendanceResponse
// @Failure 400 {object} ierr.ErrorResponse
// @Router /attendance [get]
func (h *AttendanceHandler) ListAttendance(c *gin.Context) {
	var filter types.AttendanceFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.Error(invalidFilter(err))
		return
	}

	date, err := dateQuery(c, "date")
	if err != nil {
		c.Error(err)
		return
	}
	filter.Date = date

	resp, err := h.service.ListAttendance(c.Request.Context(), &filter)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// @Summary Delete an attendance record
// @Tags Attendance
// @Param id path string true "Attendance ID"
// @Success 204
// @Failure 404 {object} ierr.ErrorResponse
// @Router /attendance/{id} [delete]
func (h *AttendanceHandler) DeleteAttendance(c *gin.Context) {
	if err := h.service.DeleteAttendance(c.Request.Context(), c.Param("id")); err != nil {
		c.Error(err)
		return
	}

	c.Status(http.StatusNoContent)
}
