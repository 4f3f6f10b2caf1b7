package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/tutordesk/tutordesk/internal/api/dto"
	"github.com/tutordesk/tutordesk/internal/logger"
	"github.com/tutordesk/tutordesk/internal/service"
)

type SubjectHandler struct {
	service service.SubjectService
	log     *logger.Logger
}

func NewSubjectHandler(service service.SubjectService, log *logger.Logger) *SubjectHandler {
	return &SubjectHandler{
		service: service,
		log:     log,
	}
}

// @Summary Create a subject
// @Tags Subjects
// @Accept json
// @Produce json
// @Param subject body dto.CreateSubjectRequest true "Subject"
// @Success 201 {object} dto.SubjectResponse
// @Failure 400 {object} ierr.ErrorResponse
// @Router /subjects [post]
func (h *SubjectHandler) CreateSubject(c *gin.Context) {
	var req dto.CreateSubjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(invalidRequest(err))
		return
	}

	resp, err := h.service.CreateSubject(c.Request.Context(), req)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusCreated, resp)
}

// @Summary Get a subject
// @Tags Subjects
// @Produce json
// @Param id path string true "Subject ID"
// @Success 200 {object} dto.SubjectResponse
// @Failure 404 {object} ierr.ErrorResponse
// @Router /subjects/{id} [get]
func (h *SubjectHandler) GetSubject(c *gin.Context) {
	resp, err := h.service.GetSubject(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// @Summary List subjects
// @Tags Subjects
// @Produce json
// @Success 200 {object} dto.ListSubjectsResponse
// @Router /subjects [get]
func (h *SubjectHandler) ListSubjects(c *gin.Context) {
	resp, err := h.service.ListSubjects(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// @Summary Update a subject
// @Tags Subjects
// @Accept json
// @Produce json
// @Param id path string true "Subject ID"
// @Param subject body dto.UpdateSubjectRequest true "Subject"
// @Success 200 {object} dto.SubjectResponse
// @Failure 400 {object} ierr.ErrorResponse
// @Failure 404 {object} ierr.ErrorResponse
// @Router /subjects/{id} [put]
func (h *SubjectHandler) UpdateSubject(c *gin.Context) {
	var req dto.UpdateSubjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(invalidRequest(err))
		return
	}

	resp, err := h.service.UpdateSubject(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// @Summary Delete a subject
// @Tags Subjects
// @Param id path string true "Subject ID"
// @Success 204
// @Failure 404 {object} ierr.ErrorResponse
// @Router /subjects/{id} [delete]
func (h *SubjectHandler) DeleteSubject(c *gin.Context) {
	if err := h.service.DeleteSubject(c.Request.Context(), c.Param("id")); err != nil {
		c.Error(err)
		return
	}

	c.Status(http.StatusNoContent)
}
