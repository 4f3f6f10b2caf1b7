package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/tutordesk/tutordesk/internal/api/dto"
	"github.com/tutordesk/tutordesk/internal/logger"
	"github.com/tutordesk/tutordesk/internal/service"
	"github.com/tutordesk/tutordesk/internal/types"
)

type StudentHandler struct {
	service     service.StudentService
	subjectFees service.StudentSubjectService
	log         *logger.Logger
}

func NewStudentHandler(
	service service.StudentService,
	subjectFees service.StudentSubjectService,
	log *logger.Logger,
) *StudentHandler {
	return &StudentHandler{
		service:     service,
		subjectFees: subjectFees,
		log:         log,
	}
}

// @Summary Create a student
// @Description Create a student, optionally enrolling them in subjects
// @Tags Students
// @Accept json
// @Produce json
// @Param student body dto.CreateStudentRequest true "Student"
// @Success 201 {object} dto.StudentResponse
// @Failure 400 {object} ierr.ErrorResponse
// @Failure 500 {object} ierr.ErrorResponse
// @Router /students [post]
func (h *StudentHandler) CreateStudent(c *gin.Context) {
	var req dto.CreateStudentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(invalidRequest(err))
		return
	}

	resp, err := h.service.CreateStudent(c.Request.Context(), req)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusCreated, resp)
}

// @Summary Get a student
// @Tags Students
// @Produce json
// @Param id path string true "Student ID"
// @Success 200 {object} dto.StudentResponse
// @Failure 404 {object} ierr.ErrorResponse
// @Router /students/{id} [get]
func (h *StudentHandler) GetStudent(c *gin.Context) {
	resp, err := h.service.GetStudent(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// @Summary List students
// @Description List students ordered by name
// @Tags Students
// @Produce json
// @Param filter query types.StudentFilter false "Filter"
// @Success 200 {object} dto.ListStudentsResponse
// @Failure 400 {object} ierr.ErrorResponse
// @Router /students [get]
func (h *StudentHandler) ListStudents(c *gin.Context) {
	var filter types.StudentFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.Error(invalidFilter(err))
		return
	}

	resp, err := h.service.ListStudents(c.Request.Context(), &filter)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// @Summary Update a student
// @Description Update a student. subject_ids, when present, replaces the subject set.
// @Tags Students
// @Accept json
// @Produce json
// @Param id path string true "Student ID"
// @Param student body dto.UpdateStudentRequest true "Student"
// @Success 200 {object} dto.StudentResponse
// @Failure 400 {object} ierr.ErrorResponse
// @Failure 404 {object} ierr.ErrorResponse
// @Router /students/{id} [put]
func (h *StudentHandler) UpdateStudent(c *gin.Context) {
	var req dto.UpdateStudentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(invalidRequest(err))
		return
	}

	resp, err := h.service.UpdateStudent(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// @Summary Delete a student
// @Description Delete a student with their assignments, attendance, payments and invoices
// @Tags Students
// @Param id path string true "Student ID"
// @Success 204
// @Failure 404 {object} ierr.ErrorResponse
// @Router /students/{id} [delete]
func (h *StudentHandler) DeleteStudent(c *gin.Context) {
	if err := h.service.DeleteStudent(c.Request.Context(), c.Param("id")); err != nil {
		c.Error(err)
		return
	}

	c.Status(http.StatusNoContent)
}

// @Summary List a student's subjects
// @Tags Students
// @Produce json
// @Param id path string true "Student ID"
// @Success 200 {array} dto.StudentSubjectResponse
// @Failure 404 {object} ierr.ErrorResponse
// @Router /students/{id}/subjects [get]
func (h *StudentHandler) ListSubjects(c *gin.Context) {
	resp, err := h.subjectFees.ListStudentSubjects(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// @Summary Assign a subject
// @Description Enroll a student in a subject or change their custom fee
// @Tags Students
// @Accept json
// @Produce json
// @Param id path string true "Student ID"
// @Param assignment body dto.AssignSubjectRequest true "Assignment"
// @Success 200 {object} dto.StudentSubjectResponse
// @Failure 400 {object} ierr.ErrorResponse
// @Failure 404 {object} ierr.ErrorResponse
// @Router /students/{id}/subjects [post]
func (h *StudentHandler) AssignSubject(c *gin.Context) {
	var req dto.AssignSubjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(invalidRequest(err))
		return
	}

	resp, err := h.subjectFees.AssignSubject(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// @Summary Remove a subject
// @Tags Students
// @Param id path string true "Student ID"
// @Param subject_id path string true "Subject ID"
// @Success 204
// @Failure 404 {object} ierr.ErrorResponse
// @Router /students/{id}/subjects/{subject_id} [delete]
func (h *StudentHandler) RemoveSubject(c *gin.Context) {
	if err := h.subjectFees.RemoveSubject(c.Request.Context(), c.Param("id"), c.Param("subject_id")); err != nil {
		c.Error(err)
		return
	}

	c.Status(http.StatusNoContent)
}
