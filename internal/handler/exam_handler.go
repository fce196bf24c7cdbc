package handler

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/edulane/edulane-backend/internal/model"
	"github.com/edulane/edulane-backend/internal/response"
	"github.com/edulane/edulane-backend/internal/service"
	"github.com/edulane/edulane-backend/internal/validator"
)

// ExamHandler handles admin exam management endpoints.
type ExamHandler struct {
	examService *service.ExamService
}

// NewExamHandler creates a new ExamHandler.
func NewExamHandler(examService *service.ExamService) *ExamHandler {
	return &ExamHandler{examService: examService}
}

// Get godoc
// GET /api/v1/exams/course/:courseId
// Full exam with answer keys.
func (h *ExamHandler) Get(c *gin.Context) {
	courseID, ok := parseUUIDParam(c, "courseId")
	if !ok {
		return
	}

	exam, err := h.examService.Get(c.Request.Context(), courseID)
	if err != nil {
		failExamAdmin(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"exam": exam})
}

// Create godoc
// POST /api/v1/exams
func (h *ExamHandler) Create(c *gin.Context) {
	var req model.CreateExamRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	exam, err := h.examService.Create(c.Request.Context(), &req)
	if err != nil {
		failExamAdmin(c, err)
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"exam": exam})
}

// Update godoc
// PATCH /api/v1/exams/course/:courseId
func (h *ExamHandler) Update(c *gin.Context) {
	courseID, ok := parseUUIDParam(c, "courseId")
	if !ok {
		return
	}

	var req model.UpdateExamRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	exam, err := h.examService.Update(c.Request.Context(), courseID, &req)
	if err != nil {
		failExamAdmin(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"exam": exam})
}

// Delete godoc
// DELETE /api/v1/exams/course/:courseId
func (h *ExamHandler) Delete(c *gin.Context) {
	courseID, ok := parseUUIDParam(c, "courseId")
	if !ok {
		return
	}

	if err := h.examService.Delete(c.Request.Context(), courseID); err != nil {
		failExamAdmin(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{})
}

// Results godoc
// GET /api/v1/exams/admin/:courseId/results
func (h *ExamHandler) Results(c *gin.Context) {
	courseID, ok := parseUUIDParam(c, "courseId")
	if !ok {
		return
	}

	results, err := h.examService.Results(c.Request.Context(), courseID)
	if err != nil {
		failExamAdmin(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"results": results})
}

// ExportResults godoc
// GET /api/v1/exams/admin/:courseId/results/export
// Streams the results as an XLSX workbook.
func (h *ExamHandler) ExportResults(c *gin.Context) {
	courseID, ok := parseUUIDParam(c, "courseId")
	if !ok {
		return
	}

	data, err := h.examService.ExportResults(c.Request.Context(), courseID)
	if err != nil {
		failExamAdmin(c, err)
		return
	}

	filename := fmt.Sprintf("exam-results-%s.xlsx", courseID)
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", data)
}

func failExamAdmin(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrCourseNotFound), errors.Is(err, service.ErrExamNotFound):
		response.Fail(c, http.StatusNotFound, response.ErrNotFound)
	case errors.Is(err, service.ErrExamExists):
		response.Fail(c, http.StatusConflict, response.ErrExamExists)
	case errors.Is(err, service.ErrInvalidQuestions):
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidPayload)
	default:
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
	}
}
