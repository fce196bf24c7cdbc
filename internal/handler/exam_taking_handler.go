package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/edulane/edulane-backend/internal/middleware"
	"github.com/edulane/edulane-backend/internal/model"
	"github.com/edulane/edulane-backend/internal/response"
	"github.com/edulane/edulane-backend/internal/service"
	"github.com/edulane/edulane-backend/internal/validator"
)

// ExamTakingHandler handles the student exam flow.
type ExamTakingHandler struct {
	takingService *service.ExamTakingService
}

// NewExamTakingHandler creates a new ExamTakingHandler.
func NewExamTakingHandler(takingService *service.ExamTakingService) *ExamTakingHandler {
	return &ExamTakingHandler{takingService: takingService}
}

// GetPaper godoc
// GET /api/v1/exams/take/:courseId
// The sanitized exam paper. Requires 100% content completion.
func (h *ExamTakingHandler) GetPaper(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenRequired)
		return
	}
	courseID, ok := parseUUIDParam(c, "courseId")
	if !ok {
		return
	}

	paper, err := h.takingService.GetPaper(c.Request.Context(), claims.UserID, courseID)
	if err != nil {
		failExamTaking(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"exam": paper})
}

// Submit godoc
// POST /api/v1/exams/:courseId/submit
// Grades the one permitted submission and returns the outcome.
func (h *ExamTakingHandler) Submit(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenRequired)
		return
	}
	courseID, ok := parseUUIDParam(c, "courseId")
	if !ok {
		return
	}

	var req model.SubmitExamRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	outcome, err := h.takingService.Submit(c.Request.Context(), claims.UserID, courseID, &req)
	if err != nil {
		failExamTaking(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"result": outcome})
}

func failExamTaking(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrEnrollmentNotFound):
		response.Fail(c, http.StatusNotFound, response.ErrNotFound)
	case errors.Is(err, service.ErrEnrollmentNotApproved):
		response.Fail(c, http.StatusForbidden, response.ErrEnrollmentNotApproved)
	case errors.Is(err, service.ErrExamLocked):
		response.Fail(c, http.StatusForbidden, response.ErrExamLocked)
	case errors.Is(err, service.ErrExamAttempted):
		response.Fail(c, http.StatusConflict, response.ErrExamAlreadyAttempted)
	case errors.Is(err, service.ErrExamNoQuestions):
		response.Fail(c, http.StatusNotFound, response.ErrNotFound)
	default:
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
	}
}
