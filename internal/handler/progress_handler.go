package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/edulane/edulane-backend/internal/middleware"
	"github.com/edulane/edulane-backend/internal/response"
	"github.com/edulane/edulane-backend/internal/service"
)

// ProgressHandler handles student progress endpoints.
type ProgressHandler struct {
	progressService *service.ProgressService
}

// NewProgressHandler creates a new ProgressHandler.
func NewProgressHandler(progressService *service.ProgressService) *ProgressHandler {
	return &ProgressHandler{progressService: progressService}
}

// Get godoc
// GET /api/v1/progress/:courseId
// The student's progress snapshot with the derived percentage.
func (h *ProgressHandler) Get(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenRequired)
		return
	}
	courseID, ok := parseUUIDParam(c, "courseId")
	if !ok {
		return
	}

	snapshot, err := h.progressService.GetProgress(c.Request.Context(), claims.UserID, courseID)
	if err != nil {
		failProgress(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"progress": snapshot})
}

// CompleteContent godoc
// PUT /api/v1/progress/:courseId/complete/:contentId
// Marks a content item completed. Idempotent.
func (h *ProgressHandler) CompleteContent(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenRequired)
		return
	}
	courseID, ok := parseUUIDParam(c, "courseId")
	if !ok {
		return
	}
	contentID, ok := parseUUIDParam(c, "contentId")
	if !ok {
		return
	}

	snapshot, err := h.progressService.MarkContentComplete(c.Request.Context(), claims.UserID, courseID, contentID)
	if err != nil {
		failProgress(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"progress": snapshot})
}

func failProgress(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrEnrollmentNotFound):
		response.Fail(c, http.StatusNotFound, response.ErrNotFound)
	case errors.Is(err, service.ErrEnrollmentNotApproved):
		response.Fail(c, http.StatusForbidden, response.ErrEnrollmentNotApproved)
	case errors.Is(err, service.ErrContentNotFound):
		response.Fail(c, http.StatusNotFound, response.ErrNotFound)
	default:
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
	}
}
