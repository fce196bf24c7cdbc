package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/edulane/edulane-backend/internal/middleware"
	"github.com/edulane/edulane-backend/internal/model"
	"github.com/edulane/edulane-backend/internal/response"
	"github.com/edulane/edulane-backend/internal/service"
)

// EnrollmentHandler handles enrollment endpoints for students and admins.
type EnrollmentHandler struct {
	enrollmentService *service.EnrollmentService
	mediaService      *service.MediaService
}

// NewEnrollmentHandler creates a new EnrollmentHandler.
func NewEnrollmentHandler(enrollmentService *service.EnrollmentService, mediaService *service.MediaService) *EnrollmentHandler {
	return &EnrollmentHandler{enrollmentService: enrollmentService, mediaService: mediaService}
}

// Enroll godoc
// POST /api/v1/enrollments/:id
// Multipart form with a required "payment_proof" image. Creates a pending
// enrollment, or reopens a rejected one.
func (h *EnrollmentHandler) Enroll(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenRequired)
		return
	}
	courseID, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	file, header, err := c.Request.FormFile("payment_proof")
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrFileRequired)
		return
	}
	defer file.Close()

	proofURL, err := h.mediaService.SaveImage(file, header)
	if err != nil {
		failUpload(c, err)
		return
	}

	enrollment, err := h.enrollmentService.Enroll(c.Request.Context(), claims.UserID, courseID, proofURL)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrCourseNotFound):
			response.Fail(c, http.StatusNotFound, response.ErrNotFound)
		case errors.Is(err, service.ErrAlreadyEnrolled):
			response.Fail(c, http.StatusConflict, response.ErrAlreadyEnrolled)
		default:
			response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		}
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"enrollment": enrollment})
}

// ListMine godoc
// GET /api/v1/enrollments/my-enrollments
// The student's own enrollments with course details.
func (h *EnrollmentHandler) ListMine(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenRequired)
		return
	}

	enrollments, err := h.enrollmentService.ListMine(c.Request.Context(), claims.UserID)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"enrollments": enrollments})
}

// ListAll godoc
// GET /api/v1/enrollments?status=
// Admin listing, optionally filtered by status.
func (h *EnrollmentHandler) ListAll(c *gin.Context) {
	enrollments, err := h.enrollmentService.ListAll(c.Request.Context(), c.Query("status"))
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"enrollments": enrollments})
}

// Approve godoc
// PUT /api/v1/enrollments/:id/approve
func (h *EnrollmentHandler) Approve(c *gin.Context) {
	h.decide(c, h.enrollmentService.Approve)
}

// Reject godoc
// PUT /api/v1/enrollments/:id/reject
func (h *EnrollmentHandler) Reject(c *gin.Context) {
	h.decide(c, h.enrollmentService.Reject)
}

func (h *EnrollmentHandler) decide(c *gin.Context, fn func(context.Context, uuid.UUID) (*model.Enrollment, error)) {
	enrollmentID, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	enrollment, err := fn(c.Request.Context(), enrollmentID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrEnrollmentNotFound):
			response.Fail(c, http.StatusNotFound, response.ErrNotFound)
		case errors.Is(err, service.ErrEnrollmentNotPending):
			response.Fail(c, http.StatusConflict, response.ErrEnrollmentNotPending)
		default:
			response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		}
		return
	}

	response.Success(c, http.StatusOK, gin.H{"enrollment": enrollment})
}
