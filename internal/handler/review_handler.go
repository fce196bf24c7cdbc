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

// ReviewHandler handles course review endpoints.
type ReviewHandler struct {
	reviewService *service.ReviewService
}

// NewReviewHandler creates a new ReviewHandler.
func NewReviewHandler(reviewService *service.ReviewService) *ReviewHandler {
	return &ReviewHandler{reviewService: reviewService}
}

// List godoc
// GET /api/v1/courses/:courseId/reviews
// Public review listing.
func (h *ReviewHandler) List(c *gin.Context) {
	courseID, ok := parseUUIDParam(c, "courseId")
	if !ok {
		return
	}

	reviews, err := h.reviewService.ListByCourse(c.Request.Context(), courseID)
	if err != nil {
		failReview(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"reviews": reviews})
}

// Create godoc
// POST /api/v1/courses/:courseId/reviews
func (h *ReviewHandler) Create(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenRequired)
		return
	}
	courseID, ok := parseUUIDParam(c, "courseId")
	if !ok {
		return
	}

	req, ok := bindReview(c)
	if !ok {
		return
	}

	review, err := h.reviewService.Create(c.Request.Context(), claims.UserID, courseID, req)
	if err != nil {
		failReview(c, err)
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"review": review})
}

// Update godoc
// PUT /api/v1/courses/:courseId/reviews
func (h *ReviewHandler) Update(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenRequired)
		return
	}
	courseID, ok := parseUUIDParam(c, "courseId")
	if !ok {
		return
	}

	req, ok := bindReview(c)
	if !ok {
		return
	}

	review, err := h.reviewService.Update(c.Request.Context(), claims.UserID, courseID, req)
	if err != nil {
		failReview(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"review": review})
}

// Delete godoc
// DELETE /api/v1/courses/:courseId/reviews
func (h *ReviewHandler) Delete(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenRequired)
		return
	}
	courseID, ok := parseUUIDParam(c, "courseId")
	if !ok {
		return
	}

	if err := h.reviewService.Delete(c.Request.Context(), claims.UserID, courseID); err != nil {
		failReview(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{})
}

// bindReview binds the payload and enforces the rating separately so a
// missing rating gets its dedicated error code.
func bindReview(c *gin.Context) (*model.ReviewRequest, bool) {
	var req model.ReviewRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return nil, false
	}
	if req.Rating == 0 {
		response.Fail(c, http.StatusBadRequest, response.ErrRatingRequired)
		return nil, false
	}
	return &req, true
}

func failReview(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrCourseNotFound), errors.Is(err, service.ErrReviewNotFound):
		response.Fail(c, http.StatusNotFound, response.ErrNotFound)
	case errors.Is(err, service.ErrEnrollmentNotFound):
		response.Fail(c, http.StatusNotFound, response.ErrNotFound)
	case errors.Is(err, service.ErrEnrollmentNotApproved):
		response.Fail(c, http.StatusForbidden, response.ErrEnrollmentNotApproved)
	case errors.Is(err, service.ErrReviewDisabled):
		response.Fail(c, http.StatusForbidden, response.ErrReviewDisabled)
	case errors.Is(err, service.ErrReviewExists):
		response.Fail(c, http.StatusConflict, response.ErrReviewExists)
	default:
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
	}
}
