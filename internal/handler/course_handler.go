package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/edulane/edulane-backend/internal/model"
	"github.com/edulane/edulane-backend/internal/response"
	"github.com/edulane/edulane-backend/internal/service"
	"github.com/edulane/edulane-backend/internal/validator"
)

// CourseHandler handles catalog endpoints.
type CourseHandler struct {
	courseService *service.CourseService
	mediaService  *service.MediaService
}

// NewCourseHandler creates a new CourseHandler.
func NewCourseHandler(courseService *service.CourseService, mediaService *service.MediaService) *CourseHandler {
	return &CourseHandler{courseService: courseService, mediaService: mediaService}
}

// List godoc
// GET /api/v1/courses?category=&page=&per_page=
// Public course catalog with optional category filter.
func (h *CourseHandler) List(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	perPage, _ := strconv.Atoi(c.DefaultQuery("per_page", "20"))
	category := c.Query("category")

	courses, pagination, err := h.courseService.List(c.Request.Context(), category, page, perPage)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.SuccessWithPagination(c, http.StatusOK, gin.H{"courses": courses}, pagination)
}

// Get godoc
// GET /api/v1/courses/:courseId
func (h *CourseHandler) Get(c *gin.Context) {
	courseID, ok := parseUUIDParam(c, "courseId")
	if !ok {
		return
	}

	course, err := h.courseService.Get(c.Request.Context(), courseID)
	if err != nil {
		if errors.Is(err, service.ErrCourseNotFound) {
			response.Fail(c, http.StatusNotFound, response.ErrNotFound)
			return
		}
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"course": course})
}

// Create godoc
// POST /api/v1/courses
// Admin only. Accepts an optional multipart thumbnail image.
func (h *CourseHandler) Create(c *gin.Context) {
	var req model.CreateCourseRequest
	if err := c.ShouldBind(&req); err != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, validator.TranslateErrors(err))
		return
	}

	if url, ok := h.saveThumbnail(c); !ok {
		return
	} else if url != "" {
		req.ThumbnailURL = url
	}

	course, err := h.courseService.Create(c.Request.Context(), &req)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"course": course})
}

// Update godoc
// PUT /api/v1/courses/:courseId
func (h *CourseHandler) Update(c *gin.Context) {
	courseID, ok := parseUUIDParam(c, "courseId")
	if !ok {
		return
	}

	var req model.UpdateCourseRequest
	if err := c.ShouldBind(&req); err != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, validator.TranslateErrors(err))
		return
	}

	if url, ok := h.saveThumbnail(c); !ok {
		return
	} else if url != "" {
		req.ThumbnailURL = &url
	}

	course, err := h.courseService.Update(c.Request.Context(), courseID, &req)
	if err != nil {
		if errors.Is(err, service.ErrCourseNotFound) {
			response.Fail(c, http.StatusNotFound, response.ErrNotFound)
			return
		}
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"course": course})
}

// Delete godoc
// DELETE /api/v1/courses/:courseId
func (h *CourseHandler) Delete(c *gin.Context) {
	courseID, ok := parseUUIDParam(c, "courseId")
	if !ok {
		return
	}

	if err := h.courseService.Delete(c.Request.Context(), courseID); err != nil {
		if errors.Is(err, service.ErrCourseNotFound) {
			response.Fail(c, http.StatusNotFound, response.ErrNotFound)
			return
		}
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, gin.H{})
}

// saveThumbnail stores the optional thumbnail form file. The bool result is
// false when an error response has already been written.
func (h *CourseHandler) saveThumbnail(c *gin.Context) (string, bool) {
	file, header, err := c.Request.FormFile("thumbnail")
	if err != nil {
		// Absent file is fine, the field is optional.
		return "", true
	}
	defer file.Close()

	url, err := h.mediaService.SaveImage(file, header)
	if err != nil {
		failUpload(c, err)
		return "", false
	}
	return url, true
}

// parseUUIDParam parses a UUID path parameter, writing the error response
// itself when the value is malformed.
func parseUUIDParam(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return uuid.Nil, false
	}
	return id, true
}

// failUpload maps media service errors to responses.
func failUpload(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrUnsupportedFileType):
		response.Fail(c, http.StatusBadRequest, response.ErrUnsupportedFile)
	case errors.Is(err, service.ErrFileTooLarge):
		response.Fail(c, http.StatusBadRequest, response.ErrFileTooLarge)
	default:
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
	}
}
