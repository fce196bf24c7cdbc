package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/edulane/edulane-backend/internal/model"
	"github.com/edulane/edulane-backend/internal/response"
	"github.com/edulane/edulane-backend/internal/service"
	"github.com/edulane/edulane-backend/internal/validator"
)

// ContentHandler handles course content endpoints.
type ContentHandler struct {
	contentService *service.ContentService
	mediaService   *service.MediaService
}

// NewContentHandler creates a new ContentHandler.
func NewContentHandler(contentService *service.ContentService, mediaService *service.MediaService) *ContentHandler {
	return &ContentHandler{contentService: contentService, mediaService: mediaService}
}

// List godoc
// GET /api/v1/content/course/:courseId
// Returns the ordered content list of a course.
func (h *ContentHandler) List(c *gin.Context) {
	courseID, ok := parseUUIDParam(c, "courseId")
	if !ok {
		return
	}

	contents, err := h.contentService.ListByCourse(c.Request.Context(), courseID)
	if err != nil {
		if errors.Is(err, service.ErrCourseNotFound) {
			response.Fail(c, http.StatusNotFound, response.ErrNotFound)
			return
		}
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"contents": contents})
}

// Create godoc
// POST /api/v1/content/course/:courseId
// Multipart form. File-backed types carry the file in the "file" field.
func (h *ContentHandler) Create(c *gin.Context) {
	courseID, ok := parseUUIDParam(c, "courseId")
	if !ok {
		return
	}

	var req model.CreateContentRequest
	if err := c.ShouldBind(&req); err != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, validator.TranslateErrors(err))
		return
	}

	fileURL := ""
	if model.ContentType(req.Type).IsFileBacked() {
		file, header, err := c.Request.FormFile("file")
		if err != nil {
			response.Fail(c, http.StatusBadRequest, response.ErrFileRequired)
			return
		}
		defer file.Close()

		fileURL, err = h.mediaService.SaveContentFile(file, header)
		if err != nil {
			failUpload(c, err)
			return
		}
	}

	content, err := h.contentService.Create(c.Request.Context(), courseID, &req, fileURL)
	if err != nil {
		if errors.Is(err, service.ErrCourseNotFound) {
			response.Fail(c, http.StatusNotFound, response.ErrNotFound)
			return
		}
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"content": content})
}

// Update godoc
// PUT /api/v1/content/course/:courseId/:contentId
func (h *ContentHandler) Update(c *gin.Context) {
	courseID, ok := parseUUIDParam(c, "courseId")
	if !ok {
		return
	}
	contentID, ok := parseUUIDParam(c, "contentId")
	if !ok {
		return
	}

	var req model.UpdateContentRequest
	if err := c.ShouldBind(&req); err != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, validator.TranslateErrors(err))
		return
	}

	fileURL := ""
	if file, header, err := c.Request.FormFile("file"); err == nil {
		defer file.Close()
		fileURL, err = h.mediaService.SaveContentFile(file, header)
		if err != nil {
			failUpload(c, err)
			return
		}
	}

	content, err := h.contentService.Update(c.Request.Context(), courseID, contentID, &req, fileURL)
	if err != nil {
		failContent(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"content": content})
}

// Delete godoc
// DELETE /api/v1/content/course/:courseId/:contentId
func (h *ContentHandler) Delete(c *gin.Context) {
	courseID, ok := parseUUIDParam(c, "courseId")
	if !ok {
		return
	}
	contentID, ok := parseUUIDParam(c, "contentId")
	if !ok {
		return
	}

	if err := h.contentService.Delete(c.Request.Context(), courseID, contentID); err != nil {
		failContent(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{})
}

func failContent(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrCourseNotFound), errors.Is(err, service.ErrContentNotFound):
		response.Fail(c, http.StatusNotFound, response.ErrNotFound)
	default:
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
	}
}
