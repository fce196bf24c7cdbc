package handler

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/edulane/edulane-backend/internal/middleware"
	"github.com/edulane/edulane-backend/internal/model"
	"github.com/edulane/edulane-backend/internal/response"
	"github.com/edulane/edulane-backend/internal/service"
	"github.com/edulane/edulane-backend/internal/validator"
)

// CertificateHandler handles certificate endpoints.
type CertificateHandler struct {
	certificateService *service.CertificateService
}

// NewCertificateHandler creates a new CertificateHandler.
func NewCertificateHandler(certificateService *service.CertificateService) *CertificateHandler {
	return &CertificateHandler{certificateService: certificateService}
}

// ListMine godoc
// GET /api/v1/certificates
// The student's earned certificates.
func (h *CertificateHandler) ListMine(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenRequired)
		return
	}

	certs, err := h.certificateService.ListMine(c.Request.Context(), claims.UserID)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"certificates": certs})
}

// GetMine godoc
// GET /api/v1/certificates/course/:courseId
func (h *CertificateHandler) GetMine(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenRequired)
		return
	}
	courseID, ok := parseUUIDParam(c, "courseId")
	if !ok {
		return
	}

	cert, err := h.certificateService.GetMine(c.Request.Context(), claims.UserID, courseID)
	if err != nil {
		failCertificate(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"certificate": cert})
}

// DownloadMine godoc
// GET /api/v1/certificates/course/:courseId/download
// Streams the certificate as a PDF.
func (h *CertificateHandler) DownloadMine(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenRequired)
		return
	}
	courseID, ok := parseUUIDParam(c, "courseId")
	if !ok {
		return
	}

	cert, err := h.certificateService.GetMine(c.Request.Context(), claims.UserID, courseID)
	if err != nil {
		failCertificate(c, err)
		return
	}

	pdf, err := h.certificateService.RenderPDF(cert)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	filename := fmt.Sprintf("%s.pdf", cert.CertificateID)
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, "application/pdf", pdf)
}

// ListAll godoc
// GET /api/v1/certificates/admin/all
func (h *CertificateHandler) ListAll(c *gin.Context) {
	certs, err := h.certificateService.ListAll(c.Request.Context())
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"certificates": certs})
}

// Send godoc
// POST /api/v1/certificates/send
// Manual override path. Requires the student's completion to be at or
// above the override threshold.
func (h *CertificateHandler) Send(c *gin.Context) {
	var req model.SendCertificateRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	courseID, err := uuid.Parse(req.CourseID)
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	cert, err := h.certificateService.SendByAdmin(c.Request.Context(), req.StudentID, courseID)
	if err != nil {
		failCertificate(c, err)
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"certificate": cert})
}

func failCertificate(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrCertificateNotFound),
		errors.Is(err, service.ErrUserNotFound),
		errors.Is(err, service.ErrCourseNotFound):
		response.Fail(c, http.StatusNotFound, response.ErrNotFound)
	case errors.Is(err, service.ErrCertNotEligible):
		response.Fail(c, http.StatusForbidden, response.ErrCertNotEligible)
	default:
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
	}
}
