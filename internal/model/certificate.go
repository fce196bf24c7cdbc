package model

import (
	"time"

	"github.com/google/uuid"
)

// CertificateReason distinguishes the two independent eligibility paths.
type CertificateReason string

const (
	// ReasonExamPass is the automatic path: a passing exam result.
	ReasonExamPass CertificateReason = "exam_pass"
	// ReasonAdminOverride is the manual path: an admin sends the certificate
	// for a progress record at or above the override threshold.
	ReasonAdminOverride CertificateReason = "admin_override"
)

// Certificate is an immutable proof-of-completion record.
type Certificate struct {
	ID            uuid.UUID         `json:"id"`
	CertificateID string            `json:"certificate_id"`
	StudentID     int               `json:"student_id"`
	CourseID      uuid.UUID         `json:"course_id"`
	Score         int               `json:"score"`
	Reason        CertificateReason `json:"reason"`
	IssuedAt      time.Time         `json:"issued_at"`
}

// CertificateWithNames is a certificate joined with student and course names
// for listings and PDF rendering.
type CertificateWithNames struct {
	Certificate
	StudentName string `json:"student_name"`
	CourseName  string `json:"course_name"`
}

// SendCertificateRequest is the admin payload for the manual override path.
type SendCertificateRequest struct {
	StudentID int    `json:"student_id" binding:"required,min=1"`
	CourseID  string `json:"course_id" binding:"required,uuid"`
}
