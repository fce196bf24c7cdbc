package model

import (
	"time"

	"github.com/google/uuid"
)

// EnrollmentStatus enumerates enrollment approval states.
type EnrollmentStatus string

const (
	EnrollmentStatusPending  EnrollmentStatus = "pending"
	EnrollmentStatusApproved EnrollmentStatus = "approved"
	EnrollmentStatusRejected EnrollmentStatus = "rejected"
)

// Enrollment joins a student to a course with an approval state.
type Enrollment struct {
	ID              uuid.UUID        `json:"id"`
	StudentID       int              `json:"student_id"`
	CourseID        uuid.UUID        `json:"course_id"`
	Status          EnrollmentStatus `json:"status"`
	PaymentProofURL string           `json:"payment_proof_url,omitempty"`
	EnrolledAt      time.Time        `json:"enrolled_at"`
	ApprovedAt      *time.Time       `json:"approved_at,omitempty"`
}

// EnrollmentWithCourse is an enrollment row joined with its course for listings.
// Course is nil when the course has since been deleted; such rows are filtered
// out of listings rather than surfaced as errors.
type EnrollmentWithCourse struct {
	Enrollment
	Course      *Course `json:"course,omitempty"`
	StudentName string  `json:"student_name,omitempty"`
}
