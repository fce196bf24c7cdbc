package model

import (
	"time"

	"github.com/google/uuid"
)

// Progress tracks a student's content completion and exam outcome for a course.
// The completion percentage is not stored — it is recomputed on read against
// the course's current content set.
type Progress struct {
	ID                   uuid.UUID   `json:"id"`
	StudentID            int         `json:"student_id"`
	CourseID             uuid.UUID   `json:"course_id"`
	CompletedContents    []uuid.UUID `json:"completed_contents"`
	ExamAttempted        bool        `json:"exam_attempted"`
	ExamPassed           bool        `json:"exam_passed"`
	ExamScore            *int        `json:"exam_score,omitempty"`
	CertificateGenerated bool        `json:"certificate_generated"`
	LastAccessedAt       time.Time   `json:"last_accessed_at"`
}

// ProgressSnapshot is the client-facing view of a Progress with the derived
// percentage filled in.
type ProgressSnapshot struct {
	CourseID             uuid.UUID   `json:"course_id"`
	CompletedContents    []uuid.UUID `json:"completed_contents"`
	TotalContents        int         `json:"total_contents"`
	ProgressPercentage   int         `json:"progress_percentage"`
	ExamAttempted        bool        `json:"exam_attempted"`
	ExamPassed           bool        `json:"exam_passed"`
	ExamScore            *int        `json:"exam_score,omitempty"`
	CertificateGenerated bool        `json:"certificate_generated"`
	LastAccessedAt       time.Time   `json:"last_accessed_at"`
}

// ExamResult is a per-student exam outcome row for admin course results.
type ExamResult struct {
	StudentID      int       `json:"student_id"`
	StudentName    string    `json:"student_name"`
	StudentEmail   string    `json:"student_email"`
	ExamScore      int       `json:"exam_score"`
	ExamPassed     bool      `json:"exam_passed"`
	LastAccessedAt time.Time `json:"last_accessed_at"`
}
