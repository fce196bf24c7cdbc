package model

import (
	"time"

	"github.com/google/uuid"
)

// Review is a student's rating and optional comment for a course,
// one per student per course.
type Review struct {
	ID        uuid.UUID `json:"id"`
	StudentID int       `json:"student_id"`
	CourseID  uuid.UUID `json:"course_id"`
	Rating    int       `json:"rating"`
	Comment   string    `json:"comment,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ReviewWithStudent is a review joined with the reviewer's name.
type ReviewWithStudent struct {
	Review
	StudentName string `json:"student_name"`
}

// ReviewRequest is the payload for creating or updating a review.
// Rating is validated in the handler so the missing-rating case yields the
// dedicated RATING_REQUIRED code rather than a generic validation error.
type ReviewRequest struct {
	Rating  int    `json:"rating" binding:"omitempty,min=1,max=5"`
	Comment string `json:"comment" binding:"omitempty,max=2000"`
}
