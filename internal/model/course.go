package model

import (
	"time"

	"github.com/google/uuid"
)

// Course represents a catalog entry.
type Course struct {
	ID            uuid.UUID `json:"id"`
	Name          string    `json:"name"`
	Description   string    `json:"description"`
	Category      string    `json:"category"`
	Fee           float64   `json:"fee"`
	ThumbnailURL  string    `json:"thumbnail_url,omitempty"`
	ReviewEnabled bool      `json:"review_enabled"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// CreateCourseRequest is the payload for creating a course. Sent as JSON or
// as a multipart form when a thumbnail file accompanies it.
type CreateCourseRequest struct {
	Name          string  `json:"name" form:"name" binding:"required,min=3,max=255"`
	Description   string  `json:"description" form:"description" binding:"max=5000"`
	Category      string  `json:"category" form:"category" binding:"required,min=2,max=100"`
	Fee           float64 `json:"fee" form:"fee" binding:"min=0"`
	ThumbnailURL  string  `json:"thumbnail_url" form:"thumbnail_url" binding:"omitempty,max=500"`
	ReviewEnabled *bool   `json:"review_enabled" form:"review_enabled" binding:"omitempty"`
}

// UpdateCourseRequest is the payload for updating a course.
type UpdateCourseRequest struct {
	Name          string   `json:"name" form:"name" binding:"omitempty,min=3,max=255"`
	Description   *string  `json:"description" form:"description" binding:"omitempty,max=5000"`
	Category      string   `json:"category" form:"category" binding:"omitempty,min=2,max=100"`
	Fee           *float64 `json:"fee" form:"fee" binding:"omitempty,min=0"`
	ThumbnailURL  *string  `json:"thumbnail_url" form:"thumbnail_url" binding:"omitempty,max=500"`
	ReviewEnabled *bool    `json:"review_enabled" form:"review_enabled" binding:"omitempty"`
}
