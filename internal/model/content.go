package model

import (
	"time"

	"github.com/google/uuid"
)

// ContentType enumerates the supported content item kinds.
type ContentType string

const (
	ContentTypeVideo   ContentType = "video"
	ContentTypePDF     ContentType = "pdf"
	ContentTypeImage   ContentType = "image"
	ContentTypeLink    ContentType = "link"
	ContentTypeYoutube ContentType = "youtube"
)

// IsFileBacked reports whether the content type carries an uploaded file
// rather than an external URL.
func (t ContentType) IsFileBacked() bool {
	return t == ContentTypeVideo || t == ContentTypePDF || t == ContentTypeImage
}

// Content represents an ordered item belonging to a course.
type Content struct {
	ID        uuid.UUID   `json:"id"`
	CourseID  uuid.UUID   `json:"course_id"`
	Title     string      `json:"title"`
	Type      ContentType `json:"type"`
	URL       string      `json:"url"`
	OrderNum  int         `json:"order_num"`
	CreatedAt time.Time   `json:"created_at"`
}

// CreateContentRequest is the multipart form payload for adding content.
// File-backed types (video, pdf, image) carry the file itself; link and
// youtube types carry the URL in the form field.
type CreateContentRequest struct {
	Title    string `form:"title" binding:"required,min=1,max=255"`
	Type     string `form:"type" binding:"required,oneof=video pdf image link youtube"`
	URL      string `form:"url" binding:"omitempty,max=1000"`
	OrderNum int    `form:"order_num" binding:"min=0"`
}

// UpdateContentRequest is the multipart form payload for editing content.
type UpdateContentRequest struct {
	Title    string `form:"title" binding:"omitempty,min=1,max=255"`
	URL      string `form:"url" binding:"omitempty,max=1000"`
	OrderNum *int   `form:"order_num" binding:"omitempty,min=0"`
}
