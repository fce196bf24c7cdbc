package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/edulane/edulane-backend/internal/model"
)

// ErrContentNotFound is returned when a content item does not exist.
var ErrContentNotFound = errors.New("content not found")

// ContentService handles course content business logic.
type ContentService struct {
	contents ContentStore
	courses  CourseStore
}

// NewContentService creates a new ContentService.
func NewContentService(contents ContentStore, courses CourseStore) *ContentService {
	return &ContentService{contents: contents, courses: courses}
}

// ListByCourse returns the contents of a course ordered by order_num.
func (s *ContentService) ListByCourse(ctx context.Context, courseID uuid.UUID) ([]model.Content, error) {
	if _, err := s.courses.GetByID(ctx, courseID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrCourseNotFound
		}
		return nil, fmt.Errorf("get course: %w", err)
	}

	contents, err := s.contents.ListByCourse(ctx, courseID)
	if err != nil {
		return nil, fmt.Errorf("list contents: %w", err)
	}
	return contents, nil
}

// Get returns a single content item, verifying it belongs to the course.
func (s *ContentService) Get(ctx context.Context, courseID, contentID uuid.UUID) (*model.Content, error) {
	content, err := s.contents.GetByID(ctx, contentID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrContentNotFound
		}
		return nil, fmt.Errorf("get content: %w", err)
	}
	if content.CourseID != courseID {
		return nil, ErrContentNotFound
	}
	return content, nil
}

// Create adds a content item to a course. fileURL is set for file-backed
// types; link and youtube contents carry the URL in req.URL instead.
func (s *ContentService) Create(ctx context.Context, courseID uuid.UUID, req *model.CreateContentRequest, fileURL string) (*model.Content, error) {
	if _, err := s.courses.GetByID(ctx, courseID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrCourseNotFound
		}
		return nil, fmt.Errorf("get course: %w", err)
	}

	url := req.URL
	if model.ContentType(req.Type).IsFileBacked() {
		url = fileURL
	}

	content := &model.Content{
		CourseID: courseID,
		Title:    req.Title,
		Type:     model.ContentType(req.Type),
		URL:      url,
		OrderNum: req.OrderNum,
	}
	if err := s.contents.Create(ctx, content); err != nil {
		return nil, fmt.Errorf("create content: %w", err)
	}
	return content, nil
}

// Update applies a partial update to a content item. The content type is
// fixed at creation; only title, URL and ordering can change.
func (s *ContentService) Update(ctx context.Context, courseID, contentID uuid.UUID, req *model.UpdateContentRequest, fileURL string) (*model.Content, error) {
	content, err := s.Get(ctx, courseID, contentID)
	if err != nil {
		return nil, err
	}

	if req.Title != "" {
		content.Title = req.Title
	}
	if req.URL != "" {
		content.URL = req.URL
	}
	if fileURL != "" {
		content.URL = fileURL
	}
	if req.OrderNum != nil {
		content.OrderNum = *req.OrderNum
	}

	if err := s.contents.Update(ctx, content); err != nil {
		return nil, fmt.Errorf("update content: %w", err)
	}
	return content, nil
}

// Delete removes a content item. Completed references in student progress
// rows are left in place; percentages are recomputed against live content
// on every read.
func (s *ContentService) Delete(ctx context.Context, courseID, contentID uuid.UUID) error {
	if _, err := s.Get(ctx, courseID, contentID); err != nil {
		return err
	}
	if err := s.contents.Delete(ctx, contentID); err != nil {
		return fmt.Errorf("delete content: %w", err)
	}
	return nil
}
