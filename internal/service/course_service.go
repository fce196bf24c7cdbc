package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/edulane/edulane-backend/internal/model"
	"github.com/edulane/edulane-backend/internal/response"
)

// Domain errors.
var ErrCourseNotFound = errors.New("course not found")

// CourseService handles course catalog business logic.
type CourseService struct {
	courses CourseStore
}

// NewCourseService creates a new CourseService.
func NewCourseService(courses CourseStore) *CourseService {
	return &CourseService{courses: courses}
}

// List retrieves courses with pagination, optionally filtered by category.
func (s *CourseService) List(ctx context.Context, category string, page, perPage int) ([]model.Course, *response.Pagination, error) {
	if page < 1 {
		page = 1
	}
	if perPage < 1 {
		perPage = 10
	}
	if perPage > 100 {
		perPage = 100
	}

	limit := perPage
	offset := (page - 1) * perPage

	courses, total, err := s.courses.ListPaginated(ctx, category, limit, offset)
	if err != nil {
		return nil, nil, err
	}

	if courses == nil {
		courses = []model.Course{}
	}

	totalPages := (total + perPage - 1) / perPage

	pagination := &response.Pagination{
		Page:       page,
		PerPage:    perPage,
		TotalItems: total,
		TotalPages: totalPages,
	}

	return courses, pagination, nil
}

// Get retrieves a single course.
func (s *CourseService) Get(ctx context.Context, id uuid.UUID) (*model.Course, error) {
	course, err := s.courses.GetByID(ctx, id)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrCourseNotFound
	}
	return course, err
}

// Create inserts a new course.
func (s *CourseService) Create(ctx context.Context, req *model.CreateCourseRequest) (*model.Course, error) {
	course := &model.Course{
		Name:          req.Name,
		Description:   req.Description,
		Category:      req.Category,
		Fee:           req.Fee,
		ThumbnailURL:  req.ThumbnailURL,
		ReviewEnabled: true,
	}
	if req.ReviewEnabled != nil {
		course.ReviewEnabled = *req.ReviewEnabled
	}

	if err := s.courses.Create(ctx, course); err != nil {
		return nil, fmt.Errorf("create course: %w", err)
	}
	return course, nil
}

// Update patches a course's mutable fields.
func (s *CourseService) Update(ctx context.Context, id uuid.UUID, req *model.UpdateCourseRequest) (*model.Course, error) {
	course, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != "" {
		course.Name = req.Name
	}
	if req.Description != nil {
		course.Description = *req.Description
	}
	if req.Category != "" {
		course.Category = req.Category
	}
	if req.Fee != nil {
		course.Fee = *req.Fee
	}
	if req.ThumbnailURL != nil {
		course.ThumbnailURL = *req.ThumbnailURL
	}
	if req.ReviewEnabled != nil {
		course.ReviewEnabled = *req.ReviewEnabled
	}

	if err := s.courses.Update(ctx, course); err != nil {
		return nil, fmt.Errorf("update course: %w", err)
	}
	return course, nil
}

// Delete removes a course and, via database cascade, its contents, exam,
// and reviews. Enrollments keep their rows; listings filter the dangling
// course reference.
func (s *CourseService) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}
	return s.courses.Delete(ctx, id)
}
