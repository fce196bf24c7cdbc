package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/edulane/edulane-backend/internal/model"
)

// Sentinel errors for review operations.
var (
	ErrReviewNotFound = errors.New("review not found")
	ErrReviewExists   = errors.New("review already exists")
	ErrReviewDisabled = errors.New("reviews are disabled for this course")
)

// ReviewService handles course reviews. One review per student per course,
// gated on an approved enrollment and the course's review toggle.
type ReviewService struct {
	reviews     ReviewStore
	courses     CourseStore
	enrollments *EnrollmentService
}

// NewReviewService creates a new ReviewService.
func NewReviewService(reviews ReviewStore, courses CourseStore, enrollments *EnrollmentService) *ReviewService {
	return &ReviewService{reviews: reviews, courses: courses, enrollments: enrollments}
}

// ListByCourse returns a course's reviews with reviewer names. Public.
func (s *ReviewService) ListByCourse(ctx context.Context, courseID uuid.UUID) ([]model.ReviewWithStudent, error) {
	if _, err := s.courses.GetByID(ctx, courseID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrCourseNotFound
		}
		return nil, fmt.Errorf("get course: %w", err)
	}
	reviews, err := s.reviews.ListByCourse(ctx, courseID)
	if err != nil {
		return nil, fmt.Errorf("list reviews: %w", err)
	}
	return reviews, nil
}

// Create submits a student's review for a course.
func (s *ReviewService) Create(ctx context.Context, studentID int, courseID uuid.UUID, req *model.ReviewRequest) (*model.Review, error) {
	if err := s.gate(ctx, studentID, courseID); err != nil {
		return nil, err
	}

	if _, err := s.reviews.GetByStudentAndCourse(ctx, studentID, courseID); err == nil {
		return nil, ErrReviewExists
	} else if !errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("get review: %w", err)
	}

	review := &model.Review{
		StudentID: studentID,
		CourseID:  courseID,
		Rating:    req.Rating,
		Comment:   req.Comment,
	}
	if err := s.reviews.Create(ctx, review); err != nil {
		return nil, fmt.Errorf("create review: %w", err)
	}
	return review, nil
}

// Update replaces the student's existing review for a course.
func (s *ReviewService) Update(ctx context.Context, studentID int, courseID uuid.UUID, req *model.ReviewRequest) (*model.Review, error) {
	if err := s.gate(ctx, studentID, courseID); err != nil {
		return nil, err
	}

	review, err := s.reviews.GetByStudentAndCourse(ctx, studentID, courseID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrReviewNotFound
		}
		return nil, fmt.Errorf("get review: %w", err)
	}

	review.Rating = req.Rating
	review.Comment = req.Comment
	if err := s.reviews.Update(ctx, review); err != nil {
		return nil, fmt.Errorf("update review: %w", err)
	}
	return review, nil
}

// Delete removes the student's review for a course. Deletion is gated the
// same way as Create and Update: the review toggle covers all mutations.
func (s *ReviewService) Delete(ctx context.Context, studentID int, courseID uuid.UUID) error {
	if err := s.gate(ctx, studentID, courseID); err != nil {
		return err
	}

	review, err := s.reviews.GetByStudentAndCourse(ctx, studentID, courseID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrReviewNotFound
		}
		return fmt.Errorf("get review: %w", err)
	}
	if err := s.reviews.Delete(ctx, review.ID); err != nil {
		return fmt.Errorf("delete review: %w", err)
	}
	return nil
}

func (s *ReviewService) gate(ctx context.Context, studentID int, courseID uuid.UUID) error {
	course, err := s.courses.GetByID(ctx, courseID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrCourseNotFound
		}
		return fmt.Errorf("get course: %w", err)
	}
	if !course.ReviewEnabled {
		return ErrReviewDisabled
	}
	if _, err := s.enrollments.RequireApproved(ctx, studentID, courseID); err != nil {
		return err
	}
	return nil
}
