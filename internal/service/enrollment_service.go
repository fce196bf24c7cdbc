package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/edulane/edulane-backend/internal/model"
)

// Sentinel errors for enrollment operations.
var (
	ErrEnrollmentNotFound    = errors.New("enrollment not found")
	ErrAlreadyEnrolled       = errors.New("already enrolled")
	ErrEnrollmentNotPending  = errors.New("enrollment is not pending")
	ErrEnrollmentNotApproved = errors.New("enrollment is not approved")
)

// EnrollmentService handles the enrollment approval workflow.
type EnrollmentService struct {
	enrollments EnrollmentStore
	courses     CourseStore
}

// NewEnrollmentService creates a new EnrollmentService.
func NewEnrollmentService(enrollments EnrollmentStore, courses CourseStore) *EnrollmentService {
	return &EnrollmentService{enrollments: enrollments, courses: courses}
}

// Enroll submits a pending enrollment for a student. A student rejected
// before may enroll again: the existing row is reset to pending with the
// new payment proof. Pending and approved enrollments block re-enrollment.
func (s *EnrollmentService) Enroll(ctx context.Context, studentID int, courseID uuid.UUID, paymentProofURL string) (*model.Enrollment, error) {
	if _, err := s.courses.GetByID(ctx, courseID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrCourseNotFound
		}
		return nil, fmt.Errorf("get course: %w", err)
	}

	existing, err := s.enrollments.GetByStudentAndCourse(ctx, studentID, courseID)
	if err != nil && !errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("get enrollment: %w", err)
	}

	if existing != nil {
		if existing.Status != model.EnrollmentStatusRejected {
			return nil, ErrAlreadyEnrolled
		}
		if err := s.enrollments.Reopen(ctx, existing.ID, paymentProofURL); err != nil {
			return nil, fmt.Errorf("reopen enrollment: %w", err)
		}
		return s.getByID(ctx, existing.ID)
	}

	enrollment := &model.Enrollment{
		StudentID:       studentID,
		CourseID:        courseID,
		Status:          model.EnrollmentStatusPending,
		PaymentProofURL: paymentProofURL,
	}
	if err := s.enrollments.Create(ctx, enrollment); err != nil {
		return nil, fmt.Errorf("create enrollment: %w", err)
	}
	return enrollment, nil
}

// Approve transitions a pending enrollment to approved.
func (s *EnrollmentService) Approve(ctx context.Context, enrollmentID uuid.UUID) (*model.Enrollment, error) {
	return s.decide(ctx, enrollmentID, model.EnrollmentStatusApproved)
}

// Reject transitions a pending enrollment to rejected.
func (s *EnrollmentService) Reject(ctx context.Context, enrollmentID uuid.UUID) (*model.Enrollment, error) {
	return s.decide(ctx, enrollmentID, model.EnrollmentStatusRejected)
}

func (s *EnrollmentService) decide(ctx context.Context, enrollmentID uuid.UUID, status model.EnrollmentStatus) (*model.Enrollment, error) {
	enrollment, err := s.getByID(ctx, enrollmentID)
	if err != nil {
		return nil, err
	}
	if enrollment.Status != model.EnrollmentStatusPending {
		return nil, ErrEnrollmentNotPending
	}
	var approvedAt *time.Time
	if status == model.EnrollmentStatusApproved {
		now := time.Now()
		approvedAt = &now
	}
	if err := s.enrollments.SetStatus(ctx, enrollmentID, status, approvedAt); err != nil {
		return nil, fmt.Errorf("set enrollment status: %w", err)
	}
	return s.getByID(ctx, enrollmentID)
}

// ListMine returns a student's enrollments joined with course details.
// Enrollments whose course has been deleted are omitted.
func (s *EnrollmentService) ListMine(ctx context.Context, studentID int) ([]model.EnrollmentWithCourse, error) {
	enrollments, err := s.enrollments.ListByStudent(ctx, studentID)
	if err != nil {
		return nil, fmt.Errorf("list enrollments: %w", err)
	}
	return enrollments, nil
}

// ListAll returns every enrollment for the admin dashboard, optionally
// filtered by status.
func (s *EnrollmentService) ListAll(ctx context.Context, status string) ([]model.EnrollmentWithCourse, error) {
	enrollments, err := s.enrollments.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list enrollments: %w", err)
	}
	if status == "" {
		return enrollments, nil
	}
	filtered := make([]model.EnrollmentWithCourse, 0, len(enrollments))
	for _, e := range enrollments {
		if string(e.Status) == status {
			filtered = append(filtered, e)
		}
	}
	return filtered, nil
}

// RequireApproved loads the student's enrollment in a course and fails
// unless it is approved. Gate for progress, exam and review operations.
func (s *EnrollmentService) RequireApproved(ctx context.Context, studentID int, courseID uuid.UUID) (*model.Enrollment, error) {
	enrollment, err := s.enrollments.GetByStudentAndCourse(ctx, studentID, courseID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrEnrollmentNotFound
		}
		return nil, fmt.Errorf("get enrollment: %w", err)
	}
	if enrollment.Status != model.EnrollmentStatusApproved {
		return nil, ErrEnrollmentNotApproved
	}
	return enrollment, nil
}

func (s *EnrollmentService) getByID(ctx context.Context, enrollmentID uuid.UUID) (*model.Enrollment, error) {
	enrollment, err := s.enrollments.GetByID(ctx, enrollmentID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrEnrollmentNotFound
		}
		return nil, fmt.Errorf("get enrollment: %w", err)
	}
	return enrollment, nil
}
