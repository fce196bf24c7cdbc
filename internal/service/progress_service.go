package service

import (
	"context"
	"errors"
	"fmt"
	"math"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/edulane/edulane-backend/internal/model"
)

// ProgressService tracks per-student course completion.
type ProgressService struct {
	progress    ProgressStore
	contents    ContentStore
	enrollments *EnrollmentService
}

// NewProgressService creates a new ProgressService.
func NewProgressService(progress ProgressStore, contents ContentStore, enrollments *EnrollmentService) *ProgressService {
	return &ProgressService{progress: progress, contents: contents, enrollments: enrollments}
}

// MarkContentComplete records a content item as completed for the student.
// The operation is idempotent: marking an already completed item changes
// nothing. Requires an approved enrollment.
func (s *ProgressService) MarkContentComplete(ctx context.Context, studentID int, courseID, contentID uuid.UUID) (*model.ProgressSnapshot, error) {
	if _, err := s.enrollments.RequireApproved(ctx, studentID, courseID); err != nil {
		return nil, err
	}

	liveIDs, err := s.contents.ListIDsByCourse(ctx, courseID)
	if err != nil {
		return nil, fmt.Errorf("list content ids: %w", err)
	}
	if !containsUUID(liveIDs, contentID) {
		return nil, ErrContentNotFound
	}

	if _, err := s.progress.GetOrCreate(ctx, studentID, courseID); err != nil {
		return nil, fmt.Errorf("get progress: %w", err)
	}
	progress, err := s.progress.AddCompletedContent(ctx, studentID, courseID, contentID)
	if err != nil {
		return nil, fmt.Errorf("add completed content: %w", err)
	}
	return s.snapshot(progress, liveIDs), nil
}

// GetProgress returns the student's progress snapshot for a course. A row
// is created on first access so students see 0% before completing
// anything. Requires an approved enrollment.
func (s *ProgressService) GetProgress(ctx context.Context, studentID int, courseID uuid.UUID) (*model.ProgressSnapshot, error) {
	if _, err := s.enrollments.RequireApproved(ctx, studentID, courseID); err != nil {
		return nil, err
	}

	progress, err := s.progress.GetOrCreate(ctx, studentID, courseID)
	if err != nil {
		return nil, fmt.Errorf("get progress: %w", err)
	}

	liveIDs, err := s.contents.ListIDsByCourse(ctx, courseID)
	if err != nil {
		return nil, fmt.Errorf("list content ids: %w", err)
	}
	return s.snapshot(progress, liveIDs), nil
}

// Percentage computes completion as the share of live course contents the
// student has completed. Completed IDs referencing deleted contents are
// ignored, so the value stays within [0, 100].
func (s *ProgressService) Percentage(ctx context.Context, progress *model.Progress) (int, error) {
	liveIDs, err := s.contents.ListIDsByCourse(ctx, progress.CourseID)
	if err != nil {
		return 0, fmt.Errorf("list content ids: %w", err)
	}
	return computePercentage(progress.CompletedContents, liveIDs), nil
}

// Snapshot loads the raw progress row without the enrollment gate. Used
// by the exam and certificate flows which gate on their own.
func (s *ProgressService) Snapshot(ctx context.Context, studentID int, courseID uuid.UUID) (*model.ProgressSnapshot, error) {
	progress, err := s.progress.GetByStudentAndCourse(ctx, studentID, courseID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			progress = &model.Progress{StudentID: studentID, CourseID: courseID}
		} else {
			return nil, fmt.Errorf("get progress: %w", err)
		}
	}
	liveIDs, err := s.contents.ListIDsByCourse(ctx, courseID)
	if err != nil {
		return nil, fmt.Errorf("list content ids: %w", err)
	}
	return s.snapshot(progress, liveIDs), nil
}

func (s *ProgressService) snapshot(progress *model.Progress, liveIDs []uuid.UUID) *model.ProgressSnapshot {
	return &model.ProgressSnapshot{
		CourseID:             progress.CourseID,
		CompletedContents:    progress.CompletedContents,
		TotalContents:        len(liveIDs),
		ProgressPercentage:   computePercentage(progress.CompletedContents, liveIDs),
		ExamAttempted:        progress.ExamAttempted,
		ExamPassed:           progress.ExamPassed,
		ExamScore:            progress.ExamScore,
		CertificateGenerated: progress.CertificateGenerated,
		LastAccessedAt:       progress.LastAccessedAt,
	}
}

// computePercentage intersects completed IDs with live content IDs and
// rounds half away from zero. Zero contents means zero percent.
func computePercentage(completed, live []uuid.UUID) int {
	if len(live) == 0 {
		return 0
	}
	liveSet := make(map[uuid.UUID]struct{}, len(live))
	for _, id := range live {
		liveSet[id] = struct{}{}
	}
	count := 0
	for _, id := range completed {
		if _, ok := liveSet[id]; ok {
			count++
		}
	}
	return int(math.Round(float64(count) / float64(len(live)) * 100))
}

func containsUUID(ids []uuid.UUID, target uuid.UUID) bool {
	for _, id := range ids {
		if id == target {
			return true
		}
	}
	return false
}
