package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/edulane/edulane-backend/internal/model"
)

// ProgressRepository handles progress data access.
type ProgressRepository struct {
	pool *pgxpool.Pool
}

// NewProgressRepository creates a new ProgressRepository.
func NewProgressRepository(pool *pgxpool.Pool) *ProgressRepository {
	return &ProgressRepository{pool: pool}
}

const progressColumns = `id, student_id, course_id, completed_contents::text[],
	exam_attempted, exam_passed, exam_score, certificate_generated, last_accessed_at`

// GetByStudentAndCourse retrieves the progress row for a student-course pair.
func (r *ProgressRepository) GetByStudentAndCourse(ctx context.Context, studentID int, courseID uuid.UUID) (*model.Progress, error) {
	row := r.pool.QueryRow(ctx,
		`SELECT `+progressColumns+`
		 FROM progress
		 WHERE student_id = $1 AND course_id = $2`, studentID, courseID)
	return scanProgress(row)
}

// GetOrCreate fetches the progress row for a pair, lazily creating an empty
// one on first access. The conflict arm refreshes last_accessed_at so the
// statement always returns the row.
func (r *ProgressRepository) GetOrCreate(ctx context.Context, studentID int, courseID uuid.UUID) (*model.Progress, error) {
	row := r.pool.QueryRow(ctx,
		`INSERT INTO progress (student_id, course_id, completed_contents)
		 VALUES ($1, $2, '{}')
		 ON CONFLICT (student_id, course_id)
		 DO UPDATE SET last_accessed_at = NOW()
		 RETURNING `+progressColumns, studentID, courseID)
	return scanProgress(row)
}

// AddCompletedContent appends a content ID to the completed set, idempotently,
// and refreshes last_accessed_at. Returns the updated row.
func (r *ProgressRepository) AddCompletedContent(ctx context.Context, studentID int, courseID, contentID uuid.UUID) (*model.Progress, error) {
	row := r.pool.QueryRow(ctx,
		`UPDATE progress
		 SET completed_contents = CASE
		         WHEN $3::uuid = ANY(completed_contents) THEN completed_contents
		         ELSE completed_contents || $3::uuid
		     END,
		     last_accessed_at = NOW()
		 WHERE student_id = $1 AND course_id = $2
		 RETURNING `+progressColumns, studentID, courseID, contentID)
	return scanProgress(row)
}

// RecordExamResult persists an exam outcome with a compare-and-set on
// exam_attempted. Returns false when the flag was already set — the caller
// lost the race (or retried) and must not overwrite the stored result.
func (r *ProgressRepository) RecordExamResult(ctx context.Context, studentID int, courseID uuid.UUID, score int, passed bool) (bool, error) {
	tag, err := r.pool.Exec(ctx,
		`UPDATE progress
		 SET exam_attempted = TRUE, exam_passed = $3, exam_score = $4, last_accessed_at = NOW()
		 WHERE student_id = $1 AND course_id = $2 AND exam_attempted = FALSE`,
		studentID, courseID, passed, score)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

// MarkCertificateGenerated flags the progress row after certificate issuance.
func (r *ProgressRepository) MarkCertificateGenerated(ctx context.Context, studentID int, courseID uuid.UUID) error {
	_, err := r.pool.Exec(ctx,
		`UPDATE progress SET certificate_generated = TRUE
		 WHERE student_id = $1 AND course_id = $2`,
		studentID, courseID)
	return err
}

// ListExamResultsByCourse retrieves the exam outcome of every student who has
// attempted a course's exam, joined with student identity.
func (r *ProgressRepository) ListExamResultsByCourse(ctx context.Context, courseID uuid.UUID) ([]model.ExamResult, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT p.student_id, u.name, u.email, p.exam_score, p.exam_passed, p.last_accessed_at
		 FROM progress p
		 JOIN users u ON u.id = p.student_id
		 WHERE p.course_id = $1 AND p.exam_attempted = TRUE
		 ORDER BY u.name ASC`, courseID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []model.ExamResult
	for rows.Next() {
		var res model.ExamResult
		var score *int
		if err := rows.Scan(&res.StudentID, &res.StudentName, &res.StudentEmail,
			&score, &res.ExamPassed, &res.LastAccessedAt); err != nil {
			return nil, err
		}
		if score != nil {
			res.ExamScore = *score
		}
		results = append(results, res)
	}
	return results, rows.Err()
}

// rowScanner is satisfied by both pgx.Row and pgx.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanProgress(row rowScanner) (*model.Progress, error) {
	p := &model.Progress{}
	var completed []string
	if err := row.Scan(&p.ID, &p.StudentID, &p.CourseID, &completed,
		&p.ExamAttempted, &p.ExamPassed, &p.ExamScore, &p.CertificateGenerated, &p.LastAccessedAt); err != nil {
		return nil, err
	}

	p.CompletedContents = make([]uuid.UUID, 0, len(completed))
	for _, raw := range completed {
		id, err := uuid.Parse(raw)
		if err != nil {
			return nil, fmt.Errorf("parse completed content id %q: %w", raw, err)
		}
		p.CompletedContents = append(p.CompletedContents, id)
	}
	return p, nil
}
