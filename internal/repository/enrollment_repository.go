package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/edulane/edulane-backend/internal/model"
)

// EnrollmentRepository handles enrollment data access.
type EnrollmentRepository struct {
	pool *pgxpool.Pool
}

// NewEnrollmentRepository creates a new EnrollmentRepository.
func NewEnrollmentRepository(pool *pgxpool.Pool) *EnrollmentRepository {
	return &EnrollmentRepository{pool: pool}
}

// GetByID retrieves an enrollment by its UUID.
func (r *EnrollmentRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Enrollment, error) {
	e := &model.Enrollment{}
	err := r.pool.QueryRow(ctx,
		`SELECT id, student_id, course_id, status, payment_proof_url, enrolled_at, approved_at
		 FROM enrollments WHERE id = $1`, id,
	).Scan(&e.ID, &e.StudentID, &e.CourseID, &e.Status, &e.PaymentProofURL, &e.EnrolledAt, &e.ApprovedAt)
	if err != nil {
		return nil, err
	}
	return e, nil
}

// GetByStudentAndCourse retrieves the enrollment for a student-course pair.
func (r *EnrollmentRepository) GetByStudentAndCourse(ctx context.Context, studentID int, courseID uuid.UUID) (*model.Enrollment, error) {
	e := &model.Enrollment{}
	err := r.pool.QueryRow(ctx,
		`SELECT id, student_id, course_id, status, payment_proof_url, enrolled_at, approved_at
		 FROM enrollments
		 WHERE student_id = $1 AND course_id = $2`, studentID, courseID,
	).Scan(&e.ID, &e.StudentID, &e.CourseID, &e.Status, &e.PaymentProofURL, &e.EnrolledAt, &e.ApprovedAt)
	if err != nil {
		return nil, err
	}
	return e, nil
}

// Create inserts a new pending enrollment.
func (r *EnrollmentRepository) Create(ctx context.Context, e *model.Enrollment) error {
	return r.pool.QueryRow(ctx,
		`INSERT INTO enrollments (student_id, course_id, status, payment_proof_url)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id, enrolled_at`,
		e.StudentID, e.CourseID, model.EnrollmentStatusPending, e.PaymentProofURL,
	).Scan(&e.ID, &e.EnrolledAt)
}

// Reopen resets a rejected enrollment back to pending with a fresh payment
// proof. The student-course pair keeps a single row; the previous rejection
// leaves no historical trail.
func (r *EnrollmentRepository) Reopen(ctx context.Context, id uuid.UUID, paymentProofURL string) error {
	_, err := r.pool.Exec(ctx,
		`UPDATE enrollments
		 SET status = $1, payment_proof_url = $2, enrolled_at = NOW(), approved_at = NULL
		 WHERE id = $3`,
		model.EnrollmentStatusPending, paymentProofURL, id)
	return err
}

// SetStatus updates the approval state of an enrollment.
func (r *EnrollmentRepository) SetStatus(ctx context.Context, id uuid.UUID, status model.EnrollmentStatus, approvedAt *time.Time) error {
	_, err := r.pool.Exec(ctx,
		`UPDATE enrollments SET status = $1, approved_at = $2 WHERE id = $3`,
		status, approvedAt, id)
	return err
}

// ListByStudent retrieves a student's enrollments joined with their courses.
// Enrollments whose course has been deleted are skipped.
func (r *EnrollmentRepository) ListByStudent(ctx context.Context, studentID int) ([]model.EnrollmentWithCourse, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT e.id, e.student_id, e.course_id, e.status, e.payment_proof_url, e.enrolled_at, e.approved_at,
		        c.id, c.name, c.description, c.category, c.fee, c.thumbnail_url, c.review_enabled, c.created_at, c.updated_at
		 FROM enrollments e
		 LEFT JOIN courses c ON c.id = e.course_id
		 WHERE e.student_id = $1
		 ORDER BY e.enrolled_at DESC`, studentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanEnrollmentsWithCourse(rows, false)
}

// ListAll retrieves every enrollment joined with course and student name,
// newest first. Used by the admin review queue.
func (r *EnrollmentRepository) ListAll(ctx context.Context) ([]model.EnrollmentWithCourse, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT e.id, e.student_id, e.course_id, e.status, e.payment_proof_url, e.enrolled_at, e.approved_at,
		        c.id, c.name, c.description, c.category, c.fee, c.thumbnail_url, c.review_enabled, c.created_at, c.updated_at,
		        u.name
		 FROM enrollments e
		 LEFT JOIN courses c ON c.id = e.course_id
		 JOIN users u ON u.id = e.student_id
		 ORDER BY e.enrolled_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanEnrollmentsWithCourse(rows, true)
}

func scanEnrollmentsWithCourse(rows pgx.Rows, withStudent bool) ([]model.EnrollmentWithCourse, error) {
	var list []model.EnrollmentWithCourse
	for rows.Next() {
		var e model.EnrollmentWithCourse
		var (
			cID            *uuid.UUID
			cName          *string
			cDesc          *string
			cCategory      *string
			cFee           *float64
			cThumb         *string
			cReviewEnabled *bool
			cCreatedAt     *time.Time
			cUpdatedAt     *time.Time
		)

		dest := []interface{}{
			&e.ID, &e.StudentID, &e.CourseID, &e.Status, &e.PaymentProofURL, &e.EnrolledAt, &e.ApprovedAt,
			&cID, &cName, &cDesc, &cCategory, &cFee, &cThumb, &cReviewEnabled, &cCreatedAt, &cUpdatedAt,
		}
		if withStudent {
			dest = append(dest, &e.StudentName)
		}
		if err := rows.Scan(dest...); err != nil {
			return nil, err
		}

		// Defensive read-side filter: a dangling course reference is dropped
		// from the listing instead of surfacing an error.
		if cID == nil {
			continue
		}

		e.Course = &model.Course{
			ID:            *cID,
			Name:          *cName,
			Description:   *cDesc,
			Category:      *cCategory,
			Fee:           *cFee,
			ThumbnailURL:  *cThumb,
			ReviewEnabled: *cReviewEnabled,
			CreatedAt:     *cCreatedAt,
			UpdatedAt:     *cUpdatedAt,
		}
		list = append(list, e)
	}
	return list, rows.Err()
}
