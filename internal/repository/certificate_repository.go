package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/edulane/edulane-backend/internal/model"
)

// CertificateRepository handles certificate data access.
type CertificateRepository struct {
	pool *pgxpool.Pool
}

// NewCertificateRepository creates a new CertificateRepository.
func NewCertificateRepository(pool *pgxpool.Pool) *CertificateRepository {
	return &CertificateRepository{pool: pool}
}

// Create inserts a certificate. The student-course pair is unique; a
// concurrent or repeated issuance is a silent no-op and returns false.
func (r *CertificateRepository) Create(ctx context.Context, c *model.Certificate) (bool, error) {
	err := r.pool.QueryRow(ctx,
		`INSERT INTO certificates (certificate_id, student_id, course_id, score, reason)
		 VALUES ($1, $2, $3, $4, $5)
		 ON CONFLICT (student_id, course_id) DO NOTHING
		 RETURNING id, issued_at`,
		c.CertificateID, c.StudentID, c.CourseID, c.Score, c.Reason,
	).Scan(&c.ID, &c.IssuedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// Courses are LEFT JOINed: certificates survive course deletion, so the
// course name may be gone.
const certificateJoin = `
	SELECT ct.id, ct.certificate_id, ct.student_id, ct.course_id, ct.score, ct.reason, ct.issued_at,
	       u.name, COALESCE(c.name, '')
	FROM certificates ct
	JOIN users u ON u.id = ct.student_id
	LEFT JOIN courses c ON c.id = ct.course_id`

// GetByStudentAndCourse retrieves a certificate with student and course names.
func (r *CertificateRepository) GetByStudentAndCourse(ctx context.Context, studentID int, courseID uuid.UUID) (*model.CertificateWithNames, error) {
	c := &model.CertificateWithNames{}
	err := r.pool.QueryRow(ctx,
		certificateJoin+` WHERE ct.student_id = $1 AND ct.course_id = $2`,
		studentID, courseID,
	).Scan(&c.ID, &c.CertificateID, &c.StudentID, &c.CourseID, &c.Score, &c.Reason, &c.IssuedAt,
		&c.StudentName, &c.CourseName)
	if err != nil {
		return nil, err
	}
	return c, nil
}

// ListByStudent retrieves all certificates of a student, newest first.
func (r *CertificateRepository) ListByStudent(ctx context.Context, studentID int) ([]model.CertificateWithNames, error) {
	rows, err := r.pool.Query(ctx,
		certificateJoin+` WHERE ct.student_id = $1 ORDER BY ct.issued_at DESC`, studentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanCertificates(rows)
}

// ListAll retrieves every issued certificate, newest first.
func (r *CertificateRepository) ListAll(ctx context.Context) ([]model.CertificateWithNames, error) {
	rows, err := r.pool.Query(ctx, certificateJoin+` ORDER BY ct.issued_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanCertificates(rows)
}

func scanCertificates(rows pgx.Rows) ([]model.CertificateWithNames, error) {
	var list []model.CertificateWithNames
	for rows.Next() {
		var c model.CertificateWithNames
		if err := rows.Scan(&c.ID, &c.CertificateID, &c.StudentID, &c.CourseID, &c.Score, &c.Reason, &c.IssuedAt,
			&c.StudentName, &c.CourseName); err != nil {
			return nil, err
		}
		list = append(list, c)
	}
	return list, rows.Err()
}
