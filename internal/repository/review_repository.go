package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/edulane/edulane-backend/internal/model"
)

// ReviewRepository handles course review data access.
type ReviewRepository struct {
	pool *pgxpool.Pool
}

// NewReviewRepository creates a new ReviewRepository.
func NewReviewRepository(pool *pgxpool.Pool) *ReviewRepository {
	return &ReviewRepository{pool: pool}
}

// GetByStudentAndCourse retrieves a student's review for a course.
func (r *ReviewRepository) GetByStudentAndCourse(ctx context.Context, studentID int, courseID uuid.UUID) (*model.Review, error) {
	rev := &model.Review{}
	err := r.pool.QueryRow(ctx,
		`SELECT id, student_id, course_id, rating, comment, created_at, updated_at
		 FROM reviews
		 WHERE student_id = $1 AND course_id = $2`, studentID, courseID,
	).Scan(&rev.ID, &rev.StudentID, &rev.CourseID, &rev.Rating, &rev.Comment, &rev.CreatedAt, &rev.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return rev, nil
}

// Create inserts a new review.
func (r *ReviewRepository) Create(ctx context.Context, rev *model.Review) error {
	return r.pool.QueryRow(ctx,
		`INSERT INTO reviews (student_id, course_id, rating, comment)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id, created_at, updated_at`,
		rev.StudentID, rev.CourseID, rev.Rating, rev.Comment,
	).Scan(&rev.ID, &rev.CreatedAt, &rev.UpdatedAt)
}

// Update overwrites a review's rating and comment.
func (r *ReviewRepository) Update(ctx context.Context, rev *model.Review) error {
	_, err := r.pool.Exec(ctx,
		`UPDATE reviews SET rating = $1, comment = $2, updated_at = NOW() WHERE id = $3`,
		rev.Rating, rev.Comment, rev.ID)
	return err
}

// Delete removes a review.
func (r *ReviewRepository) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM reviews WHERE id = $1`, id)
	return err
}

// ListByCourse retrieves a course's reviews with reviewer names, newest first.
func (r *ReviewRepository) ListByCourse(ctx context.Context, courseID uuid.UUID) ([]model.ReviewWithStudent, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT rv.id, rv.student_id, rv.course_id, rv.rating, rv.comment, rv.created_at, rv.updated_at,
		        u.name
		 FROM reviews rv
		 JOIN users u ON u.id = rv.student_id
		 WHERE rv.course_id = $1
		 ORDER BY rv.created_at DESC`, courseID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var reviews []model.ReviewWithStudent
	for rows.Next() {
		var rv model.ReviewWithStudent
		if err := rows.Scan(&rv.ID, &rv.StudentID, &rv.CourseID, &rv.Rating, &rv.Comment,
			&rv.CreatedAt, &rv.UpdatedAt, &rv.StudentName); err != nil {
			return nil, err
		}
		reviews = append(reviews, rv)
	}
	return reviews, rows.Err()
}
