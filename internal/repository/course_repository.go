package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/edulane/edulane-backend/internal/model"
)

// CourseRepository handles course data access.
type CourseRepository struct {
	pool *pgxpool.Pool
}

// NewCourseRepository creates a new CourseRepository.
func NewCourseRepository(pool *pgxpool.Pool) *CourseRepository {
	return &CourseRepository{pool: pool}
}

// GetByID retrieves a course by its UUID.
func (r *CourseRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Course, error) {
	c := &model.Course{}
	err := r.pool.QueryRow(ctx,
		`SELECT id, name, description, category, fee, thumbnail_url, review_enabled, created_at, updated_at
		 FROM courses WHERE id = $1`, id,
	).Scan(&c.ID, &c.Name, &c.Description, &c.Category, &c.Fee,
		&c.ThumbnailURL, &c.ReviewEnabled, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return c, nil
}

// ListPaginated retrieves courses with pagination, optionally filtered by category.
func (r *CourseRepository) ListPaginated(ctx context.Context, category string, limit, offset int) ([]model.Course, int, error) {
	countQuery := `SELECT COUNT(*) FROM courses`
	query := `SELECT id, name, description, category, fee, thumbnail_url, review_enabled, created_at, updated_at
	          FROM courses`

	var args []interface{}
	if category != "" {
		countQuery += ` WHERE category = $1`
		query += ` WHERE category = $1`
		args = append(args, category)
	}

	var total int
	if err := r.pool.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	query += fmt.Sprintf(` ORDER BY created_at DESC LIMIT $%d OFFSET $%d`, len(args)+1, len(args)+2)
	args = append(args, limit, offset)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var courses []model.Course
	for rows.Next() {
		var c model.Course
		if err := rows.Scan(&c.ID, &c.Name, &c.Description, &c.Category, &c.Fee,
			&c.ThumbnailURL, &c.ReviewEnabled, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, 0, err
		}
		courses = append(courses, c)
	}
	return courses, total, rows.Err()
}

// Create inserts a new course.
func (r *CourseRepository) Create(ctx context.Context, c *model.Course) error {
	return r.pool.QueryRow(ctx,
		`INSERT INTO courses (name, description, category, fee, thumbnail_url, review_enabled)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING id, created_at, updated_at`,
		c.Name, c.Description, c.Category, c.Fee, c.ThumbnailURL, c.ReviewEnabled,
	).Scan(&c.ID, &c.CreatedAt, &c.UpdatedAt)
}

// Update overwrites a course's mutable fields.
func (r *CourseRepository) Update(ctx context.Context, c *model.Course) error {
	_, err := r.pool.Exec(ctx,
		`UPDATE courses
		 SET name = $1, description = $2, category = $3, fee = $4,
		     thumbnail_url = $5, review_enabled = $6, updated_at = NOW()
		 WHERE id = $7`,
		c.Name, c.Description, c.Category, c.Fee, c.ThumbnailURL, c.ReviewEnabled, c.ID)
	return err
}

// Delete removes a course. Contents, exams and reviews cascade at the
// database level.
func (r *CourseRepository) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM courses WHERE id = $1`, id)
	return err
}
