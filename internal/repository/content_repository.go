package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/edulane/edulane-backend/internal/model"
)

// ContentRepository handles course content data access.
type ContentRepository struct {
	pool *pgxpool.Pool
}

// NewContentRepository creates a new ContentRepository.
func NewContentRepository(pool *pgxpool.Pool) *ContentRepository {
	return &ContentRepository{pool: pool}
}

// GetByID retrieves a content item by its UUID.
func (r *ContentRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Content, error) {
	c := &model.Content{}
	err := r.pool.QueryRow(ctx,
		`SELECT id, course_id, title, content_type, url, order_num, created_at
		 FROM contents WHERE id = $1`, id,
	).Scan(&c.ID, &c.CourseID, &c.Title, &c.Type, &c.URL, &c.OrderNum, &c.CreatedAt)
	if err != nil {
		return nil, err
	}
	return c, nil
}

// ListByCourse retrieves a course's content items in sequence order.
func (r *ContentRepository) ListByCourse(ctx context.Context, courseID uuid.UUID) ([]model.Content, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, course_id, title, content_type, url, order_num, created_at
		 FROM contents
		 WHERE course_id = $1
		 ORDER BY order_num ASC, created_at ASC`, courseID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var contents []model.Content
	for rows.Next() {
		var c model.Content
		if err := rows.Scan(&c.ID, &c.CourseID, &c.Title, &c.Type, &c.URL, &c.OrderNum, &c.CreatedAt); err != nil {
			return nil, err
		}
		contents = append(contents, c)
	}
	return contents, rows.Err()
}

// ListIDsByCourse retrieves just the content IDs of a course. Used when
// recomputing progress percentages.
func (r *ContentRepository) ListIDsByCourse(ctx context.Context, courseID uuid.UUID) ([]uuid.UUID, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id FROM contents WHERE course_id = $1`, courseID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []uuid.UUID
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// Create inserts a new content item.
func (r *ContentRepository) Create(ctx context.Context, c *model.Content) error {
	return r.pool.QueryRow(ctx,
		`INSERT INTO contents (course_id, title, content_type, url, order_num)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING id, created_at`,
		c.CourseID, c.Title, c.Type, c.URL, c.OrderNum,
	).Scan(&c.ID, &c.CreatedAt)
}

// Update overwrites a content item's mutable fields.
func (r *ContentRepository) Update(ctx context.Context, c *model.Content) error {
	_, err := r.pool.Exec(ctx,
		`UPDATE contents SET title = $1, url = $2, order_num = $3 WHERE id = $4`,
		c.Title, c.URL, c.OrderNum, c.ID)
	return err
}

// Delete removes a content item.
func (r *ContentRepository) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM contents WHERE id = $1`, id)
	return err
}
