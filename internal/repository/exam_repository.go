package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/edulane/edulane-backend/internal/model"
)

// ExamRepository handles exam and question data access.
type ExamRepository struct {
	pool *pgxpool.Pool
}

// NewExamRepository creates a new ExamRepository.
func NewExamRepository(pool *pgxpool.Pool) *ExamRepository {
	return &ExamRepository{pool: pool}
}

// GetByCourse retrieves a course's exam without questions.
func (r *ExamRepository) GetByCourse(ctx context.Context, courseID uuid.UUID) (*model.Exam, error) {
	e := &model.Exam{}
	err := r.pool.QueryRow(ctx,
		`SELECT id, course_id, title, passing_percentage, duration_minutes, created_at, updated_at
		 FROM exams WHERE course_id = $1`, courseID,
	).Scan(&e.ID, &e.CourseID, &e.Title, &e.PassingPercentage, &e.DurationMinutes, &e.CreatedAt, &e.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return e, nil
}

// ListQuestions retrieves an exam's questions in sequence order.
func (r *ExamRepository) ListQuestions(ctx context.Context, examID uuid.UUID) ([]model.Question, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, exam_id, question_text, options, order_num
		 FROM questions
		 WHERE exam_id = $1
		 ORDER BY order_num ASC`, examID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var questions []model.Question
	for rows.Next() {
		var q model.Question
		var rawOptions []byte
		if err := rows.Scan(&q.ID, &q.ExamID, &q.QuestionText, &rawOptions, &q.OrderNum); err != nil {
			return nil, err
		}
		if err := json.Unmarshal(rawOptions, &q.Options); err != nil {
			return nil, fmt.Errorf("decode options for question %s: %w", q.ID, err)
		}
		questions = append(questions, q)
	}
	return questions, rows.Err()
}

// Create inserts an exam together with its questions in one transaction.
func (r *ExamRepository) Create(ctx context.Context, e *model.Exam) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback(ctx)

	err = tx.QueryRow(ctx,
		`INSERT INTO exams (course_id, title, passing_percentage, duration_minutes)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id, created_at, updated_at`,
		e.CourseID, e.Title, e.PassingPercentage, e.DurationMinutes,
	).Scan(&e.ID, &e.CreatedAt, &e.UpdatedAt)
	if err != nil {
		return fmt.Errorf("insert exam: %w", err)
	}

	if err := insertQuestions(ctx, tx, e.ID, e.Questions); err != nil {
		return err
	}
	for i := range e.Questions {
		e.Questions[i].ExamID = e.ID
	}

	return tx.Commit(ctx)
}

// Update patches an exam's fields and, when questions is non-nil, replaces
// the whole question set in the same transaction.
func (r *ExamRepository) Update(ctx context.Context, e *model.Exam, replaceQuestions bool) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback(ctx)

	_, err = tx.Exec(ctx,
		`UPDATE exams
		 SET title = $1, passing_percentage = $2, duration_minutes = $3, updated_at = NOW()
		 WHERE id = $4`,
		e.Title, e.PassingPercentage, e.DurationMinutes, e.ID)
	if err != nil {
		return fmt.Errorf("update exam: %w", err)
	}

	if replaceQuestions {
		if _, err := tx.Exec(ctx, `DELETE FROM questions WHERE exam_id = $1`, e.ID); err != nil {
			return fmt.Errorf("clear questions: %w", err)
		}
		if err := insertQuestions(ctx, tx, e.ID, e.Questions); err != nil {
			return err
		}
	}

	return tx.Commit(ctx)
}

// Delete removes an exam and its questions (cascade).
func (r *ExamRepository) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM exams WHERE id = $1`, id)
	return err
}

func insertQuestions(ctx context.Context, tx pgx.Tx, examID uuid.UUID, questions []model.Question) error {
	for i := range questions {
		raw, err := json.Marshal(questions[i].Options)
		if err != nil {
			return fmt.Errorf("encode options: %w", err)
		}
		err = tx.QueryRow(ctx,
			`INSERT INTO questions (exam_id, question_text, options, order_num)
			 VALUES ($1, $2, $3, $4)
			 RETURNING id`,
			examID, questions[i].QuestionText, raw, questions[i].OrderNum,
		).Scan(&questions[i].ID)
		if err != nil {
			return fmt.Errorf("insert question: %w", err)
		}
	}
	return nil
}
