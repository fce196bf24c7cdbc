package model

import (
	"time"

	"github.com/google/uuid"
)

// Exam belongs to a course, one exam per course.
type Exam struct {
	ID                uuid.UUID  `json:"id"`
	CourseID          uuid.UUID  `json:"course_id"`
	Title             string     `json:"title"`
	PassingPercentage int        `json:"passing_percentage"`
	DurationMinutes   int        `json:"duration_minutes"`
	Questions         []Question `json:"questions,omitempty"`
	CreatedAt         time.Time  `json:"created_at"`
	UpdatedAt         time.Time  `json:"updated_at"`
}

// Question is a single multiple-choice exam question with exactly four
// options, exactly one of which is correct.
type Question struct {
	ID           uuid.UUID `json:"id"`
	ExamID       uuid.UUID `json:"exam_id"`
	QuestionText string    `json:"question_text"`
	Options      []Option  `json:"options"`
	OrderNum     int       `json:"order_num"`
}

// Option is one answer choice of a question.
type Option struct {
	Text      string `json:"text"`
	IsCorrect bool   `json:"is_correct"`
}

// CorrectIndex returns the index of the option flagged correct, or -1.
func (q Question) CorrectIndex() int {
	for i, o := range q.Options {
		if o.IsCorrect {
			return i
		}
	}
	return -1
}

// ─── Sanitized exam paper (student-facing, answer-free) ─────────────────────

// ExamPaper is the sanitized exam view served to students. Option correctness
// is stripped — PaperOption has no is_correct field, so the flag can never
// leak through serialization.
type ExamPaper struct {
	ExamID            uuid.UUID       `json:"exam_id"`
	CourseID          uuid.UUID       `json:"course_id"`
	Title             string          `json:"title"`
	PassingPercentage int             `json:"passing_percentage"`
	DurationMinutes   int             `json:"duration_minutes"`
	Questions         []PaperQuestion `json:"questions"`
}

// PaperQuestion is a question as presented on the exam paper.
type PaperQuestion struct {
	ID           uuid.UUID     `json:"id"`
	QuestionText string        `json:"question_text"`
	Options      []PaperOption `json:"options"`
	OrderNum     int           `json:"order_num"`
}

// PaperOption carries only the option text.
type PaperOption struct {
	Text string `json:"text"`
}

// ─── Requests ───────────────────────────────────────────────────────────────

// QuestionRequest is one question in an exam create/update payload.
type QuestionRequest struct {
	QuestionText string          `json:"question_text" binding:"required,min=1,max=2000"`
	Options      []OptionRequest `json:"options" binding:"required,len=4,dive"`
	OrderNum     int             `json:"order_num" binding:"min=0"`
}

// OptionRequest is one option in a question payload.
type OptionRequest struct {
	Text      string `json:"text" binding:"required,max=1000"`
	IsCorrect bool   `json:"is_correct"`
}

// CreateExamRequest is the payload for creating a course's exam.
type CreateExamRequest struct {
	CourseID          string            `json:"course_id" binding:"required,uuid"`
	Title             string            `json:"title" binding:"required,min=3,max=255"`
	PassingPercentage int               `json:"passing_percentage" binding:"required,min=1,max=100"`
	DurationMinutes   int               `json:"duration_minutes" binding:"required,min=1,max=480"`
	Questions         []QuestionRequest `json:"questions" binding:"required,min=1,dive"`
}

// UpdateExamRequest is the payload for patching an exam. A non-nil Questions
// slice replaces the whole question set.
type UpdateExamRequest struct {
	Title             string            `json:"title" binding:"omitempty,min=3,max=255"`
	PassingPercentage *int              `json:"passing_percentage" binding:"omitempty,min=1,max=100"`
	DurationMinutes   *int              `json:"duration_minutes" binding:"omitempty,min=1,max=480"`
	Questions         []QuestionRequest `json:"questions" binding:"omitempty,min=1,dive"`
}

// SubmitExamRequest maps question IDs to the selected option index.
// Unanswered questions are simply absent and count as incorrect.
type SubmitExamRequest struct {
	Answers map[string]int `json:"answers" binding:"required"`
}
