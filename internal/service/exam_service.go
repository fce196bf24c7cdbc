package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/xuri/excelize/v2"

	"github.com/edulane/edulane-backend/internal/model"
)

// Sentinel errors for exam administration.
var (
	ErrExamNotFound     = errors.New("exam not found")
	ErrExamExists       = errors.New("course already has an exam")
	ErrInvalidQuestions = errors.New("invalid questions")
)

// ExamService handles admin-side exam management.
type ExamService struct {
	exams    ExamStore
	courses  CourseStore
	progress ProgressStore
	cache    PaperCache
}

// NewExamService creates a new ExamService.
func NewExamService(exams ExamStore, courses CourseStore, progress ProgressStore, cache PaperCache) *ExamService {
	return &ExamService{exams: exams, courses: courses, progress: progress, cache: cache}
}

// Get returns a course's exam with its questions, answer keys included.
// Admin-only view.
func (s *ExamService) Get(ctx context.Context, courseID uuid.UUID) (*model.Exam, error) {
	exam, err := s.exams.GetByCourse(ctx, courseID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrExamNotFound
		}
		return nil, fmt.Errorf("get exam: %w", err)
	}
	questions, err := s.exams.ListQuestions(ctx, exam.ID)
	if err != nil {
		return nil, fmt.Errorf("list questions: %w", err)
	}
	exam.Questions = questions
	return exam, nil
}

// Create creates the exam for a course. One exam per course.
func (s *ExamService) Create(ctx context.Context, req *model.CreateExamRequest) (*model.Exam, error) {
	courseID, err := uuid.Parse(req.CourseID)
	if err != nil {
		return nil, ErrCourseNotFound
	}
	if _, err := s.courses.GetByID(ctx, courseID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrCourseNotFound
		}
		return nil, fmt.Errorf("get course: %w", err)
	}
	if _, err := s.exams.GetByCourse(ctx, courseID); err == nil {
		return nil, ErrExamExists
	} else if !errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("get exam: %w", err)
	}

	questions, err := buildQuestions(req.Questions)
	if err != nil {
		return nil, err
	}

	exam := &model.Exam{
		CourseID:          courseID,
		Title:             req.Title,
		PassingPercentage: req.PassingPercentage,
		DurationMinutes:   req.DurationMinutes,
		Questions:         questions,
	}
	if err := s.exams.Create(ctx, exam); err != nil {
		return nil, fmt.Errorf("create exam: %w", err)
	}
	return exam, nil
}

// Update patches a course's exam. A non-nil Questions slice replaces the
// whole question set. The cached paper is invalidated on success.
func (s *ExamService) Update(ctx context.Context, courseID uuid.UUID, req *model.UpdateExamRequest) (*model.Exam, error) {
	exam, err := s.Get(ctx, courseID)
	if err != nil {
		return nil, err
	}

	if req.Title != "" {
		exam.Title = req.Title
	}
	if req.PassingPercentage != nil {
		exam.PassingPercentage = *req.PassingPercentage
	}
	if req.DurationMinutes != nil {
		exam.DurationMinutes = *req.DurationMinutes
	}

	replaceQuestions := req.Questions != nil
	if replaceQuestions {
		questions, err := buildQuestions(req.Questions)
		if err != nil {
			return nil, err
		}
		for i := range questions {
			questions[i].ExamID = exam.ID
		}
		exam.Questions = questions
	}

	if err := s.exams.Update(ctx, exam, replaceQuestions); err != nil {
		return nil, fmt.Errorf("update exam: %w", err)
	}
	s.invalidatePaper(ctx, courseID)
	return exam, nil
}

// Delete removes a course's exam and its questions.
func (s *ExamService) Delete(ctx context.Context, courseID uuid.UUID) error {
	exam, err := s.exams.GetByCourse(ctx, courseID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrExamNotFound
		}
		return fmt.Errorf("get exam: %w", err)
	}
	if err := s.exams.Delete(ctx, exam.ID); err != nil {
		return fmt.Errorf("delete exam: %w", err)
	}
	s.invalidatePaper(ctx, courseID)
	return nil
}

// Results returns per-student exam outcomes for a course.
func (s *ExamService) Results(ctx context.Context, courseID uuid.UUID) ([]model.ExamResult, error) {
	if _, err := s.courses.GetByID(ctx, courseID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrCourseNotFound
		}
		return nil, fmt.Errorf("get course: %w", err)
	}
	results, err := s.progress.ListExamResultsByCourse(ctx, courseID)
	if err != nil {
		return nil, fmt.Errorf("list exam results: %w", err)
	}
	return results, nil
}

// ExportResults renders the course's exam results as an XLSX workbook.
func (s *ExamService) ExportResults(ctx context.Context, courseID uuid.UUID) ([]byte, error) {
	results, err := s.Results(ctx, courseID)
	if err != nil {
		return nil, err
	}

	f := excelize.NewFile()
	defer f.Close()

	sheet := "Results"
	f.SetSheetName("Sheet1", sheet)

	headers := []string{"No", "Name", "Email", "Score", "Passed", "Last Accessed"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheet, cell, h)
	}

	for i, res := range results {
		row := i + 2
		passed := "No"
		if res.ExamPassed {
			passed = "Yes"
		}
		values := []interface{}{
			i + 1,
			res.StudentName,
			res.StudentEmail,
			res.ExamScore,
			passed,
			res.LastAccessedAt.Format("2006-01-02 15:04:05"),
		}
		for col, v := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row)
			f.SetCellValue(sheet, cell, v)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("write workbook: %w", err)
	}
	return buf.Bytes(), nil
}

func (s *ExamService) invalidatePaper(ctx context.Context, courseID uuid.UUID) {
	if s.cache == nil {
		return
	}
	// Best effort. A stale paper expires on its own TTL.
	_ = s.cache.Invalidate(ctx, courseID.String())
}

// buildQuestions converts request questions, enforcing exactly one correct
// option per question.
func buildQuestions(reqs []model.QuestionRequest) ([]model.Question, error) {
	questions := make([]model.Question, 0, len(reqs))
	for i, qr := range reqs {
		correct := 0
		options := make([]model.Option, 0, len(qr.Options))
		for _, or := range qr.Options {
			if or.IsCorrect {
				correct++
			}
			options = append(options, model.Option{Text: or.Text, IsCorrect: or.IsCorrect})
		}
		if correct != 1 {
			return nil, fmt.Errorf("%w: question %d must have exactly one correct option", ErrInvalidQuestions, i+1)
		}
		orderNum := qr.OrderNum
		if orderNum == 0 {
			orderNum = i + 1
		}
		questions = append(questions, model.Question{
			QuestionText: qr.QuestionText,
			Options:      options,
			OrderNum:     orderNum,
		})
	}
	return questions, nil
}
