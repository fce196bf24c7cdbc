package service

import (
	"context"
	"errors"
	"fmt"
	"math"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog/log"

	"github.com/edulane/edulane-backend/internal/model"
)

// Sentinel errors for the student exam flow.
var (
	ErrExamLocked      = errors.New("exam locked")
	ErrExamAttempted   = errors.New("exam already attempted")
	ErrExamNoQuestions = errors.New("exam has no questions")
)

// SubmitOutcome is the result of a graded submission.
type SubmitOutcome struct {
	Score             int                `json:"score"`
	Passed            bool               `json:"passed"`
	PassingPercentage int                `json:"passing_percentage"`
	CorrectAnswers    int                `json:"correct_answers"`
	TotalQuestions    int                `json:"total_questions"`
	Certificate       *model.Certificate `json:"certificate,omitempty"`
}

// ExamTakingService handles the student-facing exam flow: serving the
// sanitized paper and grading the single permitted submission.
type ExamTakingService struct {
	exams        ExamStore
	progress     ProgressStore
	contents     ContentStore
	enrollments  *EnrollmentService
	certificates *CertificateService
	cache        PaperCache
}

// NewExamTakingService creates a new ExamTakingService.
func NewExamTakingService(exams ExamStore, progress ProgressStore, contents ContentStore, enrollments *EnrollmentService, certificates *CertificateService, cache PaperCache) *ExamTakingService {
	return &ExamTakingService{
		exams:        exams,
		progress:     progress,
		contents:     contents,
		enrollments:  enrollments,
		certificates: certificates,
		cache:        cache,
	}
}

// GetPaper returns the sanitized exam paper for a student. The exam stays
// locked until every live content of the course is completed (and while the
// course has no exam at all); a student who already attempted it gets the
// attempted error instead of the paper.
func (s *ExamTakingService) GetPaper(ctx context.Context, studentID int, courseID uuid.UUID) (*model.ExamPaper, error) {
	progress, err := s.gate(ctx, studentID, courseID)
	if err != nil {
		return nil, err
	}
	if progress.ExamAttempted {
		return nil, ErrExamAttempted
	}

	if s.cache != nil {
		paper, err := s.cache.Get(ctx, courseID.String())
		if err != nil {
			log.Warn().Err(err).Str("course_id", courseID.String()).Msg("exam paper cache read failed")
		} else if paper != nil {
			return paper, nil
		}
	}

	exam, questions, err := s.loadExam(ctx, courseID)
	if err != nil {
		return nil, err
	}
	paper := BuildPaper(exam, questions)

	if s.cache != nil {
		if err := s.cache.Set(ctx, paper); err != nil {
			log.Warn().Err(err).Str("course_id", courseID.String()).Msg("exam paper cache write failed")
		}
	}
	return paper, nil
}

// Submit grades the student's answers and records the result. The write is
// a compare-and-set on exam_attempted: exactly one submission per student
// per course can ever land, concurrent duplicates get ErrExamAttempted.
// A passing result issues the certificate synchronously.
func (s *ExamTakingService) Submit(ctx context.Context, studentID int, courseID uuid.UUID, req *model.SubmitExamRequest) (*SubmitOutcome, error) {
	progress, err := s.gate(ctx, studentID, courseID)
	if err != nil {
		return nil, err
	}
	if progress.ExamAttempted {
		return nil, ErrExamAttempted
	}

	exam, questions, err := s.loadExam(ctx, courseID)
	if err != nil {
		return nil, err
	}

	correct := Grade(questions, req.Answers)
	score := int(math.Round(float64(correct) / float64(len(questions)) * 100))
	passed := score >= exam.PassingPercentage

	recorded, err := s.progress.RecordExamResult(ctx, studentID, courseID, score, passed)
	if err != nil {
		return nil, fmt.Errorf("record exam result: %w", err)
	}
	if !recorded {
		return nil, ErrExamAttempted
	}

	outcome := &SubmitOutcome{
		Score:             score,
		Passed:            passed,
		PassingPercentage: exam.PassingPercentage,
		CorrectAnswers:    correct,
		TotalQuestions:    len(questions),
	}

	if passed {
		cert, err := s.certificates.IssueForExamPass(ctx, studentID, courseID, score)
		if err != nil {
			// The exam result is already durable. Surface the failure but
			// keep the submission response intact.
			log.Error().Err(err).
				Int("student_id", studentID).
				Str("course_id", courseID.String()).
				Msg("certificate issuance after exam pass failed")
		} else {
			outcome.Certificate = cert
		}
	}
	return outcome, nil
}

// gate enforces the approved-enrollment and full-completion requirements
// shared by paper retrieval and submission.
func (s *ExamTakingService) gate(ctx context.Context, studentID int, courseID uuid.UUID) (*model.Progress, error) {
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
	if computePercentage(progress.CompletedContents, liveIDs) < 100 {
		return nil, ErrExamLocked
	}
	return progress, nil
}

func (s *ExamTakingService) loadExam(ctx context.Context, courseID uuid.UUID) (*model.Exam, []model.Question, error) {
	exam, err := s.exams.GetByCourse(ctx, courseID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			// A course without an exam stays in the locked state for
			// students, regardless of their completion percentage.
			return nil, nil, ErrExamLocked
		}
		return nil, nil, fmt.Errorf("get exam: %w", err)
	}
	questions, err := s.exams.ListQuestions(ctx, exam.ID)
	if err != nil {
		return nil, nil, fmt.Errorf("list questions: %w", err)
	}
	if len(questions) == 0 {
		return nil, nil, ErrExamNoQuestions
	}
	return exam, questions, nil
}

// BuildPaper strips answer keys from an exam, producing the student view.
func BuildPaper(exam *model.Exam, questions []model.Question) *model.ExamPaper {
	paper := &model.ExamPaper{
		ExamID:            exam.ID,
		CourseID:          exam.CourseID,
		Title:             exam.Title,
		PassingPercentage: exam.PassingPercentage,
		DurationMinutes:   exam.DurationMinutes,
		Questions:         make([]model.PaperQuestion, 0, len(questions)),
	}
	for _, q := range questions {
		pq := model.PaperQuestion{
			ID:           q.ID,
			QuestionText: q.QuestionText,
			Options:      make([]model.PaperOption, 0, len(q.Options)),
			OrderNum:     q.OrderNum,
		}
		for _, o := range q.Options {
			pq.Options = append(pq.Options, model.PaperOption{Text: o.Text})
		}
		paper.Questions = append(paper.Questions, pq)
	}
	return paper
}

// Grade counts correct answers. Missing answers and out-of-range indexes
// count as incorrect; answers for unknown question IDs are ignored.
func Grade(questions []model.Question, answers map[string]int) int {
	correct := 0
	for _, q := range questions {
		idx, ok := answers[q.ID.String()]
		if !ok {
			continue
		}
		if idx >= 0 && idx < len(q.Options) && idx == q.CorrectIndex() {
			correct++
		}
	}
	return correct
}
