package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/edulane/edulane-backend/internal/model"
)

// Store interfaces consumed by the services. The repository package provides
// the pgx-backed implementations; tests substitute in-memory fakes. Missing
// rows are reported as pgx.ErrNoRows by all implementations.

// UserStore is the persistence surface for accounts.
type UserStore interface {
	GetByEmail(ctx context.Context, email string) (*model.User, error)
	GetByID(ctx context.Context, id int) (*model.User, error)
	Create(ctx context.Context, u *model.User) error
	UpdateName(ctx context.Context, id int, name string) error
}

// CourseStore is the persistence surface for the course catalog.
type CourseStore interface {
	GetByID(ctx context.Context, id uuid.UUID) (*model.Course, error)
	ListPaginated(ctx context.Context, category string, limit, offset int) ([]model.Course, int, error)
	Create(ctx context.Context, c *model.Course) error
	Update(ctx context.Context, c *model.Course) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// ContentStore is the persistence surface for course contents.
type ContentStore interface {
	GetByID(ctx context.Context, id uuid.UUID) (*model.Content, error)
	ListByCourse(ctx context.Context, courseID uuid.UUID) ([]model.Content, error)
	ListIDsByCourse(ctx context.Context, courseID uuid.UUID) ([]uuid.UUID, error)
	Create(ctx context.Context, c *model.Content) error
	Update(ctx context.Context, c *model.Content) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// EnrollmentStore is the persistence surface for enrollments.
type EnrollmentStore interface {
	GetByID(ctx context.Context, id uuid.UUID) (*model.Enrollment, error)
	GetByStudentAndCourse(ctx context.Context, studentID int, courseID uuid.UUID) (*model.Enrollment, error)
	Create(ctx context.Context, e *model.Enrollment) error
	Reopen(ctx context.Context, id uuid.UUID, paymentProofURL string) error
	SetStatus(ctx context.Context, id uuid.UUID, status model.EnrollmentStatus, approvedAt *time.Time) error
	ListByStudent(ctx context.Context, studentID int) ([]model.EnrollmentWithCourse, error)
	ListAll(ctx context.Context) ([]model.EnrollmentWithCourse, error)
}

// ProgressStore is the persistence surface for progress records.
// RecordExamResult is a compare-and-set: it must atomically refuse the write
// when exam_attempted is already true and report that via its bool result.
type ProgressStore interface {
	GetByStudentAndCourse(ctx context.Context, studentID int, courseID uuid.UUID) (*model.Progress, error)
	GetOrCreate(ctx context.Context, studentID int, courseID uuid.UUID) (*model.Progress, error)
	AddCompletedContent(ctx context.Context, studentID int, courseID, contentID uuid.UUID) (*model.Progress, error)
	RecordExamResult(ctx context.Context, studentID int, courseID uuid.UUID, score int, passed bool) (bool, error)
	MarkCertificateGenerated(ctx context.Context, studentID int, courseID uuid.UUID) error
	ListExamResultsByCourse(ctx context.Context, courseID uuid.UUID) ([]model.ExamResult, error)
}

// ExamStore is the persistence surface for exams and questions.
type ExamStore interface {
	GetByCourse(ctx context.Context, courseID uuid.UUID) (*model.Exam, error)
	ListQuestions(ctx context.Context, examID uuid.UUID) ([]model.Question, error)
	Create(ctx context.Context, e *model.Exam) error
	Update(ctx context.Context, e *model.Exam, replaceQuestions bool) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// CertificateStore is the persistence surface for certificates.
type CertificateStore interface {
	Create(ctx context.Context, c *model.Certificate) (bool, error)
	GetByStudentAndCourse(ctx context.Context, studentID int, courseID uuid.UUID) (*model.CertificateWithNames, error)
	ListByStudent(ctx context.Context, studentID int) ([]model.CertificateWithNames, error)
	ListAll(ctx context.Context) ([]model.CertificateWithNames, error)
}

// ReviewStore is the persistence surface for course reviews.
type ReviewStore interface {
	GetByStudentAndCourse(ctx context.Context, studentID int, courseID uuid.UUID) (*model.Review, error)
	Create(ctx context.Context, rev *model.Review) error
	Update(ctx context.Context, rev *model.Review) error
	Delete(ctx context.Context, id uuid.UUID) error
	ListByCourse(ctx context.Context, courseID uuid.UUID) ([]model.ReviewWithStudent, error)
}

// PaperCache caches sanitized exam papers. A nil PaperCache disables caching.
type PaperCache interface {
	Get(ctx context.Context, courseID string) (*model.ExamPaper, error)
	Set(ctx context.Context, paper *model.ExamPaper) error
	Invalidate(ctx context.Context, courseID string) error
}
