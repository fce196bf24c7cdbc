package service

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/edulane/edulane-backend/internal/model"
)

// In-memory store fakes. All report missing rows as pgx.ErrNoRows, matching
// the pgx-backed implementations.

type fakeUserStore struct {
	mu    sync.Mutex
	users map[int]*model.User
	next  int
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{users: make(map[int]*model.User), next: 1}
}

func (f *fakeUserStore) GetByEmail(_ context.Context, email string) (*model.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (f *fakeUserStore) GetByID(_ context.Context, id int) (*model.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.users[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	cp := *u
	return &cp, nil
}

func (f *fakeUserStore) Create(_ context.Context, u *model.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	u.ID = f.next
	f.next++
	u.CreatedAt = time.Now()
	u.UpdatedAt = u.CreatedAt
	cp := *u
	f.users[u.ID] = &cp
	return nil
}

func (f *fakeUserStore) UpdateName(_ context.Context, id int, name string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.users[id]
	if !ok {
		return pgx.ErrNoRows
	}
	u.Name = name
	return nil
}

type fakeCourseStore struct {
	mu      sync.Mutex
	courses map[uuid.UUID]*model.Course
}

func newFakeCourseStore() *fakeCourseStore {
	return &fakeCourseStore{courses: make(map[uuid.UUID]*model.Course)}
}

func (f *fakeCourseStore) GetByID(_ context.Context, id uuid.UUID) (*model.Course, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	c, ok := f.courses[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	cp := *c
	return &cp, nil
}

func (f *fakeCourseStore) ListPaginated(_ context.Context, category string, limit, offset int) ([]model.Course, int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var all []model.Course
	for _, c := range f.courses {
		if category == "" || c.Category == category {
			all = append(all, *c)
		}
	}
	total := len(all)
	if offset >= len(all) {
		return nil, total, nil
	}
	end := offset + limit
	if end > len(all) {
		end = len(all)
	}
	return all[offset:end], total, nil
}

func (f *fakeCourseStore) Create(_ context.Context, c *model.Course) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	c.CreatedAt = time.Now()
	c.UpdatedAt = c.CreatedAt
	cp := *c
	f.courses[c.ID] = &cp
	return nil
}

func (f *fakeCourseStore) Update(_ context.Context, c *model.Course) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.courses[c.ID]; !ok {
		return pgx.ErrNoRows
	}
	cp := *c
	f.courses[c.ID] = &cp
	return nil
}

func (f *fakeCourseStore) Delete(_ context.Context, id uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.courses, id)
	return nil
}

type fakeContentStore struct {
	mu       sync.Mutex
	contents map[uuid.UUID]*model.Content
}

func newFakeContentStore() *fakeContentStore {
	return &fakeContentStore{contents: make(map[uuid.UUID]*model.Content)}
}

func (f *fakeContentStore) GetByID(_ context.Context, id uuid.UUID) (*model.Content, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	c, ok := f.contents[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	cp := *c
	return &cp, nil
}

func (f *fakeContentStore) ListByCourse(_ context.Context, courseID uuid.UUID) ([]model.Content, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []model.Content
	for _, c := range f.contents {
		if c.CourseID == courseID {
			out = append(out, *c)
		}
	}
	return out, nil
}

func (f *fakeContentStore) ListIDsByCourse(_ context.Context, courseID uuid.UUID) ([]uuid.UUID, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []uuid.UUID
	for _, c := range f.contents {
		if c.CourseID == courseID {
			out = append(out, c.ID)
		}
	}
	return out, nil
}

func (f *fakeContentStore) Create(_ context.Context, c *model.Content) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	c.CreatedAt = time.Now()
	cp := *c
	f.contents[c.ID] = &cp
	return nil
}

func (f *fakeContentStore) Update(_ context.Context, c *model.Content) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.contents[c.ID]; !ok {
		return pgx.ErrNoRows
	}
	cp := *c
	f.contents[c.ID] = &cp
	return nil
}

func (f *fakeContentStore) Delete(_ context.Context, id uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.contents, id)
	return nil
}

type enrollmentKey struct {
	studentID int
	courseID  uuid.UUID
}

type fakeEnrollmentStore struct {
	mu   sync.Mutex
	rows map[uuid.UUID]*model.Enrollment
}

func newFakeEnrollmentStore() *fakeEnrollmentStore {
	return &fakeEnrollmentStore{rows: make(map[uuid.UUID]*model.Enrollment)}
}

func (f *fakeEnrollmentStore) GetByID(_ context.Context, id uuid.UUID) (*model.Enrollment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	e, ok := f.rows[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	cp := *e
	return &cp, nil
}

func (f *fakeEnrollmentStore) GetByStudentAndCourse(_ context.Context, studentID int, courseID uuid.UUID) (*model.Enrollment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, e := range f.rows {
		if e.StudentID == studentID && e.CourseID == courseID {
			cp := *e
			return &cp, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (f *fakeEnrollmentStore) Create(_ context.Context, e *model.Enrollment) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	e.ID = uuid.New()
	e.Status = model.EnrollmentStatusPending
	e.EnrolledAt = time.Now()
	cp := *e
	f.rows[e.ID] = &cp
	return nil
}

func (f *fakeEnrollmentStore) Reopen(_ context.Context, id uuid.UUID, paymentProofURL string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	e, ok := f.rows[id]
	if !ok {
		return pgx.ErrNoRows
	}
	e.Status = model.EnrollmentStatusPending
	e.PaymentProofURL = paymentProofURL
	e.EnrolledAt = time.Now()
	e.ApprovedAt = nil
	return nil
}

func (f *fakeEnrollmentStore) SetStatus(_ context.Context, id uuid.UUID, status model.EnrollmentStatus, approvedAt *time.Time) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	e, ok := f.rows[id]
	if !ok {
		return pgx.ErrNoRows
	}
	e.Status = status
	e.ApprovedAt = approvedAt
	return nil
}

func (f *fakeEnrollmentStore) ListByStudent(_ context.Context, studentID int) ([]model.EnrollmentWithCourse, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []model.EnrollmentWithCourse
	for _, e := range f.rows {
		if e.StudentID == studentID {
			out = append(out, model.EnrollmentWithCourse{Enrollment: *e})
		}
	}
	return out, nil
}

func (f *fakeEnrollmentStore) ListAll(_ context.Context) ([]model.EnrollmentWithCourse, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []model.EnrollmentWithCourse
	for _, e := range f.rows {
		out = append(out, model.EnrollmentWithCourse{Enrollment: *e})
	}
	return out, nil
}

type fakeProgressStore struct {
	mu   sync.Mutex
	rows map[enrollmentKey]*model.Progress
}

func newFakeProgressStore() *fakeProgressStore {
	return &fakeProgressStore{rows: make(map[enrollmentKey]*model.Progress)}
}

func (f *fakeProgressStore) get(studentID int, courseID uuid.UUID) *model.Progress {
	return f.rows[enrollmentKey{studentID, courseID}]
}

func (f *fakeProgressStore) GetByStudentAndCourse(_ context.Context, studentID int, courseID uuid.UUID) (*model.Progress, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	p := f.get(studentID, courseID)
	if p == nil {
		return nil, pgx.ErrNoRows
	}
	cp := *p
	cp.CompletedContents = append([]uuid.UUID(nil), p.CompletedContents...)
	return &cp, nil
}

func (f *fakeProgressStore) GetOrCreate(_ context.Context, studentID int, courseID uuid.UUID) (*model.Progress, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	p := f.get(studentID, courseID)
	if p == nil {
		p = &model.Progress{
			ID:                uuid.New(),
			StudentID:         studentID,
			CourseID:          courseID,
			CompletedContents: []uuid.UUID{},
		}
		f.rows[enrollmentKey{studentID, courseID}] = p
	}
	p.LastAccessedAt = time.Now()
	cp := *p
	cp.CompletedContents = append([]uuid.UUID(nil), p.CompletedContents...)
	return &cp, nil
}

func (f *fakeProgressStore) AddCompletedContent(_ context.Context, studentID int, courseID, contentID uuid.UUID) (*model.Progress, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	p := f.get(studentID, courseID)
	if p == nil {
		return nil, pgx.ErrNoRows
	}
	found := false
	for _, id := range p.CompletedContents {
		if id == contentID {
			found = true
			break
		}
	}
	if !found {
		p.CompletedContents = append(p.CompletedContents, contentID)
	}
	p.LastAccessedAt = time.Now()
	cp := *p
	cp.CompletedContents = append([]uuid.UUID(nil), p.CompletedContents...)
	return &cp, nil
}

// RecordExamResult mirrors the conditional UPDATE of the pgx implementation:
// the write lands only when exam_attempted is still false.
func (f *fakeProgressStore) RecordExamResult(_ context.Context, studentID int, courseID uuid.UUID, score int, passed bool) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	p := f.get(studentID, courseID)
	if p == nil || p.ExamAttempted {
		return false, nil
	}
	p.ExamAttempted = true
	p.ExamPassed = passed
	p.ExamScore = &score
	p.LastAccessedAt = time.Now()
	return true, nil
}

func (f *fakeProgressStore) MarkCertificateGenerated(_ context.Context, studentID int, courseID uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	p := f.get(studentID, courseID)
	if p == nil {
		return pgx.ErrNoRows
	}
	p.CertificateGenerated = true
	return nil
}

func (f *fakeProgressStore) ListExamResultsByCourse(_ context.Context, courseID uuid.UUID) ([]model.ExamResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []model.ExamResult
	for _, p := range f.rows {
		if p.CourseID == courseID && p.ExamAttempted {
			score := 0
			if p.ExamScore != nil {
				score = *p.ExamScore
			}
			out = append(out, model.ExamResult{
				StudentID:      p.StudentID,
				ExamScore:      score,
				ExamPassed:     p.ExamPassed,
				LastAccessedAt: p.LastAccessedAt,
			})
		}
	}
	return out, nil
}

type fakeExamStore struct {
	mu        sync.Mutex
	exams     map[uuid.UUID]*model.Exam
	questions map[uuid.UUID][]model.Question
}

func newFakeExamStore() *fakeExamStore {
	return &fakeExamStore{
		exams:     make(map[uuid.UUID]*model.Exam),
		questions: make(map[uuid.UUID][]model.Question),
	}
}

func (f *fakeExamStore) GetByCourse(_ context.Context, courseID uuid.UUID) (*model.Exam, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, e := range f.exams {
		if e.CourseID == courseID {
			cp := *e
			cp.Questions = nil
			return &cp, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (f *fakeExamStore) ListQuestions(_ context.Context, examID uuid.UUID) ([]model.Question, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]model.Question(nil), f.questions[examID]...), nil
}

func (f *fakeExamStore) Create(_ context.Context, e *model.Exam) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	e.ID = uuid.New()
	e.CreatedAt = time.Now()
	e.UpdatedAt = e.CreatedAt
	qs := make([]model.Question, len(e.Questions))
	copy(qs, e.Questions)
	for i := range qs {
		qs[i].ID = uuid.New()
		qs[i].ExamID = e.ID
	}
	e.Questions = qs
	cp := *e
	f.exams[e.ID] = &cp
	f.questions[e.ID] = qs
	return nil
}

func (f *fakeExamStore) Update(_ context.Context, e *model.Exam, replaceQuestions bool) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.exams[e.ID]; !ok {
		return pgx.ErrNoRows
	}
	cp := *e
	f.exams[e.ID] = &cp
	if replaceQuestions {
		qs := make([]model.Question, len(e.Questions))
		copy(qs, e.Questions)
		for i := range qs {
			if qs[i].ID == uuid.Nil {
				qs[i].ID = uuid.New()
			}
			qs[i].ExamID = e.ID
		}
		f.questions[e.ID] = qs
	}
	return nil
}

func (f *fakeExamStore) Delete(_ context.Context, id uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.exams, id)
	delete(f.questions, id)
	return nil
}

type fakeCertificateStore struct {
	mu   sync.Mutex
	rows map[enrollmentKey]*model.Certificate
}

func newFakeCertificateStore() *fakeCertificateStore {
	return &fakeCertificateStore{rows: make(map[enrollmentKey]*model.Certificate)}
}

// Create mirrors ON CONFLICT DO NOTHING: the second insert for a pair
// reports false without error.
func (f *fakeCertificateStore) Create(_ context.Context, c *model.Certificate) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	key := enrollmentKey{c.StudentID, c.CourseID}
	if _, ok := f.rows[key]; ok {
		return false, nil
	}
	c.ID = uuid.New()
	c.IssuedAt = time.Now()
	cp := *c
	f.rows[key] = &cp
	return true, nil
}

func (f *fakeCertificateStore) GetByStudentAndCourse(_ context.Context, studentID int, courseID uuid.UUID) (*model.CertificateWithNames, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	c, ok := f.rows[enrollmentKey{studentID, courseID}]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return &model.CertificateWithNames{Certificate: *c}, nil
}

func (f *fakeCertificateStore) ListByStudent(_ context.Context, studentID int) ([]model.CertificateWithNames, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []model.CertificateWithNames
	for _, c := range f.rows {
		if c.StudentID == studentID {
			out = append(out, model.CertificateWithNames{Certificate: *c})
		}
	}
	return out, nil
}

func (f *fakeCertificateStore) ListAll(_ context.Context) ([]model.CertificateWithNames, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []model.CertificateWithNames
	for _, c := range f.rows {
		out = append(out, model.CertificateWithNames{Certificate: *c})
	}
	return out, nil
}

type fakeReviewStore struct {
	mu   sync.Mutex
	rows map[uuid.UUID]*model.Review
}

func newFakeReviewStore() *fakeReviewStore {
	return &fakeReviewStore{rows: make(map[uuid.UUID]*model.Review)}
}

func (f *fakeReviewStore) GetByStudentAndCourse(_ context.Context, studentID int, courseID uuid.UUID) (*model.Review, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, r := range f.rows {
		if r.StudentID == studentID && r.CourseID == courseID {
			cp := *r
			return &cp, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (f *fakeReviewStore) Create(_ context.Context, rev *model.Review) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	rev.ID = uuid.New()
	rev.CreatedAt = time.Now()
	rev.UpdatedAt = rev.CreatedAt
	cp := *rev
	f.rows[rev.ID] = &cp
	return nil
}

func (f *fakeReviewStore) Update(_ context.Context, rev *model.Review) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.rows[rev.ID]; !ok {
		return pgx.ErrNoRows
	}
	cp := *rev
	f.rows[rev.ID] = &cp
	return nil
}

func (f *fakeReviewStore) Delete(_ context.Context, id uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.rows, id)
	return nil
}

func (f *fakeReviewStore) ListByCourse(_ context.Context, courseID uuid.UUID) ([]model.ReviewWithStudent, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []model.ReviewWithStudent
	for _, r := range f.rows {
		if r.CourseID == courseID {
			out = append(out, model.ReviewWithStudent{Review: *r})
		}
	}
	return out, nil
}
