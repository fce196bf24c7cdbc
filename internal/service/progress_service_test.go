package service

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"

	"github.com/edulane/edulane-backend/internal/model"
)

// testEnv bundles the fakes and services most tests need.
type testEnv struct {
	users        *fakeUserStore
	courses      *fakeCourseStore
	contents     *fakeContentStore
	enrollments  *fakeEnrollmentStore
	progress     *fakeProgressStore
	exams        *fakeExamStore
	certificates *fakeCertificateStore
	reviews      *fakeReviewStore

	enrollmentSvc  *EnrollmentService
	progressSvc    *ProgressService
	certificateSvc *CertificateService
	takingSvc      *ExamTakingService
	reviewSvc      *ReviewService
}

func newTestEnv() *testEnv {
	env := &testEnv{
		users:        newFakeUserStore(),
		courses:      newFakeCourseStore(),
		contents:     newFakeContentStore(),
		enrollments:  newFakeEnrollmentStore(),
		progress:     newFakeProgressStore(),
		exams:        newFakeExamStore(),
		certificates: newFakeCertificateStore(),
		reviews:      newFakeReviewStore(),
	}
	env.enrollmentSvc = NewEnrollmentService(env.enrollments, env.courses)
	env.progressSvc = NewProgressService(env.progress, env.contents, env.enrollmentSvc)
	env.certificateSvc = NewCertificateService(env.certificates, env.progress, env.contents, env.courses, env.users, "")
	env.takingSvc = NewExamTakingService(env.exams, env.progress, env.contents, env.enrollmentSvc, env.certificateSvc, nil)
	env.reviewSvc = NewReviewService(env.reviews, env.courses, env.enrollmentSvc)
	return env
}

// seedCourse creates a course with n contents and returns the course ID plus
// content IDs in creation order.
func (env *testEnv) seedCourse(t *testing.T, n int) (uuid.UUID, []uuid.UUID) {
	t.Helper()
	ctx := context.Background()
	course := &model.Course{Name: "Test Course", Category: "Testing", ReviewEnabled: true}
	if err := env.courses.Create(ctx, course); err != nil {
		t.Fatalf("create course: %v", err)
	}
	ids := make([]uuid.UUID, 0, n)
	for i := 0; i < n; i++ {
		content := &model.Content{
			CourseID: course.ID,
			Title:    "Lesson",
			Type:     model.ContentTypeLink,
			URL:      "https://example.com",
			OrderNum: i + 1,
		}
		if err := env.contents.Create(ctx, content); err != nil {
			t.Fatalf("create content: %v", err)
		}
		ids = append(ids, content.ID)
	}
	return course.ID, ids
}

// seedApprovedStudent creates a student with an approved enrollment.
func (env *testEnv) seedApprovedStudent(t *testing.T, courseID uuid.UUID) int {
	t.Helper()
	ctx := context.Background()
	user := &model.User{Name: "Student", Email: uuid.New().String() + "@example.com", Role: model.RoleStudent}
	if err := env.users.Create(ctx, user); err != nil {
		t.Fatalf("create user: %v", err)
	}
	enrollment, err := env.enrollmentSvc.Enroll(ctx, user.ID, courseID, "/uploads/proof.png")
	if err != nil {
		t.Fatalf("enroll: %v", err)
	}
	if _, err := env.enrollmentSvc.Approve(ctx, enrollment.ID); err != nil {
		t.Fatalf("approve: %v", err)
	}
	return user.ID
}

func TestMarkContentCompletePercentage(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()
	courseID, contentIDs := env.seedCourse(t, 3)
	studentID := env.seedApprovedStudent(t, courseID)

	snap, err := env.progressSvc.MarkContentComplete(ctx, studentID, courseID, contentIDs[0])
	if err != nil {
		t.Fatalf("mark complete: %v", err)
	}
	if snap.ProgressPercentage != 33 {
		t.Errorf("percentage = %d, want 33", snap.ProgressPercentage)
	}

	snap, err = env.progressSvc.MarkContentComplete(ctx, studentID, courseID, contentIDs[1])
	if err != nil {
		t.Fatalf("mark complete: %v", err)
	}
	if snap.ProgressPercentage != 67 {
		t.Errorf("percentage = %d, want 67", snap.ProgressPercentage)
	}

	snap, err = env.progressSvc.MarkContentComplete(ctx, studentID, courseID, contentIDs[2])
	if err != nil {
		t.Fatalf("mark complete: %v", err)
	}
	if snap.ProgressPercentage != 100 {
		t.Errorf("percentage = %d, want 100", snap.ProgressPercentage)
	}
}

func TestMarkContentCompleteIdempotent(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()
	courseID, contentIDs := env.seedCourse(t, 2)
	studentID := env.seedApprovedStudent(t, courseID)

	for i := 0; i < 3; i++ {
		snap, err := env.progressSvc.MarkContentComplete(ctx, studentID, courseID, contentIDs[0])
		if err != nil {
			t.Fatalf("mark complete: %v", err)
		}
		if got := len(snap.CompletedContents); got != 1 {
			t.Fatalf("completed count = %d, want 1", got)
		}
		if snap.ProgressPercentage != 50 {
			t.Errorf("percentage = %d, want 50", snap.ProgressPercentage)
		}
	}
}

func TestMarkContentCompleteRequiresApprovedEnrollment(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()
	courseID, contentIDs := env.seedCourse(t, 1)

	user := &model.User{Name: "Pending", Email: "pending@example.com", Role: model.RoleStudent}
	if err := env.users.Create(ctx, user); err != nil {
		t.Fatal(err)
	}

	// No enrollment at all.
	if _, err := env.progressSvc.MarkContentComplete(ctx, user.ID, courseID, contentIDs[0]); !errors.Is(err, ErrEnrollmentNotFound) {
		t.Errorf("err = %v, want ErrEnrollmentNotFound", err)
	}

	// Pending enrollment.
	if _, err := env.enrollmentSvc.Enroll(ctx, user.ID, courseID, "/uploads/p.png"); err != nil {
		t.Fatal(err)
	}
	if _, err := env.progressSvc.MarkContentComplete(ctx, user.ID, courseID, contentIDs[0]); !errors.Is(err, ErrEnrollmentNotApproved) {
		t.Errorf("err = %v, want ErrEnrollmentNotApproved", err)
	}
}

func TestMarkContentCompleteUnknownContent(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()
	courseID, _ := env.seedCourse(t, 1)
	studentID := env.seedApprovedStudent(t, courseID)

	if _, err := env.progressSvc.MarkContentComplete(ctx, studentID, courseID, uuid.New()); !errors.Is(err, ErrContentNotFound) {
		t.Errorf("err = %v, want ErrContentNotFound", err)
	}
}

func TestProgressPercentageAfterContentDeletion(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()
	courseID, contentIDs := env.seedCourse(t, 4)
	studentID := env.seedApprovedStudent(t, courseID)

	for _, id := range contentIDs[:2] {
		if _, err := env.progressSvc.MarkContentComplete(ctx, studentID, courseID, id); err != nil {
			t.Fatal(err)
		}
	}

	// Deleting a completed content shrinks both sides of the ratio: the
	// stale reference is ignored and the denominator follows the live set.
	if err := env.contents.Delete(ctx, contentIDs[0]); err != nil {
		t.Fatal(err)
	}

	snap, err := env.progressSvc.GetProgress(ctx, studentID, courseID)
	if err != nil {
		t.Fatal(err)
	}
	if snap.TotalContents != 3 {
		t.Errorf("total = %d, want 3", snap.TotalContents)
	}
	if snap.ProgressPercentage != 33 {
		t.Errorf("percentage = %d, want 33", snap.ProgressPercentage)
	}
	if snap.ProgressPercentage < 0 || snap.ProgressPercentage > 100 {
		t.Errorf("percentage %d out of bounds", snap.ProgressPercentage)
	}
}

func TestProgressZeroContents(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()
	courseID, _ := env.seedCourse(t, 0)
	studentID := env.seedApprovedStudent(t, courseID)

	snap, err := env.progressSvc.GetProgress(ctx, studentID, courseID)
	if err != nil {
		t.Fatal(err)
	}
	if snap.ProgressPercentage != 0 {
		t.Errorf("percentage = %d, want 0 for empty course", snap.ProgressPercentage)
	}
}

func TestComputePercentageRounding(t *testing.T) {
	live := []uuid.UUID{uuid.New(), uuid.New(), uuid.New()}
	cases := []struct {
		completed int
		want      int
	}{
		{0, 0},
		{1, 33},
		{2, 67},
		{3, 100},
	}
	for _, tc := range cases {
		if got := computePercentage(live[:tc.completed], live); got != tc.want {
			t.Errorf("computePercentage(%d of 3) = %d, want %d", tc.completed, got, tc.want)
		}
	}
}
