package service

import (
	"context"
	"errors"
	"testing"

	"github.com/edulane/edulane-backend/internal/model"
)

func TestReviewRequiresApprovedEnrollment(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()
	courseID, _ := env.seedCourse(t, 1)

	user := &model.User{Name: "S", Email: "s@example.com", Role: model.RoleStudent}
	if err := env.users.Create(ctx, user); err != nil {
		t.Fatal(err)
	}

	req := &model.ReviewRequest{Rating: 5, Comment: "great"}
	if _, err := env.reviewSvc.Create(ctx, user.ID, courseID, req); !errors.Is(err, ErrEnrollmentNotFound) {
		t.Errorf("err = %v, want ErrEnrollmentNotFound", err)
	}

	enrollment, err := env.enrollmentSvc.Enroll(ctx, user.ID, courseID, "/uploads/p.png")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := env.reviewSvc.Create(ctx, user.ID, courseID, req); !errors.Is(err, ErrEnrollmentNotApproved) {
		t.Errorf("err = %v, want ErrEnrollmentNotApproved", err)
	}

	if _, err := env.enrollmentSvc.Approve(ctx, enrollment.ID); err != nil {
		t.Fatal(err)
	}
	review, err := env.reviewSvc.Create(ctx, user.ID, courseID, req)
	if err != nil {
		t.Fatal(err)
	}
	if review.Rating != 5 {
		t.Errorf("rating = %d, want 5", review.Rating)
	}
}

func TestReviewOnePerStudentPerCourse(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()
	courseID, _ := env.seedCourse(t, 1)
	studentID := env.seedApprovedStudent(t, courseID)

	req := &model.ReviewRequest{Rating: 4}
	if _, err := env.reviewSvc.Create(ctx, studentID, courseID, req); err != nil {
		t.Fatal(err)
	}
	if _, err := env.reviewSvc.Create(ctx, studentID, courseID, req); !errors.Is(err, ErrReviewExists) {
		t.Errorf("err = %v, want ErrReviewExists", err)
	}

	// Updating the existing review is the supported path.
	updated, err := env.reviewSvc.Update(ctx, studentID, courseID, &model.ReviewRequest{Rating: 2, Comment: "changed my mind"})
	if err != nil {
		t.Fatal(err)
	}
	if updated.Rating != 2 {
		t.Errorf("rating = %d, want 2", updated.Rating)
	}
}

func TestReviewDisabledCourse(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()
	courseID, _ := env.seedCourse(t, 1)
	studentID := env.seedApprovedStudent(t, courseID)

	course, err := env.courses.GetByID(ctx, courseID)
	if err != nil {
		t.Fatal(err)
	}
	course.ReviewEnabled = false
	if err := env.courses.Update(ctx, course); err != nil {
		t.Fatal(err)
	}

	if _, err := env.reviewSvc.Create(ctx, studentID, courseID, &model.ReviewRequest{Rating: 5}); !errors.Is(err, ErrReviewDisabled) {
		t.Errorf("err = %v, want ErrReviewDisabled", err)
	}
}

func TestReviewDeleteGatedByToggle(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()
	courseID, _ := env.seedCourse(t, 1)
	studentID := env.seedApprovedStudent(t, courseID)

	if _, err := env.reviewSvc.Create(ctx, studentID, courseID, &model.ReviewRequest{Rating: 4}); err != nil {
		t.Fatal(err)
	}

	course, err := env.courses.GetByID(ctx, courseID)
	if err != nil {
		t.Fatal(err)
	}
	course.ReviewEnabled = false
	if err := env.courses.Update(ctx, course); err != nil {
		t.Fatal(err)
	}

	// The toggle covers delete like any other mutation.
	if err := env.reviewSvc.Delete(ctx, studentID, courseID); !errors.Is(err, ErrReviewDisabled) {
		t.Errorf("err = %v, want ErrReviewDisabled", err)
	}

	course.ReviewEnabled = true
	if err := env.courses.Update(ctx, course); err != nil {
		t.Fatal(err)
	}
	if err := env.reviewSvc.Delete(ctx, studentID, courseID); err != nil {
		t.Fatal(err)
	}
}

func TestReviewDelete(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()
	courseID, _ := env.seedCourse(t, 1)
	studentID := env.seedApprovedStudent(t, courseID)

	if _, err := env.reviewSvc.Create(ctx, studentID, courseID, &model.ReviewRequest{Rating: 3}); err != nil {
		t.Fatal(err)
	}
	if err := env.reviewSvc.Delete(ctx, studentID, courseID); err != nil {
		t.Fatal(err)
	}
	if err := env.reviewSvc.Delete(ctx, studentID, courseID); !errors.Is(err, ErrReviewNotFound) {
		t.Errorf("err = %v, want ErrReviewNotFound", err)
	}
}
