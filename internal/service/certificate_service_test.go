package service

import (
	"context"
	"errors"
	"os"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/edulane/edulane-backend/internal/model"
)

func TestCertificateIssuedOnlyOnPass(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()
	courseID, contentIDs := env.seedCourse(t, 1)
	studentID := env.seedApprovedStudent(t, courseID)
	exam := seedExam(t, env, courseID, 60, "q1", "q2")
	completeCourse(t, env, studentID, courseID, contentIDs)

	// Fail: one of two correct is 50, below 60.
	answers := map[string]int{exam.Questions[0].ID.String(): 0}
	outcome, err := env.takingSvc.Submit(ctx, studentID, courseID, &model.SubmitExamRequest{Answers: answers})
	if err != nil {
		t.Fatal(err)
	}
	if outcome.Passed {
		t.Fatal("expected fail")
	}
	if _, err := env.certificateSvc.GetMine(ctx, studentID, courseID); !errors.Is(err, ErrCertificateNotFound) {
		t.Errorf("err = %v, want ErrCertificateNotFound after fail", err)
	}
}

func TestCertificateIssuedOnExamPass(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()
	courseID, contentIDs := env.seedCourse(t, 1)
	studentID := env.seedApprovedStudent(t, courseID)
	exam := seedExam(t, env, courseID, 60, "q1")
	completeCourse(t, env, studentID, courseID, contentIDs)

	answers := map[string]int{exam.Questions[0].ID.String(): 0}
	if _, err := env.takingSvc.Submit(ctx, studentID, courseID, &model.SubmitExamRequest{Answers: answers}); err != nil {
		t.Fatal(err)
	}

	cert, err := env.certificateSvc.GetMine(ctx, studentID, courseID)
	if err != nil {
		t.Fatal(err)
	}
	if cert.Reason != model.ReasonExamPass {
		t.Errorf("reason = %s, want exam_pass", cert.Reason)
	}
	if cert.Score != 100 {
		t.Errorf("score = %d, want 100", cert.Score)
	}

	snap, err := env.progressSvc.GetProgress(ctx, studentID, courseID)
	if err != nil {
		t.Fatal(err)
	}
	if !snap.CertificateGenerated {
		t.Error("progress should record certificate_generated")
	}
}

func TestAdminOverrideRequiresThreshold(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()
	courseID, contentIDs := env.seedCourse(t, 5)
	studentID := env.seedApprovedStudent(t, courseID)

	// 3 of 5 is 60, below the 80 threshold.
	completeCourse(t, env, studentID, courseID, contentIDs[:3])
	if _, err := env.certificateSvc.SendByAdmin(ctx, studentID, courseID); !errors.Is(err, ErrCertNotEligible) {
		t.Fatalf("err at 60%% = %v, want ErrCertNotEligible", err)
	}

	// 4 of 5 is exactly 80.
	completeCourse(t, env, studentID, courseID, contentIDs[3:4])
	cert, err := env.certificateSvc.SendByAdmin(ctx, studentID, courseID)
	if err != nil {
		t.Fatalf("err at 80%% = %v", err)
	}
	if cert.Reason != model.ReasonAdminOverride {
		t.Errorf("reason = %s, want admin_override", cert.Reason)
	}
}

func TestAdminOverrideWithoutProgressRow(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()
	courseID, _ := env.seedCourse(t, 2)
	studentID := env.seedApprovedStudent(t, courseID)

	if _, err := env.certificateSvc.SendByAdmin(ctx, studentID, courseID); !errors.Is(err, ErrCertNotEligible) {
		t.Errorf("err = %v, want ErrCertNotEligible", err)
	}
}

func TestCertificateIssuanceIdempotent(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()
	courseID, contentIDs := env.seedCourse(t, 1)
	studentID := env.seedApprovedStudent(t, courseID)
	completeCourse(t, env, studentID, courseID, contentIDs)

	first, err := env.certificateSvc.SendByAdmin(ctx, studentID, courseID)
	if err != nil {
		t.Fatal(err)
	}
	second, err := env.certificateSvc.SendByAdmin(ctx, studentID, courseID)
	if err != nil {
		t.Fatal(err)
	}
	if first.CertificateID != second.CertificateID {
		t.Errorf("repeat issuance produced a different certificate: %s vs %s", first.CertificateID, second.CertificateID)
	}

	certs, err := env.certificateSvc.ListMine(ctx, studentID)
	if err != nil {
		t.Fatal(err)
	}
	if len(certs) != 1 {
		t.Errorf("certificates = %d, want 1", len(certs))
	}
}

func TestCertificateIDFormat(t *testing.T) {
	pattern := regexp.MustCompile(`^CERT-\d{4}-[0-9a-f]{8}$`)
	now := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	seen := map[string]bool{}
	for i := 0; i < 50; i++ {
		id := newCertificateID(now)
		if !pattern.MatchString(id) {
			t.Fatalf("certificate id %q does not match expected format", id)
		}
		if seen[id] {
			t.Fatalf("duplicate certificate id %q", id)
		}
		seen[id] = true
	}
}

func TestRenderPDF(t *testing.T) {
	fontPath := os.Getenv("CERT_FONT_PATH")
	if fontPath == "" {
		fontPath = "/usr/share/fonts/truetype/dejavu/DejaVuSans.ttf"
	}
	if _, err := os.Stat(fontPath); err != nil {
		t.Skipf("no TTF font available at %s", fontPath)
	}

	svc := NewCertificateService(newFakeCertificateStore(), newFakeProgressStore(), newFakeContentStore(), newFakeCourseStore(), newFakeUserStore(), fontPath)
	cert := &model.CertificateWithNames{
		Certificate: model.Certificate{
			CertificateID: "CERT-2026-abcd1234",
			Score:         92,
			IssuedAt:      time.Now(),
		},
		StudentName: "Ada Lovelace",
		CourseName:  "Go for Backend Developers",
	}

	pdf, err := svc.RenderPDF(cert)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(string(pdf), "%PDF") {
		t.Errorf("output does not start with %%PDF header")
	}
}
