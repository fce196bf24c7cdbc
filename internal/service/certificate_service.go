package service

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/signintech/gopdf"

	"github.com/edulane/edulane-backend/internal/model"
)

// Sentinel errors for certificate operations.
var (
	ErrCertificateNotFound = errors.New("certificate not found")
	ErrCertNotEligible     = errors.New("student not eligible for a certificate")
)

// overrideThreshold is the minimum completion percentage for the manual
// admin path.
const overrideThreshold = 80

// CertificateService issues and serves certificates. Two independent paths
// lead to issuance: a passing exam result, or an admin override for a
// student at or above the completion threshold.
type CertificateService struct {
	certificates CertificateStore
	progress     ProgressStore
	contents     ContentStore
	courses      CourseStore
	users        UserStore
	fontPath     string
}

// NewCertificateService creates a new CertificateService. fontPath is the
// TTF font used for PDF rendering.
func NewCertificateService(certificates CertificateStore, progress ProgressStore, contents ContentStore, courses CourseStore, users UserStore, fontPath string) *CertificateService {
	return &CertificateService{
		certificates: certificates,
		progress:     progress,
		contents:     contents,
		courses:      courses,
		users:        users,
		fontPath:     fontPath,
	}
}

// IssueForExamPass records a certificate after a passing exam submission.
// Issuance is idempotent per student and course: when a certificate already
// exists the existing one is returned.
func (s *CertificateService) IssueForExamPass(ctx context.Context, studentID int, courseID uuid.UUID, score int) (*model.Certificate, error) {
	return s.issue(ctx, studentID, courseID, score, model.ReasonExamPass)
}

// SendByAdmin is the manual override path. The student must have completion
// at or above the override threshold; exam state is not consulted.
func (s *CertificateService) SendByAdmin(ctx context.Context, studentID int, courseID uuid.UUID) (*model.Certificate, error) {
	if _, err := s.users.GetByID(ctx, studentID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("get user: %w", err)
	}
	if _, err := s.courses.GetByID(ctx, courseID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrCourseNotFound
		}
		return nil, fmt.Errorf("get course: %w", err)
	}

	progress, err := s.progress.GetByStudentAndCourse(ctx, studentID, courseID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrCertNotEligible
		}
		return nil, fmt.Errorf("get progress: %w", err)
	}
	liveIDs, err := s.contents.ListIDsByCourse(ctx, courseID)
	if err != nil {
		return nil, fmt.Errorf("list content ids: %w", err)
	}
	pct := computePercentage(progress.CompletedContents, liveIDs)
	if pct < overrideThreshold {
		return nil, ErrCertNotEligible
	}

	score := pct
	if progress.ExamScore != nil {
		score = *progress.ExamScore
	}
	return s.issue(ctx, studentID, courseID, score, model.ReasonAdminOverride)
}

func (s *CertificateService) issue(ctx context.Context, studentID int, courseID uuid.UUID, score int, reason model.CertificateReason) (*model.Certificate, error) {
	cert := &model.Certificate{
		CertificateID: newCertificateID(time.Now()),
		StudentID:     studentID,
		CourseID:      courseID,
		Score:         score,
		Reason:        reason,
	}
	inserted, err := s.certificates.Create(ctx, cert)
	if err != nil {
		return nil, fmt.Errorf("create certificate: %w", err)
	}
	if !inserted {
		existing, err := s.certificates.GetByStudentAndCourse(ctx, studentID, courseID)
		if err != nil {
			return nil, fmt.Errorf("get certificate: %w", err)
		}
		return &existing.Certificate, nil
	}
	if err := s.progress.MarkCertificateGenerated(ctx, studentID, courseID); err != nil {
		return nil, fmt.Errorf("mark certificate generated: %w", err)
	}
	return cert, nil
}

// GetMine returns the student's certificate for a course.
func (s *CertificateService) GetMine(ctx context.Context, studentID int, courseID uuid.UUID) (*model.CertificateWithNames, error) {
	cert, err := s.certificates.GetByStudentAndCourse(ctx, studentID, courseID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrCertificateNotFound
		}
		return nil, fmt.Errorf("get certificate: %w", err)
	}
	return cert, nil
}

// ListMine returns every certificate held by a student.
func (s *CertificateService) ListMine(ctx context.Context, studentID int) ([]model.CertificateWithNames, error) {
	certs, err := s.certificates.ListByStudent(ctx, studentID)
	if err != nil {
		return nil, fmt.Errorf("list certificates: %w", err)
	}
	return certs, nil
}

// ListAll returns every issued certificate for the admin dashboard.
func (s *CertificateService) ListAll(ctx context.Context) ([]model.CertificateWithNames, error) {
	certs, err := s.certificates.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list certificates: %w", err)
	}
	return certs, nil
}

// RenderPDF renders a certificate as a landscape A4 PDF.
func (s *CertificateService) RenderPDF(cert *model.CertificateWithNames) ([]byte, error) {
	pdf := gopdf.GoPdf{}
	pageSize := *gopdf.PageSizeA4Landscape
	pdf.Start(gopdf.Config{PageSize: pageSize})
	pdf.AddPage()

	if err := pdf.AddTTFFont("main", s.fontPath); err != nil {
		return nil, fmt.Errorf("load font: %w", err)
	}

	center := func(size float64, y float64, text string) error {
		if err := pdf.SetFont("main", "", size); err != nil {
			return err
		}
		width, err := pdf.MeasureTextWidth(text)
		if err != nil {
			return err
		}
		pdf.SetXY((pageSize.W-width)/2, y)
		return pdf.Text(text)
	}

	pdf.SetLineWidth(2)
	pdf.RectFromUpperLeft(20, 20, pageSize.W-40, pageSize.H-40)

	lines := []struct {
		size float64
		y    float64
		text string
	}{
		{34, 110, "Certificate of Completion"},
		{14, 170, "This certifies that"},
		{26, 215, cert.StudentName},
		{14, 260, "has successfully completed the course"},
		{22, 305, cert.CourseName},
		{14, 350, fmt.Sprintf("with a score of %d%%", cert.Score)},
		{12, 420, fmt.Sprintf("Issued on %s", cert.IssuedAt.Format("January 2, 2006"))},
		{10, 450, fmt.Sprintf("Certificate ID: %s", cert.CertificateID)},
	}
	for _, l := range lines {
		if err := center(l.size, l.y, l.text); err != nil {
			return nil, fmt.Errorf("render text: %w", err)
		}
	}

	return pdf.GetBytesPdf(), nil
}

// newCertificateID builds a public certificate identifier of the form
// CERT-<year>-<8 hex chars>.
func newCertificateID(now time.Time) string {
	buf := make([]byte, 4)
	if _, err := rand.Read(buf); err != nil {
		// crypto/rand failing means the process is in a bad state; fall back
		// to a uuid fragment rather than panicking mid-request.
		return fmt.Sprintf("CERT-%d-%s", now.Year(), uuid.New().String()[:8])
	}
	return fmt.Sprintf("CERT-%d-%s", now.Year(), hex.EncodeToString(buf))
}
