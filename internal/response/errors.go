package response

// ErrCode is a typed error code enum for consistent API error identification.
type ErrCode string

const (
	// ─── Authentication ────────────────────────────────────────────────
	ErrInvalidCredentials ErrCode = "INVALID_CREDENTIALS"
	ErrEmailTaken         ErrCode = "EMAIL_TAKEN"
	ErrSessionInvalidated ErrCode = "SESSION_INVALIDATED"
	ErrTokenRequired      ErrCode = "TOKEN_REQUIRED"
	ErrTokenInvalid       ErrCode = "TOKEN_INVALID"
	ErrTokenExpired       ErrCode = "TOKEN_EXPIRED"

	// ─── Authorization ─────────────────────────────────────────────────
	ErrForbidden       ErrCode = "FORBIDDEN"
	ErrAdminAccessOnly ErrCode = "ADMIN_ACCESS_ONLY"
	ErrNotOwner        ErrCode = "NOT_OWNER"

	// ─── Validation ────────────────────────────────────────────────────
	ErrValidation     ErrCode = "VALIDATION_ERROR"
	ErrInvalidID      ErrCode = "INVALID_ID"
	ErrInvalidPayload ErrCode = "INVALID_PAYLOAD"
	ErrRatingRequired ErrCode = "RATING_REQUIRED"

	// ─── Resources ─────────────────────────────────────────────────────
	ErrNotFound ErrCode = "NOT_FOUND"
	ErrConflict ErrCode = "CONFLICT"

	// ─── Enrollment ────────────────────────────────────────────────────
	ErrAlreadyEnrolled       ErrCode = "ALREADY_ENROLLED"
	ErrEnrollmentNotApproved ErrCode = "ENROLLMENT_NOT_APPROVED"
	ErrEnrollmentNotPending  ErrCode = "ENROLLMENT_NOT_PENDING"

	// ─── Exam ──────────────────────────────────────────────────────────
	ErrExamLocked           ErrCode = "EXAM_LOCKED"
	ErrExamAlreadyAttempted ErrCode = "EXAM_ALREADY_ATTEMPTED"
	ErrExamExists           ErrCode = "EXAM_EXISTS"
	ErrNoQuestions          ErrCode = "NO_QUESTIONS"

	// ─── Certificate ───────────────────────────────────────────────────
	ErrCertNotEligible ErrCode = "CERTIFICATE_NOT_ELIGIBLE"

	// ─── Review ────────────────────────────────────────────────────────
	ErrReviewExists   ErrCode = "REVIEW_EXISTS"
	ErrReviewDisabled ErrCode = "REVIEWS_DISABLED"

	// ─── Media ─────────────────────────────────────────────────────────
	ErrFileRequired    ErrCode = "FILE_REQUIRED"
	ErrUnsupportedFile ErrCode = "UNSUPPORTED_FILE_TYPE"
	ErrFileTooLarge    ErrCode = "FILE_TOO_LARGE"

	// ─── Rate Limiting ─────────────────────────────────────────────────
	ErrRateLimitExceeded ErrCode = "RATE_LIMIT_EXCEEDED"

	// ─── Server ────────────────────────────────────────────────────────
	ErrInternal ErrCode = "INTERNAL_ERROR"
)

// GetMessage returns a human-readable message for a given error code.
func GetMessage(code ErrCode) string {
	switch code {
	// ─── Authentication ────────────────────────────────────────────────
	case ErrInvalidCredentials:
		return "Email or password is incorrect."
	case ErrEmailTaken:
		return "An account with this email already exists."
	case ErrSessionInvalidated:
		return "Your session has ended. Please log in again."
	case ErrTokenRequired:
		return "Authentication token is required."
	case ErrTokenInvalid:
		return "Authentication token is invalid."
	case ErrTokenExpired:
		return "Authentication token has expired."

	// ─── Authorization ─────────────────────────────────────────────────
	case ErrForbidden:
		return "You do not have permission to access this resource."
	case ErrAdminAccessOnly:
		return "This resource is restricted to administrators."
	case ErrNotOwner:
		return "You can only modify your own records."

	// ─── Validation ────────────────────────────────────────────────────
	case ErrValidation:
		return "Validation failed. Please check your input."
	case ErrInvalidID:
		return "Invalid ID format."
	case ErrInvalidPayload:
		return "Invalid request payload."
	case ErrRatingRequired:
		return "Please select a rating."

	// ─── Resources ─────────────────────────────────────────────────────
	case ErrNotFound:
		return "Resource not found."
	case ErrConflict:
		return "Resource already exists."

	// ─── Enrollment ────────────────────────────────────────────────────
	case ErrAlreadyEnrolled:
		return "You already have an active enrollment for this course."
	case ErrEnrollmentNotApproved:
		return "Your enrollment for this course has not been approved."
	case ErrEnrollmentNotPending:
		return "This enrollment is not awaiting review."

	// ─── Exam ──────────────────────────────────────────────────────────
	case ErrExamLocked:
		return "Complete all course content before taking the exam."
	case ErrExamAlreadyAttempted:
		return "Exam already attempted. Only one attempt is allowed."
	case ErrExamExists:
		return "This course already has an exam."
	case ErrNoQuestions:
		return "This exam has no questions."

	// ─── Certificate ───────────────────────────────────────────────────
	case ErrCertNotEligible:
		return "Certificate requirements have not been met."

	// ─── Review ────────────────────────────────────────────────────────
	case ErrReviewExists:
		return "You have already reviewed this course."
	case ErrReviewDisabled:
		return "Reviews are disabled for this course."

	// ─── Media ─────────────────────────────────────────────────────────
	case ErrFileRequired:
		return "A file upload is required."
	case ErrUnsupportedFile:
		return "Unsupported file type."
	case ErrFileTooLarge:
		return "File size exceeds the limit."

	// ─── Rate Limiting ─────────────────────────────────────────────────
	case ErrRateLimitExceeded:
		return "Too many requests. Please try again later."

	// ─── Server ────────────────────────────────────────────────────────
	case ErrInternal:
		return "An internal server error occurred."
	default:
		return "An unexpected error occurred."
	}
}
