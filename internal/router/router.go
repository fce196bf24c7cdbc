package router

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/edulane/edulane-backend/internal/config"
	"github.com/edulane/edulane-backend/internal/handler"
	"github.com/edulane/edulane-backend/internal/middleware"
	"github.com/edulane/edulane-backend/internal/response"
	"github.com/edulane/edulane-backend/internal/service"
)

// Handlers groups all handler instances for route setup.
type Handlers struct {
	Auth        *handler.AuthHandler
	Course      *handler.CourseHandler
	Content     *handler.ContentHandler
	Enrollment  *handler.EnrollmentHandler
	Progress    *handler.ProgressHandler
	Exam        *handler.ExamHandler
	ExamTaking  *handler.ExamTakingHandler
	Certificate *handler.CertificateHandler
	Review      *handler.ReviewHandler
}

// SetupRouter configures all Gin route groups with appropriate middlewares.
func SetupRouter(
	authService *service.AuthService,
	handlers *Handlers,
	cfg *config.Config,
) *gin.Engine {
	gin.SetMode(cfg.GinMode)
	router := gin.Default()

	// If AllowedOrigins is set in config, restrict to that list;
	// otherwise allow all (*) so dev works without extra config.
	corsConfig := cors.DefaultConfig()
	if len(cfg.AllowedOrigins) > 0 {
		corsConfig.AllowOrigins = cfg.AllowedOrigins
	} else {
		corsConfig.AllowAllOrigins = true
	}
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Authorization", "X-Request-ID"}
	corsConfig.ExposeHeaders = []string{"X-Request-ID"}
	corsConfig.MaxAge = 12 * time.Hour
	router.Use(cors.New(corsConfig))

	// Every response carries request metadata.
	router.Use(response.RequestIDMiddleware())

	router.Use(middleware.Brotli())

	// Serve uploaded media files statically with aggressive caching (1 year).
	uploadsGroup := router.Group("/uploads")
	uploadsGroup.Use(middleware.CacheControl(31536000))
	{
		uploadsGroup.Static("/", cfg.UploadDir)
	}

	// Health check.
	router.GET("/health", func(c *gin.Context) {
		response.Success(c, http.StatusOK, gin.H{"status": "ok"})
	})

	requireAuth := middleware.RequireAuth(authService)
	requireSession := middleware.CheckSingleDeviceSession(authService)

	// Rate limiter for auth routes (30 requests per minute per IP).
	authLimiter := middleware.NewRateLimiter(30, time.Minute)

	// ─── Auth ──────────────────────────────────────────────────────────
	auth := router.Group("/api/v1/auth")
	auth.Use(authLimiter.Middleware())
	{
		auth.POST("/register", handlers.Auth.Register)
		auth.POST("/login", handlers.Auth.Login)

		auth.POST("/logout", requireAuth, requireSession, handlers.Auth.Logout)
		auth.GET("/me", requireAuth, requireSession, handlers.Auth.Me)
		auth.PATCH("/me", requireAuth, requireSession, handlers.Auth.UpdateMe)
	}

	// ─── Public catalog ────────────────────────────────────────────────
	public := router.Group("/api/v1")
	{
		public.GET("/courses", handlers.Course.List)
		public.GET("/courses/:courseId", handlers.Course.Get)
		public.GET("/content/course/:courseId", handlers.Content.List)
		public.GET("/courses/:courseId/reviews", handlers.Review.List)
	}

	// ─── Student (JWT + Single Device) ─────────────────────────────────
	student := router.Group("/api/v1")
	student.Use(requireAuth, requireSession)
	{
		// :id is the course on enroll and the enrollment on approve/reject.
		student.POST("/enrollments/:id", handlers.Enrollment.Enroll)
		student.GET("/enrollments/my-enrollments", handlers.Enrollment.ListMine)

		student.GET("/progress/:courseId", handlers.Progress.Get)
		student.PUT("/progress/:courseId/complete/:contentId", handlers.Progress.CompleteContent)

		student.GET("/exams/take/:courseId", handlers.ExamTaking.GetPaper)
		student.POST("/exams/:courseId/submit", handlers.ExamTaking.Submit)

		student.GET("/certificates", handlers.Certificate.ListMine)
		student.GET("/certificates/course/:courseId", handlers.Certificate.GetMine)
		student.GET("/certificates/course/:courseId/download", handlers.Certificate.DownloadMine)

		student.POST("/courses/:courseId/reviews", handlers.Review.Create)
		student.PUT("/courses/:courseId/reviews", handlers.Review.Update)
		student.DELETE("/courses/:courseId/reviews", handlers.Review.Delete)
	}

	// ─── Admin (JWT + admin role) ──────────────────────────────────────
	admin := router.Group("/api/v1")
	admin.Use(requireAuth, requireSession, middleware.RequireAdmin())
	{
		admin.POST("/courses", handlers.Course.Create)
		admin.PUT("/courses/:courseId", handlers.Course.Update)
		admin.DELETE("/courses/:courseId", handlers.Course.Delete)

		admin.POST("/content/course/:courseId", handlers.Content.Create)
		admin.PUT("/content/course/:courseId/:contentId", handlers.Content.Update)
		admin.DELETE("/content/course/:courseId/:contentId", handlers.Content.Delete)

		admin.GET("/enrollments", handlers.Enrollment.ListAll)
		admin.PUT("/enrollments/:id/approve", handlers.Enrollment.Approve)
		admin.PUT("/enrollments/:id/reject", handlers.Enrollment.Reject)

		admin.POST("/exams", handlers.Exam.Create)
		admin.GET("/exams/course/:courseId", handlers.Exam.Get)
		admin.PATCH("/exams/course/:courseId", handlers.Exam.Update)
		admin.DELETE("/exams/course/:courseId", handlers.Exam.Delete)
		admin.GET("/exams/admin/:courseId/results", handlers.Exam.Results)
		admin.GET("/exams/admin/:courseId/results/export", handlers.Exam.ExportResults)

		admin.GET("/certificates/admin/all", handlers.Certificate.ListAll)
		admin.POST("/certificates/send", handlers.Certificate.Send)
	}

	return router
}
