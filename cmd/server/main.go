package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/edulane/edulane-backend/internal/cache"
	"github.com/edulane/edulane-backend/internal/config"
	"github.com/edulane/edulane-backend/internal/database"
	"github.com/edulane/edulane-backend/internal/handler"
	"github.com/edulane/edulane-backend/internal/logger"
	"github.com/edulane/edulane-backend/internal/repository"
	"github.com/edulane/edulane-backend/internal/router"
	"github.com/edulane/edulane-backend/internal/service"
	"github.com/edulane/edulane-backend/internal/validator"
)

func main() {
	// ─── Load Configuration ────────────────────────────────────────────
	cfg := config.Load()

	// ─── Initialize Logger ─────────────────────────────────────────────
	log := logger.Setup(cfg.LogLevel, cfg.LogFormat)
	log.Info().
		Str("port", cfg.ServerPort).
		Str("mode", cfg.GinMode).
		Str("log_level", cfg.LogLevel).
		Msg("Starting EduLane Backend")

	// ─── Initialize Validator ──────────────────────────────────────────
	validator.Setup()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// ─── Connect to PostgreSQL ─────────────────────────────────────────
	pool, err := database.NewPostgresPool(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to PostgreSQL")
	}
	defer pool.Close()

	// ─── Connect to Redis ──────────────────────────────────────────────
	rdb, err := database.NewRedisClient(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to Redis")
	}
	defer rdb.Close()

	// ─── Initialize Repositories ───────────────────────────────────────
	userRepo := repository.NewUserRepository(pool)
	courseRepo := repository.NewCourseRepository(pool)
	contentRepo := repository.NewContentRepository(pool)
	enrollmentRepo := repository.NewEnrollmentRepository(pool)
	progressRepo := repository.NewProgressRepository(pool)
	examRepo := repository.NewExamRepository(pool)
	certificateRepo := repository.NewCertificateRepository(pool)
	reviewRepo := repository.NewReviewRepository(pool)

	paperCache := cache.NewExamPaperCache(rdb)

	// ─── Initialize Services ──────────────────────────────────────────
	authService := service.NewAuthService(cfg, rdb)
	userService := service.NewUserService(userRepo)
	mediaService := service.NewMediaService(cfg)
	courseService := service.NewCourseService(courseRepo)
	contentService := service.NewContentService(contentRepo, courseRepo)
	enrollmentService := service.NewEnrollmentService(enrollmentRepo, courseRepo)
	progressService := service.NewProgressService(progressRepo, contentRepo, enrollmentService)
	certificateService := service.NewCertificateService(certificateRepo, progressRepo, contentRepo, courseRepo, userRepo, cfg.CertFontPath)
	examService := service.NewExamService(examRepo, courseRepo, progressRepo, paperCache)
	takingService := service.NewExamTakingService(examRepo, progressRepo, contentRepo, enrollmentService, certificateService, paperCache)
	reviewService := service.NewReviewService(reviewRepo, courseRepo, enrollmentService)

	// ─── Initialize Handlers ──────────────────────────────────────────
	handlers := &router.Handlers{
		Auth:        handler.NewAuthHandler(authService, userService),
		Course:      handler.NewCourseHandler(courseService, mediaService),
		Content:     handler.NewContentHandler(contentService, mediaService),
		Enrollment:  handler.NewEnrollmentHandler(enrollmentService, mediaService),
		Progress:    handler.NewProgressHandler(progressService),
		Exam:        handler.NewExamHandler(examService),
		ExamTaking:  handler.NewExamTakingHandler(takingService),
		Certificate: handler.NewCertificateHandler(certificateService),
		Review:      handler.NewReviewHandler(reviewService),
	}

	// ─── Setup Router ──────────────────────────────────────────────────
	r := router.SetupRouter(authService, handlers, cfg)

	// ─── Create HTTP Server ────────────────────────────────────────────
	srv := &http.Server{
		Addr:    ":" + cfg.ServerPort,
		Handler: r,
	}

	// ─── Start Server in Goroutine ─────────────────────────────────────
	go func() {
		log.Info().Str("addr", ":"+cfg.ServerPort).Msg("Server listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Server error")
		}
	}()

	// ─── Graceful Shutdown ─────────────────────────────────────────────
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit

	log.Info().Str("signal", sig.String()).Msg("Shutting down gracefully...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("HTTP server shutdown error")
	}

	log.Info().Msg("Shutdown complete")
}

// init sets zerolog global defaults before main runs.
func init() {
	zerolog.TimeFieldFormat = time.RFC3339
}
