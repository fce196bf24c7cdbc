package main

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/edulane/edulane-backend/internal/config"
	"github.com/edulane/edulane-backend/internal/database"
	"github.com/edulane/edulane-backend/internal/logger"
	"github.com/edulane/edulane-backend/internal/model"
	"github.com/edulane/edulane-backend/internal/repository"
)

// Seeds a demo course with contents and an exam, plus a demo student.
func main() {
	cfg := config.Load()
	log := logger.Setup(cfg.LogLevel, cfg.LogFormat)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	pool, err := database.NewPostgresPool(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to PostgreSQL")
	}
	defer pool.Close()

	userRepo := repository.NewUserRepository(pool)
	courseRepo := repository.NewCourseRepository(pool)
	contentRepo := repository.NewContentRepository(pool)
	examRepo := repository.NewExamRepository(pool)

	fmt.Println("=== Seeding Demo Data ===")

	// Demo student (password: student123)
	hash, err := bcrypt.GenerateFromPassword([]byte("student123"), cfg.BcryptCost)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to hash password")
	}
	student := &model.User{
		Name:         "Demo Student",
		Email:        "student@example.com",
		PasswordHash: string(hash),
		Role:         model.RoleStudent,
	}
	if err := userRepo.Create(ctx, student); err != nil {
		fmt.Printf("Skipping student seed (%v)\n", err)
	} else {
		fmt.Printf("Created student %s (id=%d)\n", student.Email, student.ID)
	}

	// Demo course
	course := &model.Course{
		Name:          "Go for Backend Developers",
		Description:   "Build production HTTP services in Go, from routing to persistence.",
		Category:      "Programming",
		Fee:           49.0,
		ReviewEnabled: true,
	}
	if err := courseRepo.Create(ctx, course); err != nil {
		log.Fatal().Err(err).Msg("Failed to create course")
	}
	fmt.Printf("Created course %q (id=%s)\n", course.Name, course.ID)

	contents := []model.Content{
		{Title: "Welcome and Course Overview", Type: model.ContentTypeYoutube, URL: "https://www.youtube.com/watch?v=446E-r0rXHI", OrderNum: 1},
		{Title: "Setting Up Your Environment", Type: model.ContentTypeLink, URL: "https://go.dev/doc/install", OrderNum: 2},
		{Title: "HTTP Handlers in Depth", Type: model.ContentTypeLink, URL: "https://go.dev/doc/articles/wiki/", OrderNum: 3},
	}
	for i := range contents {
		contents[i].CourseID = course.ID
		if err := contentRepo.Create(ctx, &contents[i]); err != nil {
			log.Fatal().Err(err).Msg("Failed to create content")
		}
	}
	fmt.Printf("Created %d contents\n", len(contents))

	exam := &model.Exam{
		CourseID:          course.ID,
		Title:             "Final Assessment",
		PassingPercentage: 60,
		DurationMinutes:   30,
		Questions: []model.Question{
			{
				QuestionText: "Which keyword starts a goroutine?",
				OrderNum:     1,
				Options: []model.Option{
					{Text: "go", IsCorrect: true},
					{Text: "run"},
					{Text: "spawn"},
					{Text: "async"},
				},
			},
			{
				QuestionText: "What does a nil error return conventionally mean?",
				OrderNum:     2,
				Options: []model.Option{
					{Text: "The call failed"},
					{Text: "The call succeeded", IsCorrect: true},
					{Text: "The result is empty"},
					{Text: "The call timed out"},
				},
			},
		},
	}
	if err := examRepo.Create(ctx, exam); err != nil {
		log.Fatal().Err(err).Msg("Failed to create exam")
	}
	fmt.Printf("Created exam %q with %d questions\n", exam.Title, len(exam.Questions))

	fmt.Println("Done.")
}
