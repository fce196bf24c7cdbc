package service

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/xuri/excelize/v2"

	"github.com/edulane/edulane-backend/internal/model"
)

func newAdminExamService(env *testEnv) *ExamService {
	return NewExamService(env.exams, env.courses, env.progress, nil)
}

func fourOptions(correct int) []model.OptionRequest {
	opts := make([]model.OptionRequest, 4)
	for i := range opts {
		opts[i] = model.OptionRequest{Text: "option"}
		if i == correct {
			opts[i].IsCorrect = true
		}
	}
	return opts
}

func TestExamCreateOnePerCourse(t *testing.T) {
	env := newTestEnv()
	svc := newAdminExamService(env)
	ctx := context.Background()
	courseID, _ := env.seedCourse(t, 1)

	req := &model.CreateExamRequest{
		CourseID:          courseID.String(),
		Title:             "Final",
		PassingPercentage: 60,
		DurationMinutes:   30,
		Questions: []model.QuestionRequest{
			{QuestionText: "q1", Options: fourOptions(0)},
		},
	}
	if _, err := svc.Create(ctx, req); err != nil {
		t.Fatal(err)
	}
	if _, err := svc.Create(ctx, req); !errors.Is(err, ErrExamExists) {
		t.Errorf("err = %v, want ErrExamExists", err)
	}
}

func TestExamCreateRejectsBadCorrectCount(t *testing.T) {
	env := newTestEnv()
	svc := newAdminExamService(env)
	ctx := context.Background()
	courseID, _ := env.seedCourse(t, 1)

	cases := []struct {
		name    string
		options []model.OptionRequest
	}{
		{"no correct option", []model.OptionRequest{{Text: "a"}, {Text: "b"}, {Text: "c"}, {Text: "d"}}},
		{"two correct options", []model.OptionRequest{{Text: "a", IsCorrect: true}, {Text: "b", IsCorrect: true}, {Text: "c"}, {Text: "d"}}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := &model.CreateExamRequest{
				CourseID:          courseID.String(),
				Title:             "Final",
				PassingPercentage: 60,
				DurationMinutes:   30,
				Questions:         []model.QuestionRequest{{QuestionText: "q", Options: tc.options}},
			}
			if _, err := svc.Create(ctx, req); !errors.Is(err, ErrInvalidQuestions) {
				t.Errorf("err = %v, want ErrInvalidQuestions", err)
			}
		})
	}
}

func TestExamUpdateKeepsQuestionsWhenNil(t *testing.T) {
	env := newTestEnv()
	svc := newAdminExamService(env)
	ctx := context.Background()
	courseID, _ := env.seedCourse(t, 1)

	created, err := svc.Create(ctx, &model.CreateExamRequest{
		CourseID:          courseID.String(),
		Title:             "Final",
		PassingPercentage: 60,
		DurationMinutes:   30,
		Questions: []model.QuestionRequest{
			{QuestionText: "q1", Options: fourOptions(0)},
			{QuestionText: "q2", Options: fourOptions(1)},
		},
	})
	if err != nil {
		t.Fatal(err)
	}
	if len(created.Questions) != 2 {
		t.Fatalf("questions = %d, want 2", len(created.Questions))
	}

	newPassing := 80
	updated, err := svc.Update(ctx, courseID, &model.UpdateExamRequest{PassingPercentage: &newPassing})
	if err != nil {
		t.Fatal(err)
	}
	if updated.PassingPercentage != 80 {
		t.Errorf("passing = %d, want 80", updated.PassingPercentage)
	}
	if len(updated.Questions) != 2 {
		t.Errorf("questions = %d after field-only patch, want 2", len(updated.Questions))
	}
}

func TestExamResultsAndExport(t *testing.T) {
	env := newTestEnv()
	svc := newAdminExamService(env)
	ctx := context.Background()
	courseID, contentIDs := env.seedCourse(t, 1)
	studentID := env.seedApprovedStudent(t, courseID)
	exam := seedExam(t, env, courseID, 60, "q1")
	completeCourse(t, env, studentID, courseID, contentIDs)

	answers := map[string]int{exam.Questions[0].ID.String(): 0}
	if _, err := env.takingSvc.Submit(ctx, studentID, courseID, &model.SubmitExamRequest{Answers: answers}); err != nil {
		t.Fatal(err)
	}

	results, err := svc.Results(ctx, courseID)
	if err != nil {
		t.Fatal(err)
	}
	if len(results) != 1 {
		t.Fatalf("results = %d, want 1", len(results))
	}
	if results[0].ExamScore != 100 || !results[0].ExamPassed {
		t.Errorf("result = %+v, want score 100 passed", results[0])
	}

	data, err := svc.ExportResults(ctx, courseID)
	if err != nil {
		t.Fatal(err)
	}
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("export is not a readable workbook: %v", err)
	}
	defer f.Close()
	rows, err := f.GetRows("Results")
	if err != nil {
		t.Fatal(err)
	}
	// Header plus one student row.
	if len(rows) != 2 {
		t.Errorf("rows = %d, want 2", len(rows))
	}
}

func TestExamDelete(t *testing.T) {
	env := newTestEnv()
	svc := newAdminExamService(env)
	ctx := context.Background()
	courseID, _ := env.seedCourse(t, 1)

	if _, err := svc.Create(ctx, &model.CreateExamRequest{
		CourseID:          courseID.String(),
		Title:             "Final",
		PassingPercentage: 60,
		DurationMinutes:   30,
		Questions:         []model.QuestionRequest{{QuestionText: "q", Options: fourOptions(0)}},
	}); err != nil {
		t.Fatal(err)
	}

	if err := svc.Delete(ctx, courseID); err != nil {
		t.Fatal(err)
	}
	if err := svc.Delete(ctx, courseID); !errors.Is(err, ErrExamNotFound) {
		t.Errorf("err = %v, want ErrExamNotFound", err)
	}
}
