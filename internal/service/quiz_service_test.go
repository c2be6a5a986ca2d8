package service

import (
	"testing"

	"code_arena_backend/internal/model"
)

func TestComputeQuizAnalytics(t *testing.T) {
	subs := []model.QuizSubmission{
		{
			UserID:         1,
			TotalScore:     8,
			TotalTimeTaken: 100,
			Answers: []model.QuizAnswer{
				{QuestionID: 1, IsCorrect: true},
				{QuestionID: 2, IsCorrect: false},
			},
		},
		{
			UserID:         2,
			TotalScore:     4,
			TotalTimeTaken: 140,
			Answers: []model.QuizAnswer{
				{QuestionID: 1, IsCorrect: false},
				{QuestionID: 2, IsCorrect: false},
			},
		},
	}

	a := ComputeQuizAnalytics(7, subs)

	if a.QuizID != 7 {
		t.Errorf("QuizID = %d, want 7", a.QuizID)
	}
	if a.Participants != 2 {
		t.Errorf("Participants = %d, want 2", a.Participants)
	}
	if a.AverageScore != 6 {
		t.Errorf("AverageScore = %v, want 6", a.AverageScore)
	}
	if a.AverageTimeTaken != 120 {
		t.Errorf("AverageTimeTaken = %v, want 120", a.AverageTimeTaken)
	}
	if a.MostMissedQuestion != 2 {
		t.Errorf("MostMissedQuestion = %d, want 2", a.MostMissedQuestion)
	}
	if a.MostMissedCount != 2 {
		t.Errorf("MostMissedCount = %d, want 2", a.MostMissedCount)
	}
}

func TestComputeQuizAnalyticsTieBreak(t *testing.T) {
	// 题 3 和题 1 各错一次，取 ID 较小的题 1
	subs := []model.QuizSubmission{
		{
			UserID: 1,
			Answers: []model.QuizAnswer{
				{QuestionID: 3, IsCorrect: false},
				{QuestionID: 1, IsCorrect: false},
			},
		},
	}

	a := ComputeQuizAnalytics(1, subs)

	if a.MostMissedQuestion != 1 {
		t.Errorf("MostMissedQuestion = %d, want 1 (lowest question id on tie)", a.MostMissedQuestion)
	}
	if a.MostMissedCount != 1 {
		t.Errorf("MostMissedCount = %d, want 1", a.MostMissedCount)
	}
}

func TestComputeQuizAnalyticsNoSubmissions(t *testing.T) {
	a := ComputeQuizAnalytics(42, nil)

	if a.Participants != 0 {
		t.Errorf("Participants = %d, want 0", a.Participants)
	}
	if a.AverageScore != 0 || a.AverageTimeTaken != 0 {
		t.Errorf("averages = (%v, %v), want (0, 0)", a.AverageScore, a.AverageTimeTaken)
	}
	if a.MostMissedQuestion != 0 {
		t.Errorf("MostMissedQuestion = %d, want 0", a.MostMissedQuestion)
	}
}

func TestComputeQuizAnalyticsAllCorrect(t *testing.T) {
	subs := []model.QuizSubmission{
		{
			UserID:     1,
			TotalScore: 10,
			Answers: []model.QuizAnswer{
				{QuestionID: 1, IsCorrect: true},
				{QuestionID: 2, IsCorrect: true},
			},
		},
	}

	a := ComputeQuizAnalytics(1, subs)

	if a.MostMissedQuestion != 0 {
		t.Errorf("MostMissedQuestion = %d, want 0 when nobody missed", a.MostMissedQuestion)
	}
}

func TestValidateQuizQuestion(t *testing.T) {
	valid := QuizQuestionRequest{
		Text:               "What does CPU stand for?",
		Options:            []string{"Central Processing Unit", "Computer Personal Unit"},
		CorrectAnswerIndex: 0,
		Marks:              2,
	}

	t.Run("valid question", func(t *testing.T) {
		if err := validateQuizQuestion(valid); err != nil {
			t.Errorf("unexpected error: %v", err)
		}
	})

	t.Run("too few options", func(t *testing.T) {
		req := valid
		req.Options = []string{"only one"}
		if err := validateQuizQuestion(req); err == nil {
			t.Error("expected error for single option")
		}
	})

	t.Run("answer index out of range", func(t *testing.T) {
		req := valid
		req.CorrectAnswerIndex = 2
		if err := validateQuizQuestion(req); err == nil {
			t.Error("expected error for out of range index")
		}
	})

	t.Run("negative answer index", func(t *testing.T) {
		req := valid
		req.CorrectAnswerIndex = -1
		if err := validateQuizQuestion(req); err == nil {
			t.Error("expected error for negative index")
		}
	})

	t.Run("non-positive marks", func(t *testing.T) {
		req := valid
		req.Marks = 0
		if err := validateQuizQuestion(req); err == nil {
			t.Error("expected error for zero marks")
		}
	})
}
