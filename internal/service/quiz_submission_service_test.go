package service

import (
	"testing"

	"code_arena_backend/internal/model"
)

func TestAnswerDelta(t *testing.T) {
	tests := []struct {
		name          string
		marks         int
		old           *model.QuizAnswer
		newCorrect    bool
		newTime       int
		wantScore     int
		wantTimeDelta int
	}{
		{
			name:          "first correct answer",
			marks:         5,
			old:           nil,
			newCorrect:    true,
			newTime:       12,
			wantScore:     5,
			wantTimeDelta: 12,
		},
		{
			name:          "first wrong answer",
			marks:         5,
			old:           nil,
			newCorrect:    false,
			newTime:       8,
			wantScore:     0,
			wantTimeDelta: 8,
		},
		{
			name:          "wrong then correct credits marks and adjusts time",
			marks:         5,
			old:           &model.QuizAnswer{IsCorrect: false, TimeTaken: 10},
			newCorrect:    true,
			newTime:       7,
			wantScore:     5,
			wantTimeDelta: -3,
		},
		{
			name:          "correct then wrong revokes marks",
			marks:         5,
			old:           &model.QuizAnswer{IsCorrect: true, TimeTaken: 10},
			newCorrect:    false,
			newTime:       15,
			wantScore:     -5,
			wantTimeDelta: 5,
		},
		{
			name:          "correct then correct is score neutral",
			marks:         5,
			old:           &model.QuizAnswer{IsCorrect: true, TimeTaken: 10},
			newCorrect:    true,
			newTime:       10,
			wantScore:     0,
			wantTimeDelta: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			scoreDelta, timeDelta := AnswerDelta(tt.marks, tt.old, tt.newCorrect, tt.newTime)
			if scoreDelta != tt.wantScore {
				t.Errorf("scoreDelta = %d, want %d", scoreDelta, tt.wantScore)
			}
			if timeDelta != tt.wantTimeDelta {
				t.Errorf("timeDelta = %d, want %d", timeDelta, tt.wantTimeDelta)
			}
		})
	}
}
