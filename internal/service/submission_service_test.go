package service

import (
	"testing"

	"code_arena_backend/internal/model"
)

func TestDecideScore(t *testing.T) {
	tests := []struct {
		name            string
		alreadyCredited bool
		allPassed       bool
		maxScore        int
		want            string
	}{
		{"first pass earns full score", false, true, 50, "50"},
		{"fail before any credit", false, false, 50, "0"},
		{"pass after credit", true, true, 50, model.ScoreAlreadyEarned},
		{"fail after credit still marked earned", true, false, 50, model.ScoreAlreadyEarned},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := decideScore(tt.alreadyCredited, tt.allPassed, tt.maxScore)
			if got != tt.want {
				t.Errorf("decideScore(%v, %v, %d) = %q, want %q",
					tt.alreadyCredited, tt.allPassed, tt.maxScore, got, tt.want)
			}
		})
	}
}
