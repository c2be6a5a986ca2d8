package service

import (
	"math"
	"testing"

	"code_arena_backend/internal/model"
)

func TestBuildLeaderboardOrdering(t *testing.T) {
	progresses := []model.ChallengeProgress{
		{UserID: 1, Score: 80, TimeTaken: 120},
		{UserID: 2, Score: 90, TimeTaken: 200},
		{UserID: 3, Score: 90, TimeTaken: 150},
	}
	usernames := map[uint]string{1: "alice", 2: "bob", 3: "carol"}

	entries := BuildLeaderboard(progresses, usernames)

	wantOrder := []uint{3, 2, 1}
	if len(entries) != len(wantOrder) {
		t.Fatalf("len(entries) = %d, want %d", len(entries), len(wantOrder))
	}
	for i, want := range wantOrder {
		if entries[i].UserID != want {
			t.Errorf("entries[%d].UserID = %d, want %d", i, entries[i].UserID, want)
		}
	}
	if entries[0].Username != "carol" {
		t.Errorf("entries[0].Username = %q, want %q", entries[0].Username, "carol")
	}
}

func TestBuildLeaderboardPenaltiesAndHints(t *testing.T) {
	progresses := []model.ChallengeProgress{
		{UserID: 1, Score: 100, Penalties: 2, HintsUsed: 3, TimeTaken: 60},
	}

	entries := BuildLeaderboard(progresses, map[uint]string{1: "alice"})

	// 100 - 2*10 - 3*5 = 65
	if entries[0].TotalScore != 65 {
		t.Errorf("TotalScore = %d, want 65", entries[0].TotalScore)
	}
}

func TestBuildLeaderboardScoreFloorsAtZero(t *testing.T) {
	progresses := []model.ChallengeProgress{
		{UserID: 1, Score: 10, Penalties: 5, TimeTaken: 60},
	}

	entries := BuildLeaderboard(progresses, map[uint]string{1: "alice"})

	if entries[0].TotalScore != 0 {
		t.Errorf("TotalScore = %d, want 0", entries[0].TotalScore)
	}
}

func TestBuildLeaderboardMissingTimeSortsLast(t *testing.T) {
	progresses := []model.ChallengeProgress{
		{UserID: 1, Score: 50, TimeTaken: 0}, // 未结束
		{UserID: 2, Score: 50, TimeTaken: 300},
	}

	entries := BuildLeaderboard(progresses, map[uint]string{1: "alice", 2: "bob"})

	if entries[0].UserID != 2 {
		t.Errorf("entries[0].UserID = %d, want 2 (finished participant first)", entries[0].UserID)
	}
	if entries[1].TimeTaken != math.MaxInt64 {
		t.Errorf("entries[1].TimeTaken = %d, want MaxInt64 sentinel", entries[1].TimeTaken)
	}
}

func TestBuildLeaderboardEmpty(t *testing.T) {
	entries := BuildLeaderboard(nil, nil)
	if len(entries) != 0 {
		t.Errorf("len(entries) = %d, want 0", len(entries))
	}
}

func TestGenerateChallengeKey(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		key, err := generateChallengeKey()
		if err != nil {
			t.Fatalf("generateChallengeKey: %v", err)
		}
		if len(key) != 12 {
			t.Fatalf("len(key) = %d, want 12", len(key))
		}
		if seen[key] {
			t.Fatalf("duplicate key %q", key)
		}
		seen[key] = true
	}
}
