package util

import (
	"testing"
	"time"

	"code_arena_backend/internal/model"
)

func TestJWTRoundTrip(t *testing.T) {
	user := &model.User{
		Username: "alice",
		Email:    "alice@example.com",
		Role:     model.Student,
	}
	user.ID = 42
	secret := "test-secret-0123456789-0123456789"

	token, err := GenerateJWT(user, secret, time.Hour)
	if err != nil {
		t.Fatalf("GenerateJWT: %v", err)
	}

	t.Run("valid token parses", func(t *testing.T) {
		claims, err := ParseJWT(token, secret)
		if err != nil {
			t.Fatalf("ParseJWT: %v", err)
		}
		if claims.UserID != 42 {
			t.Errorf("UserID = %d, want 42", claims.UserID)
		}
		if claims.Role != model.Student {
			t.Errorf("Role = %q, want %q", claims.Role, model.Student)
		}
		if claims.Email != "alice@example.com" {
			t.Errorf("Email = %q", claims.Email)
		}
	})

	t.Run("wrong secret rejected", func(t *testing.T) {
		if _, err := ParseJWT(token, "another-secret-0123456789-012345"); err == nil {
			t.Error("expected error for wrong secret")
		}
	})

	t.Run("expired token rejected", func(t *testing.T) {
		expired, err := GenerateJWT(user, secret, -time.Minute)
		if err != nil {
			t.Fatalf("GenerateJWT: %v", err)
		}
		if _, err := ParseJWT(expired, secret); err == nil {
			t.Error("expected error for expired token")
		}
	})
}
