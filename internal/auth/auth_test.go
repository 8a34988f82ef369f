package auth

import (
	"testing"
	"time"
)

const testSecret = "test-secret-not-for-production"

func TestTokenRoundTrip(t *testing.T) {
	tok, err := MakeToken("user-123", testSecret)
	if err != nil {
		t.Fatalf("make token: %v", err)
	}

	claims, err := ParseToken(tok, testSecret)
	if err != nil {
		t.Fatalf("parse token: %v", err)
	}
	if claims.UserID != "user-123" {
		t.Errorf("uid mismatch: %s", claims.UserID)
	}

	// expiry is ~AccessTokenTTL from now
	diff := time.Until(claims.ExpiresAt.Time)
	if diff < AccessTokenTTL-time.Minute || diff > AccessTokenTTL+time.Minute {
		t.Errorf("expected ~%v expiry, got %v", AccessTokenTTL, diff)
	}
}

func TestParseTokenRejects(t *testing.T) {
	tok, _ := MakeToken("uid", testSecret)

	if _, err := ParseToken(tok, "wrong-secret"); err == nil {
		t.Error("expected error for wrong secret")
	}
	if _, err := ParseToken("not.a.token", testSecret); err == nil {
		t.Error("expected error for garbage token")
	}
	if _, err := ParseToken("", testSecret); err == nil {
		t.Error("expected error for empty token")
	}
}

func TestPasswordHashing(t *testing.T) {
	hash, err := HashPassword("testpass123")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	if hash == "testpass123" {
		t.Fatal("password stored in the clear")
	}
	if !CheckPassword(hash, "testpass123") {
		t.Error("correct password rejected")
	}
	if CheckPassword(hash, "wrongpassword") {
		t.Error("wrong password accepted")
	}
}

func TestRefreshTokenGeneration(t *testing.T) {
	raw, hash, err := GenerateRefreshToken()
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if len(raw) != 64 { // 32 bytes hex = 64 chars
		t.Errorf("expected 64 char raw token, got %d", len(raw))
	}
	if len(hash) != 64 {
		t.Errorf("expected 64 char hash, got %d", len(hash))
	}
	if HashRefreshToken(raw) != hash {
		t.Error("hash mismatch")
	}

	raw2, _, _ := GenerateRefreshToken()
	if raw == raw2 {
		t.Error("two generated tokens are identical")
	}
}
