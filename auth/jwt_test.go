package auth

import (
	"testing"

	"github.com/talentmatch/backend/config"
)

func testService() *JWTService {
	return NewJWTService(&config.Config{
		JWTSecret:      "test-secret",
		JWTExpiryHours: 1,
	})
}

func TestGenerateAndValidateToken(t *testing.T) {
	svc := testService()

	token, err := svc.GenerateToken("rec-1", "recruiter@example.com", "Pat Recruiter")
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}

	claims, err := svc.ValidateToken(token)
	if err != nil {
		t.Fatalf("ValidateToken: %v", err)
	}

	if claims.RecruiterID != "rec-1" {
		t.Errorf("recruiterID = %q, want rec-1", claims.RecruiterID)
	}
	if claims.Email != "recruiter@example.com" {
		t.Errorf("email = %q", claims.Email)
	}
	if claims.Issuer != "talentmatch" {
		t.Errorf("issuer = %q", claims.Issuer)
	}
}

func TestValidateTokenRejectsWrongSecret(t *testing.T) {
	token, err := testService().GenerateToken("rec-1", "a@b.c", "A")
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}

	other := NewJWTService(&config.Config{JWTSecret: "different-secret", JWTExpiryHours: 1})
	if _, err := other.ValidateToken(token); err == nil {
		t.Fatal("expected validation to fail with a different secret")
	}
}

func TestValidateTokenRejectsGarbage(t *testing.T) {
	if _, err := testService().ValidateToken("not.a.token"); err == nil {
		t.Fatal("expected validation to fail for malformed token")
	}
}
