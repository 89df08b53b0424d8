package utility

import (
	"testing"
)

func TestGenerateAndValidateToken(t *testing.T) {
	SECRET_KEY = "test-secret"

	token, refreshToken, err := GenerateAllTokens("a@x.com", "Ada", "teacher", "uid-1")
	if err != nil {
		t.Fatal(err)
	}
	if token == "" || refreshToken == "" {
		t.Fatal("expected non-empty token pair")
	}

	claims, msg := ValidateToken(token)
	if msg != "" {
		t.Fatalf("ValidateToken: %s", msg)
	}
	if claims.Email != "a@x.com" || claims.Name != "Ada" || claims.Role != "teacher" || claims.Uid != "uid-1" {
		t.Errorf("claims = %+v", claims)
	}
}

func TestValidateTokenRejectsGarbage(t *testing.T) {
	SECRET_KEY = "test-secret"

	if _, msg := ValidateToken("not-a-token"); msg == "" {
		t.Error("expected validation failure for malformed token")
	}
}

func TestValidateTokenRejectsWrongKey(t *testing.T) {
	SECRET_KEY = "test-secret"
	token, _, err := GenerateAllTokens("a@x.com", "Ada", "student", "uid-2")
	if err != nil {
		t.Fatal(err)
	}

	SECRET_KEY = "other-secret"
	if _, msg := ValidateToken(token); msg == "" {
		t.Error("expected validation failure for token signed with a different key")
	}
}
