package utils

import "testing"

func TestJWTRoundTrip(t *testing.T) {
	t.Setenv("JWT_KEY", "test-secret")

	token, err := GenerateJWT("user-42")
	if err != nil {
		t.Fatalf("GenerateJWT: %v", err)
	}

	claims, err := ValidateJWT(token)
	if err != nil {
		t.Fatalf("ValidateJWT: %v", err)
	}
	if claims.UserID != "user-42" {
		t.Errorf("UserID: got %q, want %q", claims.UserID, "user-42")
	}
}

func TestValidateJWTRejectsGarbage(t *testing.T) {
	if _, err := ValidateJWT("not.a.token"); err == nil {
		t.Fatal("expected error for malformed token")
	}
}

// The key is read at call time, so tokens minted before the key was set
// (e.g. before .env is loaded) do not validate against the real key.
func TestJWTKeyReadPerCall(t *testing.T) {
	t.Setenv("JWT_KEY", "first-key")
	token, err := GenerateJWT("user-42")
	if err != nil {
		t.Fatalf("GenerateJWT: %v", err)
	}

	t.Setenv("JWT_KEY", "second-key")
	if _, err := ValidateJWT(token); err == nil {
		t.Fatal("expected signature mismatch after key change")
	}

	t.Setenv("JWT_KEY", "first-key")
	if _, err := ValidateJWT(token); err != nil {
		t.Fatalf("ValidateJWT with original key: %v", err)
	}
}
