package auth

import (
	"testing"
	"time"
)

const testSecret = "test-secret"

func TestMintTokensRoundtrip(t *testing.T) {
	pair, err := MintTokens(42, "rider@example.com", testSecret, 15*time.Minute, 7*24*time.Hour)
	if err != nil {
		t.Fatalf("MintTokens() error = %v", err)
	}
	if pair.AccessToken == "" || pair.RefreshToken == "" {
		t.Fatal("MintTokens() returned empty tokens")
	}
	if pair.AccessToken == pair.RefreshToken {
		t.Error("MintTokens() access and refresh tokens are identical")
	}

	for _, token := range []string{pair.AccessToken, pair.RefreshToken} {
		claims, err := ParseClaims(token, testSecret)
		if err != nil {
			t.Fatalf("ParseClaims() error = %v", err)
		}
		if claims.UserID != 42 {
			t.Errorf("ParseClaims() userID = %d, want 42", claims.UserID)
		}
		if claims.Email != "rider@example.com" {
			t.Errorf("ParseClaims() email = %s", claims.Email)
		}
		if claims.Impersonated {
			t.Error("ParseClaims() impersonated = true on a regular token")
		}
	}
}

func TestParseClaimsRejectsExpired(t *testing.T) {
	pair, err := MintTokens(42, "rider@example.com", testSecret, -time.Minute, time.Hour)
	if err != nil {
		t.Fatalf("MintTokens() error = %v", err)
	}

	if _, err := ParseClaims(pair.AccessToken, testSecret); err == nil {
		t.Fatal("ParseClaims() accepted an expired token")
	}
}

func TestParseClaimsRejectsWrongSecret(t *testing.T) {
	pair, err := MintTokens(42, "rider@example.com", testSecret, time.Hour, time.Hour)
	if err != nil {
		t.Fatalf("MintTokens() error = %v", err)
	}

	if _, err := ParseClaims(pair.AccessToken, "other-secret"); err == nil {
		t.Fatal("ParseClaims() accepted a token signed with a different secret")
	}
}

func TestParseClaimsRejectsGarbage(t *testing.T) {
	if _, err := ParseClaims("not-a-token", testSecret); err == nil {
		t.Fatal("ParseClaims() accepted a malformed token")
	}
}

func TestMintImpersonationToken(t *testing.T) {
	token, err := MintImpersonationToken(7, "target@example.com", 1, testSecret, time.Hour)
	if err != nil {
		t.Fatalf("MintImpersonationToken() error = %v", err)
	}

	claims, err := ParseClaims(token, testSecret)
	if err != nil {
		t.Fatalf("ParseClaims() error = %v", err)
	}
	if claims.UserID != 7 || claims.Email != "target@example.com" {
		t.Errorf("ParseClaims() identity = %d/%s, want 7/target@example.com", claims.UserID, claims.Email)
	}
	if !claims.Impersonated {
		t.Error("ParseClaims() impersonated = false")
	}
	if claims.ImpersonatorID != 1 {
		t.Errorf("ParseClaims() impersonatorID = %d, want 1", claims.ImpersonatorID)
	}
}
