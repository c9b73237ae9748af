package auth

import (
	"strings"
	"testing"
)

func TestAccessTokenRoundTrip(t *testing.T) {
	service := NewJWTService("test-secret")
	claims := &TokenClaims{UserID: "4e8c7a51-9c2e-4a61-b3f0-1c2d3e4f5a6b", Email: "rachit@example.com", Name: "Rachit"}

	token, expiresIn, err := service.GenerateAccessToken(claims)
	if err != nil {
		t.Fatalf("GenerateAccessToken() error = %v", err)
	}
	if expiresIn != 15*60 {
		t.Errorf("expiresIn = %d, want 900", expiresIn)
	}

	got, err := service.ValidateAccessToken(token)
	if err != nil {
		t.Fatalf("ValidateAccessToken() error = %v", err)
	}
	if got.UserID != claims.UserID || got.Email != claims.Email || got.Name != claims.Name {
		t.Errorf("claims = %+v, want %+v", got, claims)
	}
}

func TestRefreshTokenCannotActAsAccessToken(t *testing.T) {
	service := NewJWTService("test-secret")

	refreshToken, _, err := service.GenerateRefreshToken("4e8c7a51-9c2e-4a61-b3f0-1c2d3e4f5a6b")
	if err != nil {
		t.Fatalf("GenerateRefreshToken() error = %v", err)
	}

	if _, err := service.ValidateAccessToken(refreshToken); err == nil {
		t.Fatal("refresh token accepted as access token")
	}
}

func TestAccessTokenCannotActAsRefreshToken(t *testing.T) {
	service := NewJWTService("test-secret")

	token, _, err := service.GenerateAccessToken(&TokenClaims{UserID: "u1"})
	if err != nil {
		t.Fatalf("GenerateAccessToken() error = %v", err)
	}

	if _, err := service.ValidateRefreshToken(token); err == nil {
		t.Fatal("access token accepted as refresh token")
	}
}

func TestValidateRejectsWrongSecret(t *testing.T) {
	token, _, err := NewJWTService("secret-a").GenerateAccessToken(&TokenClaims{UserID: "u1"})
	if err != nil {
		t.Fatalf("GenerateAccessToken() error = %v", err)
	}

	if _, err := NewJWTService("secret-b").ValidateAccessToken(token); err == nil {
		t.Fatal("token signed with another secret accepted")
	}
}

func TestValidateRejectsTamperedToken(t *testing.T) {
	service := NewJWTService("test-secret")
	token, _, err := service.GenerateAccessToken(&TokenClaims{UserID: "u1"})
	if err != nil {
		t.Fatalf("GenerateAccessToken() error = %v", err)
	}

	parts := strings.Split(token, ".")
	tampered := parts[0] + "." + parts[1] + "x." + parts[2]
	if _, err := service.ValidateAccessToken(tampered); err == nil {
		t.Fatal("tampered token accepted")
	}
}
