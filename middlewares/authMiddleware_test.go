package middlewares

import (
	"testing"

	"bitbucket.org/indofreight/freight_backend/utils"
)

func TestClaimsFromToken(t *testing.T) {
	token, err := utils.JwtGenerate(7, "ADMIN")
	if err != nil {
		t.Fatalf("JwtGenerate: %v", err)
	}

	claims, err := claimsFromToken(token)
	if err != nil {
		t.Fatalf("claimsFromToken rejected a freshly issued token: %v", err)
	}
	if claims.ID != 7 {
		t.Fatalf("claims.ID = %d, want 7", claims.ID)
	}
	if claims.Role != "ADMIN" {
		t.Fatalf("claims.Role = %q, want ADMIN", claims.Role)
	}
}

func TestClaimsFromTokenRejectsGarbage(t *testing.T) {
	tests := []struct {
		name  string
		token string
	}{
		{name: "empty", token: ""},
		{name: "not a jwt", token: "not-a-token"},
		{name: "tampered", token: "eyJhbGciOiJIUzI1NiJ9.eyJpZCI6MX0.bad-signature"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := claimsFromToken(tt.token); err == nil {
				t.Fatalf("expected error for %q", tt.token)
			}
		})
	}
}
