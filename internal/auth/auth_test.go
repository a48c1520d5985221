package auth

import (
	"testing"
	"time"
)

func TestIssueAndParseAdminToken(t *testing.T) {
	token, err := IssueAdminToken("admin", "secret", TokenTTL)
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}

	username, err := ParseAdminToken(token, "secret")
	if err != nil {
		t.Fatalf("parse token: %v", err)
	}
	if username != "admin" {
		t.Errorf("username = %q, want %q", username, "admin")
	}
}

func TestParseAdminTokenWrongSecret(t *testing.T) {
	token, err := IssueAdminToken("admin", "secret", TokenTTL)
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}

	if _, err := ParseAdminToken(token, "other-secret"); err == nil {
		t.Error("token verified with wrong secret")
	}
}

func TestParseAdminTokenExpired(t *testing.T) {
	token, err := IssueAdminToken("admin", "secret", -time.Minute)
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}

	if _, err := ParseAdminToken(token, "secret"); err == nil {
		t.Error("expired token accepted")
	}
}

func TestParseAdminTokenGarbage(t *testing.T) {
	if _, err := ParseAdminToken("not-a-token", "secret"); err == nil {
		t.Error("garbage token accepted")
	}
}
