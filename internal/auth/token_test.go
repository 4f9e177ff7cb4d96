package auth

import (
	"strings"
	"testing"
	"time"

	"github.com/todo-app/apiserver/config"
)

func testAuthConfig() config.AuthConfig {
	return config.AuthConfig{
		Secret:   "test-secret-that-is-long-enough",
		Issuer:   "TodoApi",
		Audience: "TodoApiUsers",
		TokenTTL: 7 * 24 * time.Hour,
	}
}

func TestIssueAndValidate(t *testing.T) {
	issuer := NewTokenIssuer(testAuthConfig())

	token, err := issuer.Issue(42, "alice")
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}

	identity, err := issuer.Validate(token)
	if err != nil {
		t.Fatalf("validate token: %v", err)
	}
	if identity.UserID != 42 {
		t.Fatalf("unexpected user id: %d", identity.UserID)
	}
	if identity.Username != "alice" {
		t.Fatalf("unexpected username: %q", identity.Username)
	}
}

func TestValidateExpiredToken(t *testing.T) {
	cfg := testAuthConfig()
	cfg.TokenTTL = -time.Hour
	issuer := NewTokenIssuer(cfg)

	token, err := issuer.Issue(1, "alice")
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}

	if _, err := issuer.Validate(token); err == nil {
		t.Fatalf("expected expired token to fail validation")
	}
}

func TestValidateTamperedToken(t *testing.T) {
	issuer := NewTokenIssuer(testAuthConfig())

	token, err := issuer.Issue(7, "bob")
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}

	parts := strings.Split(token, ".")
	if len(parts) != 3 {
		t.Fatalf("unexpected token shape: %q", token)
	}

	// Flip one character in the signed payload.
	payload := []byte(parts[1])
	if payload[0] == 'A' {
		payload[0] = 'B'
	} else {
		payload[0] = 'A'
	}
	tampered := parts[0] + "." + string(payload) + "." + parts[2]

	if _, err := issuer.Validate(tampered); err == nil {
		t.Fatalf("expected tampered token to fail validation")
	}
}

func TestValidateWrongSecret(t *testing.T) {
	issuer := NewTokenIssuer(testAuthConfig())

	token, err := issuer.Issue(7, "bob")
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}

	otherCfg := testAuthConfig()
	otherCfg.Secret = "an-entirely-different-secret"
	other := NewTokenIssuer(otherCfg)

	if _, err := other.Validate(token); err == nil {
		t.Fatalf("expected token signed with another secret to fail")
	}
}

func TestValidateIssuerAndAudience(t *testing.T) {
	issuer := NewTokenIssuer(testAuthConfig())

	wrongIssuerCfg := testAuthConfig()
	wrongIssuerCfg.Issuer = "SomeOtherService"
	token, err := NewTokenIssuer(wrongIssuerCfg).Issue(3, "carol")
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}
	if _, err := issuer.Validate(token); err == nil {
		t.Fatalf("expected issuer mismatch to fail validation")
	}

	wrongAudienceCfg := testAuthConfig()
	wrongAudienceCfg.Audience = "SomeOtherAudience"
	token, err = NewTokenIssuer(wrongAudienceCfg).Issue(3, "carol")
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}
	if _, err := issuer.Validate(token); err == nil {
		t.Fatalf("expected audience mismatch to fail validation")
	}
}
