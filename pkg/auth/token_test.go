package auth

import (
	"strings"
	"testing"
	"time"

	"github.com/angelmondragon/reviewhub-backend/pkg/config"
	"github.com/angelmondragon/reviewhub-backend/pkg/enums"
	"github.com/google/uuid"
)

func testJWTConfig() config.JWTConfig {
	return config.JWTConfig{
		Secret:            "secret",
		Issuer:            "reviewhub",
		ExpirationMinutes: 30,
	}
}

func TestMintAndParseAdminToken(t *testing.T) {
	cfg := testJWTConfig()
	now := time.Now().UTC()
	adminID := uuid.New()

	token, expiresAt, err := MintAdminToken(cfg, now, AdminTokenPayload{
		AdminID: adminID,
		Email:   " Reviewer@Example.com ",
		Role:    enums.AdminRoleValidatorAdmin,
	})
	if err != nil {
		t.Fatalf("mint admin token: %v", err)
	}
	if !expiresAt.Equal(now.Add(30 * time.Minute)) {
		t.Fatalf("unexpected expiry %v", expiresAt)
	}

	claims, err := ParseAdminToken(cfg, token)
	if err != nil {
		t.Fatalf("parse admin token: %v", err)
	}
	if claims.AdminID != adminID {
		t.Fatalf("expected admin_id %s, got %s", adminID, claims.AdminID)
	}
	if claims.Email != "reviewer@example.com" {
		t.Fatalf("expected normalized email, got %q", claims.Email)
	}
	if claims.Role != enums.AdminRoleValidatorAdmin {
		t.Fatalf("unexpected role %s", claims.Role)
	}
	if claims.Issuer != cfg.Issuer || claims.Subject != adminID.String() {
		t.Fatalf("registered claims not preserved: %+v", claims.RegisteredClaims)
	}
	if claims.ID == "" {
		t.Fatal("expected jti to be set")
	}
}

func TestMintAdminTokenValidation(t *testing.T) {
	cfg := testJWTConfig()
	now := time.Now()

	if _, _, err := MintAdminToken(cfg, now, AdminTokenPayload{AdminID: uuid.New(), Role: "owner"}); err == nil {
		t.Fatal("expected invalid role error")
	}
	if _, _, err := MintAdminToken(cfg, now, AdminTokenPayload{Role: enums.AdminRoleSuperAdmin}); err == nil {
		t.Fatal("expected missing admin id error")
	}
	cfg.Secret = ""
	if _, _, err := MintAdminToken(cfg, now, AdminTokenPayload{AdminID: uuid.New(), Role: enums.AdminRoleSuperAdmin}); err == nil {
		t.Fatal("expected missing secret error")
	}
}

func TestParseAdminTokenRejectsExpiredAndForeign(t *testing.T) {
	cfg := testJWTConfig()
	payload := AdminTokenPayload{AdminID: uuid.New(), Role: enums.AdminRoleSuperAdmin}

	expired, _, err := MintAdminToken(cfg, time.Now().Add(-2*time.Hour), payload)
	if err != nil {
		t.Fatalf("mint: %v", err)
	}
	if _, err := ParseAdminToken(cfg, expired); err == nil || !strings.Contains(err.Error(), "expired") {
		t.Fatalf("expected expired error, got %v", err)
	}

	token, _, err := MintAdminToken(cfg, time.Now(), payload)
	if err != nil {
		t.Fatalf("mint: %v", err)
	}
	other := cfg
	other.Secret = "different"
	if _, err := ParseAdminToken(other, token); err == nil {
		t.Fatal("expected signature failure with a different secret")
	}
	other = cfg
	other.Issuer = "someone-else"
	if _, err := ParseAdminToken(other, token); err == nil {
		t.Fatal("expected issuer mismatch")
	}
}
