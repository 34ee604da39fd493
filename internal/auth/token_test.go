package auth

import (
	"testing"
	"time"

	"github.com/spec-kit/brokerage-crm/internal/domain"
)

func TestTokenRoundTrip(t *testing.T) {
	manager := NewTokenManager("test-secret", 30)

	token, expiresAt, err := manager.GenerateToken("S1", domain.StaffRoleSupervisor)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if time.Until(expiresAt) <= 0 {
		t.Fatal("expiry must be in the future")
	}

	claims, err := manager.ParseToken(token)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if claims.StaffID != "S1" || claims.Role != domain.StaffRoleSupervisor {
		t.Fatalf("unexpected claims: %+v", claims)
	}
}

func TestTokenRejectsWrongSecret(t *testing.T) {
	manager := NewTokenManager("test-secret", 30)
	token, _, err := manager.GenerateToken("S1", domain.StaffRoleAgent)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	other := NewTokenManager("different-secret", 30)
	if _, err := other.ParseToken(token); err == nil {
		t.Fatal("token signed with another secret must be rejected")
	}
}

func TestTokenRejectsGarbage(t *testing.T) {
	manager := NewTokenManager("test-secret", 30)
	if _, err := manager.ParseToken("not-a-token"); err == nil {
		t.Fatal("garbage token must be rejected")
	}
}

func TestPasswordHashRoundTrip(t *testing.T) {
	hash, err := HashPassword("hunter2hunter2", 4)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := ComparePassword(hash, "hunter2hunter2"); err != nil {
		t.Fatalf("matching password rejected: %v", err)
	}
	if err := ComparePassword(hash, "wrong"); err == nil {
		t.Fatal("wrong password accepted")
	}
}
