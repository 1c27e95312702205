package auth

import (
	"errors"
	"testing"
	"time"

	"github.com/AhmedDR200/Library-API/internal/shared"
)

func TestSessionRoundTrip(t *testing.T) {
	tokens := NewTokenService([]byte("test-secret"), 24*time.Hour, time.Hour)

	signed, err := tokens.IssueSession(42, true)
	if err != nil {
		t.Fatalf("issue session: %v", err)
	}

	claims, err := tokens.VerifySession(signed)
	if err != nil {
		t.Fatalf("verify session: %v", err)
	}
	if claims.UserID != 42 {
		t.Fatalf("expected user id 42, got %d", claims.UserID)
	}
	if !claims.IsAdmin {
		t.Fatalf("expected admin flag to survive the round trip")
	}
}

func TestSessionExpiry(t *testing.T) {
	tokens := NewTokenService([]byte("test-secret"), 24*time.Hour, time.Hour)

	issuedAt := time.Now()
	tokens.now = func() time.Time { return issuedAt }
	signed, err := tokens.IssueSession(7, false)
	if err != nil {
		t.Fatalf("issue session: %v", err)
	}

	tokens.now = func() time.Time { return issuedAt.Add(23 * time.Hour) }
	if _, err := tokens.VerifySession(signed); err != nil {
		t.Fatalf("token should still be valid before expiry: %v", err)
	}

	tokens.now = func() time.Time { return issuedAt.Add(25 * time.Hour) }
	if _, err := tokens.VerifySession(signed); !errors.Is(err, shared.ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken after expiry, got %v", err)
	}
}

func TestSessionWrongSecret(t *testing.T) {
	tokens := NewTokenService([]byte("test-secret"), 24*time.Hour, time.Hour)
	other := NewTokenService([]byte("other-secret"), 24*time.Hour, time.Hour)

	signed, err := tokens.IssueSession(1, false)
	if err != nil {
		t.Fatalf("issue session: %v", err)
	}
	if _, err := other.VerifySession(signed); !errors.Is(err, shared.ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken for foreign secret, got %v", err)
	}
}

func TestResetTokenRoundTrip(t *testing.T) {
	tokens := NewTokenService([]byte("test-secret"), 24*time.Hour, time.Hour)

	const hash = "$2a$10$abcdefghijklmnopqrstuv"
	signed, err := tokens.IssueReset(5, "reader@books.test", hash)
	if err != nil {
		t.Fatalf("issue reset: %v", err)
	}

	claims, err := tokens.VerifyReset(signed, hash)
	if err != nil {
		t.Fatalf("verify reset: %v", err)
	}
	if claims.UserID != 5 || claims.Email != "reader@books.test" {
		t.Fatalf("unexpected claims: %+v", claims)
	}
}

func TestResetTokenDiesWithPasswordChange(t *testing.T) {
	tokens := NewTokenService([]byte("test-secret"), 24*time.Hour, time.Hour)

	signed, err := tokens.IssueReset(5, "reader@books.test", "hash-before")
	if err != nil {
		t.Fatalf("issue reset: %v", err)
	}

	// The stored hash changes after the password is reset; the same token
	// must stop verifying.
	if _, err := tokens.VerifyReset(signed, "hash-after"); !errors.Is(err, shared.ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken against new hash, got %v", err)
	}
}

func TestResetTokenExpiry(t *testing.T) {
	tokens := NewTokenService([]byte("test-secret"), 24*time.Hour, time.Hour)

	issuedAt := time.Now()
	tokens.now = func() time.Time { return issuedAt }
	signed, err := tokens.IssueReset(9, "reader@books.test", "hash")
	if err != nil {
		t.Fatalf("issue reset: %v", err)
	}

	tokens.now = func() time.Time { return issuedAt.Add(2 * time.Hour) }
	if _, err := tokens.VerifyReset(signed, "hash"); !errors.Is(err, shared.ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken after expiry, got %v", err)
	}
}

func TestResetTokenNotValidAsSession(t *testing.T) {
	tokens := NewTokenService([]byte("test-secret"), 24*time.Hour, time.Hour)

	signed, err := tokens.IssueReset(5, "reader@books.test", "hash")
	if err != nil {
		t.Fatalf("issue reset: %v", err)
	}
	// Signed with the composite secret, not the server secret.
	if _, err := tokens.VerifySession(signed); !errors.Is(err, shared.ErrInvalidToken) {
		t.Fatalf("expected reset token to fail session verification, got %v", err)
	}
}
