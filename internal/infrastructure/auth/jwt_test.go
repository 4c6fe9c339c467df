package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/iho/gobank/internal/domain"
)

func TestJWTManagerGenerateAndVerify(t *testing.T) {
	t.Parallel()

	manager := NewJWTManager("super-secret", time.Minute)

	token, issued, err := manager.Generate("alice")
	if err != nil {
		t.Fatalf("failed to generate token: %v", err)
	}

	claims, err := manager.Verify(token)
	if err != nil {
		t.Fatalf("expected token to verify, got %v", err)
	}

	if claims.AccountID != "alice" || claims.Subject != "alice" {
		t.Fatalf("expected claims to carry the account, got %+v", claims)
	}

	if claims.ID == "" || claims.ID != issued.ID {
		t.Fatalf("expected token id %q, got %q", issued.ID, claims.ID)
	}

	if remaining := manager.Remaining(claims); remaining <= 0 || remaining > time.Minute {
		t.Fatalf("unexpected remaining lifetime %s", remaining)
	}
}

func TestJWTManagerIssuesDistinctIDs(t *testing.T) {
	t.Parallel()

	manager := NewJWTManager("secret", time.Minute)

	_, first, err := manager.Generate("alice")
	if err != nil {
		t.Fatalf("failed to generate token: %v", err)
	}
	_, second, err := manager.Generate("alice")
	if err != nil {
		t.Fatalf("failed to generate token: %v", err)
	}

	if first.ID == second.ID {
		t.Fatalf("expected distinct token ids, got %q twice", first.ID)
	}
}

func TestJWTManagerVerifyErrors(t *testing.T) {
	t.Parallel()

	manager := NewJWTManager("secret", time.Minute)

	expiredClaims := Claims{
		AccountID: "alice",
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        "01HZX",
			Subject:   "alice",
			Issuer:    issuer,
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Minute)),
			IssuedAt:  jwt.NewNumericDate(time.Now().Add(-2 * time.Minute)),
			NotBefore: jwt.NewNumericDate(time.Now().Add(-2 * time.Minute)),
		},
	}

	expiredToken, err := jwt.NewWithClaims(jwt.SigningMethodHS256, expiredClaims).SignedString([]byte("secret"))
	if err != nil {
		t.Fatalf("failed to sign expired token: %v", err)
	}

	if _, err := manager.Verify(expiredToken); err != domain.ErrExpiredToken {
		t.Fatalf("expected ErrExpiredToken, got %v", err)
	}

	otherManager := NewJWTManager("other-secret", time.Minute)
	valid, _, err := manager.Generate("alice")
	if err != nil {
		t.Fatalf("failed to generate token: %v", err)
	}
	if _, err := otherManager.Verify(valid); err != domain.ErrInvalidToken {
		t.Fatalf("expected invalid token error, got %v", err)
	}

	if _, err := manager.Verify("not-a-token"); err != domain.ErrInvalidToken {
		t.Fatalf("expected failure for malformed token, got %v", err)
	}

	noSubject := Claims{
		AccountID: "alice",
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        "01HZY",
			Issuer:    issuer,
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Minute)),
		},
	}
	forged, err := jwt.NewWithClaims(jwt.SigningMethodHS256, noSubject).SignedString([]byte("secret"))
	if err != nil {
		t.Fatalf("failed to sign token: %v", err)
	}
	if _, err := manager.Verify(forged); err != domain.ErrInvalidToken {
		t.Fatalf("expected token without subject to be rejected, got %v", err)
	}
}

func TestJWTManagerRemainingNeverNegative(t *testing.T) {
	t.Parallel()

	manager := NewJWTManager("secret", time.Minute)
	claims := &Claims{RegisteredClaims: jwt.RegisteredClaims{
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Hour)),
	}}

	if got := manager.Remaining(claims); got != 0 {
		t.Fatalf("expected 0, got %s", got)
	}
	if got := manager.Remaining(&Claims{}); got != 0 {
		t.Fatalf("expected 0 without expiry, got %s", got)
	}
}
