package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/iho/gobank/internal/domain"
)

const issuer = "gobank"

// Claims represents the JWT claims. Subject and AccountID both carry the
// authenticated account; ID carries the token id used for revocation.
type Claims struct {
	AccountID string `json:"account_id"`
	jwt.RegisteredClaims
}

// IDGenerator produces unique token ids.
type IDGenerator interface {
	Generate() string
}

// JWTManager manages JWT token creation and validation
type JWTManager struct {
	secretKey     []byte
	tokenDuration time.Duration
	ids           IDGenerator
	now           func() time.Time
}

// NewJWTManager creates a new JWT manager
func NewJWTManager(secretKey string, tokenDuration time.Duration) *JWTManager {
	return &JWTManager{
		secretKey:     []byte(secretKey),
		tokenDuration: tokenDuration,
		ids:           NewULIDGenerator(),
		now:           time.Now,
	}
}

// TokenDuration returns the lifetime of issued tokens.
func (m *JWTManager) TokenDuration() time.Duration {
	return m.tokenDuration
}

// Generate issues a signed token for an account.
func (m *JWTManager) Generate(accountID string) (string, *Claims, error) {
	now := m.now()
	claims := &Claims{
		AccountID: accountID,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        m.ids.Generate(),
			Subject:   accountID,
			Issuer:    issuer,
			ExpiresAt: jwt.NewNumericDate(now.Add(m.tokenDuration)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(m.secretKey)
	if err != nil {
		return "", nil, fmt.Errorf("failed to sign token: %w", err)
	}

	return signed, claims, nil
}

// Verify verifies a JWT token and returns the claims
func (m *JWTManager) Verify(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(
		tokenString,
		&Claims{},
		func(token *jwt.Token) (interface{}, error) {
			// Validate signing method
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
			}
			return m.secretKey, nil
		},
		jwt.WithIssuer(issuer),
		jwt.WithTimeFunc(m.now),
	)

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, domain.ErrExpiredToken
		}
		return nil, domain.ErrInvalidToken
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, domain.ErrInvalidToken
	}

	if claims.AccountID == "" || claims.AccountID != claims.Subject || claims.ID == "" {
		return nil, domain.ErrInvalidToken
	}

	return claims, nil
}

// Remaining returns how long the claims stay valid, never negative.
func (m *JWTManager) Remaining(claims *Claims) time.Duration {
	if claims.ExpiresAt == nil {
		return 0
	}
	if d := claims.ExpiresAt.Sub(m.now()); d > 0 {
		return d
	}
	return 0
}
