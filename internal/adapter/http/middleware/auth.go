package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/iho/gobank/internal/domain"
	"github.com/iho/gobank/internal/infrastructure/auth"
	"github.com/iho/gobank/internal/usecase"
)

// ContextKey is the type for context keys
type ContextKey string

const (
	// ClaimsContextKey is the context key for the verified token claims
	ClaimsContextKey ContextKey = "claims"
)

// TokenVerifier verifies bearer tokens.
type TokenVerifier interface {
	Verify(tokenString string) (*auth.Claims, error)
}

// AuthMiddleware creates an authentication middleware. denylist may be nil,
// in which case revocation is not checked.
func AuthMiddleware(verifier TokenVerifier, denylist usecase.TokenDenylist) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			tokenString, ok := bearerToken(r)
			if !ok {
				writeError(w, http.StatusUnauthorized, "unauthorized", "missing or malformed authorization header")
				return
			}

			claims, err := verifier.Verify(tokenString)
			if err != nil {
				writeError(w, http.StatusUnauthorized, "unauthorized", err.Error())
				return
			}

			if denylist != nil {
				revoked, err := denylist.IsRevoked(r.Context(), claims.ID)
				if err != nil {
					writeError(w, http.StatusServiceUnavailable, "token check failed", err.Error())
					return
				}
				if revoked {
					writeError(w, http.StatusUnauthorized, "unauthorized", "token has been revoked")
					return
				}
			}

			next.ServeHTTP(w, r.WithContext(WithClaims(r.Context(), claims)))
		})
	}
}

// CheckOwner returns ErrForbidden when the request carries a token for a
// different account. Unauthenticated requests pass; AuthMiddleware decides
// whether a token is required.
func CheckOwner(ctx context.Context, accountID string) error {
	claims, ok := ClaimsFromContext(ctx)
	if !ok {
		return nil
	}
	if claims.AccountID != accountID {
		return domain.ErrForbidden
	}
	return nil
}

// WithClaims stores verified claims in ctx.
func WithClaims(ctx context.Context, claims *auth.Claims) context.Context {
	return context.WithValue(ctx, ClaimsContextKey, claims)
}

// ClaimsFromContext extracts the verified token claims from context
func ClaimsFromContext(ctx context.Context) (*auth.Claims, bool) {
	claims, ok := ctx.Value(ClaimsContextKey).(*auth.Claims)
	return claims, ok && claims != nil
}

func bearerToken(r *http.Request) (string, bool) {
	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		return "", false
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || parts[1] == "" {
		return "", false
	}

	return parts[1], true
}

type errorBody struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

func writeError(w http.ResponseWriter, status int, message, details string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(errorBody{Error: message, Message: details})
}

