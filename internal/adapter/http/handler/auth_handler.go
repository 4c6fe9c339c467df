package handler

import (
	"net/http"

	"github.com/rs/zerolog"

	"github.com/iho/gobank/internal/adapter/http/dto"
	"github.com/iho/gobank/internal/adapter/http/middleware"
	"github.com/iho/gobank/internal/domain"
	"github.com/iho/gobank/internal/infrastructure/auth"
	"github.com/iho/gobank/internal/infrastructure/metrics"
	"github.com/iho/gobank/internal/usecase"
)

// AuthHandler handles authentication endpoints
type AuthHandler struct {
	authUC     AuthService
	jwtManager *auth.JWTManager
	denylist   usecase.TokenDenylist
	metrics    *metrics.Metrics
	logger     zerolog.Logger
}

// NewAuthHandler creates a new auth handler. denylist and m may be nil.
func NewAuthHandler(
	authUC AuthService,
	jwtManager *auth.JWTManager,
	denylist usecase.TokenDenylist,
	m *metrics.Metrics,
	logger zerolog.Logger,
) *AuthHandler {
	return &AuthHandler{
		authUC:     authUC,
		jwtManager: jwtManager,
		denylist:   denylist,
		metrics:    m,
		logger:     logger,
	}
}

// Login verifies an account PIN and issues an access token.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req dto.AuthRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	ok, err := h.authUC.Authenticate(r.Context(), req.ToUseCaseInput())
	if err != nil {
		writeDomainError(w, "authentication failed", err)
		return
	}
	if !ok {
		writeDomainError(w, "authentication failed", domain.ErrAuthenticationFailed)
		return
	}

	token, claims, err := h.jwtManager.Generate(req.AccountID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to generate token", err.Error())
		return
	}

	if h.metrics != nil {
		h.metrics.TokensIssued.Inc()
	}

	writeJSON(w, http.StatusOK, dto.TokenResponse{
		AccessToken: token,
		TokenType:   "bearer",
		ExpiresAt:   claims.ExpiresAt.Time,
	})
}

// Logout revokes the bearer token the request was authenticated with.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		writeDomainError(w, "unauthorized", domain.ErrInvalidToken)
		return
	}

	if h.denylist == nil {
		writeError(w, http.StatusServiceUnavailable, "token revocation unavailable", "redis is not configured")
		return
	}

	if err := h.denylist.Revoke(r.Context(), claims.ID, h.jwtManager.Remaining(claims)); err != nil {
		h.logger.Error().Err(err).Str("account_id", claims.AccountID).Msg("failed to revoke token")
		writeError(w, http.StatusServiceUnavailable, "failed to revoke token", err.Error())
		return
	}

	if h.metrics != nil {
		h.metrics.TokensRevoked.Inc()
	}

	w.WriteHeader(http.StatusNoContent)
}
