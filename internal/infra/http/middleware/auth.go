package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/vantora/leadhub/internal/infra/token"
)

type contextKey string

const claimsKey contextKey = "authClaims"

// Auth rejects requests without a valid bearer token and stores the verified
// claims on the request context.
type Auth struct {
	Tokens *token.Generator
}

func NewAuth(tokens *token.Generator) *Auth {
	return &Auth{Tokens: tokens}
}

func (m *Auth) RequireToken(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		if header == "" {
			RecordAuthFailure()
			unauthorized(w, "authorization header required")
			return
		}

		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			RecordAuthFailure()
			unauthorized(w, "bearer token required")
			return
		}

		claims, err := m.Tokens.Verify(parts[1])
		if err != nil {
			RecordAuthFailure()
			unauthorized(w, "invalid or expired token")
			return
		}

		ctx := context.WithValue(r.Context(), claimsKey, claims)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// ClaimsFrom returns the verified claims attached by RequireToken.
func ClaimsFrom(ctx context.Context) (*token.Claims, bool) {
	claims, ok := ctx.Value(claimsKey).(*token.Claims)
	return claims, ok
}

func unauthorized(w http.ResponseWriter, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	json.NewEncoder(w).Encode(map[string]interface{}{
		"success": false,
		"message": message,
	})
}
