package handler

import (
	"context"
	"net/http"
	"strings"

	"github.com/rs/zerolog"

	"github.com/jefta/portfolio-api/shared/auth"
)

type contextKey struct{}

var userClaimsKey = contextKey{}

// RequireAuth verifies the bearer token and stores the identity claims on
// the request context. The 401 body is uniform; the log line carries the
// actual cause so a missing header can be told from a forged token.
func RequireAuth(tokens auth.TokenService, logger *zerolog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims, err := claimsFromRequest(r, tokens)
			if err != nil {
				logger.Warn().Err(err).
					Str("path", r.URL.Path).
					Msg("unauthenticated request rejected")
				respondMessage(w, http.StatusUnauthorized, "Authentication required")
				return
			}

			ctx := context.WithValue(r.Context(), userClaimsKey, claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// ClaimsFromContext returns the identity claims stored by RequireAuth.
func ClaimsFromContext(ctx context.Context) (*auth.UserClaims, bool) {
	claims, ok := ctx.Value(userClaimsKey).(*auth.UserClaims)
	return claims, ok
}

func claimsFromRequest(r *http.Request, tokens auth.TokenService) (*auth.UserClaims, error) {
	header := r.Header.Get("Authorization")
	if header == "" {
		return nil, auth.ErrTokenMissing
	}

	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return nil, auth.ErrTokenMalformed
	}

	return tokens.Verify(parts[1])
}
