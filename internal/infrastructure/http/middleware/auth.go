package middleware

import (
	"context"
	"net/http"
	"strings"

	apperrors "github.com/pantryhq/pantry/pkg/errors"
	"go.uber.org/zap"
)

type ownerKey struct{}

// TokenVerifier resolves a bearer token to its owner
type TokenVerifier interface {
	Verify(token string) (string, error)
}

// Authenticate requires a valid bearer token and stores its owner in the
// request context
func Authenticate(verifier TokenVerifier, logger *zap.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				WriteError(w, r, apperrors.NewUnauthorizedError("Authorization header required"), 0)
				return
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || parts[1] == "" {
				WriteError(w, r, apperrors.NewUnauthorizedError("Invalid authorization header format"), 0)
				return
			}

			owner, err := verifier.Verify(parts[1])
			if err != nil {
				logger.Debug("Bearer token rejected", zap.Error(err))
				WriteError(w, r, apperrors.NewUnauthorizedError("Invalid token"), 0)
				return
			}

			next.ServeHTTP(w, r.WithContext(WithOwner(r.Context(), owner)))
		})
	}
}

// WithOwner returns a context carrying the owner token
func WithOwner(ctx context.Context, owner string) context.Context {
	return context.WithValue(ctx, ownerKey{}, owner)
}

// OwnerFromContext extracts the owner stored by Authenticate
func OwnerFromContext(ctx context.Context) (string, bool) {
	owner, ok := ctx.Value(ownerKey{}).(string)
	return owner, ok && owner != ""
}
