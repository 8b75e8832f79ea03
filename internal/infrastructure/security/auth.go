// Package security verifies bearer tokens and validates request payloads
package security

import (
	"errors"
	"fmt"

	"github.com/golang-jwt/jwt/v5"
	"github.com/pantryhq/pantry/internal/infrastructure/config"
	"go.uber.org/zap"
)

// ErrMissingSubject is returned for a token that does not name an owner
var ErrMissingSubject = errors.New("token has no subject")

// Claims represents the JWT claims accepted by the API. The subject is the
// owner token that scopes every kitchen record.
type Claims struct {
	jwt.RegisteredClaims
}

// TokenVerifier checks HMAC-signed bearer tokens issued by the identity
// provider in front of the service
type TokenVerifier struct {
	secret []byte
	issuer string
	logger *zap.Logger
}

// NewTokenVerifier creates a verifier from the auth configuration
func NewTokenVerifier(cfg *config.Config, logger *zap.Logger) *TokenVerifier {
	return &TokenVerifier{
		secret: []byte(cfg.Auth.JWTSecret),
		issuer: cfg.Auth.Issuer,
		logger: logger.Named("token-verifier"),
	}
}

// Verify parses and validates a token and returns its owner
func (v *TokenVerifier) Verify(tokenString string) (string, error) {
	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{
			jwt.SigningMethodHS256.Alg(),
			jwt.SigningMethodHS384.Alg(),
			jwt.SigningMethodHS512.Alg(),
		}),
	}
	if v.issuer != "" {
		opts = append(opts, jwt.WithIssuer(v.issuer))
	}

	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return v.secret, nil
	}, opts...)
	if err != nil {
		v.logger.Debug("Rejected bearer token", zap.Error(err))
		return "", fmt.Errorf("failed to parse token: %w", err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return "", fmt.Errorf("invalid token claims")
	}
	if claims.Subject == "" {
		return "", ErrMissingSubject
	}

	return claims.Subject, nil
}
