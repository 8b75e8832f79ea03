package security

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/pantryhq/pantry/internal/infrastructure/config"
	"github.com/stretchr/testify/suite"
	"go.uber.org/zap"
)

const testSecret = "test-secret-key-for-testing-only-32-bytes"

// TokenVerifierTestSuite provides a test suite for TokenVerifier
type TokenVerifierTestSuite struct {
	suite.Suite
	verifier *TokenVerifier
}

func (suite *TokenVerifierTestSuite) SetupTest() {
	cfg := &config.Config{
		Auth: config.AuthConfig{JWTSecret: testSecret, Issuer: "pantry-idp"},
	}
	suite.verifier = NewTokenVerifier(cfg, zap.NewNop())
}

func (suite *TokenVerifierTestSuite) sign(method jwt.SigningMethod, key interface{}, claims jwt.RegisteredClaims) string {
	token, err := jwt.NewWithClaims(method, Claims{RegisteredClaims: claims}).SignedString(key)
	suite.Require().NoError(err)
	return token
}

func validClaims() jwt.RegisteredClaims {
	now := time.Now()
	return jwt.RegisteredClaims{
		Subject:   "owner-42",
		Issuer:    "pantry-idp",
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(time.Hour)),
	}
}

func (suite *TokenVerifierTestSuite) TestVerify_ValidToken_ShouldReturnOwner() {
	// Arrange
	token := suite.sign(jwt.SigningMethodHS256, []byte(testSecret), validClaims())

	// Act
	owner, err := suite.verifier.Verify(token)

	// Assert
	suite.Require().NoError(err)
	suite.Equal("owner-42", owner)
}

func (suite *TokenVerifierTestSuite) TestVerify_Rejections() {
	expired := validClaims()
	expired.ExpiresAt = jwt.NewNumericDate(time.Now().Add(-time.Minute))

	foreign := validClaims()
	foreign.Issuer = "someone-else"

	anonymous := validClaims()
	anonymous.Subject = ""

	cases := map[string]string{
		"Expired_ShouldFail":       suite.sign(jwt.SigningMethodHS256, []byte(testSecret), expired),
		"WrongSecret_ShouldFail":   suite.sign(jwt.SigningMethodHS256, []byte("another-secret"), validClaims()),
		"WrongIssuer_ShouldFail":   suite.sign(jwt.SigningMethodHS256, []byte(testSecret), foreign),
		"NoSubject_ShouldFail":     suite.sign(jwt.SigningMethodHS256, []byte(testSecret), anonymous),
		"UnsignedToken_ShouldFail": suite.sign(jwt.SigningMethodNone, jwt.UnsafeAllowNoneSignatureType, validClaims()),
		"Garbage_ShouldFail":       "not.a.token",
	}

	for name, token := range cases {
		suite.Run(name, func() {
			owner, err := suite.verifier.Verify(token)
			suite.Error(err)
			suite.Empty(owner)
		})
	}
}

func (suite *TokenVerifierTestSuite) TestVerify_NoIssuerConfigured_ShouldAcceptAnyIssuer() {
	verifier := NewTokenVerifier(&config.Config{Auth: config.AuthConfig{JWTSecret: testSecret}}, zap.NewNop())
	claims := validClaims()
	claims.Issuer = "elsewhere"

	owner, err := verifier.Verify(suite.sign(jwt.SigningMethodHS512, []byte(testSecret), claims))

	suite.Require().NoError(err)
	suite.Equal("owner-42", owner)
}

func TestTokenVerifierTestSuite(t *testing.T) {
	suite.Run(t, new(TokenVerifierTestSuite))
}
