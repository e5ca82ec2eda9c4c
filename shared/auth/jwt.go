package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Token validation errors. The gateway maps all of them to a uniform 401;
// they stay distinct so logs can tell an absent header from a forged token.
var (
	ErrTokenMissing   = errors.New("missing authentication token")
	ErrTokenMalformed = errors.New("malformed authentication token")
	ErrTokenExpired   = errors.New("authentication token has expired")
	ErrTokenInvalid   = errors.New("invalid authentication token")
)

// UserClaims are the identity claims embedded in a session token.
// Tokens are stateless: Verify never re-fetches the user record.
type UserClaims struct {
	Email string `json:"email"`
	Name  string `json:"name"`
	jwt.RegisteredClaims
}

// TokenService issues and verifies signed session tokens for the admin
// identity using a shared HS256 secret known only to the server process.
type TokenService struct {
	secret    string
	issuer    string
	expiresIn time.Duration
}

// NewTokenService creates a new TokenService instance.
func NewTokenService(secret, issuer string, expiresIn time.Duration) TokenService {
	return TokenService{
		secret:    secret,
		issuer:    issuer,
		expiresIn: expiresIn,
	}
}

// Issue produces a compact signed token asserting the given identity.
// Expiry is fixed at the configured duration from issuance.
func (s *TokenService) Issue(userID, email, name string) (string, error) {
	now := time.Now()
	claims := UserClaims{
		Email: email,
		Name:  name,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.expiresIn)),
			Issuer:    s.issuer,
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	tokenStr, err := token.SignedString([]byte(s.secret))
	if err != nil {
		return "", err
	}

	return tokenStr, nil
}

// Verify decodes and validates signature and expiry, returning the embedded
// identity claims on success.
func (s *TokenService) Verify(tokenStr string) (*UserClaims, error) {
	if tokenStr == "" {
		return nil, ErrTokenMissing
	}

	claims := &UserClaims{}
	token, err := jwt.ParseWithClaims(tokenStr, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}

		return []byte(s.secret), nil
	},
		jwt.WithExpirationRequired(),
		jwt.WithIssuer(s.issuer),
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Name}),
	)
	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenMalformed):
			return nil, ErrTokenMalformed
		case errors.Is(err, jwt.ErrTokenExpired):
			return nil, ErrTokenExpired
		default:
			return nil, ErrTokenInvalid
		}
	}

	if !token.Valid {
		return nil, ErrTokenInvalid
	}

	return claims, nil
}
