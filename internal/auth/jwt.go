package auth

import (
	"context"
	"net/http"
	"strings"
	"time"

	"taskboard/models"

	"github.com/golang-jwt/jwt/v5"
)

// TokenTTL is how long an issued token stays valid
const TokenTTL = time.Hour

// Claims is the payload embedded in every issued token
type Claims struct {
	ID       int    `json:"id"`
	Username string `json:"username"`
	jwt.RegisteredClaims
}

// TokenService mints and verifies HMAC-signed bearer tokens
type TokenService struct {
	key []byte
}

// NewTokenService creates a token service signing with the given key
func NewTokenService(key []byte) *TokenService {
	return &TokenService{key: key}
}

// Generate issues a signed token asserting the user's identity
func (s *TokenService) Generate(user *models.User) (string, error) {
	claims := &Claims{
		ID:       user.ID,
		Username: user.Username,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(TokenTTL)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.key)
}

// Verify checks the token's signature and expiry and returns its claims
func (s *TokenService) Verify(tokenString string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return s.key, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, jwt.ErrTokenUnverifiable
	}
	return claims, nil
}

// BearerToken extracts the token from an "Authorization: Bearer <token>" header
func BearerToken(r *http.Request) (string, bool) {
	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		return "", false
	}
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || parts[0] != "Bearer" || parts[1] == "" {
		return "", false
	}
	return parts[1], true
}

// contextKey is a private type to avoid context key collisions
type contextKey string

const claimsContextKey contextKey = "userClaims"

// ContextWithClaims returns a child context carrying verified claims
func ContextWithClaims(ctx context.Context, claims *Claims) context.Context {
	return context.WithValue(ctx, claimsContextKey, claims)
}

// ClaimsFromContext returns the verified claims attached by the auth middleware
func ClaimsFromContext(ctx context.Context) (*Claims, bool) {
	claims, ok := ctx.Value(claimsContextKey).(*Claims)
	return claims, ok
}
