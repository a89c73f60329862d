// Package auth issues and verifies bearer tokens for the HTTP/SSE
// surface, and mints the process-unique user ids those tokens carry.
package auth

import (
	"fmt"
	"os"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TokenTTL is how long an issued token stays valid before /refresh is
// needed.
const TokenTTL = 24 * time.Hour

const tokenIssuer = "starboard-server"

// Claims carries the identity a token grants.
type Claims struct {
	UserID      uint64 `json:"user_id"`
	DisplayName string `json:"display_name"`
	jwt.RegisteredClaims
}

func signingKey() []byte {
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		secret = "starboard-dev-secret-change-in-production"
	}
	return []byte(secret)
}

// GenerateToken mints a signed bearer token for (userID, displayName),
// returning the token alongside its issue time and expiry time.
func GenerateToken(userID uint64, displayName string) (token string, createdAt, expiresAt time.Time, err error) {
	createdAt = time.Now()
	expiresAt = createdAt.Add(TokenTTL)
	claims := Claims{
		UserID:      userID,
		DisplayName: displayName,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    tokenIssuer,
			Subject:   fmt.Sprintf("user-%d", userID),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(createdAt),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(signingKey())
	return signed, createdAt, expiresAt, err
}

// VerifyToken parses and validates a bearer token, returning the identity
// it carries.
func VerifyToken(tokenString string) (userID uint64, displayName string, err error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return signingKey(), nil
	})
	if err != nil {
		return 0, "", fmt.Errorf("token parsing failed: %w", err)
	}
	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return 0, "", fmt.Errorf("invalid token")
	}
	return claims.UserID, claims.DisplayName, nil
}
