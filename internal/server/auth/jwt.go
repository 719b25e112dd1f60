// Package auth issues and validates the HS256 session tokens carried by the
// browser cookie, and checks credentials against the configured user table.
package auth

import (
	"errors"
	"time"

	"github.com/dmitrijs2005/daylog/internal/common"
	"github.com/golang-jwt/jwt/v5"
)

// Claims carries the standard claims plus the owner identity the session
// belongs to.
type Claims struct {
	jwt.RegisteredClaims
	Username string `json:"username"`
}

// GenerateToken signs a session token for the user.
func GenerateToken(username string, secretKey []byte, validityDuration time.Duration) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(validityDuration)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
		Username: username,
	})

	tokenString, err := token.SignedString(secretKey)
	if err != nil {
		return "", err
	}

	return tokenString, nil
}

// GetUsernameFromToken validates the token and extracts the owner identity.
func GetUsernameFromToken(tokenString string, secretKey []byte) (string, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return secretKey, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return "", common.ErrTokenExpired
		}
		return "", common.ErrInvalidToken
	}

	if !token.Valid {
		return "", common.ErrInvalidToken
	}

	return claims.Username, nil
}
