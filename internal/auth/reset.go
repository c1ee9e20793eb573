package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ResetTokenTTL bounds how long a password reset link stays valid.
const ResetTokenTTL = 15 * time.Minute

type ResetClaims struct {
	UserID uint   `json:"userId"`
	Email  string `json:"email"`
	jwt.RegisteredClaims
}

func GenerateResetToken(secret string, userID uint, email string) (string, error) {
	now := time.Now().UTC()
	claims := ResetClaims{
		UserID: userID,
		Email:  email,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ResetTokenTTL)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

func ParseResetToken(secret, tokenStr string) (*ResetClaims, error) {
	token, err := jwt.ParseWithClaims(tokenStr, &ResetClaims{}, func(token *jwt.Token) (interface{}, error) {
		return []byte(secret), nil
	})
	if err != nil {
		return nil, err
	}
	if claims, ok := token.Claims.(*ResetClaims); ok && token.Valid {
		return claims, nil
	}
	return nil, errors.New("invalid token")
}
