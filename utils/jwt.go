package utils

import (
	"errors"
	"fmt"
	"time"

	"github.com/n0cod3develper-byte/Documental/config"

	"github.com/golang-jwt/jwt/v5"
)

const refreshTokenType = "refresh"

type Claims struct {
	UserID    uint   `json:"user_id"`
	TokenType string `json:"token_type,omitempty"`
	jwt.RegisteredClaims
}

func GenerateToken(userID uint) (string, error) {
	expire := time.Duration(config.AppConfig.JWT.ExpireHours) * time.Hour
	return signToken(userID, "", expire)
}

func GenerateRefreshToken(userID uint) (string, error) {
	expire := time.Duration(config.AppConfig.JWT.RefreshExpireHours) * time.Hour
	return signToken(userID, refreshTokenType, expire)
}

func signToken(userID uint, tokenType string, expire time.Duration) (string, error) {
	now := time.Now()
	claims := Claims{
		UserID:    userID,
		TokenType: tokenType,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(expire)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(config.AppConfig.JWT.Secret))
}

func ParseToken(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(config.AppConfig.JWT.Secret), nil
	})
	if err != nil {
		return nil, err
	}
	if claims, ok := token.Claims.(*Claims); ok && token.Valid {
		return claims, nil
	}
	return nil, errors.New("invalid token")
}

// ParseRefreshToken rejects access tokens presented on the refresh endpoint.
func ParseRefreshToken(tokenString string) (*Claims, error) {
	claims, err := ParseToken(tokenString)
	if err != nil {
		return nil, err
	}
	if claims.TokenType != refreshTokenType {
		return nil, errors.New("not a refresh token")
	}
	return claims, nil
}
