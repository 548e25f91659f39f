package utils

import (
	"errors"
	"strconv"
	"time"

	"skybank/internal/config"
	"skybank/internal/models"

	"github.com/golang-jwt/jwt/v5"
)

const tokenTTL = 24 * time.Hour

func jwtSecret() []byte {
	return []byte(config.GetEnv("JWT_SECRET", "skybank-dev-secret"))
}

// GenerateToken signs an access token for the given claims.
func GenerateToken(claims *models.UserClaims) (string, error) {
	now := time.Now()
	signed := models.UserClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(tokenTTL)),
			IssuedAt:  jwt.NewNumericDate(now),
			Issuer:    "skybank-api",
			Subject:   strconv.FormatUint(uint64(claims.UserID), 10),
		},
		UserID:   claims.UserID,
		Username: claims.Username,
		Role:     claims.Role,
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, signed).SignedString(jwtSecret())
}

// ParseToken validates a token string and returns its claims.
func ParseToken(tokenStr string) (*models.UserClaims, error) {
	token, err := jwt.ParseWithClaims(tokenStr, &models.UserClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return jwtSecret(), nil
	})
	if err != nil {
		return nil, err
	}
	claims, ok := token.Claims.(*models.UserClaims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid token claims")
	}
	return claims, nil
}
