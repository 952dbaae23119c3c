package utils

import (
	"errors"
	"os"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

var JWTSecret []byte

const (
	TokenTypeAccess  = "access"
	TokenTypeRefresh = "refresh"

	accessTokenTTL  = 24 * time.Hour
	refreshTokenTTL = 7 * 24 * time.Hour
)

func init() {
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		// Development fallback, override with JWT_SECRET in production.
		// This runs before InitLogger, hence the package logger.
		logrus.Warn("JWT_SECRET not set, signing tokens with the development secret")
		secret = "RestoPosDevSecret"
	}
	JWTSecret = []byte(secret)
}

type CustomClaims struct {
	UserID    uint   `json:"user_id"`
	Role      string `json:"role"`
	FullName  string `json:"fullname"`
	TokenType string `json:"token_type"`
	jwt.RegisteredClaims
}

func GenerateAccessToken(userID uint, role, fullName string) (string, error) {
	return generateToken(userID, role, fullName, TokenTypeAccess, accessTokenTTL)
}

func GenerateRefreshToken(userID uint, role, fullName string) (string, error) {
	return generateToken(userID, role, fullName, TokenTypeRefresh, refreshTokenTTL)
}

func generateToken(userID uint, role, fullName, tokenType string, ttl time.Duration) (string, error) {
	claims := &CustomClaims{
		UserID:    userID,
		Role:      role,
		FullName:  fullName,
		TokenType: tokenType,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			Issuer:    "restaurant-pos",
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(JWTSecret)
}

func ParseToken(tokenString string) (*CustomClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &CustomClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return JWTSecret, nil
	})
	if err != nil || !token.Valid {
		return nil, errors.New("invalid or expired token")
	}

	claims, ok := token.Claims.(*CustomClaims)
	if !ok {
		return nil, errors.New("invalid token claims")
	}
	return claims, nil
}
