package services

import (
	"farmbiz-service/internal/config"
	"farmbiz-service/internal/models"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

type JWTService struct {
	secret     string
	accessTTL  time.Duration
	refreshTTL time.Duration
}

func NewJWTService(cfg config.AuthConfig) *JWTService {
	return &JWTService{
		secret:     cfg.JWTSecret,
		accessTTL:  time.Duration(cfg.AccessTTLMinutes) * time.Minute,
		refreshTTL: time.Duration(cfg.RefreshTTLMinutes) * time.Minute,
	}
}

// GenerateTokenPair issues an access/refresh bearer pair for the user. Both
// tokens are self-contained; logout does not revoke them, they validate until
// their embedded expiry.
func (j *JWTService) GenerateTokenPair(user *models.User) (*models.TokenPair, error) {
	access, err := j.generateToken(user, models.TokenTypeAccess, j.accessTTL)
	if err != nil {
		return nil, fmt.Errorf("error generating access token: %w", err)
	}

	refresh, err := j.generateToken(user, models.TokenTypeRefresh, j.refreshTTL)
	if err != nil {
		return nil, fmt.Errorf("error generating refresh token: %w", err)
	}

	return &models.TokenPair{Access: access, Refresh: refresh}, nil
}

func (j *JWTService) generateToken(user *models.User, tokenType string, ttl time.Duration) (string, error) {
	claims := models.Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(ttl)),
			Issuer:    "farmbiz-service",
		},
		UserID:    user.ID,
		Username:  user.Username,
		UserType:  user.UserType,
		TokenType: tokenType,
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString([]byte(j.secret))
	if err != nil {
		return "", fmt.Errorf("error generate token string: %s", err)
	}
	return tokenString, nil
}

func (j *JWTService) VerifyToken(tokenString string) (*models.Claims, error) {
	token, err := jwt.ParseWithClaims(
		tokenString,
		&models.Claims{},
		func(token *jwt.Token) (any, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
			}
			return []byte(j.secret), nil
		},
	)
	if err != nil {
		return nil, fmt.Errorf("invalid token: %w", err)
	}

	claims, ok := token.Claims.(*models.Claims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("invalid token claims")
	}

	return claims, nil
}

// VerifyAccessToken rejects refresh tokens presented as bearer credentials.
func (j *JWTService) VerifyAccessToken(tokenString string) (*models.Claims, error) {
	claims, err := j.VerifyToken(tokenString)
	if err != nil {
		return nil, err
	}
	if claims.TokenType != models.TokenTypeAccess {
		return nil, fmt.Errorf("invalid token type: %s", claims.TokenType)
	}
	return claims, nil
}

// RefreshTokenPair validates a refresh token and issues a fresh pair.
func (j *JWTService) RefreshTokenPair(refreshToken string) (*models.TokenPair, error) {
	claims, err := j.VerifyToken(refreshToken)
	if err != nil {
		return nil, err
	}
	if claims.TokenType != models.TokenTypeRefresh {
		return nil, fmt.Errorf("invalid token type: %s", claims.TokenType)
	}

	user := &models.User{
		ID:       claims.UserID,
		Username: claims.Username,
		UserType: claims.UserType,
	}
	return j.GenerateTokenPair(user)
}
