package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const (
	TokenTypeAccess  = "access"
	TokenTypeRefresh = "refresh"
)

// Claims is the decoded view of an issued token.
type Claims struct {
	UserID    uint
	Username  string
	TokenType string
	TokenID   string
	ExpiresAt time.Time
}

// TokenManager issues and verifies HS256 access and refresh tokens.
type TokenManager struct {
	secret     []byte
	accessTTL  time.Duration
	refreshTTL time.Duration
}

func NewTokenManager(secret string, accessTTL, refreshTTL time.Duration) (*TokenManager, error) {
	if secret == "" {
		return nil, fmt.Errorf("JWT secret is not set")
	}
	return &TokenManager{
		secret:     []byte(secret),
		accessTTL:  accessTTL,
		refreshTTL: refreshTTL,
	}, nil
}

func (m *TokenManager) GenerateAccessToken(userID uint, username string) (string, error) {
	return m.generate(userID, username, TokenTypeAccess, m.accessTTL)
}

func (m *TokenManager) GenerateRefreshToken(userID uint, username string) (string, error) {
	return m.generate(userID, username, TokenTypeRefresh, m.refreshTTL)
}

func (m *TokenManager) generate(userID uint, username, tokenType string, ttl time.Duration) (string, error) {
	claims := jwt.MapClaims{
		"user_id":  userID,
		"username": username,
		"type":     tokenType,
		"jti":      uuid.NewString(),
		"exp":      time.Now().Add(ttl).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(m.secret)
}

// ParseAccessToken verifies the signature and expiry and rejects tokens
// of any other type.
func (m *TokenManager) ParseAccessToken(tokenString string) (Claims, error) {
	return m.parse(tokenString, TokenTypeAccess)
}

// ParseRefreshToken is the refresh-side counterpart of ParseAccessToken.
func (m *TokenManager) ParseRefreshToken(tokenString string) (Claims, error) {
	return m.parse(tokenString, TokenTypeRefresh)
}

func (m *TokenManager) parse(tokenString, wantType string) (Claims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return m.secret, nil
	})

	if err != nil || !token.Valid {
		return Claims{}, fmt.Errorf("invalid or expired token")
	}

	mapClaims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return Claims{}, fmt.Errorf("invalid token claims")
	}

	tokenType, _ := mapClaims["type"].(string)
	if tokenType != wantType {
		return Claims{}, fmt.Errorf("token is not a %s token", wantType)
	}

	userIDFloat, ok := mapClaims["user_id"].(float64)
	if !ok {
		return Claims{}, fmt.Errorf("invalid user ID in token claims")
	}

	username, _ := mapClaims["username"].(string)
	tokenID, _ := mapClaims["jti"].(string)

	var expiresAt time.Time
	if exp, ok := mapClaims["exp"].(float64); ok {
		expiresAt = time.Unix(int64(exp), 0)
	}

	return Claims{
		UserID:    uint(userIDFloat),
		Username:  username,
		TokenType: tokenType,
		TokenID:   tokenID,
		ExpiresAt: expiresAt,
	}, nil
}
