package service

import (
	"fmt"
	"time"

	"github.com/zaika-next/internal/models"

	"github.com/golang-jwt/jwt/v5"
)

// UserJWTClaims 用户令牌声明
type UserJWTClaims struct {
	UserID uint   `json:"user_id"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

// IssueUserToken 签发用户访问令牌
func IssueUserToken(secretKey string, expireHours int, user *models.User) (string, error) {
	if secretKey == "" {
		return "", fmt.Errorf("jwt secret is empty")
	}
	if user == nil || user.ID == 0 {
		return "", fmt.Errorf("user is required")
	}
	if expireHours <= 0 {
		expireHours = 24
	}

	now := time.Now()
	claims := UserJWTClaims{
		UserID: user.ID,
		Role:   user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Duration(expireHours) * time.Hour)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secretKey))
}
