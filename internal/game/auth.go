package game

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrUnauthorized 连接认证失败
var ErrUnauthorized = errors.New("unauthorized")

// anonymousSubject 未启用认证时的默认主体
const anonymousSubject = "anonymous"

// TokenVerifier WebSocket 连接令牌校验
type TokenVerifier struct {
	secret   []byte
	required bool
}

// NewTokenVerifier 创建令牌校验器
func NewTokenVerifier(secret string, required bool) *TokenVerifier {
	return &TokenVerifier{secret: []byte(secret), required: required}
}

// Issue 签发令牌
func (v *TokenVerifier) Issue(subject string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:   subject,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(v.secret)
}

// Verify 校验令牌并返回主体
// 未启用认证时空令牌视为匿名，但提供的令牌仍须有效
func (v *TokenVerifier) Verify(tokenString string) (string, error) {
	if tokenString == "" {
		if v.required {
			return "", fmt.Errorf("%w: 缺少令牌", ErrUnauthorized)
		}
		return anonymousSubject, nil
	}

	claims := &jwt.RegisteredClaims{}
	_, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
		return v.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrUnauthorized, err)
	}
	if claims.Subject == "" {
		return "", fmt.Errorf("%w: 令牌缺少主体", ErrUnauthorized)
	}
	return claims.Subject, nil
}
