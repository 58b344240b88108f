// Package security 提供访问令牌签发/校验与密码哈希
package security

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/wyfcoding/talkstoque/internal/stock/domain"
)

// Claims JWT 载荷：sub 为员工邮箱，id 为员工 id
type Claims struct {
	EmployeeID int64 `json:"id"`
	jwt.RegisteredClaims
}

// JWTIssuer HS256 令牌签发器
type JWTIssuer struct {
	secret []byte
	ttl    time.Duration
	issuer string
	now    func() time.Time
}

// NewJWTIssuer 创建签发器
func NewJWTIssuer(secret string, ttl time.Duration, issuer string) (*JWTIssuer, error) {
	if secret == "" {
		return nil, errors.New("jwt secret is required")
	}
	if ttl <= 0 {
		return nil, fmt.Errorf("invalid token ttl: %s", ttl)
	}
	return &JWTIssuer{secret: []byte(secret), ttl: ttl, issuer: issuer, now: time.Now}, nil
}

// WithClock 替换时钟，测试用
func (j *JWTIssuer) WithClock(now func() time.Time) *JWTIssuer {
	j.now = now
	return j
}

// Issue 签发令牌，返回过期时间
func (j *JWTIssuer) Issue(email string, employeeID int64) (string, time.Time, error) {
	now := j.now().UTC()
	exp := now.Add(j.ttl)
	claims := Claims{
		EmployeeID:       employeeID,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   email,
			Issuer:    j.issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(exp),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(j.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("failed to sign token: %w", err)
	}
	return token, exp, nil
}

// Parse 校验签名、算法与过期时间，sub 与 id 必须存在
func (j *JWTIssuer) Parse(tokenString string) (*domain.TokenClaims, error) {
	var claims Claims
	_, err := jwt.ParseWithClaims(tokenString, &claims, func(t *jwt.Token) (any, error) {
		return j.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(j.now),
	)
	if err != nil {
		return nil, domain.ErrUnauthorized
	}
	if claims.Subject == "" || claims.EmployeeID == 0 {
		return nil, domain.ErrUnauthorized
	}
	return &domain.TokenClaims{
		Email:      claims.Subject,
		EmployeeID: claims.EmployeeID,
		ExpiresAt:  claims.ExpiresAt.Time,
	}, nil
}
