package application

import (
	"context"
	"errors"
	"strings"

	"github.com/wyfcoding/talkstoque/internal/stock/domain"
	"github.com/wyfcoding/talkstoque/pkg/logger"
)

// LoginCommand 登录凭证，username 为员工邮箱
type LoginCommand struct {
	Username string `form:"username" json:"username" binding:"required"`
	Password string `form:"password" json:"password" binding:"required"`
}

// AuthService 登录与令牌校验
type AuthService struct {
	employees domain.EmployeeRepository
	hasher    domain.PasswordHasher
	tokens    domain.TokenIssuer
}

// NewAuthService 创建认证服务
func NewAuthService(employees domain.EmployeeRepository, hasher domain.PasswordHasher, tokens domain.TokenIssuer) *AuthService {
	return &AuthService{employees: employees, hasher: hasher, tokens: tokens}
}

// Login 校验邮箱与密码并签发访问令牌
func (s *AuthService) Login(ctx context.Context, cmd LoginCommand) (*TokenDTO, error) {
	e, err := s.employees.GetByEmail(ctx, strings.TrimSpace(cmd.Username))
	if err != nil {
		return nil, err
	}
	if e == nil || !s.hasher.Verify(e.PasswordHash, cmd.Password) {
		logger.Warn(ctx, "login rejected", "email", cmd.Username)
		return nil, domain.ErrBadCredentials
	}

	token, _, err := s.tokens.Issue(e.Email, e.ID)
	if err != nil {
		return nil, err
	}
	return &TokenDTO{AccessToken: token, TokenType: "bearer"}, nil
}

// Authenticate 解析令牌并加载对应员工
func (s *AuthService) Authenticate(ctx context.Context, token string) (*domain.Employee, error) {
	if token == "" {
		return nil, domain.ErrUnauthorized
	}
	claims, err := s.tokens.Parse(token)
	if err != nil {
		if !errors.Is(err, domain.ErrUnauthorized) {
			logger.Warn(ctx, "token parse failed", "error", err)
		}
		return nil, domain.ErrUnauthorized
	}
	if claims.Email == "" || claims.EmployeeID == 0 {
		return nil, domain.ErrUnauthorized
	}
	e, err := s.employees.Get(ctx, claims.EmployeeID)
	if err != nil {
		return nil, err
	}
	if e == nil {
		return nil, domain.ErrUnauthorized
	}
	return e, nil
}

// TokenInfo 当前员工的令牌信息
func (s *AuthService) TokenInfo(e *domain.Employee) *TokenInfoDTO {
	return &TokenInfoDTO{Subject: e.Email, EmployeeID: e.ID}
}
