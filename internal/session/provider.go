package session

import (
	"errors"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// UserClaims Token 中携带的业务身份信息
type UserClaims struct {
	UserID string `json:"user_id"`
	Name   string `json:"name"`
	jwt.RegisteredClaims
}

// Provider 本地会话：持有凭据并暴露稳定的用户身份
// 身份比对一律使用 UserID，显示名可能重名或被改名，不做身份判据
type Provider interface {
	UserID() string
	Name() string
	Token() string
	// SetToken 解析并持有新的会话凭据
	SetToken(token string) error
	// ExpiresWithin 凭据是否将在给定窗口内过期，驱动续期任务
	ExpiresWithin(window time.Duration) bool
}

type providerImpl struct {
	mu     sync.RWMutex
	token  string
	claims *UserClaims
}

// NewProvider 构造函数
func NewProvider() Provider {
	return &providerImpl{}
}

func (s *providerImpl) UserID() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.claims == nil {
		return ""
	}
	return s.claims.UserID
}

func (s *providerImpl) Name() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.claims == nil {
		return ""
	}
	return s.claims.Name
}

func (s *providerImpl) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

// SetToken 客户端不持有签名密钥，只解出 Claims；真伪由服务端校验
func (s *providerImpl) SetToken(token string) error {
	claims := &UserClaims{}
	parser := jwt.NewParser()
	if _, _, err := parser.ParseUnverified(token, claims); err != nil {
		return err
	}
	if claims.UserID == "" {
		return errors.New("token 缺少 user_id")
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = token
	s.claims = claims
	return nil
}

func (s *providerImpl) ExpiresWithin(window time.Duration) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.claims == nil || s.claims.ExpiresAt == nil {
		return false
	}
	return time.Until(s.claims.ExpiresAt.Time) < window
}
