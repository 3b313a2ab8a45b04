package session

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

func signedToken(t *testing.T, userID, name string, expiresAt time.Time) string {
	t.Helper()
	claims := &UserClaims{
		UserID: userID,
		Name:   name,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("测试密钥"))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return token
}

func TestSetTokenExposesIdentity(t *testing.T) {
	p := NewProvider()
	token := signedToken(t, "u1", "张三", time.Now().Add(time.Hour))

	if err := p.SetToken(token); err != nil {
		t.Fatalf("SetToken: %v", err)
	}
	if p.UserID() != "u1" {
		t.Fatalf("userId: %s", p.UserID())
	}
	if p.Name() != "张三" {
		t.Fatalf("name: %s", p.Name())
	}
	if p.Token() != token {
		t.Fatalf("token not held")
	}
}

func TestSetTokenRejectsMalformed(t *testing.T) {
	p := NewProvider()
	if err := p.SetToken("not-a-jwt"); err == nil {
		t.Fatalf("malformed token accepted")
	}
	if p.UserID() != "" {
		t.Fatalf("identity set from rejected token")
	}
}

func TestSetTokenRequiresUserID(t *testing.T) {
	p := NewProvider()
	token := signedToken(t, "", "无名", time.Now().Add(time.Hour))
	if err := p.SetToken(token); err == nil {
		t.Fatalf("token without user_id accepted")
	}
}

func TestExpiresWithin(t *testing.T) {
	p := NewProvider()

	// 未设置凭据时不应触发续期
	if p.ExpiresWithin(time.Hour) {
		t.Fatalf("empty provider reports expiring")
	}

	if err := p.SetToken(signedToken(t, "u1", "张三", time.Now().Add(10*time.Minute))); err != nil {
		t.Fatalf("SetToken: %v", err)
	}
	if !p.ExpiresWithin(30 * time.Minute) {
		t.Fatalf("token expiring in 10m not reported for 30m window")
	}
	if p.ExpiresWithin(time.Minute) {
		t.Fatalf("token with 10m left reported for 1m window")
	}
}
