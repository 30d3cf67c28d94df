package auth

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const (
	RoleUser = "user"

	DefaultIssuer = "idea-lab"
)

var ErrMissingSubject = errors.New("token missing sub claim")

// JWTManager 는 HS256 단일 시크릿으로 JWT 를 검증한다.
// 토큰 발급은 외부 인증 제공자가 담당하고, Sign 은 로컬 개발/테스트용이다.
type JWTManager struct {
	secret []byte
	issuer string
	ttl    time.Duration
}

// NewJWTManagerFromEnv 는 환경변수에서 시크릿/issuer 를 읽어 JWTManager 를 생성한다.
//
// - JWT_SECRET: HS256 서명에 사용할 시크릿 문자열(필수)
// - JWT_ISSUER: iss 클레임 값(선택, 기본값 "idea-lab")
func NewJWTManagerFromEnv() (*JWTManager, error) {
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		return nil, fmt.Errorf("JWT_SECRET is required")
	}
	return NewJWTManager(secret, os.Getenv("JWT_ISSUER")), nil
}

func NewJWTManager(secret, issuer string) *JWTManager {
	if issuer == "" {
		issuer = DefaultIssuer
	}
	return &JWTManager{
		secret: []byte(secret),
		issuer: issuer,
		ttl:    24 * time.Hour,
	}
}

func (m *JWTManager) Sign(userCode, role string) (string, error) {
	claims := jwt.MapClaims{
		"sub":  userCode,
		"role": role,
		"iss":  m.issuer,
		"exp":  time.Now().Add(m.ttl).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(m.secret)
}

// Parse 는 서명, 만료, issuer 를 검증하고 (sub, role) 을 반환한다.
func (m *JWTManager) Parse(tokenString string) (string, string, error) {
	parsed, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		return m.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(m.issuer),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		return "", "", err
	}

	claims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok || !parsed.Valid {
		return "", "", fmt.Errorf("invalid token claims")
	}

	sub, _ := claims["sub"].(string)
	role, _ := claims["role"].(string)
	if sub == "" {
		return "", "", ErrMissingSubject
	}
	return sub, role, nil
}
