package auth

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"idea-lab/cmd/api/dto"
)

var (
	ErrMissingHeader = errors.New("missing_authorization_header")
	ErrInvalidFormat = errors.New("invalid_authorization_header")
	ErrEmptyToken    = errors.New("empty_token")
	ErrInvalidToken  = errors.New("invalid_token")
)

// TokenParser 는 access token 을 검증해 (sub, role) 을 돌려준다. JWTManager 가 구현한다.
type TokenParser interface {
	Parse(token string) (string, string, error)
}

// ExtractBearerToken extracts the Bearer token from the Authorization header.
func ExtractBearerToken(c *gin.Context) (string, error) {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		return "", ErrMissingHeader
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return "", ErrInvalidFormat
	}

	token := strings.TrimSpace(parts[1])
	if token == "" {
		return "", ErrEmptyToken
	}
	return token, nil
}

// UserCodeFromRequest 는 Bearer 토큰을 검증하고 subject 를 요청자 식별자로 반환한다.
// 파싱 실패는 모두 ErrInvalidToken 으로 합친다.
func UserCodeFromRequest(c *gin.Context, parser TokenParser) (string, error) {
	token, err := ExtractBearerToken(c)
	if err != nil {
		return "", err
	}
	userCode, _, err := parser.Parse(token)
	if err != nil {
		return "", ErrInvalidToken
	}
	return userCode, nil
}

// AbortWithUnauthorized aborts the request with 401 and the API error envelope.
func AbortWithUnauthorized(c *gin.Context, err error) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, dto.ErrorResponseDTO{Error: err.Error()})
}
