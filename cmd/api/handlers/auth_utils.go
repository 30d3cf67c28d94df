package handlers

import (
	"errors"

	"github.com/gin-gonic/gin"

	"idea-lab/cmd/api/auth"
)

// requireUserCodeFromHeader는 Authorization 헤더가 필수인 엔드포인트에서
// JWT를 검증하여 요청자 식별자(sub)를 추출한다. 실패 시 401 응답을 내려주고 false를 반환한다.
func requireUserCodeFromHeader(c *gin.Context, parser auth.TokenParser) (string, bool) {
	userCode, err := auth.UserCodeFromRequest(c, parser)
	if err != nil {
		auth.AbortWithUnauthorized(c, err)
		return "", false
	}
	return userCode, true
}

// optionalUserCodeFromHeader는 Authorization 헤더가 선택인 엔드포인트에서 사용한다.
// - 헤더가 없으면 (익명 요청) "", true 를 반환한다.
// - 헤더가 있으나 유효하지 않으면 401 응답을 내려주고 false 를 반환한다.
func optionalUserCodeFromHeader(c *gin.Context, parser auth.TokenParser) (string, bool) {
	userCode, err := auth.UserCodeFromRequest(c, parser)
	if errors.Is(err, auth.ErrMissingHeader) {
		return "", true
	}
	if err != nil {
		auth.AbortWithUnauthorized(c, err)
		return "", false
	}
	return userCode, true
}
