package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"idea-lab/cmd/api/dto"
	"idea-lab/cmd/api/services"
	"idea-lab/cmd/api/trace"
	"idea-lab/config"
	"idea-lab/generator"
)

const (
	codeInvalidInput     = "invalid_input"
	codeInvalidRequest   = "invalid_request"
	codeGenerationFailed = "generation_failed"
	codeQuotaExceeded    = "quota_exceeded"
	codeUnauthorized     = "unauthorized"
	codeForbidden        = "forbidden"
	codePlanNotFound     = "plan_not_found"
	codeInternal         = "internal_error"
)

// statusForError 는 서비스 에러를 HTTP 상태와 에러 코드로 바꾼다.
// quota 초과는 generation 실패로 감싸져 오므로 먼저 확인한다.
func statusForError(err error) (int, string) {
	switch {
	case errors.Is(err, services.ErrInvalidInput):
		return http.StatusBadRequest, codeInvalidInput
	case errors.Is(err, generator.ErrQuotaExceeded):
		return http.StatusTooManyRequests, codeQuotaExceeded
	case errors.Is(err, services.ErrGenerationFailure):
		return http.StatusBadGateway, codeGenerationFailed
	case errors.Is(err, services.ErrUnauthorized):
		return http.StatusUnauthorized, codeUnauthorized
	case errors.Is(err, services.ErrForbidden):
		return http.StatusForbidden, codeForbidden
	case errors.Is(err, services.ErrNotFound):
		return http.StatusNotFound, codePlanNotFound
	default:
		return http.StatusInternalServerError, codeInternal
	}
}

func respondError(c *gin.Context, err error) {
	status, code := statusForError(err)
	if status >= http.StatusInternalServerError {
		config.ErrorWithFields("request failed", config.Fields{
			"path":       c.FullPath(),
			"status":     status,
			"error":      err.Error(),
			"request_id": trace.RequestIDFromContext(c.Request.Context()),
		})
	}
	c.JSON(status, dto.ErrorResponseDTO{Error: code})
}
