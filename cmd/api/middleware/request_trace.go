package middleware

import (
	"bytes"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"idea-lab/cmd/api/dto"
	"idea-lab/cmd/api/trace"
	"idea-lab/config"
)

const maxBodyLog = 1024

// MaxRequestBodyBytes 를 넘는 요청 본문은 413 으로 거절한다.
const MaxRequestBodyBytes int64 = 1 << 20

// RequestTrace는 모든 inbound 요청에 Request ID 와 Span ID 를 보장하고,
// 이를 컨텍스트/헤더에 저장한 뒤 완료 로그에 포함시킨다.
// inbound 로그는 span_id=0, 아웃바운드 호출(LLM, 위키 조회)은 1,2,3,... 로 증가한다.
func RequestTrace() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		req := c.Request

		requestID := req.Header.Get(trace.HeaderRequestID)
		if requestID == "" {
			requestID = trace.GenerateID()
		}

		ctx := trace.WithRequestAndSpan(req.Context(), requestID, 0)
		c.Request = req.WithContext(ctx)
		c.Writer.Header().Set(trace.HeaderRequestID, requestID)
		c.Writer.Header().Set(trace.HeaderSpanID, trace.CurrentSpanID(ctx))

		var bodySnippet string
		if c.Request.Body != nil && req.ContentLength != 0 && hasBody(req.Method) {
			c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, MaxRequestBodyBytes)
			bodyBytes, err := io.ReadAll(c.Request.Body)
			var tooLarge *http.MaxBytesError
			if errors.As(err, &tooLarge) {
				c.AbortWithStatusJSON(http.StatusRequestEntityTooLarge, dto.ErrorResponseDTO{Error: "request_too_large"})
			} else {
				bodySnippet = string(bodyBytes[:min(len(bodyBytes), maxBodyLog)])
				// gin 핸들러에서 다시 읽을 수 있도록 Body 를 복원한다.
				c.Request.Body = io.NopCloser(bytes.NewReader(bodyBytes))
			}
		}

		if !c.IsAborted() {
			c.Next()
		}

		status := c.Writer.Status()
		fields := config.Fields{
			"method":      req.Method,
			"path":        req.URL.Path,
			"route":       c.FullPath(),
			"query":       req.URL.RawQuery,
			"status":      status,
			"duration_ms": time.Since(start).Milliseconds(),
			"request_id":  requestID,
			"span_id":     trace.CurrentSpanID(ctx),
		}
		if bodySnippet != "" {
			fields["body"] = bodySnippet
		}
		if status >= http.StatusInternalServerError {
			config.ErrorWithFields("completed request", fields)
			return
		}
		config.InfoWithFields("completed request", fields)
	}
}

func hasBody(method string) bool {
	switch method {
	case http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete:
		return true
	}
	return false
}
