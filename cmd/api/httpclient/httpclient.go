package httpclient

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"idea-lab/cmd/api/trace"
	"idea-lab/config"
)

const maxBodyLog = 1024

// Config는 HTTP 클라이언트 공통 설정이다.
type Config struct {
	Timeout time.Duration
	// Transport 가 nil 이면 http.DefaultTransport 를 사용한다.
	Transport http.RoundTripper
}

// loggingRoundTripper는 모든 아웃바운드 HTTP 호출(LLM, 위키 조회)에 대해
// 공통 로깅과 X-Request-Id / X-Span-Id 헤더 전파를 수행한다.
type loggingRoundTripper struct {
	inner http.RoundTripper
}

func (l *loggingRoundTripper) RoundTrip(req *http.Request) (*http.Response, error) {
	start := time.Now()

	requestID, spanID := trace.NextSpanID(req.Context())
	// RoundTripper 는 원본 요청을 수정하면 안 된다.
	req = req.Clone(req.Context())
	req.Header.Set(trace.HeaderRequestID, requestID)
	req.Header.Set(trace.HeaderSpanID, spanID)

	var bodySnippet string
	if req.Body != nil && req.Body != http.NoBody {
		if bodyBytes, err := io.ReadAll(req.Body); err == nil {
			bodySnippet = snippet(bodyBytes)
			req.Body = io.NopCloser(bytes.NewReader(bodyBytes))
		}
	}

	fields := config.Fields{
		"method":     req.Method,
		"host":       req.URL.Host,
		"path":       req.URL.Path,
		"query":      req.URL.RawQuery,
		"request_id": requestID,
		"span_id":    spanID,
	}
	if bodySnippet != "" {
		fields["body"] = bodySnippet
	}

	resp, err := l.inner.RoundTrip(req)
	fields["duration"] = time.Since(start).String()
	if err != nil {
		fields["error"] = err.Error()
		config.ErrorWithFields("httpclient request failed", fields)
		return nil, err
	}

	fields["status"] = resp.StatusCode
	if resp.StatusCode >= http.StatusBadRequest {
		config.WarnWithFields("httpclient request returned error status", fields)
	} else {
		config.DebugWithFields("httpclient request success", fields)
	}
	return resp, nil
}

func snippet(b []byte) string {
	if len(b) > maxBodyLog {
		return string(b[:maxBodyLog])
	}
	return string(b)
}

// BaseClient는 공통 HTTP 클라이언트와 baseURL을 묶어 URL/요청 생성을 돕는다.
type BaseClient struct {
	HTTPClient *http.Client
	BaseURL    string
}

// NewBaseClientWithClient는 이미 생성된 http.Client를 사용하는 BaseClient를 생성한다.
// httpClient가 nil이면 기본 클라이언트를 사용한다.
func NewBaseClientWithClient(httpClient *http.Client, baseURL string) *BaseClient {
	if httpClient == nil {
		httpClient = NewDefault()
	}
	return &BaseClient{
		HTTPClient: httpClient,
		BaseURL:    baseURL,
	}
}

// NewRequest는 baseURL과 상대 경로, 쿼리, 바디로 요청을 만든다.
// relPath는 이미 이스케이프된 경로로 취급한다. 세그먼트 안의 %2F 는 그대로 유지된다.
// relPath에 쿼리(?)가 포함되면 에러를 반환한다.
func (c *BaseClient) NewRequest(ctx context.Context, method, relPath string, query url.Values, body io.Reader) (*http.Request, error) {
	if strings.Contains(relPath, "?") {
		return nil, fmt.Errorf("httpclient: relPath must not contain query string (use query parameter instead): %s", relPath)
	}
	u, err := url.Parse(c.BaseURL)
	if err != nil {
		return nil, err
	}
	if relPath != "" {
		u = u.JoinPath(relPath)
	}
	if query != nil {
		u.RawQuery = query.Encode()
	}
	return http.NewRequestWithContext(ctx, method, u.String(), body)
}

func (c *BaseClient) Do(req *http.Request) (*http.Response, error) {
	return c.HTTPClient.Do(req)
}

// New는 주어진 설정으로 로깅 http.Client를 생성한다. Timeout이 0이면 10초.
func New(cfg Config) *http.Client {
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 10 * time.Second
	}
	transport := cfg.Transport
	if transport == nil {
		transport = http.DefaultTransport
	}
	return &http.Client{
		Timeout:   timeout,
		Transport: &loggingRoundTripper{inner: transport},
	}
}

func NewDefault() *http.Client {
	return New(Config{})
}
