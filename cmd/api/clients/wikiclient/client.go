package wikiclient

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"idea-lab/cmd/api/httpclient"
	"idea-lab/config"
	"idea-lab/models"
)

// ErrNotFound is returned when the encyclopedia has no page for the term.
var ErrNotFound = errors.New("wikipedia page not found")

type Client struct {
	base *httpclient.BaseClient
}

type HTTPError struct {
	StatusCode int
	Body       string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("wikipedia request failed: status=%d body=%s", e.StatusCode, e.Body)
}

// summaryResponse 는 REST v1 page/summary 응답 중 필요한 필드만 담는다.
type summaryResponse struct {
	Type        string `json:"type"`
	Title       string `json:"title"`
	Extract     string `json:"extract"`
	ContentURLs struct {
		Desktop struct {
			Page string `json:"page"`
		} `json:"desktop"`
	} `json:"content_urls"`
}

// New 는 research 설정으로 클라이언트를 만든다.
// wikipedia_url 이 비어 있으면 https://{lang}.wikipedia.org 를 사용한다.
func New(cfg config.ResearchConfig, httpClient *http.Client) *Client {
	baseURL := strings.TrimRight(cfg.WikipediaURL, "/")
	if baseURL == "" {
		baseURL = fmt.Sprintf("https://%s.wikipedia.org", cfg.WikipediaLang)
	}
	return &Client{base: httpclient.NewBaseClientWithClient(httpClient, baseURL+"/api/rest_v1")}
}

// Summary 는 term 에 해당하는 문서 요약을 가져온다.
func (c *Client) Summary(ctx context.Context, term string) (models.ResearchSource, error) {
	title := strings.ReplaceAll(strings.TrimSpace(term), " ", "_")
	if title == "" || title == "." || title == ".." {
		return models.ResearchSource{}, ErrNotFound
	}

	// 제목 전체를 한 세그먼트로 이스케이프한다. "/" 와 "?" 도 제목의 일부다.
	req, err := c.base.NewRequest(ctx, http.MethodGet, "/page/summary/"+url.PathEscape(title), url.Values{"redirect": {"true"}}, nil)
	if err != nil {
		return models.ResearchSource{}, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.base.Do(req)
	if err != nil {
		return models.ResearchSource{}, err
	}
	defer resp.Body.Close()

	const maxBodySize = 1 * 1024 * 1024
	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return models.ResearchSource{}, fmt.Errorf("wikipedia response read failed: %w", err)
	}

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return models.ResearchSource{}, ErrNotFound
	case resp.StatusCode != http.StatusOK:
		return models.ResearchSource{}, &HTTPError{StatusCode: resp.StatusCode, Body: string(body)}
	}

	var out summaryResponse
	if err := json.Unmarshal(body, &out); err != nil {
		return models.ResearchSource{}, err
	}
	// 동음이의어 문서는 요약으로 쓸 수 없다.
	if out.Type == "disambiguation" || strings.TrimSpace(out.Extract) == "" {
		return models.ResearchSource{}, ErrNotFound
	}

	return models.ResearchSource{
		Title:   out.Title,
		URL:     out.ContentURLs.Desktop.Page,
		Extract: out.Extract,
	}, nil
}
