package generator

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/anthropic"

	"idea-lab/config"
)

// AnthropicCompleter calls Claude through langchaingo's Anthropic client.
type AnthropicCompleter struct {
	client    *anthropic.LLM
	modelName string
	maxTokens int
}

// NewAnthropicCompleter 는 ANTHROPIC_API_KEY 환경변수를 사용한다.
// httpClient 가 nil 이면 llm.timeout_seconds 타임아웃의 기본 클라이언트를 사용한다.
func NewAnthropicCompleter(cfg config.LLMConfig, httpClient *http.Client) (*AnthropicCompleter, error) {
	apiKey := os.Getenv("ANTHROPIC_API_KEY")
	if apiKey == "" {
		return nil, fmt.Errorf("ANTHROPIC_API_KEY environment variable is not set")
	}
	return newAnthropicCompleter(apiKey, cfg, httpClient)
}

func newAnthropicCompleter(apiKey string, cfg config.LLMConfig, httpClient *http.Client) (*AnthropicCompleter, error) {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: time.Duration(cfg.TimeoutSeconds) * time.Second}
	}

	client, err := anthropic.New(
		anthropic.WithToken(apiKey),
		anthropic.WithModel(cfg.ModelName),
		// llm.anthropic_url 은 호스트까지만 받는다. 클라이언트는 /v1 아래 경로를 붙인다.
		anthropic.WithBaseURL(strings.TrimRight(cfg.AnthropicURL, "/")+"/v1"),
		anthropic.WithHTTPClient(httpClient),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create anthropic client: %w", err)
	}
	return &AnthropicCompleter{
		client:    client,
		modelName: cfg.ModelName,
		maxTokens: cfg.MaxTokens,
	}, nil
}

func (a *AnthropicCompleter) Complete(ctx context.Context, req CompletionRequest) (*CompletionResponse, error) {
	instruction, err := systemInstruction(req.Mode)
	if err != nil {
		return nil, err
	}
	prompt, err := buildPrompt(req)
	if err != nil {
		return nil, err
	}

	messages := []llms.MessageContent{
		llms.TextParts(llms.ChatMessageTypeSystem, instruction),
		llms.TextParts(llms.ChatMessageTypeHuman, prompt),
	}
	result, err := a.client.GenerateContent(ctx, messages,
		llms.WithModel(a.modelName),
		llms.WithMaxTokens(a.maxTokens),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to call Anthropic API: %w", err)
	}
	if result == nil || len(result.Choices) == 0 {
		return nil, ErrEmptyResponse
	}

	var text strings.Builder
	for _, choice := range result.Choices {
		if choice != nil {
			text.WriteString(choice.Content)
		}
	}

	out, err := decodeResponse(text.String())
	if err != nil {
		return nil, err
	}
	out.Usage = usageFromGenerationInfo(result.Choices[0].GenerationInfo)
	out.Meta = CallMeta{
		Provider:  config.LLMProviderAnthropic,
		ModelName: a.modelName,
		Prompt:    fmt.Sprintf("%s\n\n%s", instruction, prompt),
		RawText:   text.String(),
	}
	return out, nil
}

// usageFromGenerationInfo reads the InputTokens/OutputTokens keys langchaingo fills in.
func usageFromGenerationInfo(info map[string]any) *Usage {
	if info == nil {
		return nil
	}
	in := tokenCount(info["InputTokens"])
	outTokens := tokenCount(info["OutputTokens"])
	return &Usage{
		InputTokens:  in,
		OutputTokens: outTokens,
		TotalTokens:  in + outTokens,
	}
}

func tokenCount(v any) int64 {
	switch n := v.(type) {
	case int:
		return int64(n)
	case int32:
		return int64(n)
	case int64:
		return n
	case float64:
		return int64(n)
	default:
		return 0
	}
}
