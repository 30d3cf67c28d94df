package generator

import (
	"context"
	"fmt"
	"os"

	"google.golang.org/genai"

	"idea-lab/config"
)

// GeminiCompleter 는 google.golang.org/genai 로 Gemini 모델을 호출한다.
type GeminiCompleter struct {
	client    *genai.Client
	modelName string
	maxTokens int32
}

func NewGeminiCompleter(ctx context.Context, cfg config.LLMConfig) (*GeminiCompleter, error) {
	apiKey := os.Getenv("GEMINI_API_KEY")
	if apiKey == "" {
		return nil, fmt.Errorf("GEMINI_API_KEY environment variable is not set")
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, err
	}

	return &GeminiCompleter{
		client:    client,
		modelName: cfg.ModelName,
		maxTokens: int32(cfg.MaxTokens),
	}, nil
}

func (g *GeminiCompleter) Complete(ctx context.Context, req CompletionRequest) (*CompletionResponse, error) {
	instruction, err := systemInstruction(req.Mode)
	if err != nil {
		return nil, err
	}
	prompt, err := buildPrompt(req)
	if err != nil {
		return nil, err
	}

	result, err := g.client.Models.GenerateContent(
		ctx,
		g.modelName,
		genai.Text(prompt),
		&genai.GenerateContentConfig{
			SystemInstruction: &genai.Content{Parts: []*genai.Part{{Text: instruction}}},
			ResponseMIMEType:  "application/json",
			MaxOutputTokens:   g.maxTokens,
		},
	)
	if err != nil {
		return nil, err
	}
	if result == nil {
		return nil, ErrEmptyResponse
	}

	text := result.Text()
	out, err := decodeResponse(text)
	if err != nil {
		return nil, err
	}

	if result.UsageMetadata != nil {
		out.Usage = &Usage{
			InputTokens:  int64(result.UsageMetadata.PromptTokenCount),
			OutputTokens: int64(result.UsageMetadata.CandidatesTokenCount),
			TotalTokens:  int64(result.UsageMetadata.TotalTokenCount),
		}
	}
	out.Meta = CallMeta{
		Provider:     config.LLMProviderGoogle,
		ModelName:    g.modelName,
		ModelVersion: result.ModelVersion,
		Prompt:       fmt.Sprintf("%s\n\n%s", instruction, prompt),
		RawText:      text,
	}
	return out, nil
}
