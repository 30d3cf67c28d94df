package generator

import (
	"context"
	"errors"

	"idea-lab/models"
)

// Mode 는 LLM 에 요청하는 작업 종류다.
type Mode string

const (
	ModeBatch    Mode = "batch"
	ModeExpand   Mode = "expand"
	ModeMindMap  Mode = "mindmap"
	ModeResearch Mode = "research"
)

var (
	// ErrQuotaExceeded is returned when the daily LLM request budget is used up.
	ErrQuotaExceeded = errors.New("llm quota exceeded")
	ErrEmptyResponse = errors.New("llm returned an empty response")
	ErrUnknownMode   = errors.New("unknown completion mode")
)

// Completer 는 프롬프트를 받아 구조화된 응답을 돌려주는 외부 생성 서비스 계약이다.
type Completer interface {
	Complete(ctx context.Context, req CompletionRequest) (*CompletionResponse, error)
}

type CompletionContext struct {
	Keywords []string `json:"keywords"`
	Topic    string   `json:"topic,omitempty"`
}

type CompletionRequest struct {
	Context CompletionContext       `json:"context"`
	Mode    Mode                    `json:"mode"`
	Idea    *models.Idea            `json:"idea,omitempty"`
	Count   int                     `json:"count,omitempty"`
	Depth   int                     `json:"depth,omitempty"`
	Sources []models.ResearchSource `json:"sources,omitempty"`
}

// CompletionResponse carries whichever field the requested mode produces.
// A nil field means the model did not return it.
type CompletionResponse struct {
	Ideas    []models.Idea           `json:"ideas,omitempty"`
	IdeaPlan *models.PlanDetails     `json:"idea_plan,omitempty"`
	MindMap  *models.MindMap         `json:"mind_map,omitempty"`
	Research *models.ResearchSummary `json:"research,omitempty"`
	Usage    *Usage                  `json:"usage,omitempty"`

	Meta CallMeta `json:"-"`
}

type Usage struct {
	InputTokens  int64 `json:"input_tokens"`
	OutputTokens int64 `json:"output_tokens"`
	TotalTokens  int64 `json:"total_tokens"`
}

// CallMeta 는 호출 로그(ai_logs) 기록용 부가 정보다. API 응답에는 포함하지 않는다.
type CallMeta struct {
	Provider     string
	ModelName    string
	ModelVersion string
	Prompt       string
	RawText      string
}
