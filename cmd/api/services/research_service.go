package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"idea-lab/cmd/api/trace"
	"idea-lab/config"
	"idea-lab/generator"
	"idea-lab/models"
)

// SourceFetcher 는 용어 하나의 백과사전 요약을 가져온다. wikiclient.Client 가 구현한다.
type SourceFetcher interface {
	Summary(ctx context.Context, term string) (models.ResearchSource, error)
}

type ResearchService struct {
	completer  generator.Completer
	fetcher    SourceFetcher
	maxSources int
}

func NewResearchService(completer generator.Completer, fetcher SourceFetcher, maxSources int) *ResearchService {
	if maxSources <= 0 {
		maxSources = 5
	}
	return &ResearchService{completer: completer, fetcher: fetcher, maxSources: maxSources}
}

// Summarize 는 키워드별(키워드가 없으면 topic) 백과사전 요약을 모아 LLM 에 리서치 요약을 요청한다.
// 조회 실패는 키워드 단위로 흡수한다.
func (s *ResearchService) Summarize(ctx context.Context, keywords []string, topic string) (*models.ResearchSummary, error) {
	keywords = normalizeKeywords(keywords)
	topic = strings.TrimSpace(topic)
	if len(keywords) == 0 && topic == "" {
		return nil, fmt.Errorf("%w: keywords or topic is required", ErrInvalidInput)
	}

	terms := keywords
	if len(terms) == 0 {
		terms = []string{topic}
	}
	if len(terms) > s.maxSources {
		terms = terms[:s.maxSources]
	}

	sources := s.fetchSources(ctx, terms)

	resp, err := s.completer.Complete(ctx, generator.CompletionRequest{
		Context: generator.CompletionContext{Keywords: keywords, Topic: topic},
		Mode:    generator.ModeResearch,
		Sources: sources,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrGenerationFailure, err)
	}
	if resp == nil || resp.Research == nil {
		return nil, fmt.Errorf("%w: no research returned", ErrGenerationFailure)
	}

	out := resp.Research
	if out.Topic == "" {
		out.Topic = resolveSearch(keywords, topic)
	}
	out.Sources = sources
	return out, nil
}

func (s *ResearchService) fetchSources(ctx context.Context, terms []string) []models.ResearchSource {
	sources := make([]models.ResearchSource, 0, len(terms))
	if s.fetcher == nil {
		return sources
	}
	for _, term := range terms {
		src, err := s.fetcher.Summary(ctx, term)
		if err != nil {
			fields := config.Fields{
				"term":       term,
				"error":      err.Error(),
				"request_id": trace.RequestIDFromContext(ctx),
			}
			if errors.Is(err, context.Canceled) {
				config.DebugWithFields("research source lookup canceled", fields)
			} else {
				config.WarnWithFields("research source lookup failed", fields)
			}
			continue
		}
		sources = append(sources, src)
	}
	return sources
}
