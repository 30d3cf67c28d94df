package services

import (
	"context"
	"fmt"
	"strings"

	"idea-lab/generator"
	"idea-lab/models"
)

const (
	defaultMindMapDepth = 2
	maxMindMapDepth     = 3
)

type MindMapService struct {
	completer generator.Completer
}

func NewMindMapService(completer generator.Completer) *MindMapService {
	return &MindMapService{completer: completer}
}

// Expand 는 keyword 를 루트로 하는 연관 키워드 트리를 만든다. depth 는 1..3 으로 보정한다.
func (s *MindMapService) Expand(ctx context.Context, keyword string, depth int) (*models.MindMap, error) {
	keyword = strings.TrimSpace(keyword)
	if keyword == "" {
		return nil, fmt.Errorf("%w: keyword is required", ErrInvalidInput)
	}
	switch {
	case depth <= 0:
		depth = defaultMindMapDepth
	case depth > maxMindMapDepth:
		depth = maxMindMapDepth
	}

	resp, err := s.completer.Complete(ctx, generator.CompletionRequest{
		Context: generator.CompletionContext{Keywords: []string{keyword}},
		Mode:    generator.ModeMindMap,
		Depth:   depth,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrGenerationFailure, err)
	}
	if resp == nil || resp.MindMap == nil {
		return nil, fmt.Errorf("%w: no mind_map returned", ErrGenerationFailure)
	}

	mm := resp.MindMap
	if mm.Root == "" {
		mm.Root = keyword
	}
	return mm, nil
}
