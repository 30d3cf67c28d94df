package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"idea-lab/cmd/api/trace"
	"idea-lab/config"
	"idea-lab/generator"
	"idea-lab/models"
	"idea-lab/repositories"
)

// PlanEventPublisher 는 플랜 저장/삭제 사실을 알린다. 실패는 호출자가 로그만 남긴다.
type PlanEventPublisher interface {
	PublishPlanCreated(ctx context.Context, plan *models.IdeaPlan) error
	PublishPlanDeleted(ctx context.Context, planID, ownerID string) error
}

type GenerateInput struct {
	Keywords []string
	Topic    string
}

// BatchItem 은 배치 생성된 아이디어 하나와 플랜 저장 결과다.
type BatchItem struct {
	Idea    models.Idea
	HasPlan bool
	PlanID  string
}

type BatchResult struct {
	Items []BatchItem
	// Usage 는 배치 생성 호출 한 건의 토큰 사용량이다. 확장 호출은 합산하지 않는다.
	Usage *generator.Usage
}

type IdeaPlanService struct {
	completer generator.Completer
	store     repositories.PlanStore
	events    PlanEventPublisher
	maxIdeas  int
	now       func() time.Time
}

// NewIdeaPlanService 의 events 는 nil 이어도 된다.
func NewIdeaPlanService(completer generator.Completer, store repositories.PlanStore, events PlanEventPublisher, maxIdeas int) *IdeaPlanService {
	if maxIdeas <= 0 {
		maxIdeas = 5
	}
	return &IdeaPlanService{
		completer: completer,
		store:     store,
		events:    events,
		maxIdeas:  maxIdeas,
		now:       time.Now,
	}
}

// GenerateIdeaPlans 는 키워드/주제로 아이디어를 배치 생성한 뒤, 아이디어마다 플랜을 확장해 저장한다.
// 배치 단계 실패만 치명적이다. 아이디어별 확장/저장 실패는 해당 항목을 HasPlan=false 로 두고 계속 진행한다.
func (s *IdeaPlanService) GenerateIdeaPlans(ctx context.Context, owner string, in GenerateInput) (*BatchResult, error) {
	keywords := normalizeKeywords(in.Keywords)
	topic := strings.TrimSpace(in.Topic)
	if len(keywords) == 0 && topic == "" {
		return nil, fmt.Errorf("%w: keywords or topic is required", ErrInvalidInput)
	}
	search := resolveSearch(keywords, topic)
	cctx := generator.CompletionContext{Keywords: keywords, Topic: topic}

	batch, err := s.completer.Complete(ctx, generator.CompletionRequest{
		Context: cctx,
		Mode:    generator.ModeBatch,
		Count:   s.maxIdeas,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrGenerationFailure, err)
	}
	if batch == nil || len(batch.Ideas) == 0 {
		return nil, fmt.Errorf("%w: no ideas returned", ErrGenerationFailure)
	}

	ideas := batch.Ideas
	if len(ideas) > s.maxIdeas {
		ideas = ideas[:s.maxIdeas]
	}

	result := &BatchResult{
		Items: make([]BatchItem, len(ideas)),
		Usage: batch.Usage,
	}
	for i, idea := range ideas {
		result.Items[i] = BatchItem{Idea: idea}
		if ctx.Err() != nil {
			// 요청이 끊긴 뒤로는 호출하지 않는다. 이미 저장된 플랜은 그대로 둔다.
			continue
		}

		plan, err := s.expandAndStore(ctx, owner, idea, cctx, search)
		if err != nil {
			config.WarnWithFields("idea plan expansion failed", config.Fields{
				"index":      i,
				"title":      idea.Title,
				"error":      err.Error(),
				"request_id": trace.RequestIDFromContext(ctx),
			})
			continue
		}
		result.Items[i].HasPlan = true
		result.Items[i].PlanID = plan.ID
		s.publishCreated(ctx, plan)
	}

	config.InfoWithFields("idea plans generated", config.Fields{
		"owner_id":   owner,
		"search":     search,
		"ideas":      len(result.Items),
		"plans":      result.planCount(),
		"request_id": trace.RequestIDFromContext(ctx),
	})
	return result, nil
}

func (s *IdeaPlanService) expandAndStore(ctx context.Context, owner string, idea models.Idea, cctx generator.CompletionContext, search string) (*models.IdeaPlan, error) {
	resp, err := s.completer.Complete(ctx, generator.CompletionRequest{
		Context: cctx,
		Mode:    generator.ModeExpand,
		Idea:    &idea,
	})
	if err != nil {
		return nil, fmt.Errorf("expand: %w", err)
	}
	if resp == nil || resp.IdeaPlan == nil {
		return nil, fmt.Errorf("expand: response has no idea_plan")
	}

	plan := models.NewIdeaPlan(owner, idea, *resp.IdeaPlan, cctx.Keywords, search, s.now())
	created, err := s.store.CreatePlan(ctx, plan)
	if err != nil {
		return nil, fmt.Errorf("store: %w", err)
	}
	return created, nil
}

func (s *IdeaPlanService) publishCreated(ctx context.Context, plan *models.IdeaPlan) {
	if s.events == nil {
		return
	}
	if err := s.events.PublishPlanCreated(ctx, plan); err != nil {
		config.WarnWithFields("plan created event publish failed", config.Fields{
			"plan_id":    plan.ID,
			"error":      err.Error(),
			"request_id": trace.RequestIDFromContext(ctx),
		})
	}
}

func (r *BatchResult) planCount() int {
	n := 0
	for _, it := range r.Items {
		if it.HasPlan {
			n++
		}
	}
	return n
}
