package services

import (
	"context"
	"errors"
	"fmt"

	"idea-lab/cmd/api/trace"
	"idea-lab/config"
	"idea-lab/models"
	"idea-lab/repositories"
)

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

type PlanService struct {
	store  repositories.PlanStore
	events PlanEventPublisher
}

func NewPlanService(store repositories.PlanStore, events PlanEventPublisher) *PlanService {
	return &PlanService{store: store, events: events}
}

type ListPlansInput struct {
	Page     int
	PageSize int
}

type PlanPage struct {
	Plans    []*models.IdeaPlan
	Page     int
	PageSize int
	Total    int64
}

func (s *PlanService) Get(ctx context.Context, id string) (*models.IdeaPlan, error) {
	plan, err := s.store.FindPlanByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return plan, nil
}

// ListMine 은 요청자의 플랜을 최신순으로 페이지 조회한다.
func (s *PlanService) ListMine(ctx context.Context, owner string, in ListPlansInput) (*PlanPage, error) {
	if owner == "" {
		return nil, ErrUnauthorized
	}
	page := in.Page
	if page <= 0 {
		page = 1
	}
	size := in.PageSize
	if size <= 0 {
		size = defaultPageSize
	}
	if size > maxPageSize {
		size = maxPageSize
	}

	plans, total, err := s.store.ListPlansByOwner(ctx, owner, (page-1)*size, size)
	if err != nil {
		return nil, fmt.Errorf("list plans: %w", err)
	}
	return &PlanPage{Plans: plans, Page: page, PageSize: size, Total: total}, nil
}

// Delete 는 소유자 확인 후 플랜을 삭제한다.
// 조회와 삭제 사이에 다른 요청이 먼저 지웠다면 ErrNotFound 를 돌려준다.
func (s *PlanService) Delete(ctx context.Context, requester, id string) error {
	if requester == "" {
		return ErrUnauthorized
	}

	plan, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	if plan.OwnerID != requester {
		return ErrForbidden
	}

	deleted, err := s.store.DeletePlan(ctx, id, requester)
	if err != nil {
		return fmt.Errorf("delete plan: %w", err)
	}
	if !deleted {
		return ErrNotFound
	}

	if s.events != nil {
		if err := s.events.PublishPlanDeleted(ctx, id, requester); err != nil {
			config.WarnWithFields("plan deleted event publish failed", config.Fields{
				"plan_id":    id,
				"error":      err.Error(),
				"request_id": trace.RequestIDFromContext(ctx),
			})
		}
	}
	return nil
}
