package repositories

import (
	"context"
	"errors"

	"idea-lab/models"
)

// ErrNotFound is returned when no record matches the given id.
// Malformed ids are reported as not found as well.
var ErrNotFound = errors.New("record not found")

// PlanStore 는 IdeaPlan 영속화 계약이다. 호출 간 트랜잭션은 없다.
type PlanStore interface {
	CreatePlan(ctx context.Context, plan *models.IdeaPlan) (*models.IdeaPlan, error)
	FindPlanByID(ctx context.Context, id string) (*models.IdeaPlan, error)
	ListPlansByOwner(ctx context.Context, ownerID string, offset, limit int) ([]*models.IdeaPlan, int64, error)
	// DeletePlan removes the plan only if it belongs to ownerID.
	// deleted is false when nothing matched.
	DeletePlan(ctx context.Context, id, ownerID string) (deleted bool, err error)
}

type AILogStore interface {
	InsertAILog(ctx context.Context, log *models.AILog) error
}

// Store bundles everything a backend provides.
type Store interface {
	PlanStore
	AILogStore
	Ping(ctx context.Context) error
	Close(ctx context.Context) error
}

// clonePlan returns a copy so callers never share slices with the stored value.
func clonePlan(p *models.IdeaPlan) *models.IdeaPlan {
	out := *p
	out.Keywords = append([]string(nil), p.Keywords...)
	return &out
}
