package events

import (
	"time"

	"github.com/google/uuid"

	"idea-lab/models"
)

// EventType 이벤트 타입 정의
type EventType string

const (
	PlanCreated EventType = "plan.created"
	PlanDeleted EventType = "plan.deleted"
)

const (
	SourceAPI = "api"
	Version   = "1"
)

// BaseEvent 모든 이벤트의 기본 구조
type BaseEvent struct {
	ID        string    `json:"id"`
	Type      EventType `json:"type"`
	Timestamp time.Time `json:"timestamp"`
	Source    string    `json:"source"`
	Version   string    `json:"version"`
}

func newBaseEvent(t EventType, now time.Time) BaseEvent {
	return BaseEvent{
		ID:        uuid.New().String(),
		Type:      t,
		Timestamp: now,
		Source:    SourceAPI,
		Version:   Version,
	}
}

// PlanCreatedEvent 아이디어 플랜이 저장되었을 때 발행되는 이벤트
type PlanCreatedEvent struct {
	BaseEvent
	PlanID      string   `json:"plan_id"`
	OwnerID     string   `json:"owner_id"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Keywords    []string `json:"keywords"`
	SearchQuery string   `json:"search_query"`
	CreatedDate string   `json:"created_date"`
}

// PlanDeletedEvent 소유자가 플랜을 삭제했을 때 발행되는 이벤트
type PlanDeletedEvent struct {
	BaseEvent
	PlanID  string `json:"plan_id"`
	OwnerID string `json:"owner_id"`
}

func NewPlanCreatedEvent(plan *models.IdeaPlan, now time.Time) PlanCreatedEvent {
	return PlanCreatedEvent{
		BaseEvent:   newBaseEvent(PlanCreated, now),
		PlanID:      plan.ID,
		OwnerID:     plan.OwnerID,
		Title:       plan.Idea.Title,
		Description: plan.Idea.Description,
		Keywords:    append([]string(nil), plan.Keywords...),
		SearchQuery: plan.SearchQuery,
		CreatedDate: plan.CreatedDate,
	}
}

func NewPlanDeletedEvent(planID, ownerID string, now time.Time) PlanDeletedEvent {
	return PlanDeletedEvent{
		BaseEvent: newBaseEvent(PlanDeleted, now),
		PlanID:    planID,
		OwnerID:   ownerID,
	}
}
