package handler

import (
	"context"
	"fmt"
	"strings"

	"idea-lab/config"
	"idea-lab/eventbus"
	"idea-lab/events"
)

// Notifier 는 사람이 읽을 메시지를 외부 채널로 보낸다.
type Notifier interface {
	Notify(ctx context.Context, text string) error
}

// EventHandler 는 plan 이벤트를 받아 알림으로 바꾼다.
type EventHandler struct {
	notifier Notifier
}

func NewEventHandler(notifier Notifier) *EventHandler {
	return &EventHandler{notifier: notifier}
}

// Handle 은 eventbus.SubscribeJSON[events.BaseEvent] 에 등록된다. 에러를 반환하면 재시도 토픽으로 넘어간다.
func (h *EventHandler) Handle(ctx context.Context, base events.BaseEvent, ev eventbus.Event) error {
	switch base.Type {
	case events.PlanCreated:
		v, err := eventbus.DecodeJSON[events.PlanCreatedEvent](ev)
		if err != nil {
			return err
		}
		return h.HandlePlanCreated(ctx, &v)
	case events.PlanDeleted:
		v, err := eventbus.DecodeJSON[events.PlanDeletedEvent](ev)
		if err != nil {
			return err
		}
		config.DebugWithFields("plan deleted", config.Fields{"plan_id": v.PlanID, "owner_id": v.OwnerID})
		return nil
	default:
		// 알 수 없는 타입은 무시 (커밋)
		return nil
	}
}

func (h *EventHandler) HandlePlanCreated(ctx context.Context, event *events.PlanCreatedEvent) error {
	if err := h.notifier.Notify(ctx, FormatPlanCreated(event)); err != nil {
		config.ErrorWithFields("failed to notify plan created", config.Fields{
			"plan_id": event.PlanID,
			"error":   err.Error(),
		})
		return fmt.Errorf("notify plan %s: %w", event.PlanID, err)
	}
	config.InfoWithFields("plan created notification sent", config.Fields{"plan_id": event.PlanID})
	return nil
}

// FormatPlanCreated 는 Slack mrkdwn 형식의 알림 본문을 만든다.
func FormatPlanCreated(e *events.PlanCreatedEvent) string {
	var b strings.Builder
	fmt.Fprintf(&b, ":bulb: *새 아이디어 플랜* %s\n", e.Title)
	if e.Description != "" {
		fmt.Fprintf(&b, "> %s\n", e.Description)
	}
	if len(e.Keywords) > 0 {
		fmt.Fprintf(&b, "키워드: %s\n", strings.Join(e.Keywords, ", "))
	} else if e.SearchQuery != "" {
		fmt.Fprintf(&b, "주제: %s\n", e.SearchQuery)
	}
	fmt.Fprintf(&b, "plan `%s` (%s)", e.PlanID, e.CreatedDate)
	return b.String()
}
