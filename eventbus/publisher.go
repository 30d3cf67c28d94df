package eventbus

import (
	"context"
	"time"

	"idea-lab/events"
	"idea-lab/models"
)

// PlanEventPublisher 는 plan 라이프사이클 이벤트를 plan 토픽에 발행한다.
type PlanEventPublisher struct {
	bus   EventBus
	topic Topic
	now   func() time.Time
}

func NewPlanEventPublisher(bus EventBus, topic Topic) *PlanEventPublisher {
	return &PlanEventPublisher{bus: bus, topic: topic, now: time.Now}
}

func (p *PlanEventPublisher) PublishPlanCreated(ctx context.Context, plan *models.IdeaPlan) error {
	payload := events.NewPlanCreatedEvent(plan, p.now())
	evt, err := NewJSONEvent(payload.ID, payload, 0)
	if err != nil {
		return err
	}
	return p.bus.Publish(ctx, p.topic.Base(), evt)
}

func (p *PlanEventPublisher) PublishPlanDeleted(ctx context.Context, planID, ownerID string) error {
	payload := events.NewPlanDeletedEvent(planID, ownerID, p.now())
	evt, err := NewJSONEvent(payload.ID, payload, 0)
	if err != nil {
		return err
	}
	return p.bus.Publish(ctx, p.topic.Base(), evt)
}

// NoopBus 는 kafka.enabled=false 일 때 쓰는 EventBus 다. 발행은 버리고 구독은 ctx 종료까지 대기한다.
type NoopBus struct{}

func (NoopBus) Publish(ctx context.Context, topic string, event Event) error { return nil }

func (NoopBus) Subscribe(ctx context.Context, groupID string, topic Topic, handler EventHandler) error {
	<-ctx.Done()
	return ctx.Err()
}

func (NoopBus) StartRetryReinjector(ctx context.Context, groupID string, topic Topic) error {
	<-ctx.Done()
	return ctx.Err()
}

func (NoopBus) Close() {}
