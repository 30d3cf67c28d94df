package eventbus

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
)

// NewJSONEvent 는 payload 를 JSON 으로 감싼 Event 를 만든다.
// id 가 비어 있으면 uuid 를 쓰고, maxRetry 는 1..len(RetryDelays) 로 맞춘다.
func NewJSONEvent(id string, payload any, maxRetry int) (Event, error) {
	if id == "" {
		id = uuid.NewString()
	}
	b, err := json.Marshal(payload)
	if err != nil {
		return Event{}, fmt.Errorf("marshal event %s payload: %w", id, err)
	}
	return Event{ID: id, Payload: b, MaxRetry: clampMaxRetry(maxRetry)}, nil
}

func clampMaxRetry(n int) int {
	if n <= 0 || n > len(RetryDelays) {
		return len(RetryDelays)
	}
	return n
}

func DecodeJSON[T any](evt Event) (T, error) {
	var out T
	if err := json.Unmarshal(evt.Payload, &out); err != nil {
		var zero T
		return zero, fmt.Errorf("decode event %s payload: %w", evt.ID, err)
	}
	return out, nil
}

// SubscribeJSON 은 payload 를 T 로 디코딩해 handler 에 넘긴다. 원본 Event 도 함께 전달한다.
// 디코딩 실패는 handler 실패와 같이 재시도 경로를 탄다.
func SubscribeJSON[T any](ctx context.Context, bus EventBus, groupID string, topic Topic, handler func(ctx context.Context, payload T, meta Event) error) error {
	return bus.Subscribe(ctx, groupID, topic, func(ctx context.Context, evt Event) error {
		v, err := DecodeJSON[T](evt)
		if err != nil {
			return err
		}
		return handler(ctx, v, evt)
	})
}
