package eventbus

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// RetryDelays는 재시도 횟수(1-based)별로 사용할 고정된 지연 시간 목록입니다.
// 알림 전송 실패는 대부분 Slack rate limit 이라 짧게 잡는다.
var RetryDelays = []time.Duration{
	10 * time.Second,
	30 * time.Second,
	2 * time.Minute,
}

// Topic은 토픽의 기본 이름, 재시도 토픽, DLQ 토픽 이름을 관리합니다.
type Topic struct {
	base string
}

func NewTopic(base string) Topic {
	return Topic{base: base}
}

func (t Topic) Base() string {
	return t.base
}

// DLQ는 DLQ 토픽 이름을 반환합니다 (예: my_topic.dlq).
func (t Topic) DLQ() string {
	return t.base + ".dlq"
}

// GetRetryTopics는 모든 재시도 토픽의 이름을 반환합니다. (형식: base.retry.<n>)
func (t Topic) GetRetryTopics() []string {
	topics := make([]string, len(RetryDelays))
	for i := range RetryDelays {
		topics[i] = fmt.Sprintf("%s.retry.%d", t.base, i+1)
	}
	return topics
}

// GetRetryTopic은 다음 재시도 횟수(1-based)에 해당하는 재시도 토픽 이름을 반환합니다.
func (t Topic) GetRetryTopic(retryCount int) (string, error) {
	// retryCount는 1부터 시작하며, 인덱스 (retryCount-1)를 사용합니다.
	if retryCount <= 0 || retryCount > len(RetryDelays) {
		return "", ErrMaxRetryExceeded
	}
	return fmt.Sprintf("%s.retry.%d", t.base, retryCount), nil
}

// ParseRetryDelayFromTopicName는 "<base>.retry.<n>" 토픽 이름에서 RetryDelays[n-1] 을 찾습니다.
func ParseRetryDelayFromTopicName(name string) (time.Duration, bool) {
	idx := strings.LastIndex(name, ".retry.")
	if idx == -1 || idx+7 >= len(name) {
		return 0, false
	}
	n, err := strconv.Atoi(name[idx+7:])
	if err != nil || n <= 0 || n > len(RetryDelays) {
		return 0, false
	}
	return RetryDelays[n-1], true
}

// Event는 Kafka 메시지의 페이로드로 사용되는 구조체입니다.
type Event struct {
	ID        string          `json:"id"`
	Payload   json.RawMessage `json:"payload"`
	Retry     int             `json:"retry"` // 현재 재시도 횟수 (0부터 시작)
	MaxRetry  int             `json:"max_retry"`
	LastError string          `json:"last_error,omitempty"`
}

// EventHandler는 이벤트 처리 함수의 시그니처입니다.
type EventHandler func(ctx context.Context, event Event) error

// EventBus 인터페이스는 이벤트 발행 및 구독의 추상화를 정의합니다.
type EventBus interface {
	Publish(ctx context.Context, topic string, event Event) error
	// Subscribe는 기본 토픽을 구독하여 메인 로직을 실행합니다.
	Subscribe(ctx context.Context, groupID string, topic Topic, handler EventHandler) error
	// StartRetryReinjector는 모든 재시도 토픽을 구독하고 기본 토픽으로 이벤트를 재발행합니다.
	StartRetryReinjector(ctx context.Context, groupID string, topic Topic) error
	Close()
}

// ErrMaxRetryExceeded는 최대 재시도 횟수를 초과했을 때 반환되는 오류입니다.
var ErrMaxRetryExceeded = errors.New("최대 재시도 횟수 초과")
