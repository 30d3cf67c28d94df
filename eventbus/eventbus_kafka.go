package eventbus

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/confluentinc/confluent-kafka-go/v2/kafka"

	"idea-lab/config"
)

// KafkaEventBus는 confluent-kafka-go 라이브러리를 사용한 EventBus 구현체입니다.
type KafkaEventBus struct {
	Producer *kafka.Producer
	Brokers  string
}

// NewKafkaEventBus는 Kafka Producer를 초기화합니다.
func NewKafkaEventBus(brokers string) (*KafkaEventBus, error) {
	if brokers == "" {
		return nil, errors.New("kafka brokers are not configured")
	}
	p, err := kafka.NewProducer(&kafka.ConfigMap{
		"bootstrap.servers": brokers,
		"acks":              "all",
		"retries":           5,
	})
	if err != nil {
		return nil, fmt.Errorf("kafka Producer 생성 실패: %w", err)
	}

	// 전달 보고서 외의 Producer 이벤트 처리
	go func() {
		for e := range p.Events() {
			switch ev := e.(type) {
			case *kafka.Message:
				if ev.TopicPartition.Error != nil {
					config.Logger.Errorf("메시지 전달 실패 %v: %v", ev.TopicPartition, ev.TopicPartition.Error)
				}
			case kafka.Error:
				config.Logger.Errorf("Kafka 오류: %v", ev)
			}
		}
	}()

	return &KafkaEventBus{
		Producer: p,
		Brokers:  brokers,
	}, nil
}

// Close는 남은 메시지를 flush 한 뒤 Producer를 종료합니다.
func (k *KafkaEventBus) Close() {
	if k.Producer == nil {
		return
	}
	if remaining := k.Producer.Flush(5000); remaining > 0 {
		config.Logger.Warnf("플러시 후에도 %d개의 메시지가 남아 있습니다.", remaining)
	}
	k.Producer.Close()
	config.Logger.Info("Kafka Producer 종료.")
}

// Publish는 지정된 토픽에 이벤트를 발행하고 전달 보고서를 기다립니다.
func (k *KafkaEventBus) Publish(ctx context.Context, topic string, event Event) error {
	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("이벤트 마샬링 실패: %w", err)
	}

	deliveryChan := make(chan kafka.Event, 1)
	err = k.Producer.Produce(&kafka.Message{
		TopicPartition: kafka.TopicPartition{Topic: &topic, Partition: kafka.PartitionAny},
		Value:          data,
		Key:            []byte(event.ID),
	}, deliveryChan)
	if err != nil {
		return fmt.Errorf("메시지 발행 실패: %w", err)
	}

	select {
	case ev := <-deliveryChan:
		m, ok := ev.(*kafka.Message)
		if !ok {
			return fmt.Errorf("unexpected delivery event: %v", ev)
		}
		if m.TopicPartition.Error != nil {
			return fmt.Errorf("메시지 전달 실패: %w", m.TopicPartition.Error)
		}
	case <-ctx.Done():
		return ctx.Err()
	}
	return nil
}

func (k *KafkaEventBus) newConsumer(groupID string) (*kafka.Consumer, error) {
	return kafka.NewConsumer(&kafka.ConfigMap{
		"bootstrap.servers":             k.Brokers,
		"group.id":                      groupID,
		"auto.offset.reset":             "earliest",
		"enable.auto.commit":            false, // 재시도 로직을 위해 수동 커밋
		"partition.assignment.strategy": "range",
	})
}

// readMessage 는 타임아웃이면 (nil, nil) 을 돌려준다. 치명적 오류만 error 로 반환한다.
func readMessage(c *kafka.Consumer) (*kafka.Message, error) {
	msg, err := c.ReadMessage(100 * time.Millisecond)
	if err == nil {
		return msg, nil
	}
	var kerr kafka.Error
	if errors.As(err, &kerr) {
		if kerr.Code() == kafka.ErrTimedOut {
			return nil, nil
		}
		if kerr.IsFatal() {
			return nil, err
		}
	}
	config.Logger.Errorf("ReadMessage 오류: %v", err)
	time.Sleep(500 * time.Millisecond)
	return nil, nil
}

// Subscribe는 기본 토픽을 구독하고 handler 를 실행합니다.
// handler 실패 시 다음 재시도 토픽으로, MaxRetry 를 넘기면 DLQ 로 보냅니다.
func (k *KafkaEventBus) Subscribe(ctx context.Context, groupID string, topic Topic, handler EventHandler) error {
	c, err := k.newConsumer(groupID)
	if err != nil {
		return fmt.Errorf("kafka Consumer 생성 실패: %w", err)
	}
	defer c.Close()

	if err := c.SubscribeTopics([]string{topic.Base()}, nil); err != nil {
		return fmt.Errorf("토픽 구독 실패 %s: %w", topic.Base(), err)
	}
	config.Logger.Infof("메인 컨슈머 (%s) 시작됨. 구독 토픽: %s", groupID, topic.Base())

	for {
		select {
		case <-ctx.Done():
			config.Logger.Info("메인 컨슈머 종료 중.")
			return ctx.Err()
		default:
		}

		msg, err := readMessage(c)
		if err != nil {
			return fmt.Errorf("메인 컨슈머 치명적 오류: %w", err)
		}
		if msg == nil {
			continue
		}

		var evt Event
		if err := json.Unmarshal(msg.Value, &evt); err != nil {
			config.Logger.Errorf("토픽 %s의 이벤트 페이로드 오류: %v. 메시지를 건너뛰고 커밋합니다.", topic.Base(), err)
			_, _ = c.CommitMessage(msg)
			continue
		}
		evt.MaxRetry = clampMaxRetry(evt.MaxRetry)

		if evt.Retry > 0 {
			config.Logger.Infof("이벤트 %s 처리 시작 (재시도 %d/%d)", evt.ID, evt.Retry, evt.MaxRetry)
		} else {
			config.Logger.Debugf("이벤트 %s 처리 시작", evt.ID)
		}

		if herr := handler(ctx, evt); herr != nil {
			if err := k.scheduleRetry(ctx, topic, evt, herr); err != nil {
				config.Logger.Errorf("%v. 오프셋 커밋 안함.", err)
				continue
			}
		}

		if _, err := c.CommitMessage(msg); err != nil {
			config.Logger.Errorf("오프셋 커밋 오류: %v", err)
		}
	}
}

// scheduleRetry 는 실패한 이벤트를 다음 재시도 토픽 또는 DLQ 로 발행한다.
func (k *KafkaEventBus) scheduleRetry(ctx context.Context, topic Topic, evt Event, cause error) error {
	evt.LastError = cause.Error()
	next := evt.Retry + 1

	if next > evt.MaxRetry {
		config.Logger.Errorf("이벤트 %s의 최대 재시도 횟수 초과. DLQ %s로 전송. 최종 오류: %v", evt.ID, topic.DLQ(), cause)
		if err := k.Publish(ctx, topic.DLQ(), evt); err != nil {
			return fmt.Errorf("DLQ %s 발행 실패: %w", topic.DLQ(), err)
		}
		return nil
	}

	retryTopic, err := topic.GetRetryTopic(next)
	if err != nil {
		return err
	}
	evt.Retry = next
	config.Logger.Warnf("이벤트 %s 처리 실패. 재시도 %d/%d를 토픽 %s에 예약.", evt.ID, evt.Retry, evt.MaxRetry, retryTopic)
	if err := k.Publish(ctx, retryTopic, evt); err != nil {
		return fmt.Errorf("재시도 토픽 %s 발행 실패: %w", retryTopic, err)
	}
	return nil
}

// StartRetryReinjector는 모든 재시도 토픽을 구독하고, 지연 시간이 지난 메시지를 기본 토픽으로 재발행합니다.
func (k *KafkaEventBus) StartRetryReinjector(ctx context.Context, groupID string, topic Topic) error {
	c, err := k.newConsumer(groupID)
	if err != nil {
		return fmt.Errorf("kafka 재시도 재주입기 생성 실패: %w", err)
	}
	defer c.Close()

	retryTopics := topic.GetRetryTopics()
	if err := c.SubscribeTopics(retryTopics, nil); err != nil {
		return fmt.Errorf("재시도 토픽 구독 실패 %v: %w", retryTopics, err)
	}
	config.Logger.Infof("재시도 재주입 컨슈머 (%s) 시작됨. 구독 토픽: %s", groupID, strings.Join(retryTopics, ", "))

	for {
		select {
		case <-ctx.Done():
			config.Logger.Info("재시도 재주입 컨슈머 종료 중.")
			return ctx.Err()
		default:
		}

		msg, err := readMessage(c)
		if err != nil {
			return fmt.Errorf("재시도 재주입 컨슈머 치명적 오류: %w", err)
		}
		if msg == nil {
			continue
		}

		topicName := *msg.TopicPartition.Topic
		delay, ok := ParseRetryDelayFromTopicName(topicName)
		if !ok {
			config.Logger.Errorf("재시도 토픽 이름 파싱 실패: %s. 메시지를 건너뛰고 커밋합니다.", topicName)
			_, _ = c.CommitMessage(msg)
			continue
		}

		if wait := time.Until(msg.Timestamp.Add(delay)); wait > 0 {
			// 파티션을 되감아 같은 메시지를 다시 읽는다.
			if err := c.Seek(msg.TopicPartition, 0); err != nil {
				config.Logger.Errorf("재시도 메시지 seek 실패: %v", err)
			}
			time.Sleep(min(max(wait, 50*time.Millisecond), 500*time.Millisecond))
			continue
		}

		var evt Event
		if err := json.Unmarshal(msg.Value, &evt); err != nil {
			config.Logger.Errorf("재시도 토픽 %s의 이벤트 페이로드 오류: %v. 메시지를 건너뛰고 커밋합니다.", topicName, err)
			_, _ = c.CommitMessage(msg)
			continue
		}

		config.Logger.Infof("이벤트 %s를 %s에서 %s로 재주입. (재시도: %d)", evt.ID, topicName, topic.Base(), evt.Retry)
		if err := k.Publish(ctx, topic.Base(), evt); err != nil {
			config.Logger.Errorf("이벤트 %s 재주입 실패: %v. 오프셋 커밋 안함.", evt.ID, err)
			continue
		}
		if _, err := c.CommitMessage(msg); err != nil {
			config.Logger.Errorf("재주입 후 커밋 오류: %v", err)
		}
	}
}
