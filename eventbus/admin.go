package eventbus

import (
	"context"
	"fmt"
	"time"

	"github.com/confluentinc/confluent-kafka-go/v2/kafka"
)

// EnsureTopics 는 topic 의 기본/재시도/DLQ 토픽을 만든다. 이미 있는 토픽은 성공으로 본다.
func EnsureTopics(ctx context.Context, brokers string, topic Topic, basePartitions int) error {
	admin, err := kafka.NewAdminClient(&kafka.ConfigMap{"bootstrap.servers": brokers})
	if err != nil {
		return fmt.Errorf("create kafka admin client: %w", err)
	}
	defer admin.Close()

	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	results, err := admin.CreateTopics(ctx, topicSpecs(topic, basePartitions))
	if err != nil {
		return fmt.Errorf("create topics for %s: %w", topic.Base(), err)
	}
	for _, r := range results {
		if !topicReady(r.Error.Code()) {
			return fmt.Errorf("create topic %s: %v", r.Topic, r.Error)
		}
	}
	return nil
}

// topicSpecs 는 기본 토픽, 재시도 토픽(기본과 같은 파티션 수), 단일 파티션 DLQ 순서로 사양을 만든다.
func topicSpecs(topic Topic, basePartitions int) []kafka.TopicSpecification {
	if basePartitions <= 0 {
		basePartitions = 1
	}
	spec := func(name string, partitions int) kafka.TopicSpecification {
		return kafka.TopicSpecification{Topic: name, NumPartitions: partitions, ReplicationFactor: 1}
	}

	specs := []kafka.TopicSpecification{spec(topic.Base(), basePartitions)}
	for _, name := range topic.GetRetryTopics() {
		specs = append(specs, spec(name, basePartitions))
	}
	return append(specs, spec(topic.DLQ(), 1))
}

func topicReady(code kafka.ErrorCode) bool {
	return code == kafka.ErrNoError || code == kafka.ErrTopicAlreadyExists
}
