package eventbus

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"idea-lab/events"
	"idea-lab/models"
)

func TestTopicNames(t *testing.T) {
	topic := NewTopic("idea-lab.plan.events")

	assert.Equal(t, "idea-lab.plan.events.dlq", topic.DLQ())
	assert.Equal(t, []string{
		"idea-lab.plan.events.retry.1",
		"idea-lab.plan.events.retry.2",
		"idea-lab.plan.events.retry.3",
	}, topic.GetRetryTopics())

	name, err := topic.GetRetryTopic(2)
	require.NoError(t, err)
	assert.Equal(t, "idea-lab.plan.events.retry.2", name)

	_, err = topic.GetRetryTopic(len(RetryDelays) + 1)
	assert.ErrorIs(t, err, ErrMaxRetryExceeded)
	_, err = topic.GetRetryTopic(0)
	assert.ErrorIs(t, err, ErrMaxRetryExceeded)
}

func TestParseRetryDelayFromTopicName(t *testing.T) {
	topic := NewTopic("idea-lab.plan.events")
	for i, name := range topic.GetRetryTopics() {
		d, ok := ParseRetryDelayFromTopicName(name)
		require.True(t, ok, name)
		assert.Equal(t, RetryDelays[i], d)
	}

	for _, name := range []string{"idea-lab.plan.events", "x.retry.", "x.retry.abc", "x.retry.0", "x.retry.99"} {
		_, ok := ParseRetryDelayFromTopicName(name)
		assert.False(t, ok, name)
	}
}

func TestNewJSONEvent_DefaultsMaxRetry(t *testing.T) {
	evt, err := NewJSONEvent("", map[string]string{"k": "v"}, 0)
	require.NoError(t, err)
	_, err = uuid.Parse(evt.ID)
	assert.NoError(t, err, "generated id should be a uuid")
	assert.Equal(t, len(RetryDelays), evt.MaxRetry)
	assert.JSONEq(t, `{"k":"v"}`, string(evt.Payload))
}

type recordingBus struct {
	NoopBus
	topics []string
	events []Event
	err    error
}

func (b *recordingBus) Publish(ctx context.Context, topic string, event Event) error {
	b.topics = append(b.topics, topic)
	b.events = append(b.events, event)
	return b.err
}

func TestPlanEventPublisher(t *testing.T) {
	bus := &recordingBus{}
	pub := NewPlanEventPublisher(bus, TopicPlanEvents)
	fixed := time.Date(2026, 5, 1, 9, 0, 0, 0, time.UTC)
	pub.now = func() time.Time { return fixed }

	plan := &models.IdeaPlan{
		ID:          "p1",
		OwnerID:     "u1",
		Idea:        models.Idea{Title: "Bot"},
		Keywords:    []string{"AI"},
		SearchQuery: "AI",
		CreatedDate: "2026-05-01",
	}
	require.NoError(t, pub.PublishPlanCreated(context.Background(), plan))
	require.NoError(t, pub.PublishPlanDeleted(context.Background(), "p1", "u1"))

	require.Len(t, bus.events, 2)
	assert.Equal(t, []string{TopicPlanEvents.Base(), TopicPlanEvents.Base()}, bus.topics)

	created, err := DecodeJSON[events.PlanCreatedEvent](bus.events[0])
	require.NoError(t, err)
	assert.Equal(t, events.PlanCreated, created.Type)
	assert.Equal(t, bus.events[0].ID, created.ID)
	assert.Equal(t, "p1", created.PlanID)
	assert.Equal(t, "Bot", created.Title)
	assert.True(t, created.Timestamp.Equal(fixed))

	deleted, err := DecodeJSON[events.PlanDeletedEvent](bus.events[1])
	require.NoError(t, err)
	assert.Equal(t, events.PlanDeleted, deleted.Type)
	assert.Equal(t, "u1", deleted.OwnerID)
}

func TestPlanEventPublisher_PropagatesBusError(t *testing.T) {
	bus := &recordingBus{err: errors.New("broker down")}
	pub := NewPlanEventPublisher(bus, TopicPlanEvents)

	err := pub.PublishPlanDeleted(context.Background(), "p1", "u1")
	assert.EqualError(t, err, "broker down")
}

func TestNewJSONEvent_KeepsIDAndClampsMaxRetry(t *testing.T) {
	evt, err := NewJSONEvent("evt-1", struct{}{}, 2)
	require.NoError(t, err)
	assert.Equal(t, "evt-1", evt.ID)
	assert.Equal(t, 2, evt.MaxRetry)

	evt, err = NewJSONEvent("evt-2", struct{}{}, 99)
	require.NoError(t, err)
	assert.Equal(t, len(RetryDelays), evt.MaxRetry)

	_, err = NewJSONEvent("evt-3", make(chan int), 0)
	assert.Error(t, err)
}

func TestTopicSpecs(t *testing.T) {
	specs := topicSpecs(TopicPlanEvents, 3)
	require.Len(t, specs, 2+len(RetryDelays))

	assert.Equal(t, TopicPlanEvents.Base(), specs[0].Topic)
	assert.Equal(t, 3, specs[0].NumPartitions)
	for i, name := range TopicPlanEvents.GetRetryTopics() {
		assert.Equal(t, name, specs[i+1].Topic)
		assert.Equal(t, 3, specs[i+1].NumPartitions)
	}
	last := specs[len(specs)-1]
	assert.Equal(t, TopicPlanEvents.DLQ(), last.Topic)
	assert.Equal(t, 1, last.NumPartitions)

	assert.Equal(t, 1, topicSpecs(TopicPlanEvents, 0)[0].NumPartitions)
}

// replayBus delivers a fixed list of events to the subscribed handler.
type replayBus struct {
	NoopBus
	events  []Event
	results []error
}

func (b *replayBus) Subscribe(ctx context.Context, groupID string, topic Topic, handler EventHandler) error {
	for _, evt := range b.events {
		b.results = append(b.results, handler(ctx, evt))
	}
	return nil
}

func TestSubscribeJSON(t *testing.T) {
	good, err := NewJSONEvent("e1", events.PlanDeletedEvent{PlanID: "p1"}, 0)
	require.NoError(t, err)
	bus := &replayBus{events: []Event{good, {ID: "e2", Payload: []byte("{broken")}}}

	var got []string
	err = SubscribeJSON(context.Background(), bus, "g", TopicPlanEvents, func(ctx context.Context, payload events.PlanDeletedEvent, meta Event) error {
		got = append(got, meta.ID+":"+payload.PlanID)
		return nil
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"e1:p1"}, got)
	require.Len(t, bus.results, 2)
	assert.NoError(t, bus.results[0])
	assert.Error(t, bus.results[1])
}
