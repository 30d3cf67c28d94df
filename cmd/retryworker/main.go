package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"strings"
	"sync"
	"syscall"

	"idea-lab/config"
	"idea-lab/eventbus"
)

// retryworker 는 재시도 토픽(<base>.retry.N)의 메시지를 지연 시간이 지난 뒤 기본 토픽으로 되돌린다.
func main() {
	config.InitApp()
	cfg := config.GetConfig()
	cfg.Logging.ServiceName = "idea-lab-retryworker"
	config.InitLogger(cfg.Logging)

	if !cfg.Kafka.Enabled {
		config.Logger.Error("retry worker requires kafka.enabled=true")
		os.Exit(1)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	for _, t := range eventbus.AllTopics {
		if err := eventbus.EnsureTopics(ctx, cfg.Kafka.Brokers, t, 3); err != nil {
			config.Logger.Errorf("failed to ensure eventbus topics for %s: %v", t.Base(), err)
		}
	}

	bus, err := eventbus.NewKafkaEventBus(cfg.Kafka.Brokers)
	if err != nil {
		config.Logger.Errorf("failed to create event bus: %v", err)
		os.Exit(1)
	}
	defer bus.Close()

	groupID := cfg.Kafka.GroupID + "-retry-worker"

	config.Logger.Info("starting retry worker service with eventbus...")

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	var wg sync.WaitGroup
	for _, topic := range eventbus.AllTopics {
		wg.Add(1)
		go func() {
			defer wg.Done()
			topicGroupID := groupID + "-" + strings.ReplaceAll(topic.Base(), ".", "-")
			if err := bus.StartRetryReinjector(ctx, topicGroupID, topic); err != nil && !errors.Is(err, context.Canceled) {
				config.Logger.Errorf("eventbus retry reinjector error for %s: %v", topic.Base(), err)
			}
		}()
	}

	<-sigChan
	config.Logger.Info("received shutdown signal, shutting down retry worker service...")

	cancel()
	wg.Wait()

	config.Logger.Info("retry worker service stopped")
}
