package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"idea-lab/cmd/notifier/event/handler"
	"idea-lab/cmd/notifier/slackclient"
	"idea-lab/config"
	"idea-lab/eventbus"
	"idea-lab/events"
)

func main() {
	config.InitApp()
	cfg := config.GetConfig()
	cfg.Logging.ServiceName = "idea-lab-notifier"
	config.InitLogger(cfg.Logging)

	if !cfg.Kafka.Enabled {
		config.Logger.Error("notifier requires kafka.enabled=true")
		os.Exit(1)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	slackClient, err := slackclient.New(os.Getenv("SLACK_BOT_TOKEN"), cfg.Slack.ChannelID)
	if err != nil {
		config.Logger.Errorf("failed to create slack client: %v", err)
		os.Exit(1)
	}

	if err := eventbus.EnsureTopics(ctx, cfg.Kafka.Brokers, eventbus.TopicPlanEvents, 3); err != nil {
		config.Logger.Errorf("failed to ensure eventbus topics: %v", err)
	}

	bus, err := eventbus.NewKafkaEventBus(cfg.Kafka.Brokers)
	if err != nil {
		config.Logger.Errorf("failed to create event bus: %v", err)
		os.Exit(1)
	}
	defer bus.Close()

	eventHandler := handler.NewEventHandler(slackClient)

	config.Logger.Info("starting notifier service with eventbus...")

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		if err := eventbus.SubscribeJSON[events.BaseEvent](ctx, bus, cfg.Kafka.GroupID, eventbus.TopicPlanEvents, eventHandler.Handle); err != nil && !errors.Is(err, context.Canceled) {
			config.Logger.Errorf("eventbus subscribe error: %v", err)
			cancel()
		}
	}()

	select {
	case <-sigChan:
		config.Logger.Info("received shutdown signal, shutting down notifier service...")
	case <-ctx.Done():
	}

	cancel()
	wg.Wait()

	config.Logger.Info("notifier service stopped")
}
