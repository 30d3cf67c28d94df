package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/cors"

	"idea-lab/cmd/api/auth"
	"idea-lab/cmd/api/clients/wikiclient"
	"idea-lab/cmd/api/httpclient"
	"idea-lab/cmd/api/router"
	"idea-lab/cmd/api/services"
	"idea-lab/config"
	"idea-lab/eventbus"
	"idea-lab/generator"
	"idea-lab/quota"
)

// @title           Idea Lab API
// @version         1.0
// @description     Brainstorm project ideas from keywords or a topic: idea plans, mind maps, research summaries
// @BasePath        /api/v1
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	config.InitApp()
	cfg := config.GetConfig()
	config.InitLogger(cfg.Logging)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	store, err := openStore(ctx, cfg)
	if err != nil {
		config.Logger.Errorf("failed to initialize %s store: %v", cfg.Store.Driver, err)
		os.Exit(1)
	}
	defer func() {
		closeCtx, closeCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer closeCancel()
		if err := store.Close(closeCtx); err != nil {
			config.Logger.Warnf("store close error: %v", err)
		}
	}()

	tokens, err := auth.NewJWTManagerFromEnv()
	if err != nil {
		config.Logger.Errorf("failed to initialize jwt manager: %v", err)
		os.Exit(1)
	}

	llmHTTP := httpclient.New(httpclient.Config{Timeout: time.Duration(cfg.LLM.TimeoutSeconds) * time.Second})
	completer, err := generator.New(ctx, cfg.LLM, generator.Options{
		HTTPClient: llmHTTP,
		Limiter:    quota.NewLimiter(cfg.Generation.Quota),
		UsageLog:   store,
	})
	if err != nil {
		config.Logger.Errorf("failed to initialize llm completer: %v", err)
		os.Exit(1)
	}

	bus := newEventBus(ctx, cfg.Kafka)
	defer bus.Close()
	publisher := eventbus.NewPlanEventPublisher(bus, eventbus.TopicPlanEvents)

	wiki := wikiclient.New(cfg.Research, httpclient.New(httpclient.Config{
		Timeout: time.Duration(cfg.Research.TimeoutSeconds) * time.Second,
	}))

	engine := router.New(router.Deps{
		IdeaPlans: services.NewIdeaPlanService(completer, store, publisher, cfg.Generation.MaxIdeas),
		Plans:     services.NewPlanService(store, publisher),
		MindMaps:  services.NewMindMapService(completer),
		Research:  services.NewResearchService(completer, wiki, cfg.Research.MaxSources),
		Tokens:    tokens,
		Store:     store,
	})

	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   cfg.Server.AllowedOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodDelete, http.MethodOptions},
		AllowedHeaders:   []string{"Authorization", "Content-Type", "X-Request-Id"},
		ExposedHeaders:   []string{"X-Request-Id"},
		AllowCredentials: true,
	})

	srv := &http.Server{
		Addr:              cfg.Server.Addr,
		Handler:           corsHandler.Handler(engine),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		config.InfoWithFields("api server listening", config.Fields{
			"addr":         cfg.Server.Addr,
			"store_driver": cfg.Store.Driver,
			"llm_provider": cfg.LLM.Provider,
			"kafka":        cfg.Kafka.Enabled,
		})
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			config.Logger.Errorf("api server error: %v", err)
			cancel()
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	select {
	case <-sigChan:
		config.Logger.Info("received shutdown signal, shutting down api server...")
	case <-ctx.Done():
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		config.Logger.Warnf("api server shutdown error: %v", err)
	}
	config.Logger.Info("api server stopped")
}

// newEventBus 는 kafka.enabled 가 꺼져 있거나 연결에 실패하면 NoopBus 를 돌려준다.
func newEventBus(ctx context.Context, cfg config.KafkaConfig) eventbus.EventBus {
	if !cfg.Enabled {
		config.Logger.Info("kafka disabled, plan events are dropped")
		return eventbus.NoopBus{}
	}

	ensureCtx, ensureCancel := context.WithTimeout(ctx, 30*time.Second)
	defer ensureCancel()
	if err := eventbus.EnsureTopics(ensureCtx, cfg.Brokers, eventbus.TopicPlanEvents, 3); err != nil {
		config.Logger.Errorf("failed to ensure eventbus topics: %v", err)
	}

	bus, err := eventbus.NewKafkaEventBus(cfg.Brokers)
	if err != nil {
		config.Logger.Errorf("failed to create event bus, falling back to noop: %v", err)
		return eventbus.NoopBus{}
	}
	return bus
}
