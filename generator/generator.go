package generator

import (
	"context"
	"fmt"
	"net/http"

	"idea-lab/config"
	"idea-lab/quota"
)

// Options 는 New 가 조립하는 데코레이터 체인의 구성 요소다.
type Options struct {
	HTTPClient *http.Client
	Limiter    *quota.Limiter
	UsageLog   UsageLogWriter
}

// New builds the configured provider wrapped as quota -> usage log -> provider.
func New(ctx context.Context, cfg config.LLMConfig, opts Options) (Completer, error) {
	var provider Completer
	switch cfg.Provider {
	case config.LLMProviderGoogle:
		g, err := NewGeminiCompleter(ctx, cfg)
		if err != nil {
			return nil, err
		}
		provider = g
	case config.LLMProviderAnthropic:
		a, err := NewAnthropicCompleter(cfg, opts.HTTPClient)
		if err != nil {
			return nil, err
		}
		provider = a
	default:
		return nil, fmt.Errorf("unsupported LLM provider: %s", cfg.Provider)
	}

	c := WithUsageLog(provider, opts.UsageLog, cfg.ModelName)
	return WithQuota(c, opts.Limiter), nil
}
