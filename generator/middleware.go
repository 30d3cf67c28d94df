package generator

import (
	"context"
	"time"

	"idea-lab/config"
	"idea-lab/models"
	"idea-lab/quota"
)

type quotaCompleter struct {
	next    Completer
	limiter *quota.Limiter
}

// WithQuota 는 호출마다 limiter 예약을 먼저 수행한다.
// 일일 한도 소진 시 ErrQuotaExceeded 를 반환하고 next 는 호출하지 않는다.
func WithQuota(next Completer, limiter *quota.Limiter) Completer {
	if limiter == nil {
		return next
	}
	return &quotaCompleter{next: next, limiter: limiter}
}

func (q *quotaCompleter) Complete(ctx context.Context, req CompletionRequest) (*CompletionResponse, error) {
	ok, err := q.limiter.WaitAndReserve(ctx)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrQuotaExceeded
	}
	return q.next.Complete(ctx, req)
}

// UsageLogWriter persists one AILog per completion call.
type UsageLogWriter interface {
	InsertAILog(ctx context.Context, log *models.AILog) error
}

type usageLogCompleter struct {
	next   Completer
	writer UsageLogWriter
	model  string
	now    func() time.Time
}

// WithUsageLog records every call (success or failure) into ai_logs.
// Write failures are logged and never change the call result.
func WithUsageLog(next Completer, writer UsageLogWriter, modelName string) Completer {
	if writer == nil {
		return next
	}
	return &usageLogCompleter{next: next, writer: writer, model: modelName, now: time.Now}
}

func (u *usageLogCompleter) Complete(ctx context.Context, req CompletionRequest) (*CompletionResponse, error) {
	start := u.now()
	resp, err := u.next.Complete(ctx, req)
	done := u.now()

	entry := &models.AILog{
		Mode:        string(req.Mode),
		ModelName:   u.model,
		DurationMs:  done.Sub(start).Milliseconds(),
		RequestedAt: start,
		CompletedAt: done,
	}
	if err != nil {
		msg := err.Error()
		entry.ErrorMessage = &msg
	}
	if resp != nil {
		entry.Provider = resp.Meta.Provider
		if resp.Meta.ModelName != "" {
			entry.ModelName = resp.Meta.ModelName
		}
		entry.ModelVersion = resp.Meta.ModelVersion
		entry.InputPrompt = resp.Meta.Prompt
		entry.OutputResponse = resp.Meta.RawText
		if resp.Usage != nil {
			entry.InputTokens = resp.Usage.InputTokens
			entry.OutputTokens = resp.Usage.OutputTokens
			entry.TotalTokens = resp.Usage.TotalTokens
		}
	}

	// 요청 컨텍스트가 끊겨도 로그는 남긴다.
	logCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 5*time.Second)
	defer cancel()
	if werr := u.writer.InsertAILog(logCtx, entry); werr != nil {
		config.Logger.Warnf("failed to insert ai_log mode=%s: %v", req.Mode, werr)
	}
	return resp, err
}
