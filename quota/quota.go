package quota

import (
	"context"
	"sync"
	"time"

	"idea-lab/config"
)

// Limiter 는 LLM 호출에 대한 분당/일일 한도를 관리한다.
// API 인스턴스 단위 인메모리 카운터이며, 프로세스가 재시작되면 초기화된다.
type Limiter struct {
	mu sync.Mutex

	dailyLimit int
	usedToday  int
	dayKey     string

	interval time.Duration
	lastCall time.Time

	now func() time.Time
}

// NewLimiter 는 generation.quota 설정으로 Limiter 를 생성한다.
// 설정 값이 0 이하인 경우에는 해당 방향의 제한을 두지 않는다.
func NewLimiter(q config.QuotaConfig) *Limiter {
	requestsPerDay := q.RequestsPerDay
	if requestsPerDay < 0 {
		requestsPerDay = 0
	}

	var interval time.Duration
	if q.RequestsPerMinute > 0 {
		interval = time.Minute / time.Duration(q.RequestsPerMinute)
	}

	return &Limiter{
		dailyLimit: requestsPerDay,
		interval:   interval,
		now:        time.Now,
	}
}

// WaitAndReserve 는 호출 전에 분당/일일 한도를 적용한다.
//   - 일일 한도를 초과한 경우: (false, nil) 을 반환하고 호출자는 LLM 호출을 하지 않아야 한다.
//   - 컨텍스트가 취소되면 (false, ctx.Err()) 를 반환한다.
func (l *Limiter) WaitAndReserve(ctx context.Context) (bool, error) {
	for {
		l.mu.Lock()

		now := l.now().UTC()
		todayKey := now.Format("2006-01-02")
		if l.dayKey != todayKey {
			l.dayKey = todayKey
			l.usedToday = 0
		}

		if l.dailyLimit > 0 && l.usedToday >= l.dailyLimit {
			l.mu.Unlock()
			return false, nil
		}

		var delay time.Duration
		if l.interval > 0 && !l.lastCall.IsZero() {
			delay = l.lastCall.Add(l.interval).Sub(now)
		}

		if delay <= 0 {
			l.usedToday++
			l.lastCall = now
			l.mu.Unlock()
			return true, nil
		}

		// 락을 풀고 대기한 뒤 상태를 다시 평가한다.
		l.mu.Unlock()
		timer := time.NewTimer(delay)
		select {
		case <-timer.C:
		case <-ctx.Done():
			timer.Stop()
			return false, ctx.Err()
		}
	}
}
