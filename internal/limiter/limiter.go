package limiter

import (
	"context"
	"fmt"
	"sort"
	"time"
)

// Actions
const (
	ActionAnalyze         = "analyze"
	ActionAICheck         = "ai_check"
	ActionDictionaryWrite = "dictionary_write"
)

// ActionConfig is the request budget of one action per window.
type ActionConfig struct {
	Limit  int64
	Window time.Duration
}

var DefaultLimits = map[string]ActionConfig{
	ActionAnalyze:         {Limit: 60, Window: time.Minute},
	ActionAICheck:         {Limit: 20, Window: time.Minute},
	ActionDictionaryWrite: {Limit: 120, Window: time.Minute},
}

// Counter increments a windowed counter and reports the time left in the
// window. The window starts at the first increment.
type Counter interface {
	Incr(ctx context.Context, key string, window time.Duration) (int64, time.Duration, error)
}

// Limiter enforces fixed-window budgets per client and action.
type Limiter struct {
	counter Counter
	limits  map[string]ActionConfig
	now     func() time.Time
}

// CheckResult is the outcome of one Check, with the values reported in
// the X-RateLimit headers.
type CheckResult struct {
	Allowed   bool  `json:"allowed"`
	Remaining int64 `json:"remaining"`
	ResetAt   int64 `json:"reset_at"`
	Limit     int64 `json:"limit"`
}

// NewLimiter counts requests in counter. A nil limits map uses
// DefaultLimits.
func NewLimiter(counter Counter, limits map[string]ActionConfig) *Limiter {
	if limits == nil {
		limits = DefaultLimits
	}
	return &Limiter{counter: counter, limits: limits, now: time.Now}
}

// Check counts one use of action by clientID. A nil limiter allows
// everything.
func (l *Limiter) Check(ctx context.Context, clientID, action string) (*CheckResult, error) {
	if l == nil || l.counter == nil {
		return &CheckResult{Allowed: true, Remaining: -1, Limit: -1}, nil
	}

	config, ok := l.limits[action]
	if !ok {
		// Default limit for unknown actions
		config = ActionConfig{Limit: 100, Window: time.Minute}
	}

	key := fmt.Sprintf("rate:%s:%s", clientID, action)
	count, ttl, err := l.counter.Incr(ctx, key, config.Window)
	if err != nil {
		return nil, fmt.Errorf("failed to increment counter: %w", err)
	}

	remaining := config.Limit - count
	if remaining < 0 {
		remaining = 0
	}

	return &CheckResult{
		Allowed:   count <= config.Limit,
		Remaining: remaining,
		ResetAt:   l.now().Add(ttl).Unix(),
		Limit:     config.Limit,
	}, nil
}

type LimitInfo struct {
	Action        string `json:"action"`
	Limit         int64  `json:"limit"`
	WindowSeconds int    `json:"window_seconds"`
}

// Limits lists the configured limits sorted by action.
func (l *Limiter) Limits() []LimitInfo {
	limits := DefaultLimits
	if l != nil {
		limits = l.limits
	}
	out := make([]LimitInfo, 0, len(limits))
	for action, config := range limits {
		out = append(out, LimitInfo{
			Action:        action,
			Limit:         config.Limit,
			WindowSeconds: int(config.Window.Seconds()),
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Action < out[j].Action })
	return out
}
