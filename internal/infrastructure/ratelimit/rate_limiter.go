package ratelimit

import (
	"context"

	"golang.org/x/time/rate"
)

// RateLimiter 全局请求速率限制器（令牌桶）
type RateLimiter struct {
	limiter *rate.Limiter
}

// NewRateLimiter 创建速率限制器
// qps: 每秒允许的请求数，0或负数表示不限制；桶大小等于qps，允许短时突发
func NewRateLimiter(qps int) *RateLimiter {
	if qps <= 0 {
		return &RateLimiter{limiter: rate.NewLimiter(rate.Inf, 1)}
	}
	return &RateLimiter{limiter: rate.NewLimiter(rate.Limit(qps), qps)}
}

// Allow 非阻塞地尝试获取一个令牌
func (r *RateLimiter) Allow() bool {
	return r.limiter.Allow()
}

// Wait 阻塞直到获得令牌或ctx结束
func (r *RateLimiter) Wait(ctx context.Context) error {
	return r.limiter.Wait(ctx)
}

// Unlimited 是否未设置限制
func (r *RateLimiter) Unlimited() bool {
	return r.limiter.Limit() == rate.Inf
}

// QPS 当前限制，0表示无限制
func (r *RateLimiter) QPS() int {
	if r.Unlimited() {
		return 0
	}
	return int(r.limiter.Limit())
}
