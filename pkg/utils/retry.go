package utils

import (
	"context"
	"time"
)

// Retrier 带指数退避的重试器，BaseDelay逐次翻倍
type Retrier struct {
	Attempts  int
	BaseDelay time.Duration

	wait func(context.Context, time.Duration) error // 测试时可替换
}

func NewRetrier(attempts int, baseDelay time.Duration) *Retrier {
	if attempts <= 0 {
		attempts = 1
	}
	return &Retrier{
		Attempts:  attempts,
		BaseDelay: baseDelay,
		wait:      waitBackoff,
	}
}

// waitBackoff 等待退避时长，context取消时立即返回不睡满
func waitBackoff(ctx context.Context, delay time.Duration) error {
	timer := time.NewTimer(delay)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// Retry 重试fn直到成功或次数耗尽，耗尽后返回最后一次的错误
func Retry[T any](ctx context.Context, r *Retrier, fn func() (T, error)) (T, error) {
	var (
		result  T
		lastErr error
	)

	delay := r.BaseDelay
	for i := 0; i < r.Attempts; i++ {
		result, lastErr = fn()
		if lastErr == nil {
			return result, nil
		}
		if i == r.Attempts-1 {
			break
		}
		// 退避一下，公共RPC限流时有用
		if err := r.wait(ctx, delay); err != nil {
			return result, err
		}
		delay *= 2
	}

	return result, lastErr
}
