package circuitbreaker

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/xiebiao/bookmarket/pkg/metrics"
)

var errStorage = errors.New("存储服务不可用")

func tripAfter(n uint32) func(Counts) bool {
	return func(counts Counts) bool {
		return counts.ConsecutiveFailures >= n
	}
}

// TestCircuitBreaker_ClosedState 正常请求保持CLOSED
func TestCircuitBreaker_ClosedState(t *testing.T) {
	cb := NewCircuitBreaker("test", Config{
		MaxRequests: 1,
		Interval:    10 * time.Second,
		Timeout:     time.Second,
		ReadyToTrip: tripAfter(3),
	})

	for i := 0; i < 5; i++ {
		if err := cb.Execute(func() error { return nil }); err != nil {
			t.Errorf("请求%d失败: %v", i, err)
		}
	}

	if cb.State() != StateClosed {
		t.Errorf("期望状态为CLOSED，实际%s", cb.State())
	}
	if counts := cb.Counts(); counts.TotalSuccesses != 5 {
		t.Errorf("期望成功5次，实际%d", counts.TotalSuccesses)
	}
}

// TestCircuitBreaker_OpenState 连续失败后打开并快速失败
func TestCircuitBreaker_OpenState(t *testing.T) {
	cb := NewCircuitBreaker("test", Config{
		Timeout:     time.Minute,
		ReadyToTrip: tripAfter(3),
	})

	for i := 0; i < 3; i++ {
		_ = cb.Execute(func() error { return errStorage })
	}

	if cb.State() != StateOpen {
		t.Fatalf("期望状态为OPEN，实际%s", cb.State())
	}

	called := false
	err := cb.Execute(func() error {
		called = true
		return nil
	})
	if !errors.Is(err, ErrOpenState) {
		t.Errorf("期望ErrOpenState，实际%v", err)
	}
	if called {
		t.Error("熔断器打开时不应调用请求函数")
	}
}

// TestCircuitBreaker_HalfOpenRecovery 超时后探测成功恢复为CLOSED
func TestCircuitBreaker_HalfOpenRecovery(t *testing.T) {
	cb := NewCircuitBreaker("test", Config{
		MaxRequests: 1,
		Timeout:     50 * time.Millisecond,
		ReadyToTrip: tripAfter(2),
	})

	for i := 0; i < 2; i++ {
		_ = cb.Execute(func() error { return errStorage })
	}
	time.Sleep(80 * time.Millisecond)

	if cb.State() != StateHalfOpen {
		t.Fatalf("期望状态为HALF_OPEN，实际%s", cb.State())
	}

	if err := cb.Execute(func() error { return nil }); err != nil {
		t.Fatalf("探测请求失败: %v", err)
	}
	if cb.State() != StateClosed {
		t.Errorf("期望状态转为CLOSED，实际%s", cb.State())
	}
}

// TestCircuitBreaker_HalfOpenToOpen 探测失败转回OPEN
func TestCircuitBreaker_HalfOpenToOpen(t *testing.T) {
	cb := NewCircuitBreaker("test", Config{
		Timeout:     50 * time.Millisecond,
		ReadyToTrip: tripAfter(1),
	})

	_ = cb.Execute(func() error { return errStorage })
	time.Sleep(80 * time.Millisecond)
	_ = cb.Execute(func() error { return errStorage })

	if cb.State() != StateOpen {
		t.Errorf("期望状态转回OPEN，实际%s", cb.State())
	}
}

// TestCircuitBreaker_IsSuccessful 调用方取消不计为失败
func TestCircuitBreaker_IsSuccessful(t *testing.T) {
	cb := NewCircuitBreaker("test", Config{
		Timeout:     time.Minute,
		ReadyToTrip: tripAfter(1),
		IsSuccessful: func(err error) bool {
			return err == nil || errors.Is(err, context.Canceled)
		},
	})

	err := cb.Execute(func() error { return context.Canceled })
	if !errors.Is(err, context.Canceled) {
		t.Errorf("应原样返回请求错误，实际%v", err)
	}
	if cb.State() != StateClosed {
		t.Errorf("取消不应触发熔断，实际%s", cb.State())
	}
}

// TestCircuitBreaker_StateChangeCallback 状态变化回调与指标
func TestCircuitBreaker_StateChangeCallback(t *testing.T) {
	metrics.InitMetrics()

	var transitions []string
	cb := NewCircuitBreaker("cover-storage-test", Config{
		Timeout:     50 * time.Millisecond,
		ReadyToTrip: tripAfter(1),
	})
	cb.SetStateChangeCallback(func(name string, from State, to State) {
		transitions = append(transitions, from.String()+"->"+to.String())
	})

	_ = cb.Execute(func() error { return errStorage })
	time.Sleep(80 * time.Millisecond)
	_ = cb.Execute(func() error { return nil })

	expected := []string{"CLOSED->OPEN", "OPEN->HALF_OPEN", "HALF_OPEN->CLOSED"}
	if len(transitions) != len(expected) {
		t.Fatalf("期望%d次状态变化，实际%v", len(expected), transitions)
	}
	for i := range expected {
		if transitions[i] != expected[i] {
			t.Errorf("第%d次状态变化期望%s，实际%s", i, expected[i], transitions[i])
		}
	}
}

// BenchmarkCircuitBreaker_Execute 性能基准测试
func BenchmarkCircuitBreaker_Execute(b *testing.B) {
	cb := NewCircuitBreaker("bench", Config{Timeout: time.Second})

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = cb.Execute(func() error { return nil })
	}
}
