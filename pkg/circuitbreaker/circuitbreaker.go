// Package circuitbreaker 熔断器
//
// 三种状态：
//   - CLOSED：请求正常通过，统计失败次数，达到阈值转为OPEN
//   - OPEN：请求快速失败（ErrOpenState），Timeout后转为HALF_OPEN
//   - HALF_OPEN：放行最多MaxRequests个探测请求，成功转为CLOSED，失败转回OPEN
//
// 本项目用它保护对象存储（S3）调用：存储故障时上传立即失败，不占用请求goroutine等待超时。
package circuitbreaker

import (
	"errors"
	"sync"
	"time"

	"github.com/xiebiao/bookmarket/pkg/metrics"
)

// State 熔断器状态
type State int

const (
	StateClosed State = iota
	StateOpen
	StateHalfOpen
)

// String 状态转字符串（便于日志）
func (s State) String() string {
	switch s {
	case StateClosed:
		return "CLOSED"
	case StateOpen:
		return "OPEN"
	case StateHalfOpen:
		return "HALF_OPEN"
	default:
		return "UNKNOWN"
	}
}

// Config 熔断器配置
type Config struct {
	// MaxRequests 半开状态下允许的最大请求数，0按1处理
	MaxRequests uint32

	// Interval CLOSED状态的统计窗口，过期后重置计数；0表示不重置
	Interval time.Duration

	// Timeout OPEN状态持续时间
	Timeout time.Duration

	// ReadyToTrip 是否应该打开熔断器，nil时使用连续失败5次
	ReadyToTrip func(counts Counts) bool

	// IsSuccessful 判断结果是否计为成功，nil时err==nil为成功
	// 用于排除调用方取消等不代表下游故障的错误
	IsSuccessful func(err error) bool
}

// Counts 统计数据
type Counts struct {
	Requests             uint32
	TotalSuccesses       uint32
	TotalFailures        uint32
	ConsecutiveSuccesses uint32
	ConsecutiveFailures  uint32
}

// FailureRate 失败率
func (c *Counts) FailureRate() float64 {
	if c.Requests == 0 {
		return 0
	}
	return float64(c.TotalFailures) / float64(c.Requests)
}

// Reset 重置统计
func (c *Counts) Reset() {
	*c = Counts{}
}

// Requests已经在beforeRequest中递增
func (c *Counts) onSuccess() {
	c.TotalSuccesses++
	c.ConsecutiveSuccesses++
	c.ConsecutiveFailures = 0
}

func (c *Counts) onFailure() {
	c.TotalFailures++
	c.ConsecutiveFailures++
	c.ConsecutiveSuccesses = 0
}

// CircuitBreaker 熔断器
type CircuitBreaker struct {
	name          string
	maxRequests   uint32
	interval      time.Duration
	timeout       time.Duration
	readyToTrip   func(counts Counts) bool
	isSuccessful  func(err error) bool
	onStateChange func(name string, from State, to State)

	mu         sync.Mutex
	state      State
	generation uint64 // 每次状态切换递增，丢弃旧状态下请求的结果
	counts     Counts
	expiry     time.Time
}

// ErrOpenState 熔断器打开
var ErrOpenState = errors.New("circuit breaker is open")

// NewCircuitBreaker 创建熔断器
//
//	cb := NewCircuitBreaker("cover-storage", Config{
//	    MaxRequests: 1,
//	    Interval:    60 * time.Second,
//	    Timeout:     30 * time.Second,
//	})
func NewCircuitBreaker(name string, config Config) *CircuitBreaker {
	cb := &CircuitBreaker{
		name:          name,
		maxRequests:   config.MaxRequests,
		interval:      config.Interval,
		timeout:       config.Timeout,
		readyToTrip:   config.ReadyToTrip,
		isSuccessful:  config.IsSuccessful,
		onStateChange: func(name string, from State, to State) {},
		state:         StateClosed,
	}

	if cb.maxRequests == 0 {
		cb.maxRequests = 1
	}
	if cb.readyToTrip == nil {
		cb.readyToTrip = func(counts Counts) bool {
			return counts.ConsecutiveFailures >= 5
		}
	}
	if cb.isSuccessful == nil {
		cb.isSuccessful = func(err error) bool { return err == nil }
	}
	if cb.interval > 0 {
		cb.expiry = time.Now().Add(cb.interval)
	}

	if metrics.CircuitBreakerState != nil {
		metrics.CircuitBreakerState.WithLabelValues(name).Set(float64(StateClosed))
	}

	return cb
}

// Name 熔断器名称
func (cb *CircuitBreaker) Name() string {
	return cb.name
}

// SetStateChangeCallback 设置状态变化回调（在持有锁时调用，回调内不要再调用cb的方法）
func (cb *CircuitBreaker) SetStateChangeCallback(fn func(name string, from State, to State)) {
	cb.mu.Lock()
	defer cb.mu.Unlock()
	cb.onStateChange = fn
}

// Execute 通过熔断器执行请求
// 熔断器打开时返回ErrOpenState，不调用req
func (cb *CircuitBreaker) Execute(req func() error) error {
	generation, err := cb.beforeRequest()
	if err != nil {
		cb.recordRequest("rejected")
		return err
	}

	err = req()

	success := cb.isSuccessful(err)
	cb.afterRequest(generation, success)
	if success {
		cb.recordRequest("success")
	} else {
		cb.recordRequest("failure")
	}

	return err
}

func (cb *CircuitBreaker) beforeRequest() (uint64, error) {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	state, generation := cb.currentState(time.Now())

	if state == StateOpen {
		return generation, ErrOpenState
	}
	if state == StateHalfOpen && cb.counts.Requests >= cb.maxRequests {
		return generation, ErrOpenState
	}

	cb.counts.Requests++
	return generation, nil
}

func (cb *CircuitBreaker) afterRequest(before uint64, success bool) {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	now := time.Now()
	state, generation := cb.currentState(now)
	if generation != before {
		return
	}

	if success {
		cb.counts.onSuccess()
		if state == StateHalfOpen {
			cb.setState(StateClosed, now)
		}
		return
	}

	cb.counts.onFailure()
	switch state {
	case StateClosed:
		if cb.readyToTrip(cb.counts) {
			cb.setState(StateOpen, now)
		}
	case StateHalfOpen:
		cb.setState(StateOpen, now)
	}
}

// currentState 处理状态过期：CLOSED窗口过期重置计数，OPEN超时转HALF_OPEN
func (cb *CircuitBreaker) currentState(now time.Time) (State, uint64) {
	switch cb.state {
	case StateClosed:
		if !cb.expiry.IsZero() && cb.expiry.Before(now) {
			cb.counts.Reset()
			cb.expiry = now.Add(cb.interval)
		}
	case StateOpen:
		if cb.expiry.Before(now) {
			cb.setState(StateHalfOpen, now)
		}
	}
	return cb.state, cb.generation
}

func (cb *CircuitBreaker) setState(state State, now time.Time) {
	if cb.state == state {
		return
	}

	prev := cb.state
	cb.state = state
	cb.generation++
	cb.counts.Reset()

	switch state {
	case StateClosed:
		if cb.interval > 0 {
			cb.expiry = now.Add(cb.interval)
		} else {
			cb.expiry = time.Time{}
		}
	case StateOpen:
		cb.expiry = now.Add(cb.timeout)
	case StateHalfOpen:
		cb.expiry = time.Time{}
	}

	if metrics.CircuitBreakerState != nil {
		metrics.CircuitBreakerState.WithLabelValues(cb.name).Set(float64(state))
	}
	if cb.onStateChange != nil {
		cb.onStateChange(cb.name, prev, state)
	}
}

func (cb *CircuitBreaker) recordRequest(result string) {
	if metrics.CircuitBreakerRequests == nil {
		return
	}
	metrics.CircuitBreakerRequests.WithLabelValues(cb.name, result).Inc()
}

// State 当前状态
func (cb *CircuitBreaker) State() State {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	state, _ := cb.currentState(time.Now())
	return state
}

// Counts 当前统计数据
func (cb *CircuitBreaker) Counts() Counts {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	return cb.counts
}
