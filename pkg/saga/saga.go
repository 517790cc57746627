// Package saga 带补偿的多步骤操作
//
// 核心思想：
// 1. 将一个跨资源的操作拆分为多个步骤
// 2. 每个步骤有对应的补偿操作
// 3. 某步失败时，按逆序执行已完成步骤的补偿
//
// 本项目中用于"上传封面 + 写数据库"这类跨越文件存储与数据库的操作：
// 数据库写入失败时删除已上传的文件，避免产生孤儿文件。
package saga

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/xiebiao/bookmarket/pkg/metrics"
)

// Step Saga中的一个步骤
// Action与Compensate都必须幂等（允许重试）
type Step struct {
	Name       string
	Action     func(ctx context.Context) error
	Compensate func(ctx context.Context) error
}

// Saga 一次Saga执行
// 非并发安全，每次业务调用创建新实例
type Saga struct {
	name     string
	steps    []Step
	executed []Step
	timeout  time.Duration
}

// NewSaga 创建Saga
//
// 示例：
//
//	s := saga.NewSaga("create-book", 30*time.Second)
//	s.AddStep("store-cover", storeCover, deleteCover)
//	s.AddStep("insert-book", insertBook, nil)
//	err := s.Execute(ctx)
func NewSaga(name string, timeout time.Duration) *Saga {
	return &Saga{
		name:    name,
		steps:   make([]Step, 0),
		timeout: timeout,
	}
}

// AddStep 添加步骤，按添加顺序执行、逆序补偿
// Action和Compensate都可以为nil（最后一步通常无需补偿）
func (s *Saga) AddStep(name string, action, compensate func(ctx context.Context) error) {
	s.steps = append(s.steps, Step{
		Name:       name,
		Action:     action,
		Compensate: compensate,
	})
}

// Execute 执行Saga
// 返回的错误通过%w保留原始步骤错误，调用方可用errors.As提取
func (s *Saga) Execute(ctx context.Context) (err error) {
	start := time.Now()
	defer func() {
		s.record(err, time.Since(start))
	}()

	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	for i, step := range s.steps {
		select {
		case <-ctx.Done():
			// 补偿使用独立的Context，避免补偿也超时
			s.compensate(context.WithoutCancel(ctx))
			return fmt.Errorf("saga[%s]超时: %w", s.name, ctx.Err())
		default:
		}

		if step.Action != nil {
			if err := step.Action(ctx); err != nil {
				s.compensate(context.WithoutCancel(ctx))
				return fmt.Errorf("saga[%s]步骤[%d:%s]执行失败: %w", s.name, i, step.Name, err)
			}
		}

		s.executed = append(s.executed, step)
	}

	return nil
}

// compensate 逆序执行已完成步骤的补偿
// 某个补偿失败时记录日志并继续执行后续补偿
func (s *Saga) compensate(ctx context.Context) {
	for i := len(s.executed) - 1; i >= 0; i-- {
		step := s.executed[i]
		if step.Compensate == nil {
			continue
		}

		if metrics.SagaCompensationsTotal != nil {
			metrics.SagaCompensationsTotal.Inc()
		}

		if err := step.Compensate(ctx); err != nil {
			log.Error().
				Err(err).
				Str("saga", s.name).
				Str("step", step.Name).
				Msg("saga补偿失败，需人工介入")
		}
	}

	s.executed = nil
}

func (s *Saga) record(err error, elapsed time.Duration) {
	if metrics.SagaExecutionsTotal == nil {
		return
	}
	result := "success"
	if err != nil {
		result = "failure"
	}
	metrics.SagaExecutionsTotal.WithLabelValues(s.name, result).Inc()
	metrics.SagaExecutionDuration.Observe(elapsed.Seconds())
}
