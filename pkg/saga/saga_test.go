package saga

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/xiebiao/bookmarket/pkg/metrics"
)

// TestSaga_Execute_Success 测试所有步骤成功的场景
func TestSaga_Execute_Success(t *testing.T) {
	executed := make([]string, 0)

	s := NewSaga("create-book", 5*time.Second)

	s.AddStep("上传封面",
		func(ctx context.Context) error {
			executed = append(executed, "上传封面")
			return nil
		},
		func(ctx context.Context) error {
			executed = append(executed, "删除封面")
			return nil
		},
	)

	s.AddStep("写入图书",
		func(ctx context.Context) error {
			executed = append(executed, "写入图书")
			return nil
		},
		nil,
	)

	if err := s.Execute(context.Background()); err != nil {
		t.Fatalf("Saga执行失败: %v", err)
	}

	if len(executed) != 2 {
		t.Errorf("期望执行2个步骤，实际执行%d个", len(executed))
	}
	if executed[0] != "上传封面" || executed[1] != "写入图书" {
		t.Errorf("执行顺序错误: %v", executed)
	}
}

// TestSaga_Execute_FailureAndCompensate 测试步骤失败触发补偿
func TestSaga_Execute_FailureAndCompensate(t *testing.T) {
	metrics.InitMetrics()
	executed := make([]string, 0)
	stepErr := errors.New("外键约束失败")

	s := NewSaga("create-book", 5*time.Second)

	s.AddStep("上传封面",
		func(ctx context.Context) error {
			executed = append(executed, "上传封面")
			return nil
		},
		func(ctx context.Context) error {
			executed = append(executed, "删除封面")
			return nil
		},
	)

	s.AddStep("生成缩略图",
		func(ctx context.Context) error {
			executed = append(executed, "生成缩略图")
			return nil
		},
		func(ctx context.Context) error {
			executed = append(executed, "删除缩略图")
			return nil
		},
	)

	s.AddStep("写入图书",
		func(ctx context.Context) error {
			executed = append(executed, "写入图书")
			return stepErr
		},
		func(ctx context.Context) error {
			executed = append(executed, "不应执行")
			return nil
		},
	)

	err := s.Execute(context.Background())
	if err == nil {
		t.Fatal("Saga应该失败但返回成功")
	}
	if !errors.Is(err, stepErr) {
		t.Errorf("返回的错误应包装原始步骤错误: %v", err)
	}

	// 失败步骤本身不补偿，已完成步骤逆序补偿
	expected := []string{"上传封面", "生成缩略图", "写入图书", "删除缩略图", "删除封面"}
	if len(executed) != len(expected) {
		t.Fatalf("期望执行%d个步骤，实际执行%d个: %v", len(expected), len(executed), executed)
	}
	for i, step := range expected {
		if executed[i] != step {
			t.Errorf("步骤%d期望'%s'，实际'%s'", i, step, executed[i])
		}
	}
}

// TestSaga_Execute_Timeout 测试超时触发补偿
func TestSaga_Execute_Timeout(t *testing.T) {
	executed := make([]string, 0)

	s := NewSaga("slow", 100*time.Millisecond)

	s.AddStep("快速步骤",
		func(ctx context.Context) error {
			executed = append(executed, "快速步骤")
			return nil
		},
		func(ctx context.Context) error {
			// 补偿使用的Context不应已取消
			if ctx.Err() != nil {
				t.Errorf("补偿Context已取消: %v", ctx.Err())
			}
			executed = append(executed, "快速步骤补偿")
			return nil
		},
	)

	s.AddStep("慢速步骤",
		func(ctx context.Context) error {
			select {
			case <-time.After(200 * time.Millisecond):
				executed = append(executed, "慢速步骤")
				return nil
			case <-ctx.Done():
				return ctx.Err()
			}
		},
		nil,
	)

	err := s.Execute(context.Background())
	if err == nil {
		t.Fatal("Saga应该超时但返回成功")
	}
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("期望DeadlineExceeded，实际: %v", err)
	}

	if executed[len(executed)-1] != "快速步骤补偿" {
		t.Errorf("期望最后一步是补偿，实际: %v", executed)
	}
}

// TestSaga_CompensateFailureContinues 补偿失败时继续执行后续补偿
func TestSaga_CompensateFailureContinues(t *testing.T) {
	compensated := make([]string, 0)

	s := NewSaga("compensate", time.Second)
	s.AddStep("A", func(ctx context.Context) error { return nil }, func(ctx context.Context) error {
		compensated = append(compensated, "A")
		return nil
	})
	s.AddStep("B", func(ctx context.Context) error { return nil }, func(ctx context.Context) error {
		compensated = append(compensated, "B")
		return errors.New("存储不可用")
	})
	s.AddStep("C", func(ctx context.Context) error { return errors.New("失败") }, nil)

	if err := s.Execute(context.Background()); err == nil {
		t.Fatal("Saga应该失败")
	}

	if len(compensated) != 2 || compensated[0] != "B" || compensated[1] != "A" {
		t.Errorf("补偿顺序错误: %v", compensated)
	}
}

// BenchmarkSaga_Execute 性能基准测试
func BenchmarkSaga_Execute(b *testing.B) {
	s := NewSaga("bench", 5*time.Second)

	s.AddStep("步骤1", func(ctx context.Context) error { return nil }, nil)
	s.AddStep("步骤2", func(ctx context.Context) error { return nil }, nil)
	s.AddStep("步骤3", func(ctx context.Context) error { return nil }, nil)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = s.Execute(context.Background())
		s.executed = nil
	}
}
