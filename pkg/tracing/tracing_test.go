package tracing

import (
	"context"
	"testing"

	"go.opentelemetry.io/otel"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

func useRecorder(t *testing.T) *tracetest.SpanRecorder {
	t.Helper()

	recorder := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))
	prev := otel.GetTracerProvider()
	otel.SetTracerProvider(tp)
	t.Cleanup(func() {
		_ = tp.Shutdown(context.Background())
		otel.SetTracerProvider(prev)
	})
	return recorder
}

// TestInitTracer exporter为非阻塞连接，无Collector时也能初始化
func TestInitTracer(t *testing.T) {
	shutdown, err := InitTracer(context.Background(), Options{
		ServiceName: "bookmarket-test",
		Endpoint:    "localhost:4317",
		Insecure:    true,
		SampleRatio: 0.5,
	})
	if err != nil {
		t.Fatalf("初始化Tracer失败: %v", err)
	}
	_ = shutdown(context.Background())
}

// TestStartSpan 子Span共享TraceID
func TestStartSpan(t *testing.T) {
	recorder := useRecorder(t)

	ctx, root := StartSpan(context.Background(), "test", "ListCatalog")
	_, child := StartSpan(ctx, "test", "QueryBooks")
	child.End()
	root.End()

	spans := recorder.Ended()
	if len(spans) != 2 {
		t.Fatalf("期望2个Span，实际%d", len(spans))
	}

	if spans[0].SpanContext().TraceID() != spans[1].SpanContext().TraceID() {
		t.Error("子Span应与根Span共享TraceID")
	}
	if spans[0].Parent().SpanID() != root.SpanContext().SpanID() {
		t.Error("子Span的父Span错误")
	}
}

// TestExtractIDs 提取TraceID与SpanID
func TestExtractIDs(t *testing.T) {
	useRecorder(t)

	if ExtractTraceID(context.Background()) != "" {
		t.Error("无Span时TraceID应为空")
	}
	if ExtractSpanID(context.Background()) != "" {
		t.Error("无Span时SpanID应为空")
	}

	ctx, span := StartSpan(context.Background(), "test", "DetailBook")
	defer span.End()

	if got := ExtractTraceID(ctx); len(got) != 32 {
		t.Errorf("TraceID长度应为32，实际%q", got)
	}
	if got := ExtractSpanID(ctx); len(got) != 16 {
		t.Errorf("SpanID长度应为16，实际%q", got)
	}
}

func TestSampler(t *testing.T) {
	if sampler(0).Description() != sdktrace.AlwaysSample().Description() {
		t.Error("采样率0应全部采样")
	}
	if sampler(1).Description() != sdktrace.AlwaysSample().Description() {
		t.Error("采样率1应全部采样")
	}
	if sampler(0.1).Description() == sdktrace.AlwaysSample().Description() {
		t.Error("采样率0.1不应全部采样")
	}
}
