package book

import (
	"context"

	"github.com/rs/zerolog/log"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/xiebiao/bookmarket/internal/domain/book"
	apperrors "github.com/xiebiao/bookmarket/pkg/errors"
	"github.com/xiebiao/bookmarket/pkg/metrics"
	"github.com/xiebiao/bookmarket/pkg/tracing"
)

const tracerName = "bookmarket/application/book"

// startOperation 开始一次图书操作的Span，返回的finish记录指标并结束Span
//
//	ctx, finish := startOperation(ctx, "create")
//	defer func() { finish(err) }()
func startOperation(ctx context.Context, operation string) (context.Context, func(error)) {
	ctx, span := tracing.StartSpan(ctx, tracerName, "book."+operation)
	return ctx, func(err error) {
		metrics.RecordBookOperation(operation, resultOf(err))
		endSpan(span, err)
	}
}

func endSpan(span trace.Span, err error) {
	if err != nil && apperrors.HTTPStatus(apperrors.GetAppError(err).Code) >= 500 {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	span.End()
}

// resultOf 指标标签：success/not_found/invalid/error
func resultOf(err error) string {
	switch {
	case err == nil:
		return "success"
	case apperrors.HasCode(err, apperrors.ErrCodeBookNotFound):
		return "not_found"
	case apperrors.HTTPStatus(apperrors.GetAppError(err).Code) < 500:
		return "invalid"
	default:
		return "error"
	}
}

// publishEvent 事务提交后发布事件，失败只记录日志
func publishEvent(ctx context.Context, events book.EventPublisher, event book.Event) {
	if err := events.Publish(ctx, event); err != nil {
		log.Ctx(ctx).Warn().Err(err).
			Str("event", event.Type).
			Uint("book_id", event.BookID).
			Msg("发布图书事件失败")
	}
}
