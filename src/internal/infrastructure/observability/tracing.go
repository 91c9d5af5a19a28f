package observability

import (
	"context"

	"github.com/jackyeh168/workspace_hub/src/internal/domain/shared"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// SpanManager 管理事件發布的追蹤 span
type SpanManager interface {
	// StartPublishSpan 為一次 Publish 開啟 span
	StartPublishSpan(ctx context.Context, event shared.DomainEvent) (context.Context, trace.Span)

	// EndPublishSpan 結束 span；failures > 0 時標記為錯誤
	EndPublishSpan(span trace.Span, handlers, failures int)
}

type otelSpanManager struct {
	tracer trace.Tracer
}

// NewSpanManager 以指定 TracerProvider 建立 SpanManager
func NewSpanManager(provider trace.TracerProvider) SpanManager {
	return &otelSpanManager{tracer: provider.Tracer(instrumentationName)}
}

func (m *otelSpanManager) StartPublishSpan(ctx context.Context, event shared.DomainEvent) (context.Context, trace.Span) {
	return m.tracer.Start(ctx, "eventbus.publish",
		trace.WithAttributes(
			attribute.String("event.id", event.EventID()),
			attribute.String("event.type", event.EventType()),
			attribute.String("event.correlation_id", event.CorrelationID()),
			attribute.String("workspace.id", event.WorkspaceID()),
		),
		trace.WithSpanKind(trace.SpanKindInternal),
	)
}

func (m *otelSpanManager) EndPublishSpan(span trace.Span, handlers, failures int) {
	if span == nil {
		return
	}
	span.SetAttributes(
		attribute.Int("eventbus.handlers", handlers),
		attribute.Int("eventbus.failures", failures),
	)
	if failures > 0 {
		span.SetStatus(codes.Error, "handler failures")
	} else {
		span.SetStatus(codes.Ok, "")
	}
	span.End()
}
