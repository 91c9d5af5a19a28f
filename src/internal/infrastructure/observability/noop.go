package observability

import (
	"context"
	"time"

	"github.com/jackyeh168/workspace_hub/src/internal/domain/shared"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
)

// NoopMetrics 不記錄任何指標
type NoopMetrics struct{}

var _ MetricsRecorder = NoopMetrics{}

func (NoopMetrics) RecordPublish(_ context.Context, _ string, _, _ int, _ time.Duration) {}

func (NoopMetrics) RecordHandlerFailure(_ context.Context, _ string, _ bool) {}

func (NoopMetrics) RecordAppend(_ context.Context, _ string) {}

func (NoopMetrics) RecordRuntimeDelta(_ context.Context, _ int64) {}

func (NoopMetrics) RecordUseCase(_ context.Context, _ string, _ bool) {}

// NoopSpanManager 不產生 span
type NoopSpanManager struct{}

var _ SpanManager = NoopSpanManager{}

var noopSpan = noop.Span{}

func (NoopSpanManager) StartPublishSpan(ctx context.Context, _ shared.DomainEvent) (context.Context, trace.Span) {
	return ctx, noopSpan
}

func (NoopSpanManager) EndPublishSpan(_ trace.Span, _, _ int) {}
