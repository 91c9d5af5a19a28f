package observability

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// instrumentationName OTel meter / tracer 名稱
const instrumentationName = "workspace_hub/eventcore"

// MetricsRecorder 事件核心指標
type MetricsRecorder interface {
	// RecordPublish 記錄一次 Publish：通知的處理器數量與失敗數量
	RecordPublish(ctx context.Context, eventType string, handlers, failures int, duration time.Duration)

	// RecordHandlerFailure 記錄單一處理器失敗（panicked 表示被攔截的 panic）
	RecordHandlerFailure(ctx context.Context, eventType string, panicked bool)

	// RecordAppend 記錄事件寫入 EventStore
	RecordAppend(ctx context.Context, eventType string)

	// RecordRuntimeDelta 活躍工作區 runtime 數量變化（+1 建立 / -1 銷毀）
	RecordRuntimeDelta(ctx context.Context, delta int64)

	// RecordUseCase 記錄 Use Case 執行結果
	RecordUseCase(ctx context.Context, useCase string, success bool)
}

// otelMetrics OpenTelemetry 實作
type otelMetrics struct {
	publishes       metric.Int64Counter
	deliveries      metric.Int64Counter
	publishLatency  metric.Float64Histogram
	handlerFailures metric.Int64Counter
	appends         metric.Int64Counter
	runtimes        metric.Int64UpDownCounter
	useCases        metric.Int64Counter
}

// NewMetricsRecorder 以指定 MeterProvider 建立指標記錄器
func NewMetricsRecorder(provider metric.MeterProvider) (MetricsRecorder, error) {
	meter := provider.Meter(instrumentationName)

	publishes, err := meter.Int64Counter("eventbus.publishes",
		metric.WithDescription("Number of events published"),
	)
	if err != nil {
		return nil, err
	}

	deliveries, err := meter.Int64Counter("eventbus.deliveries",
		metric.WithDescription("Number of handler invocations"),
	)
	if err != nil {
		return nil, err
	}

	publishLatency, err := meter.Float64Histogram("eventbus.publish.latency_ms",
		metric.WithDescription("Time to notify every handler of one event"),
		metric.WithUnit("ms"),
	)
	if err != nil {
		return nil, err
	}

	handlerFailures, err := meter.Int64Counter("eventbus.handler.failures",
		metric.WithDescription("Number of handler errors and recovered panics"),
	)
	if err != nil {
		return nil, err
	}

	appends, err := meter.Int64Counter("eventstore.appends",
		metric.WithDescription("Number of events appended to the store"),
	)
	if err != nil {
		return nil, err
	}

	runtimes, err := meter.Int64UpDownCounter("workspace.runtimes.active",
		metric.WithDescription("Number of live workspace runtimes"),
	)
	if err != nil {
		return nil, err
	}

	useCases, err := meter.Int64Counter("usecase.executions",
		metric.WithDescription("Number of use case executions"),
	)
	if err != nil {
		return nil, err
	}

	return &otelMetrics{
		publishes:       publishes,
		deliveries:      deliveries,
		publishLatency:  publishLatency,
		handlerFailures: handlerFailures,
		appends:         appends,
		runtimes:        runtimes,
		useCases:        useCases,
	}, nil
}

func (m *otelMetrics) RecordPublish(ctx context.Context, eventType string, handlers, failures int, duration time.Duration) {
	attrs := metric.WithAttributes(
		attribute.String("event_type", eventType),
		attribute.Bool("had_failures", failures > 0),
	)
	m.publishes.Add(ctx, 1, attrs)
	m.deliveries.Add(ctx, int64(handlers), attrs)
	m.publishLatency.Record(ctx, float64(duration.Microseconds())/1000.0, attrs)
}

func (m *otelMetrics) RecordHandlerFailure(ctx context.Context, eventType string, panicked bool) {
	m.handlerFailures.Add(ctx, 1, metric.WithAttributes(
		attribute.String("event_type", eventType),
		attribute.Bool("panicked", panicked),
	))
}

func (m *otelMetrics) RecordAppend(ctx context.Context, eventType string) {
	m.appends.Add(ctx, 1, metric.WithAttributes(
		attribute.String("event_type", eventType),
	))
}

func (m *otelMetrics) RecordRuntimeDelta(ctx context.Context, delta int64) {
	m.runtimes.Add(ctx, delta)
}

func (m *otelMetrics) RecordUseCase(ctx context.Context, useCase string, success bool) {
	m.useCases.Add(ctx, 1, metric.WithAttributes(
		attribute.String("use_case", useCase),
		attribute.Bool("success", success),
	))
}
