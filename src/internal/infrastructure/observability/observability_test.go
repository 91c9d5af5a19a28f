package observability

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/jackyeh168/workspace_hub/src/internal/domain/shared"
	log "github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

// ===== 測試輔助 =====

func setupMetricsTest(t *testing.T) (MetricsRecorder, *sdkmetric.ManualReader) {
	reader := sdkmetric.NewManualReader()
	provider := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	t.Cleanup(func() {
		_ = provider.Shutdown(context.Background())
	})

	recorder, err := NewMetricsRecorder(provider)
	require.NoError(t, err)
	return recorder, reader
}

func collectMetrics(t *testing.T, reader *sdkmetric.ManualReader) *metricdata.ResourceMetrics {
	var rm metricdata.ResourceMetrics
	require.NoError(t, reader.Collect(context.Background(), &rm))
	return &rm
}

func findMetric(rm *metricdata.ResourceMetrics, name string) *metricdata.Metrics {
	for _, sm := range rm.ScopeMetrics {
		for i := range sm.Metrics {
			if sm.Metrics[i].Name == name {
				return &sm.Metrics[i]
			}
		}
	}
	return nil
}

func sumInt64(t *testing.T, m *metricdata.Metrics) int64 {
	require.NotNil(t, m)
	sum, ok := m.Data.(metricdata.Sum[int64])
	require.True(t, ok, "expected Sum[int64], got %T", m.Data)

	var total int64
	for _, dp := range sum.DataPoints {
		total += dp.Value
	}
	return total
}

func sampleEvent() shared.DomainEvent {
	return shared.NewEvent("TaskCreated", "task-1", "ws-1", struct{}{})
}

// ===== Logger 測試 =====

// Test 1: JSON 格式輸出結構化欄位
func TestNewLogger_JSONFormat(t *testing.T) {
	var buf bytes.Buffer

	logger, err := NewLogger("debug", FormatJSON, &buf)
	require.NoError(t, err)

	logger.WithFields(EventFields(sampleEvent())).Info("published")

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "published", entry["msg"])
	assert.Equal(t, "TaskCreated", entry["event_type"])
	assert.Equal(t, "ws-1", entry["workspace_id"])
	assert.Equal(t, log.DebugLevel, logger.GetLevel())
}

// Test 2: 無效等級與格式返回錯誤
func TestNewLogger_InvalidInput(t *testing.T) {
	_, err := NewLogger("loud", FormatText, nil)
	assert.Error(t, err)

	_, err = NewLogger("info", "xml", nil)
	assert.Error(t, err)
}

// Test 3: OrDefault
func TestOrDefault(t *testing.T) {
	assert.Equal(t, log.StandardLogger(), OrDefault(nil))

	custom := log.New()
	assert.Equal(t, custom, OrDefault(custom))
}

// ===== Metrics 測試 =====

// Test 4: Publish 相關計數
func TestMetrics_RecordPublish(t *testing.T) {
	recorder, reader := setupMetricsTest(t)
	ctx := context.Background()

	recorder.RecordPublish(ctx, "TaskCreated", 3, 0, 2*time.Millisecond)
	recorder.RecordPublish(ctx, "TaskCreated", 2, 1, time.Millisecond)

	rm := collectMetrics(t, reader)
	assert.Equal(t, int64(2), sumInt64(t, findMetric(rm, "eventbus.publishes")))
	assert.Equal(t, int64(5), sumInt64(t, findMetric(rm, "eventbus.deliveries")))

	latency := findMetric(rm, "eventbus.publish.latency_ms")
	require.NotNil(t, latency)
	hist, ok := latency.Data.(metricdata.Histogram[float64])
	require.True(t, ok)

	var count uint64
	for _, dp := range hist.DataPoints {
		count += dp.Count
	}
	assert.Equal(t, uint64(2), count)
}

// Test 5: 處理器失敗依 panicked 屬性區分
func TestMetrics_RecordHandlerFailure(t *testing.T) {
	recorder, reader := setupMetricsTest(t)
	ctx := context.Background()

	recorder.RecordHandlerFailure(ctx, "QCFailed", false)
	recorder.RecordHandlerFailure(ctx, "QCFailed", true)

	rm := collectMetrics(t, reader)
	m := findMetric(rm, "eventbus.handler.failures")
	assert.Equal(t, int64(2), sumInt64(t, m))

	sum := m.Data.(metricdata.Sum[int64])
	var panicked int64
	for _, dp := range sum.DataPoints {
		if v, ok := dp.Attributes.Value(attribute.Key("panicked")); ok && v.AsBool() {
			panicked += dp.Value
		}
	}
	assert.Equal(t, int64(1), panicked)
}

// Test 6: Append / Runtime / UseCase 計數
func TestMetrics_StoreRuntimeAndUseCase(t *testing.T) {
	recorder, reader := setupMetricsTest(t)
	ctx := context.Background()

	recorder.RecordAppend(ctx, "TaskCreated")
	recorder.RecordAppend(ctx, "QCFailed")
	recorder.RecordRuntimeDelta(ctx, 1)
	recorder.RecordRuntimeDelta(ctx, 1)
	recorder.RecordRuntimeDelta(ctx, -1)
	recorder.RecordUseCase(ctx, "CreateTask", true)

	rm := collectMetrics(t, reader)
	assert.Equal(t, int64(2), sumInt64(t, findMetric(rm, "eventstore.appends")))
	assert.Equal(t, int64(1), sumInt64(t, findMetric(rm, "workspace.runtimes.active")))
	assert.Equal(t, int64(1), sumInt64(t, findMetric(rm, "usecase.executions")))
}

// ===== Tracing 測試 =====

// Test 7: Publish span 名稱、屬性與狀態
func TestSpanManager_PublishSpan(t *testing.T) {
	exporter := tracetest.NewInMemoryExporter()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSyncer(exporter))
	t.Cleanup(func() { _ = tp.Shutdown(context.Background()) })

	spans := NewSpanManager(tp)
	event := sampleEvent()

	_, ok := spans.StartPublishSpan(context.Background(), event)
	spans.EndPublishSpan(ok, 2, 0)
	_, failed := spans.StartPublishSpan(context.Background(), event)
	spans.EndPublishSpan(failed, 2, 1)

	recorded := exporter.GetSpans()
	require.Len(t, recorded, 2)

	assert.Equal(t, "eventbus.publish", recorded[0].Name)
	assert.Equal(t, codes.Ok, recorded[0].Status.Code)
	assert.Equal(t, codes.Error, recorded[1].Status.Code)

	attrs := make(map[attribute.Key]attribute.Value)
	for _, kv := range recorded[0].Attributes {
		attrs[kv.Key] = kv.Value
	}
	assert.Equal(t, event.EventID(), attrs["event.id"].AsString())
	assert.Equal(t, "TaskCreated", attrs["event.type"].AsString())
	assert.Equal(t, int64(2), attrs["eventbus.handlers"].AsInt64())
}

// Test 8: Noop 實作不影響 context
func TestNoopSpanManager(t *testing.T) {
	ctx := context.Background()

	got, span := NoopSpanManager{}.StartPublishSpan(ctx, sampleEvent())
	NoopSpanManager{}.EndPublishSpan(span, 1, 1)

	assert.Equal(t, ctx, got)
	assert.False(t, span.IsRecording())
}
