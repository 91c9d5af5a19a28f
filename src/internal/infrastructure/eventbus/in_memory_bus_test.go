package eventbus

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/jackyeh168/workspace_hub/src/internal/domain/shared"
	log "github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ===== 測試輔助 =====

// recordingHandler 可比較的處理器（指標），記錄收到的事件
type recordingHandler struct {
	name  string
	trace *[]string
	err   error
}

func (h *recordingHandler) Handle(_ context.Context, event shared.DomainEvent) error {
	*h.trace = append(*h.trace, h.name+":"+event.EventType())
	return h.err
}

func newTestBus(t *testing.T) (*InMemoryEventBus, *test.Hook) {
	t.Helper()
	logger, hook := test.NewNullLogger()
	return NewInMemoryEventBus(WithLogger(logger)), hook
}

func event(eventType string) shared.DomainEvent {
	return shared.NewEvent(eventType, "agg-1", "ws-1", struct{}{})
}

// ===== 投遞順序 =====

// Test 1: 類型處理器先於全域處理器，各自依訂閱順序
func TestPublish_TypeHandlersThenGlobalInSubscriptionOrder(t *testing.T) {
	// Arrange
	bus, _ := newTestBus(t)
	var trace []string
	bus.SubscribeAll(&recordingHandler{name: "g1", trace: &trace})
	bus.Subscribe("TaskCreated", &recordingHandler{name: "t1", trace: &trace})
	bus.SubscribeAll(&recordingHandler{name: "g2", trace: &trace})
	bus.Subscribe("TaskCreated", &recordingHandler{name: "t2", trace: &trace})

	// Act
	err := bus.Publish(context.Background(), event("TaskCreated"))

	// Assert
	require.NoError(t, err)
	assert.Equal(t, []string{
		"t1:TaskCreated", "t2:TaskCreated", "g1:TaskCreated", "g2:TaskCreated",
	}, trace)
}

// Test 2: 類型隔離，其他類型的處理器不被呼叫
func TestPublish_TypeIsolation(t *testing.T) {
	bus, _ := newTestBus(t)
	var trace []string
	bus.Subscribe("IssueCreated", &recordingHandler{name: "issue", trace: &trace})

	require.NoError(t, bus.Publish(context.Background(), event("TaskCreated")))

	assert.Empty(t, trace)
}

// Test 3: 全域處理器收到每種事件
func TestPublish_GlobalFanOut(t *testing.T) {
	bus, _ := newTestBus(t)
	var trace []string
	bus.SubscribeAll(&recordingHandler{name: "all", trace: &trace})

	ctx := context.Background()
	require.NoError(t, bus.Publish(ctx, event("TaskCreated")))
	require.NoError(t, bus.Publish(ctx, event("QCFailed")))
	require.NoError(t, bus.Publish(ctx, event("IssueCreated")))

	assert.Equal(t, []string{"all:TaskCreated", "all:QCFailed", "all:IssueCreated"}, trace)
}

// Test 4: 沒有訂閱者時發布成功
func TestPublish_NoSubscribers(t *testing.T) {
	bus, _ := newTestBus(t)

	assert.NoError(t, bus.Publish(context.Background(), event("TaskCreated")))
}

// Test 5: nil 事件返回錯誤
func TestPublish_NilEvent(t *testing.T) {
	bus, _ := newTestBus(t)

	err := bus.Publish(context.Background(), nil)

	assert.ErrorIs(t, err, shared.ErrNilEvent)
}

// Test 6: 同一處理器重複訂閱被呼叫兩次
func TestSubscribe_DuplicateRegistrationsAreIndependent(t *testing.T) {
	bus, _ := newTestBus(t)
	var trace []string
	h := &recordingHandler{name: "h", trace: &trace}
	first := bus.Subscribe("TaskCreated", h)
	bus.Subscribe("TaskCreated", h)

	require.NoError(t, bus.Publish(context.Background(), event("TaskCreated")))
	assert.Len(t, trace, 2)

	first.Unsubscribe()
	trace = trace[:0]
	require.NoError(t, bus.Publish(context.Background(), event("TaskCreated")))
	assert.Len(t, trace, 1)
}

// ===== 錯誤隔離 =====

// Test 7: 處理器返回錯誤不影響後續處理器，也不回傳給發布者
func TestPublish_HandlerErrorIsIsolatedAndLogged(t *testing.T) {
	// Arrange
	bus, hook := newTestBus(t)
	var trace []string
	bus.Subscribe("QCFailed", &recordingHandler{name: "bad", trace: &trace, err: errors.New("boom")})
	bus.Subscribe("QCFailed", &recordingHandler{name: "good", trace: &trace})
	bus.SubscribeAll(&recordingHandler{name: "global", trace: &trace})

	// Act
	err := bus.Publish(context.Background(), event("QCFailed"))

	// Assert
	require.NoError(t, err)
	assert.Equal(t, []string{"bad:QCFailed", "good:QCFailed", "global:QCFailed"}, trace)

	require.Len(t, hook.AllEntries(), 1)
	entry := hook.LastEntry()
	assert.Equal(t, log.ErrorLevel, entry.Level)
	assert.Equal(t, "QCFailed", entry.Data["event_type"])
	assert.Equal(t, "type", entry.Data["scope"])
	assert.ErrorIs(t, entry.Data[log.ErrorKey].(error), shared.ErrHandlerFailed)
}

// Test 8: 處理器 panic 被攔截
func TestPublish_HandlerPanicIsRecovered(t *testing.T) {
	bus, hook := newTestBus(t)
	var trace []string
	bus.SubscribeAll(shared.HandlerFunc(func(context.Context, shared.DomainEvent) error {
		panic("handler exploded")
	}))
	bus.SubscribeAll(&recordingHandler{name: "after", trace: &trace})

	assert.NotPanics(t, func() {
		require.NoError(t, bus.Publish(context.Background(), event("TaskCreated")))
	})

	assert.Equal(t, []string{"after:TaskCreated"}, trace)
	require.NotNil(t, hook.LastEntry())
	assert.Equal(t, "global", hook.LastEntry().Data["scope"])
	assert.ErrorIs(t, hook.LastEntry().Data[log.ErrorKey].(error), shared.ErrHandlerPanicked)
}

// ===== 取消訂閱 =====

// Test 9: Subscription.Unsubscribe 冪等
func TestSubscription_UnsubscribeIsIdempotent(t *testing.T) {
	bus, _ := newTestBus(t)
	var trace []string
	sub := bus.Subscribe("TaskCreated", &recordingHandler{name: "h", trace: &trace})
	bus.Subscribe("TaskCreated", &recordingHandler{name: "other", trace: &trace})

	sub.Unsubscribe()
	sub.Unsubscribe()

	require.NoError(t, bus.Publish(context.Background(), event("TaskCreated")))
	assert.Equal(t, []string{"other:TaskCreated"}, trace)
	assert.Equal(t, 1, bus.SubscriberCount("TaskCreated"))
}

// Test 10: 全域訂閱的 Subscription
func TestSubscription_UnsubscribeGlobal(t *testing.T) {
	bus, _ := newTestBus(t)
	var trace []string
	sub := bus.SubscribeAll(&recordingHandler{name: "g", trace: &trace})

	sub.Unsubscribe()

	require.NoError(t, bus.Publish(context.Background(), event("TaskCreated")))
	assert.Empty(t, trace)
	assert.Equal(t, 0, bus.GlobalSubscriberCount())
}

// Test 11: Unsubscribe(type, handler) 移除該類型下所有相同處理器
func TestUnsubscribe_ByHandler(t *testing.T) {
	bus, _ := newTestBus(t)
	var trace []string
	h := &recordingHandler{name: "h", trace: &trace}
	keep := &recordingHandler{name: "keep", trace: &trace}
	bus.Subscribe("TaskCreated", h)
	bus.Subscribe("TaskCreated", keep)
	bus.Subscribe("TaskCreated", h)
	bus.Subscribe("IssueCreated", h)

	bus.Unsubscribe("TaskCreated", h)
	bus.Unsubscribe("TaskCreated", h)
	bus.Unsubscribe("Unknown", h)

	ctx := context.Background()
	require.NoError(t, bus.Publish(ctx, event("TaskCreated")))
	require.NoError(t, bus.Publish(ctx, event("IssueCreated")))
	assert.Equal(t, []string{"keep:TaskCreated", "h:IssueCreated"}, trace)
}

// Test 12: 不可比較的 HandlerFunc 以 Unsubscribe(type, handler) 為 no-op
func TestUnsubscribe_FuncHandlerIsNoop(t *testing.T) {
	bus, _ := newTestBus(t)
	calls := 0
	fn := shared.HandlerFunc(func(context.Context, shared.DomainEvent) error {
		calls++
		return nil
	})
	sub := bus.Subscribe("TaskCreated", fn)

	assert.NotPanics(t, func() { bus.Unsubscribe("TaskCreated", fn) })
	require.NoError(t, bus.Publish(context.Background(), event("TaskCreated")))
	assert.Equal(t, 1, calls)

	sub.Unsubscribe()
	require.NoError(t, bus.Publish(context.Background(), event("TaskCreated")))
	assert.Equal(t, 1, calls)
}

// ===== Clear =====

// Test 13: Clear 移除所有訂閱，之後仍可重新訂閱
func TestClear_RemovesEverythingAndBusStaysUsable(t *testing.T) {
	// Arrange
	bus, _ := newTestBus(t)
	var trace []string
	oldSub := bus.Subscribe("TaskCreated", &recordingHandler{name: "old", trace: &trace})
	bus.SubscribeAll(&recordingHandler{name: "oldGlobal", trace: &trace})

	// Act
	bus.Clear()
	require.NoError(t, bus.Publish(context.Background(), event("TaskCreated")))

	// Assert
	assert.Empty(t, trace)
	assert.Equal(t, 0, bus.SubscriberCount("TaskCreated"))
	assert.Equal(t, 0, bus.GlobalSubscriberCount())

	bus.Subscribe("TaskCreated", &recordingHandler{name: "new", trace: &trace})
	oldSub.Unsubscribe()
	require.NoError(t, bus.Publish(context.Background(), event("TaskCreated")))
	assert.Equal(t, []string{"new:TaskCreated"}, trace)
}

// ===== 重入與批次 =====

// Test 14: 處理器內取消自身訂閱與發布後續事件
func TestPublish_ReentrantHandlers(t *testing.T) {
	bus, _ := newTestBus(t)
	var trace []string

	var sub shared.Subscription
	sub = bus.Subscribe("QCFailed", shared.HandlerFunc(func(ctx context.Context, e shared.DomainEvent) error {
		trace = append(trace, "once:"+e.EventType())
		sub.Unsubscribe()
		return bus.Publish(ctx, shared.NewEvent("IssueCreated", "issue-1", "ws-1", struct{}{}, shared.CausedBy(e)))
	}))
	bus.Subscribe("IssueCreated", &recordingHandler{name: "issue", trace: &trace})

	ctx := context.Background()
	require.NoError(t, bus.Publish(ctx, event("QCFailed")))
	require.NoError(t, bus.Publish(ctx, event("QCFailed")))

	assert.Equal(t, []string{"once:QCFailed", "issue:IssueCreated"}, trace)
}

// Test 15: PublishBatch 依序逐筆發布
func TestPublishBatch_InOrder(t *testing.T) {
	bus, _ := newTestBus(t)
	var trace []string
	bus.SubscribeAll(&recordingHandler{name: "all", trace: &trace})

	err := bus.PublishBatch(context.Background(), []shared.DomainEvent{
		event("TaskCreated"), event("TaskSubmittedForQC"), event("QCRequested"),
	})

	require.NoError(t, err)
	assert.Equal(t, []string{"all:TaskCreated", "all:TaskSubmittedForQC", "all:QCRequested"}, trace)
}

// Test 16: PublishBatch 遇到 nil 停止
func TestPublishBatch_NilEventStops(t *testing.T) {
	bus, _ := newTestBus(t)
	var trace []string
	bus.SubscribeAll(&recordingHandler{name: "all", trace: &trace})

	err := bus.PublishBatch(context.Background(), []shared.DomainEvent{event("TaskCreated"), nil, event("QCPassed")})

	assert.ErrorIs(t, err, shared.ErrNilEvent)
	assert.Equal(t, []string{"all:TaskCreated"}, trace)
}

// Test 17: 並發訂閱與發布
func TestConcurrentSubscribeAndPublish(t *testing.T) {
	bus, _ := newTestBus(t)
	var mu sync.Mutex
	count := 0
	handler := shared.HandlerFunc(func(context.Context, shared.DomainEvent) error {
		mu.Lock()
		count++
		mu.Unlock()
		return nil
	})

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			sub := bus.Subscribe("TaskCreated", handler)
			sub.Unsubscribe()
		}()
		go func() {
			defer wg.Done()
			_ = bus.Publish(context.Background(), event("TaskCreated"))
		}()
	}
	wg.Wait()

	assert.Equal(t, 0, bus.SubscriberCount("TaskCreated"))
}
