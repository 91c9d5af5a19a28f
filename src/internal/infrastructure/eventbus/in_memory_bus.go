// Package eventbus 提供工作區範圍的記憶體內事件匯流排
package eventbus

import (
	"context"
	"fmt"
	"reflect"
	"sync"
	"sync/atomic"
	"time"

	"github.com/jackyeh168/workspace_hub/src/internal/domain/shared"
	"github.com/jackyeh168/workspace_hub/src/internal/infrastructure/observability"
	log "github.com/sirupsen/logrus"
)

// InMemoryEventBus 同步、依序投遞的事件匯流排
//
// 每個工作區擁有獨立實例，由 WorkspaceRuntimeFactory 建立。
// 處理器在讀鎖外執行，因此處理器內可重入訂閱、取消訂閱或再次發布。
type InMemoryEventBus struct {
	mu      sync.RWMutex
	byType  map[string][]*registration
	globals []*registration

	nextID atomic.Uint64

	logger  log.FieldLogger
	metrics observability.MetricsRecorder
	spans   observability.SpanManager
}

// registration 單次訂閱
type registration struct {
	id        uint64
	eventType string // 空字串代表全域訂閱
	handler   shared.EventHandler
}

// Option 匯流排建立選項
type Option func(*InMemoryEventBus)

// WithLogger 指定日誌
func WithLogger(logger log.FieldLogger) Option {
	return func(b *InMemoryEventBus) {
		b.logger = observability.OrDefault(logger)
	}
}

// WithMetrics 指定指標記錄器
func WithMetrics(metrics observability.MetricsRecorder) Option {
	return func(b *InMemoryEventBus) {
		if metrics != nil {
			b.metrics = metrics
		}
	}
}

// WithSpanManager 指定追蹤
func WithSpanManager(spans observability.SpanManager) Option {
	return func(b *InMemoryEventBus) {
		if spans != nil {
			b.spans = spans
		}
	}
}

// NewInMemoryEventBus 建立空的事件匯流排
func NewInMemoryEventBus(opts ...Option) *InMemoryEventBus {
	b := &InMemoryEventBus{
		byType:  make(map[string][]*registration),
		logger:  log.StandardLogger(),
		metrics: observability.NoopMetrics{},
		spans:   observability.NoopSpanManager{},
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

var _ shared.EventBus = (*InMemoryEventBus)(nil)

// ===========================
// 發布
// ===========================

// Publish 將事件投遞給所有訂閱者
//
// 先依訂閱順序通知該類型處理器，再依訂閱順序通知全域處理器。
// 單一處理器的錯誤或 panic 只記錄，不影響其他處理器，也不回傳給發布者。
func (b *InMemoryEventBus) Publish(ctx context.Context, event shared.DomainEvent) error {
	if event == nil {
		return shared.ErrNilEvent
	}

	targets := b.snapshot(event.EventType())

	ctx, span := b.spans.StartPublishSpan(ctx, event)
	start := time.Now()

	failures := 0
	for _, reg := range targets {
		if err := b.invoke(ctx, reg, event); err != nil {
			failures++
		}
	}

	b.spans.EndPublishSpan(span, len(targets), failures)
	b.metrics.RecordPublish(ctx, event.EventType(), len(targets), failures, time.Since(start))

	return nil
}

// PublishBatch 依切片順序逐筆發布
//
// 第 i 筆的所有處理器完成後才開始第 i+1 筆。
func (b *InMemoryEventBus) PublishBatch(ctx context.Context, events []shared.DomainEvent) error {
	for i, event := range events {
		if err := b.Publish(ctx, event); err != nil {
			return fmt.Errorf("publish batch item %d: %w", i, err)
		}
	}
	return nil
}

// snapshot 在讀鎖內複製目標處理器列表
func (b *InMemoryEventBus) snapshot(eventType string) []*registration {
	b.mu.RLock()
	defer b.mu.RUnlock()

	typed := b.byType[eventType]
	targets := make([]*registration, 0, len(typed)+len(b.globals))
	targets = append(targets, typed...)
	targets = append(targets, b.globals...)
	return targets
}

// invoke 隔離執行單一處理器
func (b *InMemoryEventBus) invoke(ctx context.Context, reg *registration, event shared.DomainEvent) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = shared.ErrHandlerPanicked.WithContext(
				"event_type", event.EventType(),
				"panic", fmt.Sprint(r),
			)
			b.logFailure(reg, event, err)
			b.metrics.RecordHandlerFailure(ctx, event.EventType(), true)
		}
	}()

	if handlerErr := reg.handler.Handle(ctx, event); handlerErr != nil {
		err = fmt.Errorf("%w: %w", shared.ErrHandlerFailed, handlerErr)
		b.logFailure(reg, event, err)
		b.metrics.RecordHandlerFailure(ctx, event.EventType(), false)
	}
	return err
}

func (b *InMemoryEventBus) logFailure(reg *registration, event shared.DomainEvent, err error) {
	fields := observability.EventFields(event)
	fields["handler"] = fmt.Sprintf("%T", reg.handler)
	fields["subscription_id"] = reg.id
	if reg.eventType == "" {
		fields["scope"] = "global"
	} else {
		fields["scope"] = "type"
	}
	b.logger.WithFields(fields).WithError(err).Error("event handler failed")
}

// ===========================
// 訂閱
// ===========================

// Subscribe 訂閱指定類型事件
//
// 同一處理器重複訂閱會被呼叫多次，每次訂閱各自獨立。
func (b *InMemoryEventBus) Subscribe(eventType string, handler shared.EventHandler) shared.Subscription {
	reg := b.newRegistration(eventType, handler)

	b.mu.Lock()
	b.byType[eventType] = append(b.byType[eventType], reg)
	b.mu.Unlock()

	return &subscription{bus: b, reg: reg}
}

// SubscribeAll 訂閱所有事件
func (b *InMemoryEventBus) SubscribeAll(handler shared.EventHandler) shared.Subscription {
	reg := b.newRegistration("", handler)

	b.mu.Lock()
	b.globals = append(b.globals, reg)
	b.mu.Unlock()

	return &subscription{bus: b, reg: reg}
}

func (b *InMemoryEventBus) newRegistration(eventType string, handler shared.EventHandler) *registration {
	if handler == nil {
		panic("eventbus: handler is required")
	}
	return &registration{
		id:        b.nextID.Add(1),
		eventType: eventType,
		handler:   handler,
	}
}

// Unsubscribe 移除該類型下此處理器的所有訂閱；不存在時為 no-op
//
// 處理器以 == 比對，只適用於可比較的處理器值（如指標）。
// HandlerFunc 等不可比較的處理器請使用 Subscription.Unsubscribe。
func (b *InMemoryEventBus) Unsubscribe(eventType string, handler shared.EventHandler) {
	if handler == nil || !reflect.TypeOf(handler).Comparable() {
		return
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	regs := b.byType[eventType]
	kept := regs[:0:0]
	for _, reg := range regs {
		if sameHandler(reg.handler, handler) {
			continue
		}
		kept = append(kept, reg)
	}
	b.storeType(eventType, kept)
}

func sameHandler(a, b shared.EventHandler) bool {
	if reflect.TypeOf(a) != reflect.TypeOf(b) {
		return false
	}
	return a == b
}

// removeRegistration 依訂閱 ID 移除，供 Subscription 使用
func (b *InMemoryEventBus) removeRegistration(reg *registration) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if reg.eventType == "" {
		b.globals = without(b.globals, reg.id)
		return
	}
	b.storeType(reg.eventType, without(b.byType[reg.eventType], reg.id))
}

// storeType 寫回類型列表；呼叫者須持有寫鎖
func (b *InMemoryEventBus) storeType(eventType string, regs []*registration) {
	if len(regs) == 0 {
		delete(b.byType, eventType)
		return
	}
	b.byType[eventType] = regs
}

// without 返回去除指定 ID 的新切片，不修改原切片（原切片可能仍被快照引用）
func without(regs []*registration, id uint64) []*registration {
	out := make([]*registration, 0, len(regs))
	for _, reg := range regs {
		if reg.id != id {
			out = append(out, reg)
		}
	}
	return out
}

// Clear 移除所有訂閱；之後仍可重新訂閱
func (b *InMemoryEventBus) Clear() {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.byType = make(map[string][]*registration)
	b.globals = nil
}

// ===========================
// 診斷
// ===========================

// SubscriberCount 指定類型的訂閱數量（不含全域）
func (b *InMemoryEventBus) SubscriberCount(eventType string) int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.byType[eventType])
}

// GlobalSubscriberCount 全域訂閱數量
func (b *InMemoryEventBus) GlobalSubscriberCount() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.globals)
}

// ===========================
// Subscription
// ===========================

type subscription struct {
	once sync.Once
	bus  *InMemoryEventBus
	reg  *registration
}

// Unsubscribe 取消此次訂閱；重複呼叫為 no-op
//
// Clear 之後呼叫同樣安全，也不會影響 Clear 後的新訂閱。
func (s *subscription) Unsubscribe() {
	s.once.Do(func() {
		s.bus.removeRegistration(s.reg)
	})
}
