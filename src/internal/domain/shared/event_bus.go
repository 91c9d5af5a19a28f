package shared

import "context"

// ===========================
// 事件處理器
// ===========================

// EventHandler 事件處理器介面
//
// Handle 返回後即視為該處理器已完成（同步或等待自身非同步工作皆可）。
// 返回的錯誤由匯流排記錄，不影響其他處理器。
type EventHandler interface {
	Handle(ctx context.Context, event DomainEvent) error
}

// HandlerFunc 將函式轉為 EventHandler
//
// 注意：函式值不可比較，以 HandlerFunc 訂閱時只能透過 Subscription 取消。
type HandlerFunc func(ctx context.Context, event DomainEvent) error

// Handle 實現 EventHandler 介面
func (f HandlerFunc) Handle(ctx context.Context, event DomainEvent) error {
	return f(ctx, event)
}

// Subscription 訂閱句柄
type Subscription interface {
	// Unsubscribe 取消訂閱；重複呼叫為 no-op
	Unsubscribe()
}

// ===========================
// 發布 / 訂閱介面
// ===========================

// EventPublisher 事件發布器介面
type EventPublisher interface {
	Publish(ctx context.Context, event DomainEvent) error
	PublishBatch(ctx context.Context, events []DomainEvent) error
}

// EventSubscriber 事件訂閱器介面
type EventSubscriber interface {
	Subscribe(eventType string, handler EventHandler) Subscription
	SubscribeAll(handler EventHandler) Subscription
	Unsubscribe(eventType string, handler EventHandler)
}

// EventBus 工作區範圍的記憶體內事件匯流排
//
// 投遞順序：先依訂閱順序通知該類型的處理器，再依訂閱順序通知全域處理器。
// Clear 後匯流排仍可重新訂閱，沒有終止狀態。
type EventBus interface {
	EventPublisher
	EventSubscriber

	// Clear 移除所有類型訂閱與全域訂閱
	Clear()
}
