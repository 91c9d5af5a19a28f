package shared

import "time"

// EventStore 只增不改的事件日誌
//
// 所有查詢依寫入順序返回新的切片，之後的 Append 不會影響已返回的結果。
// 除測試用的 Clear 外，沒有刪除或修改操作。
type EventStore interface {
	// Append 寫入單筆事件
	Append(event DomainEvent) error

	// AppendBatch 依序寫入多筆事件，等同逐筆 Append
	AppendBatch(events []DomainEvent) error

	GetEventsForAggregate(aggregateID string) []DomainEvent
	GetEventsForWorkspace(workspaceID string) []DomainEvent
	GetEventsByType(eventType string) []DomainEvent

	// GetEventsByCausality 返回共享同一 CorrelationID 的整條因果鏈
	GetEventsByCausality(correlationID string) []DomainEvent

	// GetEventsSince 返回 Timestamp >= since 的事件（毫秒比較）
	GetEventsSince(since time.Time) []DomainEvent

	// GetEventsInRange 返回 start <= Timestamp <= end 的事件（毫秒比較）
	GetEventsInRange(start, end time.Time) []DomainEvent

	// Clear 清空日誌（僅測試使用）
	Clear()
}
