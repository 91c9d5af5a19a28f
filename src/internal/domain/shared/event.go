package shared

import (
	"time"

	"github.com/google/uuid"
)

// ===========================
// DomainEvent 領域事件介面
// ===========================

// DomainEvent 領域事件基礎介面
//
// 所有事件建立後不可變。
// CorrelationID 在同一條因果鏈上共享；鏈首事件的 CorrelationID == EventID。
// CausationID 為直接導致本事件的事件 ID，鏈首事件為空字串。
type DomainEvent interface {
	EventID() string       // 事件唯一標識
	EventType() string     // 事件類型（過去式，如 "TaskCreated"）
	AggregateID() string   // 聚合根 ID
	WorkspaceID() string   // 工作區分區鍵（可為空）
	CorrelationID() string // 因果鏈 ID
	CausationID() string   // 直接原因事件 ID
	OccurredAt() time.Time // 發生時間
	Timestamp() int64      // 發生時間（Unix 毫秒）
	Data() any             // 事件負載
}

// ===========================
// Event[P] 泛型事件實作
// ===========================

// Event 泛型領域事件，P 為負載類型
//
// 欄位全部 unexported，只能透過 NewEvent 建立。
// 負載以值保存，呼叫者拿到的是副本；實作 PayloadCloner 的負載另做深拷貝。
type Event[P any] struct {
	eventID       string
	eventType     string
	aggregateID   string
	workspaceID   string
	correlationID string
	causationID   string
	occurredAt    time.Time
	payload       P
}

// PayloadCloner 含切片或 map 的負載實作此介面，事件存取時返回深拷貝
type PayloadCloner[P any] interface {
	ClonePayload() P
}

func clonePayload[P any](payload P) P {
	if c, ok := any(payload).(PayloadCloner[P]); ok {
		return c.ClonePayload()
	}
	return payload
}

// EventOption 事件建立選項
type EventOption func(*eventOptions)

type eventOptions struct {
	correlationID string
	causationID   string
	occurredAt    time.Time
	clock         Clock
}

// WithCorrelationID 指定因果鏈 ID（空字串視為未指定）
func WithCorrelationID(id string) EventOption {
	return func(o *eventOptions) {
		o.correlationID = id
	}
}

// WithCausationID 指定直接原因事件 ID（空字串視為未指定）
func WithCausationID(id string) EventOption {
	return func(o *eventOptions) {
		o.causationID = id
	}
}

// CausedBy 以父事件延續因果鏈：
// 繼承父事件的 CorrelationID，CausationID 指向父事件
func CausedBy(parent DomainEvent) EventOption {
	return func(o *eventOptions) {
		if parent == nil {
			return
		}
		o.correlationID = parent.CorrelationID()
		o.causationID = parent.EventID()
	}
}

// WithOccurredAt 指定發生時間（優先於 Clock）
func WithOccurredAt(t time.Time) EventOption {
	return func(o *eventOptions) {
		o.occurredAt = t
	}
}

// WithEventClock 指定時間來源
func WithEventClock(c Clock) EventOption {
	return func(o *eventOptions) {
		o.clock = c
	}
}

// NewEvent 建立領域事件
//
// 行為約定：
// - EventID 為新生成的 UUID
// - 未指定 CorrelationID 時，CorrelationID = EventID（成為鏈首）
// - 未指定 CausationID 時為空字串
// - OccurredAt 預設取 Clock.Now()
//
// eventType 與 aggregateID 為必填，缺少屬於程式錯誤，直接 panic。
// 負載的業務驗證由聚合根負責，不在此處進行。
func NewEvent[P any](eventType, aggregateID, workspaceID string, payload P, opts ...EventOption) *Event[P] {
	if eventType == "" {
		panic("shared.NewEvent: eventType is required")
	}
	if aggregateID == "" {
		panic("shared.NewEvent: aggregateID is required")
	}

	o := &eventOptions{clock: SystemClock{}}
	for _, opt := range opts {
		opt(o)
	}

	id := uuid.New().String()

	correlationID := o.correlationID
	if correlationID == "" {
		correlationID = id
	}

	occurredAt := o.occurredAt
	if occurredAt.IsZero() {
		occurredAt = o.clock.Now()
	}

	return &Event[P]{
		eventID:       id,
		eventType:     eventType,
		aggregateID:   aggregateID,
		workspaceID:   workspaceID,
		correlationID: correlationID,
		causationID:   o.causationID,
		occurredAt:    occurredAt,
		payload:       clonePayload(payload),
	}
}

// EventID 實現 DomainEvent 介面
func (e *Event[P]) EventID() string {
	return e.eventID
}

// EventType 實現 DomainEvent 介面
func (e *Event[P]) EventType() string {
	return e.eventType
}

// AggregateID 實現 DomainEvent 介面
func (e *Event[P]) AggregateID() string {
	return e.aggregateID
}

// WorkspaceID 實現 DomainEvent 介面
func (e *Event[P]) WorkspaceID() string {
	return e.workspaceID
}

// CorrelationID 實現 DomainEvent 介面
func (e *Event[P]) CorrelationID() string {
	return e.correlationID
}

// CausationID 實現 DomainEvent 介面
func (e *Event[P]) CausationID() string {
	return e.causationID
}

// OccurredAt 實現 DomainEvent 介面
func (e *Event[P]) OccurredAt() time.Time {
	return e.occurredAt
}

// Timestamp 實現 DomainEvent 介面
func (e *Event[P]) Timestamp() int64 {
	return e.occurredAt.UnixMilli()
}

// Data 實現 DomainEvent 介面
func (e *Event[P]) Data() any {
	return clonePayload(e.payload)
}

// Payload 類型安全的負載
func (e *Event[P]) Payload() P {
	return clonePayload(e.payload)
}

// IsChainRoot 是否為因果鏈首事件
func (e *Event[P]) IsChainRoot() bool {
	return e.causationID == ""
}

// ===========================
// Causation 因果上下文
// ===========================

// Causation 命令攜帶的因果上下文
//
// 零值代表新的因果鏈。
type Causation struct {
	CorrelationID string
	CausationID   string
}

// CausationOf 由觸發事件推導後續事件的因果上下文
func CausationOf(trigger DomainEvent) Causation {
	if trigger == nil {
		return Causation{}
	}
	return Causation{
		CorrelationID: trigger.CorrelationID(),
		CausationID:   trigger.EventID(),
	}
}

// IsZero 是否未攜帶因果資訊
func (c Causation) IsZero() bool {
	return c.CorrelationID == "" && c.CausationID == ""
}

// Options 轉換為事件建立選項
func (c Causation) Options() []EventOption {
	return []EventOption{
		WithCorrelationID(c.CorrelationID),
		WithCausationID(c.CausationID),
	}
}

// EventAs 將 DomainEvent 轉回具體負載類型
//
// 用於訂閱者取得類型安全的負載：
//
//	payload, ok := shared.EventAs[qc.QCFailedPayload](evt)
func EventAs[P any](event DomainEvent) (P, bool) {
	var zero P
	if event == nil {
		return zero, false
	}
	payload, ok := event.Data().(P)
	if !ok {
		return zero, false
	}
	return payload, true
}
