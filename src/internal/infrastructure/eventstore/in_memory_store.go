// Package eventstore 提供程序內共享的只增事件日誌
package eventstore

import (
	"context"
	"sync"
	"time"

	"github.com/jackyeh168/workspace_hub/src/internal/domain/shared"
	"github.com/jackyeh168/workspace_hub/src/internal/infrastructure/observability"
	log "github.com/sirupsen/logrus"
)

// InMemoryEventStore 記憶體內事件日誌
//
// 日誌為單一切片，四個索引保存事件在日誌中的位置，
// 因此索引查詢的結果順序與線性掃描一致。時間區間查詢為線性掃描。
type InMemoryEventStore struct {
	mu  sync.RWMutex
	log []shared.DomainEvent

	byAggregate   map[string][]int
	byWorkspace   map[string][]int
	byType        map[string][]int
	byCorrelation map[string][]int
	knownIDs      map[string]struct{}

	validateCausation bool
	metrics           observability.MetricsRecorder
	logger            log.FieldLogger
}

// Option 建立選項
type Option func(*InMemoryEventStore)

// WithCausationValidation 拒絕 causationID 指向未寫入事件的 Append
func WithCausationValidation() Option {
	return func(s *InMemoryEventStore) {
		s.validateCausation = true
	}
}

// WithMetrics 指定指標記錄器
func WithMetrics(metrics observability.MetricsRecorder) Option {
	return func(s *InMemoryEventStore) {
		if metrics != nil {
			s.metrics = metrics
		}
	}
}

// WithLogger 指定日誌
func WithLogger(logger log.FieldLogger) Option {
	return func(s *InMemoryEventStore) {
		s.logger = observability.OrDefault(logger)
	}
}

// NewInMemoryEventStore 建立空的事件日誌
func NewInMemoryEventStore(opts ...Option) *InMemoryEventStore {
	s := &InMemoryEventStore{
		metrics: observability.NoopMetrics{},
		logger:  log.StandardLogger(),
	}
	s.reset()
	for _, opt := range opts {
		opt(s)
	}
	return s
}

var _ shared.EventStore = (*InMemoryEventStore)(nil)

// reset 重建空的日誌與索引；呼叫者須持有寫鎖（建構時除外）
func (s *InMemoryEventStore) reset() {
	s.log = nil
	s.byAggregate = make(map[string][]int)
	s.byWorkspace = make(map[string][]int)
	s.byType = make(map[string][]int)
	s.byCorrelation = make(map[string][]int)
	s.knownIDs = make(map[string]struct{})
}

// ===========================
// 寫入
// ===========================

// Append 寫入單筆事件
func (s *InMemoryEventStore) Append(event shared.DomainEvent) error {
	if event == nil {
		return shared.ErrNilEvent
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.checkCausation(event); err != nil {
		return err
	}
	s.appendLocked(event)
	return nil
}

// AppendBatch 依序寫入，等同逐筆 Append
//
// 中途失敗時，之前的事件已寫入。
func (s *InMemoryEventStore) AppendBatch(events []shared.DomainEvent) error {
	for _, event := range events {
		if err := s.Append(event); err != nil {
			return err
		}
	}
	return nil
}

func (s *InMemoryEventStore) checkCausation(event shared.DomainEvent) error {
	if !s.validateCausation || event.CausationID() == "" {
		return nil
	}
	if _, ok := s.knownIDs[event.CausationID()]; ok {
		return nil
	}

	s.logger.WithFields(observability.EventFields(event)).
		WithField("causation_id", event.CausationID()).
		Warn("rejecting event with dangling causation")

	return shared.ErrDanglingCausation.WithContext(
		"event_id", event.EventID(),
		"causation_id", event.CausationID(),
	)
}

func (s *InMemoryEventStore) appendLocked(event shared.DomainEvent) {
	pos := len(s.log)
	s.log = append(s.log, event)

	s.byAggregate[event.AggregateID()] = append(s.byAggregate[event.AggregateID()], pos)
	s.byWorkspace[event.WorkspaceID()] = append(s.byWorkspace[event.WorkspaceID()], pos)
	s.byType[event.EventType()] = append(s.byType[event.EventType()], pos)
	s.byCorrelation[event.CorrelationID()] = append(s.byCorrelation[event.CorrelationID()], pos)
	s.knownIDs[event.EventID()] = struct{}{}

	s.metrics.RecordAppend(context.Background(), event.EventType())
}

// ===========================
// 查詢
// ===========================

// GetEventsForAggregate 指定聚合根的所有事件
func (s *InMemoryEventStore) GetEventsForAggregate(aggregateID string) []shared.DomainEvent {
	return s.byIndex(func() []int { return s.byAggregate[aggregateID] })
}

// GetEventsForWorkspace 指定工作區的所有事件
func (s *InMemoryEventStore) GetEventsForWorkspace(workspaceID string) []shared.DomainEvent {
	return s.byIndex(func() []int { return s.byWorkspace[workspaceID] })
}

// GetEventsByType 指定類型的所有事件
func (s *InMemoryEventStore) GetEventsByType(eventType string) []shared.DomainEvent {
	return s.byIndex(func() []int { return s.byType[eventType] })
}

// GetEventsByCausality 共享同一 CorrelationID 的整條因果鏈
func (s *InMemoryEventStore) GetEventsByCausality(correlationID string) []shared.DomainEvent {
	return s.byIndex(func() []int { return s.byCorrelation[correlationID] })
}

// GetEventsSince Timestamp >= since 的事件（毫秒精度）
func (s *InMemoryEventStore) GetEventsSince(since time.Time) []shared.DomainEvent {
	from := since.UnixMilli()
	return s.scan(func(e shared.DomainEvent) bool {
		return e.Timestamp() >= from
	})
}

// GetEventsInRange start <= Timestamp <= end 的事件（毫秒精度）
func (s *InMemoryEventStore) GetEventsInRange(start, end time.Time) []shared.DomainEvent {
	from, to := start.UnixMilli(), end.UnixMilli()
	return s.scan(func(e shared.DomainEvent) bool {
		ts := e.Timestamp()
		return ts >= from && ts <= to
	})
}

// All 依寫入順序返回全部事件
func (s *InMemoryEventStore) All() []shared.DomainEvent {
	return s.scan(func(shared.DomainEvent) bool { return true })
}

// Len 已寫入事件數量
func (s *InMemoryEventStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.log)
}

// Clear 清空日誌與索引（僅測試使用）
func (s *InMemoryEventStore) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.reset()
}

// byIndex 依索引位置取出事件，返回新切片
func (s *InMemoryEventStore) byIndex(positions func() []int) []shared.DomainEvent {
	s.mu.RLock()
	defer s.mu.RUnlock()

	idx := positions()
	out := make([]shared.DomainEvent, 0, len(idx))
	for _, pos := range idx {
		out = append(out, s.log[pos])
	}
	return out
}

func (s *InMemoryEventStore) scan(match func(shared.DomainEvent) bool) []shared.DomainEvent {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]shared.DomainEvent, 0)
	for _, event := range s.log {
		if match(event) {
			out = append(out, event)
		}
	}
	return out
}
