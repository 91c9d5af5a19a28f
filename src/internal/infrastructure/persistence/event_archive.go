package persistence

import (
	"context"
	"fmt"

	"github.com/jackyeh168/workspace_hub/src/internal/domain/shared"
	"github.com/jackyeh168/workspace_hub/src/internal/infrastructure/codec"
	"github.com/jackyeh168/workspace_hub/src/internal/infrastructure/observability"
	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ===========================
// EventArchive 事件歸檔
// ===========================

// EventArchive 將匯流排上的事件持久化為 codec 信封
//
// 以全域訂閱者掛在每個工作區匯流排上。同一 EventID 只保存一次。
type EventArchive struct {
	db     *gorm.DB
	logger log.FieldLogger
}

// NewEventArchive 創建事件歸檔
func NewEventArchive(db *gorm.DB, logger log.FieldLogger) *EventArchive {
	return &EventArchive{db: db, logger: observability.OrDefault(logger)}
}

var _ shared.EventHandler = (*EventArchive)(nil)

// Attach 以全域訂閱掛上匯流排
func (a *EventArchive) Attach(bus shared.EventSubscriber) shared.Subscription {
	return bus.SubscribeAll(a)
}

// Handle 實作 shared.EventHandler
func (a *EventArchive) Handle(ctx context.Context, event shared.DomainEvent) error {
	return a.Record(ctx, event)
}

// Record 保存單筆事件；已存在時為 no-op
func (a *EventArchive) Record(ctx context.Context, event shared.DomainEvent) error {
	body, err := codec.Encode(event)
	if err != nil {
		return err
	}

	record := &EventRecordModel{
		EventID:       event.EventID(),
		EventType:     event.EventType(),
		AggregateID:   event.AggregateID(),
		WorkspaceID:   event.WorkspaceID(),
		CorrelationID: event.CorrelationID(),
		CausationID:   event.CausationID(),
		OccurredAt:    event.OccurredAt().UTC(),
		Body:          body,
	}

	err = a.db.WithContext(ctx).
		Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "event_id"}}, DoNothing: true}).
		Create(record).Error
	if err != nil {
		return fmt.Errorf("archive event %s: %w", event.EventID(), err)
	}

	a.logger.WithFields(observability.EventFields(event)).Debug("event archived")
	return nil
}

// ===========================
// 歷史查詢
// ===========================

// ForWorkspace 工作區的歷史事件，依寫入順序
func (a *EventArchive) ForWorkspace(ctx context.Context, workspaceID string) ([]*codec.Envelope, error) {
	return a.query(ctx, "workspace_id = ?", workspaceID)
}

// ForAggregate 聚合根的歷史事件，依寫入順序
func (a *EventArchive) ForAggregate(ctx context.Context, aggregateID string) ([]*codec.Envelope, error) {
	return a.query(ctx, "aggregate_id = ?", aggregateID)
}

// ByCorrelation 整條因果鏈，依寫入順序
func (a *EventArchive) ByCorrelation(ctx context.Context, correlationID string) ([]*codec.Envelope, error) {
	return a.query(ctx, "correlation_id = ?", correlationID)
}

// Count 已歸檔事件數量
func (a *EventArchive) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := a.db.WithContext(ctx).Model(&EventRecordModel{}).Count(&n).Error; err != nil {
		return 0, fmt.Errorf("count archived events: %w", err)
	}
	return n, nil
}

// Replay 依寫入順序將工作區歷史事件重新交給 handler
//
// handler 返回錯誤時中止並返回該錯誤。
func (a *EventArchive) Replay(ctx context.Context, workspaceID string, handler shared.EventHandler) error {
	envelopes, err := a.ForWorkspace(ctx, workspaceID)
	if err != nil {
		return err
	}
	for _, env := range envelopes {
		if err := handler.Handle(ctx, env); err != nil {
			return fmt.Errorf("replay %s: %w", env.EventID(), err)
		}
	}
	return nil
}

func (a *EventArchive) query(ctx context.Context, where string, arg string) ([]*codec.Envelope, error) {
	var records []EventRecordModel
	if err := a.db.WithContext(ctx).Where(where, arg).Order("seq").Find(&records).Error; err != nil {
		return nil, fmt.Errorf("query archived events: %w", err)
	}

	out := make([]*codec.Envelope, 0, len(records))
	for i := range records {
		env, err := codec.Decode(records[i].Body)
		if err != nil {
			return nil, fmt.Errorf("archived event seq %d: %w", records[i].Seq, err)
		}
		out = append(out, env)
	}
	return out, nil
}
