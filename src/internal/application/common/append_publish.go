package common

import (
	"context"
	"fmt"

	"github.com/jackyeh168/workspace_hub/src/internal/domain/shared"
)

// Publisher 發布單筆事件
//
// shared.EventBus 與模組匯流排皆滿足此介面。
type Publisher interface {
	Publish(ctx context.Context, event shared.DomainEvent) error
}

// AppendThenPublish 先將事件全部寫入 EventStore，再依序發布到匯流排
//
// 寫入失敗時不發布任何事件。處理器被呼叫時，事件必定已在歷史中。
func AppendThenPublish(ctx context.Context, store shared.EventStore, bus Publisher, events []shared.DomainEvent) error {
	if len(events) == 0 {
		return nil
	}

	if err := store.AppendBatch(events); err != nil {
		return fmt.Errorf("append events: %w", err)
	}

	for _, event := range events {
		if err := bus.Publish(ctx, event); err != nil {
			return fmt.Errorf("publish %s: %w", event.EventType(), err)
		}
	}
	return nil
}
