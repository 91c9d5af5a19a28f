package workspace

import (
	"context"

	"github.com/jackyeh168/workspace_hub/src/internal/domain/shared"
)

// ModuleEventBus 綁定單一工作區的受限事件匯流排
//
// 只提供發布、類型訂閱與清除；不提供全域訂閱、批次發布、
// 依處理器取消訂閱或 EventStore 存取。所有操作 1:1 委派給底層匯流排。
type ModuleEventBus interface {
	WorkspaceID() string
	Publish(ctx context.Context, event shared.DomainEvent) error
	Subscribe(eventType string, handler shared.EventHandler) shared.Subscription
	Clear()
}

type moduleEventBus struct {
	workspaceID string
	bus         shared.EventBus
}

// NewModuleEventBus 包裝工作區匯流排
func NewModuleEventBus(workspaceID string, bus shared.EventBus) ModuleEventBus {
	return &moduleEventBus{workspaceID: workspaceID, bus: bus}
}

func (m *moduleEventBus) WorkspaceID() string {
	return m.workspaceID
}

func (m *moduleEventBus) Publish(ctx context.Context, event shared.DomainEvent) error {
	return m.bus.Publish(ctx, event)
}

func (m *moduleEventBus) Subscribe(eventType string, handler shared.EventHandler) shared.Subscription {
	return m.bus.Subscribe(eventType, handler)
}

func (m *moduleEventBus) Clear() {
	m.bus.Clear()
}
