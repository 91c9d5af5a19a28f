package workspace

import (
	"context"
	"testing"

	"github.com/jackyeh168/workspace_hub/src/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Test 1: 模組匯流排 1:1 委派給工作區匯流排
func TestModuleEventBus_DelegatesToWorkspaceBus(t *testing.T) {
	// Arrange
	factory := newTestFactory()
	rt := factory.CreateRuntime(Descriptor{ID: "ws-1"})
	module := rt.ModuleBus()

	var viaModule, viaBus int
	sub := module.Subscribe("QCFailed", shared.HandlerFunc(func(context.Context, shared.DomainEvent) error {
		viaModule++
		return nil
	}))
	rt.EventBus.SubscribeAll(shared.HandlerFunc(func(context.Context, shared.DomainEvent) error {
		viaBus++
		return nil
	}))

	// Act
	require.NoError(t, module.Publish(context.Background(), shared.NewEvent("QCFailed", "qc-1", "ws-1", struct{}{})))

	// Assert
	assert.Equal(t, "ws-1", module.WorkspaceID())
	assert.Equal(t, 1, viaModule)
	assert.Equal(t, 1, viaBus)

	sub.Unsubscribe()
	sub.Unsubscribe()
	require.NoError(t, module.Publish(context.Background(), shared.NewEvent("QCFailed", "qc-1", "ws-1", struct{}{})))
	assert.Equal(t, 1, viaModule)
	assert.Equal(t, 2, viaBus)
}

// Test 2: Clear 清除底層匯流排全部訂閱
func TestModuleEventBus_ClearClearsUnderlyingBus(t *testing.T) {
	factory := newTestFactory()
	rt := factory.CreateRuntime(Descriptor{ID: "ws-1"})

	calls := 0
	rt.EventBus.SubscribeAll(shared.HandlerFunc(func(context.Context, shared.DomainEvent) error {
		calls++
		return nil
	}))

	rt.ModuleBus().Clear()
	require.NoError(t, rt.EventBus.Publish(context.Background(), shared.NewEvent("TaskCreated", "t", "ws-1", struct{}{})))

	assert.Equal(t, 0, calls)
}

// Test 3: 介面不暴露全域訂閱、批次發布與依處理器取消
func TestModuleEventBus_SurfaceIsNarrow(t *testing.T) {
	module := NewModuleEventBus("ws-1", newBusFactory()("ws-1"))

	_, hasSubscribeAll := module.(interface {
		SubscribeAll(shared.EventHandler) shared.Subscription
	})
	_, hasPublishBatch := module.(interface {
		PublishBatch(context.Context, []shared.DomainEvent) error
	})
	_, hasUnsubscribe := module.(interface {
		Unsubscribe(string, shared.EventHandler)
	})

	assert.False(t, hasSubscribeAll)
	assert.False(t, hasPublishBatch)
	assert.False(t, hasUnsubscribe)
}
