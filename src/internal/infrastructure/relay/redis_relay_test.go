package relay

import (
	"context"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/jackyeh168/workspace_hub/src/internal/domain/shared"
	"github.com/jackyeh168/workspace_hub/src/internal/domain/task"
	"github.com/jackyeh168/workspace_hub/src/internal/infrastructure/codec"
	"github.com/jackyeh168/workspace_hub/src/internal/infrastructure/eventbus"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupRedis(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()
	m, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(m.Close)

	rc := redis.NewClient(&redis.Options{Addr: m.Addr()})
	t.Cleanup(func() { _ = rc.Close() })
	return m, rc
}

// Test 1: 匯流排上的事件發布到工作區頻道
func TestRedisRelay_PublishesToWorkspaceChannel(t *testing.T) {
	// Arrange
	_, rc := setupRedis(t)
	logger, _ := test.NewNullLogger()
	relay := NewRedisRelay(rc, "", logger)
	bus := eventbus.NewInMemoryEventBus(eventbus.WithLogger(logger))
	relay.Attach(bus)
	ctx := context.Background()

	pubsub := rc.Subscribe(ctx, "workspace-events:ws-1")
	defer pubsub.Close()
	_, err := pubsub.Receive(ctx)
	require.NoError(t, err)

	done := make(chan string, 1)
	go func() {
		msg := <-pubsub.Channel()
		done <- msg.Payload
	}()

	event := task.NewTaskCompletedEvent(task.NewTaskID(), "ws-1", task.TaskCompletedPayload{QCCheckID: "qc-1"})

	// Act
	require.NoError(t, bus.Publish(ctx, event))

	// Assert
	select {
	case payload := <-done:
		env, err := codec.Decode([]byte(payload))
		require.NoError(t, err)
		assert.Equal(t, event.EventID(), env.EventID())
		assert.Equal(t, task.EventTaskCompleted, env.EventType())
	case <-time.After(time.Second):
		t.Fatal("no message received")
	}
}

// Test 2: Subscribe 將頻道訊息解碼後交給 handler
func TestRedisRelay_SubscribeDeliversEnvelopes(t *testing.T) {
	// Arrange
	_, rc := setupRedis(t)
	logger, _ := test.NewNullLogger()
	relay := NewRedisRelay(rc, "test:", logger)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	received := make(chan shared.DomainEvent, 1)
	finished := make(chan error, 1)
	go func() {
		finished <- relay.Subscribe(ctx, "ws-9", shared.HandlerFunc(func(_ context.Context, e shared.DomainEvent) error {
			received <- e
			return nil
		}))
	}()

	event := task.NewTaskReopenedEvent(task.NewTaskID(), "ws-9", task.TaskReopenedPayload{Reason: "gap"})

	// Act：等待訂閱建立後發布
	require.Eventually(t, func() bool {
		n, err := rc.PubSubNumSub(ctx, "test:ws-9").Result()
		return err == nil && n["test:ws-9"] > 0
	}, time.Second, 10*time.Millisecond)
	require.NoError(t, rc.Publish(ctx, "test:ws-9", "garbage").Err())
	require.NoError(t, relay.Handle(ctx, event))

	// Assert
	select {
	case e := <-received:
		assert.Equal(t, event.EventID(), e.EventID())
		payload, err := codec.PayloadAs[task.TaskReopenedPayload](e.(*codec.Envelope))
		require.NoError(t, err)
		assert.Equal(t, "gap", payload.Reason)
	case <-time.After(time.Second):
		t.Fatal("no event delivered")
	}

	cancel()
	select {
	case err := <-finished:
		assert.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("Subscribe did not exit")
	}
}

// Test 3: Redis 不可用時返回錯誤，匯流排吸收
func TestRedisRelay_PublishFailure(t *testing.T) {
	m, rc := setupRedis(t)
	logger, hook := test.NewNullLogger()
	relay := NewRedisRelay(rc, "", logger)
	m.Close()

	event := task.NewTaskCompletedEvent(task.NewTaskID(), "ws-1", task.TaskCompletedPayload{})

	err := relay.Handle(context.Background(), event)

	assert.Error(t, err)
	require.NotNil(t, hook.LastEntry())
	assert.Equal(t, "workspace-events:ws-1", hook.LastEntry().Data["channel"])
}
